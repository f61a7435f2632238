package dto

import (
	"strings"
	"time"

	"payment-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositRequest is the request body for POST /api/v1/deposits.
type DepositRequest struct {
	CurrencyWalletID string            `json:"currency_wallet_id" binding:"required,uuid"`
	CustomerID       *string           `json:"customer_id,omitempty" binding:"omitempty,uuid"`
	ReferenceID      string            `json:"reference_id" binding:"required,max=100,safe_id"`
	Amount           decimal.Decimal   `json:"amount"`
	Currency         string            `json:"currency" binding:"required,min=3,max=4"`
	ReturnURL        string            `json:"return_url,omitempty" binding:"omitempty,safe_url"`
	Locale           string            `json:"locale,omitempty" binding:"max=10"`
	Fields           map[string]string `json:"fields,omitempty" binding:"max=20"`
}

// WithdrawalRequest is the request body for POST /api/v1/withdrawals.
type WithdrawalRequest struct {
	DepositRequest
	Destination string `json:"destination" binding:"required,max=100"`
}

// TransactionResponse is the merchant view of a payment transaction.
type TransactionResponse struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	ReferenceID   string            `json:"reference_id"`
	Provider      string            `json:"provider"`
	ProviderID    *string           `json:"provider_id,omitempty"`
	RedirectURL   string            `json:"redirect_url,omitempty"`
	DeclineCode   *string           `json:"decline_code,omitempty"`
	DeclineReason *string           `json:"decline_reason,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

// NewTransactionResponse converts a domain transaction to its DTO.
func NewTransactionResponse(trx *domain.PaymentTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            trx.UUID.String(),
		Type:          string(trx.Type),
		Status:        string(trx.Status),
		Amount:        trx.Amount,
		Currency:      trx.Currency,
		ReferenceID:   trx.ReferenceID,
		Provider:      trx.Provider,
		ProviderID:    trx.ProviderID,
		RedirectURL:   trx.Extra.RedirectURL,
		DeclineCode:   trx.DeclineCode,
		DeclineReason: trx.DeclineReason,
		Fields:        trx.Extra.Fields,
		CreatedAt:     trx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     trx.UpdatedAt.Format(time.RFC3339),
	}
}

// RevertRequest is the request body for an admin revert.
type RevertRequest struct {
	TargetStatus  string  `json:"target_status" binding:"required,oneof=PENDING SUCCESS"`
	ReapplyStatus *string `json:"reapply_status,omitempty" binding:"omitempty,oneof=SUCCESS FAILED CHARGED_BACK REFUNDED CHARGED_BACK_REVERSAL"`
	DeclineCode   string  `json:"decline_code,omitempty" binding:"max=50"`
	Reason        string  `json:"reason" binding:"required,max=500"`
}

// AdjustmentRequest is the request body for a manual wallet adjustment.
// Amount is signed.
type AdjustmentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" binding:"required,max=500"`
}

// LimitRequest is the request body for creating or replacing a limit.
type LimitRequest struct {
	Scope           string           `json:"scope" binding:"required,oneof=CUSTOMER MERCHANT"`
	OwnerID         string           `json:"owner_id" binding:"required,uuid"`
	Name            string           `json:"name" binding:"required,max=100"`
	TransactionType *string          `json:"transaction_type,omitempty" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL"`
	Currency        string           `json:"currency,omitempty" binding:"max=4"`
	Period          *string          `json:"period,omitempty" binding:"omitempty,oneof=HOUR DAY WEEK MONTH"`
	MaxSuccessCount *int64           `json:"max_success_count,omitempty" binding:"omitempty,gte=0"`
	MaxFailedCount  *int64           `json:"max_failed_count,omitempty" binding:"omitempty,gte=0"`
	MinAmount       *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount       *decimal.Decimal `json:"max_amount,omitempty"`
	MaxTotalAmount  *decimal.Decimal `json:"max_total_amount,omitempty"`
	MaxDeclineRatio *decimal.Decimal `json:"max_decline_ratio,omitempty"`
	RatioMinSample  int64            `json:"ratio_min_sample,omitempty" binding:"gte=0"`
	DeclineOnExceed bool             `json:"decline_on_exceed"`
	IsCritical      bool             `json:"is_critical"`
}

// AcknowledgeRequest is the request body for acknowledging a limit alert.
type AcknowledgeRequest struct {
	Note string `json:"note,omitempty" binding:"max=500"`
}

// ToDomain maps the request onto a limit. Binding has already checked the
// enumerations; threshold consistency is validated by the service.
func (r LimitRequest) ToDomain() *domain.Limit {
	l := &domain.Limit{
		Scope:           domain.LimitScope(r.Scope),
		OwnerID:         uuid.MustParse(r.OwnerID),
		Name:            r.Name,
		Currency:        strings.ToUpper(r.Currency),
		MaxSuccessCount: r.MaxSuccessCount,
		MaxFailedCount:  r.MaxFailedCount,
		MinAmount:       r.MinAmount,
		MaxAmount:       r.MaxAmount,
		MaxTotalAmount:  r.MaxTotalAmount,
		MaxDeclineRatio: r.MaxDeclineRatio,
		RatioMinSample:  r.RatioMinSample,
		DeclineOnExceed: r.DeclineOnExceed,
		IsCritical:      r.IsCritical,
		Active:          true,
	}
	if r.TransactionType != nil {
		t := domain.TransactionType(*r.TransactionType)
		l.TransactionType = &t
	}
	if r.Period != nil {
		p := domain.LimitPeriod(*r.Period)
		l.Period = &p
	}
	return l
}
