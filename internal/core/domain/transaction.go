package domain

import (
	"time"

	"payment-hub/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of money movement.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// TransactionStatus represents the lifecycle state of a payment transaction.
type TransactionStatus string

const (
	TransactionStatusPending             TransactionStatus = "PENDING"
	TransactionStatusSuccess             TransactionStatus = "SUCCESS"
	TransactionStatusFailed              TransactionStatus = "FAILED"
	TransactionStatusChargedBack         TransactionStatus = "CHARGED_BACK"
	TransactionStatusRefunded            TransactionStatus = "REFUNDED"
	TransactionStatusChargedBackReversal TransactionStatus = "CHARGED_BACK_REVERSAL"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusSuccess, TransactionStatusFailed,
		TransactionStatusChargedBack, TransactionStatusRefunded, TransactionStatusChargedBackReversal:
		return true
	}
	return false
}

// IsTerminal returns true for every status except PENDING.
func (s TransactionStatus) IsTerminal() bool {
	return s != TransactionStatusPending
}

// SuccessLineage lists the statuses that are only reachable through SUCCESS.
// Limit statistics count all of them as successful operations.
var SuccessLineage = []TransactionStatus{
	TransactionStatusSuccess,
	TransactionStatusChargedBack,
	TransactionStatusRefunded,
	TransactionStatusChargedBackReversal,
}

// ReachedSuccess reports whether the transaction passed through SUCCESS.
func (s TransactionStatus) ReachedSuccess() bool {
	for _, st := range SuccessLineage {
		if s == st {
			return true
		}
	}
	return false
}

// System decline codes.
const (
	DeclineCodeLimitExceeded   = "LIMIT_EXCEEDED"
	DeclineCodePendingExpired  = "PENDING_TTL_EXPIRED"
	DeclineCodeProviderError   = "PROVIDER_ERROR"
	DeclineCodeProviderDecline = "PROVIDER_DECLINED"
)

// Extra carries provider context that does not fit the typed columns.
// Known keys get their own fields; the rest lands in Fields.
type Extra struct {
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	ClientIP       string            `json:"client_ip,omitempty"`
	RedirectURL    string            `json:"redirect_url,omitempty"`
	Destination    string            `json:"destination,omitempty"`
	LastCallbackAt *time.Time        `json:"last_callback_at,omitempty"`
	RevertCount    int               `json:"revert_count,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// Set stores a provider-specific value.
func (e *Extra) Set(key, value string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[key] = value
}

// Get returns a provider-specific value or "".
func (e Extra) Get(key string) string {
	return e.Fields[key]
}

// PaymentTransaction is one deposit or withdrawal attempt routed through a provider.
type PaymentTransaction struct {
	ID               int64             `json:"-"`
	UUID             uuid.UUID         `json:"id"`
	Type             TransactionType   `json:"type"`
	Status           TransactionStatus `json:"status"`
	Amount           decimal.Decimal   `json:"amount"`
	Currency         string            `json:"currency"`
	MerchantID       uuid.UUID         `json:"merchant_id"`
	CurrencyWalletID uuid.UUID         `json:"currency_wallet_id"`
	CustomerID       *uuid.UUID        `json:"customer_id,omitempty"`
	Provider         string            `json:"provider"`
	ProviderID       *string           `json:"provider_id,omitempty"`
	ReferenceID      string            `json:"reference_id"`
	DeclineCode      *string           `json:"decline_code,omitempty"`
	DeclineReason    *string           `json:"decline_reason,omitempty"`
	Extra            Extra             `json:"extra"`
	CheckStatusUntil *time.Time        `json:"check_status_until,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Money returns the transaction amount with its currency.
func (t *PaymentTransaction) Money() money.Money {
	return money.Money{Amount: t.Amount, Currency: t.Currency}
}

// IsTerminal returns true if the transaction left PENDING.
func (t *PaymentTransaction) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// IsExpired reports whether a pending transaction is past its check-status deadline.
func (t *PaymentTransaction) IsExpired(now time.Time) bool {
	return t.Status == TransactionStatusPending && t.CheckStatusUntil != nil && !now.Before(*t.CheckStatusUntil)
}

// StatusChange is one edge of the state graph.
type StatusChange struct {
	From TransactionStatus
	To   TransactionStatus
}

// parentStatus maps each non-initial status to the status it is entered from.
// The graph is a tree rooted at PENDING, which makes revert paths unique.
var parentStatus = map[TransactionStatus]TransactionStatus{
	TransactionStatusSuccess:             TransactionStatusPending,
	TransactionStatusFailed:              TransactionStatusPending,
	TransactionStatusChargedBack:         TransactionStatusSuccess,
	TransactionStatusRefunded:            TransactionStatusSuccess,
	TransactionStatusChargedBackReversal: TransactionStatusChargedBack,
}

// CanTransition reports whether a forward move is allowed for the transaction type.
func CanTransition(t TransactionType, from, to TransactionStatus) bool {
	_, ok := forwardEvents[transitionKey{t, from, to}]
	return ok
}

// RevertPath returns the forward edges leading from target to current, in
// forward order. ok is false when target is not an ancestor of current.
func RevertPath(current, target TransactionStatus) ([]StatusChange, bool) {
	if current == target {
		return nil, false
	}
	var path []StatusChange
	s := current
	for s != target {
		parent, ok := parentStatus[s]
		if !ok {
			return nil, false
		}
		path = append([]StatusChange{{From: parent, To: s}}, path...)
		s = parent
	}
	return path, true
}
