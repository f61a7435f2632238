package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LimitScope tells whose history a limit is evaluated against.
type LimitScope string

const (
	LimitScopeCustomer LimitScope = "CUSTOMER"
	LimitScopeMerchant LimitScope = "MERCHANT"
)

// LimitPeriod is the rolling counting window of a limit.
type LimitPeriod string

const (
	LimitPeriodHour  LimitPeriod = "HOUR"
	LimitPeriodDay   LimitPeriod = "DAY"
	LimitPeriodWeek  LimitPeriod = "WEEK"
	LimitPeriodMonth LimitPeriod = "MONTH"
)

// Duration returns the window length, or 0 for an unknown period.
func (p LimitPeriod) Duration() time.Duration {
	switch p {
	case LimitPeriodHour:
		return time.Hour
	case LimitPeriodDay:
		return 24 * time.Hour
	case LimitPeriodWeek:
		return 7 * 24 * time.Hour
	case LimitPeriodMonth:
		return 30 * 24 * time.Hour
	}
	return 0
}

// AlertSeverity drives downstream notification only.
type AlertSeverity string

const (
	AlertSeverityWarning  AlertSeverity = "WARNING"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

var (
	ErrLimitNoThreshold  = errors.New("limit must define at least one threshold")
	ErrLimitNeedsPeriod  = errors.New("decline_on_exceed limits must define a period")
	ErrLimitInvalidScope = errors.New("limit scope must be CUSTOMER or MERCHANT")
)

// Limit is a customer- or merchant-scoped threshold rule.
type Limit struct {
	ID              uuid.UUID        `json:"id"`
	Scope           LimitScope       `json:"scope"`
	OwnerID         uuid.UUID        `json:"owner_id"`
	Name            string           `json:"name"`
	TransactionType *TransactionType `json:"transaction_type,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	Period          *LimitPeriod     `json:"period,omitempty"`
	MaxSuccessCount *int64           `json:"max_success_count,omitempty"`
	MaxFailedCount  *int64           `json:"max_failed_count,omitempty"`
	MinAmount       *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount       *decimal.Decimal `json:"max_amount,omitempty"`
	MaxTotalAmount  *decimal.Decimal `json:"max_total_amount,omitempty"`
	MaxDeclineRatio *decimal.Decimal `json:"max_decline_ratio,omitempty"`
	RatioMinSample  int64            `json:"ratio_min_sample,omitempty"`
	DeclineOnExceed bool             `json:"decline_on_exceed"`
	IsCritical      bool             `json:"is_critical"`
	Active          bool             `json:"active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Validate checks the configuration invariants of a limit.
func (l *Limit) Validate() error {
	if l.Scope != LimitScopeCustomer && l.Scope != LimitScopeMerchant {
		return ErrLimitInvalidScope
	}
	if l.OwnerID == uuid.Nil {
		return errors.New("limit owner is required")
	}
	if l.MaxSuccessCount == nil && l.MaxFailedCount == nil && l.MinAmount == nil &&
		l.MaxAmount == nil && l.MaxTotalAmount == nil && l.MaxDeclineRatio == nil {
		return ErrLimitNoThreshold
	}
	if l.Period != nil && l.Period.Duration() == 0 {
		return fmt.Errorf("unknown limit period %q", *l.Period)
	}
	if l.DeclineOnExceed && l.Period == nil {
		return ErrLimitNeedsPeriod
	}
	if l.TransactionType != nil && !l.TransactionType.Valid() {
		return fmt.Errorf("unknown transaction type %q", *l.TransactionType)
	}
	if r := l.MaxDeclineRatio; r != nil && (r.IsNegative() || r.GreaterThan(decimal.NewFromInt(1))) {
		return errors.New("max_decline_ratio must be between 0 and 1")
	}
	return nil
}

// Applies reports whether the limit filters match the candidate.
func (l *Limit) Applies(c *LimitCandidate) bool {
	if !l.Active {
		return false
	}
	if l.TransactionType != nil && *l.TransactionType != c.Type {
		return false
	}
	if l.Currency != "" && l.Currency != c.Currency {
		return false
	}
	switch l.Scope {
	case LimitScopeCustomer:
		return c.CustomerID != nil && *c.CustomerID == l.OwnerID
	case LimitScopeMerchant:
		return c.MerchantID == l.OwnerID
	}
	return false
}

// NeedsHistory reports whether evaluating the limit requires a history query.
func (l *Limit) NeedsHistory() bool {
	return l.MaxSuccessCount != nil || l.MaxFailedCount != nil ||
		l.MaxTotalAmount != nil || l.MaxDeclineRatio != nil
}

// WindowStart returns the beginning of the counting window, zero for all-time.
func (l *Limit) WindowStart(now time.Time) time.Time {
	if l.Period == nil {
		return time.Time{}
	}
	return now.Add(-l.Period.Duration())
}

// Breaches returns a reason for every threshold the candidate would cross.
// stats describes prior history and excludes the candidate itself.
func (l *Limit) Breaches(c *LimitCandidate, stats LimitStatistics) []string {
	var reasons []string
	if l.MinAmount != nil && c.Amount.LessThan(*l.MinAmount) {
		reasons = append(reasons, fmt.Sprintf("amount %s below minimum %s", c.Amount, *l.MinAmount))
	}
	if l.MaxAmount != nil && c.Amount.GreaterThan(*l.MaxAmount) {
		reasons = append(reasons, fmt.Sprintf("amount %s above maximum %s", c.Amount, *l.MaxAmount))
	}
	if l.MaxSuccessCount != nil && stats.SuccessCount >= *l.MaxSuccessCount {
		reasons = append(reasons, fmt.Sprintf("%d successful operations in window, limit %d", stats.SuccessCount, *l.MaxSuccessCount))
	}
	if l.MaxFailedCount != nil && stats.FailedCount >= *l.MaxFailedCount {
		reasons = append(reasons, fmt.Sprintf("%d failed operations in window, limit %d", stats.FailedCount, *l.MaxFailedCount))
	}
	if l.MaxTotalAmount != nil {
		total := stats.SuccessAmount.Add(c.Amount)
		if total.GreaterThan(*l.MaxTotalAmount) {
			reasons = append(reasons, fmt.Sprintf("total %s would exceed %s", total, *l.MaxTotalAmount))
		}
	}
	if l.MaxDeclineRatio != nil {
		sample := stats.SuccessCount + stats.FailedCount
		if sample > 0 && sample >= l.RatioMinSample {
			ratio := stats.DeclineRatio()
			if ratio.GreaterThan(*l.MaxDeclineRatio) {
				reasons = append(reasons, fmt.Sprintf("decline ratio %s above %s", ratio.StringFixed(4), *l.MaxDeclineRatio))
			}
		}
	}
	return reasons
}

// LimitCandidate is the snapshot of a transaction submitted for evaluation.
type LimitCandidate struct {
	TransactionUUID  uuid.UUID       `json:"transaction_id"`
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	MerchantID       uuid.UUID       `json:"merchant_id"`
	CurrencyWalletID uuid.UUID       `json:"currency_wallet_id"`
	CustomerID       *uuid.UUID      `json:"customer_id,omitempty"`
}

// LimitStatistics is the history snapshot a limit was evaluated against.
type LimitStatistics struct {
	WindowStart     time.Time       `json:"window_start"`
	SuccessCount    int64           `json:"success_count"`
	FailedCount     int64           `json:"failed_count"`
	SuccessAmount   decimal.Decimal `json:"success_amount"`
	CandidateAmount decimal.Decimal `json:"candidate_amount"`
}

// DeclineRatio is failed / (success + failed), zero without history.
func (s LimitStatistics) DeclineRatio() decimal.Decimal {
	total := s.SuccessCount + s.FailedCount
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(s.FailedCount).Div(decimal.NewFromInt(total))
}

// AlertAcknowledgement records an operator acknowledging an alert.
type AlertAcknowledgement struct {
	Actor string    `json:"actor"`
	Note  string    `json:"note,omitempty"`
	At    time.Time `json:"at"`
}

// LimitAlert records one limit matched by one transaction.
type LimitAlert struct {
	ID               uuid.UUID              `json:"id"`
	CustomerLimitID  *uuid.UUID             `json:"customer_limit_id,omitempty"`
	MerchantLimitID  *uuid.UUID             `json:"merchant_limit_id,omitempty"`
	TransactionUUID  uuid.UUID              `json:"transaction_id"`
	Severity         AlertSeverity          `json:"severity"`
	Declined         bool                   `json:"declined"`
	Reasons          []string               `json:"reasons"`
	Statistics       LimitStatistics        `json:"statistics"`
	Acknowledgements []AlertAcknowledgement `json:"acknowledgements"`
	CreatedAt        time.Time              `json:"created_at"`
}

// NewLimitAlert builds an alert referencing exactly the limit that matched.
func NewLimitAlert(l *Limit, trxUUID uuid.UUID, stats LimitStatistics, reasons []string, now time.Time) *LimitAlert {
	a := &LimitAlert{
		ID:               uuid.New(),
		TransactionUUID:  trxUUID,
		Severity:         AlertSeverityWarning,
		Declined:         l.DeclineOnExceed,
		Reasons:          reasons,
		Statistics:       stats,
		Acknowledgements: []AlertAcknowledgement{},
		CreatedAt:        now,
	}
	if l.IsCritical {
		a.Severity = AlertSeverityCritical
	}
	id := l.ID
	if l.Scope == LimitScopeCustomer {
		a.CustomerLimitID = &id
	} else {
		a.MerchantLimitID = &id
	}
	return a
}

// Validate enforces the exactly-one-limit reference.
func (a *LimitAlert) Validate() error {
	if (a.CustomerLimitID == nil) == (a.MerchantLimitID == nil) {
		return errors.New("alert must reference exactly one of customer or merchant limit")
	}
	return nil
}

// LimitID returns whichever limit the alert references.
func (a *LimitAlert) LimitID() uuid.UUID {
	if a.CustomerLimitID != nil {
		return *a.CustomerLimitID
	}
	if a.MerchantLimitID != nil {
		return *a.MerchantLimitID
	}
	return uuid.Nil
}

// LimitDecision is the outcome of evaluating a candidate.
type LimitDecision struct {
	Declined bool
	Alerts   []*LimitAlert
	// Checked is false when the engine failed open.
	Checked bool
}

// DeclineReason summarizes the declining alerts for the transaction record.
func (d *LimitDecision) DeclineReason() string {
	for _, a := range d.Alerts {
		if a.Declined && len(a.Reasons) > 0 {
			return fmt.Sprintf("limit %s: %s", a.LimitID(), a.Reasons[0])
		}
	}
	return "limit exceeded"
}
