package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceEventType names a ledger movement.
type BalanceEventType string

const (
	EventOperationPending       BalanceEventType = "OPERATION_PENDING"
	EventOperationConfirmed     BalanceEventType = "OPERATION_CONFIRMED"
	EventSettlementFromProvider BalanceEventType = "SETTLEMENT_FROM_PROVIDER"
	EventOperationCancelled     BalanceEventType = "OPERATION_CANCELLED"
	EventSettlementHold         BalanceEventType = "SETTLEMENT_HOLD"
	EventSettlementConfirmed    BalanceEventType = "SETTLEMENT_CONFIRMED"
	EventSettlementCancel       BalanceEventType = "SETTLEMENT_CANCEL"
	EventChargeback             BalanceEventType = "CHARGEBACK"
	EventChargebackReversal     BalanceEventType = "CHARGEBACK_REVERSAL"
	EventRefund                 BalanceEventType = "REFUND"
	EventPayoutReturned         BalanceEventType = "PAYOUT_RETURNED"
	EventManualAdjustment       BalanceEventType = "MANUAL_ADJUSTMENT"
	EventCompensation           BalanceEventType = "COMPENSATION"
)

// Initiator identifies who caused a ledger movement.
type Initiator string

const (
	InitiatorSystem Initiator = "SYSTEM"
	InitiatorAdmin  Initiator = "ADMIN"
)

// BalanceDelta is the signed change applied to each balance tier.
type BalanceDelta struct {
	Operational decimal.Decimal
	Frozen      decimal.Decimal
	Pending     decimal.Decimal
}

// Neg returns the compensating delta.
func (d BalanceDelta) Neg() BalanceDelta {
	return BalanceDelta{Operational: d.Operational.Neg(), Frozen: d.Frozen.Neg(), Pending: d.Pending.Neg()}
}

// EventDelta computes the tier deltas for event and amount.
// MANUAL_ADJUSTMENT takes a signed amount; every other event requires amount > 0.
// COMPENSATION is not accepted here; use CompensationDelta.
func EventDelta(event BalanceEventType, amount decimal.Decimal) (BalanceDelta, error) {
	zero := decimal.Zero
	if event == EventManualAdjustment {
		if amount.IsZero() {
			return BalanceDelta{}, fmt.Errorf("manual adjustment amount must be non-zero")
		}
		return BalanceDelta{Operational: amount, Frozen: zero, Pending: zero}, nil
	}
	if !amount.IsPositive() {
		return BalanceDelta{}, fmt.Errorf("%s amount must be positive, got %s", event, amount)
	}
	neg := amount.Neg()
	switch event {
	case EventOperationPending:
		return BalanceDelta{Operational: zero, Frozen: zero, Pending: amount}, nil
	case EventOperationConfirmed, EventChargebackReversal, EventPayoutReturned:
		return BalanceDelta{Operational: amount, Frozen: zero, Pending: zero}, nil
	case EventSettlementFromProvider, EventOperationCancelled:
		return BalanceDelta{Operational: zero, Frozen: zero, Pending: neg}, nil
	case EventSettlementHold:
		return BalanceDelta{Operational: zero, Frozen: amount, Pending: zero}, nil
	case EventSettlementConfirmed:
		return BalanceDelta{Operational: neg, Frozen: neg, Pending: zero}, nil
	case EventSettlementCancel:
		return BalanceDelta{Operational: zero, Frozen: neg, Pending: zero}, nil
	case EventChargeback, EventRefund:
		return BalanceDelta{Operational: neg, Frozen: zero, Pending: zero}, nil
	}
	return BalanceDelta{}, fmt.Errorf("no delta defined for event %q", event)
}

// CompensationDelta returns the delta that cancels a prior event of the given amount.
func CompensationDelta(reverses BalanceEventType, amount decimal.Decimal) (BalanceDelta, error) {
	if reverses == EventCompensation {
		return BalanceDelta{}, fmt.Errorf("cannot compensate a compensation entry")
	}
	d, err := EventDelta(reverses, amount)
	if err != nil {
		return BalanceDelta{}, err
	}
	return d.Neg(), nil
}

type transitionKey struct {
	Type TransactionType
	From TransactionStatus
	To   TransactionStatus
}

// forwardEvents is the authoritative transition table. A move is allowed
// only if it appears here, and the listed events are applied in order.
var forwardEvents = map[transitionKey][]BalanceEventType{
	{TransactionTypeDeposit, TransactionStatusPending, TransactionStatusSuccess}:                  {EventOperationConfirmed, EventSettlementFromProvider},
	{TransactionTypeDeposit, TransactionStatusPending, TransactionStatusFailed}:                   {EventOperationCancelled},
	{TransactionTypeDeposit, TransactionStatusSuccess, TransactionStatusChargedBack}:              {EventChargeback},
	{TransactionTypeDeposit, TransactionStatusSuccess, TransactionStatusRefunded}:                 {EventRefund},
	{TransactionTypeDeposit, TransactionStatusChargedBack, TransactionStatusChargedBackReversal}:  {EventChargebackReversal},
	{TransactionTypeWithdrawal, TransactionStatusPending, TransactionStatusSuccess}:               {EventSettlementConfirmed},
	{TransactionTypeWithdrawal, TransactionStatusPending, TransactionStatusFailed}:                {EventSettlementCancel},
	{TransactionTypeWithdrawal, TransactionStatusSuccess, TransactionStatusRefunded}:              {EventPayoutReturned},
}

// TransitionEvents returns the ledger events a forward transition implies.
func TransitionEvents(t TransactionType, from, to TransactionStatus) ([]BalanceEventType, error) {
	events, ok := forwardEvents[transitionKey{t, from, to}]
	if !ok {
		return nil, fmt.Errorf("transition %s -> %s not allowed for %s", from, to, t)
	}
	return events, nil
}

// CreationEvents returns the ledger events applied when a transaction is created pending.
func CreationEvents(t TransactionType) []BalanceEventType {
	switch t {
	case TransactionTypeDeposit:
		return []BalanceEventType{EventOperationPending}
	case TransactionTypeWithdrawal:
		return []BalanceEventType{EventSettlementHold}
	}
	return nil
}

// BalanceTransaction is an immutable journal entry. Amount is the signed
// operational delta; frozen and pending deltas are implied by the snapshots.
type BalanceTransaction struct {
	ID                uuid.UUID         `json:"id"`
	CurrencyWalletID  uuid.UUID         `json:"currency_wallet_id"`
	Type              BalanceEventType  `json:"type"`
	Reverses          *BalanceEventType `json:"reverses,omitempty"`
	Amount            decimal.Decimal   `json:"amount"`
	OperationalBefore decimal.Decimal   `json:"operational_before"`
	OperationalAfter  decimal.Decimal   `json:"operational_after"`
	FrozenBefore      decimal.Decimal   `json:"frozen_before"`
	FrozenAfter       decimal.Decimal   `json:"frozen_after"`
	PendingBefore     decimal.Decimal   `json:"pending_before"`
	PendingAfter      decimal.Decimal   `json:"pending_after"`
	Initiator         Initiator         `json:"initiator"`
	Actor             string            `json:"actor,omitempty"`
	TransactionID     *int64            `json:"-"`
	TransactionUUID   *uuid.UUID        `json:"transaction_id,omitempty"`
	Description       string            `json:"description"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Before returns the balances prior to this entry.
func (b *BalanceTransaction) Before() Balances {
	return Balances{Operational: b.OperationalBefore, Frozen: b.FrozenBefore, Pending: b.PendingBefore}
}

// After returns the balances after this entry.
func (b *BalanceTransaction) After() Balances {
	return Balances{Operational: b.OperationalAfter, Frozen: b.FrozenAfter, Pending: b.PendingAfter}
}

// Delta returns the per-tier change recorded by this entry.
func (b *BalanceTransaction) Delta() BalanceDelta {
	return BalanceDelta{
		Operational: b.OperationalAfter.Sub(b.OperationalBefore),
		Frozen:      b.FrozenAfter.Sub(b.FrozenBefore),
		Pending:     b.PendingAfter.Sub(b.PendingBefore),
	}
}

// Consistent checks after = before + delta and that Amount matches the operational delta.
func (b *BalanceTransaction) Consistent() bool {
	return b.Delta().Operational.Equal(b.Amount)
}
