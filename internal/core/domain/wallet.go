package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balances holds the three tiers of a currency wallet.
type Balances struct {
	Operational decimal.Decimal `json:"operational"`
	Frozen      decimal.Decimal `json:"frozen"`
	Pending     decimal.Decimal `json:"pending"`
}

// Apply returns the balances after delta.
func (b Balances) Apply(d BalanceDelta) Balances {
	return Balances{
		Operational: b.Operational.Add(d.Operational),
		Frozen:      b.Frozen.Add(d.Frozen),
		Pending:     b.Pending.Add(d.Pending),
	}
}

// Available is the operational balance not held by withdrawals.
func (b Balances) Available() decimal.Decimal {
	return b.Operational.Sub(b.Frozen)
}

// Equal compares all tiers exactly.
func (b Balances) Equal(o Balances) bool {
	return b.Operational.Equal(o.Operational) && b.Frozen.Equal(o.Frozen) && b.Pending.Equal(o.Pending)
}

// Violations lists broken balance invariants. Transient violations can happen
// under concurrent withdrawals; they are reported, not rejected.
func (b Balances) Violations() []string {
	var v []string
	if b.Operational.IsNegative() {
		v = append(v, "operational balance is negative")
	}
	if b.Frozen.IsNegative() {
		v = append(v, "frozen balance is negative")
	}
	if b.Pending.IsNegative() {
		v = append(v, "pending balance is negative")
	}
	if b.Frozen.GreaterThan(b.Operational) {
		v = append(v, "frozen balance exceeds operational balance")
	}
	return v
}

// CurrencyWallet is a merchant balance for one payment system and currency.
type CurrencyWallet struct {
	ID            uuid.UUID `json:"id"`
	WalletID      uuid.UUID `json:"wallet_id"`
	MerchantID    uuid.UUID `json:"merchant_id"`
	PaymentSystem string    `json:"payment_system"`
	Currency      string    `json:"currency"`
	Balances
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
