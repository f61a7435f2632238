// Package money provides an exact-decimal amount bound to a currency.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNonPositive      = errors.New("amount must be greater than zero")
	ErrPrecision        = errors.New("amount exceeds currency precision")
)

// scales lists the number of fractional digits each supported currency carries.
var scales = map[string]int32{
	"USD":  2,
	"EUR":  2,
	"GBP":  2,
	"MXN":  2,
	"BRL":  2,
	"CAD":  2,
	"INR":  2,
	"VND":  0,
	"JPY":  0,
	"KRW":  0,
	"KWD":  3,
	"BHD":  3,
	"USDT": 6,
	"BTC":  8,
}

// Scale returns the fractional digits of currency.
func Scale(currency string) (int32, error) {
	s, ok := scales[strings.ToUpper(currency)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}
	return s, nil
}

// IsSupported reports whether currency is in the scale table.
func IsSupported(currency string) bool {
	_, ok := scales[strings.ToUpper(currency)]
	return ok
}

// Money is an amount in a single currency. The zero value is not valid.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// New validates amount against the currency and returns a positive Money.
func New(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(currency)
	scale, err := Scale(currency)
	if err != nil {
		return Money{}, err
	}
	if !amount.IsPositive() {
		return Money{}, ErrNonPositive
	}
	if !amount.Equal(amount.Truncate(scale)) {
		return Money{}, fmt.Errorf("%w: %s allows %d decimal places", ErrPrecision, currency, scale)
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Parse builds a Money from its decimal string representation.
func Parse(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return New(d, currency)
}

// FromMinorUnits converts an integer count of minor units (cents) to Money.
func FromMinorUnits(units int64, currency string) (Money, error) {
	scale, err := Scale(currency)
	if err != nil {
		return Money{}, err
	}
	return New(decimal.New(units, -scale), currency)
}

// MinorUnits returns the amount as an integer count of minor units.
func (m Money) MinorUnits() (int64, error) {
	scale, err := Scale(m.Currency)
	if err != nil {
		return 0, err
	}
	shifted := m.Amount.Shift(scale)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrPrecision
	}
	return shifted.IntPart(), nil
}

// Add sums two amounts of the same currency.
func (m Money) Add(o Money) (Money, error) {
	if !m.SameCurrency(o) {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}, nil
}

// Sub subtracts o from m. The result may be zero or negative.
func (m Money) Sub(o Money) (Money, error) {
	if !m.SameCurrency(o) {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}, nil
}

// SameCurrency compares currency codes case-insensitively.
func (m Money) SameCurrency(o Money) bool {
	return strings.EqualFold(m.Currency, o.Currency)
}

// Equal reports exact equality of amount and currency.
func (m Money) Equal(o Money) bool {
	return m.SameCurrency(o) && m.Amount.Equal(o.Amount)
}

// EqualWithin compares both amounts after rounding to precision places.
// A negative precision falls back to the currency scale.
func (m Money) EqualWithin(o Money, precision int32) bool {
	if !m.SameCurrency(o) {
		return false
	}
	if precision < 0 {
		s, err := Scale(m.Currency)
		if err != nil {
			return m.Amount.Equal(o.Amount)
		}
		precision = s
	}
	return m.Amount.Round(precision).Equal(o.Amount.Round(precision))
}

// String renders the amount at currency scale, e.g. "100.00 USD".
func (m Money) String() string {
	scale, err := Scale(m.Currency)
	if err != nil {
		return m.Amount.String() + " " + m.Currency
	}
	return m.Amount.StringFixed(scale) + " " + m.Currency
}
