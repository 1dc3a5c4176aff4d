package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // purchase invoices
	GTQ Currency = "GTQ" // Guatemalan quetzal, the books currency
)

// MoneyPlaces is the number of decimal places money is presented with
const MoneyPlaces int32 = 2

// Money is a value object representing monetary amounts.
// It is immutable - all operations return new Money instances.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, currency)
}

// NewMoneyUSD creates a USD amount
func NewMoneyUSD(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: USD}
}

// NewMoneyGTQ creates a GTQ amount
func NewMoneyGTQ(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: GTQ}
}

// Zero returns zero money in the given currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is less than zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns the sum of two amounts in the same currency
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of two amounts in the same currency
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract %s from %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply multiplies the amount by a factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Divide divides the amount by a divisor
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, errors.New("division by zero")
	}
	return Money{amount: m.amount.Div(divisor), currency: m.currency}, nil
}

// Round rounds half away from zero, which equals half-up for the
// non-negative amounts the engine produces
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// Equals compares amount and currency
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns a string representation
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(MoneyPlaces))
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}{
		Amount:   m.amount.StringFixed(MoneyPlaces),
		Currency: m.currency,
	})
}

// AllocateProRata splits m across weights proportionally to each weight's share
// of the total. Shares are rounded to places; the rounding remainder goes to the
// last positive weight so the parts always sum to m. A zero weight receives zero,
// and if every weight is zero every part is zero.
func (m Money) AllocateProRata(weights []decimal.Decimal, places int32) ([]Money, error) {
	total := decimal.Zero
	lastPositive := -1
	for i, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("allocation weight %d is negative: %s", i, w)
		}
		if w.IsPositive() {
			lastPositive = i
		}
		total = total.Add(w)
	}

	parts := make([]Money, len(weights))
	for i := range parts {
		parts[i] = Zero(m.currency)
	}
	if lastPositive < 0 {
		return parts, nil
	}

	allocated := decimal.Zero
	for i, w := range weights {
		if !w.IsPositive() {
			continue
		}
		var share decimal.Decimal
		if i == lastPositive {
			share = m.amount.Sub(allocated)
		} else {
			share = m.amount.Mul(w).Div(total).Round(places)
			allocated = allocated.Add(share)
		}
		parts[i] = Money{amount: share, currency: m.currency}
	}
	return parts, nil
}
