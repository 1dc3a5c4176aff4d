package valueobject

import (
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// DefaultUSDToGTQ is the rate a fresh installation starts with
var DefaultUSDToGTQ = decimal.RequireFromString("7.75")

// ExchangeRate is the number of GTQ paid for one USD.
// It is read from the settings store and passed explicitly to every conversion.
type ExchangeRate struct {
	rate decimal.Decimal
}

// NewExchangeRate validates a USD→GTQ rate. A non-positive rate is a configuration error.
func NewExchangeRate(rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, shared.NewInvalidConfigurationError(
			"exchange rate must be greater than zero, got %s", rate.String())
	}
	return ExchangeRate{rate: rate}, nil
}

// MustExchangeRate is NewExchangeRate for constants and tests
func MustExchangeRate(rate string) ExchangeRate {
	r, err := NewExchangeRate(decimal.RequireFromString(rate))
	if err != nil {
		panic(err)
	}
	return r
}

// Rate returns the scalar rate
func (r ExchangeRate) Rate() decimal.Decimal {
	return r.rate
}

// Convert turns a USD amount into GTQ rounded to cents
func (r ExchangeRate) Convert(amount Money) (Money, error) {
	if amount.Currency() != USD {
		return Money{}, shared.NewInvalidInputError("cannot convert %s amount to GTQ", amount.Currency())
	}
	gtq, err := ToGTQ(amount.Amount(), r.rate)
	if err != nil {
		return Money{}, err
	}
	return NewMoneyGTQ(gtq), nil
}

// ToGTQ converts amountUSD with rate and rounds half-up to 2 decimal places.
// A rate <= 0 fails with INVALID_CONFIGURATION.
func ToGTQ(amountUSD, rate decimal.Decimal) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, shared.NewInvalidConfigurationError(
			"exchange rate must be greater than zero, got %s", rate.String())
	}
	return amountUSD.Mul(rate).Round(MoneyPlaces), nil
}

// UnitToGTQ converts a USD total for quantity units into a GTQ unit cost.
// The division happens after the conversion so only the final cent rounding applies.
func UnitToGTQ(totalUSD, quantity, rate decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity.String())
	}
	if !rate.IsPositive() {
		return decimal.Zero, shared.NewInvalidConfigurationError(
			"exchange rate must be greater than zero, got %s", rate.String())
	}
	return totalUSD.Mul(rate).Div(quantity).Round(MoneyPlaces), nil
}
