// Package settings holds the process-wide configuration values that are
// edited at runtime, currently the USD to GTQ exchange rate.
package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/shared/valueobject"
)

// SingletonID is the primary key of the only settings row
const SingletonID = 1

// SystemSettings is the singleton settings record
type SystemSettings struct {
	ID           int
	USDToGTQRate decimal.Decimal
	UpdatedAt    time.Time
}

// NewSystemSettings returns settings with the default rate
func NewSystemSettings() *SystemSettings {
	return &SystemSettings{
		ID:           SingletonID,
		USDToGTQRate: valueobject.DefaultUSDToGTQ,
		UpdatedAt:    time.Now(),
	}
}

// NewSystemSettingsWithRate returns settings holding rate, which must be positive
func NewSystemSettingsWithRate(rate decimal.Decimal) (*SystemSettings, error) {
	s := NewSystemSettings()
	if err := s.UpdateExchangeRate(rate); err != nil {
		return nil, err
	}
	return s, nil
}

// ExchangeRate validates and returns the stored rate
func (s *SystemSettings) ExchangeRate() (valueobject.ExchangeRate, error) {
	return valueobject.NewExchangeRate(s.USDToGTQRate)
}

// UpdateExchangeRate replaces the rate. The value must be positive.
func (s *SystemSettings) UpdateExchangeRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return shared.NewInvalidInputError("exchange rate must be greater than zero, got %s", rate)
	}
	s.USDToGTQRate = rate.Round(4)
	s.UpdatedAt = time.Now()
	return nil
}

// Repository persists the settings singleton
type Repository interface {
	// Get returns the stored settings, creating the default row when none exists
	Get(ctx context.Context) (*SystemSettings, error)
	Save(ctx context.Context, settings *SystemSettings) error
	// Seed inserts settings only when no row exists and reports whether it did
	Seed(ctx context.Context, settings *SystemSettings) (bool, error)
}
