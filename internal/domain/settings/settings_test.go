package settings

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/shared"
)

func TestSystemSettings_Defaults(t *testing.T) {
	s := NewSystemSettings()
	rate, err := s.ExchangeRate()
	require.NoError(t, err)
	assert.Equal(t, "7.75", rate.Rate().String())
	assert.Equal(t, SingletonID, s.ID)
}

func TestSystemSettings_UpdateExchangeRate(t *testing.T) {
	s := NewSystemSettings()
	require.NoError(t, s.UpdateExchangeRate(decimal.RequireFromString("7.80125")))
	assert.Equal(t, "7.8013", s.USDToGTQRate.String())

	err := s.UpdateExchangeRate(decimal.Zero)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, "7.8013", s.USDToGTQRate.String())
}

func TestSystemSettings_CorruptRateIsConfigurationError(t *testing.T) {
	s := &SystemSettings{ID: SingletonID, USDToGTQRate: decimal.NewFromInt(-1)}
	_, err := s.ExchangeRate()
	assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
}

func TestNewSystemSettingsWithRate(t *testing.T) {
	s, err := NewSystemSettingsWithRate(decimal.RequireFromString("7.8123456"))
	require.NoError(t, err)
	assert.True(t, s.USDToGTQRate.Equal(decimal.RequireFromString("7.8123")))

	_, err = NewSystemSettingsWithRate(decimal.Zero)
	assert.Error(t, err)
}
