package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/shared"
)

func TestToGTQ(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{"whole dollars", "2", "7.75", "15.50"},
		{"rounds half up", "1.001", "7.75", "7.76"},
		{"rounds down below half", "1.0001", "7.75", "7.75"},
		{"zero amount", "0", "7.75", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGTQ(dec(tt.amount), dec(tt.rate))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestToGTQ_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []decimal.Decimal{decimal.Zero, dec("-7.75")} {
		_, err := ToGTQ(dec("10"), rate)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
	}
}

func TestUnitToGTQ(t *testing.T) {
	got, err := UnitToGTQ(dec("5"), dec("6"), dec("7.65"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("6.38")), got.String())

	rounded, err := ToGTQ(dec("0.8333"), dec("7.65"))
	require.NoError(t, err)
	assert.True(t, rounded.Equal(dec("6.37")), "a pre-rounded unit cost loses the half cent")

	_, err = UnitToGTQ(dec("5"), decimal.Zero, dec("7.65"))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	_, err = UnitToGTQ(dec("5"), dec("6"), decimal.Zero)
	assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
}

func TestExchangeRate_Convert(t *testing.T) {
	rate := MustExchangeRate("7.75")

	got, err := rate.Convert(NewMoneyUSD(dec("20")))
	require.NoError(t, err)
	assert.Equal(t, GTQ, got.Currency())
	assert.True(t, got.Amount().Equal(dec("155")))

	_, err = rate.Convert(NewMoneyGTQ(dec("1")))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewExchangeRate(decimal.Zero)
	assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
}
