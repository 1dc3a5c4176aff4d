package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/shared"
)

func TestNewCostLayer(t *testing.T) {
	itemID := uuid.New()
	l, err := NewCostLayer(uuid.New(), dec("15.50"), dec("4"), LayerOrigin{
		PurchaseItemID:      &itemID,
		BaseUnitCostUSD:     dec("1.8"),
		LogisticsPerUnitUSD: dec("0.2"),
	})
	require.NoError(t, err)
	assert.True(t, l.QuantityRemaining.Equal(l.OriginalQuantity))
	assert.False(t, l.IsConsumed())
	assert.False(t, l.IsExhausted())
	assert.Equal(t, &itemID, l.PurchaseItemID)

	_, err = NewCostLayer(uuid.Nil, dec("1"), dec("1"), LayerOrigin{})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	_, err = NewCostLayer(uuid.New(), dec("1"), decimal.Zero, LayerOrigin{})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	_, err = NewCostLayer(uuid.New(), dec("-1"), dec("1"), LayerOrigin{})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestCostLayer_Restore(t *testing.T) {
	l := layer(t, uuid.New(), 1, "5", "10")
	require.NoError(t, l.take(dec("3")))
	assert.True(t, l.IsConsumed())

	require.NoError(t, l.Restore(dec("2")))
	assert.True(t, l.QuantityRemaining.Equal(dec("4")))

	err := l.Restore(dec("2"))
	assert.True(t, errors.Is(err, shared.ErrInvalidState), "cannot exceed original quantity")
	assert.True(t, l.QuantityRemaining.Equal(dec("4")))
}

func TestCostLayer_Drain(t *testing.T) {
	l := layer(t, uuid.New(), 1, "5", "10")
	drained, err := l.Drain()
	require.NoError(t, err)
	assert.True(t, drained.Equal(dec("5")))
	assert.True(t, l.IsExhausted())

	consumed := layer(t, uuid.New(), 1, "5", "10")
	require.NoError(t, consumed.take(dec("1")))
	_, err = consumed.Drain()
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}
