package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/shared"
)

func TestTransactionKind_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     TransactionKind
		expected bool
	}{
		{"purchase is valid", TransactionKindPurchase, true},
		{"sale is valid", TransactionKindSale, true},
		{"adjustment is valid", TransactionKindAdjustment, true},
		{"unknown is not valid", TransactionKind("transfer"), false},
		{"empty is not valid", TransactionKind(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.IsValid())
		})
	}
}

func TestNewInventoryTransaction(t *testing.T) {
	productID := uuid.New()
	refID := uuid.New()

	t.Run("records a purchase", func(t *testing.T) {
		tx, err := NewInventoryTransaction(productID, TransactionKindPurchase,
			decimal.NewFromInt(10), decimal.NewFromInt(15), ReferencePurchaseItem, &refID)
		require.NoError(t, err)
		assert.Equal(t, productID, tx.ProductID)
		assert.True(t, tx.IsIncrease())
		assert.True(t, tx.QuantityBefore().Equal(decimal.NewFromInt(5)))
		assert.Equal(t, &refID, tx.ReferenceID)
	})

	t.Run("records a sale", func(t *testing.T) {
		tx, err := NewInventoryTransaction(productID, TransactionKindSale,
			decimal.NewFromInt(-3), decimal.NewFromInt(2), ReferenceSaleItem, &refID)
		require.NoError(t, err)
		assert.False(t, tx.IsIncrease())
		assert.True(t, tx.QuantityBefore().Equal(decimal.NewFromInt(5)))
	})

	t.Run("adjustments may go either way", func(t *testing.T) {
		_, err := NewInventoryTransaction(productID, TransactionKindAdjustment,
			decimal.NewFromInt(-1), decimal.Zero, ReferenceManual, nil)
		require.NoError(t, err)
		_, err = NewInventoryTransaction(productID, TransactionKindAdjustment,
			decimal.NewFromInt(1), decimal.NewFromInt(1), ReferenceManual, nil)
		require.NoError(t, err)
	})

	tests := []struct {
		name      string
		productID uuid.UUID
		kind      TransactionKind
		delta     decimal.Decimal
		after     decimal.Decimal
	}{
		{"empty product", uuid.Nil, TransactionKindPurchase, decimal.NewFromInt(1), decimal.NewFromInt(1)},
		{"unknown kind", productID, TransactionKind("x"), decimal.NewFromInt(1), decimal.NewFromInt(1)},
		{"zero delta", productID, TransactionKindAdjustment, decimal.Zero, decimal.NewFromInt(1)},
		{"negative result", productID, TransactionKindSale, decimal.NewFromInt(-1), decimal.NewFromInt(-1)},
		{"negative purchase", productID, TransactionKindPurchase, decimal.NewFromInt(-1), decimal.Zero},
		{"positive sale", productID, TransactionKindSale, decimal.NewFromInt(1), decimal.NewFromInt(1)},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewInventoryTransaction(tt.productID, tt.kind, tt.delta, tt.after, ReferenceManual, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestInventoryTransaction_Builders(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tx, err := NewInventoryTransaction(uuid.New(), TransactionKindPurchase,
		decimal.NewFromInt(2), decimal.NewFromInt(2), ReferencePurchaseItem, nil)
	require.NoError(t, err)

	tx.WithUnitCost(decimal.RequireFromString("15.50")).WithNotes("first batch").WithCreatedAt(at)

	assert.Equal(t, "15.5", tx.UnitCostGTQ.String())
	assert.Equal(t, "first batch", tx.Notes)
	assert.Equal(t, at, tx.CreatedAt)
}
