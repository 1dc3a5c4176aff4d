package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
)

func costedItem(t *testing.T, sale *Sale, qty, price, totalCost string) *SaleItem {
	t.Helper()
	item, err := NewSaleItem(sale.ID, uuid.New(), dec(qty), dec(price))
	require.NoError(t, err)
	q := dec(qty)
	total := dec(totalCost)
	require.NoError(t, item.ApplyCost(inventory.FIFOResult{
		Quantity:  q,
		TotalCost: total,
		UnitCost:  total.Div(q),
		Breakdown: []inventory.LayerConsumption{
			{LayerID: uuid.New(), Seq: 1, Quantity: q, UnitCostGTQ: total.Div(q)},
		},
	}))
	return item
}

func TestNewSaleItem_Validation(t *testing.T) {
	saleID := uuid.New()
	tests := []struct {
		name  string
		qty   string
		price string
	}{
		{"zero quantity", "0", "10"},
		{"negative quantity", "-2", "10"},
		{"zero price", "1", "0"},
		{"negative price", "1", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSaleItem(saleID, uuid.New(), dec(tt.qty), dec(tt.price))
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestSaleItem_ApplyCost(t *testing.T) {
	sale, err := NewSale("Ana", time.Now())
	require.NoError(t, err)

	item := costedItem(t, sale, "7", "15", "74")
	assert.True(t, item.TotalPrice.Equal(dec("105")))
	assert.True(t, item.TotalCost.Equal(dec("74")))
	assert.True(t, item.Profit.Equal(dec("31")))
	assert.Equal(t, "10.5714", item.UnitCostGTQ.String())
}

func TestSaleItem_NegativeProfitAllowed(t *testing.T) {
	sale, err := NewSale("", time.Now())
	require.NoError(t, err)

	item := costedItem(t, sale, "2", "10", "31")
	assert.True(t, item.Profit.Equal(dec("-11")))
}

func TestSaleItem_ApplyCostQuantityMismatch(t *testing.T) {
	item, err := NewSaleItem(uuid.New(), uuid.New(), dec("2"), dec("10"))
	require.NoError(t, err)
	err = item.ApplyCost(inventory.FIFOResult{Quantity: dec("1")})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestSale_AggregatesAndRemoval(t *testing.T) {
	sale, err := NewSale("Ana", time.Now())
	require.NoError(t, err)

	first := costedItem(t, sale, "2", "50", "60")
	second := costedItem(t, sale, "1", "40", "45")
	require.NoError(t, sale.AddItem(first))
	require.NoError(t, sale.AddItem(second))

	assert.True(t, sale.TotalRevenue.Equal(dec("140")))
	assert.True(t, sale.TotalCost.Equal(dec("105")))
	assert.True(t, sale.Profit.Equal(dec("35")))

	removed, err := sale.RemoveItem(second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, removed.ID)
	assert.True(t, sale.TotalRevenue.Equal(dec("100")))
	assert.True(t, sale.Profit.Equal(dec("40")))

	_, err = sale.RemoveItem(uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSale_AddItemRequiresCosting(t *testing.T) {
	sale, err := NewSale("", time.Now())
	require.NoError(t, err)
	item, err := NewSaleItem(sale.ID, uuid.New(), dec("1"), dec("1"))
	require.NoError(t, err)
	assert.True(t, errors.Is(sale.AddItem(item), shared.ErrInvalidState))
}

func TestSale_CompleteIsStatusOnly(t *testing.T) {
	sale, err := NewSale("", time.Now())
	require.NoError(t, err)
	assert.True(t, errors.Is(sale.Complete(), shared.ErrInvalidState), "no items")

	item := costedItem(t, sale, "1", "20", "12")
	require.NoError(t, sale.AddItem(item))
	require.NoError(t, sale.Complete())

	assert.Equal(t, SaleStatusCompleted, sale.Status)
	assert.NotNil(t, sale.CompletedAt)
	assert.True(t, sale.TotalCost.Equal(dec("12")))

	assert.True(t, errors.Is(sale.EnsureEditable(), shared.ErrInvalidState))
	assert.True(t, errors.Is(sale.Complete(), shared.ErrInvalidState))
}

func TestSale_Cancel(t *testing.T) {
	sale, err := NewSale("", time.Now())
	require.NoError(t, err)
	require.NoError(t, sale.Cancel())
	assert.Equal(t, SaleStatusCancelled, sale.Status)
	assert.True(t, errors.Is(sale.Cancel(), shared.ErrInvalidState))
}
