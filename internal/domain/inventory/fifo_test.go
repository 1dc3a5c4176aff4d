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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func layer(t *testing.T, productID uuid.UUID, seq int64, qty, cost string) *CostLayer {
	t.Helper()
	l, err := NewCostLayer(productID, dec(cost), dec(qty), LayerOrigin{})
	require.NoError(t, err)
	l.Seq = seq
	return l
}

func TestConsumeFIFO_SpansLayersOldestFirst(t *testing.T) {
	productID := uuid.New()
	l1 := layer(t, productID, 1, "5", "10")
	l2 := layer(t, productID, 2, "5", "12")
	l3 := layer(t, productID, 3, "5", "15")

	// Deliberately out of order; consumption follows Seq.
	result, err := ConsumeFIFO(productID, []*CostLayer{l3, l1, l2}, dec("7"))
	require.NoError(t, err)

	assert.True(t, result.TotalCost.Equal(dec("74")), "5*10 + 2*12")
	assert.Equal(t, "10.5714", result.UnitCost.Round(4).String())
	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, l1.ID, result.Breakdown[0].LayerID)
	assert.True(t, result.Breakdown[0].Quantity.Equal(dec("5")))
	assert.Equal(t, l2.ID, result.Breakdown[1].LayerID)
	assert.True(t, result.Breakdown[1].Quantity.Equal(dec("2")))

	assert.True(t, l1.QuantityRemaining.IsZero())
	assert.True(t, l2.QuantityRemaining.Equal(dec("3")))
	assert.True(t, l3.QuantityRemaining.Equal(dec("5")))
	assert.Len(t, result.Touched, 2)
}

func TestConsumeFIFO_ExactStock(t *testing.T) {
	productID := uuid.New()
	l1 := layer(t, productID, 1, "2", "9.50")
	l2 := layer(t, productID, 2, "3", "10")

	result, err := ConsumeFIFO(productID, []*CostLayer{l1, l2}, dec("5"))
	require.NoError(t, err)
	assert.True(t, result.TotalCost.Equal(dec("49")))
	assert.True(t, AvailableQuantity([]*CostLayer{l1, l2}).IsZero())
}

func TestConsumeFIFO_InsufficientLeavesLayersUntouched(t *testing.T) {
	productID := uuid.New()
	l1 := layer(t, productID, 1, "2", "10")
	l2 := layer(t, productID, 2, "2", "11")

	_, err := ConsumeFIFO(productID, []*CostLayer{l1, l2}, dec("5"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.True(t, l1.QuantityRemaining.Equal(dec("2")))
	assert.True(t, l2.QuantityRemaining.Equal(dec("2")))
}

func TestConsumeFIFO_RejectsNonPositiveQuantity(t *testing.T) {
	productID := uuid.New()
	l1 := layer(t, productID, 1, "2", "10")

	for _, q := range []string{"0", "-1"} {
		_, err := ConsumeFIFO(productID, []*CostLayer{l1}, dec(q))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput), q)
	}
}

func TestConsumeFIFO_SkipsExhaustedLayers(t *testing.T) {
	productID := uuid.New()
	l1 := layer(t, productID, 1, "2", "10")
	l1.QuantityRemaining = decimal.Zero
	l2 := layer(t, productID, 2, "2", "11")

	result, err := ConsumeFIFO(productID, []*CostLayer{l1, l2}, dec("1"))
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, l2.ID, result.Breakdown[0].LayerID)
}

func TestSortFIFO_TiesBrokenByID(t *testing.T) {
	productID := uuid.New()
	a := layer(t, productID, 1, "1", "1")
	b := layer(t, productID, 1, "1", "2")
	a.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

	layers := []*CostLayer{a, b}
	SortFIFO(layers)
	assert.Equal(t, b.ID, layers[0].ID)
}

func TestReverseFIFO(t *testing.T) {
	breakdown := []LayerConsumption{
		{LayerID: uuid.New(), Seq: 1, Quantity: dec("5"), UnitCostGTQ: dec("10")},
		{LayerID: uuid.New(), Seq: 2, Quantity: dec("2"), UnitCostGTQ: dec("12")},
	}
	reversed := ReverseFIFO(breakdown)
	assert.Equal(t, int64(2), reversed[0].Seq)
	assert.Equal(t, int64(1), reversed[1].Seq)
	assert.Equal(t, int64(1), breakdown[0].Seq, "input untouched")
}
