package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/shared/valueobject"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	p, err := NewPurchase("iHerb", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestPurchaseStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PurchaseStatus
		isValid bool
	}{
		{PurchaseStatusPending, true},
		{PurchaseStatusReceived, true},
		{PurchaseStatusCancelled, true},
		{PurchaseStatus("delivered"), false},
		{PurchaseStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestNewPurchaseItem(t *testing.T) {
	purchaseID := uuid.New()

	item, err := NewPurchaseItem(purchaseID, uuid.New(), dec("4"), dec("25"), dec("10"))
	require.NoError(t, err)
	assert.True(t, item.ItemCost().Equal(dec("90")))

	tests := []struct {
		name      string
		productID uuid.UUID
		qty       string
		unit      string
		discount  string
	}{
		{"empty product", uuid.Nil, "1", "1", "0"},
		{"zero quantity", uuid.New(), "0", "1", "0"},
		{"negative cost", uuid.New(), "1", "-1", "0"},
		{"negative discount", uuid.New(), "1", "1", "-1"},
		{"discount above amount", uuid.New(), "1", "1", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPurchaseItem(purchaseID, tt.productID, dec(tt.qty), dec(tt.unit), dec(tt.discount))
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestPurchase_CanReceive(t *testing.T) {
	t.Run("missing real costs", func(t *testing.T) {
		p := createTestPurchase(t)
		_, err := p.AddItem(uuid.New(), dec("1"), dec("10"), decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, p.SetEstimatedCosts(dec("5"), dec("1")))

		err = p.CanReceive()
		assert.True(t, errors.Is(err, shared.ErrMissingRealCosts))
	})

	t.Run("no items", func(t *testing.T) {
		p := createTestPurchase(t)
		require.NoError(t, p.SetRealCosts(decimal.Zero, decimal.Zero))
		assert.True(t, errors.Is(p.CanReceive(), shared.ErrInvalidState))
	})

	t.Run("cancelled", func(t *testing.T) {
		p := createTestPurchase(t)
		require.NoError(t, p.Cancel())
		assert.True(t, errors.Is(p.CanReceive(), shared.ErrInvalidState))
	})
}

func TestPurchase_LandedCosts_ProRata(t *testing.T) {
	p := createTestPurchase(t)
	a, err := p.AddItem(uuid.New(), dec("4"), dec("20"), decimal.Zero)
	require.NoError(t, err)
	b, err := p.AddItem(uuid.New(), dec("2"), dec("10"), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, p.SetRealCosts(dec("7"), dec("3")))

	landed, err := p.LandedCosts()
	require.NoError(t, err)
	require.Len(t, landed, 2)

	assert.Equal(t, a.ID, landed[0].ItemID)
	assert.True(t, landed[0].LogisticsUSD.Equal(dec("8")))
	assert.True(t, landed[0].LandedUnitCostUSD.Equal(dec("22")))
	assert.Equal(t, b.ID, landed[1].ItemID)
	assert.True(t, landed[1].LogisticsUSD.Equal(dec("2")))
	assert.True(t, landed[1].LandedUnitCostUSD.Equal(dec("11")))
	assert.True(t, landed[1].LogisticsPerUnitUSD.Equal(dec("1")))
}

func TestPurchase_LandedCosts_ZeroCostItemGetsNoLogistics(t *testing.T) {
	p := createTestPurchase(t)
	_, err := p.AddItem(uuid.New(), dec("1"), dec("10"), dec("10"))
	require.NoError(t, err)
	_, err = p.AddItem(uuid.New(), dec("3"), dec("10"), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, p.SetRealCosts(dec("3"), decimal.Zero))

	landed, err := p.LandedCosts()
	require.NoError(t, err)
	assert.True(t, landed[0].LogisticsUSD.IsZero())
	assert.True(t, landed[0].LandedUnitCostUSD.IsZero())
	assert.True(t, landed[1].LogisticsUSD.Equal(dec("3")))
	assert.True(t, landed[1].LandedUnitCostUSD.Equal(dec("11")))
}

func TestPurchase_MarkReceived(t *testing.T) {
	p := createTestPurchase(t)
	_, err := p.AddItem(uuid.New(), dec("10"), dec("2"), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, p.SetRealCosts(decimal.Zero, decimal.Zero))

	landed, err := p.LandedCosts()
	require.NoError(t, err)
	delivered := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.MarkReceived(landed, valueobject.MustExchangeRate("7.75"), delivered))

	assert.Equal(t, PurchaseStatusReceived, p.Status)
	require.NotNil(t, p.DeliveryDate)
	assert.Equal(t, delivered, *p.DeliveryDate)
	assert.True(t, p.Items[0].UnitCostGTQ.Equal(dec("15.50")))
	assert.True(t, p.ExchangeRate.Equal(dec("7.75")))

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypePurchaseReceived, events[0].EventType())

	err = p.MarkReceived(landed, valueobject.MustExchangeRate("7.75"), delivered)
	assert.True(t, errors.Is(err, shared.ErrAlreadyReceived))
}

func TestPurchase_MarkReceived_ConvertsUnroundedLandedCost(t *testing.T) {
	p := createTestPurchase(t)
	_, err := p.AddItem(uuid.New(), dec("6"), dec("1"), dec("1"))
	require.NoError(t, err)
	require.NoError(t, p.SetRealCosts(decimal.Zero, decimal.Zero))

	landed, err := p.LandedCosts()
	require.NoError(t, err)
	require.NoError(t, p.MarkReceived(landed, valueobject.MustExchangeRate("7.65"), time.Now()))

	// 5 x 7.65 / 6 = 6.375 rounds up; 0.8333 x 7.65 = 6.3747 would not
	assert.True(t, p.Items[0].LandedUnitCostUSD.Equal(dec("0.8333")))
	assert.True(t, p.Items[0].UnitCostGTQ.Equal(dec("6.38")), p.Items[0].UnitCostGTQ.String())
}

func TestPurchase_RevertReceipt(t *testing.T) {
	p := createTestPurchase(t)
	_, err := p.AddItem(uuid.New(), dec("1"), dec("2"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, errors.Is(p.RevertReceipt(), shared.ErrInvalidState))

	require.NoError(t, p.SetRealCosts(decimal.Zero, decimal.Zero))
	landed, err := p.LandedCosts()
	require.NoError(t, err)
	require.NoError(t, p.MarkReceived(landed, valueobject.MustExchangeRate("8"), time.Now()))

	require.NoError(t, p.RevertReceipt())
	assert.Equal(t, PurchaseStatusPending, p.Status)
	assert.Nil(t, p.DeliveryDate)
	assert.True(t, p.Items[0].UnitCostGTQ.IsZero())
}

func TestPurchase_Totals(t *testing.T) {
	p := createTestPurchase(t)
	_, err := p.AddItem(uuid.New(), dec("2"), dec("30"), dec("5"))
	require.NoError(t, err)
	require.NoError(t, p.SetEstimatedCosts(dec("4"), dec("1")))

	assert.True(t, p.ProductCost().Equal(dec("55")))
	assert.Nil(t, p.RealLogisticsCost())
	assert.True(t, p.RealTotal().Equal(dec("60")))

	require.NoError(t, p.SetRealCosts(dec("6"), dec("2")))
	assert.True(t, p.RealTotal().Equal(dec("63")))
}

func TestPurchase_ModificationsRequirePending(t *testing.T) {
	p := createTestPurchase(t)
	require.NoError(t, p.Cancel())

	_, err := p.AddItem(uuid.New(), dec("1"), dec("1"), decimal.Zero)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.True(t, errors.Is(p.SetRealCosts(dec("1"), dec("1")), shared.ErrInvalidState))
	assert.True(t, errors.Is(p.Cancel(), shared.ErrInvalidState))
}
