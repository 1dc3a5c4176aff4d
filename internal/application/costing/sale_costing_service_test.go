package costing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apptrade "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
)

func saleInput(productID uuid.UUID, qty, price string) apptrade.SaleItemInput {
	return apptrade.SaleItemInput{ProductID: productID, Quantity: dec(qty), UnitPriceGTQ: dec(price)}
}

// twoLayers receives 5 units at Q77.50 and then 5 units at Q155.00
func twoLayers(t *testing.T, f *fixture) uuid.UUID {
	t.Helper()
	productID := f.product(t, "Whey")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "5", unitUSD: "10"})
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "5", unitUSD: "20"})
	return productID
}

func TestCreateSaleItem_RoundTripCost(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Whey 2lb")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "10", unitUSD: "2"})
	saleID := f.openSale(t)

	item, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "10", "20"))
	require.NoError(t, err)

	assert.True(t, item.TotalCost.Equal(dec("155.00")), "10 * 2 * 7.75")
	assert.True(t, item.UnitCostGTQ.Equal(dec("15.50")))
	assert.True(t, item.TotalPrice.Equal(dec("200")))
	assert.True(t, item.Profit.Equal(dec("45")))

	product := f.loadProduct(t, productID)
	assert.True(t, product.CurrentStock.IsZero())
	f.requireStockMatchesLayers(t, productID)
}

func TestCreateSaleItem_SpansLayersFIFO(t *testing.T) {
	f := newFixture(t)
	productID := twoLayers(t, f)
	saleID := f.openSale(t)

	item, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "7", "150"))
	require.NoError(t, err)

	// 5*77.50 + 2*155.00
	assert.True(t, item.TotalCost.Equal(dec("697.50")))
	assert.True(t, item.UnitCostGTQ.Equal(dec("99.6429")))
	assert.True(t, item.TotalPrice.Equal(dec("1050")))
	assert.True(t, item.Profit.Equal(dec("352.50")))
	require.Len(t, item.Consumptions, 2)
	assert.Equal(t, int64(1), item.Consumptions[0].Seq)
	assert.True(t, item.Consumptions[0].Quantity.Equal(dec("5")))
	assert.Equal(t, int64(2), item.Consumptions[1].Seq)
	assert.True(t, item.Consumptions[1].Quantity.Equal(dec("2")))

	layers, _ := f.store.CostLayerRepo().FindByProduct(context.Background(), productID)
	assert.True(t, layers[0].QuantityRemaining.IsZero())
	assert.True(t, layers[1].QuantityRemaining.Equal(dec("3")))

	product := f.loadProduct(t, productID)
	assert.True(t, product.CurrentStock.Equal(dec("3")))
	assert.True(t, product.AverageCostGTQ.Equal(dec("155")))
	f.requireStockMatchesLayers(t, productID)

	sale := f.loadSale(t, saleID)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.TotalRevenue.Equal(dec("1050")))
	assert.True(t, sale.TotalCost.Equal(dec("697.50")))
	assert.True(t, sale.Profit.Equal(dec("352.50")))

	ledger := f.ledgerFor(productID)
	require.Len(t, ledger, 3)
	assert.Equal(t, inventory.TransactionKindSale, ledger[2].Kind)
	assert.True(t, ledger[2].QuantityChange.Equal(dec("-7")))
	assert.True(t, ledger[2].QuantityAfter.Equal(dec("3")))
	require.NotNil(t, ledger[2].ReferenceID)
	assert.Equal(t, item.ID, *ledger[2].ReferenceID)
}

func TestCreateSaleItem_NegativeProfitAllowed(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Bar")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "10", unitUSD: "2"})
	saleID := f.openSale(t)

	item, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "1", "10"))
	require.NoError(t, err)
	assert.True(t, item.Profit.Equal(dec("-5.50")))
}

func TestCreateSaleItem_InsufficientStockLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Creatine")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "3", unitUSD: "5"})
	saleID := f.openSale(t)

	_, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "5", "60"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "requested 5, available 3")

	assert.True(t, f.loadProduct(t, productID).CurrentStock.Equal(dec("3")))
	layers, _ := f.store.CostLayerRepo().FindByProduct(context.Background(), productID)
	assert.True(t, layers[0].QuantityRemaining.Equal(dec("3")))
	assert.Empty(t, f.loadSale(t, saleID).Items)
	assert.Len(t, f.ledgerFor(productID), 1)
}

func TestCreateSaleItem_InvalidInput(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Creatine")
	saleID := f.openSale(t)

	tests := []struct {
		name  string
		input apptrade.SaleItemInput
	}{
		{"zero quantity", saleInput(productID, "0", "10")},
		{"negative quantity", saleInput(productID, "-1", "10")},
		{"zero price", saleInput(productID, "1", "0")},
		{"missing product", saleInput(uuid.Nil, "1", "10")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sales.CreateSaleItem(context.Background(), saleID, tt.input)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestCreateSaleItem_UnknownReferences(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Creatine")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "3", unitUSD: "5"})

	_, err := f.sales.CreateSaleItem(context.Background(), uuid.New(), saleInput(productID, "1", "10"))
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.True(t, f.loadProduct(t, productID).CurrentStock.Equal(dec("3")))

	_, err = f.sales.CreateSaleItem(context.Background(), f.openSale(t), saleInput(uuid.New(), "1", "10"))
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestCreateSaleItem_CompletedSaleRejected(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Creatine")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "3", unitUSD: "5"})
	saleID := f.openSale(t)
	_, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "1", "60"))
	require.NoError(t, err)

	sale := f.loadSale(t, saleID)
	require.NoError(t, sale.Complete())
	require.NoError(t, f.store.SaleRepo().Save(context.Background(), sale))

	_, err = f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "1", "60"))
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.True(t, f.loadProduct(t, productID).CurrentStock.Equal(dec("2")))
}

func TestCreateSaleItem_LowStockEvent(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Creatine")
	product := f.loadProduct(t, productID)
	require.NoError(t, product.SetMinStockLevel(dec("2")))
	require.NoError(t, f.store.ProductRepo().Save(context.Background(), product))
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "5", unitUSD: "5"})

	_, err := f.sales.CreateSaleItem(context.Background(), f.openSale(t), saleInput(productID, "3", "60"))
	require.NoError(t, err)

	assert.Contains(t, f.publisher.Types(), inventory.EventTypeLowStockDetected)
	assert.Contains(t, f.publisher.Types(), trade.EventTypeSaleItemCosted)
	assert.True(t, f.loadProduct(t, productID).IsLowStock())
}

func TestCreateSale_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Whey")
	b := f.product(t, "Shaker")
	f.receive(t, "0", "0",
		purchaseLine{productID: a, qty: "5", unitUSD: "10"},
		purchaseLine{productID: b, qty: "1", unitUSD: "3"},
	)

	_, err := f.sales.CreateSale(context.Background(), apptrade.CreateSaleRequest{
		CustomerName: "Ana",
		Items: []apptrade.SaleItemInput{
			saleInput(a, "2", "100"),
			saleInput(b, "3", "30"),
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	assert.True(t, f.loadProduct(t, a).CurrentStock.Equal(dec("5")))
	assert.True(t, f.loadProduct(t, b).CurrentStock.Equal(dec("1")))
	assert.Empty(t, f.store.sales)
	assert.Len(t, f.ledgerFor(a), 1)
	f.requireStockMatchesLayers(t, a)
}

func TestCreateSale_RepeatedProductCountsTogether(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Whey")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "5", unitUSD: "10"})

	_, err := f.sales.CreateSale(context.Background(), apptrade.CreateSaleRequest{
		Items: []apptrade.SaleItemInput{
			saleInput(productID, "3", "100"),
			saleInput(productID, "3", "100"),
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "requested 6, available 5")
}

func TestCreateSale_Success(t *testing.T) {
	f := newFixture(t)
	a := twoLayers(t, f)
	b := f.product(t, "Shaker")
	f.receive(t, "0", "0", purchaseLine{productID: b, qty: "4", unitUSD: "2"})

	resp, err := f.sales.CreateSale(context.Background(), apptrade.CreateSaleRequest{
		CustomerName: "Luis",
		Items: []apptrade.SaleItemInput{
			saleInput(a, "6", "150"),
			saleInput(b, "2", "25"),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "pending", resp.Status)

	// a: 5*77.50 + 155.00 = 542.50, b: 2*15.50 = 31.00
	assert.True(t, resp.TotalCost.Equal(dec("573.50")))
	assert.True(t, resp.TotalRevenue.Equal(dec("950")))
	assert.True(t, resp.Profit.Equal(dec("376.50")))

	stored := f.loadSale(t, resp.ID)
	assert.Len(t, stored.Items, 2)
	assert.True(t, stored.TotalCost.Equal(dec("573.50")))
	f.requireStockMatchesLayers(t, a)
	f.requireStockMatchesLayers(t, b)
}

func TestDeleteSaleItem_RestoresLayers(t *testing.T) {
	f := newFixture(t)
	productID := twoLayers(t, f)
	saleID := f.openSale(t)
	item, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "7", "150"))
	require.NoError(t, err)

	resp, err := f.sales.DeleteSaleItem(context.Background(), saleID, item.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.TotalCost.IsZero())
	assert.True(t, resp.TotalRevenue.IsZero())

	layers, _ := f.store.CostLayerRepo().FindByProduct(context.Background(), productID)
	assert.True(t, layers[0].QuantityRemaining.Equal(dec("5")))
	assert.True(t, layers[1].QuantityRemaining.Equal(dec("5")))

	product := f.loadProduct(t, productID)
	assert.True(t, product.CurrentStock.Equal(dec("10")))
	assert.True(t, product.AverageCostGTQ.Equal(dec("116.25")))
	f.requireStockMatchesLayers(t, productID)

	ledger := f.ledgerFor(productID)
	last := ledger[len(ledger)-1]
	assert.Equal(t, inventory.TransactionKindAdjustment, last.Kind)
	assert.True(t, last.QuantityChange.Equal(dec("7")))
	assert.Equal(t, "sale item removed", last.Notes)

	// The next sale sees the restored layers in their original order.
	again, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "7", "150"))
	require.NoError(t, err)
	assert.True(t, again.TotalCost.Equal(dec("697.50")))
}

func TestDeleteSaleItem_UnknownItem(t *testing.T) {
	f := newFixture(t)
	saleID := f.openSale(t)
	_, err := f.sales.DeleteSaleItem(context.Background(), saleID, uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestUpdateSaleItem_RecostsFromRestoredLayers(t *testing.T) {
	f := newFixture(t)
	productID := twoLayers(t, f)
	saleID := f.openSale(t)
	item, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "7", "150"))
	require.NoError(t, err)

	updated, err := f.sales.UpdateSaleItem(context.Background(), saleID, item.ID, saleInput(productID, "2", "150"))
	require.NoError(t, err)
	assert.NotEqual(t, item.ID, updated.ID)
	assert.True(t, updated.TotalCost.Equal(dec("155")))

	sale := f.loadSale(t, saleID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, updated.ID, sale.Items[0].ID)
	assert.True(t, f.loadProduct(t, productID).CurrentStock.Equal(dec("8")))
	f.requireStockMatchesLayers(t, productID)
}

func TestUpdateSaleItem_FailureKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	productID := twoLayers(t, f)
	saleID := f.openSale(t)
	item, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "7", "150"))
	require.NoError(t, err)

	_, err = f.sales.UpdateSaleItem(context.Background(), saleID, item.ID, saleInput(productID, "11", "150"))
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	sale := f.loadSale(t, saleID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, item.ID, sale.Items[0].ID)
	assert.True(t, f.loadProduct(t, productID).CurrentStock.Equal(dec("3")))
}

func TestCancelSale_RestoresStock(t *testing.T) {
	f := newFixture(t)
	productID := twoLayers(t, f)
	saleID := f.openSale(t)
	_, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "4", "150"))
	require.NoError(t, err)
	_, err = f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "3", "150"))
	require.NoError(t, err)

	resp, err := f.sales.CancelSale(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CancelledAt)

	assert.True(t, f.loadProduct(t, productID).CurrentStock.Equal(dec("10")))
	f.requireStockMatchesLayers(t, productID)

	_, err = f.sales.CancelSale(context.Background(), saleID)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.True(t, f.loadProduct(t, productID).CurrentStock.Equal(dec("10")))
}

func TestCreateSaleItem_ConcurrentOversell(t *testing.T) {
	f := newFixture(t)
	productID := f.product(t, "Limited")
	f.receive(t, "0", "0", purchaseLine{productID: productID, qty: "10", unitUSD: "2"})
	saleID := f.openSale(t)

	const workers = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sales.CreateSaleItem(context.Background(), saleID, saleInput(productID, "1", "20"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, shared.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, workers-10, rejected)
	assert.True(t, f.loadProduct(t, productID).CurrentStock.IsZero())
	assert.Len(t, f.loadSale(t, saleID).Items, 10)
	f.requireStockMatchesLayers(t, productID)
	assert.Zero(t, f.locker.held())
}
