package telemetry_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type stubInventoryProvider struct {
	lowStock int64
	value    decimal.Decimal
	err      error
}

func (p *stubInventoryProvider) LowStockCount(context.Context) (int64, error) {
	return p.lowStock, p.err
}

func (p *stubInventoryProvider) InventoryValue(context.Context) (decimal.Decimal, error) {
	return p.value, p.err
}

func TestNewBusinessMetrics(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  noop.NewMeterProvider().Meter("test"),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	require.NotNil(t, bm)
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Logger: zap.NewNop()})

	require.Error(t, err)
	assert.Nil(t, bm)
	assert.Equal(t, "NewBusinessMetrics: meter cannot be nil", err.Error())
}

func TestBusinessMetrics_SaleCompleted(t *testing.T) {
	reader, provider := newManualMeter(t)
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)
	ctx := context.Background()

	bm.RecordSaleCompleted(ctx, decimal.RequireFromString("300"), decimal.RequireFromString("232.50"), decimal.RequireFromString("67.50"))
	bm.RecordSaleCompleted(ctx, decimal.RequireFromString("50"), decimal.RequireFromString("60"), decimal.RequireFromString("-10"))

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), intSum(t, metrics["supp_sales_completed_total"]))
	assert.InDelta(t, 350, floatSum(t, metrics["supp_sales_revenue_gtq_total"]), 1e-9)
	assert.InDelta(t, 292.5, floatSum(t, metrics["supp_sales_cost_gtq_total"]), 1e-9)

	hist, ok := metrics["supp_sale_profit_gtq"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.InDelta(t, 57.5, hist.DataPoints[0].Sum, 1e-9)
}

func TestBusinessMetrics_RecordRejection(t *testing.T) {
	reader, provider := newManualMeter(t)
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)
	ctx := context.Background()

	bm.RecordRejection(ctx, shared.CodeInsufficientStock, telemetry.MovementSale)
	bm.RecordRejection(ctx, shared.CodeInsufficientStock, telemetry.MovementSale)
	bm.RecordRejection(ctx, shared.CodeMissingRealCosts, telemetry.MovementPurchase)

	sum, ok := collect(t, reader)["supp_costing_rejections_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 2)
	for _, dp := range sum.DataPoints {
		code, _ := dp.Attributes.Value(telemetry.AttrRejectionCode)
		switch code.AsString() {
		case shared.CodeInsufficientStock:
			assert.Equal(t, int64(2), dp.Value)
		case shared.CodeMissingRealCosts:
			assert.Equal(t, int64(1), dp.Value)
		default:
			t.Fatalf("unexpected rejection code %q", code.AsString())
		}
	}
}

func TestBusinessMetrics_CollectInventoryMetrics(t *testing.T) {
	reader, provider := newManualMeter(t)
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:             provider.Meter("test"),
		InventoryProvider: &stubInventoryProvider{lowStock: 3, value: decimal.RequireFromString("4650.75")},
	})
	require.NoError(t, err)

	bm.CollectInventoryMetrics(context.Background())

	metrics := collect(t, reader)
	low, ok := metrics["supp_inventory_low_stock_products"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Equal(t, int64(3), low.DataPoints[0].Value)

	value, ok := metrics["supp_inventory_value_gtq"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	assert.InDelta(t, 4650.75, value.DataPoints[0].Value, 1e-9)
}

func TestBusinessMetrics_CollectInventoryMetrics_ProviderError(t *testing.T) {
	reader, provider := newManualMeter(t)
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:             provider.Meter("test"),
		InventoryProvider: &stubInventoryProvider{err: errors.New("db down")},
	})
	require.NoError(t, err)

	bm.CollectInventoryMetrics(context.Background())

	_, recorded := collect(t, reader)["supp_inventory_low_stock_products"]
	assert.False(t, recorded)
}

func TestBusinessMetrics_PeriodicCollection(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:             noop.NewMeterProvider().Meter("test"),
		InventoryProvider: &stubInventoryProvider{},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bm.StartPeriodicCollection(ctx, 10*time.Millisecond)
	bm.StartPeriodicCollection(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	bm.Stop()
	bm.Stop()
}

func TestBusinessMetricsHandler_Handle(t *testing.T) {
	reader, provider := newManualMeter(t)
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)
	handler := telemetry.NewBusinessMetricsHandler(bm, zap.NewNop())
	ctx := context.Background()

	productID := uuid.New()
	saleID := uuid.New()
	events := []shared.DomainEvent{
		&inventory.StockReceivedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(inventory.EventTypeStockReceived, inventory.AggregateTypeProduct, productID),
			ProductID:       productID,
			Quantity:        decimal.NewFromInt(10),
		},
		&inventory.StockConsumedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(inventory.EventTypeStockConsumed, inventory.AggregateTypeProduct, productID),
			ProductID:       productID,
			Quantity:        decimal.NewFromInt(4),
		},
		&inventory.LowStockDetectedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(inventory.EventTypeLowStockDetected, inventory.AggregateTypeProduct, productID),
			ProductID:       productID,
			ProductName:     "Whey 2lb",
		},
		&trade.SaleCompletedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(trade.EventTypeSaleCompleted, trade.AggregateTypeSale, saleID),
			SaleID:          saleID,
			TotalRevenue:    decimal.NewFromInt(200),
			TotalCost:       decimal.NewFromInt(150),
			Profit:          decimal.NewFromInt(50),
		},
		&trade.SaleCancelledEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(trade.EventTypeSaleCancelled, trade.AggregateTypeSale, saleID),
			SaleID:          saleID,
		},
	}
	for _, e := range events {
		require.NoError(t, handler.Handle(ctx, e))
	}

	metrics := collect(t, reader)
	assert.InDelta(t, 10, floatSum(t, metrics["supp_stock_received_units_total"]), 1e-9)
	assert.InDelta(t, 4, floatSum(t, metrics["supp_stock_consumed_units_total"]), 1e-9)
	assert.Equal(t, int64(1), intSum(t, metrics["supp_low_stock_detected_total"]))
	assert.Equal(t, int64(1), intSum(t, metrics["supp_sales_completed_total"]))
	assert.Equal(t, int64(1), intSum(t, metrics["supp_sales_cancelled_total"]))
	assert.Contains(t, handler.EventTypes(), trade.EventTypePurchaseReversed)
}

func TestGormInventoryMetricsProvider(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	provider := telemetry.NewGormInventoryMetricsProvider(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE current_stock <= min_stock_level`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	count, err := provider.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(quantity_remaining * unit_cost_gtq), 0) AS value FROM "cost_layers" WHERE quantity_remaining > 0`)).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1550.25"))
	value, err := provider.InventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("1550.25")))

	assert.NoError(t, mock.ExpectationsWereMet())
}
