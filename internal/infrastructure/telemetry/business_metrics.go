package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks stock movements, sale profitability and rejected
// costing operations.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	unitsReceived     *FloatCounter
	unitsConsumed     *FloatCounter
	unitsRestored     *FloatCounter
	purchasesReceived *Counter
	purchasesReversed *Counter
	salesCompleted    *Counter
	salesCancelled    *Counter
	revenueTotal      *FloatCounter
	costTotal         *FloatCounter
	lowStockDetected  *Counter
	rejections        *Counter

	saleProfit *Histogram

	// Gauge metrics (point-in-time values)
	lowStockProducts *Gauge
	inventoryValue   *FloatGauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	inventoryProvider InventoryMetricsProvider
}

// InventoryMetricsProvider provides inventory data for periodic metrics collection
type InventoryMetricsProvider interface {
	// LowStockCount returns the number of products at or below their minimum level
	LowStockCount(ctx context.Context) (int64, error)

	// InventoryValue returns the value of every remaining cost layer in GTQ
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	InventoryProvider InventoryMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		inventoryProvider: cfg.InventoryProvider,
	}

	floatCounters := []struct {
		target            **FloatCounter
		name, desc, units string
	}{
		{&bm.unitsReceived, "supp_stock_received_units_total", "Units added to stock by purchase receipts and adjustments", "{units}"},
		{&bm.unitsConsumed, "supp_stock_consumed_units_total", "Units consumed from cost layers", "{units}"},
		{&bm.unitsRestored, "supp_stock_restored_units_total", "Units put back into cost layers", "{units}"},
		{&bm.revenueTotal, "supp_sales_revenue_gtq_total", "Revenue of completed sales", "GTQ"},
		{&bm.costTotal, "supp_sales_cost_gtq_total", "FIFO cost of completed sales", "GTQ"},
	}
	for _, c := range floatCounters {
		counter, err := NewFloatCounter(cfg.Meter, c.name, c.desc, c.units)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	counters := []struct {
		target            **Counter
		name, desc, units string
	}{
		{&bm.purchasesReceived, "supp_purchases_received_total", "Purchases received into stock", "{purchases}"},
		{&bm.purchasesReversed, "supp_purchases_reversed_total", "Received purchases reversed", "{purchases}"},
		{&bm.salesCompleted, "supp_sales_completed_total", "Sales completed", "{sales}"},
		{&bm.salesCancelled, "supp_sales_cancelled_total", "Sales cancelled", "{sales}"},
		{&bm.lowStockDetected, "supp_low_stock_detected_total", "Times a product fell to or below its minimum level", "{events}"},
		{&bm.rejections, "supp_costing_rejections_total", "Costing operations rejected by a business rule", "{operations}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.desc, c.units)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	var err error
	bm.saleProfit, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "supp_sale_profit_gtq",
		Description: "Profit per completed sale",
		Unit:        "GTQ",
		Boundaries:  ProfitBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.lowStockProducts, err = NewGauge(cfg.Meter,
		"supp_inventory_low_stock_products",
		"Number of products at or below their minimum stock level",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.inventoryValue, err = NewFloatGauge(cfg.Meter,
		"supp_inventory_value_gtq",
		"Value of remaining cost layers",
		"GTQ",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Stock Movements
// =============================================================================

// MovementKind labels the document behind a stock movement
type MovementKind string

const (
	MovementPurchase   MovementKind = "purchase"
	MovementSale       MovementKind = "sale"
	MovementAdjustment MovementKind = "adjustment"
)

// RecordStockReceived records units appended as a new cost layer
func (bm *BusinessMetrics) RecordStockReceived(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) {
	bm.unitsReceived.Add(ctx, quantity.InexactFloat64(), AttrProductID.String(productID.String()))
}

// RecordStockConsumed records units taken from cost layers
func (bm *BusinessMetrics) RecordStockConsumed(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) {
	bm.unitsConsumed.Add(ctx, quantity.InexactFloat64(), AttrProductID.String(productID.String()))
}

// RecordStockRestored records units returned to their cost layers
func (bm *BusinessMetrics) RecordStockRestored(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) {
	bm.unitsRestored.Add(ctx, quantity.InexactFloat64(), AttrProductID.String(productID.String()))
}

// RecordLowStock records a product crossing its minimum stock level
func (bm *BusinessMetrics) RecordLowStock(ctx context.Context, productID uuid.UUID) {
	bm.lowStockDetected.Inc(ctx, AttrProductID.String(productID.String()))
}

// =============================================================================
// Documents
// =============================================================================

// RecordPurchaseReceived records a received purchase
func (bm *BusinessMetrics) RecordPurchaseReceived(ctx context.Context) {
	bm.purchasesReceived.Inc(ctx)
}

// RecordPurchaseReversed records a reversed purchase
func (bm *BusinessMetrics) RecordPurchaseReversed(ctx context.Context) {
	bm.purchasesReversed.Inc(ctx)
}

// RecordSaleCompleted records revenue, cost and profit of a completed sale
func (bm *BusinessMetrics) RecordSaleCompleted(ctx context.Context, revenue, cost, profit decimal.Decimal) {
	bm.salesCompleted.Inc(ctx)
	bm.revenueTotal.Add(ctx, revenue.InexactFloat64())
	bm.costTotal.Add(ctx, cost.InexactFloat64())
	bm.saleProfit.Record(ctx, profit.InexactFloat64())
}

// RecordSaleCancelled records a cancelled sale
func (bm *BusinessMetrics) RecordSaleCancelled(ctx context.Context) {
	bm.salesCancelled.Inc(ctx)
}

// RecordRejection records an operation refused with the given error code,
// such as INSUFFICIENT_STOCK for an oversell attempt
func (bm *BusinessMetrics) RecordRejection(ctx context.Context, code string, kind MovementKind) {
	bm.rejections.Inc(ctx,
		AttrRejectionCode.String(code),
		AttrMovementKind.String(string(kind)),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of the inventory gauges.
// It is non-blocking; use Stop() to end collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.CollectInventoryMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.CollectInventoryMetrics(ctx)
		}
	}
}

// CollectInventoryMetrics records the inventory gauges once
func (bm *BusinessMetrics) CollectInventoryMetrics(ctx context.Context) {
	if bm.inventoryProvider == nil {
		bm.logger.Debug("No inventory provider configured, skipping inventory metrics collection")
		return
	}

	if count, err := bm.inventoryProvider.LowStockCount(ctx); err != nil {
		bm.logger.Warn("Failed to get low stock count", zap.Error(err))
	} else {
		bm.lowStockProducts.Record(ctx, count)
	}

	if value, err := bm.inventoryProvider.InventoryValue(ctx); err != nil {
		bm.logger.Warn("Failed to get inventory value", zap.Error(err))
	} else {
		bm.inventoryValue.Record(ctx, value.InexactFloat64())
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
