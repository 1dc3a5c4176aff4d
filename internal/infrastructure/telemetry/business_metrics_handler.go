package telemetry

import (
	"context"

	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// BusinessMetricsHandler feeds committed domain events into BusinessMetrics
type BusinessMetricsHandler struct {
	metrics *BusinessMetrics
	logger  *zap.Logger
}

// NewBusinessMetricsHandler creates the handler
func NewBusinessMetricsHandler(metrics *BusinessMetrics, logger *zap.Logger) *BusinessMetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BusinessMetricsHandler{metrics: metrics, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *BusinessMetricsHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeStockReceived,
		inventory.EventTypeStockConsumed,
		inventory.EventTypeStockRestored,
		inventory.EventTypeLowStockDetected,
		trade.EventTypePurchaseReceived,
		trade.EventTypePurchaseReversed,
		trade.EventTypeSaleCompleted,
		trade.EventTypeSaleCancelled,
	}
}

// Handle implements shared.EventHandler
func (h *BusinessMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.StockReceivedEvent:
		h.metrics.RecordStockReceived(ctx, e.ProductID, e.Quantity)
	case *inventory.StockConsumedEvent:
		h.metrics.RecordStockConsumed(ctx, e.ProductID, e.Quantity)
	case *inventory.StockRestoredEvent:
		h.metrics.RecordStockRestored(ctx, e.ProductID, e.Quantity)
	case *inventory.LowStockDetectedEvent:
		h.metrics.RecordLowStock(ctx, e.ProductID)
		h.logger.Warn("product stock is low",
			zap.String("product_id", e.ProductID.String()),
			zap.String("product_name", e.ProductName),
			zap.String("current_stock", e.CurrentStock.String()),
			zap.String("min_stock_level", e.MinStockLevel.String()),
		)
	case *trade.PurchaseReceivedEvent:
		h.metrics.RecordPurchaseReceived(ctx)
	case *trade.PurchaseReversedEvent:
		h.metrics.RecordPurchaseReversed(ctx)
	case *trade.SaleCompletedEvent:
		h.metrics.RecordSaleCompleted(ctx, e.TotalRevenue, e.TotalCost, e.Profit)
	case *trade.SaleCancelledEvent:
		h.metrics.RecordSaleCancelled(ctx)
	default:
		h.logger.Debug("unhandled event type", zap.String("event_type", event.EventType()))
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetricsHandler)(nil)
