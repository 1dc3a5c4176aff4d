package catalog

import (
	"context"

	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
)

// SnapshotInvalidationHandler drops a product's cached snapshot whenever its stock changes
type SnapshotInvalidationHandler struct {
	products *ProductService
}

// NewSnapshotInvalidationHandler creates the handler
func NewSnapshotInvalidationHandler(products *ProductService) *SnapshotInvalidationHandler {
	return &SnapshotInvalidationHandler{products: products}
}

// EventTypes implements shared.EventHandler
func (h *SnapshotInvalidationHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeStockReceived,
		inventory.EventTypeStockConsumed,
		inventory.EventTypeStockRestored,
	}
}

// Handle implements shared.EventHandler
func (h *SnapshotInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if event.AggregateType() != inventory.AggregateTypeProduct {
		return nil
	}
	h.products.InvalidateSnapshots(ctx, event.AggregateID())
	return nil
}

var _ shared.EventHandler = (*SnapshotInvalidationHandler)(nil)
