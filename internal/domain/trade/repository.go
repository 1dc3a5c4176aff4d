package trade

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseRepository persists Purchase aggregates with their items
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	// FindByIDForUpdate locks the purchase row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter PurchaseFilter) ([]Purchase, int64, error)
	// Save upserts the purchase header and every item
	Save(ctx context.Context, purchase *Purchase) error
}

// SaleRepository persists Sale aggregates. Items are written individually
// together with their layer consumptions.
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	// FindByIDForUpdate locks the sale row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, int64, error)
	// Save upserts the sale header including its totals
	Save(ctx context.Context, sale *Sale) error
	// SaveItem inserts a costed item and its consumptions
	SaveItem(ctx context.Context, item *SaleItem) error
	// DeleteItem removes an item and its consumptions
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	// FindSaleIDByItem resolves the owning sale of an item
	FindSaleIDByItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error)
}
