package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository persists Product aggregates
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDForUpdate loads the product and holds its row lock until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	FindLowStock(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
}

// CostLayerRepository is the cost layer store
type CostLayerRepository interface {
	// Append assigns the next per-product Seq and inserts the layer
	Append(ctx context.Context, layer *CostLayer) error
	FindByID(ctx context.Context, id uuid.UUID) (*CostLayer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*CostLayer, error)
	// FindAvailable returns layers with QuantityRemaining > 0 in FIFO order
	FindAvailable(ctx context.Context, productID uuid.UUID) ([]*CostLayer, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*CostLayer, error)
	FindByPurchaseItems(ctx context.Context, purchaseItemIDs []uuid.UUID) ([]*CostLayer, error)
	// SaveRemaining writes QuantityRemaining of the given layers
	SaveRemaining(ctx context.Context, layers ...*CostLayer) error
	SumRemaining(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// InventoryTransactionRepository is the append-only ledger store
type InventoryTransactionRepository interface {
	Record(ctx context.Context, tx *InventoryTransaction) error
	FindAll(ctx context.Context, filter LedgerFilter) ([]InventoryTransaction, int64, error)
}
