package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// PriceChange is one entry in a product's list price history
type PriceChange struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	OldPriceGTQ decimal.Decimal
	NewPriceGTQ decimal.Decimal
	ChangedAt   time.Time
}

// PriceHistoryRepository reads recorded price changes. Entries are written
// by ProductRepository.Save together with the product row.
type PriceHistoryRepository interface {
	// FindByProduct returns changes newest first with the total count
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]PriceChange, int64, error)
}
