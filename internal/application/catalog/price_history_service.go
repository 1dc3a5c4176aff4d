package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
)

// PriceChangeResponse is one list price change in API responses
type PriceChangeResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	OldPriceGTQ decimal.Decimal `json:"old_price_gtq"`
	NewPriceGTQ decimal.Decimal `json:"new_price_gtq"`
	ChangedAt   time.Time       `json:"changed_at"`
}

// PriceHistoryFilter pages a product's price history
type PriceHistoryFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PriceHistoryService reads the list price changes recorded on product saves
type PriceHistoryService struct {
	productRepo inventory.ProductRepository
	historyRepo inventory.PriceHistoryRepository
}

// NewPriceHistoryService creates a new PriceHistoryService
func NewPriceHistoryService(productRepo inventory.ProductRepository, historyRepo inventory.PriceHistoryRepository) *PriceHistoryService {
	return &PriceHistoryService{productRepo: productRepo, historyRepo: historyRepo}
}

// List returns a product's price changes, newest first
func (s *PriceHistoryService) List(ctx context.Context, productID uuid.UUID, filter PriceHistoryFilter) ([]PriceChangeResponse, int64, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, 0, err
	}
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	changes, total, err := s.historyRepo.FindByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PriceChangeResponse, len(changes))
	for i, c := range changes {
		responses[i] = PriceChangeResponse{
			ID:          c.ID,
			ProductID:   c.ProductID,
			OldPriceGTQ: c.OldPriceGTQ,
			NewPriceGTQ: c.NewPriceGTQ,
			ChangedAt:   c.ChangedAt,
		}
	}
	return responses, total, nil
}
