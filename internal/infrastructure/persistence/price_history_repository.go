package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPriceHistoryRepository implements PriceHistoryRepository using GORM
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GormPriceHistoryRepository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// FindByProduct lists a product's price changes, newest first unless the filter asks otherwise
func (r *GormPriceHistoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.PriceChange, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PriceHistoryModel{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PriceHistoryModel
	if err := applyPaging(query, filter, priceHistorySort, "changed_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	changes := make([]inventory.PriceChange, len(rows))
	for i := range rows {
		changes[i] = rows[i].ToDomain()
	}
	return changes, total, nil
}

// Ensure GormPriceHistoryRepository implements PriceHistoryRepository
var _ inventory.PriceHistoryRepository = (*GormPriceHistoryRepository)(nil)
