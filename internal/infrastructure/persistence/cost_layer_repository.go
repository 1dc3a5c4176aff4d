package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCostLayerRepository implements CostLayerRepository using GORM.
// Callers serialize Append and SaveRemaining per product by holding the
// product row lock.
type GormCostLayerRepository struct {
	db *gorm.DB
}

// NewGormCostLayerRepository creates a new GormCostLayerRepository
func NewGormCostLayerRepository(db *gorm.DB) *GormCostLayerRepository {
	return &GormCostLayerRepository{db: db}
}

// Append assigns the next sequence number of the product and inserts the layer
func (r *GormCostLayerRepository) Append(ctx context.Context, layer *inventory.CostLayer) error {
	var last int64
	if err := r.db.WithContext(ctx).
		Model(&models.CostLayerModel{}).
		Where("product_id = ?", layer.ProductID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&last).Error; err != nil {
		return err
	}
	layer.Seq = last + 1
	return r.db.WithContext(ctx).Create(models.CostLayerModelFromDomain(layer)).Error
}

// FindByID finds a layer by its ID
func (r *GormCostLayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CostLayer, error) {
	var model models.CostLayerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the layers with the given IDs
func (r *GormCostLayerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.CostLayer, error) {
	if len(ids) == 0 {
		return []*inventory.CostLayer{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

// FindAvailable returns the product's layers with stock left, oldest first
func (r *GormCostLayerRepository) FindAvailable(ctx context.Context, productID uuid.UUID) ([]*inventory.CostLayer, error) {
	return r.find(r.db.WithContext(ctx).
		Where("product_id = ? AND quantity_remaining > 0", productID))
}

// FindByProduct returns every layer of the product, exhausted ones included
func (r *GormCostLayerRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.CostLayer, error) {
	return r.find(r.db.WithContext(ctx).Where("product_id = ?", productID))
}

// FindByPurchaseItems returns the layers created by the given purchase items
func (r *GormCostLayerRepository) FindByPurchaseItems(ctx context.Context, purchaseItemIDs []uuid.UUID) ([]*inventory.CostLayer, error) {
	if len(purchaseItemIDs) == 0 {
		return []*inventory.CostLayer{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("purchase_item_id IN ?", purchaseItemIDs))
}

// SaveRemaining writes the remaining quantity of each layer
func (r *GormCostLayerRepository) SaveRemaining(ctx context.Context, layers ...*inventory.CostLayer) error {
	for _, layer := range layers {
		result := r.db.WithContext(ctx).
			Model(&models.CostLayerModel{}).
			Where("id = ?", layer.ID).
			Updates(map[string]any{
				"quantity_remaining": layer.QuantityRemaining,
				"updated_at":         gorm.Expr("CURRENT_TIMESTAMP"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("cost layer", layer.ID)
		}
	}
	return nil
}

// SumRemaining returns the quantity left across the product's layers
func (r *GormCostLayerRepository) SumRemaining(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.CostLayerModel{}).
		Select("COALESCE(SUM(quantity_remaining), 0) as total").
		Where("product_id = ?", productID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *GormCostLayerRepository) find(query *gorm.DB) ([]*inventory.CostLayer, error) {
	var rows []models.CostLayerModel
	if err := query.Order("product_id ASC, seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	layers := make([]*inventory.CostLayer, len(rows))
	for i := range rows {
		layers[i] = rows[i].ToDomain()
	}
	return layers, nil
}

// Ensure GormCostLayerRepository implements CostLayerRepository
var _ inventory.CostLayerRepository = (*GormCostLayerRepository)(nil)
