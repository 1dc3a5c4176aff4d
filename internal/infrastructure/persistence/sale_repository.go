package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func preloadSaleItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func preloadConsumptions(db *gorm.DB) *gorm.DB {
	return db.Order("layer_seq ASC, id ASC")
}

// FindByID finds a sale with its items and their layer consumptions
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUpdate finds a sale and locks its row until the transaction ends
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	return r.findOne(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

// FindAll lists sales matching the filter and returns the total count
func (r *GormSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Range != nil {
		query = query.Where("sale_date >= ? AND sale_date < ?", filter.Range.From, filter.Range.EndExclusive())
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SaleModel
	if err := applyPaging(query, filter.Filter, saleSort, "sale_date").
		Preload("Items", preloadSaleItems).
		Preload("Items.Consumptions", preloadConsumptions).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	sales := make([]trade.Sale, len(rows))
	for i := range rows {
		sales[i] = *rows[i].ToDomain()
	}
	return sales, total, nil
}

// Save creates or updates the sale header and totals. Updates are
// conditional on the version the sale was read at.
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	if err := saveVersioned(r.db.WithContext(ctx), model, sale.PersistedVersion(), "Items"); err != nil {
		return err
	}
	sale.MarkPersisted()
	return nil
}

// SaveItem inserts a costed item and its layer consumptions
func (r *GormSaleRepository) SaveItem(ctx context.Context, item *trade.SaleItem) error {
	model := models.SaleItemModelFromDomain(item)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Consumptions").Create(model).Error; err != nil {
			return err
		}
		if len(model.Consumptions) == 0 {
			return nil
		}
		return tx.Create(&model.Consumptions).Error
	})
}

// DeleteItem removes an item and its layer consumptions
func (r *GormSaleRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_item_id = ?", itemID).Delete(&models.SaleItemLayerModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", itemID).Delete(&models.SaleItemModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("sale item", itemID)
		}
		return nil
	})
}

// FindSaleIDByItem resolves the sale that owns an item
func (r *GormSaleRepository) FindSaleIDByItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	var model models.SaleItemModel
	if err := r.db.WithContext(ctx).Select("id", "sale_id").Where("id = ?", itemID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, shared.ErrNotFound
		}
		return uuid.Nil, err
	}
	return model.SaleID, nil
}

func (r *GormSaleRepository) findOne(query *gorm.DB) (*trade.Sale, error) {
	var model models.SaleModel
	if err := query.
		Preload("Items", preloadSaleItems).
		Preload("Items.Consumptions", preloadConsumptions).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
