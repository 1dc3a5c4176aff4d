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

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func preloadPurchaseItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// FindByID finds a purchase with its items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUpdate finds a purchase and locks its row until the transaction ends
func (r *GormPurchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	return r.findOne(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

// FindAll lists purchases matching the filter and returns the total count
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter trade.PurchaseFilter) ([]trade.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PurchaseModel
	if err := applyPaging(query, filter.Filter, purchaseSort, "order_date").
		Preload("Items", preloadPurchaseItems).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	purchases := make([]trade.Purchase, len(rows))
	for i := range rows {
		purchases[i] = *rows[i].ToDomain()
	}
	return purchases, total, nil
}

// Save creates or updates a purchase together with its items. Updates are
// conditional on the version the purchase was read at.
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PurchaseModelFromDomain(purchase)
		if err := saveVersioned(tx, model, purchase.PersistedVersion(), "Items"); err != nil {
			return err
		}

		// Delete items no longer on the purchase
		itemIDs := purchase.ItemIDs()
		stale := tx.Where("purchase_id = ?", purchase.ID)
		if len(itemIDs) > 0 {
			stale = stale.Where("id NOT IN ?", itemIDs)
		}
		if err := stale.Delete(&models.PurchaseItemModel{}).Error; err != nil {
			return err
		}

		for i := range purchase.Items {
			purchase.Items[i].PurchaseID = purchase.ID
			if err := tx.Save(models.PurchaseItemModelFromDomain(&purchase.Items[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	purchase.MarkPersisted()
	return nil
}

func (r *GormPurchaseRepository) findOne(query *gorm.DB) (*trade.Purchase, error) {
	var model models.PurchaseModel
	if err := query.Preload("Items", preloadPurchaseItems).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
