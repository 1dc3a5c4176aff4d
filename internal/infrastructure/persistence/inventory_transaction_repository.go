package persistence

import (
	"context"

	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryTransactionRepository implements InventoryTransactionRepository using GORM.
// The table is append-only: the repository offers no update or delete.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Record inserts a ledger entry
func (r *GormInventoryTransactionRepository) Record(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(models.InventoryTransactionModelFromDomain(tx)).Error
}

// FindAll lists ledger entries matching the filter, newest first by default
func (r *GormInventoryTransactionRepository) FindAll(ctx context.Context, filter inventory.LedgerFilter) ([]inventory.InventoryTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Kind != "" {
		query = query.Where("transaction_type = ?", string(filter.Kind))
	}
	if filter.Range != nil {
		query = query.Where("created_at >= ? AND created_at < ?", filter.Range.From, filter.Range.EndExclusive())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InventoryTransactionModel
	if err := applyPaging(query, filter.Filter, ledgerSort, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]inventory.InventoryTransaction, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, total, nil
}

// Ensure GormInventoryTransactionRepository implements InventoryTransactionRepository
var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
