package persistence

import (
	"context"

	"github.com/supplements/backend/internal/application/costing"
	apptrade "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/settings"
	"github.com/supplements/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos costing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// GormTradeScope implements the trade TransactionScope. It hands fn the same
// transaction-bound repositories the costing scope uses.
type GormTradeScope struct {
	db *gorm.DB
}

// NewGormTradeScope creates a new GormTradeScope.
func NewGormTradeScope(db *gorm.DB) *GormTradeScope {
	return &GormTradeScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormTradeScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() inventory.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// CostLayerRepo returns the cost layer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CostLayerRepo() inventory.CostLayerRepository {
	return NewGormCostLayerRepository(r.tx)
}

// LedgerRepo returns the inventory transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LedgerRepo() inventory.InventoryTransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

// PurchaseRepo returns the purchase repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseRepo() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// SettingsRepo returns the settings repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SettingsRepo() settings.Repository {
	return NewGormSettingsRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ costing.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ costing.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

// Ensure GormTradeScope implements the trade TransactionScope
var _ apptrade.TransactionScope = (*GormTradeScope)(nil)
