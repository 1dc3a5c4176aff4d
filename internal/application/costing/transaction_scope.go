package costing

import (
	"context"

	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/settings"
	"github.com/supplements/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the costing repositories.
// All repository operations performed inside fn are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every repository the costing
// engine mutates. All repositories share the same underlying transaction.
//
// Locking notes:
//   - ProductRepo().FindByIDForUpdate takes the product row lock that makes
//     consumption and stock changes serializable per product.
//   - Purchase rows are locked before products, sale rows after products.
type TransactionalRepositories interface {
	ProductRepo() inventory.ProductRepository
	CostLayerRepo() inventory.CostLayerRepository
	LedgerRepo() inventory.InventoryTransactionRepository
	PurchaseRepo() trade.PurchaseRepository
	SaleRepo() trade.SaleRepository
	SettingsRepo() settings.Repository
}

// NoOpTransactionScope runs fn against fixed repositories without a transaction.
// This is useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	products  inventory.ProductRepository
	layers    inventory.CostLayerRepository
	ledger    inventory.InventoryTransactionRepository
	purchases trade.PurchaseRepository
	sales     trade.SaleRepository
	settings  settings.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	products inventory.ProductRepository,
	layers inventory.CostLayerRepository,
	ledger inventory.InventoryTransactionRepository,
	purchases trade.PurchaseRepository,
	sales trade.SaleRepository,
	settingsRepo settings.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		products:  products,
		layers:    layers,
		ledger:    ledger,
		purchases: purchases,
		sales:     sales,
		settings:  settingsRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ProductRepo() inventory.ProductRepository             { return s.products }
func (s *NoOpTransactionScope) CostLayerRepo() inventory.CostLayerRepository         { return s.layers }
func (s *NoOpTransactionScope) LedgerRepo() inventory.InventoryTransactionRepository { return s.ledger }
func (s *NoOpTransactionScope) PurchaseRepo() trade.PurchaseRepository               { return s.purchases }
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository                       { return s.sales }
func (s *NoOpTransactionScope) SettingsRepo() settings.Repository                    { return s.settings }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
