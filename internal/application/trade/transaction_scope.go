package trade

import (
	"context"

	"github.com/supplements/backend/internal/domain/trade"
)

// TransactionScope runs purchase and sale header edits in one database
// transaction. Rows read through FindByIDForUpdate stay locked until fn
// returns, so an edit cannot interleave with receiving or sale costing.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the trade repositories bound to one transaction
type TransactionalRepositories interface {
	PurchaseRepo() trade.PurchaseRepository
	SaleRepo() trade.SaleRepository
}
