package costing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Config tunes the costing services
type Config struct {
	// LockTimeout bounds the wait for per-product locks. Zero waits as long as ctx allows.
	LockTimeout time.Duration
}

// engine holds what every costing service shares
type engine struct {
	scope     TransactionScope
	locker    *ProductLocker
	publisher shared.EventPublisher
	logger    *zap.Logger
	cfg       Config
	now       func() time.Time
}

func newEngine(scope TransactionScope, locker *ProductLocker, cfg Config, logger *zap.Logger) engine {
	if locker == nil {
		locker = NewProductLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return engine{
		scope:     scope,
		locker:    locker,
		publisher: shared.NopEventPublisher{},
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SetEventPublisher sets the publisher that receives domain events after commit
func (e *engine) SetEventPublisher(publisher shared.EventPublisher) {
	if publisher == nil {
		publisher = shared.NopEventPublisher{}
	}
	e.publisher = publisher
}

// lock takes the in-process product locks
func (e *engine) lock(ctx context.Context, productIDs ...uuid.UUID) (func(), error) {
	if e.cfg.LockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.LockTimeout)
		defer cancel()
	}
	return e.locker.Lock(ctx, productIDs...)
}

// publish hands collected events to the bus. Failures are logged, the
// committed state is final either way.
func (e *engine) publish(ctx context.Context, events []shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := e.publisher.Publish(ctx, events...); err != nil {
		e.logger.Warn("failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}

// lockedProducts loads products with row locks in ascending ID order
func lockedProducts(ctx context.Context, repos TransactionalRepositories, ids []uuid.UUID) (map[uuid.UUID]*inventory.Product, error) {
	products := make(map[uuid.UUID]*inventory.Product, len(ids))
	for _, id := range sortedUnique(ids) {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}

// saveProducts persists products and drains their events into events
func saveProducts(ctx context.Context, repos TransactionalRepositories, products map[uuid.UUID]*inventory.Product, events *[]shared.DomainEvent) error {
	for _, id := range sortedUnique(keys(products)) {
		product := products[id]
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		*events = append(*events, product.GetDomainEvents()...)
		product.ClearDomainEvents()
	}
	return nil
}

func keys(products map[uuid.UUID]*inventory.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	return ids
}

// consume takes quantity from the product's layers FIFO and books the
// consumption on the product. Nothing is changed when stock is insufficient.
func consume(ctx context.Context, repos TransactionalRepositories, product *inventory.Product, quantity decimal.Decimal) (inventory.FIFOResult, error) {
	layers, err := repos.CostLayerRepo().FindAvailable(ctx, product.ID)
	if err != nil {
		return inventory.FIFOResult{}, err
	}
	result, err := inventory.ConsumeFIFO(product.ID, layers, quantity)
	if err != nil {
		return inventory.FIFOResult{}, err
	}
	if err := product.ApplyConsumption(quantity, result.TotalCost); err != nil {
		return inventory.FIFOResult{}, err
	}
	if err := repos.CostLayerRepo().SaveRemaining(ctx, result.Touched...); err != nil {
		return inventory.FIFOResult{}, err
	}
	return result, nil
}

// restore puts consumed quantities back into their layers newest first and
// returns the quantity restored
func restore(ctx context.Context, repos TransactionalRepositories, product *inventory.Product, consumptions []inventory.LayerConsumption) (decimal.Decimal, error) {
	if len(consumptions) == 0 {
		return decimal.Zero, nil
	}
	ids := make([]uuid.UUID, len(consumptions))
	for i, c := range consumptions {
		ids[i] = c.LayerID
	}
	layers, err := repos.CostLayerRepo().FindByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}
	byID := make(map[uuid.UUID]*inventory.CostLayer, len(layers))
	for _, l := range layers {
		byID[l.ID] = l
	}

	total := decimal.Zero
	touched := make([]*inventory.CostLayer, 0, len(consumptions))
	for _, c := range inventory.ReverseFIFO(consumptions) {
		layer, ok := byID[c.LayerID]
		if !ok {
			return decimal.Zero, shared.NewNotFoundError("cost layer", c.LayerID)
		}
		if layer.ProductID != product.ID {
			return decimal.Zero, shared.NewInvalidStateError("cost layer %s does not belong to product %s", layer.ID, product.ID)
		}
		if err := layer.Restore(c.Quantity); err != nil {
			return decimal.Zero, err
		}
		if err := product.ApplyRestore(c.Quantity, layer.UnitCostGTQ); err != nil {
			return decimal.Zero, err
		}
		touched = append(touched, layer)
		total = total.Add(c.Quantity)
	}
	if err := repos.CostLayerRepo().SaveRemaining(ctx, touched...); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// record appends one ledger entry
func record(ctx context.Context, repos TransactionalRepositories, tx *inventory.InventoryTransaction) error {
	return repos.LedgerRepo().Record(ctx, tx)
}
