package costing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apptrade "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SaleCostingService creates, edits and cancels sale items. Every item is
// costed from the product's cost layers in FIFO order when it is created.
type SaleCostingService struct {
	engine
	customers apptrade.CustomerDirectory
}

// NewSaleCostingService creates a new SaleCostingService
func NewSaleCostingService(scope TransactionScope, locker *ProductLocker, cfg Config, logger *zap.Logger) *SaleCostingService {
	return &SaleCostingService{engine: newEngine(scope, locker, cfg, logger)}
}

// SetCustomerDirectory enables customer lookups when sales are linked
func (s *SaleCostingService) SetCustomerDirectory(customers apptrade.CustomerDirectory) {
	s.customers = customers
}

// CreateSaleItem adds one item to a pending sale, consuming stock FIFO.
// On InsufficientStock nothing is changed.
func (s *SaleCostingService) CreateSaleItem(ctx context.Context, saleID uuid.UUID, input apptrade.SaleItemInput) (*apptrade.SaleItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create_item",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrProductID, input.ProductID.String()),
	)
	var resp *apptrade.SaleItemResponse
	err := telemetry.ProfileMovement(ctx, "sale.create_item", telemetry.MovementSale, func(ctx context.Context) error {
		var err error
		resp, err = s.createSaleItem(ctx, saleID, input)
		return err
	})
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *SaleCostingService) createSaleItem(ctx context.Context, saleID uuid.UUID, input apptrade.SaleItemInput) (*apptrade.SaleItemResponse, error) {
	item, err := trade.NewSaleItem(saleID, input.ProductID, input.Quantity, input.UnitPriceGTQ)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var events []shared.DomainEvent
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockedProducts(ctx, repos, []uuid.UUID{item.ProductID})
		if err != nil {
			return err
		}
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := sale.EnsureEditable(); err != nil {
			return err
		}
		if err := costItem(ctx, repos, products[item.ProductID], sale, item); err != nil {
			return err
		}
		return saveSale(ctx, repos, sale, products, &events)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("sale item costed",
		zap.String("sale_id", saleID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("product_id", item.ProductID.String()),
		zap.String("quantity", item.Quantity.String()),
		zap.String("total_cost", item.TotalCost.String()),
		zap.String("profit", item.Profit.String()),
	)

	response := apptrade.ToSaleItemResponse(item)
	return &response, nil
}

// CreateSale opens a sale and costs all of its items in one transaction.
// If any item lacks stock no item is recorded.
func (s *SaleCostingService) CreateSale(ctx context.Context, req apptrade.CreateSaleRequest) (*apptrade.SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create",
		telemetry.WithAttribute(telemetry.SpanAttrItemCount, len(req.Items)),
	)
	var resp *apptrade.SaleResponse
	err := telemetry.ProfileMovement(ctx, "sale.create", telemetry.MovementSale, func(ctx context.Context) error {
		var err error
		resp, err = s.createSale(ctx, req)
		return err
	})
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *SaleCostingService) createSale(ctx context.Context, req apptrade.CreateSaleRequest) (*apptrade.SaleResponse, error) {
	sale, err := apptrade.NewSaleFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := apptrade.LinkCustomer(ctx, s.customers, sale, req.CustomerID); err != nil {
		return nil, err
	}
	items := make([]*trade.SaleItem, len(req.Items))
	requested := make(map[uuid.UUID]decimal.Decimal, len(req.Items))
	for i, in := range req.Items {
		item, err := trade.NewSaleItem(sale.ID, in.ProductID, in.Quantity, in.UnitPriceGTQ)
		if err != nil {
			return nil, err
		}
		items[i] = item
		requested[item.ProductID] = requested[item.ProductID].Add(item.Quantity)
	}

	productIDs := make([]uuid.UUID, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	unlock, err := s.lock(ctx, productIDs...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var events []shared.DomainEvent
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockedProducts(ctx, repos, productIDs)
		if err != nil {
			return err
		}
		for _, id := range sortedUnique(productIDs) {
			available, err := repos.CostLayerRepo().SumRemaining(ctx, id)
			if err != nil {
				return err
			}
			if requested[id].GreaterThan(available) {
				return shared.NewInsufficientStockError(id, requested[id], available)
			}
		}

		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := costItem(ctx, repos, products[item.ProductID], sale, item); err != nil {
				return err
			}
		}
		return saveSale(ctx, repos, sale, products, &events)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("items", len(sale.Items)),
		zap.String("total_revenue", sale.TotalRevenue.String()),
		zap.String("total_cost", sale.TotalCost.String()),
	)

	response := apptrade.ToSaleResponse(sale)
	return &response, nil
}

// DeleteSaleItem removes an item from a pending sale and puts its quantity
// back into the layers it was taken from, newest layer first
func (s *SaleCostingService) DeleteSaleItem(ctx context.Context, saleID, itemID uuid.UUID) (*apptrade.SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "delete_item",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()),
	)
	resp, err := s.deleteSaleItem(ctx, saleID, itemID)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *SaleCostingService) deleteSaleItem(ctx context.Context, saleID, itemID uuid.UUID) (*apptrade.SaleResponse, error) {
	productID, err := s.itemProduct(ctx, saleID, itemID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, productID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		sale   *trade.Sale
		events []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockedProducts(ctx, repos, []uuid.UUID{productID})
		if err != nil {
			return err
		}
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := uncostItem(ctx, repos, products, sale, itemID, "sale item removed"); err != nil {
			return err
		}
		return saveSale(ctx, repos, sale, products, &events)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("sale item removed",
		zap.String("sale_id", saleID.String()),
		zap.String("item_id", itemID.String()),
	)

	response := apptrade.ToSaleResponse(sale)
	return &response, nil
}

// UpdateSaleItem replaces an item: the old consumption is restored and the
// new line is costed again from the layers as they are after the restore
func (s *SaleCostingService) UpdateSaleItem(ctx context.Context, saleID, itemID uuid.UUID, input apptrade.SaleItemInput) (*apptrade.SaleItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "update_item",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()),
	)
	resp, err := s.updateSaleItem(ctx, saleID, itemID, input)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *SaleCostingService) updateSaleItem(ctx context.Context, saleID, itemID uuid.UUID, input apptrade.SaleItemInput) (*apptrade.SaleItemResponse, error) {
	replacement, err := trade.NewSaleItem(saleID, input.ProductID, input.Quantity, input.UnitPriceGTQ)
	if err != nil {
		return nil, err
	}
	oldProductID, err := s.itemProduct(ctx, saleID, itemID)
	if err != nil {
		return nil, err
	}
	productIDs := []uuid.UUID{oldProductID, replacement.ProductID}
	unlock, err := s.lock(ctx, productIDs...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var events []shared.DomainEvent
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockedProducts(ctx, repos, productIDs)
		if err != nil {
			return err
		}
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := uncostItem(ctx, repos, products, sale, itemID, "sale item edited"); err != nil {
			return err
		}
		if err := costItem(ctx, repos, products[replacement.ProductID], sale, replacement); err != nil {
			return err
		}
		return saveSale(ctx, repos, sale, products, &events)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("sale item replaced",
		zap.String("sale_id", saleID.String()),
		zap.String("old_item_id", itemID.String()),
		zap.String("item_id", replacement.ID.String()),
	)

	response := apptrade.ToSaleItemResponse(replacement)
	return &response, nil
}

// CancelSale cancels a sale and restores the stock consumed by every item
func (s *SaleCostingService) CancelSale(ctx context.Context, saleID uuid.UUID) (*apptrade.SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "cancel",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()),
	)
	resp, err := s.cancelSale(ctx, saleID)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *SaleCostingService) cancelSale(ctx context.Context, saleID uuid.UUID) (*apptrade.SaleResponse, error) {
	var productIDs []uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		productIDs = sale.ProductIDs()
		return nil
	})
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, productIDs...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		sale   *trade.Sale
		events []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockedProducts(ctx, repos, productIDs)
		if err != nil {
			return err
		}
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := ensureCovered(productIDs, sale.ProductIDs()); err != nil {
			return err
		}
		if err := sale.Cancel(); err != nil {
			return err
		}
		for i := range sale.Items {
			item := &sale.Items[i]
			if err := restoreItem(ctx, repos, products[item.ProductID], item, "sale cancelled"); err != nil {
				return err
			}
		}
		return saveSale(ctx, repos, sale, products, &events)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("sale cancelled", zap.String("sale_id", saleID.String()))

	response := apptrade.ToSaleResponse(sale)
	return &response, nil
}

// itemProduct resolves the product of an item before any lock is taken
func (s *SaleCostingService) itemProduct(ctx context.Context, saleID, itemID uuid.UUID) (uuid.UUID, error) {
	var productID uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		item := sale.GetItem(itemID)
		if item == nil {
			return shared.NewNotFoundError("sale item", itemID)
		}
		productID = item.ProductID
		return nil
	})
	return productID, err
}

// costItem consumes the item's quantity, fills its cost fields, writes the
// ledger entry and attaches the item to the sale
func costItem(ctx context.Context, repos TransactionalRepositories, product *inventory.Product, sale *trade.Sale, item *trade.SaleItem) error {
	result, err := consume(ctx, repos, product, item.Quantity)
	if err != nil {
		return err
	}
	if err := item.ApplyCost(result); err != nil {
		return err
	}
	if err := sale.AddItem(item); err != nil {
		return err
	}
	if err := repos.SaleRepo().SaveItem(ctx, item); err != nil {
		return err
	}

	itemID := item.ID
	entry, err := inventory.NewInventoryTransaction(product.ID, inventory.TransactionKindSale,
		item.Quantity.Neg(), product.CurrentStock, inventory.ReferenceSaleItem, &itemID)
	if err != nil {
		return err
	}
	entry.WithUnitCost(item.UnitCostGTQ)
	return record(ctx, repos, entry)
}

// uncostItem detaches an item from the sale, restores its layers and deletes it
func uncostItem(ctx context.Context, repos TransactionalRepositories, products map[uuid.UUID]*inventory.Product, sale *trade.Sale, itemID uuid.UUID, notes string) error {
	removed, err := sale.RemoveItem(itemID)
	if err != nil {
		return err
	}
	product, ok := products[removed.ProductID]
	if !ok {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"document changed while acquiring locks, retry the operation")
	}
	if err := restoreItem(ctx, repos, product, &removed, notes); err != nil {
		return err
	}
	return repos.SaleRepo().DeleteItem(ctx, itemID)
}

// restoreItem returns an item's consumption to its layers and records the
// adjustment in the ledger
func restoreItem(ctx context.Context, repos TransactionalRepositories, product *inventory.Product, item *trade.SaleItem, notes string) error {
	quantity, err := restore(ctx, repos, product, item.Consumptions)
	if err != nil {
		return err
	}
	if quantity.IsZero() {
		return nil
	}
	itemID := item.ID
	entry, err := inventory.NewInventoryTransaction(product.ID, inventory.TransactionKindAdjustment,
		quantity, product.CurrentStock, inventory.ReferenceSaleItem, &itemID)
	if err != nil {
		return err
	}
	entry.WithUnitCost(item.UnitCostGTQ).WithNotes(notes)
	return record(ctx, repos, entry)
}

// saveSale persists the sale header and the products, collecting events
func saveSale(ctx context.Context, repos TransactionalRepositories, sale *trade.Sale, products map[uuid.UUID]*inventory.Product, events *[]shared.DomainEvent) error {
	if err := repos.SaleRepo().Save(ctx, sale); err != nil {
		return err
	}
	if err := saveProducts(ctx, repos, products, events); err != nil {
		return err
	}
	*events = append(*events, sale.GetDomainEvents()...)
	sale.ClearDomainEvents()
	return nil
}
