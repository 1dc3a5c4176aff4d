package costing

import (
	"context"

	"github.com/google/uuid"
	apptrade "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReceivingService turns purchases into cost layers
type ReceivingService struct {
	engine
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(scope TransactionScope, locker *ProductLocker, cfg Config, logger *zap.Logger) *ReceivingService {
	return &ReceivingService{engine: newEngine(scope, locker, cfg, logger)}
}

// ReceivePurchase books a purchase into inventory. Real logistics are
// allocated over the items by item cost, converted to GTQ at the current
// rate and appended as one cost layer per item. Everything commits together.
func (s *ReceivingService) ReceivePurchase(ctx context.Context, purchaseID uuid.UUID) (*apptrade.PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "receive",
		telemetry.WithAttribute(telemetry.SpanAttrPurchaseID, purchaseID.String()),
	)
	var resp *apptrade.PurchaseResponse
	err := telemetry.ProfileMovement(ctx, "purchase.receive", telemetry.MovementPurchase, func(ctx context.Context) error {
		var err error
		resp, err = s.receivePurchase(ctx, purchaseID)
		return err
	})
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *ReceivingService) receivePurchase(ctx context.Context, purchaseID uuid.UUID) (*apptrade.PurchaseResponse, error) {
	productIDs, err := s.purchaseProducts(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, productIDs...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		purchase *trade.Purchase
		events   []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.PurchaseRepo().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := purchase.CanReceive(); err != nil {
			return err
		}
		if err := ensureCovered(productIDs, purchase.ProductIDs()); err != nil {
			return err
		}

		settings, err := repos.SettingsRepo().Get(ctx)
		if err != nil {
			return err
		}
		rate, err := settings.ExchangeRate()
		if err != nil {
			return err
		}

		landed, err := purchase.LandedCosts()
		if err != nil {
			return err
		}
		receivedAt := s.now()
		if err := purchase.MarkReceived(landed, rate, receivedAt); err != nil {
			return err
		}

		products, err := lockedProducts(ctx, repos, purchase.ProductIDs())
		if err != nil {
			return err
		}

		for i := range purchase.Items {
			item := &purchase.Items[i]
			product := products[item.ProductID]
			itemID := item.ID

			layer, err := inventory.NewCostLayer(item.ProductID, item.UnitCostGTQ, item.Quantity, inventory.LayerOrigin{
				PurchaseItemID:      &itemID,
				BaseUnitCostUSD:     landed[i].BaseUnitCostUSD,
				LogisticsPerUnitUSD: landed[i].LogisticsPerUnitUSD,
			})
			if err != nil {
				return err
			}
			if err := repos.CostLayerRepo().Append(ctx, layer); err != nil {
				return err
			}
			if err := product.ApplyReceipt(item.Quantity, item.UnitCostGTQ, receivedAt); err != nil {
				return err
			}

			entry, err := inventory.NewInventoryTransaction(product.ID, inventory.TransactionKindPurchase,
				item.Quantity, product.CurrentStock, inventory.ReferencePurchaseItem, &itemID)
			if err != nil {
				return err
			}
			entry.WithUnitCost(item.UnitCostGTQ)
			if err := record(ctx, repos, entry); err != nil {
				return err
			}
		}

		if err := saveProducts(ctx, repos, products, &events); err != nil {
			return err
		}
		if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
			return err
		}
		events = append(events, purchase.GetDomainEvents()...)
		purchase.ClearDomainEvents()
		return nil
	})
	if err != nil {
		s.logger.Warn("purchase receipt rejected",
			zap.String("purchase_id", purchaseID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("purchase received",
		zap.String("purchase_id", purchaseID.String()),
		zap.Int("items", len(purchase.Items)),
		zap.String("exchange_rate", purchase.ExchangeRate.String()),
		zap.String("real_total_usd", purchase.RealTotal().String()),
	)

	response := apptrade.ToPurchaseResponse(purchase)
	return &response, nil
}

// ReversePurchase undoes a receipt whose layers are still untouched. The
// layers are drained, stock is reduced through adjustment entries and the
// purchase returns to pending.
func (s *ReceivingService) ReversePurchase(ctx context.Context, purchaseID uuid.UUID, notes string) (*apptrade.PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "reverse",
		telemetry.WithAttribute(telemetry.SpanAttrPurchaseID, purchaseID.String()),
	)
	resp, err := s.reversePurchase(ctx, purchaseID, notes)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *ReceivingService) reversePurchase(ctx context.Context, purchaseID uuid.UUID, notes string) (*apptrade.PurchaseResponse, error) {
	productIDs, err := s.purchaseProducts(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, productIDs...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if notes == "" {
		notes = "purchase reversal"
	}

	var (
		purchase *trade.Purchase
		events   []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.PurchaseRepo().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if purchase.Status != trade.PurchaseStatusReceived {
			return shared.NewInvalidStateError("cannot reverse a %s purchase", purchase.Status)
		}
		if err := ensureCovered(productIDs, purchase.ProductIDs()); err != nil {
			return err
		}

		products, err := lockedProducts(ctx, repos, purchase.ProductIDs())
		if err != nil {
			return err
		}

		layers, err := repos.CostLayerRepo().FindByPurchaseItems(ctx, purchase.ItemIDs())
		if err != nil {
			return err
		}
		if len(layers) != len(purchase.Items) {
			return shared.NewInvalidStateError("purchase %s has %d items but %d cost layers",
				purchase.ID, len(purchase.Items), len(layers))
		}
		for _, layer := range layers {
			if layer.IsConsumed() {
				return shared.NewInvalidStateError(
					"purchase %s cannot be reversed: stock from layer %d of product %s was already sold",
					purchase.ID, layer.Seq, layer.ProductID)
			}
		}

		for _, layer := range layers {
			product := products[layer.ProductID]
			drained, err := layer.Drain()
			if err != nil {
				return err
			}
			if err := product.ApplyConsumption(drained, drained.Mul(layer.UnitCostGTQ)); err != nil {
				return err
			}
			entry, err := inventory.NewInventoryTransaction(product.ID, inventory.TransactionKindAdjustment,
				drained.Neg(), product.CurrentStock, inventory.ReferencePurchaseItem, layer.PurchaseItemID)
			if err != nil {
				return err
			}
			entry.WithUnitCost(layer.UnitCostGTQ).WithNotes(notes)
			if err := record(ctx, repos, entry); err != nil {
				return err
			}
		}
		if err := repos.CostLayerRepo().SaveRemaining(ctx, layers...); err != nil {
			return err
		}

		if err := purchase.RevertReceipt(); err != nil {
			return err
		}
		if err := saveProducts(ctx, repos, products, &events); err != nil {
			return err
		}
		if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
			return err
		}
		events = append(events, purchase.GetDomainEvents()...)
		purchase.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("purchase reversed", zap.String("purchase_id", purchaseID.String()))

	response := apptrade.ToPurchaseResponse(purchase)
	return &response, nil
}

// purchaseProducts reads the products a purchase touches so they can be
// locked before the transaction starts
func (s *ReceivingService) purchaseProducts(ctx context.Context, purchaseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		ids = purchase.ProductIDs()
		return nil
	})
	return ids, err
}

// ensureCovered fails when the locked row references a product that was not
// locked beforehand, which means the document changed in between
func ensureCovered(locked, needed []uuid.UUID) error {
	set := make(map[uuid.UUID]struct{}, len(locked))
	for _, id := range locked {
		set[id] = struct{}{}
	}
	for _, id := range needed {
		if _, ok := set[id]; !ok {
			return shared.NewDomainError(shared.CodeConcurrencyConflict,
				"document changed while acquiring locks, retry the operation")
		}
	}
	return nil
}
