package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseService handles the CRUD side of purchases. Receiving is done by
// the costing package.
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	scope        TransactionScope
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo trade.PurchaseRepository, scope TransactionScope, logger *zap.Logger) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		scope:        scope,
		logger:       logger,
	}
}

// Create creates a pending purchase with its items
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	orderDate := zeroTime
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	purchase, err := trade.NewPurchase(req.SupplierName, orderDate)
	if err != nil {
		return nil, err
	}

	if err := purchase.SetEstimatedCosts(req.EstimatedShippingUSD, req.EstimatedTaxesUSD); err != nil {
		return nil, err
	}
	purchase.Notes = req.Notes

	for _, item := range req.Items {
		if _, err := purchase.AddItem(item.ProductID, item.Quantity, item.UnitCostUSD, item.DiscountUSD); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("supplier", purchase.SupplierName),
		zap.Int("items", len(purchase.Items)),
	)

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	domainFilter := trade.PurchaseFilter{
		Filter: pageFilter(filter.Page, filter.PageSize),
		Status: trade.PurchaseStatus(filter.Status),
	}

	purchases, total, err := s.purchaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses, total, nil
}

// AddItem adds a line to a pending purchase
func (s *PurchaseService) AddItem(ctx context.Context, id uuid.UUID, req AddPurchaseItemRequest) (*PurchaseResponse, error) {
	purchase, err := s.update(ctx, id, func(p *trade.Purchase) error {
		_, err := p.AddItem(req.ProductID, req.Quantity, req.UnitCostUSD, req.DiscountUSD)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// SetRealCosts records invoiced shipping and taxes, which receiving requires
func (s *PurchaseService) SetRealCosts(ctx context.Context, id uuid.UUID, req SetRealCostsRequest) (*PurchaseResponse, error) {
	if req.RealShippingUSD == nil || req.RealTaxesUSD == nil {
		return nil, shared.NewInvalidInputError("real_shipping_usd and real_taxes_usd are both required")
	}
	purchase, err := s.update(ctx, id, func(p *trade.Purchase) error {
		return p.SetRealCosts(*req.RealShippingUSD, *req.RealTaxesUSD)
	})
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Cancel cancels a pending purchase
func (s *PurchaseService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.update(ctx, id, (*trade.Purchase).Cancel)
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase cancelled", zap.String("purchase_id", id.String()))

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// update applies fn to the purchase while its row is locked and saves the
// result in the same transaction
func (s *PurchaseService) update(ctx context.Context, id uuid.UUID, fn func(*trade.Purchase) error) (*trade.Purchase, error) {
	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.PurchaseRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(purchase); err != nil {
			return err
		}
		return repos.PurchaseRepo().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
