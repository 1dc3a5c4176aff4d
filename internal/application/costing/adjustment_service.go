package costing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AdjustStockRequest describes a manual stock correction. A positive
// QuantityDelta appends a layer, a negative one consumes FIFO.
type AdjustStockRequest struct {
	QuantityDelta decimal.Decimal  `json:"quantity_delta" binding:"required"`
	UnitCostGTQ   *decimal.Decimal `json:"unit_cost_gtq"`
	Notes         string           `json:"notes" binding:"required,max=500"`
}

// AdjustmentResponse reports the effect of an adjustment
type AdjustmentResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	QuantityDelta  decimal.Decimal `json:"quantity_delta"`
	UnitCostGTQ    decimal.Decimal `json:"unit_cost_gtq"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	AverageCostGTQ decimal.Decimal `json:"average_cost_gtq"`
	TransactionID  uuid.UUID       `json:"transaction_id"`
}

// AdjustmentService applies manual stock corrections through the cost layers
type AdjustmentService struct {
	engine
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(scope TransactionScope, locker *ProductLocker, cfg Config, logger *zap.Logger) *AdjustmentService {
	return &AdjustmentService{engine: newEngine(scope, locker, cfg, logger)}
}

// AdjustStock corrects a product's stock. Increases without a unit cost are
// valued at the current average cost.
func (s *AdjustmentService) AdjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*AdjustmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "adjust",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, req.QuantityDelta.String()),
	)
	resp, err := s.adjustStock(ctx, productID, req)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *AdjustmentService) adjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*AdjustmentResponse, error) {
	if productID == uuid.Nil {
		return nil, shared.NewInvalidInputError("product ID cannot be empty")
	}
	if req.QuantityDelta.IsZero() {
		return nil, shared.NewInvalidInputError("quantity delta cannot be zero")
	}
	if req.UnitCostGTQ != nil && req.UnitCostGTQ.IsNegative() {
		return nil, shared.NewInvalidInputError("unit cost cannot be negative, got %s", req.UnitCostGTQ)
	}

	unlock, err := s.lock(ctx, productID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		response AdjustmentResponse
		events   []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockedProducts(ctx, repos, []uuid.UUID{productID})
		if err != nil {
			return err
		}
		product := products[productID]

		var unitCost decimal.Decimal
		if req.QuantityDelta.IsPositive() {
			unitCost, err = s.increase(ctx, repos, product, req)
		} else {
			unitCost, err = s.decrease(ctx, repos, product, req.QuantityDelta.Neg())
		}
		if err != nil {
			return err
		}

		entry, err := inventory.NewInventoryTransaction(productID, inventory.TransactionKindAdjustment,
			req.QuantityDelta, product.CurrentStock, inventory.ReferenceManual, nil)
		if err != nil {
			return err
		}
		entry.WithUnitCost(unitCost).WithNotes(req.Notes)
		if err := record(ctx, repos, entry); err != nil {
			return err
		}
		if err := saveProducts(ctx, repos, products, &events); err != nil {
			return err
		}

		response = AdjustmentResponse{
			ProductID:      productID,
			QuantityDelta:  req.QuantityDelta,
			UnitCostGTQ:    unitCost,
			CurrentStock:   product.CurrentStock,
			AverageCostGTQ: product.AverageCostGTQ,
			TransactionID:  entry.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("stock adjusted",
		zap.String("product_id", productID.String()),
		zap.String("delta", req.QuantityDelta.String()),
		zap.String("unit_cost", response.UnitCostGTQ.String()),
		zap.String("notes", req.Notes),
	)
	return &response, nil
}

func (s *AdjustmentService) increase(ctx context.Context, repos TransactionalRepositories, product *inventory.Product, req AdjustStockRequest) (decimal.Decimal, error) {
	unitCost := product.AverageCostGTQ
	if req.UnitCostGTQ != nil {
		unitCost = *req.UnitCostGTQ
	}
	layer, err := inventory.NewCostLayer(product.ID, unitCost, req.QuantityDelta, inventory.LayerOrigin{})
	if err != nil {
		return decimal.Zero, err
	}
	if err := repos.CostLayerRepo().Append(ctx, layer); err != nil {
		return decimal.Zero, err
	}
	if err := product.ApplyAdjustmentIn(req.QuantityDelta, unitCost); err != nil {
		return decimal.Zero, err
	}
	return unitCost, nil
}

func (s *AdjustmentService) decrease(ctx context.Context, repos TransactionalRepositories, product *inventory.Product, quantity decimal.Decimal) (decimal.Decimal, error) {
	result, err := consume(ctx, repos, product, quantity)
	if err != nil {
		return decimal.Zero, err
	}
	return result.UnitCost.Round(4), nil
}
