package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// CostLayer is a received quantity of one product at one GTQ unit cost.
// Layers are consumed in Seq order and are never deleted; an exhausted
// layer stays with QuantityRemaining = 0 for audit.
type CostLayer struct {
	shared.BaseEntity
	ProductID           uuid.UUID
	Seq                 int64
	PurchaseItemID      *uuid.UUID
	UnitCostGTQ         decimal.Decimal
	BaseUnitCostUSD     decimal.Decimal
	LogisticsPerUnitUSD decimal.Decimal
	OriginalQuantity    decimal.Decimal
	QuantityRemaining   decimal.Decimal
}

// LayerOrigin describes where a layer's cost came from. A nil PurchaseItemID
// marks a manual adjustment.
type LayerOrigin struct {
	PurchaseItemID      *uuid.UUID
	BaseUnitCostUSD     decimal.Decimal
	LogisticsPerUnitUSD decimal.Decimal
}

// NewCostLayer creates a layer. Seq is assigned by the store on append.
func NewCostLayer(productID uuid.UUID, unitCostGTQ, quantity decimal.Decimal, origin LayerOrigin) (*CostLayer, error) {
	if productID == uuid.Nil {
		return nil, shared.NewInvalidInputError("product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewInvalidInputError("layer quantity must be greater than zero, got %s", quantity)
	}
	if unitCostGTQ.IsNegative() {
		return nil, shared.NewInvalidInputError("layer unit cost cannot be negative, got %s", unitCostGTQ)
	}
	return &CostLayer{
		BaseEntity:          shared.NewBaseEntity(),
		ProductID:           productID,
		PurchaseItemID:      origin.PurchaseItemID,
		UnitCostGTQ:         unitCostGTQ,
		BaseUnitCostUSD:     origin.BaseUnitCostUSD,
		LogisticsPerUnitUSD: origin.LogisticsPerUnitUSD,
		OriginalQuantity:    quantity,
		QuantityRemaining:   quantity,
	}, nil
}

// IsExhausted returns true once nothing remains in the layer
func (l *CostLayer) IsExhausted() bool {
	return !l.QuantityRemaining.IsPositive()
}

// IsConsumed reports whether any quantity has been taken from the layer
func (l *CostLayer) IsConsumed() bool {
	return l.QuantityRemaining.LessThan(l.OriginalQuantity)
}

// take removes quantity from the layer
func (l *CostLayer) take(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity)
	}
	if quantity.GreaterThan(l.QuantityRemaining) {
		return shared.NewInvalidStateError("cannot take %s from layer %s with %s remaining",
			quantity, l.ID, l.QuantityRemaining)
	}
	l.QuantityRemaining = l.QuantityRemaining.Sub(quantity)
	return nil
}

// Restore puts back quantity previously taken from this layer
func (l *CostLayer) Restore(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity)
	}
	if l.QuantityRemaining.Add(quantity).GreaterThan(l.OriginalQuantity) {
		return shared.NewInvalidStateError("cannot restore %s to layer %s: remaining %s of original %s",
			quantity, l.ID, l.QuantityRemaining, l.OriginalQuantity)
	}
	l.QuantityRemaining = l.QuantityRemaining.Add(quantity)
	return nil
}

// Drain empties an unconsumed layer when its receipt is reversed and returns
// the quantity removed
func (l *CostLayer) Drain() (decimal.Decimal, error) {
	if l.IsConsumed() {
		return decimal.Zero, shared.NewInvalidStateError("layer %s was already partially consumed", l.ID)
	}
	drained := l.QuantityRemaining
	l.QuantityRemaining = decimal.Zero
	return drained, nil
}
