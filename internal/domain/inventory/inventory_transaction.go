package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// TransactionKind classifies a stock movement
type TransactionKind string

const (
	TransactionKindPurchase   TransactionKind = "purchase"
	TransactionKindSale       TransactionKind = "sale"
	TransactionKindAdjustment TransactionKind = "adjustment"
)

// IsValid returns true if the kind is known
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindPurchase, TransactionKindSale, TransactionKindAdjustment:
		return true
	}
	return false
}

// ReferenceType names the document a ledger entry points at
type ReferenceType string

const (
	ReferencePurchaseItem ReferenceType = "purchase_item"
	ReferenceSaleItem     ReferenceType = "sale_item"
	ReferenceManual       ReferenceType = "manual"
)

// InventoryTransaction is an immutable ledger record of one stock mutation.
// Corrections are new adjustment records; nothing is updated or deleted.
// The ledger is audit data only and is never read back by costing.
type InventoryTransaction struct {
	shared.BaseEntity
	ProductID      uuid.UUID
	Kind           TransactionKind
	QuantityChange decimal.Decimal // signed
	QuantityAfter  decimal.Decimal
	UnitCostGTQ    decimal.Decimal
	ReferenceType  ReferenceType
	ReferenceID    *uuid.UUID
	Notes          string
}

// NewInventoryTransaction records delta against productID leaving resultingQuantity on hand
func NewInventoryTransaction(
	productID uuid.UUID,
	kind TransactionKind,
	delta decimal.Decimal,
	resultingQuantity decimal.Decimal,
	referenceType ReferenceType,
	referenceID *uuid.UUID,
) (*InventoryTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewInvalidInputError("product ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewInvalidInputError("invalid transaction kind %q", kind)
	}
	if delta.IsZero() {
		return nil, shared.NewInvalidInputError("quantity change cannot be zero")
	}
	if resultingQuantity.IsNegative() {
		return nil, shared.NewInvalidInputError("resulting quantity cannot be negative, got %s", resultingQuantity)
	}
	switch kind {
	case TransactionKindPurchase:
		if delta.IsNegative() {
			return nil, shared.NewInvalidInputError("purchase entries must increase stock")
		}
	case TransactionKindSale:
		if delta.IsPositive() {
			return nil, shared.NewInvalidInputError("sale entries must decrease stock")
		}
	}

	return &InventoryTransaction{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		Kind:           kind,
		QuantityChange: delta,
		QuantityAfter:  resultingQuantity,
		UnitCostGTQ:    decimal.Zero,
		ReferenceType:  referenceType,
		ReferenceID:    referenceID,
	}, nil
}

// WithUnitCost records the GTQ unit cost the movement was valued at
func (t *InventoryTransaction) WithUnitCost(cost decimal.Decimal) *InventoryTransaction {
	t.UnitCostGTQ = cost
	return t
}

// WithNotes attaches a free-text note
func (t *InventoryTransaction) WithNotes(notes string) *InventoryTransaction {
	t.Notes = notes
	return t
}

// WithCreatedAt backdates the record, used when a receipt carries its own delivery date
func (t *InventoryTransaction) WithCreatedAt(at time.Time) *InventoryTransaction {
	t.CreatedAt = at
	t.UpdatedAt = at
	return t
}

// QuantityBefore returns the on-hand quantity before the movement
func (t *InventoryTransaction) QuantityBefore() decimal.Decimal {
	return t.QuantityAfter.Sub(t.QuantityChange)
}

// IsIncrease reports whether the movement added stock
func (t *InventoryTransaction) IsIncrease() bool {
	return t.QuantityChange.IsPositive()
}

// LedgerFilter narrows ledger listings
type LedgerFilter struct {
	shared.Filter
	ProductID *uuid.UUID
	Kind      TransactionKind
	Range     *shared.DateRange
}
