package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/shared/valueobject"
)

// landedPlaces is the precision USD landed costs and allocations are kept with
const landedPlaces int32 = 4

// PurchaseStatus represents the status of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// PurchaseItem is a line of a purchase, priced in USD
type PurchaseItem struct {
	shared.BaseEntity
	PurchaseID  uuid.UUID
	ProductID   uuid.UUID
	Quantity    decimal.Decimal
	UnitCostUSD decimal.Decimal
	DiscountUSD decimal.Decimal
	// Set on receipt
	LandedUnitCostUSD decimal.Decimal
	UnitCostGTQ       decimal.Decimal
}

// NewPurchaseItem creates a purchase line
func NewPurchaseItem(purchaseID, productID uuid.UUID, quantity, unitCostUSD, discountUSD decimal.Decimal) (*PurchaseItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewInvalidInputError("product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity)
	}
	if unitCostUSD.IsNegative() {
		return nil, shared.NewInvalidInputError("unit cost cannot be negative, got %s", unitCostUSD)
	}
	if discountUSD.IsNegative() {
		return nil, shared.NewInvalidInputError("discount cannot be negative, got %s", discountUSD)
	}
	if discountUSD.GreaterThan(quantity.Mul(unitCostUSD)) {
		return nil, shared.NewInvalidInputError("discount %s exceeds line amount %s", discountUSD, quantity.Mul(unitCostUSD))
	}
	return &PurchaseItem{
		BaseEntity:        shared.NewBaseEntity(),
		PurchaseID:        purchaseID,
		ProductID:         productID,
		Quantity:          quantity,
		UnitCostUSD:       unitCostUSD,
		DiscountUSD:       discountUSD,
		LandedUnitCostUSD: decimal.Zero,
		UnitCostGTQ:       decimal.Zero,
	}, nil
}

// ItemCost returns quantity*unit cost minus discount, in USD
func (i *PurchaseItem) ItemCost() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCostUSD).Sub(i.DiscountUSD)
}

// LandedCost is the per-item outcome of allocating logistics over a purchase
type LandedCost struct {
	ItemID              uuid.UUID
	ProductID           uuid.UUID
	Quantity            decimal.Decimal
	ItemCostUSD         decimal.Decimal
	LogisticsUSD        decimal.Decimal
	BaseUnitCostUSD     decimal.Decimal
	LogisticsPerUnitUSD decimal.Decimal
	LandedUnitCostUSD   decimal.Decimal

	// item cost plus logistics share, unrounded by the unit division
	landedTotalUSD decimal.Decimal
}

// Purchase is the aggregate root for a supplier order paid in USD
type Purchase struct {
	shared.BaseAggregateRoot
	SupplierName         string
	OrderDate            time.Time
	DeliveryDate         *time.Time
	Status               PurchaseStatus
	EstimatedShippingUSD decimal.Decimal
	EstimatedTaxesUSD    decimal.Decimal
	RealShippingUSD      *decimal.Decimal
	RealTaxesUSD         *decimal.Decimal
	// ExchangeRate is the USD to GTQ rate the receipt was booked with
	ExchangeRate decimal.Decimal
	Notes        string
	Items        []PurchaseItem
}

// NewPurchase creates a pending purchase
func NewPurchase(supplierName string, orderDate time.Time) (*Purchase, error) {
	supplierName = strings.TrimSpace(supplierName)
	if supplierName == "" {
		return nil, shared.NewInvalidInputError("supplier name cannot be empty")
	}
	if len(supplierName) > 200 {
		return nil, shared.NewInvalidInputError("supplier name cannot exceed 200 characters")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	return &Purchase{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		SupplierName:         supplierName,
		OrderDate:            orderDate,
		Status:               PurchaseStatusPending,
		EstimatedShippingUSD: decimal.Zero,
		EstimatedTaxesUSD:    decimal.Zero,
		ExchangeRate:         decimal.Zero,
		Items:                make([]PurchaseItem, 0),
	}, nil
}

// AddItem appends a line. Only allowed while pending.
func (p *Purchase) AddItem(productID uuid.UUID, quantity, unitCostUSD, discountUSD decimal.Decimal) (*PurchaseItem, error) {
	if p.Status != PurchaseStatusPending {
		return nil, shared.NewInvalidStateError("cannot add items to a %s purchase", p.Status)
	}
	item, err := NewPurchaseItem(p.ID, productID, quantity, unitCostUSD, discountUSD)
	if err != nil {
		return nil, err
	}
	p.Items = append(p.Items, *item)
	p.MarkModified()
	return &p.Items[len(p.Items)-1], nil
}

// SetEstimatedCosts records the shipping and taxes quoted before delivery
func (p *Purchase) SetEstimatedCosts(shippingUSD, taxesUSD decimal.Decimal) error {
	if shippingUSD.IsNegative() || taxesUSD.IsNegative() {
		return shared.NewInvalidInputError("estimated shipping and taxes cannot be negative")
	}
	p.EstimatedShippingUSD = shippingUSD
	p.EstimatedTaxesUSD = taxesUSD
	p.MarkModified()
	return nil
}

// SetRealCosts records the invoiced shipping and taxes. Only allowed while pending.
func (p *Purchase) SetRealCosts(shippingUSD, taxesUSD decimal.Decimal) error {
	if p.Status != PurchaseStatusPending {
		return shared.NewInvalidStateError("cannot change real costs of a %s purchase", p.Status)
	}
	if shippingUSD.IsNegative() || taxesUSD.IsNegative() {
		return shared.NewInvalidInputError("real shipping and taxes cannot be negative")
	}
	shipping, taxes := shippingUSD, taxesUSD
	p.RealShippingUSD = &shipping
	p.RealTaxesUSD = &taxes
	p.MarkModified()
	return nil
}

// HasRealCosts reports whether both invoiced logistics figures are present
func (p *Purchase) HasRealCosts() bool {
	return p.RealShippingUSD != nil && p.RealTaxesUSD != nil
}

// ProductCost returns the sum of item costs in USD
func (p *Purchase) ProductCost() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Items {
		total = total.Add(p.Items[i].ItemCost())
	}
	return total
}

// EstimatedLogisticsCost returns estimated shipping plus taxes
func (p *Purchase) EstimatedLogisticsCost() decimal.Decimal {
	return p.EstimatedShippingUSD.Add(p.EstimatedTaxesUSD)
}

// RealLogisticsCost returns real shipping plus taxes, or nil while either is missing
func (p *Purchase) RealLogisticsCost() *decimal.Decimal {
	if !p.HasRealCosts() {
		return nil
	}
	total := p.RealShippingUSD.Add(*p.RealTaxesUSD)
	return &total
}

// RealTotal returns product cost plus real logistics, falling back to estimates
func (p *Purchase) RealTotal() decimal.Decimal {
	if logistics := p.RealLogisticsCost(); logistics != nil {
		return p.ProductCost().Add(*logistics)
	}
	return p.ProductCost().Add(p.EstimatedLogisticsCost())
}

// CanReceive checks receipt preconditions without mutating anything
func (p *Purchase) CanReceive() error {
	switch p.Status {
	case PurchaseStatusReceived:
		return shared.NewDomainError(shared.CodeAlreadyReceived,
			"purchase "+p.ID.String()+" has already been received")
	case PurchaseStatusCancelled:
		return shared.NewInvalidStateError("purchase %s is cancelled", p.ID)
	}
	if !p.HasRealCosts() {
		return shared.NewDomainError(shared.CodeMissingRealCosts,
			"purchase "+p.ID.String()+" requires real shipping and taxes before it can be received")
	}
	if len(p.Items) == 0 {
		return shared.NewInvalidStateError("purchase %s has no items", p.ID)
	}
	return nil
}

// LandedCosts allocates real logistics over the items in proportion to their
// item cost and returns the USD landed unit cost of every item, in item order.
func (p *Purchase) LandedCosts() ([]LandedCost, error) {
	if err := p.CanReceive(); err != nil {
		return nil, err
	}

	weights := make([]decimal.Decimal, len(p.Items))
	for i := range p.Items {
		weights[i] = p.Items[i].ItemCost()
	}
	logistics := valueobject.NewMoneyUSD(*p.RealLogisticsCost())
	shares, err := logistics.AllocateProRata(weights, landedPlaces)
	if err != nil {
		return nil, err
	}

	out := make([]LandedCost, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		share := shares[i].Amount()
		itemCost := item.ItemCost()
		total := itemCost.Add(share)
		out[i] = LandedCost{
			ItemID:              item.ID,
			ProductID:           item.ProductID,
			Quantity:            item.Quantity,
			ItemCostUSD:         itemCost,
			LogisticsUSD:        share,
			BaseUnitCostUSD:     itemCost.Div(item.Quantity).Round(landedPlaces),
			LogisticsPerUnitUSD: share.Div(item.Quantity).Round(landedPlaces),
			LandedUnitCostUSD:   total.Div(item.Quantity).Round(landedPlaces),
			landedTotalUSD:      total,
		}
	}
	return out, nil
}

// MarkReceived books the receipt: every item gets its landed cost, the
// purchase becomes received and deliveredAt is recorded as the delivery date.
func (p *Purchase) MarkReceived(landed []LandedCost, rate valueobject.ExchangeRate, deliveredAt time.Time) error {
	if err := p.CanReceive(); err != nil {
		return err
	}
	if len(landed) != len(p.Items) {
		return shared.NewInvalidInputError("expected %d landed costs, got %d", len(p.Items), len(landed))
	}
	for i := range p.Items {
		if landed[i].ItemID != p.Items[i].ID {
			return shared.NewInvalidInputError("landed cost %d does not belong to item %s", i, p.Items[i].ID)
		}
		gtq, err := valueobject.UnitToGTQ(landed[i].landedTotalUSD, p.Items[i].Quantity, rate.Rate())
		if err != nil {
			return err
		}
		p.Items[i].LandedUnitCostUSD = landed[i].LandedUnitCostUSD
		p.Items[i].UnitCostGTQ = gtq
	}

	at := deliveredAt
	p.DeliveryDate = &at
	p.Status = PurchaseStatusReceived
	p.ExchangeRate = rate.Rate()
	p.MarkModified()

	p.AddDomainEvent(NewPurchaseReceivedEvent(p))
	return nil
}

// RevertReceipt returns a received purchase to pending. The caller must have
// drained the layers the receipt created.
func (p *Purchase) RevertReceipt() error {
	if p.Status != PurchaseStatusReceived {
		return shared.NewInvalidStateError("cannot revert a %s purchase", p.Status)
	}
	p.Status = PurchaseStatusPending
	p.DeliveryDate = nil
	for i := range p.Items {
		p.Items[i].LandedUnitCostUSD = decimal.Zero
		p.Items[i].UnitCostGTQ = decimal.Zero
	}
	p.MarkModified()

	p.AddDomainEvent(NewPurchaseReversedEvent(p))
	return nil
}

// Cancel cancels a pending purchase
func (p *Purchase) Cancel() error {
	if p.Status != PurchaseStatusPending {
		return shared.NewInvalidStateError("cannot cancel a %s purchase", p.Status)
	}
	p.Status = PurchaseStatusCancelled
	p.MarkModified()
	return nil
}

// ItemIDs returns the IDs of every item
func (p *Purchase) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.Items))
	for i := range p.Items {
		ids[i] = p.Items[i].ID
	}
	return ids
}

// ProductIDs returns the distinct product IDs referenced by the items
func (p *Purchase) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(p.Items))
	ids := make([]uuid.UUID, 0, len(p.Items))
	for i := range p.Items {
		id := p.Items[i].ProductID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// PurchaseFilter narrows purchase listings
type PurchaseFilter struct {
	shared.Filter
	Status PurchaseStatus
}
