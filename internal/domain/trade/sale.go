package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
)

const (
	unitCostPlaces int32 = 4
	moneyPlaces    int32 = 2
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// SaleItem is one sold line. UnitCostGTQ, TotalCost, TotalPrice and Profit
// are filled by ApplyCost from a FIFO consumption and never by the caller.
type SaleItem struct {
	shared.BaseEntity
	SaleID       uuid.UUID
	ProductID    uuid.UUID
	Quantity     decimal.Decimal
	UnitPriceGTQ decimal.Decimal
	UnitCostGTQ  decimal.Decimal
	TotalPrice   decimal.Decimal
	TotalCost    decimal.Decimal
	Profit       decimal.Decimal
	Consumptions []inventory.LayerConsumption
}

// NewSaleItem validates a sale line request
func NewSaleItem(saleID, productID uuid.UUID, quantity, unitPriceGTQ decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewInvalidInputError("product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity)
	}
	if !unitPriceGTQ.IsPositive() {
		return nil, shared.NewInvalidInputError("unit price must be greater than zero, got %s", unitPriceGTQ)
	}
	return &SaleItem{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       saleID,
		ProductID:    productID,
		Quantity:     quantity,
		UnitPriceGTQ: unitPriceGTQ,
		UnitCostGTQ:  decimal.Zero,
		TotalPrice:   decimal.Zero,
		TotalCost:    decimal.Zero,
		Profit:       decimal.Zero,
	}, nil
}

// ApplyCost fills the computed fields from the layers consumed for this line.
// Profit may be negative.
func (i *SaleItem) ApplyCost(result inventory.FIFOResult) error {
	if !result.Quantity.Equal(i.Quantity) {
		return shared.NewInvalidInputError("consumed quantity %s does not match item quantity %s",
			result.Quantity, i.Quantity)
	}
	i.UnitCostGTQ = result.UnitCost.Round(unitCostPlaces)
	i.TotalCost = result.TotalCost.Round(moneyPlaces)
	i.TotalPrice = i.Quantity.Mul(i.UnitPriceGTQ).Round(moneyPlaces)
	i.Profit = i.TotalPrice.Sub(i.TotalCost)
	i.Consumptions = result.Breakdown
	return nil
}

// IsCosted reports whether ApplyCost has run
func (i *SaleItem) IsCosted() bool {
	return len(i.Consumptions) > 0
}

// Sale is the aggregate root for a customer sale. Totals are sums over items.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	SaleDate      time.Time
	Status        SaleStatus
	Notes         string
	Items         []SaleItem
	TotalRevenue  decimal.Decimal
	TotalCost     decimal.Decimal
	Profit        decimal.Decimal
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// NewSale creates a pending sale with no items
func NewSale(customerName string, saleDate time.Time) (*Sale, error) {
	customerName = strings.TrimSpace(customerName)
	if len(customerName) > 200 {
		return nil, shared.NewInvalidInputError("customer name cannot exceed 200 characters")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}
	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		SaleDate:          saleDate,
		Status:            SaleStatusPending,
		Items:             make([]SaleItem, 0),
		TotalRevenue:      decimal.Zero,
		TotalCost:         decimal.Zero,
		Profit:            decimal.Zero,
	}, nil
}

// LinkCustomer links the sale to a customer record. A blank name or phone
// is filled from the customer; typed-in values are kept.
func (s *Sale) LinkCustomer(customerID uuid.UUID, name, phone string) {
	s.CustomerID = &customerID
	if s.CustomerName == "" {
		s.CustomerName = name
	}
	if s.CustomerPhone == "" {
		s.CustomerPhone = phone
	}
}

// EnsureEditable fails unless items may still be added or removed
func (s *Sale) EnsureEditable() error {
	if s.Status != SaleStatusPending {
		return shared.NewInvalidStateError("sale %s is %s and can no longer be edited", s.ID, s.Status)
	}
	return nil
}

// AddItem attaches a costed item and refreshes the totals
func (s *Sale) AddItem(item *SaleItem) error {
	if err := s.EnsureEditable(); err != nil {
		return err
	}
	if !item.IsCosted() {
		return shared.NewInvalidStateError("sale item %s has not been costed", item.ID)
	}
	item.SaleID = s.ID
	s.Items = append(s.Items, *item)
	s.Recalculate()
	s.MarkModified()

	s.AddDomainEvent(NewSaleItemCostedEvent(s, item))
	return nil
}

// GetItem returns the item with the given ID or nil
func (s *Sale) GetItem(itemID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// RemoveItem detaches an item and returns it so its consumption can be restored
func (s *Sale) RemoveItem(itemID uuid.UUID) (SaleItem, error) {
	if err := s.EnsureEditable(); err != nil {
		return SaleItem{}, err
	}
	for i := range s.Items {
		if s.Items[i].ID != itemID {
			continue
		}
		removed := s.Items[i]
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		s.Recalculate()
		s.MarkModified()
		s.AddDomainEvent(NewSaleItemRemovedEvent(s, &removed))
		return removed, nil
	}
	return SaleItem{}, shared.NewNotFoundError("sale item", itemID)
}

// Recalculate recomputes TotalRevenue, TotalCost and Profit from the items
func (s *Sale) Recalculate() {
	revenue, cost := decimal.Zero, decimal.Zero
	for i := range s.Items {
		revenue = revenue.Add(s.Items[i].TotalPrice)
		cost = cost.Add(s.Items[i].TotalCost)
	}
	s.TotalRevenue = revenue
	s.TotalCost = cost
	s.Profit = revenue.Sub(cost)
}

// Complete marks the sale completed. Costing already happened when the
// items were created and is not re-run.
func (s *Sale) Complete() error {
	if s.Status != SaleStatusPending {
		return shared.NewInvalidStateError("cannot complete a %s sale", s.Status)
	}
	if len(s.Items) == 0 {
		return shared.NewInvalidStateError("cannot complete sale %s without items", s.ID)
	}
	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.MarkModified()

	s.AddDomainEvent(NewSaleCompletedEvent(s))
	return nil
}

// Cancel marks the sale cancelled. The caller restores every item's
// consumption in the same transaction.
func (s *Sale) Cancel() error {
	if s.Status == SaleStatusCancelled {
		return shared.NewInvalidStateError("sale %s is already cancelled", s.ID)
	}
	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.MarkModified()

	s.AddDomainEvent(NewSaleCancelledEvent(s))
	return nil
}

// ProductIDs returns the distinct product IDs referenced by the items
func (s *Sale) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(s.Items))
	ids := make([]uuid.UUID, 0, len(s.Items))
	for i := range s.Items {
		id := s.Items[i].ProductID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// SaleFilter narrows sale listings
type SaleFilter struct {
	shared.Filter
	Status     SaleStatus
	Range      *shared.DateRange
	CustomerID *uuid.UUID
}
