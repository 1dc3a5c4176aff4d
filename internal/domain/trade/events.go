package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePurchase = "Purchase"
	AggregateTypeSale     = "Sale"
)

// Event type constants
const (
	EventTypePurchaseReceived = "PurchaseReceived"
	EventTypePurchaseReversed = "PurchaseReversed"
	EventTypeSaleItemCosted   = "SaleItemCosted"
	EventTypeSaleItemRemoved  = "SaleItemRemoved"
	EventTypeSaleCompleted    = "SaleCompleted"
	EventTypeSaleCancelled    = "SaleCancelled"
)

// ReceivedItemInfo describes one received line in PurchaseReceivedEvent
type ReceivedItemInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCostGTQ decimal.Decimal `json:"unit_cost_gtq"`
}

// PurchaseReceivedEvent is raised when a purchase has been received and its layers created
type PurchaseReceivedEvent struct {
	shared.BaseDomainEvent
	PurchaseID   uuid.UUID          `json:"purchase_id"`
	ExchangeRate decimal.Decimal    `json:"exchange_rate"`
	Items        []ReceivedItemInfo `json:"items"`
}

// NewPurchaseReceivedEvent creates a PurchaseReceivedEvent
func NewPurchaseReceivedEvent(p *Purchase) *PurchaseReceivedEvent {
	items := make([]ReceivedItemInfo, len(p.Items))
	for i := range p.Items {
		items[i] = ReceivedItemInfo{
			ItemID:      p.Items[i].ID,
			ProductID:   p.Items[i].ProductID,
			Quantity:    p.Items[i].Quantity,
			UnitCostGTQ: p.Items[i].UnitCostGTQ,
		}
	}
	return &PurchaseReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReceived, AggregateTypePurchase, p.ID),
		PurchaseID:      p.ID,
		ExchangeRate:    p.ExchangeRate,
		Items:           items,
	}
}

// PurchaseReversedEvent is raised when a receipt is undone
type PurchaseReversedEvent struct {
	shared.BaseDomainEvent
	PurchaseID uuid.UUID `json:"purchase_id"`
}

// NewPurchaseReversedEvent creates a PurchaseReversedEvent
func NewPurchaseReversedEvent(p *Purchase) *PurchaseReversedEvent {
	return &PurchaseReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReversed, AggregateTypePurchase, p.ID),
		PurchaseID:      p.ID,
	}
}

// SaleItemCostedEvent is raised when a sale line has consumed its layers
type SaleItemCostedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleItemID uuid.UUID       `json:"sale_item_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Profit     decimal.Decimal `json:"profit"`
}

// NewSaleItemCostedEvent creates a SaleItemCostedEvent
func NewSaleItemCostedEvent(s *Sale, item *SaleItem) *SaleItemCostedEvent {
	return &SaleItemCostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleItemCosted, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
		SaleItemID:      item.ID,
		ProductID:       item.ProductID,
		Quantity:        item.Quantity,
		TotalPrice:      item.TotalPrice,
		TotalCost:       item.TotalCost,
		Profit:          item.Profit,
	}
}

// SaleItemRemovedEvent is raised when a sale line is deleted
type SaleItemRemovedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleItemID uuid.UUID       `json:"sale_item_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// NewSaleItemRemovedEvent creates a SaleItemRemovedEvent
func NewSaleItemRemovedEvent(s *Sale, item *SaleItem) *SaleItemRemovedEvent {
	return &SaleItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleItemRemoved, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
		SaleItemID:      item.ID,
		ProductID:       item.ProductID,
		Quantity:        item.Quantity,
	}
}

// SaleCompletedEvent is raised when a sale is completed
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID       uuid.UUID       `json:"sale_id"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Profit       decimal.Decimal `json:"profit"`
}

// NewSaleCompletedEvent creates a SaleCompletedEvent
func NewSaleCompletedEvent(s *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
		TotalRevenue:    s.TotalRevenue,
		TotalCost:       s.TotalCost,
		Profit:          s.Profit,
	}
}

// SaleCancelledEvent is raised when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID uuid.UUID `json:"sale_id"`
}

// NewSaleCancelledEvent creates a SaleCancelledEvent
func NewSaleCancelledEvent(s *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCancelled, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
	}
}
