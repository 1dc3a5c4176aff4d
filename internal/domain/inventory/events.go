package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeStockReceived    = "StockReceived"
	EventTypeStockConsumed    = "StockConsumed"
	EventTypeStockRestored    = "StockRestored"
	EventTypeLowStockDetected = "LowStockDetected"
)

// StockReceivedEvent is raised when a layer is appended to a product
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCostGTQ    decimal.Decimal `json:"unit_cost_gtq"`
	StockAfter     decimal.Decimal `json:"stock_after"`
	AverageCostGTQ decimal.Decimal `json:"average_cost_gtq"`
}

// NewStockReceivedEvent creates a StockReceivedEvent
func NewStockReceivedEvent(p *Product, quantity, unitCost decimal.Decimal) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Quantity:        quantity,
		UnitCostGTQ:     unitCost,
		StockAfter:      p.CurrentStock,
		AverageCostGTQ:  p.AverageCostGTQ,
	}
}

// StockConsumedEvent is raised when layers are consumed for a sale or a negative adjustment
type StockConsumedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalCostGTQ decimal.Decimal `json:"total_cost_gtq"`
	StockAfter   decimal.Decimal `json:"stock_after"`
}

// NewStockConsumedEvent creates a StockConsumedEvent
func NewStockConsumedEvent(p *Product, quantity, totalCost decimal.Decimal) *StockConsumedEvent {
	return &StockConsumedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockConsumed, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Quantity:        quantity,
		TotalCostGTQ:    totalCost,
		StockAfter:      p.CurrentStock,
	}
}

// StockRestoredEvent is raised when consumed quantity is put back into its layers
type StockRestoredEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalCostGTQ decimal.Decimal `json:"total_cost_gtq"`
	StockAfter   decimal.Decimal `json:"stock_after"`
}

// NewStockRestoredEvent creates a StockRestoredEvent
func NewStockRestoredEvent(p *Product, quantity, totalCost decimal.Decimal) *StockRestoredEvent {
	return &StockRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRestored, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Quantity:        quantity,
		TotalCostGTQ:    totalCost,
		StockAfter:      p.CurrentStock,
	}
}

// LowStockDetectedEvent is raised when stock falls to or below the minimum level
type LowStockDetectedEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// NewLowStockDetectedEvent creates a LowStockDetectedEvent
func NewLowStockDetectedEvent(p *Product) *LowStockDetectedEvent {
	return &LowStockDetectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStockDetected, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		ProductName:     p.Name,
		CurrentStock:    p.CurrentStock,
		MinStockLevel:   p.MinStockLevel,
	}
}
