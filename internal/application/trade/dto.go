package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/trade"
)

// PurchaseItemInput is one line of a purchase request
type PurchaseItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitCostUSD decimal.Decimal `json:"unit_cost_usd" binding:"required"`
	DiscountUSD decimal.Decimal `json:"discount_usd"`
}

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	SupplierName         string              `json:"supplier_name" binding:"required,max=200"`
	OrderDate            *time.Time          `json:"order_date"`
	EstimatedShippingUSD decimal.Decimal     `json:"estimated_shipping_usd"`
	EstimatedTaxesUSD    decimal.Decimal     `json:"estimated_taxes_usd"`
	Notes                string              `json:"notes" binding:"max=2000"`
	Items                []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
}

// AddPurchaseItemRequest adds one line to a pending purchase
type AddPurchaseItemRequest = PurchaseItemInput

// SetRealCostsRequest records invoiced logistics
type SetRealCostsRequest struct {
	RealShippingUSD *decimal.Decimal `json:"real_shipping_usd" binding:"required"`
	RealTaxesUSD    *decimal.Decimal `json:"real_taxes_usd" binding:"required"`
}

// PurchaseListFilter represents filter options for purchase lists
type PurchaseListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending received cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCostUSD       decimal.Decimal `json:"unit_cost_usd"`
	DiscountUSD       decimal.Decimal `json:"discount_usd"`
	ItemCostUSD       decimal.Decimal `json:"item_cost_usd"`
	LandedUnitCostUSD decimal.Decimal `json:"landed_unit_cost_usd"`
	UnitCostGTQ       decimal.Decimal `json:"unit_cost_gtq"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID                   uuid.UUID              `json:"id"`
	SupplierName         string                 `json:"supplier_name"`
	OrderDate            time.Time              `json:"order_date"`
	DeliveryDate         *time.Time             `json:"delivery_date,omitempty"`
	Status               string                 `json:"status"`
	EstimatedShippingUSD decimal.Decimal        `json:"estimated_shipping_usd"`
	EstimatedTaxesUSD    decimal.Decimal        `json:"estimated_taxes_usd"`
	RealShippingUSD      *decimal.Decimal       `json:"real_shipping_usd"`
	RealTaxesUSD         *decimal.Decimal       `json:"real_taxes_usd"`
	ExchangeRate         decimal.Decimal        `json:"exchange_rate"`
	ProductCostUSD       decimal.Decimal        `json:"product_cost_usd"`
	RealTotalUSD         decimal.Decimal        `json:"real_total_usd"`
	Notes                string                 `json:"notes,omitempty"`
	Items                []PurchaseItemResponse `json:"items"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	Version              int                    `json:"version"`
}

// ToPurchaseResponse converts a domain Purchase to a response
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		items[i] = PurchaseItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			UnitCostUSD:       item.UnitCostUSD,
			DiscountUSD:       item.DiscountUSD,
			ItemCostUSD:       item.ItemCost(),
			LandedUnitCostUSD: item.LandedUnitCostUSD,
			UnitCostGTQ:       item.UnitCostGTQ,
		}
	}
	return PurchaseResponse{
		ID:                   p.ID,
		SupplierName:         p.SupplierName,
		OrderDate:            p.OrderDate,
		DeliveryDate:         p.DeliveryDate,
		Status:               p.Status.String(),
		EstimatedShippingUSD: p.EstimatedShippingUSD,
		EstimatedTaxesUSD:    p.EstimatedTaxesUSD,
		RealShippingUSD:      p.RealShippingUSD,
		RealTaxesUSD:         p.RealTaxesUSD,
		ExchangeRate:         p.ExchangeRate,
		ProductCostUSD:       p.ProductCost(),
		RealTotalUSD:         p.RealTotal(),
		Notes:                p.Notes,
		Items:                items,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		Version:              p.Version,
	}
}

// SaleItemInput is one requested sale line. Cost figures are computed, never accepted.
type SaleItemInput struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceGTQ decimal.Decimal `json:"unit_price_gtq" binding:"required"`
}

// CreateSaleRequest represents a request to open a sale, optionally with items
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID      `json:"customer_id"`
	CustomerName  string          `json:"customer_name" binding:"max=200"`
	CustomerPhone string          `json:"customer_phone" binding:"max=50"`
	SaleDate      *time.Time      `json:"sale_date"`
	Notes         string          `json:"notes" binding:"max=2000"`
	Items         []SaleItemInput `json:"items" binding:"omitempty,dive"`
}

// SaleListFilter represents filter options for sale lists
type SaleListFilter struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LayerConsumptionResponse is one line of a sale item's FIFO breakdown
type LayerConsumptionResponse struct {
	LayerID     uuid.UUID       `json:"layer_id"`
	Seq         int64           `json:"seq"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCostGTQ decimal.Decimal `json:"unit_cost_gtq"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID           uuid.UUID                  `json:"id"`
	SaleID       uuid.UUID                  `json:"sale_id"`
	ProductID    uuid.UUID                  `json:"product_id"`
	Quantity     decimal.Decimal            `json:"quantity"`
	UnitPriceGTQ decimal.Decimal            `json:"unit_price_gtq"`
	UnitCostGTQ  decimal.Decimal            `json:"unit_cost_gtq"`
	TotalPrice   decimal.Decimal            `json:"total_price"`
	TotalCost    decimal.Decimal            `json:"total_cost"`
	Profit       decimal.Decimal            `json:"profit"`
	Consumptions []LayerConsumptionResponse `json:"consumptions"`
	CreatedAt    time.Time                  `json:"created_at"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	SaleDate      time.Time          `json:"sale_date"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	TotalRevenue  decimal.Decimal    `json:"total_revenue"`
	TotalCost     decimal.Decimal    `json:"total_cost"`
	Profit        decimal.Decimal    `json:"profit"`
	Items         []SaleItemResponse `json:"items"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	CancelledAt   *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Version       int                `json:"version"`
}

// ToSaleItemResponse converts a domain SaleItem to a response
func ToSaleItemResponse(item *trade.SaleItem) SaleItemResponse {
	consumptions := make([]LayerConsumptionResponse, len(item.Consumptions))
	for i, c := range item.Consumptions {
		consumptions[i] = LayerConsumptionResponse{
			LayerID:     c.LayerID,
			Seq:         c.Seq,
			Quantity:    c.Quantity,
			UnitCostGTQ: c.UnitCostGTQ,
		}
	}
	return SaleItemResponse{
		ID:           item.ID,
		SaleID:       item.SaleID,
		ProductID:    item.ProductID,
		Quantity:     item.Quantity,
		UnitPriceGTQ: item.UnitPriceGTQ,
		UnitCostGTQ:  item.UnitCostGTQ,
		TotalPrice:   item.TotalPrice,
		TotalCost:    item.TotalCost,
		Profit:       item.Profit,
		Consumptions: consumptions,
		CreatedAt:    item.CreatedAt,
	}
}

// ToSaleResponse converts a domain Sale to a response
func ToSaleResponse(s *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i := range s.Items {
		items[i] = ToSaleItemResponse(&s.Items[i])
	}
	return SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		SaleDate:      s.SaleDate,
		Status:        s.Status.String(),
		Notes:         s.Notes,
		TotalRevenue:  s.TotalRevenue,
		TotalCost:     s.TotalCost,
		Profit:        s.Profit,
		Items:         items,
		CompletedAt:   s.CompletedAt,
		CancelledAt:   s.CancelledAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Version:       s.Version,
	}
}
