package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Brand           string           `json:"brand" binding:"max=100"`
	ProductType     string           `json:"product_type" binding:"max=50"`
	SKU             string           `json:"sku" binding:"max=50"`
	Unit            string           `json:"unit" binding:"max=20"`
	Description     string           `json:"description" binding:"max=2000"`
	MinStockLevel   *decimal.Decimal `json:"min_stock_level"`
	CurrentPriceGTQ *decimal.Decimal `json:"current_price_gtq"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Brand           *string          `json:"brand" binding:"omitempty,max=100"`
	ProductType     *string          `json:"product_type" binding:"omitempty,max=50"`
	SKU             *string          `json:"sku" binding:"omitempty,max=50"`
	Unit            *string          `json:"unit" binding:"omitempty,max=20"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	MinStockLevel   *decimal.Decimal `json:"min_stock_level"`
	CurrentPriceGTQ *decimal.Decimal `json:"current_price_gtq"`
}

// ProductListFilter represents filter options for product lists
type ProductListFilter struct {
	Search       string `form:"search" binding:"max=100"`
	LowStockOnly bool   `form:"low_stock"`
	OrderBy      string `form:"order_by" binding:"omitempty,oneof=name current_stock average_cost_gtq created_at updated_at"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                  uuid.UUID       `json:"id"`
	SKU                 string          `json:"sku,omitempty"`
	Name                string          `json:"name"`
	Brand               string          `json:"brand,omitempty"`
	ProductType         string          `json:"product_type,omitempty"`
	Unit                string          `json:"unit"`
	Description         string          `json:"description,omitempty"`
	CurrentStock        decimal.Decimal `json:"current_stock"`
	InventoryValueGTQ   decimal.Decimal `json:"inventory_value_gtq"`
	AverageCostGTQ      decimal.Decimal `json:"average_cost_gtq"`
	MinStockLevel       decimal.Decimal `json:"min_stock_level"`
	IsLowStock          bool            `json:"is_low_stock"`
	CurrentPriceGTQ     decimal.Decimal `json:"current_price_gtq"`
	LastPurchaseCostGTQ decimal.Decimal `json:"last_purchase_cost_gtq"`
	LastPurchaseDate    *time.Time      `json:"last_purchase_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Version             int             `json:"version"`
}

// ToProductResponse converts a domain Product to a response
func ToProductResponse(p *inventory.Product) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		SKU:                 p.SKU,
		Name:                p.Name,
		Brand:               p.Brand,
		ProductType:         p.ProductType,
		Unit:                p.Unit,
		Description:         p.Description,
		CurrentStock:        p.CurrentStock,
		InventoryValueGTQ:   p.InventoryValueGTQ,
		AverageCostGTQ:      p.AverageCostGTQ,
		MinStockLevel:       p.MinStockLevel,
		IsLowStock:          p.IsLowStock(),
		CurrentPriceGTQ:     p.CurrentPriceGTQ,
		LastPurchaseCostGTQ: p.LastPurchaseCostGTQ,
		LastPurchaseDate:    p.LastPurchaseDate,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
		Version:             p.GetVersion(),
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []inventory.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
