package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=20"`
	Email   string `json:"email" binding:"omitempty,email,max=254"`
	Address string `json:"address" binding:"max=2000"`
	Notes   string `json:"notes" binding:"max=2000"`
}

// UpdateCustomerRequest represents a request to update a customer.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,max=254"`
	Address *string `json:"address" binding:"omitempty,max=2000"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

// CustomerListFilter represents filter options for customer lists
type CustomerListFilter struct {
	Search   string `form:"search" binding:"max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	SalesCount int64     `json:"sales_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToCustomerResponse converts a domain Customer to a response
func ToCustomerResponse(c *partner.Customer, salesCount int64) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Notes:      c.Notes,
		SalesCount: salesCount,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Version:    c.Version,
	}
}
