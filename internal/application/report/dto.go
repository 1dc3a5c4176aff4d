package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
)

// CostReportRequest selects the sale-date window of a cost report
type CostReportRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// LedgerFilter represents filter options for ledger listings
type LedgerFilter struct {
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Kind      string `form:"kind" binding:"omitempty,oneof=purchase sale adjustment"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	OrderBy   string `form:"order_by" binding:"omitempty,oneof=created_at transaction_type quantity_change"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LedgerEntryResponse represents one inventory transaction
type LedgerEntryResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Kind           string          `json:"kind"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	UnitCostGTQ    decimal.Decimal `json:"unit_cost_gtq"`
	ReferenceType  string          `json:"reference_type"`
	ReferenceID    *uuid.UUID      `json:"reference_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToLedgerEntryResponse converts a ledger record to its response form
func ToLedgerEntryResponse(tx *inventory.InventoryTransaction) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:             tx.ID,
		ProductID:      tx.ProductID,
		Kind:           string(tx.Kind),
		QuantityChange: tx.QuantityChange,
		QuantityBefore: tx.QuantityBefore(),
		QuantityAfter:  tx.QuantityAfter,
		UnitCostGTQ:    tx.UnitCostGTQ,
		ReferenceType:  string(tx.ReferenceType),
		ReferenceID:    tx.ReferenceID,
		Notes:          tx.Notes,
		CreatedAt:      tx.CreatedAt,
	}
}
