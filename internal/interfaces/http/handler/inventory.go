package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/supplements/backend/internal/application/costing"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
)

// InventoryHandler handles manual stock corrections
type InventoryHandler struct {
	BaseHandler
	adjustmentService *costing.AdjustmentService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(adjustmentService *costing.AdjustmentService) *InventoryHandler {
	return &InventoryHandler{adjustmentService: adjustmentService}
}

// Adjust godoc
// @Summary      Adjust a product's stock
// @Description  A positive delta appends a cost layer, a negative delta consumes FIFO
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Product ID" format(uuid)
// @Param        request body costing.AdjustStockRequest true "Adjustment"
// @Success      200 {object} APIResponse[costing.AdjustmentResponse]
// @Failure      422 {object} ErrorResponse "Insufficient stock"
// @Router       /products/{id}/adjustments [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req costing.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.adjustmentService.AdjustStock(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementAdjustment)
		return
	}
	h.Success(c, resp)
}
