package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/supplements/backend/internal/application/costing"
	tradeapp "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
)

// SaleHandler handles sales and the costing of their items
type SaleHandler struct {
	BaseHandler
	saleService    *tradeapp.SaleService
	costingService *costing.SaleCostingService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService, costingService *costing.SaleCostingService) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		costingService: costingService,
	}
}

// Create godoc
// @Summary      Create a sale
// @Description  Open a pending sale. Items, when given, are costed FIFO in one transaction; any shortage rejects the whole sale.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateSaleRequest true "Sale"
// @Success      201 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      422 {object} ErrorResponse "Insufficient stock"
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var (
		sale *tradeapp.SaleResponse
		err  error
	)
	if len(req.Items) == 0 {
		sale, err = h.saleService.CreateEmpty(c.Request.Context(), req)
	} else {
		sale, err = h.costingService.CreateSale(c.Request.Context(), req)
	}
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementSale)
		return
	}
	h.Created(c, sale)
}

// GetByID godoc
// @Summary      Get sale by ID
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Param        status     query string false "Status" Enums(pending, completed, cancelled)
// @Param        start_date query string false "First sale date (YYYY-MM-DD)"
// @Param        end_date   query string false "Last sale date (YYYY-MM-DD)"
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tradeapp.SaleResponse]
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageParams(filter.Page, filter.PageSize)

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// AddItem godoc
// @Summary      Add an item to a pending sale
// @Description  Consume stock FIFO and record the item's cost and profit
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id      path string true "Sale ID" format(uuid)
// @Param        request body tradeapp.SaleItemInput true "Item"
// @Success      201 {object} APIResponse[tradeapp.SaleItemResponse]
// @Failure      422 {object} ErrorResponse "Insufficient stock"
// @Router       /sales/{id}/items [post]
func (h *SaleHandler) AddItem(c *gin.Context) {
	saleID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.SaleItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.costingService.CreateSaleItem(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementSale)
		return
	}
	h.Created(c, item)
}

// UpdateItem godoc
// @Summary      Replace an item of a pending sale
// @Description  Restore the item's consumption and cost the new line again
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id      path string true "Sale ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Param        request body tradeapp.SaleItemInput true "Item"
// @Success      200 {object} APIResponse[tradeapp.SaleItemResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /sales/{id}/items/{item_id} [put]
func (h *SaleHandler) UpdateItem(c *gin.Context) {
	saleID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req tradeapp.SaleItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.costingService.UpdateSaleItem(c.Request.Context(), saleID, itemID, req)
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementSale)
		return
	}
	h.Success(c, item)
}

// DeleteItem godoc
// @Summary      Remove an item from a pending sale
// @Description  The consumed quantity goes back to the layers it came from
// @Tags         sales
// @Produce      json
// @Param        id      path string true "Sale ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id}/items/{item_id} [delete]
func (h *SaleHandler) DeleteItem(c *gin.Context) {
	saleID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	sale, err := h.costingService.DeleteSaleItem(c.Request.Context(), saleID, itemID)
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementSale)
		return
	}
	h.Success(c, sale)
}

// Complete godoc
// @Summary      Complete a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /sales/{id}/complete [post]
func (h *SaleHandler) Complete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Cancel godoc
// @Summary      Cancel a sale
// @Description  Restore the stock consumed by every item
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.costingService.CancelSale(c.Request.Context(), id)
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementSale)
		return
	}
	h.Success(c, sale)
}
