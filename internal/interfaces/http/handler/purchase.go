package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/supplements/backend/internal/application/costing"
	tradeapp "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
)

// PurchaseHandler handles purchase documents and their receipt
type PurchaseHandler struct {
	BaseHandler
	purchaseService  *tradeapp.PurchaseService
	receivingService *costing.ReceivingService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService, receivingService *costing.ReceivingService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService:  purchaseService,
		receivingService: receivingService,
	}
}

// ReversePurchaseRequest carries the reason for a reversal
type ReversePurchaseRequest struct {
	Notes string `json:"notes" binding:"max=500" example:"Supplier recalled the lot"`
}

// Create godoc
// @Summary      Create a purchase
// @Description  Record a pending purchase in USD with estimated logistics
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreatePurchaseRequest true "Purchase"
// @Success      201 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// GetByID godoc
// @Summary      Get purchase by ID
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List godoc
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Param        status    query string false "Status" Enums(pending, received, cancelled)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tradeapp.PurchaseResponse]
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter tradeapp.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageParams(filter.Page, filter.PageSize)

	purchases, total, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.PageSize)
}

// AddItem godoc
// @Summary      Add a line to a pending purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id      path string true "Purchase ID" format(uuid)
// @Param        request body tradeapp.PurchaseItemInput true "Line"
// @Success      200 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /purchases/{id}/items [post]
func (h *PurchaseHandler) AddItem(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.AddPurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	purchase, err := h.purchaseService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// SetRealCosts godoc
// @Summary      Record invoiced shipping and taxes
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id      path string true "Purchase ID" format(uuid)
// @Param        request body tradeapp.SetRealCostsRequest true "Real logistics in USD"
// @Success      200 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /purchases/{id}/real-costs [put]
func (h *PurchaseHandler) SetRealCosts(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.SetRealCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	purchase, err := h.purchaseService.SetRealCosts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Cancel godoc
// @Summary      Cancel a pending purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Receive godoc
// @Summary      Receive a purchase
// @Description  Distribute real logistics pro-rata, convert to GTQ at the current rate and create one cost layer per line
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Already received"
// @Failure      422 {object} ErrorResponse "Missing real costs or invalid rate"
// @Router       /purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.receivingService.ReceivePurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementPurchase)
		return
	}
	h.Success(c, purchase)
}

// Reverse godoc
// @Summary      Reverse a received purchase
// @Description  Remove the purchase's untouched cost layers and return it to pending
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id      path string true "Purchase ID" format(uuid)
// @Param        request body ReversePurchaseRequest false "Reason"
// @Success      200 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      422 {object} ErrorResponse "Layers already consumed"
// @Router       /purchases/{id}/reverse [post]
func (h *PurchaseHandler) Reverse(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ReversePurchaseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	purchase, err := h.receivingService.ReversePurchase(c.Request.Context(), id, req.Notes)
	if err != nil {
		h.HandleMovementError(c, err, telemetry.MovementPurchase)
		return
	}
	h.Success(c, purchase)
}
