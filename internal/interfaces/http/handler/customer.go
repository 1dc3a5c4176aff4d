package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/supplements/backend/internal/application/partner"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create godoc
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID godoc
// @Summary      Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search    query string false "Name, phone or email search"
// @Param        order_by  query string false "Sort field" Enums(name, created_at, updated_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]partnerapp.CustomerResponse]
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageParams(filter.Page, filter.PageSize)

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path string true "Customer ID" format(uuid)
// @Param        request body partnerapp.UpdateCustomerRequest true "Fields to change"
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete godoc
// @Summary      Delete a customer
// @Description  Linked sales are kept and lose their customer reference
// @Tags         customers
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
