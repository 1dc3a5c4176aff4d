package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/supplements/backend/internal/application/catalog"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a new product
// @Description  Register a product. Stock starts at zero and only changes through receipts, sales and adjustments.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product creation request"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
// @Summary      List products
// @Description  List products with search, low-stock filter, ordering and pagination
// @Tags         products
// @Produce      json
// @Param        search    query string false "Name, brand or SKU search"
// @Param        low_stock query bool   false "Only products at or below their minimum"
// @Param        order_by  query string false "Sort field" Enums(name, current_stock, average_cost_gtq, created_at, updated_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageParams(filter.Page, filter.PageSize)

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a product
// @Description  Update catalog fields. Stock and cost figures are not editable here.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Fields to change"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// LowStock godoc
// @Summary      List low-stock products
// @Tags         products
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Router       /products/low-stock [get]
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Snapshot godoc
// @Summary      Get a product's stock snapshot
// @Description  Cached stock and average cost read model
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[inventory.ProductSnapshot]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/snapshot [get]
func (h *ProductHandler) Snapshot(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	snapshot, err := h.productService.Snapshot(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// PriceHistoryHandler serves a product's list price changes
type PriceHistoryHandler struct {
	BaseHandler
	historyService *catalogapp.PriceHistoryService
}

// NewPriceHistoryHandler creates a new PriceHistoryHandler
func NewPriceHistoryHandler(historyService *catalogapp.PriceHistoryService) *PriceHistoryHandler {
	return &PriceHistoryHandler{historyService: historyService}
}

// List godoc
// @Summary      List a product's price changes
// @Description  Old and new list price of every change, newest first
// @Tags         products
// @Produce      json
// @Param        id        path  string true  "Product ID" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]catalogapp.PriceChangeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/price-history [get]
func (h *PriceHistoryHandler) List(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter catalogapp.PriceHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageParams(filter.Page, filter.PageSize)

	changes, total, err := h.historyService.List(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, changes, total, filter.Page, filter.PageSize)
}

// ProductImportHandler serves the xlsx catalog import
type ProductImportHandler struct {
	BaseHandler
	importService *catalogapp.ProductImportService
}

// NewProductImportHandler creates a new ProductImportHandler
func NewProductImportHandler(importService *catalogapp.ProductImportService) *ProductImportHandler {
	return &ProductImportHandler{importService: importService}
}

// Import godoc
// @Summary      Import products from xlsx
// @Description  Create or update catalog entries from a workbook. Rows that fail validation are reported and skipped.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData file   true  "Workbook"
// @Param        conflict_mode formData string false "Existing-name handling" Enums(skip, update, fail)
// @Success      200 {object} APIResponse[catalogapp.ProductImportResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Router       /products/import [post]
func (h *ProductImportHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A workbook must be uploaded in the file field")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Cannot open uploaded file")
		return
	}
	defer file.Close()

	mode := catalogapp.ConflictMode(c.PostForm("conflict_mode"))
	result, err := h.importService.Import(c.Request.Context(), file, mode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Template godoc
// @Summary      Download the product import template
// @Tags         products
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /products/import/template [get]
func (h *ProductImportHandler) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.importService.WriteTemplate(&buf); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", contentDisposition("product_import_template.xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
