package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportapp "github.com/supplements/backend/internal/application/report"
)

// ReportHandler serves cost, valuation and ledger reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CostReport godoc
// @Summary      Cost of goods sold by product
// @Description  Quantity, cost, revenue and profit per product for completed sales in the window
// @Tags         reports
// @Produce      json
// @Param        start_date query string true "First sale date (YYYY-MM-DD)"
// @Param        end_date   query string true "Last sale date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[report.CostReport]
// @Failure      400 {object} ErrorResponse
// @Router       /reports/cost [get]
func (h *ReportHandler) CostReport(c *gin.Context) {
	var req reportapp.CostReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reportService.CostReport(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ExportCostReport godoc
// @Summary      Download the cost report as xlsx
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date query string true "First sale date (YYYY-MM-DD)"
// @Param        end_date   query string true "Last sale date (YYYY-MM-DD)"
// @Success      200 {file} binary
// @Failure      400 {object} ErrorResponse
// @Router       /reports/cost/export [get]
func (h *ReportHandler) ExportCostReport(c *gin.Context) {
	var req reportapp.CostReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	data, filename, err := h.reportService.ExportCostReport(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", contentDisposition(filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Valuation godoc
// @Summary      Inventory valuation
// @Description  Remaining quantity and value of every product's cost layers
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[report.Valuation]
// @Router       /reports/valuation [get]
func (h *ReportHandler) Valuation(c *gin.Context) {
	result, err := h.reportService.Valuation(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Ledger godoc
// @Summary      Inventory ledger
// @Description  Append-only stock movements with before and after quantities
// @Tags         reports
// @Produce      json
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        kind       query string false "Movement kind" Enums(purchase, sale, adjustment)
// @Param        start_date query string false "First date (YYYY-MM-DD)"
// @Param        end_date   query string false "Last date (YYYY-MM-DD)"
// @Param        order_by   query string false "Sort field" Enums(created_at, transaction_type, quantity_change)
// @Param        order_dir  query string false "Sort direction" Enums(asc, desc)
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]reportapp.LedgerEntryResponse]
// @Router       /reports/ledger [get]
func (h *ReportHandler) Ledger(c *gin.Context) {
	var filter reportapp.LedgerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageParams(filter.Page, filter.PageSize)

	entries, total, err := h.reportService.Ledger(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}
