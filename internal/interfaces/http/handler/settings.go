package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	settingsapp "github.com/supplements/backend/internal/application/settings"
)

// SettingsHandler handles the exchange rate setting
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// ConvertQuery is a USD amount to convert
type ConvertQuery struct {
	AmountUSD string `form:"amount_usd" binding:"required" example:"12.34"`
}

// GetExchangeRate godoc
// @Summary      Get the USD to GTQ rate
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse[settingsapp.ExchangeRateResponse]
// @Router       /settings/exchange-rate [get]
func (h *SettingsHandler) GetExchangeRate(c *gin.Context) {
	rate, err := h.settingsService.GetExchangeRate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// UpdateExchangeRate godoc
// @Summary      Set the USD to GTQ rate
// @Description  Applies to receipts made after the change; received purchases keep their stored rate
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateExchangeRateRequest true "Rate"
// @Success      200 {object} APIResponse[settingsapp.ExchangeRateResponse]
// @Failure      422 {object} ErrorResponse "Non-positive rate"
// @Router       /settings/exchange-rate [put]
func (h *SettingsHandler) UpdateExchangeRate(c *gin.Context) {
	var req settingsapp.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rate, err := h.settingsService.UpdateExchangeRate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// Convert godoc
// @Summary      Convert a USD amount to GTQ
// @Description  Converts at the current rate, rounding half up to 2 decimals
// @Tags         settings
// @Produce      json
// @Param        amount_usd query string true "Amount in USD"
// @Success      200 {object} APIResponse[settingsapp.ConversionResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /settings/convert [get]
func (h *SettingsHandler) Convert(c *gin.Context) {
	var query ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	amount, err := decimal.NewFromString(query.AmountUSD)
	if err != nil {
		h.BadRequest(c, "amount_usd must be a decimal number")
		return
	}

	resp, err := h.settingsService.ConvertUSD(c.Request.Context(), amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
