package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supplements/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves health and build information
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil.
func NewSystemHandler(name, version string, db Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		db:        db,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"supplements-costing"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Reports whether the API and its database are reachable
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			_ = c.Error(err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}))
}
