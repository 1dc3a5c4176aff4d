// Package handler implements the HTTP handlers of the costing API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"github.com/supplements/backend/internal/interfaces/http/dto"
	"github.com/supplements/backend/internal/interfaces/http/middleware"
)

// RejectionRecorder counts refused stock movements by error code
type RejectionRecorder interface {
	RecordRejection(ctx context.Context, code string, kind telemetry.MovementKind)
}

// BaseHandler provides common handler utilities
type BaseHandler struct {
	rejections RejectionRecorder
}

// SetRejectionRecorder wires the business metrics recorder
func (h *BaseHandler) SetRejectionRecorder(r RejectionRecorder) {
	h.rejections = r
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.Set(middleware.ErrorCodeKey, code)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindError answers a failed ShouldBind call
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	code := dto.ErrCodeInvalidJSON
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		code = dto.ErrCodeValidation
	}
	c.Set(middleware.ErrorCodeKey, code)
	middleware.HandleValidationError(c, err)
}

// HandleError converts domain errors to HTTP responses. Anything else is
// reported as an internal error and attached to the gin context for the
// access log.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// HandleMovementError is HandleError for operations that move stock. Domain
// refusals other than unknown references are counted as rejections.
func (h *BaseHandler) HandleMovementError(c *gin.Context, err error, kind telemetry.MovementKind) {
	var domainErr *shared.DomainError
	if h.rejections != nil && errors.As(err, &domainErr) && domainErr.Code != shared.CodeNotFound {
		h.rejections.RecordRejection(c.Request.Context(), domainErr.Code, kind)
	}
	h.HandleError(c, err)
}

// ParseUUIDParam reads a UUID path parameter, answering 400 when malformed
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// pageParams returns the effective page and page size of a list request
func pageParams(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

// contentDisposition builds an attachment header value
func contentDisposition(filename string) string {
	return "attachment; filename=" + strconv.Quote(filename)
}
