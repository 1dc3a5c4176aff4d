package shared

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes used across the costing engine
const (
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInvalidState         = "INVALID_STATE"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeMissingRealCosts     = "MISSING_REAL_COSTS"
	CodeAlreadyReceived      = "ALREADY_RECEIVED"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
	CodeAlreadyExists        = "ALREADY_EXISTS"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so that
// errors.Is(err, ErrNotFound) matches any NOT_FOUND error regardless of message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput         = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState         = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInvalidConfiguration = NewDomainError(CodeInvalidConfiguration, "Invalid configuration")
	ErrMissingRealCosts     = NewDomainError(CodeMissingRealCosts, "Real shipping and taxes are required")
	ErrAlreadyReceived      = NewDomainError(CodeAlreadyReceived, "Purchase already received")
	ErrInsufficientStock    = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrConcurrencyConflict  = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrAlreadyExists        = NewDomainError(CodeAlreadyExists, "Resource already exists")
)

// NewNotFoundError reports an unknown reference of the given kind
func NewNotFoundError(kind string, id fmt.Stringer) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %s not found", kind, id))
}

// NewInvalidInputError reports a rejected argument
func NewInvalidInputError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// NewInvalidStateError reports an operation that the current status forbids
func NewInvalidStateError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidState, fmt.Sprintf(format, args...))
}

// NewInvalidConfigurationError reports a bad configuration value such as a non-positive exchange rate
func NewInvalidConfigurationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidConfiguration, fmt.Sprintf(format, args...))
}

// NewInsufficientStockError reports an oversell attempt with the offending quantities
func NewInsufficientStockError(productID fmt.Stringer, requested, available decimal.Decimal) *DomainError {
	return NewDomainError(CodeInsufficientStock, fmt.Sprintf(
		"insufficient stock for product %s: requested %s, available %s",
		productID, requested.String(), available.String(),
	))
}

// ErrorCode returns the machine-readable code
func (e *DomainError) ErrorCode() string {
	return e.Code
}
