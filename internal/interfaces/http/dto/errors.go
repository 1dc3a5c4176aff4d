package dto

import (
	"net/http"

	"github.com/supplements/backend/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when a lock could not be taken in time or a stale write was refused
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInsufficientStock is used when a sale or adjustment exceeds remaining layers
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeMissingRealCosts is used when a purchase is received without invoiced logistics
	ErrCodeMissingRealCosts = "ERR_MISSING_REAL_COSTS"
	// ErrCodeAlreadyReceived is used when a purchase is received twice
	ErrCodeAlreadyReceived = "ERR_ALREADY_RECEIVED"
	// ErrCodeInvalidConfiguration is used when a setting such as the exchange rate is unusable
	ErrCodeInvalidConfiguration = "ERR_INVALID_CONFIGURATION"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeAlreadyReceived:     http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:    http.StatusUnprocessableEntity,
	ErrCodeMissingRealCosts:     http.StatusUnprocessableEntity,
	ErrCodeInvalidConfiguration: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeNotFound:             ErrCodeNotFound,
	shared.CodeAlreadyExists:        ErrCodeAlreadyExists,
	shared.CodeInvalidInput:         ErrCodeInvalidInput,
	shared.CodeInvalidState:         ErrCodeInvalidState,
	shared.CodeInvalidConfiguration: ErrCodeInvalidConfiguration,
	shared.CodeMissingRealCosts:     ErrCodeMissingRealCosts,
	shared.CodeAlreadyReceived:      ErrCodeAlreadyReceived,
	shared.CodeInsufficientStock:    ErrCodeInsufficientStock,
	shared.CodeConcurrencyConflict:  ErrCodeConcurrencyConflict,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
