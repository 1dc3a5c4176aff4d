package spreadsheet

import (
	"errors"
	"fmt"
	"strings"
)

// Import error codes
const (
	ErrCodeImportInvalidFile     = "ERR_IMPORT_INVALID_FILE"
	ErrCodeImportMissingHeader   = "ERR_IMPORT_MISSING_HEADER"
	ErrCodeImportValidation      = "ERR_IMPORT_VALIDATION"
	ErrCodeImportRequiredField   = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeImportInvalidType     = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeImportInvalidLength   = "ERR_IMPORT_INVALID_LENGTH"
	ErrCodeImportInvalidRange    = "ERR_IMPORT_INVALID_RANGE"
	ErrCodeImportDuplicateInFile = "ERR_IMPORT_DUPLICATE_IN_FILE"
	ErrCodeImportDuplicateInDB   = "ERR_IMPORT_DUPLICATE_IN_DB"
)

// Common import errors
var (
	// ErrInvalidFile is returned when the upload is not a readable .xlsx workbook
	ErrInvalidFile = errors.New("file is not a valid xlsx workbook")

	// ErrMissingHeader is returned when the sheet has no header row
	ErrMissingHeader = errors.New("sheet missing header row")

	// ErrNoDataRows is returned when the sheet has no data rows
	ErrNoDataRows = errors.New("sheet contains no data rows")

	// ErrTooManyRows is returned when the sheet exceeds the row limit
	ErrTooManyRows = errors.New("sheet exceeds maximum allowed rows")
)

// RowError represents an error in a specific row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{
		Row:     row,
		Column:  column,
		Code:    code,
		Message: message,
	}
}

// NewRowErrorWithValue creates a new RowError with the invalid value
func NewRowErrorWithValue(row int, column, code, message, value string) RowError {
	return RowError{
		Row:     row,
		Column:  column,
		Code:    code,
		Message: message,
		Value:   value,
	}
}

// ErrorCollection manages a collection of import errors
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a new ErrorCollection with a maximum error limit
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0),
		maxErrors: maxErrors,
	}
}

// Add adds an error to the collection
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequiredError adds a required field error
func (ec *ErrorCollection) AddRequiredError(row int, column string) {
	ec.Add(NewRowError(row, column, ErrCodeImportRequiredField, fmt.Sprintf("field '%s' is required", column)))
}

// AddTypeError adds a type validation error
func (ec *ErrorCollection) AddTypeError(row int, column, expectedType, value string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodeImportInvalidType,
		fmt.Sprintf("expected %s", expectedType), value))
}

// AddLengthError adds a length validation error
func (ec *ErrorCollection) AddLengthError(row int, column string, maxLen int) {
	ec.Add(NewRowError(row, column, ErrCodeImportInvalidLength, fmt.Sprintf("length must be at most %d", maxLen)))
}

// AddRangeError adds a range validation error
func (ec *ErrorCollection) AddRangeError(row int, column, message, value string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodeImportInvalidRange, message, value))
}

// Errors returns the collected errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Count returns the number of collected errors (up to maxErrors)
func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}

// TotalCount returns the total number of errors including those not collected
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated returns true if some errors were not collected due to the limit
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}

// String returns a string representation of all errors
func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.totalCount)
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, " (showing first %d)", ec.maxErrors)
	}
	sb.WriteString(":\n")

	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}

	return sb.String()
}
