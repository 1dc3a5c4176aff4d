package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/spreadsheet"
	"go.uber.org/zap"
)

// ProductImportSheet is the worksheet name of the import template
const ProductImportSheet = "Products"

// ProductImportColumns are the recognised import columns, in template order
var ProductImportColumns = []string{
	"name", "brand", "product_type", "sku", "unit", "description", "min_stock_level", "current_price_gtq",
}

// ConflictMode defines how to handle rows whose product name already exists
type ConflictMode string

const (
	// ConflictModeSkip skips rows that conflict with existing data
	ConflictModeSkip ConflictMode = "skip"
	// ConflictModeUpdate updates existing records with new data
	ConflictModeUpdate ConflictMode = "update"
	// ConflictModeFail reports conflicting rows as errors
	ConflictModeFail ConflictMode = "fail"
)

// IsValid checks if the conflict mode is valid
func (c ConflictMode) IsValid() bool {
	switch c {
	case ConflictModeSkip, ConflictModeUpdate, ConflictModeFail:
		return true
	}
	return false
}

// ProductImportResult represents the result of a product import operation
type ProductImportResult struct {
	TotalRows    int                    `json:"total_rows"`
	ImportedRows int                    `json:"imported_rows"`
	UpdatedRows  int                    `json:"updated_rows"`
	SkippedRows  int                    `json:"skipped_rows"`
	ErrorRows    int                    `json:"error_rows"`
	Errors       []spreadsheet.RowError `json:"errors,omitempty"`
	IsTruncated  bool                   `json:"is_truncated,omitempty"`
	TotalErrors  int                    `json:"total_errors,omitempty"`
}

// ProductImportService loads catalog entries from an xlsx workbook.
// Imports never touch stock; quantities only enter through receipts and adjustments.
type ProductImportService struct {
	products  *ProductService
	maxErrors int
	logger    *zap.Logger
}

// NewProductImportService creates a new ProductImportService
func NewProductImportService(products *ProductService, logger *zap.Logger) *ProductImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductImportService{products: products, maxErrors: 100, logger: logger}
}

// ValidationRules returns the per-column rules applied to every row
func (s *ProductImportService) ValidationRules() []spreadsheet.FieldRule {
	zero := decimal.Zero
	return []spreadsheet.FieldRule{
		spreadsheet.Field("name").Required().MaxLength(200).Unique().Build(),
		spreadsheet.Field("brand").MaxLength(100).Build(),
		spreadsheet.Field("product_type").MaxLength(50).Build(),
		spreadsheet.Field("sku").MaxLength(50).Build(),
		spreadsheet.Field("unit").MaxLength(20).Build(),
		spreadsheet.Field("description").MaxLength(2000).Build(),
		spreadsheet.Field("min_stock_level").Decimal().MinValue(zero).Build(),
		spreadsheet.Field("current_price_gtq").Decimal().MinValue(zero).Build(),
	}
}

// WriteTemplate writes an empty import workbook
func (s *ProductImportService) WriteTemplate(w io.Writer) error {
	return spreadsheet.WriteTemplate(w, ProductImportSheet, ProductImportColumns)
}

// Import validates every row of the workbook in src and creates or updates
// the products of the rows that pass. Rows are persisted one by one.
func (s *ProductImportService) Import(ctx context.Context, src io.Reader, mode ConflictMode) (*ProductImportResult, error) {
	if mode == "" {
		mode = ConflictModeSkip
	}
	if !mode.IsValid() {
		return nil, shared.NewInvalidInputError("invalid conflict mode %q", mode)
	}

	reader, err := spreadsheet.NewSheetReader(src)
	if err != nil {
		return nil, shared.NewInvalidInputError("cannot read workbook: %v", err)
	}
	if missing := reader.ValidateHeaders([]string{"name"}); len(missing) > 0 {
		return nil, shared.NewInvalidInputError("missing required columns: %s", strings.Join(missing, ", "))
	}
	rows, err := reader.Rows()
	if err != nil {
		return nil, shared.NewInvalidInputError("cannot read workbook: %v", err)
	}

	validator := spreadsheet.NewFieldValidator(s.ValidationRules(), s.maxErrors)
	errs := validator.Errors()
	result := &ProductImportResult{TotalRows: len(rows)}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !validator.ValidateRow(row) {
			result.ErrorRows++
			continue
		}
		if err := s.importRow(ctx, row, mode, result, errs); err != nil {
			return nil, err
		}
	}

	result.Errors = errs.Errors()
	result.IsTruncated = errs.IsTruncated()
	result.TotalErrors = errs.TotalCount()

	s.logger.Info("product import finished",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("updated", result.UpdatedRows),
		zap.Int("skipped", result.SkippedRows),
		zap.Int("errors", result.ErrorRows),
	)
	return result, nil
}

// importRow handles one validated row. Domain rejections are recorded as row
// errors; anything else aborts the import.
func (s *ProductImportService) importRow(
	ctx context.Context,
	row *spreadsheet.Row,
	mode ConflictMode,
	result *ProductImportResult,
	errs *spreadsheet.ErrorCollection,
) error {
	name := row.Get("name")
	minStock := optionalDecimal(row.Get("min_stock_level"))
	price := optionalDecimal(row.Get("current_price_gtq"))

	existing, err := s.products.GetByName(ctx, name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("failed to check existing product: %w", err)
	}

	if existing != nil {
		switch mode {
		case ConflictModeSkip:
			result.SkippedRows++
			return nil
		case ConflictModeFail:
			errs.Add(spreadsheet.NewRowErrorWithValue(row.LineNumber, "name", spreadsheet.ErrCodeImportDuplicateInDB,
				fmt.Sprintf("product '%s' already exists", name), name))
			result.ErrorRows++
			return nil
		}

		req := UpdateProductRequest{
			MinStockLevel:   minStock,
			CurrentPriceGTQ: price,
		}
		for column, target := range map[string]**string{
			"brand":        &req.Brand,
			"product_type": &req.ProductType,
			"sku":          &req.SKU,
			"unit":         &req.Unit,
			"description":  &req.Description,
		} {
			if v := row.Get(column); v != "" {
				*target = &v
			}
		}
		if _, err := s.products.Update(ctx, existing.ID, req); err != nil {
			return s.rowFailed(row, err, result, errs)
		}
		result.UpdatedRows++
		return nil
	}

	_, err = s.products.Create(ctx, CreateProductRequest{
		Name:            name,
		Brand:           row.Get("brand"),
		ProductType:     row.Get("product_type"),
		SKU:             row.Get("sku"),
		Unit:            row.Get("unit"),
		Description:     row.Get("description"),
		MinStockLevel:   minStock,
		CurrentPriceGTQ: price,
	})
	if err != nil {
		return s.rowFailed(row, err, result, errs)
	}
	result.ImportedRows++
	return nil
}

func (s *ProductImportService) rowFailed(row *spreadsheet.Row, err error, result *ProductImportResult, errs *spreadsheet.ErrorCollection) error {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return err
	}
	code := spreadsheet.ErrCodeImportValidation
	if domainErr.Code == shared.CodeAlreadyExists {
		code = spreadsheet.ErrCodeImportDuplicateInDB
	}
	errs.Add(spreadsheet.NewRowError(row.LineNumber, "", code, domainErr.Message))
	result.ErrorRows++
	return nil
}

func optionalDecimal(value string) *decimal.Decimal {
	if value == "" {
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &d
}
