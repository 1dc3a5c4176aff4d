package catalog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/spreadsheet"
	"github.com/xuri/excelize/v2"
)

func importWorkbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := values
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return buf
}

var importHeader = []any{"name", "brand", "min_stock_level", "current_price_gtq"}

func TestProductImportService_Import(t *testing.T) {
	repo := newFakeProductRepo()
	products := newTestProductService(repo)
	svc := NewProductImportService(products, nil)
	ctx := context.Background()

	_, err := products.Create(ctx, CreateProductRequest{Name: "Creatine", Brand: "Old"})
	require.NoError(t, err)

	book := func() *bytes.Buffer {
		return importWorkbook(t,
			importHeader,
			[]any{"Whey Protein", "Optimum", "3", "250"},
			[]any{"Creatine", "New", "", ""},
			[]any{"", "NoName", "", ""},
			[]any{"whey protein", "Dup", "", ""},
			[]any{"Omega 3", "", "-2", ""},
		)
	}

	t.Run("skip mode", func(t *testing.T) {
		result, err := svc.Import(ctx, book(), ConflictModeSkip)
		require.NoError(t, err)
		assert.Equal(t, 5, result.TotalRows)
		assert.Equal(t, 1, result.ImportedRows)
		assert.Equal(t, 1, result.SkippedRows)
		assert.Equal(t, 3, result.ErrorRows)
		require.Len(t, result.Errors, 3)
		assert.Equal(t, 4, result.Errors[0].Row)
		assert.Equal(t, spreadsheet.ErrCodeImportRequiredField, result.Errors[0].Code)
		assert.Equal(t, spreadsheet.ErrCodeImportDuplicateInFile, result.Errors[1].Code)
		assert.Equal(t, spreadsheet.ErrCodeImportInvalidRange, result.Errors[2].Code)

		whey, err := products.GetByName(ctx, "Whey Protein")
		require.NoError(t, err)
		assert.True(t, whey.MinStockLevel.Equal(decimal.NewFromInt(3)))
		assert.True(t, whey.CurrentPriceGTQ.Equal(decimal.NewFromInt(250)))
		assert.True(t, whey.CurrentStock.IsZero())
	})

	t.Run("update mode", func(t *testing.T) {
		result, err := svc.Import(ctx, book(), ConflictModeUpdate)
		require.NoError(t, err)
		assert.Equal(t, 0, result.ImportedRows)
		assert.Equal(t, 2, result.UpdatedRows)

		creatine, err := products.GetByName(ctx, "Creatine")
		require.NoError(t, err)
		assert.Equal(t, "New", creatine.Brand)
	})

	t.Run("fail mode", func(t *testing.T) {
		result, err := svc.Import(ctx, book(), ConflictModeFail)
		require.NoError(t, err)
		assert.Equal(t, 5, result.ErrorRows)
		assert.Equal(t, spreadsheet.ErrCodeImportDuplicateInDB, result.Errors[0].Code)
	})

	assert.Equal(t, 2, repo.count())
}

func TestProductImportService_RejectsBadInput(t *testing.T) {
	svc := NewProductImportService(newTestProductService(newFakeProductRepo()), nil)
	ctx := context.Background()

	_, err := svc.Import(ctx, strings.NewReader("plain text"), ConflictModeSkip)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = svc.Import(ctx, importWorkbook(t, []any{"brand"}, []any{"x"}), ConflictModeSkip)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = svc.Import(ctx, importWorkbook(t, importHeader), ConflictModeSkip)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = svc.Import(ctx, importWorkbook(t, importHeader, []any{"a"}), ConflictMode("merge"))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestProductImportService_Template(t *testing.T) {
	svc := NewProductImportService(newTestProductService(newFakeProductRepo()), nil)
	buf := &bytes.Buffer{}
	require.NoError(t, svc.WriteTemplate(buf))

	r, err := spreadsheet.NewSheetReader(buf, spreadsheet.WithSheet(ProductImportSheet))
	require.NoError(t, err)
	assert.Equal(t, ProductImportColumns, r.Headers())
}
