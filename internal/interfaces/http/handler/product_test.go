package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/supplements/backend/internal/application/catalog"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/interfaces/http/dto"
	"github.com/xuri/excelize/v2"
)

func TestProductHandler_CreateAndGet(t *testing.T) {
	s := newAPIStack(t)

	created := s.createProduct(t, "Gold Standard Whey")
	assert.Equal(t, "Gold Standard Whey", created.Name)
	assert.True(t, created.CurrentStock.IsZero())
	assert.True(t, created.AverageCostGTQ.IsZero())
	assert.True(t, created.IsLowStock)

	var fetched catalogapp.ProductResponse
	s.call(t, http.MethodGet, "/api/v1/products/"+created.ID.String(), nil, http.StatusOK, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.True(t, fetched.MinStockLevel.Equal(dec("3")))
}

func TestProductHandler_Errors(t *testing.T) {
	s := newAPIStack(t)
	s.createProduct(t, "Creatine")

	t.Run("duplicate name", func(t *testing.T) {
		s.expectError(t, http.MethodPost, "/api/v1/products", map[string]any{"name": "Creatine"},
			http.StatusConflict, dto.ErrCodeAlreadyExists)
	})
	t.Run("missing name", func(t *testing.T) {
		s.expectError(t, http.MethodPost, "/api/v1/products", map[string]any{"brand": "Acme"},
			http.StatusBadRequest, dto.ErrCodeValidation)
	})
	t.Run("malformed id", func(t *testing.T) {
		s.expectError(t, http.MethodGet, "/api/v1/products/not-a-uuid", nil,
			http.StatusBadRequest, dto.ErrCodeBadRequest)
	})
	t.Run("unknown id", func(t *testing.T) {
		s.expectError(t, http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil,
			http.StatusNotFound, dto.ErrCodeNotFound)
	})
	t.Run("bad ordering", func(t *testing.T) {
		s.expectError(t, http.MethodGet, "/api/v1/products?order_by=secret", nil,
			http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

func TestProductHandler_ListUpdateAndLowStock(t *testing.T) {
	s := newAPIStack(t)
	whey := s.createProduct(t, "Whey")
	s.createProduct(t, "Casein")
	s.receive(t, whey.ID.String(), "10", "10", "0", "0")

	var page []catalogapp.ProductResponse
	env := s.call(t, http.MethodGet, "/api/v1/products?order_by=name&order_dir=asc&page_size=1", nil, http.StatusOK, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Casein", page[0].Name)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(2), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var low []catalogapp.ProductResponse
	s.call(t, http.MethodGet, "/api/v1/products/low-stock", nil, http.StatusOK, &low)
	require.Len(t, low, 1)
	assert.Equal(t, "Casein", low[0].Name)

	var updated catalogapp.ProductResponse
	s.call(t, http.MethodPut, "/api/v1/products/"+whey.ID.String(), map[string]any{
		"min_stock_level":   "12",
		"current_price_gtq": "150",
	}, http.StatusOK, &updated)
	assert.True(t, updated.IsLowStock)
	assert.True(t, updated.CurrentStock.Equal(dec("10")))

	var snapshot inventory.ProductSnapshot
	s.call(t, http.MethodGet, "/api/v1/products/"+whey.ID.String()+"/snapshot", nil, http.StatusOK, &snapshot)
	assert.True(t, snapshot.CurrentStock.Equal(dec("10")))
	assert.True(t, snapshot.AverageCostGTQ.Equal(dec("77.5")))
	assert.True(t, snapshot.IsLowStock)
}

func TestProductImportHandler(t *testing.T) {
	s := newAPIStack(t)
	s.createProduct(t, "Whey")

	t.Run("template", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/import/template", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "product_import_template.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()
		header, err := f.GetRows(catalogapp.ProductImportSheet)
		require.NoError(t, err)
		require.NotEmpty(t, header)
		assert.Equal(t, catalogapp.ProductImportColumns, header[0])
	})

	t.Run("upload", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()
		rows := [][]any{
			{"name", "brand", "min_stock_level"},
			{"Whey", "Dymatize", "5"},
			{"BCAA", "Scivation", "2"},
			{"", "Nameless", "1"},
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
		}
		var workbook bytes.Buffer
		require.NoError(t, f.Write(&workbook))

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "products.xlsx")
		require.NoError(t, err)
		_, err = part.Write(workbook.Bytes())
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("conflict_mode", "skip"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result catalogapp.ProductImportResult
		env := envelopeOf(t, w)
		require.NoError(t, jsonUnmarshal(env.Data, &result))
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 1, result.ImportedRows)
		assert.Equal(t, 1, result.SkippedRows)
		assert.Equal(t, 1, result.ErrorRows)
	})

	t.Run("missing file", func(t *testing.T) {
		s.expectError(t, http.MethodPost, "/api/v1/products/import", nil, http.StatusBadRequest, dto.ErrCodeBadRequest)
	})
}
