package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/supplements/backend/internal/application/catalog"
	"github.com/supplements/backend/internal/application/costing"
	partnerapp "github.com/supplements/backend/internal/application/partner"
	reportapp "github.com/supplements/backend/internal/application/report"
	settingsapp "github.com/supplements/backend/internal/application/settings"
	tradeapp "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/infrastructure/persistence"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"github.com/supplements/backend/internal/interfaces/http/dto"
	"github.com/supplements/backend/internal/interfaces/http/middleware"
	"github.com/supplements/backend/tests/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type rejection struct {
	code string
	kind telemetry.MovementKind
}

type recordingRejections struct {
	mu   sync.Mutex
	seen []rejection
}

func (r *recordingRejections) RecordRejection(_ context.Context, code string, kind telemetry.MovementKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, rejection{code: code, kind: kind})
}

func (r *recordingRejections) all() []rejection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]rejection(nil), r.seen...)
}

// apiStack is the full HTTP stack over an in-memory database
type apiStack struct {
	router     *gin.Engine
	db         *gorm.DB
	rejections *recordingRejections
}

func newAPIStack(t *testing.T) *apiStack {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	log := zap.NewNop()
	scope := persistence.NewGormTransactionScope(db)
	locker := costing.NewProductLocker()
	cfg := costing.Config{}

	settingsService := settingsapp.NewService(persistence.NewGormSettingsRepository(db), log)
	require.NoError(t, settingsService.Bootstrap(context.Background(), decimal.RequireFromString("7.75")))

	productRepo := persistence.NewGormProductRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	productService := catalogapp.NewProductService(productRepo, scope, locker, log)
	historyService := catalogapp.NewPriceHistoryService(productRepo, persistence.NewGormPriceHistoryRepository(db))
	purchaseService := tradeapp.NewPurchaseService(persistence.NewGormPurchaseRepository(db), persistence.NewGormTradeScope(db), log)
	saleService := tradeapp.NewSaleService(persistence.NewGormSaleRepository(db), persistence.NewGormTradeScope(db), log)
	saleService.SetCustomerDirectory(customerRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	reportService := reportapp.NewReportService(
		persistence.NewGormCostReportRepository(db),
		persistence.NewGormInventoryTransactionRepository(db),
		log,
	)

	rejections := &recordingRejections{}
	products := NewProductHandler(productService)
	history := NewPriceHistoryHandler(historyService)
	customers := NewCustomerHandler(customerService)
	imports := NewProductImportHandler(catalogapp.NewProductImportService(productService, log))
	purchases := NewPurchaseHandler(purchaseService, costing.NewReceivingService(scope, locker, cfg, log))
	purchases.SetRejectionRecorder(rejections)
	saleCosting := costing.NewSaleCostingService(scope, locker, cfg, log)
	saleCosting.SetCustomerDirectory(customerRepo)
	sales := NewSaleHandler(saleService, saleCosting)
	sales.SetRejectionRecorder(rejections)
	inventory := NewInventoryHandler(costing.NewAdjustmentService(scope, locker, cfg, log))
	inventory.SetRejectionRecorder(rejections)
	settings := NewSettingsHandler(settingsService)
	reports := NewReportHandler(reportService)
	system := NewSystemHandler("supplements-costing", "test", sqlDB)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/health", system.Health)
	api := r.Group("/api/v1")
	api.POST("/products", products.Create)
	api.GET("/products", products.List)
	api.GET("/products/low-stock", products.LowStock)
	api.POST("/products/import", imports.Import)
	api.GET("/products/import/template", imports.Template)
	api.GET("/products/:id", products.GetByID)
	api.PUT("/products/:id", products.Update)
	api.GET("/products/:id/snapshot", products.Snapshot)
	api.GET("/products/:id/price-history", history.List)
	api.POST("/products/:id/adjustments", inventory.Adjust)
	api.POST("/purchases", purchases.Create)
	api.GET("/purchases", purchases.List)
	api.GET("/purchases/:id", purchases.GetByID)
	api.POST("/purchases/:id/items", purchases.AddItem)
	api.PUT("/purchases/:id/real-costs", purchases.SetRealCosts)
	api.POST("/purchases/:id/cancel", purchases.Cancel)
	api.POST("/purchases/:id/receive", purchases.Receive)
	api.POST("/purchases/:id/reverse", purchases.Reverse)
	api.POST("/sales", sales.Create)
	api.GET("/sales", sales.List)
	api.GET("/sales/:id", sales.GetByID)
	api.POST("/sales/:id/items", sales.AddItem)
	api.PUT("/sales/:id/items/:item_id", sales.UpdateItem)
	api.DELETE("/sales/:id/items/:item_id", sales.DeleteItem)
	api.POST("/sales/:id/complete", sales.Complete)
	api.POST("/sales/:id/cancel", sales.Cancel)
	api.POST("/customers", customers.Create)
	api.GET("/customers", customers.List)
	api.GET("/customers/:id", customers.GetByID)
	api.PUT("/customers/:id", customers.Update)
	api.DELETE("/customers/:id", customers.Delete)
	api.GET("/settings/exchange-rate", settings.GetExchangeRate)
	api.PUT("/settings/exchange-rate", settings.UpdateExchangeRate)
	api.GET("/settings/convert", settings.Convert)
	api.GET("/reports/cost", reports.CostReport)
	api.GET("/reports/cost/export", reports.ExportCostReport)
	api.GET("/reports/valuation", reports.Valuation)
	api.GET("/reports/ledger", reports.Ledger)

	return &apiStack{router: r, db: db, rejections: rejections}
}

// envelope mirrors dto.Response with the data left undecoded
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func (s *apiStack) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// call performs a request that must answer wantStatus and decodes data into out
func (s *apiStack) call(t *testing.T, method, path string, body any, wantStatus int, out any) envelope {
	t.Helper()
	w, env := s.do(t, method, path, body)
	require.Equal(t, wantStatus, w.Code, w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

// expectError performs a request that must fail with status and code
func (s *apiStack) expectError(t *testing.T, method, path string, body any, status int, code string) {
	t.Helper()
	w, env := s.do(t, method, path, body)
	require.Equal(t, status, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
	require.Equal(t, w.Header().Get(middleware.RequestIDKey), env.Error.RequestID)
}

func (s *apiStack) createProduct(t *testing.T, name string) catalogapp.ProductResponse {
	t.Helper()
	var p catalogapp.ProductResponse
	s.call(t, http.MethodPost, "/api/v1/products", map[string]any{
		"name":            name,
		"brand":           "Optimum",
		"product_type":    "protein",
		"min_stock_level": "3",
	}, http.StatusCreated, &p)
	return p
}

// receive creates a purchase of qty units at unitUSD with the given real
// logistics and receives it
func (s *apiStack) receive(t *testing.T, productID, qty, unitUSD, shipping, taxes string) tradeapp.PurchaseResponse {
	t.Helper()
	var purchase tradeapp.PurchaseResponse
	s.call(t, http.MethodPost, "/api/v1/purchases", map[string]any{
		"supplier_name": "Nutri Wholesale",
		"items": []map[string]any{
			{"product_id": productID, "quantity": qty, "unit_cost_usd": unitUSD},
		},
	}, http.StatusCreated, &purchase)
	s.call(t, http.MethodPut, "/api/v1/purchases/"+purchase.ID.String()+"/real-costs", map[string]any{
		"real_shipping_usd": shipping,
		"real_taxes_usd":    taxes,
	}, http.StatusOK, nil)
	s.call(t, http.MethodPost, "/api/v1/purchases/"+purchase.ID.String()+"/receive", nil, http.StatusOK, &purchase)
	return purchase
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func envelopeOf(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func jsonUnmarshal(data []byte, out any) error {
	return json.Unmarshal(data, out)
}
