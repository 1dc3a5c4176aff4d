package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/supplements/backend/internal/application/catalog"
	"github.com/supplements/backend/internal/application/costing"
	partnerapp "github.com/supplements/backend/internal/application/partner"
	reportapp "github.com/supplements/backend/internal/application/report"
	settingsapp "github.com/supplements/backend/internal/application/settings"
	tradeapp "github.com/supplements/backend/internal/application/trade"
	"github.com/supplements/backend/internal/infrastructure/cache"
	"github.com/supplements/backend/internal/infrastructure/config"
	"github.com/supplements/backend/internal/infrastructure/event"
	"github.com/supplements/backend/internal/infrastructure/logger"
	"github.com/supplements/backend/internal/infrastructure/persistence"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"github.com/supplements/backend/internal/interfaces/http/handler"
	"github.com/supplements/backend/internal/interfaces/http/middleware"
	"github.com/supplements/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "1.0.0"

//	@title			Supplements Costing API
//	@version		1.0
//	@description	FIFO inventory costing for an imported supplements store: purchases with landed costs, sales with cost of goods sold, and an append-only stock ledger.

//	@contact.name	API Support
//	@contact.url	https://github.com/supplements/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := baseLog
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// Telemetry providers; each is a no-op when disabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	log = telemetry.BridgeLogger(baseLog, loggerProvider, serviceName, level)

	profilerName := cfg.Profiling.ApplicationName
	if profilerName == "" {
		profilerName = serviceName
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:              cfg.Profiling.Enabled,
		ServerAddress:        cfg.Profiling.ServerAddress,
		ApplicationName:      profilerName,
		BasicAuthUser:        cfg.Profiling.BasicAuthUser,
		BasicAuthPassword:    cfg.Profiling.BasicAuthPassword,
		ProfileTypes:         cfg.Profiling.ProfileTypes,
		MutexProfileFraction: cfg.Profiling.MutexProfileFraction,
		BlockProfileRate:     cfg.Profiling.BlockProfileRate,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting supplements costing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	// Postgres schemas come from cmd/migrate; sqlite tables are created from the models
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(gormLog),
		persistence.WithSQLiteSchema(models.All()...),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbInstrumentation, err := telemetry.RegisterDBInstrumentation(db.DB, meterProvider, telemetry.DBConfig{
		Tracing:            cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		Metrics:            cfg.Telemetry.MetricsEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		DBSystem:           dbSystem(db.Driver()),
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Fatal("Failed to register database instrumentation", zap.Error(err))
	}
	dbInstrumentation.StartPoolStatsCollection(ctx, db.SQL())

	// Cache
	store, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing cache store", zap.Error(err))
		}
	}()

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	ledgerRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	costReportRepo := persistence.NewGormCostReportRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	priceHistoryRepo := persistence.NewGormPriceHistoryRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeScope(db.DB)

	// Settings
	settingsService := settingsapp.NewService(settingsRepo, log)
	settingsService.SetRateCache(cache.NewExchangeRateCache(store))
	if err := settingsService.Bootstrap(ctx, cfg.Costing.DefaultExchangeRate); err != nil {
		log.Fatal("Failed to seed exchange rate", zap.Error(err))
	}

	// Costing engine
	locker := costing.NewProductLocker()
	costingCfg := costing.Config{LockTimeout: cfg.Costing.LockTimeout}
	receivingService := costing.NewReceivingService(scope, locker, costingCfg, log)
	receivingService.SetEventPublisher(eventBus)
	saleCostingService := costing.NewSaleCostingService(scope, locker, costingCfg, log)
	saleCostingService.SetEventPublisher(eventBus)
	saleCostingService.SetCustomerDirectory(customerRepo)
	adjustmentService := costing.NewAdjustmentService(scope, locker, costingCfg, log)
	adjustmentService.SetEventPublisher(eventBus)

	// Catalog, trade and reports
	productService := catalogapp.NewProductService(productRepo, scope, locker, log)
	productService.SetSnapshotCache(cache.NewProductSnapshotCache(store, cfg.Costing.SnapshotCacheTTL, log))
	importService := catalogapp.NewProductImportService(productService, log)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, tradeScope, log)
	saleService := tradeapp.NewSaleService(saleRepo, tradeScope, log)
	saleService.SetEventPublisher(eventBus)
	saleService.SetCustomerDirectory(customerRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	priceHistoryService := catalogapp.NewPriceHistoryService(productRepo, priceHistoryRepo)
	reportService := reportapp.NewReportService(costReportRepo, ledgerRepo, log)

	// Business metrics
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:             meterProvider.Meter("supplements.costing"),
		Logger:            log,
		InventoryProvider: telemetry.NewGormInventoryMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	if meterProvider.IsEnabled() {
		businessMetrics.StartPeriodicCollection(ctx, cfg.Telemetry.MetricsInterval)
	}

	eventBus.Subscribe(catalogapp.NewSnapshotInvalidationHandler(productService))
	eventBus.Subscribe(telemetry.NewBusinessMetricsHandler(businessMetrics, log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// HTTP handlers
	purchaseHandler := handler.NewPurchaseHandler(purchaseService, receivingService)
	purchaseHandler.SetRejectionRecorder(businessMetrics)
	saleHandler := handler.NewSaleHandler(saleService, saleCostingService)
	saleHandler.SetRejectionRecorder(businessMetrics)
	stockHandler := handler.NewInventoryHandler(adjustmentService)
	stockHandler.SetRejectionRecorder(businessMetrics)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db.SQL())

	handlers := router.Handlers{
		Product:      handler.NewProductHandler(productService),
		PriceHistory: handler.NewPriceHistoryHandler(priceHistoryService),
		Import:       handler.NewProductImportHandler(importService),
		Purchase:     purchaseHandler,
		Sale:         saleHandler,
		Customer:     handler.NewCustomerHandler(customerService),
		Stock:        stockHandler,
		Settings:     handler.NewSettingsHandler(settingsService),
		Report:       handler.NewReportHandler(reportService),
		System:       systemHandler,
	}

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsConfig{RuntimeCollectors: true})
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		Tracing: middleware.TracingConfig{
			ServiceName: serviceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		CORS: middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		},
		Metrics:        httpMetrics,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Swagger:        cfg.HTTP.SwaggerEnabled,
	})
	if err != nil {
		log.Fatal("Failed to create HTTP engine", zap.Error(err))
	}
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, handlers, cfg.HTTP.MaxBodySize)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	businessMetrics.Stop()
	dbInstrumentation.Stop()

	// Flush telemetry before the logger provider goes away
	if err := profiler.Stop(); err != nil {
		baseLog.Error("Error stopping profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Error shutting down logger provider", zap.Error(err))
	}

	baseLog.Info("Server exited gracefully")
}

// dbSystem maps the configured driver to the semconv db.system value
func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
