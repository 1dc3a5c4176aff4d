// Command importer loads catalog products from an xlsx workbook into the
// configured database. It shares configuration with the server, so a .env
// file next to the binary can supply the SUPP_ variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/subosito/gotenv"
	catalogapp "github.com/supplements/backend/internal/application/catalog"
	"github.com/supplements/backend/internal/application/costing"
	"github.com/supplements/backend/internal/infrastructure/cache"
	"github.com/supplements/backend/internal/infrastructure/config"
	"github.com/supplements/backend/internal/infrastructure/logger"
	"github.com/supplements/backend/internal/infrastructure/persistence"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

func main() {
	var (
		file     string
		envFile  string
		mode     string
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&file, "file", "", "Path to the xlsx workbook (required)")
	flag.StringVar(&envFile, "env", ".env", "Environment file loaded before configuration")
	flag.StringVar(&mode, "mode", string(catalogapp.ConflictModeSkip), "Conflict mode for existing names: skip, update or fail")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Import deadline")
	flag.Parse()

	if file == "" {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	// Existing environment variables win over the file
	if err := gotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatal("Failed to read env file", zap.String("path", envFile), zap.Error(err))
		}
		log.Debug("No env file found", zap.String("path", envFile))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel("warn"))),
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

	// Updated products must not be served from a stale shared snapshot
	store, err := cache.NewStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	products := catalogapp.NewProductService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormTransactionScope(db.DB),
		costing.NewProductLocker(),
		log,
	)
	products.SetSnapshotCache(cache.NewProductSnapshotCache(store, cfg.Costing.SnapshotCacheTTL, log))
	importer := catalogapp.NewProductImportService(products, log)

	src, err := os.Open(file)
	if err != nil {
		log.Fatal("Failed to open workbook", zap.String("file", file), zap.Error(err))
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := importer.Import(ctx, src, catalogapp.ConflictMode(mode))
	if err != nil {
		log.Fatal("Import failed", zap.String("file", file), zap.Error(err))
	}

	log.Info("Import finished",
		zap.String("file", file),
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("updated", result.UpdatedRows),
		zap.Int("skipped", result.SkippedRows),
		zap.Int("errors", result.ErrorRows),
	)
	for _, rowErr := range result.Errors {
		log.Warn("Row rejected",
			zap.Int("row", rowErr.Row),
			zap.String("column", rowErr.Column),
			zap.String("message", rowErr.Message),
		)
	}
	if result.IsTruncated {
		log.Warn("Error list truncated", zap.Int("total_errors", result.TotalErrors))
	}
	if result.ErrorRows > 0 {
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println(`Product catalog importer

Usage:
  importer -file products.xlsx [flags]

Flags:
  -file       Path to the xlsx workbook (sheet "Products")
  -env        Environment file loaded before configuration (default: .env)
  -mode       skip, update or fail for names that already exist (default: skip)
  -log-level  Log level (default: info)
  -timeout    Import deadline (default: 5m)

Environment Variables:
  SUPP_DATABASE_DRIVER     postgres or sqlite
  SUPP_DATABASE_HOST       Database host
  SUPP_DATABASE_PORT       Database port
  SUPP_DATABASE_USER       Database user
  SUPP_DATABASE_PASSWORD   Database password
  SUPP_DATABASE_DBNAME     Database name
  SUPP_DATABASE_PATH       SQLite file
  SUPP_REDIS_ENABLED       Invalidate snapshots in the shared Redis cache

Exit status is 2 when any row was rejected.`)
}
