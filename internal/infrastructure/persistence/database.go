package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/supplements/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the GORM handle every repository shares, plus its pool
type Database struct {
	DB     *gorm.DB
	sqlDB  *sql.DB
	driver string
}

type dbOptions struct {
	logger logger.Interface
	schema []any
}

// Option configures NewDatabase
type Option func(*dbOptions)

// WithLogger routes GORM statement logging through l
func WithLogger(l logger.Interface) Option {
	return func(o *dbOptions) { o.logger = l }
}

// WithSQLiteSchema creates tables for models when the driver is sqlite.
// PostgreSQL schemas are owned by the SQL migrations and are never auto-migrated.
func WithSQLiteSchema(models ...any) Option {
	return func(o *dbOptions) { o.schema = models }
}

// NewDatabase opens the configured database, sizes the pool and verifies the connection
func NewDatabase(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := dbOptions{logger: logger.Default.LogMode(logger.Silent)}
	for _, opt := range opts {
		opt(&o)
	}

	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                 o.logger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		PrepareStmt:            cfg.Driver != config.DriverSQLite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	d := &Database{DB: db, sqlDB: sqlDB, driver: cfg.Driver}
	if d.driver == "" {
		d.driver = config.DriverPostgres
	}

	if d.driver == config.DriverSQLite {
		// SQLite serializes writers; one connection also keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if d.driver == config.DriverSQLite && len(o.schema) > 0 {
		if err := db.AutoMigrate(o.schema...); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
		}
	}
	return d, nil
}

// dialector picks the GORM driver for the configured database
func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	case config.DriverPostgres, "":
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQL returns the pool behind the GORM handle
func (d *Database) SQL() *sql.DB {
	return d.sqlDB
}

// Driver returns postgres or sqlite
func (d *Database) Driver() string {
	return d.driver
}

// Ping checks the connection
func (d *Database) Ping(ctx context.Context) error {
	return d.sqlDB.PingContext(ctx)
}

// Stats returns pool statistics
func (d *Database) Stats() sql.DBStats {
	return d.sqlDB.Stats()
}

// Close closes the pool
func (d *Database) Close() error {
	return d.sqlDB.Close()
}
