package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrator applies the costing schema to PostgreSQL
type Migrator struct {
	m      *migrate.Migrate
	source fs.FS
	logger *zap.Logger
}

// Status describes where the database stands relative to the available migrations
type Status struct {
	Version uint
	Dirty   bool
	Pending []Migration
}

// New creates a Migrator reading migration files from source.
// Pass migrations.FS for the embedded schema or os.DirFS for a directory.
func New(db *sql.DB, source fs.FS, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	src, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{logger: logger.Named("migrate")}

	return &Migrator{m: m, source: source, logger: logger}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return mg.logVersion("Schema migrated")
}

// Rollback reverts the last n applied migrations
func (mg *Migrator) Rollback(n int) error {
	if n <= 0 {
		return fmt.Errorf("rollback count must be positive, got %d", n)
	}
	err := mg.m.Steps(-n)
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("rollback of %d migrations failed: %w", n, err)
	}
	return mg.logVersion("Rolled back")
}

// Reset reverts every migration, leaving an empty schema
func (mg *Migrator) Reset() error {
	mg.logger.Warn("Reverting all migrations, inventory data will be lost")
	err := mg.m.Down()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// GoTo migrates up or down to the given version
func (mg *Migrator) GoTo(version uint) error {
	err := mg.m.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}
	return mg.logVersion("Migrated to target version")
}

// Force records version as applied without running it, clearing the dirty flag
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Version returns the applied version; zero means nothing has been applied
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, nil
}

// Status reports the applied version together with the migrations not yet applied
func (mg *Migrator) Status() (*Status, error) {
	version, dirty, err := mg.Version()
	if err != nil {
		return nil, err
	}
	all, err := ListMigrations(mg.source)
	if err != nil {
		return nil, err
	}
	st := &Status{Version: version, Dirty: dirty}
	for _, m := range all {
		if m.Version > version {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Close releases the source and the database driver
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	return errors.Join(sourceErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	mg.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// migrateLogger routes golang-migrate progress lines into zap at debug level
type migrateLogger struct {
	logger *zap.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool {
	return l.logger.Core().Enabled(zap.DebugLevel)
}
