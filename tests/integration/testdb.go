// Package integration runs the costing engine against a real PostgreSQL database.
// Each test gets its own container with the embedded schema applied.
package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/supplements/backend/internal/infrastructure/migration"
	"github.com/supplements/backend/migrations"
)

const postgresImage = "postgres:16-alpine"

// TestDB is a migrated PostgreSQL database owned by one test
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
	t     *testing.T
}

// NewTestDB starts a container, applies the schema and registers teardown
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("supplements_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	level := gormlogger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	require.NoError(t, err, "connect")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Concurrent sale tests need more than one connection
	sqlDB.SetMaxOpenConns(10)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel)))
	require.NoError(t, err)
	require.NoError(t, m.Up(), "apply schema")
	_ = m.Close()

	return &TestDB{DB: db, SqlDB: sqlDB, DSN: dsn, t: t}
}

// CreateTestProduct inserts a product row with no stock and returns its ID
func (tdb *TestDB) CreateTestProduct(name string) uuid.UUID {
	tdb.t.Helper()

	id := uuid.New()
	err := tdb.DB.Exec(`
		INSERT INTO products (id, name, brand, product_type, unit, version)
		VALUES (?, ?, 'Test', 'test', 'unit', 1)
	`, id.String(), name).Error
	require.NoError(tdb.t, err, "create test product")
	return id
}
