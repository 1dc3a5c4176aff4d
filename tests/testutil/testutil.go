// Package testutil provides shared test helpers for the costing backend:
// throwaway databases, decimal and date literals, and event recorders.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory database that lives for the duration of the test.
// A single connection keeps every statement on the same :memory: database.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err, "Failed to open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "Failed to migrate sqlite schema")
	return db
}

// MockDB wraps a GORM postgres connection backed by sqlmock
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a sqlmock-backed database. The connection is closed on test cleanup.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	return &MockDB{DB: gormDB, Mock: mock, SqlDB: mockDB}
}

// ExpectationsWereMet fails the test when queued expectations were not consumed
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet())
}

// Dec parses a decimal literal and panics on malformed input
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Day parses a YYYY-MM-DD date in UTC
func Day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

// ContextWithTimeout returns a context cancelled on test cleanup
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
