package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/tests/testutil"
	"gorm.io/gorm"
)

// newSQLiteDB opens a migrated in-memory database that lives for the duration of the test
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewSQLiteDB(t)
}

func dec(s string) decimal.Decimal {
	return testutil.Dec(s)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	return testutil.Day(t, s)
}

func saveProduct(t *testing.T, db *gorm.DB, name string) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(name, "Acme", "protein")
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func appendLayer(t *testing.T, db *gorm.DB, productID uuid.UUID, qty, cost string) *inventory.CostLayer {
	t.Helper()
	layer, err := inventory.NewCostLayer(productID, dec(cost), dec(qty), inventory.LayerOrigin{})
	require.NoError(t, err)
	require.NoError(t, NewGormCostLayerRepository(db).Append(context.Background(), layer))
	return layer
}
