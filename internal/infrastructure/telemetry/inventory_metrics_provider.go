package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryMetricsProvider implements InventoryMetricsProvider using GORM.
// It reads the products and cost_layers tables directly.
type GormInventoryMetricsProvider struct {
	db *gorm.DB
}

// NewGormInventoryMetricsProvider creates a new GormInventoryMetricsProvider.
func NewGormInventoryMetricsProvider(db *gorm.DB) *GormInventoryMetricsProvider {
	return &GormInventoryMetricsProvider{db: db}
}

// LowStockCount returns the number of products at or below their minimum level
func (p *GormInventoryMetricsProvider) LowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("current_stock <= min_stock_level").
		Count(&count).Error
	return count, err
}

// InventoryValue sums remaining quantity times unit cost over all layers
func (p *GormInventoryMetricsProvider) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Value decimal.Decimal
	}
	err := p.db.WithContext(ctx).
		Table("cost_layers").
		Select("COALESCE(SUM(quantity_remaining * unit_cost_gtq), 0) AS value").
		Where("quantity_remaining > 0").
		Scan(&result).Error
	return result.Value, err
}

var _ InventoryMetricsProvider = (*GormInventoryMetricsProvider)(nil)
