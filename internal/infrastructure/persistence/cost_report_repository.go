package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/report"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormCostReportRepository implements CostReportRepository using GORM
type GormCostReportRepository struct {
	db *gorm.DB
}

// NewGormCostReportRepository creates a new GormCostReportRepository
func NewGormCostReportRepository(db *gorm.DB) *GormCostReportRepository {
	return &GormCostReportRepository{db: db}
}

// GetCostLines returns per-product sums over completed sales in the window
func (r *GormCostReportRepository) GetCostLines(ctx context.Context, window shared.DateRange) ([]report.CostReportLine, error) {
	type lineResult struct {
		ProductID    uuid.UUID
		ProductName  string
		QuantitySold decimal.Decimal
		TotalCost    decimal.Decimal
		TotalRevenue decimal.Decimal
	}

	var results []lineResult
	err := r.db.WithContext(ctx).Table("sale_items si").
		Select(`
			p.id as product_id,
			p.name as product_name,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.total_cost), 0) as total_cost,
			COALESCE(SUM(si.total_price), 0) as total_revenue
		`).
		Joins("JOIN sales s ON s.id = si.sale_id").
		Joins("JOIN products p ON p.id = si.product_id").
		Where("s.status = ?", string(trade.SaleStatusCompleted)).
		Where("s.sale_date >= ? AND s.sale_date < ?", window.From, window.EndExclusive()).
		Group("p.id, p.name").
		Order("p.name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	lines := make([]report.CostReportLine, len(results))
	for i, res := range results {
		lines[i] = report.CostReportLine{
			ProductID:    res.ProductID,
			ProductName:  res.ProductName,
			QuantitySold: res.QuantitySold,
			TotalCost:    res.TotalCost,
			TotalRevenue: res.TotalRevenue,
		}
	}
	return lines, nil
}

// GetValuation returns remaining quantity and value at cost per product
func (r *GormCostReportRepository) GetValuation(ctx context.Context) ([]report.ValuationLine, error) {
	type valuationResult struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    decimal.Decimal
		ValueGTQ    decimal.Decimal
	}

	var results []valuationResult
	err := r.db.WithContext(ctx).Table("cost_layers cl").
		Select(`
			p.id as product_id,
			p.name as product_name,
			COALESCE(SUM(cl.quantity_remaining), 0) as quantity,
			COALESCE(SUM(cl.quantity_remaining * cl.unit_cost_gtq), 0) as value_gtq
		`).
		Joins("JOIN products p ON p.id = cl.product_id").
		Where("cl.quantity_remaining > 0").
		Group("p.id, p.name").
		Order("p.name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	lines := make([]report.ValuationLine, len(results))
	for i, res := range results {
		lines[i] = report.ValuationLine{
			ProductID:   res.ProductID,
			ProductName: res.ProductName,
			Quantity:    res.Quantity,
			ValueGTQ:    res.ValueGTQ.Round(2),
		}
	}
	return lines, nil
}

// Ensure GormCostReportRepository implements CostReportRepository
var _ report.CostReportRepository = (*GormCostReportRepository)(nil)
