package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// CostReportLine aggregates completed sales of one product in a window
type CostReportLine struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	AvgUnitCost  decimal.Decimal `json:"avg_unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// CostReportTotals sums every line of a cost report
type CostReportTotals struct {
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// CostReport is the read-only profit projection over completed sales
type CostReport struct {
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Lines     []CostReportLine `json:"lines"`
	Totals    CostReportTotals `json:"totals"`
}

// NewCostReport builds a report from raw per-product sums. Lines are expected
// to carry QuantitySold, TotalCost and TotalRevenue; the derived figures are filled here.
func NewCostReport(window shared.DateRange, lines []CostReportLine) *CostReport {
	r := &CostReport{
		StartDate: window.From,
		EndDate:   window.To,
		Lines:     lines,
		Totals: CostReportTotals{
			QuantitySold: decimal.Zero,
			TotalCost:    decimal.Zero,
			TotalRevenue: decimal.Zero,
			Profit:       decimal.Zero,
		},
	}
	if r.Lines == nil {
		r.Lines = make([]CostReportLine, 0)
	}
	for i := range r.Lines {
		line := &r.Lines[i]
		line.Profit = line.TotalRevenue.Sub(line.TotalCost)
		if line.QuantitySold.IsPositive() {
			line.AvgUnitCost = line.TotalCost.Div(line.QuantitySold).Round(4)
		} else {
			line.AvgUnitCost = decimal.Zero
		}
		r.Totals.QuantitySold = r.Totals.QuantitySold.Add(line.QuantitySold)
		r.Totals.TotalCost = r.Totals.TotalCost.Add(line.TotalCost)
		r.Totals.TotalRevenue = r.Totals.TotalRevenue.Add(line.TotalRevenue)
	}
	r.Totals.Profit = r.Totals.TotalRevenue.Sub(r.Totals.TotalCost)
	return r
}

// ValuationLine is the value of one product's remaining layers
type ValuationLine struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	ValueGTQ       decimal.Decimal `json:"value_gtq"`
	AverageCostGTQ decimal.Decimal `json:"average_cost_gtq"`
}

// Valuation is the inventory value at cost across all products
type Valuation struct {
	Lines      []ValuationLine `json:"lines"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// NewValuation sums lines into a Valuation
func NewValuation(lines []ValuationLine) *Valuation {
	v := &Valuation{Lines: lines, TotalValue: decimal.Zero}
	if v.Lines == nil {
		v.Lines = make([]ValuationLine, 0)
	}
	for i := range v.Lines {
		line := &v.Lines[i]
		if line.Quantity.IsPositive() {
			line.AverageCostGTQ = line.ValueGTQ.Div(line.Quantity).Round(4)
		}
		v.TotalValue = v.TotalValue.Add(line.ValueGTQ)
	}
	return v
}

// CostReportRepository defines the read-only queries behind the reports
type CostReportRepository interface {
	// GetCostLines sums quantity, cost and revenue of completed sales per product
	// over sale dates in window, ordered by product name
	GetCostLines(ctx context.Context, window shared.DateRange) ([]CostReportLine, error)

	// GetValuation sums remaining layer quantity and value per product
	GetValuation(ctx context.Context) ([]ValuationLine, error)
}
