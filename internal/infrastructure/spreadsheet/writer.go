package spreadsheet

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the cost report workbook
const (
	CostReportSheet = "Cost Report"
	ValuationSheet  = "Valuation"
)

// built-in number formats
const (
	numFmtThousands2 = 4 // #,##0.00
)

var costReportHeader = []any{
	"Product", "Quantity Sold", "Avg Unit Cost (GTQ)", "Total Cost (GTQ)", "Total Revenue (GTQ)", "Profit (GTQ)",
}

var valuationHeader = []any{
	"Product", "Quantity", "Average Cost (GTQ)", "Value (GTQ)",
}

// WriteCostReport renders the cost report, and the valuation when given, as an xlsx workbook
func WriteCostReport(w io.Writer, rep *report.CostReport, valuation *report.Valuation) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, CostReportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands2})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	period := fmt.Sprintf("Period %s to %s", rep.StartDate.Format("2006-01-02"), rep.EndDate.Format("2006-01-02"))
	if err := f.SetCellValue(CostReportSheet, "A1", period); err != nil {
		return err
	}
	if err := f.SetSheetRow(CostReportSheet, "A2", &costReportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 3
	for _, line := range rep.Lines {
		values := []any{
			line.ProductName,
			num(line.QuantitySold),
			num(line.AvgUnitCost),
			num(line.TotalCost),
			num(line.TotalRevenue),
			num(line.Profit),
		}
		if err := setRow(f, CostReportSheet, row, values); err != nil {
			return err
		}
		row++
	}

	totals := []any{
		"Total",
		num(rep.Totals.QuantitySold),
		"",
		num(rep.Totals.TotalCost),
		num(rep.Totals.TotalRevenue),
		num(rep.Totals.Profit),
	}
	if err := setRow(f, CostReportSheet, row, totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(CostReportSheet, "A2", fmt.Sprintf("F%d", 2), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(CostReportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(CostReportSheet, "C3", fmt.Sprintf("F%d", row), money); err != nil {
		return err
	}
	_ = f.SetColWidth(CostReportSheet, "A", "A", 32)
	_ = f.SetColWidth(CostReportSheet, "B", "F", 18)

	if valuation != nil {
		if err := writeValuation(f, valuation, money, bold); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeValuation(f *excelize.File, v *report.Valuation, money, bold int) error {
	if _, err := f.NewSheet(ValuationSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.SetSheetRow(ValuationSheet, "A1", &valuationHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, line := range v.Lines {
		values := []any{line.ProductName, num(line.Quantity), num(line.AverageCostGTQ), num(line.ValueGTQ)}
		if err := setRow(f, ValuationSheet, row, values); err != nil {
			return err
		}
		row++
	}
	if err := setRow(f, ValuationSheet, row, []any{"Total", "", "", num(v.TotalValue)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(ValuationSheet, "A1", "D1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(ValuationSheet, "C2", fmt.Sprintf("D%d", row), money); err != nil {
		return err
	}
	_ = f.SetColWidth(ValuationSheet, "A", "A", 32)
	_ = f.SetColWidth(ValuationSheet, "B", "D", 18)
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// num converts an amount to a spreadsheet number
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// WriteTemplate writes an empty workbook whose first row holds headers
func WriteTemplate(w io.Writer, sheet string, headers []string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := setRow(f, sheet, 1, values); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
