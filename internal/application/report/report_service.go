// Package report serves the read-only projections over sales, layers and the ledger
package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/report"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/spreadsheet"
	"go.uber.org/zap"
)

// ReportService provides application-level report operations
type ReportService struct {
	costRepo   report.CostReportRepository
	ledgerRepo inventory.InventoryTransactionRepository
	logger     *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	costRepo report.CostReportRepository,
	ledgerRepo inventory.InventoryTransactionRepository,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		costRepo:   costRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// CostReport sums cost, revenue and profit of completed sales per product
// for sale dates between start and end inclusive
func (s *ReportService) CostReport(ctx context.Context, req CostReportRequest) (*report.CostReport, error) {
	window, err := shared.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	lines, err := s.costRepo.GetCostLines(ctx, window)
	if err != nil {
		return nil, err
	}
	return report.NewCostReport(window, lines), nil
}

// Valuation values the remaining cost layers of every product
func (s *ReportService) Valuation(ctx context.Context) (*report.Valuation, error) {
	lines, err := s.costRepo.GetValuation(ctx)
	if err != nil {
		return nil, err
	}
	return report.NewValuation(lines), nil
}

// ExportCostReport renders the cost report and the current valuation as an xlsx workbook
func (s *ReportService) ExportCostReport(ctx context.Context, req CostReportRequest) ([]byte, string, error) {
	rep, err := s.CostReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	valuation, err := s.Valuation(ctx)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteCostReport(&buf, rep, valuation); err != nil {
		return nil, "", fmt.Errorf("failed to render cost report: %w", err)
	}
	filename := fmt.Sprintf("cost-report_%s_%s.xlsx", req.StartDate, req.EndDate)
	s.logger.Info("cost report exported",
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("lines", len(rep.Lines)),
	)
	return buf.Bytes(), filename, nil
}

// Ledger lists inventory transactions, newest first unless ordered otherwise
func (s *ReportService) Ledger(ctx context.Context, filter LedgerFilter) ([]LedgerEntryResponse, int64, error) {
	domainFilter := inventory.LedgerFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "desc"
	}

	if filter.ProductID != "" {
		id, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, 0, shared.NewInvalidInputError("invalid product_id %q", filter.ProductID)
		}
		domainFilter.ProductID = &id
	}
	if filter.Kind != "" {
		kind := inventory.TransactionKind(filter.Kind)
		if !kind.IsValid() {
			return nil, 0, shared.NewInvalidInputError("invalid kind %q", filter.Kind)
		}
		domainFilter.Kind = kind
	}
	if filter.StartDate != "" || filter.EndDate != "" {
		if filter.StartDate == "" || filter.EndDate == "" {
			return nil, 0, shared.NewInvalidInputError("start_date and end_date must be given together")
		}
		window, err := shared.NewDateRange(filter.StartDate, filter.EndDate)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Range = &window
	}

	entries, total, err := s.ledgerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out, total, nil
}
