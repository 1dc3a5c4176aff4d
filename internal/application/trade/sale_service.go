package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"go.uber.org/zap"
)

var zeroTime time.Time

// SaleService handles sale headers, listings and completion. Items are
// created and deleted by the costing package.
type SaleService struct {
	saleRepo       trade.SaleRepository
	scope          TransactionScope
	customers      CustomerDirectory
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo trade.SaleRepository, scope TransactionScope, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo:       saleRepo,
		scope:          scope,
		eventPublisher: shared.NopEventPublisher{},
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetCustomerDirectory enables customer lookups when sales are linked
func (s *SaleService) SetCustomerDirectory(customers CustomerDirectory) {
	s.customers = customers
}

// CreateEmpty opens a pending sale with no items
func (s *SaleService) CreateEmpty(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := NewSaleFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := LinkCustomer(ctx, s.customers, sale, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale with its items
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := trade.SaleFilter{
		Filter: pageFilter(filter.Page, filter.PageSize),
		Status: trade.SaleStatus(filter.Status),
	}
	if filter.StartDate != "" || filter.EndDate != "" {
		window, err := shared.NewDateRange(filter.StartDate, filter.EndDate)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Range = &window
	}
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			return nil, 0, shared.NewInvalidInputError("invalid customer_id %q", filter.CustomerID)
		}
		domainFilter.CustomerID = &id
	}

	sales, total, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses, total, nil
}

// Complete marks a sale completed. No costing is re-run. The sale row is
// locked so completion cannot race a cancel or an item edit.
func (s *SaleService) Complete(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := sale.Complete(); err != nil {
			return err
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	events := sale.GetDomainEvents()
	sale.ClearDomainEvents()
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish sale events", zap.Error(err))
	}

	s.logger.Info("sale completed",
		zap.String("sale_id", id.String()),
		zap.String("total_revenue", sale.TotalRevenue.String()),
		zap.String("profit", sale.Profit.String()),
	)

	response := ToSaleResponse(sale)
	return &response, nil
}

// NewSaleFromRequest builds the sale header described by req
func NewSaleFromRequest(req CreateSaleRequest) (*trade.Sale, error) {
	saleDate := zeroTime
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}
	sale, err := trade.NewSale(req.CustomerName, saleDate)
	if err != nil {
		return nil, err
	}
	sale.CustomerPhone = req.CustomerPhone
	sale.Notes = req.Notes
	return sale, nil
}

func pageFilter(page, pageSize int) shared.Filter {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	return f
}
