package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/partner"
	"github.com/supplements/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService manages the customers sales can be linked to
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// FindByID returns the domain customer; it lets the service act as the
// directory sale creation resolves customer links through
func (s *CustomerService) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// Create creates a customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Email, req.Address, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.Name),
	)
	response := ToCustomerResponse(customer, 0)
	return &response, nil
}

// GetByID retrieves a customer with its sales count
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.customerRepo.CountSales(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer, counts[id])
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := partner.CustomerFilter{
		Filter: shared.DefaultFilter(),
		Search: filter.Search,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	customers, total, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uuid.UUID, len(customers))
	for i := range customers {
		ids[i] = customers[i].ID
	}
	counts, err := s.customerRepo.CountSales(ctx, ids...)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i], counts[customers[i].ID])
	}
	return responses, total, nil
}

// Update changes a customer's details. A concurrent edit makes the second
// writer fail with CONCURRENCY_CONFLICT.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = customer.Update(
		pick(req.Name, customer.Name),
		pick(req.Phone, customer.Phone),
		pick(req.Email, customer.Email),
		pick(req.Address, customer.Address),
		pick(req.Notes, customer.Notes),
	)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	counts, err := s.customerRepo.CountSales(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer, counts[id])
	return &response, nil
}

// Delete removes a customer. Its sales stay and lose the link.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func pick(v *string, current string) string {
	if v == nil {
		return current
	}
	return *v
}
