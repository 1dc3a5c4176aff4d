package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/supplements/backend/internal/domain/trade"
)

// MockPurchaseRepository is a mock implementation of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter trade.PurchaseFilter) ([]trade.Purchase, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]trade.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]trade.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveItem(ctx context.Context, item *trade.SaleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleIDByItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// directScope runs fn against the mocks without a transaction
type directScope struct {
	purchases trade.PurchaseRepository
	sales     trade.SaleRepository
}

func (s *directScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *directScope) PurchaseRepo() trade.PurchaseRepository { return s.purchases }
func (s *directScope) SaleRepo() trade.SaleRepository         { return s.sales }

func newPurchaseService(repo *MockPurchaseRepository) *PurchaseService {
	return NewPurchaseService(repo, &directScope{purchases: repo}, nil)
}

func newSaleService(repo *MockSaleRepository) *SaleService {
	return NewSaleService(repo, &directScope{sales: repo}, nil)
}
