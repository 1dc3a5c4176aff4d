package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/supplements/backend/internal/application/costing"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
)

// fakeProductRepo is a map-backed ProductRepository with unique names
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]inventory.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]inventory.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) FindByName(_ context.Context, name string) (*inventory.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Name == strings.TrimSpace(name) {
			found := p
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, filter inventory.ProductFilter) ([]inventory.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.Product
	for _, p := range r.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.LowStockOnly && !p.IsLowStock() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindLowStock(ctx context.Context) ([]inventory.Product, error) {
	products, _, err := r.FindAll(ctx, inventory.ProductFilter{LowStockOnly: true})
	return products, err
}

func (r *fakeProductRepo) Save(_ context.Context, product *inventory.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.products {
		if id != product.ID && p.Name == product.Name {
			return shared.NewDomainError(shared.CodeAlreadyExists, "duplicate name")
		}
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products)
}

func newTestProductService(repo *fakeProductRepo) *ProductService {
	scope := costing.NewNoOpTransactionScope(repo, nil, nil, nil, nil, nil)
	return NewProductService(repo, scope, costing.NewProductLocker(), nil)
}

// mapSnapshotCache is an in-memory SnapshotCache
type mapSnapshotCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]inventory.ProductSnapshot
	gets    int
}

func newMapSnapshotCache() *mapSnapshotCache {
	return &mapSnapshotCache{entries: make(map[uuid.UUID]inventory.ProductSnapshot)}
}

func (c *mapSnapshotCache) Get(_ context.Context, id uuid.UUID) (*inventory.ProductSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	s, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *mapSnapshotCache) Set(_ context.Context, snapshot inventory.ProductSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[snapshot.ID] = snapshot
	return nil
}

func (c *mapSnapshotCache) Delete(_ context.Context, ids ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.entries, id)
	}
	return nil
}

func (c *mapSnapshotCache) has(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

// MockSnapshotCache is a mock implementation of SnapshotCache
type MockSnapshotCache struct {
	mock.Mock
}

func (m *MockSnapshotCache) Get(ctx context.Context, id uuid.UUID) (*inventory.ProductSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ProductSnapshot), args.Error(1)
}

func (m *MockSnapshotCache) Set(ctx context.Context, snapshot inventory.ProductSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

var errCacheDown = errors.New("redis: connection refused")
