package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/application/costing"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SnapshotCache stores product read models. Get returns nil on a miss.
type SnapshotCache interface {
	Get(ctx context.Context, id uuid.UUID) (*inventory.ProductSnapshot, error)
	Set(ctx context.Context, snapshot inventory.ProductSnapshot) error
	Delete(ctx context.Context, ids ...uuid.UUID) error
}

// ProductService handles the product catalog. Writes to an existing product
// take the same per-product lock as the costing services so that catalog
// edits never overwrite concurrent stock changes.
type ProductService struct {
	productRepo inventory.ProductRepository
	scope       costing.TransactionScope
	locker      *costing.ProductLocker
	snapshots   SnapshotCache
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo inventory.ProductRepository,
	scope costing.TransactionScope,
	locker *costing.ProductLocker,
	logger *zap.Logger,
) *ProductService {
	if locker == nil {
		locker = costing.NewProductLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		scope:       scope,
		locker:      locker,
		logger:      logger,
	}
}

// SetSnapshotCache enables snapshot caching
func (s *ProductService) SetSnapshotCache(cache SnapshotCache) {
	s.snapshots = cache
}

// Create creates a new product with no stock
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := inventory.NewProduct(req.Name, req.Brand, req.ProductType)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateDetails(product.Name, req.Brand, req.ProductType, req.SKU, req.Unit, req.Description); err != nil {
		return nil, err
	}
	if err := applyLevels(product, req.MinStockLevel, req.CurrentPriceGTQ); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos costing.TransactionalRepositories) error {
		if err := ensureNameFree(ctx, repos.ProductRepo(), product.Name, uuid.Nil); err != nil {
			return err
		}
		return repos.ProductRepo().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByName retrieves a product by its unique name
func (s *ProductService) GetByName(ctx context.Context, name string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := inventory.ProductFilter{
		Filter:       shared.DefaultFilter(),
		Search:       filter.Search,
		LowStockOnly: filter.LowStockOnly,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	products, total, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// LowStock lists products whose stock is at or below their minimum level
func (s *ProductService) LowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update changes the catalog fields of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var product *inventory.Product
	err = s.scope.Execute(ctx, func(repos costing.TransactionalRepositories) error {
		p, err := repos.ProductRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		name := pick(req.Name, p.Name)
		if err := ensureNameFree(ctx, repos.ProductRepo(), name, p.ID); err != nil {
			return err
		}
		err = p.UpdateDetails(
			name,
			pick(req.Brand, p.Brand),
			pick(req.ProductType, p.ProductType),
			pick(req.SKU, p.SKU),
			pick(req.Unit, p.Unit),
			pick(req.Description, p.Description),
		)
		if err != nil {
			return err
		}
		if err := applyLevels(p, req.MinStockLevel, req.CurrentPriceGTQ); err != nil {
			return err
		}
		product = p
		return repos.ProductRepo().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateSnapshots(ctx, id)
	response := ToProductResponse(product)
	return &response, nil
}

// Snapshot returns the cached read model of a product, loading it on a miss.
// The result may lag a concurrent stock change.
func (s *ProductService) Snapshot(ctx context.Context, id uuid.UUID) (*inventory.ProductSnapshot, error) {
	if s.snapshots != nil {
		cached, err := s.snapshots.Get(ctx, id)
		if err != nil {
			s.logger.Warn("snapshot cache read failed", zap.String("product_id", id.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := product.Snapshot()

	if s.snapshots != nil {
		if err := s.snapshots.Set(ctx, snapshot); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.String("product_id", id.String()), zap.Error(err))
		}
	}
	return &snapshot, nil
}

// InvalidateSnapshots drops cached snapshots. Failures are logged only.
func (s *ProductService) InvalidateSnapshots(ctx context.Context, ids ...uuid.UUID) {
	if s.snapshots == nil || len(ids) == 0 {
		return
	}
	if err := s.snapshots.Delete(ctx, ids...); err != nil {
		s.logger.Warn("snapshot cache invalidation failed", zap.Int("count", len(ids)), zap.Error(err))
	}
}

// ensureNameFree fails with ALREADY_EXISTS when another product uses name
func ensureNameFree(ctx context.Context, repo inventory.ProductRepository, name string, self uuid.UUID) error {
	existing, err := repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == self {
		return nil
	}
	return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("product %q already exists", name))
}

func applyLevels(p *inventory.Product, minStock, price *decimal.Decimal) error {
	if minStock != nil {
		if err := p.SetMinStockLevel(*minStock); err != nil {
			return err
		}
	}
	if price != nil {
		if err := p.SetCurrentPrice(*price); err != nil {
			return err
		}
	}
	return nil
}

func pick(v *string, current string) string {
	if v == nil {
		return current
	}
	return *v
}
