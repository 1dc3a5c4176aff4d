package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUpdate finds a product and locks its row until the transaction ends
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	return r.findOne(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

// FindByName finds a product by its unique name
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*inventory.Product, error) {
	return r.findOne(r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)))
}

// FindAll finds products matching the filter and returns the total count
func (r *GormProductRepository) FindAll(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if filter.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(sku) LIKE ?", like, like, like)
	}
	if filter.LowStockOnly {
		query = query.Where("current_stock <= min_stock_level")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "name", "ASC"
	}
	var rows []models.ProductModel
	if err := applyPaging(query, filter.Filter, productSort, "name").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return productsToDomain(rows), total, nil
}

// FindLowStock returns products whose stock is at or below their minimum level
func (r *GormProductRepository) FindLowStock(ctx context.Context) ([]inventory.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("current_stock <= min_stock_level").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// Save creates or updates a product. Queued price changes are appended to
// price_history in the same transaction.
func (r *GormProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	model := models.ProductModelFromDomain(product)
	changes := product.PendingPriceChanges()
	var err error
	if len(changes) == 0 {
		err = r.db.WithContext(ctx).Save(model).Error
	} else {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
			rows := models.PriceHistoryModelsFromDomain(changes)
			return tx.Create(&rows).Error
		})
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("product %q already exists", product.Name))
		}
		return err
	}
	product.ClearPriceChanges()
	product.MarkPersisted()
	return nil
}

func (r *GormProductRepository) findOne(query *gorm.DB) (*inventory.Product, error) {
	var model models.ProductModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func productsToDomain(rows []models.ProductModel) []inventory.Product {
	products := make([]inventory.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements ProductRepository
var _ inventory.ProductRepository = (*GormProductRepository)(nil)
