package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/partner"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("customer", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists customers matching the filter and returns the total count
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter partner.CustomerFilter) ([]partner.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	if filter.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "name", "ASC"
	}
	var rows []models.CustomerModel
	if err := applyPaging(query, filter.Filter, customerSort, "name").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, total, nil
}

// CountSales counts the sales linked to each customer. Customers without
// sales are absent from the result.
func (r *GormCustomerRepository) CountSales(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []struct {
		CustomerID uuid.UUID
		Sales      int64
	}
	if err := r.db.WithContext(ctx).
		Table("sales").
		Select("customer_id, COUNT(*) AS sales").
		Where("customer_id IN ?", ids).
		Group("customer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CustomerID] = row.Sales
	}
	return counts, nil
}

// Save creates a customer or updates it if its version is unchanged
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if err := saveVersioned(r.db.WithContext(ctx), model, customer.PersistedVersion()); err != nil {
		return err
	}
	customer.MarkPersisted()
	return nil
}

// Delete removes a customer. Linked sales keep their typed-in name and
// lose the link.
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("sales").Where("customer_id = ?", id).Updates(map[string]any{
			"customer_id": nil,
			"version":     gorm.Expr("version + 1"),
		}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.CustomerModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("customer", id)
		}
		return nil
	})
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
