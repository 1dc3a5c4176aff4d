package persistence

import (
	"context"
	"errors"

	"github.com/supplements/backend/internal/domain/settings"
	"github.com/supplements/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the settings row, inserting the defaults when it does not exist yet
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.SystemSettings, error) {
	var model models.SystemSettingsModel
	err := r.db.WithContext(ctx).Where("id = ?", settings.SingletonID).First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := r.Seed(ctx, settings.NewSystemSettings()); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", settings.SingletonID).First(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Seed inserts s unless the settings row already exists
func (r *GormSettingsRepository) Seed(ctx context.Context, s *settings.SystemSettings) (bool, error) {
	s.ID = settings.SingletonID
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.SystemSettingsModelFromDomain(s))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Save writes the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.SystemSettings) error {
	s.ID = settings.SingletonID
	return r.db.WithContext(ctx).Save(models.SystemSettingsModelFromDomain(s)).Error
}

// Ensure GormSettingsRepository implements settings.Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
