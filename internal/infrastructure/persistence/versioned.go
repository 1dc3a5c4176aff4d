package persistence

import (
	"github.com/supplements/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// saveVersioned inserts a header that has never been stored, or updates it
// only while its row still carries the version it was read at. A stale
// writer gets ErrConcurrencyConflict instead of overwriting newer state.
func saveVersioned(tx *gorm.DB, model any, loaded int, omit ...string) error {
	if loaded == 0 {
		return tx.Omit(omit...).Create(model).Error
	}
	result := tx.Model(model).
		Select("*").
		Omit(omit...).
		Where("version = ?", loaded).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
