package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/settings"
)

// SystemSettingsModel is the persistence model for the settings singleton.
type SystemSettingsModel struct {
	ID           int             `gorm:"primaryKey;autoIncrement:false"`
	USDToGTQRate decimal.Decimal `gorm:"column:usd_to_gtq_rate;type:decimal(18,4);not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SystemSettingsModel) TableName() string {
	return "system_settings"
}

// ToDomain converts the persistence model to domain settings.
func (m *SystemSettingsModel) ToDomain() *settings.SystemSettings {
	return &settings.SystemSettings{
		ID:           m.ID,
		USDToGTQRate: m.USDToGTQRate,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SystemSettingsModelFromDomain creates a new persistence model from domain settings.
func SystemSettingsModelFromDomain(s *settings.SystemSettings) *SystemSettingsModel {
	return &SystemSettingsModel{
		ID:           s.ID,
		USDToGTQRate: s.USDToGTQRate,
		UpdatedAt:    s.UpdatedAt,
	}
}
