package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/shared"
)

// BaseModel holds the identity and timestamps shared by every table
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m *BaseModel) setEntity(e shared.BaseEntity) {
	m.ID, m.CreatedAt, m.UpdatedAt = e.ID, e.CreatedAt, e.UpdatedAt
}

// AggregateModel adds the optimistic-lock version carried by products, purchases and sales
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// aggregate rebuilds the persisted root; pending events never survive a round trip
func (m *AggregateModel) aggregate() shared.BaseAggregateRoot {
	return shared.RestoreAggregateRoot(m.entity(), m.Version)
}

func (m *AggregateModel) setAggregate(a shared.BaseAggregateRoot) {
	m.setEntity(a.BaseEntity)
	m.Version = a.Version
}
