package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity holds the identity and audit timestamps of every persisted record.
// Ledger rows embed it directly; mutable records get it through BaseAggregateRoot.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh ID and stamps both timestamps with the same instant
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// Touch stamps UpdatedAt
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
