package shared

// BaseAggregateRoot is embedded by products, purchases and sales. Version
// guards optimistic updates; events collect until the caller's transaction
// commits and drains them.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	persisted    int
	domainEvents []DomainEvent
}

// RestoreAggregateRoot rebuilds a stored aggregate at the version its row carries
func RestoreAggregateRoot(entity BaseEntity, version int) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity, Version: version, persisted: version}
}

// NewBaseAggregateRoot starts a new aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// GetVersion returns the version the aggregate was loaded at, or the next one after MarkModified
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// MarkModified records a state change: UpdatedAt moves and Version increments
func (a *BaseAggregateRoot) MarkModified() {
	a.Touch()
	a.Version++
}

// PersistedVersion is the version of the stored row this aggregate was read
// from or last written to. Zero means it has never been saved.
func (a *BaseAggregateRoot) PersistedVersion() int {
	return a.persisted
}

// MarkPersisted records a successful write of the current version
func (a *BaseAggregateRoot) MarkPersisted() {
	a.persisted = a.Version
}

// AddDomainEvent queues an event for publication after commit
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the queued events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the queued events once they have been handed to a publisher
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
