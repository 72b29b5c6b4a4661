package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is what application services need from an aggregate:
// its optimistic lock version and the events it raised
type AggregateRoot interface {
	GetID() uuid.UUID
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEntity holds identity and timestamps. Timestamps come from the
// caller's clock, never from the database.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// Touch stamps UpdatedAt
func (e *BaseEntity) Touch(now time.Time) {
	e.UpdatedAt = now
}

// BaseAggregateRoot adds the lock version and pending events
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	domainEvents []DomainEvent
}

// GetVersion returns the version the aggregate was loaded or created with,
// plus one per mutation since
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion is called once per mutating operation
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent queues an event for publication after commit
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// CenterAggregateRoot scopes an aggregate to the institute center (branch)
// that owns it. Every query and mutation is filtered by CenterID.
type CenterAggregateRoot struct {
	BaseAggregateRoot
	CenterID uuid.UUID
}

// NewCenterAggregateRoot starts a version 1 aggregate with a fresh ID
func NewCenterAggregateRoot(centerID uuid.UUID, now time.Time) CenterAggregateRoot {
	return CenterAggregateRoot{
		BaseAggregateRoot: BaseAggregateRoot{
			BaseEntity: BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Version:    1,
		},
		CenterID: centerID,
	}
}

// BelongsTo reports whether the aggregate is owned by the given center
func (c *CenterAggregateRoot) BelongsTo(centerID uuid.UUID) bool {
	return c.CenterID == centerID
}
