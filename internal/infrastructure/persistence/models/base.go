package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// CenterAggregateModel carries the columns shared by every center-scoped
// aggregate: identity, timestamps, optimistic lock version and owner center.
type CenterAggregateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CenterID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"` // stamped by the domain clock
}

// FromDomainCenterAggregateRoot copies the root fields of an aggregate
func (m *CenterAggregateModel) FromDomainCenterAggregateRoot(a shared.CenterAggregateRoot) {
	m.ID = a.ID
	m.CenterID = a.CenterID
	m.Version = a.Version
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}

// ToDomainCenterAggregateRoot rebuilds the aggregate root fields. Pending
// domain events are never persisted, so the result starts with none.
func (m *CenterAggregateModel) ToDomainCenterAggregateRoot() shared.CenterAggregateRoot {
	return shared.CenterAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CenterID: m.CenterID,
	}
}

// All returns every model, in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&CourseModel{},
		&StudentModel{},
		&FeeLedgerModel{},
		&PaymentAttemptModel{},
		&ExamModel{},
		&ExamResultModel{},
		&CertificateModel{},
	}
}
