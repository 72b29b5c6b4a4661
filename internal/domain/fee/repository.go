package fee

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// FeeLedgerFilter narrows ledger listings
type FeeLedgerFilter struct {
	shared.Filter
	StudentID *uuid.UUID
	CourseID  *uuid.UUID
	Status    FeeStatus
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	shared.Filter
	FeeID     *uuid.UUID
	StudentID *uuid.UUID
	Status    PaymentStatus
	Method    PaymentMethod
}

// FeeLedgerRepository persists fee ledgers.
// Find methods return shared.ErrNotFound when no row matches.
type FeeLedgerRepository interface {
	FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*FeeLedger, error)
	// FindByIDForUpdate loads the ledger holding a row lock until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*FeeLedger, error)
	FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter FeeLedgerFilter) ([]FeeLedger, int64, error)
	// FindOverdueCandidates returns PENDING or PARTIAL ledgers due before the given date
	FindOverdueCandidates(ctx context.Context, centerID uuid.UUID, before time.Time) ([]FeeLedger, error)
	Save(ctx context.Context, ledger *FeeLedger) error
	// SaveWithLock saves only if the stored version is ledger.Version-1
	SaveWithLock(ctx context.Context, ledger *FeeLedger) error
	Delete(ctx context.Context, centerID, id uuid.UUID) error
}

// PaymentAttemptRepository persists payment attempts.
// Find methods return shared.ErrNotFound when no row matches.
type PaymentAttemptRepository interface {
	FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*PaymentAttempt, error)
	FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*PaymentAttempt, error)
	// FindByID loads an attempt regardless of center; used by gateway callbacks
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentAttempt, error)
	FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter PaymentFilter) ([]PaymentAttempt, int64, error)
	CountByFee(ctx context.Context, centerID, feeID uuid.UUID) (int64, error)
	Save(ctx context.Context, payment *PaymentAttempt) error
	SaveWithLock(ctx context.Context, payment *PaymentAttempt) error
}
