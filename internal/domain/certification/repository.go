package certification

import (
	"context"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// CertificateFilter narrows certificate listings
type CertificateFilter struct {
	shared.Filter
	StudentID *uuid.UUID
	CourseID  *uuid.UUID
	Status    CertificateStatus
}

// CertificateRepository persists certificates.
// Find methods return shared.ErrNotFound when no row matches. Create
// returns shared.ErrAlreadyExists when a generated identifier collides.
type CertificateRepository interface {
	FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*Certificate, error)
	FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*Certificate, error)
	// FindByVerificationCode looks a certificate up across centers; the
	// code is the public handle printed on the document.
	FindByVerificationCode(ctx context.Context, code string) (*Certificate, error)
	// FindByIDForVerification locks a certificate by id regardless of center
	FindByIDForVerification(ctx context.Context, id uuid.UUID) (*Certificate, error)
	FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter CertificateFilter) ([]Certificate, int64, error)
	Create(ctx context.Context, certificate *Certificate) error
	SaveWithLock(ctx context.Context, certificate *Certificate) error
}
