package certification

import (
	"context"

	"github.com/institute/backend/internal/domain/certification"
)

// TransactionScope runs a unit of work against the certificate repository
// inside one database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the certificate repository bound to
// the current transaction
type TransactionalRepositories interface {
	CertificateRepo() certification.CertificateRepository
}

// NoOpTransactionScope runs fn directly against the repository. Used by tests.
type NoOpTransactionScope struct {
	repo certification.CertificateRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(repo certification.CertificateRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{repo: repo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CertificateRepo returns the repository
func (s *NoOpTransactionScope) CertificateRepo() certification.CertificateRepository {
	return s.repo
}
