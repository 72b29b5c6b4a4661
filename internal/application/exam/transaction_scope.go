package exam

import (
	"context"

	"github.com/institute/backend/internal/domain/exam"
)

// TransactionScope runs a unit of work against the exam repositories
// inside one database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the exam repositories bound to the
// current transaction
type TransactionalRepositories interface {
	ExamRepo() exam.ExamRepository
	ResultRepo() exam.ExamResultRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used by tests.
type NoOpTransactionScope struct {
	examRepo   exam.ExamRepository
	resultRepo exam.ExamResultRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(examRepo exam.ExamRepository, resultRepo exam.ExamResultRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{examRepo: examRepo, resultRepo: resultRepo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ExamRepo() exam.ExamRepository         { return s.examRepo }
func (s *NoOpTransactionScope) ResultRepo() exam.ExamResultRepository { return s.resultRepo }
