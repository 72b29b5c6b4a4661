package fee

import (
	"context"

	"github.com/institute/backend/internal/domain/fee"
)

// TransactionScope runs a unit of work against the fee repositories inside
// one database transaction. Rows loaded with FindByIDForUpdate stay locked
// until fn returns.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the fee repositories bound to the
// current transaction
type TransactionalRepositories interface {
	LedgerRepo() fee.FeeLedgerRepository
	PaymentRepo() fee.PaymentAttemptRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used by tests.
type NoOpTransactionScope struct {
	ledgerRepo  fee.FeeLedgerRepository
	paymentRepo fee.PaymentAttemptRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(ledgerRepo fee.FeeLedgerRepository, paymentRepo fee.PaymentAttemptRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{ledgerRepo: ledgerRepo, paymentRepo: paymentRepo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// LedgerRepo returns the ledger repository
func (s *NoOpTransactionScope) LedgerRepo() fee.FeeLedgerRepository {
	return s.ledgerRepo
}

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() fee.PaymentAttemptRepository {
	return s.paymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
