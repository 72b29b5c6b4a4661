package persistence

import (
	"context"

	certapp "github.com/institute/backend/internal/application/certification"
	examapp "github.com/institute/backend/internal/application/exam"
	feeapp "github.com/institute/backend/internal/application/fee"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/domain/fee"
	"gorm.io/gorm"
)

// transactional runs fn inside a GORM transaction, rolling back on error.
func transactional(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// FeeTransactionScope binds the ledger and payment repositories to one transaction
type FeeTransactionScope struct {
	db *gorm.DB
}

// NewFeeTransactionScope creates a FeeTransactionScope
func NewFeeTransactionScope(db *gorm.DB) *FeeTransactionScope {
	return &FeeTransactionScope{db: db}
}

// Execute runs fn in a transaction; a returned error rolls it back
func (s *FeeTransactionScope) Execute(ctx context.Context, fn func(repos feeapp.TransactionalRepositories) error) error {
	return transactional(ctx, s.db, func(tx *gorm.DB) error {
		return fn(feeTxRepos{tx: tx})
	})
}

type feeTxRepos struct{ tx *gorm.DB }

func (r feeTxRepos) LedgerRepo() fee.FeeLedgerRepository { return NewGormFeeLedgerRepository(r.tx) }
func (r feeTxRepos) PaymentRepo() fee.PaymentAttemptRepository {
	return NewGormPaymentAttemptRepository(r.tx)
}

// ExamTransactionScope binds the exam and result repositories to one transaction
type ExamTransactionScope struct {
	db *gorm.DB
}

// NewExamTransactionScope creates an ExamTransactionScope
func NewExamTransactionScope(db *gorm.DB) *ExamTransactionScope {
	return &ExamTransactionScope{db: db}
}

// Execute runs fn in a transaction; a returned error rolls it back
func (s *ExamTransactionScope) Execute(ctx context.Context, fn func(repos examapp.TransactionalRepositories) error) error {
	return transactional(ctx, s.db, func(tx *gorm.DB) error {
		return fn(examTxRepos{tx: tx})
	})
}

type examTxRepos struct{ tx *gorm.DB }

func (r examTxRepos) ExamRepo() exam.ExamRepository { return NewGormExamRepository(r.tx) }
func (r examTxRepos) ResultRepo() exam.ExamResultRepository {
	return NewGormExamResultRepository(r.tx)
}

// CertificateTransactionScope binds the certificate repository to one transaction
type CertificateTransactionScope struct {
	db *gorm.DB
}

// NewCertificateTransactionScope creates a CertificateTransactionScope
func NewCertificateTransactionScope(db *gorm.DB) *CertificateTransactionScope {
	return &CertificateTransactionScope{db: db}
}

// Execute runs fn in a transaction; a returned error rolls it back
func (s *CertificateTransactionScope) Execute(ctx context.Context, fn func(repos certapp.TransactionalRepositories) error) error {
	return transactional(ctx, s.db, func(tx *gorm.DB) error {
		return fn(certTxRepos{tx: tx})
	})
}

type certTxRepos struct{ tx *gorm.DB }

func (r certTxRepos) CertificateRepo() certification.CertificateRepository {
	return NewGormCertificateRepository(r.tx)
}

var (
	_ feeapp.TransactionScope  = (*FeeTransactionScope)(nil)
	_ examapp.TransactionScope = (*ExamTransactionScope)(nil)
	_ certapp.TransactionScope = (*CertificateTransactionScope)(nil)
)
