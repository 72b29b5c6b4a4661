package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/domain/shared"
)

// MockStudentRepository is a testify mock of academic.StudentRepository.
type MockStudentRepository struct{ mock.Mock }

func (m *MockStudentRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*academic.Student, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*academic.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter academic.StudentFilter) ([]academic.Student, int64, error) {
	args := m.Called(ctx, centerID, filter)
	return args.Get(0).([]academic.Student), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudentRepository) Save(ctx context.Context, student *academic.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	return m.Called(ctx, centerID, id).Error(0)
}

// MockCourseRepository is a testify mock of academic.CourseRepository.
type MockCourseRepository struct{ mock.Mock }

func (m *MockCourseRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*academic.Course, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*academic.Course), args.Error(1)
}

func (m *MockCourseRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter academic.CourseFilter) ([]academic.Course, int64, error) {
	args := m.Called(ctx, centerID, filter)
	return args.Get(0).([]academic.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepository) ExistsByCode(ctx context.Context, centerID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, centerID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) Save(ctx context.Context, course *academic.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	return m.Called(ctx, centerID, id).Error(0)
}

// MockFeeLedgerRepository is a testify mock of fee.FeeLedgerRepository.
type MockFeeLedgerRepository struct{ mock.Mock }

func (m *MockFeeLedgerRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*fee.FeeLedger, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.FeeLedger), args.Error(1)
}

func (m *MockFeeLedgerRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*fee.FeeLedger, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.FeeLedger), args.Error(1)
}

func (m *MockFeeLedgerRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter fee.FeeLedgerFilter) ([]fee.FeeLedger, int64, error) {
	args := m.Called(ctx, centerID, filter)
	return args.Get(0).([]fee.FeeLedger), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeeLedgerRepository) FindOverdueCandidates(ctx context.Context, centerID uuid.UUID, before time.Time) ([]fee.FeeLedger, error) {
	args := m.Called(ctx, centerID, before)
	return args.Get(0).([]fee.FeeLedger), args.Error(1)
}

func (m *MockFeeLedgerRepository) Save(ctx context.Context, ledger *fee.FeeLedger) error {
	return m.Called(ctx, ledger).Error(0)
}

func (m *MockFeeLedgerRepository) SaveWithLock(ctx context.Context, ledger *fee.FeeLedger) error {
	return m.Called(ctx, ledger).Error(0)
}

func (m *MockFeeLedgerRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	return m.Called(ctx, centerID, id).Error(0)
}

// MockPaymentAttemptRepository is a testify mock of fee.PaymentAttemptRepository.
type MockPaymentAttemptRepository struct{ mock.Mock }

func (m *MockPaymentAttemptRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*fee.PaymentAttempt, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.PaymentAttempt), args.Error(1)
}

func (m *MockPaymentAttemptRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*fee.PaymentAttempt, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.PaymentAttempt), args.Error(1)
}

func (m *MockPaymentAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*fee.PaymentAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.PaymentAttempt), args.Error(1)
}

func (m *MockPaymentAttemptRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter fee.PaymentFilter) ([]fee.PaymentAttempt, int64, error) {
	args := m.Called(ctx, centerID, filter)
	return args.Get(0).([]fee.PaymentAttempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentAttemptRepository) CountByFee(ctx context.Context, centerID, feeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, centerID, feeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentAttemptRepository) Save(ctx context.Context, payment *fee.PaymentAttempt) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentAttemptRepository) SaveWithLock(ctx context.Context, payment *fee.PaymentAttempt) error {
	return m.Called(ctx, payment).Error(0)
}

// MockExamRepository is a testify mock of exam.ExamRepository.
type MockExamRepository struct{ mock.Mock }

func (m *MockExamRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*exam.Exam, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.Exam), args.Error(1)
}

func (m *MockExamRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*exam.Exam, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.Exam), args.Error(1)
}

func (m *MockExamRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter exam.ExamFilter) ([]exam.Exam, int64, error) {
	args := m.Called(ctx, centerID, filter)
	return args.Get(0).([]exam.Exam), args.Get(1).(int64), args.Error(2)
}

func (m *MockExamRepository) Save(ctx context.Context, e *exam.Exam) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExamRepository) SaveWithLock(ctx context.Context, e *exam.Exam) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExamRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	return m.Called(ctx, centerID, id).Error(0)
}

// MockExamResultRepository is a testify mock of exam.ExamResultRepository.
type MockExamResultRepository struct{ mock.Mock }

func (m *MockExamResultRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*exam.ExamResult, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.ExamResult), args.Error(1)
}

func (m *MockExamResultRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*exam.ExamResult, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.ExamResult), args.Error(1)
}

func (m *MockExamResultRepository) FindByExamForUpdate(ctx context.Context, centerID, examID uuid.UUID) ([]*exam.ExamResult, error) {
	args := m.Called(ctx, centerID, examID)
	return args.Get(0).([]*exam.ExamResult), args.Error(1)
}

func (m *MockExamResultRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter exam.ResultFilter) ([]exam.ExamResult, int64, error) {
	args := m.Called(ctx, centerID, filter)
	return args.Get(0).([]exam.ExamResult), args.Get(1).(int64), args.Error(2)
}

func (m *MockExamResultRepository) CountByExam(ctx context.Context, centerID, examID uuid.UUID) (int64, error) {
	args := m.Called(ctx, centerID, examID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExamResultRepository) Create(ctx context.Context, r *exam.ExamResult) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockExamResultRepository) SaveWithLock(ctx context.Context, r *exam.ExamResult) error {
	return m.Called(ctx, r).Error(0)
}

// MockCertificateRepository is a testify mock of certification.CertificateRepository.
type MockCertificateRepository struct{ mock.Mock }

func (m *MockCertificateRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*certification.Certificate, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certification.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*certification.Certificate, error) {
	args := m.Called(ctx, centerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certification.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByVerificationCode(ctx context.Context, code string) (*certification.Certificate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certification.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByIDForVerification(ctx context.Context, id uuid.UUID) (*certification.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certification.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter certification.CertificateFilter) ([]certification.Certificate, int64, error) {
	args := m.Called(ctx, centerID, filter)
	return args.Get(0).([]certification.Certificate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCertificateRepository) Create(ctx context.Context, c *certification.Certificate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCertificateRepository) SaveWithLock(ctx context.Context, c *certification.Certificate) error {
	return m.Called(ctx, c).Error(0)
}

var (
	_ academic.StudentRepository              = (*MockStudentRepository)(nil)
	_ academic.CourseRepository               = (*MockCourseRepository)(nil)
	_ fee.FeeLedgerRepository                 = (*MockFeeLedgerRepository)(nil)
	_ fee.PaymentAttemptRepository            = (*MockPaymentAttemptRepository)(nil)
	_ exam.ExamRepository                     = (*MockExamRepository)(nil)
	_ exam.ExamResultRepository               = (*MockExamResultRepository)(nil)
	_ certification.CertificateRepository     = (*MockCertificateRepository)(nil)
	_ shared.EventPublisher                   = (*RecordingPublisher)(nil)
)
