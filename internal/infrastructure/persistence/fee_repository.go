package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// lockedColumns are never rewritten by SaveWithLock
var lockedColumns = []string{"id", "center_id", "created_at"}

// GormFeeLedgerRepository implements fee.FeeLedgerRepository using GORM
type GormFeeLedgerRepository struct {
	db *gorm.DB
}

// NewGormFeeLedgerRepository creates a new GormFeeLedgerRepository
func NewGormFeeLedgerRepository(db *gorm.DB) *GormFeeLedgerRepository {
	return &GormFeeLedgerRepository{db: db}
}

func (r *GormFeeLedgerRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*fee.FeeLedger, error) {
	return r.findOne(r.db.WithContext(ctx), centerID, id)
}

// FindByIDForUpdate loads the ledger with SELECT ... FOR UPDATE
func (r *GormFeeLedgerRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*fee.FeeLedger, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)), centerID, id)
}

func (r *GormFeeLedgerRepository) findOne(query *gorm.DB, centerID, id uuid.UUID) (*fee.FeeLedger, error) {
	var m models.FeeLedgerModel
	if err := query.Where("center_id = ? AND id = ?", centerID, id).First(&m).Error; err != nil {
		return nil, translateError(err, "Fee")
	}
	return m.ToDomain(), nil
}

func (r *GormFeeLedgerRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter fee.FeeLedgerFilter) ([]fee.FeeLedger, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeeLedgerModel{}).Where("center_id = ?", centerID)
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var rows []models.FeeLedgerModel
	total, err := countAndFind(query, filter.Filter, FeeLedgerSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	ledgers := make([]fee.FeeLedger, len(rows))
	for i := range rows {
		ledgers[i] = *rows[i].ToDomain()
	}
	return ledgers, total, nil
}

func (r *GormFeeLedgerRepository) FindOverdueCandidates(ctx context.Context, centerID uuid.UUID, before time.Time) ([]fee.FeeLedger, error) {
	var rows []models.FeeLedgerModel
	if err := r.db.WithContext(ctx).
		Where("center_id = ? AND status IN ? AND due_date < ?",
			centerID, []fee.FeeStatus{fee.FeeStatusPending, fee.FeeStatusPartial}, before).
		Order("due_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	ledgers := make([]fee.FeeLedger, len(rows))
	for i := range rows {
		ledgers[i] = *rows[i].ToDomain()
	}
	return ledgers, nil
}

// ListCenterIDs returns the centers holding at least one open ledger
func (r *GormFeeLedgerRepository) ListCenterIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.FeeLedgerModel{}).
		Where("status IN ?", []fee.FeeStatus{fee.FeeStatusPending, fee.FeeStatusPartial}).
		Distinct().
		Pluck("center_id", &ids).Error
	return ids, err
}

// Save inserts or fully updates a ledger without a version check
func (r *GormFeeLedgerRepository) Save(ctx context.Context, ledger *fee.FeeLedger) error {
	return translateError(r.db.WithContext(ctx).Save(models.FeeLedgerModelFromDomain(ledger)).Error, "Fee")
}

// SaveWithLock updates the ledger only if the stored version is ledger.Version-1
func (r *GormFeeLedgerRepository) SaveWithLock(ctx context.Context, ledger *fee.FeeLedger) error {
	m := models.FeeLedgerModelFromDomain(ledger)
	result := r.db.WithContext(ctx).
		Model(m).
		Where("center_id = ? AND version = ?", ledger.CenterID, ledger.Version-1).
		Select("*").Omit(lockedColumns...).
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return concurrencyConflict("Fee")
	}
	return nil
}

func (r *GormFeeLedgerRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FeeLedgerModel{}, "center_id = ? AND id = ?", centerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Fee", id)
	}
	return nil
}

// GormPaymentAttemptRepository implements fee.PaymentAttemptRepository using GORM
type GormPaymentAttemptRepository struct {
	db *gorm.DB
}

// NewGormPaymentAttemptRepository creates a new GormPaymentAttemptRepository
func NewGormPaymentAttemptRepository(db *gorm.DB) *GormPaymentAttemptRepository {
	return &GormPaymentAttemptRepository{db: db}
}

func (r *GormPaymentAttemptRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*fee.PaymentAttempt, error) {
	return r.findOne(r.db.WithContext(ctx).Where("center_id = ? AND id = ?", centerID, id))
}

func (r *GormPaymentAttemptRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*fee.PaymentAttempt, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)).Where("center_id = ? AND id = ?", centerID, id))
}

func (r *GormPaymentAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*fee.PaymentAttempt, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *GormPaymentAttemptRepository) findOne(query *gorm.DB) (*fee.PaymentAttempt, error) {
	var m models.PaymentAttemptModel
	if err := query.First(&m).Error; err != nil {
		return nil, translateError(err, "Payment")
	}
	return m.ToDomain(), nil
}

func (r *GormPaymentAttemptRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter fee.PaymentFilter) ([]fee.PaymentAttempt, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentAttemptModel{}).Where("payment_attempts.center_id = ?", centerID)
	if filter.FeeID != nil {
		query = query.Where("payment_attempts.fee_id = ?", *filter.FeeID)
	}
	if filter.StudentID != nil {
		// Payments reference students through their ledger
		query = query.Joins("JOIN fee_ledgers ON fee_ledgers.id = payment_attempts.fee_id").
			Where("fee_ledgers.student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("payment_attempts.status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("payment_attempts.method = ?", filter.Method)
	}

	f := filter.Filter
	if PaymentSortFields[f.OrderBy] {
		f.OrderBy = "payment_attempts." + f.OrderBy
	} else {
		f.OrderBy = "payment_attempts.created_at"
	}
	var rows []models.PaymentAttemptModel
	total, err := countAndFind(query, f, qualifiedPaymentSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	payments := make([]fee.PaymentAttempt, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, total, nil
}

var qualifiedPaymentSortFields = func() map[string]bool {
	m := make(map[string]bool, len(PaymentSortFields))
	for k := range PaymentSortFields {
		m["payment_attempts."+k] = true
	}
	return m
}()

func (r *GormPaymentAttemptRepository) CountByFee(ctx context.Context, centerID, feeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentAttemptModel{}).
		Where("center_id = ? AND fee_id = ?", centerID, feeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts or fully updates a payment attempt
func (r *GormPaymentAttemptRepository) Save(ctx context.Context, payment *fee.PaymentAttempt) error {
	return translateError(r.db.WithContext(ctx).Save(models.PaymentAttemptModelFromDomain(payment)).Error, "Payment")
}

// SaveWithLock updates the attempt only if the stored version is payment.Version-1
func (r *GormPaymentAttemptRepository) SaveWithLock(ctx context.Context, payment *fee.PaymentAttempt) error {
	m := models.PaymentAttemptModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(m).
		Where("center_id = ? AND version = ?", payment.CenterID, payment.Version-1).
		Select("*").Omit(lockedColumns...).
		Updates(m)
	if result.Error != nil {
		return translateError(result.Error, "Payment")
	}
	if result.RowsAffected == 0 {
		return concurrencyConflict("Payment")
	}
	return nil
}

var (
	_ fee.FeeLedgerRepository      = (*GormFeeLedgerRepository)(nil)
	_ fee.PaymentAttemptRepository = (*GormPaymentAttemptRepository)(nil)
)
