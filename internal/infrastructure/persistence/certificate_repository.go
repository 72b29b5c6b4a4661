package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCertificateRepository implements certification.CertificateRepository using GORM
type GormCertificateRepository struct {
	db *gorm.DB
}

// NewGormCertificateRepository creates a new GormCertificateRepository
func NewGormCertificateRepository(db *gorm.DB) *GormCertificateRepository {
	return &GormCertificateRepository{db: db}
}

func (r *GormCertificateRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*certification.Certificate, error) {
	return r.findOne(r.db.WithContext(ctx).Where("center_id = ? AND id = ?", centerID, id))
}

func (r *GormCertificateRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*certification.Certificate, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)).Where("center_id = ? AND id = ?", centerID, id))
}

func (r *GormCertificateRepository) FindByVerificationCode(ctx context.Context, code string) (*certification.Certificate, error) {
	return r.findOne(r.db.WithContext(ctx).Where("verification_code = ?", code))
}

func (r *GormCertificateRepository) FindByIDForVerification(ctx context.Context, id uuid.UUID) (*certification.Certificate, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)).Where("id = ?", id))
}

func (r *GormCertificateRepository) findOne(query *gorm.DB) (*certification.Certificate, error) {
	var m models.CertificateModel
	if err := query.First(&m).Error; err != nil {
		return nil, translateError(err, "Certificate")
	}
	return m.ToDomain(), nil
}

func (r *GormCertificateRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter certification.CertificateFilter) ([]certification.Certificate, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CertificateModel{}).Where("center_id = ?", centerID)
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(certificate_id) LIKE ?", likePattern(filter.Search))
	}

	var rows []models.CertificateModel
	total, err := countAndFind(query, filter.Filter, CertificateSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	certs := make([]certification.Certificate, len(rows))
	for i := range rows {
		certs[i] = *rows[i].ToDomain()
	}
	return certs, total, nil
}

// Create inserts a certificate. A collision on certificate_id or
// verification_code yields ALREADY_EXISTS so the caller can regenerate.
func (r *GormCertificateRepository) Create(ctx context.Context, certificate *certification.Certificate) error {
	return translateError(r.db.WithContext(ctx).Create(models.CertificateModelFromDomain(certificate)).Error, "Certificate")
}

func (r *GormCertificateRepository) SaveWithLock(ctx context.Context, certificate *certification.Certificate) error {
	m := models.CertificateModelFromDomain(certificate)
	result := r.db.WithContext(ctx).
		Model(m).
		Where("center_id = ? AND version = ?", certificate.CenterID, certificate.Version-1).
		Select("*").Omit(lockedColumns...).
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return concurrencyConflict("Certificate")
	}
	return nil
}

var _ certification.CertificateRepository = (*GormCertificateRepository)(nil)
