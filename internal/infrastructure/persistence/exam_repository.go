package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExamRepository implements exam.ExamRepository using GORM
type GormExamRepository struct {
	db *gorm.DB
}

// NewGormExamRepository creates a new GormExamRepository
func NewGormExamRepository(db *gorm.DB) *GormExamRepository {
	return &GormExamRepository{db: db}
}

func (r *GormExamRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*exam.Exam, error) {
	return r.findOne(r.db.WithContext(ctx), centerID, id)
}

func (r *GormExamRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*exam.Exam, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)), centerID, id)
}

func (r *GormExamRepository) findOne(query *gorm.DB, centerID, id uuid.UUID) (*exam.Exam, error) {
	var m models.ExamModel
	if err := query.Where("center_id = ? AND id = ?", centerID, id).First(&m).Error; err != nil {
		return nil, translateError(err, "Exam")
	}
	return m.ToDomain(), nil
}

func (r *GormExamRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter exam.ExamFilter) ([]exam.Exam, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExamModel{}).Where("center_id = ?", centerID)
	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}

	var rows []models.ExamModel
	total, err := countAndFind(query, filter.Filter, ExamSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	exams := make([]exam.Exam, len(rows))
	for i := range rows {
		exams[i] = *rows[i].ToDomain()
	}
	return exams, total, nil
}

func (r *GormExamRepository) Save(ctx context.Context, e *exam.Exam) error {
	return translateError(r.db.WithContext(ctx).Save(models.ExamModelFromDomain(e)).Error, "Exam")
}

func (r *GormExamRepository) SaveWithLock(ctx context.Context, e *exam.Exam) error {
	m := models.ExamModelFromDomain(e)
	result := r.db.WithContext(ctx).
		Model(m).
		Where("center_id = ? AND version = ?", e.CenterID, e.Version-1).
		Select("*").Omit(lockedColumns...).
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return concurrencyConflict("Exam")
	}
	return nil
}

func (r *GormExamRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExamModel{}, "center_id = ? AND id = ?", centerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Exam", id)
	}
	return nil
}

// GormExamResultRepository implements exam.ExamResultRepository using GORM
type GormExamResultRepository struct {
	db *gorm.DB
}

// NewGormExamResultRepository creates a new GormExamResultRepository
func NewGormExamResultRepository(db *gorm.DB) *GormExamResultRepository {
	return &GormExamResultRepository{db: db}
}

func (r *GormExamResultRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*exam.ExamResult, error) {
	return r.findOne(r.db.WithContext(ctx), centerID, id)
}

func (r *GormExamResultRepository) FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*exam.ExamResult, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)), centerID, id)
}

func (r *GormExamResultRepository) findOne(query *gorm.DB, centerID, id uuid.UUID) (*exam.ExamResult, error) {
	var m models.ExamResultModel
	if err := query.Where("center_id = ? AND id = ?", centerID, id).First(&m).Error; err != nil {
		return nil, translateError(err, "Exam result")
	}
	return m.ToDomain(), nil
}

// FindByExamForUpdate locks all results of an exam, ordered by id so that
// concurrent evaluations acquire row locks in the same order.
func (r *GormExamResultRepository) FindByExamForUpdate(ctx context.Context, centerID, examID uuid.UUID) ([]*exam.ExamResult, error) {
	var rows []models.ExamResultModel
	if err := forUpdate(r.db.WithContext(ctx)).
		Where("center_id = ? AND exam_id = ?", centerID, examID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	results := make([]*exam.ExamResult, len(rows))
	for i := range rows {
		results[i] = rows[i].ToDomain()
	}
	return results, nil
}

func (r *GormExamResultRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter exam.ResultFilter) ([]exam.ExamResult, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExamResultModel{}).Where("center_id = ?", centerID)
	if filter.ExamID != nil {
		query = query.Where("exam_id = ?", *filter.ExamID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("result_status = ?", filter.Status)
	}
	if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}

	var rows []models.ExamResultModel
	total, err := countAndFind(query, filter.Filter, ExamResultSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	results := make([]exam.ExamResult, len(rows))
	for i := range rows {
		results[i] = *rows[i].ToDomain()
	}
	return results, total, nil
}

func (r *GormExamResultRepository) CountByExam(ctx context.Context, centerID, examID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExamResultModel{}).
		Where("center_id = ? AND exam_id = ?", centerID, examID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new result; a second result for the same student and
// exam yields ALREADY_EXISTS.
func (r *GormExamResultRepository) Create(ctx context.Context, result *exam.ExamResult) error {
	return translateError(r.db.WithContext(ctx).Create(models.ExamResultModelFromDomain(result)).Error, "Exam result")
}

func (r *GormExamResultRepository) SaveWithLock(ctx context.Context, result *exam.ExamResult) error {
	m := models.ExamResultModelFromDomain(result)
	res := r.db.WithContext(ctx).
		Model(m).
		Where("center_id = ? AND version = ?", result.CenterID, result.Version-1).
		Select("*").Omit(lockedColumns...).
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return concurrencyConflict("Exam result")
	}
	return nil
}

var (
	_ exam.ExamRepository       = (*GormExamRepository)(nil)
	_ exam.ExamResultRepository = (*GormExamResultRepository)(nil)
)
