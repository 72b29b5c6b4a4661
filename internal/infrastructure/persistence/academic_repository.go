package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCourseRepository implements academic.CourseRepository using GORM
type GormCourseRepository struct {
	db *gorm.DB
}

// NewGormCourseRepository creates a new GormCourseRepository
func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

func (r *GormCourseRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*academic.Course, error) {
	var m models.CourseModel
	if err := r.db.WithContext(ctx).
		Where("center_id = ? AND id = ?", centerID, id).
		First(&m).Error; err != nil {
		return nil, translateError(err, "Course")
	}
	return m.ToDomain(), nil
}

func (r *GormCourseRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter academic.CourseFilter) ([]academic.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CourseModel{}).Where("center_id = ?", centerID)
	if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", p, p)
	}

	var rows []models.CourseModel
	total, err := countAndFind(query, filter.Filter, CourseSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	courses := make([]academic.Course, len(rows))
	for i := range rows {
		courses[i] = *rows[i].ToDomain()
	}
	return courses, total, nil
}

func (r *GormCourseRepository) ExistsByCode(ctx context.Context, centerID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CourseModel{}).
		Where("center_id = ? AND code = ?", centerID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts or fully updates a course
func (r *GormCourseRepository) Save(ctx context.Context, course *academic.Course) error {
	return translateError(r.db.WithContext(ctx).Save(models.CourseModelFromDomain(course)).Error, "Course")
}

func (r *GormCourseRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CourseModel{}, "center_id = ? AND id = ?", centerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Course", id)
	}
	return nil
}

// GormStudentRepository implements academic.StudentRepository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*academic.Student, error) {
	var m models.StudentModel
	if err := r.db.WithContext(ctx).
		Where("center_id = ? AND id = ?", centerID, id).
		First(&m).Error; err != nil {
		return nil, translateError(err, "Student")
	}
	return m.ToDomain(), nil
}

func (r *GormStudentRepository) FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter academic.StudentFilter) ([]academic.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StudentModel{}).Where("center_id = ?", centerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", p, p, p)
	}

	var rows []models.StudentModel
	total, err := countAndFind(query, filter.Filter, StudentSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	students := make([]academic.Student, len(rows))
	for i := range rows {
		students[i] = *rows[i].ToDomain()
	}
	return students, total, nil
}

// Save inserts or fully updates a student
func (r *GormStudentRepository) Save(ctx context.Context, student *academic.Student) error {
	return translateError(r.db.WithContext(ctx).Save(models.StudentModelFromDomain(student)).Error, "Student")
}

func (r *GormStudentRepository) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StudentModel{}, "center_id = ? AND id = ?", centerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Student", id)
	}
	return nil
}

var (
	_ academic.CourseRepository  = (*GormCourseRepository)(nil)
	_ academic.StudentRepository = (*GormStudentRepository)(nil)
)
