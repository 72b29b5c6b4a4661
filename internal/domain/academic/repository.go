package academic

import (
	"context"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// CourseFilter narrows course listings
type CourseFilter struct {
	shared.Filter
	Published *bool
}

// StudentFilter narrows student listings
type StudentFilter struct {
	shared.Filter
	Status StudentStatus
}

// CourseRepository persists courses
type CourseRepository interface {
	FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*Course, error)
	FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter CourseFilter) ([]Course, int64, error)
	ExistsByCode(ctx context.Context, centerID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, course *Course) error
	Delete(ctx context.Context, centerID, id uuid.UUID) error
}

// StudentRepository persists students
type StudentRepository interface {
	FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*Student, error)
	FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter StudentFilter) ([]Student, int64, error)
	Save(ctx context.Context, student *Student) error
	Delete(ctx context.Context, centerID, id uuid.UUID) error
}
