package exam

import (
	"context"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// ExamFilter narrows exam listings
type ExamFilter struct {
	shared.Filter
	CourseID *uuid.UUID
	Status   ExamStatus
	Type     ExamType
}

// ResultFilter narrows result listings
type ResultFilter struct {
	shared.Filter
	ExamID    *uuid.UUID
	StudentID *uuid.UUID
	Status    ResultStatus
	Published *bool
}

// ExamRepository persists exams.
// Find methods return shared.ErrNotFound when no row matches.
type ExamRepository interface {
	FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*Exam, error)
	FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*Exam, error)
	FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter ExamFilter) ([]Exam, int64, error)
	Save(ctx context.Context, exam *Exam) error
	SaveWithLock(ctx context.Context, exam *Exam) error
	Delete(ctx context.Context, centerID, id uuid.UUID) error
}

// ExamResultRepository persists exam results.
// Create returns shared.ErrAlreadyExists when the student already has a
// result for the exam.
type ExamResultRepository interface {
	FindByIDForCenter(ctx context.Context, centerID, id uuid.UUID) (*ExamResult, error)
	FindByIDForUpdate(ctx context.Context, centerID, id uuid.UUID) (*ExamResult, error)
	// FindByExamForUpdate locks every result of the exam
	FindByExamForUpdate(ctx context.Context, centerID, examID uuid.UUID) ([]*ExamResult, error)
	FindAllForCenter(ctx context.Context, centerID uuid.UUID, filter ResultFilter) ([]ExamResult, int64, error)
	CountByExam(ctx context.Context, centerID, examID uuid.UUID) (int64, error)
	Create(ctx context.Context, result *ExamResult) error
	SaveWithLock(ctx context.Context, result *ExamResult) error
}
