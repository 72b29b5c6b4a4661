package academic

import (
	"context"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StudentService handles student operations
type StudentService struct {
	studentRepo academic.StudentRepository
	clock       shared.Clock
	logger      *zap.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo academic.StudentRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		clock:       shared.SystemClock{},
		logger:      zap.NewNop(),
	}
}

// SetClock replaces the time source
func (s *StudentService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// SetLogger sets the logger
func (s *StudentService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Create enrolls a new student
func (s *StudentService) Create(ctx context.Context, centerID uuid.UUID, req StudentRequest) (*StudentResponse, error) {
	student, err := academic.NewStudent(centerID, req.input(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}
	s.logger.Info("Student created", zap.String("student_id", student.ID.String()))

	resp := ToStudentResponse(student)
	return &resp, nil
}

// GetByID retrieves a student
func (s *StudentService) GetByID(ctx context.Context, centerID, id uuid.UUID) (*StudentResponse, error) {
	student, err := s.studentRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToStudentResponse(student)
	return &resp, nil
}

// List retrieves students matching the filter
func (s *StudentService) List(ctx context.Context, centerID uuid.UUID, filter StudentListFilter) ([]StudentResponse, int64, error) {
	students, total, err := s.studentRepo.FindAllForCenter(ctx, centerID, academic.StudentFilter{
		Filter: shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search),
		Status: filter.Status,
	})
	if err != nil {
		return nil, 0, err
	}
	responses := make([]StudentResponse, len(students))
	for i := range students {
		responses[i] = ToStudentResponse(&students[i])
	}
	return responses, total, nil
}

// Update replaces a student's fields
func (s *StudentService) Update(ctx context.Context, centerID, id uuid.UUID, req StudentRequest) (*StudentResponse, error) {
	student, err := s.studentRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	if err := student.Update(req.input(), s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}
	resp := ToStudentResponse(student)
	return &resp, nil
}

// Delete removes a student
func (s *StudentService) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	if _, err := s.studentRepo.FindByIDForCenter(ctx, centerID, id); err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, centerID, id)
}
