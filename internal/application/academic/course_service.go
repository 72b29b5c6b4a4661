package academic

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CourseService handles course operations
type CourseService struct {
	courseRepo academic.CourseRepository
	clock      shared.Clock
	logger     *zap.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo academic.CourseRepository) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		clock:      shared.SystemClock{},
		logger:     zap.NewNop(),
	}
}

// SetClock replaces the time source
func (s *CourseService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// SetLogger sets the logger
func (s *CourseService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Create creates a new course. Codes are unique per center.
func (s *CourseService) Create(ctx context.Context, centerID uuid.UUID, req CourseRequest) (*CourseResponse, error) {
	course, err := academic.NewCourse(centerID, req.input(), s.clock.Now())
	if err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.ExistsByCode(ctx, centerID, course.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Course with code %s already exists", course.Code))
	}

	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info("Course created",
		zap.String("course_id", course.ID.String()),
		zap.String("code", course.Code))

	resp := ToCourseResponse(course)
	return &resp, nil
}

// GetByID retrieves a course
func (s *CourseService) GetByID(ctx context.Context, centerID, id uuid.UUID) (*CourseResponse, error) {
	course, err := s.courseRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCourseResponse(course)
	return &resp, nil
}

// List retrieves courses matching the filter
func (s *CourseService) List(ctx context.Context, centerID uuid.UUID, filter CourseListFilter) ([]CourseResponse, int64, error) {
	courses, total, err := s.courseRepo.FindAllForCenter(ctx, centerID, academic.CourseFilter{
		Filter:    shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search),
		Published: filter.Published,
	})
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = ToCourseResponse(&courses[i])
	}
	return responses, total, nil
}

// Update replaces a course's fields. Changing the code re-checks uniqueness.
func (s *CourseService) Update(ctx context.Context, centerID, id uuid.UUID, req CourseRequest) (*CourseResponse, error) {
	course, err := s.courseRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}

	previousCode := course.Code
	if err := course.Update(req.input(), s.clock.Now()); err != nil {
		return nil, err
	}
	if course.Code != previousCode {
		exists, err := s.courseRepo.ExistsByCode(ctx, centerID, course.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Course with code %s already exists", course.Code))
		}
	}

	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}
	resp := ToCourseResponse(course)
	return &resp, nil
}

// Delete removes a course
func (s *CourseService) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	if _, err := s.courseRepo.FindByIDForCenter(ctx, centerID, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, centerID, id)
}
