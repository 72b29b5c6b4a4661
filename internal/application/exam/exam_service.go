package exam

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExamService handles exam scheduling and lifecycle
type ExamService struct {
	examRepo       exam.ExamRepository
	resultRepo     exam.ExamResultRepository
	courseRepo     academic.CourseRepository
	txScope        TransactionScope
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewExamService creates a new ExamService
func NewExamService(
	examRepo exam.ExamRepository,
	resultRepo exam.ExamResultRepository,
	courseRepo academic.CourseRepository,
	txScope TransactionScope,
) *ExamService {
	return &ExamService{
		examRepo:       examRepo,
		resultRepo:     resultRepo,
		courseRepo:     courseRepo,
		txScope:        txScope,
		clock:          shared.SystemClock{},
		eventPublisher: shared.NoopEventPublisher{},
		logger:         zap.NewNop(),
	}
}

// SetClock replaces the time source
func (s *ExamService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// SetEventPublisher sets the publisher for domain events
func (s *ExamService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the logger
func (s *ExamService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Create schedules an exam for an existing course
func (s *ExamService) Create(ctx context.Context, centerID uuid.UUID, req ExamRequest) (*ExamResponse, error) {
	if _, err := s.courseRepo.FindByIDForCenter(ctx, centerID, req.CourseID); err != nil {
		return nil, err
	}
	e, err := exam.NewExam(centerID, req.input(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.examRepo.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save exam: %w", err)
	}

	s.logger.Info("Exam scheduled",
		zap.String("exam_id", e.ID.String()),
		zap.String("course_id", e.CourseID.String()),
		zap.Time("exam_date", e.ExamDate))

	resp := ToExamResponse(e)
	return &resp, nil
}

// GetByID retrieves an exam
func (s *ExamService) GetByID(ctx context.Context, centerID, id uuid.UUID) (*ExamResponse, error) {
	e, err := s.examRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToExamResponse(e)
	return &resp, nil
}

// List retrieves exams matching the filter
func (s *ExamService) List(ctx context.Context, centerID uuid.UUID, filter ExamListFilter) ([]ExamResponse, int64, error) {
	exams, total, err := s.examRepo.FindAllForCenter(ctx, centerID, exam.ExamFilter{
		Filter:   shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search),
		CourseID: filter.CourseID,
		Status:   filter.Status,
		Type:     filter.Type,
	})
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ExamResponse, len(exams))
	for i := range exams {
		responses[i] = ToExamResponse(&exams[i])
	}
	return responses, total, nil
}

// ListByCourse retrieves the exams of one course
func (s *ExamService) ListByCourse(ctx context.Context, centerID, courseID uuid.UUID, filter ExamListFilter) ([]ExamResponse, int64, error) {
	if _, err := s.courseRepo.FindByIDForCenter(ctx, centerID, courseID); err != nil {
		return nil, 0, err
	}
	filter.CourseID = &courseID
	return s.List(ctx, centerID, filter)
}

// Update replaces an exam's editable fields
func (s *ExamService) Update(ctx context.Context, centerID, id uuid.UUID, req ExamRequest) (*ExamResponse, error) {
	if _, err := s.courseRepo.FindByIDForCenter(ctx, centerID, req.CourseID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, centerID, id, func(e *exam.Exam, now time.Time) error {
		return e.Update(req.input(), now)
	})
}

// Delete removes an exam that has no recorded results
func (s *ExamService) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ExamRepo().FindByIDForUpdate(ctx, centerID, id); err != nil {
			return err
		}
		count, err := repos.ResultRepo().CountByExam(ctx, centerID, id)
		if err != nil {
			return fmt.Errorf("failed to count results: %w", err)
		}
		if count > 0 {
			return shared.NewInvalidStateError(fmt.Sprintf("Cannot delete an exam with %d results", count))
		}
		return repos.ExamRepo().Delete(ctx, centerID, id)
	})
}

// Start opens a scheduled or postponed exam
func (s *ExamService) Start(ctx context.Context, centerID, id uuid.UUID) (*ExamResponse, error) {
	return s.mutate(ctx, centerID, id, func(e *exam.Exam, now time.Time) error {
		return e.Start(now)
	})
}

// Complete closes a running exam
func (s *ExamService) Complete(ctx context.Context, centerID, id uuid.UUID) (*ExamResponse, error) {
	return s.mutate(ctx, centerID, id, func(e *exam.Exam, now time.Time) error {
		return e.Complete(now)
	})
}

// Cancel cancels an exam that has not completed
func (s *ExamService) Cancel(ctx context.Context, centerID, id uuid.UUID) (*ExamResponse, error) {
	return s.mutate(ctx, centerID, id, func(e *exam.Exam, now time.Time) error {
		return e.Cancel(now)
	})
}

// Postpone moves a scheduled exam to a later date
func (s *ExamService) Postpone(ctx context.Context, centerID, id uuid.UUID, newDate time.Time) (*ExamResponse, error) {
	return s.mutate(ctx, centerID, id, func(e *exam.Exam, now time.Time) error {
		return e.Postpone(newDate, now)
	})
}

func (s *ExamService) mutate(ctx context.Context, centerID, id uuid.UUID, fn func(*exam.Exam, time.Time) error) (*ExamResponse, error) {
	var e *exam.Exam
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		e, err = repos.ExamRepo().FindByIDForUpdate(ctx, centerID, id)
		if err != nil {
			return err
		}
		if err := fn(e, s.clock.Now()); err != nil {
			return err
		}
		return repos.ExamRepo().SaveWithLock(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	if events := shared.PullDomainEvents(e); len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish exam events", zap.Error(err))
		}
	}

	resp := ToExamResponse(e)
	return &resp, nil
}
