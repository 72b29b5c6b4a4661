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

// ResultService records, scores, ranks and publishes exam results
type ResultService struct {
	examRepo       exam.ExamRepository
	resultRepo     exam.ExamResultRepository
	studentRepo    academic.StudentRepository
	txScope        TransactionScope
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewResultService creates a new ResultService
func NewResultService(
	examRepo exam.ExamRepository,
	resultRepo exam.ExamResultRepository,
	studentRepo academic.StudentRepository,
	txScope TransactionScope,
) *ResultService {
	return &ResultService{
		examRepo:       examRepo,
		resultRepo:     resultRepo,
		studentRepo:    studentRepo,
		txScope:        txScope,
		clock:          shared.SystemClock{},
		eventPublisher: shared.NoopEventPublisher{},
		logger:         zap.NewNop(),
	}
}

// SetClock replaces the time source
func (s *ResultService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// SetEventPublisher sets the publisher for domain events
func (s *ResultService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the logger
func (s *ResultService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Submit records a student's marks for a running or completed exam.
// A second submission for the same student fails with ALREADY_EXISTS.
func (s *ResultService) Submit(ctx context.Context, centerID, examID uuid.UUID, req SubmitResultRequest) (*ResultResponse, error) {
	e, err := s.examRepo.FindByIDForCenter(ctx, centerID, examID)
	if err != nil {
		return nil, err
	}
	if !e.AcceptsResults() {
		return nil, shared.NewInvalidStateError(fmt.Sprintf("Cannot record results for exam in %s status", e.Status))
	}
	if _, err := s.studentRepo.FindByIDForCenter(ctx, centerID, req.StudentID); err != nil {
		return nil, err
	}

	result, err := exam.NewExamResult(e, exam.Submission{
		StudentID:     req.StudentID,
		ObtainedMarks: req.ObtainedMarks,
		StartedAt:     req.StartedAt,
		FinishedAt:    req.FinishedAt,
		Remarks:       req.Remarks,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}
	s.publish(ctx, result)

	s.logger.Info("Exam result recorded",
		zap.String("result_id", result.ID.String()),
		zap.String("exam_id", examID.String()),
		zap.String("percentage", result.Percentage.String()),
		zap.String("grade", string(result.Grade)))

	resp := ToResultResponse(result)
	return &resp, nil
}

// GetByID retrieves a result
func (s *ResultService) GetByID(ctx context.Context, centerID, id uuid.UUID) (*ResultResponse, error) {
	result, err := s.resultRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToResultResponse(result)
	return &resp, nil
}

// ListByExam retrieves the results of one exam
func (s *ResultService) ListByExam(ctx context.Context, centerID, examID uuid.UUID, filter ResultListFilter) ([]ResultResponse, int64, error) {
	if _, err := s.examRepo.FindByIDForCenter(ctx, centerID, examID); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, centerID, filter, &examID, nil)
}

// ListByStudent retrieves the results of one student across exams
func (s *ResultService) ListByStudent(ctx context.Context, centerID, studentID uuid.UUID, filter ResultListFilter) ([]ResultResponse, int64, error) {
	if _, err := s.studentRepo.FindByIDForCenter(ctx, centerID, studentID); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, centerID, filter, nil, &studentID)
}

func (s *ResultService) list(ctx context.Context, centerID uuid.UUID, filter ResultListFilter, examID, studentID *uuid.UUID) ([]ResultResponse, int64, error) {
	results, total, err := s.resultRepo.FindAllForCenter(ctx, centerID, exam.ResultFilter{
		Filter:    shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, ""),
		ExamID:    examID,
		StudentID: studentID,
		Status:    filter.Status,
		Published: filter.Published,
	})
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ResultResponse, len(results))
	for i := range results {
		responses[i] = ToResultResponse(&results[i])
	}
	return responses, total, nil
}

// Evaluate re-derives PASS/FAIL for every result of the exam and assigns
// competition ranks. Absent and disqualified results keep their status.
// Fails with INVALID_STATE, changing nothing, when the exam has no
// passing marks.
func (s *ResultService) Evaluate(ctx context.Context, centerID, examID uuid.UUID, evaluatedBy string) ([]ResultResponse, error) {
	var results []*exam.ExamResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		e, err := repos.ExamRepo().FindByIDForUpdate(ctx, centerID, examID)
		if err != nil {
			return err
		}
		if !e.HasPassingMarks() {
			return shared.NewInvalidStateError("Exam has no passing marks configured")
		}

		results, err = repos.ResultRepo().FindByExamForUpdate(ctx, centerID, examID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		for _, r := range results {
			if r.ResultStatus.IsExplicit() {
				r.Touch(now)
				r.IncrementVersion()
				continue
			}
			if err := r.Evaluate(e.PassingMarks, evaluatedBy, now); err != nil {
				return err
			}
		}
		exam.RankResults(results)

		for _, r := range results {
			if err := repos.ResultRepo().SaveWithLock(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exam results evaluated",
		zap.String("exam_id", examID.String()),
		zap.Int("results", len(results)))
	return toResultResponses(results), nil
}

// Publish publishes one result. Publishing an already published result
// keeps the original publish date.
func (s *ResultService) Publish(ctx context.Context, centerID, id uuid.UUID) (*ResultResponse, error) {
	return s.mutate(ctx, centerID, id, func(r *exam.ExamResult, now time.Time) error {
		r.Publish(now)
		return nil
	})
}

// PublishAll publishes every result of an exam and returns how many were
// newly published
func (s *ResultService) PublishAll(ctx context.Context, centerID, examID uuid.UUID) (int, error) {
	var published []*exam.ExamResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ExamRepo().FindByIDForCenter(ctx, centerID, examID); err != nil {
			return err
		}
		results, err := repos.ResultRepo().FindByExamForUpdate(ctx, centerID, examID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		for _, r := range results {
			if !r.Publish(now) {
				continue
			}
			if err := repos.ResultRepo().SaveWithLock(ctx, r); err != nil {
				return err
			}
			published = append(published, r)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, r := range published {
		s.publish(ctx, r)
	}
	s.logger.Info("Exam results published",
		zap.String("exam_id", examID.String()),
		zap.Int("published", len(published)))
	return len(published), nil
}

// MarkAbsent records that the student did not sit the exam
func (s *ResultService) MarkAbsent(ctx context.Context, centerID, id uuid.UUID) (*ResultResponse, error) {
	return s.mutate(ctx, centerID, id, func(r *exam.ExamResult, now time.Time) error {
		return r.MarkAbsent(now)
	})
}

// Disqualify voids a result with a reason
func (s *ResultService) Disqualify(ctx context.Context, centerID, id uuid.UUID, reason string) (*ResultResponse, error) {
	return s.mutate(ctx, centerID, id, func(r *exam.ExamResult, now time.Time) error {
		return r.Disqualify(reason, now)
	})
}

func (s *ResultService) mutate(ctx context.Context, centerID, id uuid.UUID, fn func(*exam.ExamResult, time.Time) error) (*ResultResponse, error) {
	var result *exam.ExamResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		result, err = repos.ResultRepo().FindByIDForUpdate(ctx, centerID, id)
		if err != nil {
			return err
		}
		version := result.GetVersion()
		if err := fn(result, s.clock.Now()); err != nil {
			return err
		}
		if result.GetVersion() == version {
			return nil
		}
		return repos.ResultRepo().SaveWithLock(ctx, result)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, result)

	resp := ToResultResponse(result)
	return &resp, nil
}

func (s *ResultService) publish(ctx context.Context, result *exam.ExamResult) {
	events := shared.PullDomainEvents(result)
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish result events", zap.Error(err))
	}
}
