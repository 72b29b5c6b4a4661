package exam

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ResultStatus is the outcome of an exam result
type ResultStatus string

const (
	ResultStatusPass         ResultStatus = "PASS"
	ResultStatusFail         ResultStatus = "FAIL"
	ResultStatusAbsent       ResultStatus = "ABSENT"
	ResultStatusDisqualified ResultStatus = "DISQUALIFIED"
)

// IsValid checks if the status is a known value
func (s ResultStatus) IsValid() bool {
	switch s {
	case ResultStatusPass, ResultStatusFail, ResultStatusAbsent, ResultStatusDisqualified:
		return true
	}
	return false
}

// IsExplicit reports whether the status was set by an explicit action
// rather than derived from marks
func (s ResultStatus) IsExplicit() bool {
	return s == ResultStatusAbsent || s == ResultStatusDisqualified
}

// ParseResultStatus converts a wire value into a ResultStatus
func ParseResultStatus(s string) (ResultStatus, error) {
	status := ResultStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown result status: %q", s))
	}
	return status, nil
}

// Grade is a letter grade
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeF     Grade = "F"
)

var gradeBands = []struct {
	min   decimal.Decimal
	grade Grade
}{
	{decimal.NewFromInt(90), GradeAPlus},
	{decimal.NewFromInt(80), GradeA},
	{decimal.NewFromInt(70), GradeBPlus},
	{decimal.NewFromInt(60), GradeB},
	{decimal.NewFromInt(50), GradeCPlus},
	{decimal.NewFromInt(40), GradeC},
}

// GradeFor maps a percentage onto its band. Lower bounds are inclusive.
func GradeFor(percentage decimal.Decimal) Grade {
	for _, band := range gradeBands {
		if percentage.GreaterThanOrEqual(band.min) {
			return band.grade
		}
	}
	return GradeF
}

// GradeForMarks grades obtained/total before any rounding, so 79.995%
// stays below the 80% boundary.
func GradeForMarks(obtained, total int) Grade {
	if total <= 0 {
		return GradeF
	}
	scaled := decimal.NewFromInt(int64(obtained)).Mul(decimal.NewFromInt(100))
	t := decimal.NewFromInt(int64(total))
	for _, band := range gradeBands {
		if scaled.GreaterThanOrEqual(band.min.Mul(t)) {
			return band.grade
		}
	}
	return GradeF
}

// ExamResult is one student's marks for one exam.
// Percentage and Grade are always derived from ObtainedMarks/TotalMarks.
type ExamResult struct {
	shared.CenterAggregateRoot
	ExamID                uuid.UUID
	StudentID             uuid.UUID
	TotalMarks            int
	ObtainedMarks         int
	Percentage            decimal.Decimal
	Grade                 Grade
	ResultStatus          ResultStatus
	Rank                  *int
	TotalStudents         *int
	ExamStartTime         *time.Time
	ExamEndTime           *time.Time
	TotalTimeTakenMinutes *int
	Remarks               string
	EvaluatedBy           string
	EvaluationDate        *time.Time
	IsPublished           bool
	PublishedDate         *time.Time
}

// Submission is a student's recorded attempt
type Submission struct {
	StudentID     uuid.UUID
	ObtainedMarks int
	StartedAt     *time.Time
	FinishedAt    *time.Time
	Remarks       string
}

// NewExamResult records marks for a student and scores them against the
// exam. Without passing marks on the exam the status is left unset.
func NewExamResult(e *Exam, sub Submission, now time.Time) (*ExamResult, error) {
	if sub.StudentID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Student ID cannot be empty")
	}
	if sub.ObtainedMarks < 0 || sub.ObtainedMarks > e.TotalMarks {
		return nil, shared.NewInvalidInputError(fmt.Sprintf("Obtained marks must be between 0 and %d", e.TotalMarks))
	}
	if sub.StartedAt != nil && sub.FinishedAt != nil && sub.FinishedAt.Before(*sub.StartedAt) {
		return nil, shared.NewInvalidInputError("Exam end time cannot be before start time")
	}

	r := &ExamResult{
		CenterAggregateRoot: shared.NewCenterAggregateRoot(e.CenterID, now),
		ExamID:              e.ID,
		StudentID:           sub.StudentID,
		TotalMarks:          e.TotalMarks,
		ObtainedMarks:       sub.ObtainedMarks,
		ExamStartTime:       sub.StartedAt,
		ExamEndTime:         sub.FinishedAt,
		Remarks:             sub.Remarks,
	}
	if sub.StartedAt != nil && sub.FinishedAt != nil {
		minutes := int(sub.FinishedAt.Sub(*sub.StartedAt).Minutes())
		r.TotalTimeTakenMinutes = &minutes
	}

	if err := r.Score(e.PassingMarks); err != nil {
		return nil, err
	}
	r.AddDomainEvent(NewResultRecordedEvent(r, now))
	return r, nil
}

// CalculatePercentage sets Percentage = obtained / total x 100, rounded to
// two places
func (r *ExamResult) CalculatePercentage() error {
	if r.TotalMarks <= 0 {
		return shared.NewInvalidInputError("Total marks must be positive")
	}
	if r.ObtainedMarks < 0 || r.ObtainedMarks > r.TotalMarks {
		return shared.NewInvalidInputError(fmt.Sprintf("Obtained marks must be between 0 and %d", r.TotalMarks))
	}
	r.Percentage = decimal.NewFromInt(int64(r.ObtainedMarks)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(r.TotalMarks)), 2)
	return nil
}

// CalculateGrade derives the letter grade from the marks, not from the
// rounded Percentage
func (r *ExamResult) CalculateGrade() {
	r.Grade = GradeForMarks(r.ObtainedMarks, r.TotalMarks)
}

// DetermineResultStatus derives PASS or FAIL from the passing threshold.
// A nil threshold leaves the status untouched, as do explicit statuses.
func (r *ExamResult) DetermineResultStatus(passingMarks *int) {
	if passingMarks == nil || r.ResultStatus.IsExplicit() {
		return
	}
	if r.ObtainedMarks >= *passingMarks {
		r.ResultStatus = ResultStatusPass
	} else {
		r.ResultStatus = ResultStatusFail
	}
}

// Score recomputes percentage, grade and status in one step
func (r *ExamResult) Score(passingMarks *int) error {
	if err := r.CalculatePercentage(); err != nil {
		return err
	}
	r.CalculateGrade()
	r.DetermineResultStatus(passingMarks)
	return nil
}

// Evaluate re-derives the status against the exam's threshold and stamps
// the evaluator. Missing passing marks is an invalid state for evaluation.
func (r *ExamResult) Evaluate(passingMarks *int, evaluatedBy string, now time.Time) error {
	if passingMarks == nil {
		return shared.NewInvalidStateError("Exam has no passing marks configured")
	}
	if err := r.Score(passingMarks); err != nil {
		return err
	}
	r.EvaluatedBy = evaluatedBy
	evaluatedAt := now
	r.EvaluationDate = &evaluatedAt
	r.Touch(now)
	r.IncrementVersion()
	return nil
}

// AssignRank stores the position among ranked results. Explicit statuses
// carry no rank.
func (r *ExamResult) AssignRank(rank, totalStudents int) {
	total := totalStudents
	r.TotalStudents = &total
	if r.ResultStatus.IsExplicit() {
		r.Rank = nil
		return
	}
	position := rank
	r.Rank = &position
}

// MarkAbsent records that the student did not sit the exam
func (r *ExamResult) MarkAbsent(now time.Time) error {
	if r.IsPublished {
		return shared.NewInvalidStateError("Cannot change a published result")
	}
	if r.ResultStatus == ResultStatusDisqualified {
		return shared.NewInvalidStateError("Cannot mark a disqualified result absent")
	}
	r.ResultStatus = ResultStatusAbsent
	r.Rank = nil
	r.Touch(now)
	r.IncrementVersion()
	return nil
}

// Disqualify voids the result with a reason
func (r *ExamResult) Disqualify(reason string, now time.Time) error {
	if r.IsPublished {
		return shared.NewInvalidStateError("Cannot change a published result")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewInvalidInputError("Disqualification reason is required")
	}
	r.ResultStatus = ResultStatusDisqualified
	r.Remarks = reason
	r.Rank = nil
	r.Touch(now)
	r.IncrementVersion()
	return nil
}

// Publish makes the result visible. The first publish date wins; publishing
// again changes nothing and returns false.
func (r *ExamResult) Publish(now time.Time) bool {
	if r.IsPublished {
		return false
	}
	r.IsPublished = true
	publishedAt := now
	r.PublishedDate = &publishedAt
	r.Touch(now)
	r.IncrementVersion()
	r.AddDomainEvent(NewResultPublishedEvent(r, now))
	return true
}
