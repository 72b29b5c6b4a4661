package exam

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// ExamType is the format of an exam
type ExamType string

const (
	ExamTypeMCQ         ExamType = "MCQ"
	ExamTypeDescriptive ExamType = "DESCRIPTIVE"
	ExamTypeMixed       ExamType = "MIXED"
	ExamTypePractical   ExamType = "PRACTICAL"
	ExamTypeOral        ExamType = "ORAL"
	ExamTypeProject     ExamType = "PROJECT"
)

// IsValid checks if the type is a known value
func (t ExamType) IsValid() bool {
	switch t {
	case ExamTypeMCQ, ExamTypeDescriptive, ExamTypeMixed, ExamTypePractical, ExamTypeOral, ExamTypeProject:
		return true
	}
	return false
}

// ParseExamType converts a wire value into an ExamType
func ParseExamType(s string) (ExamType, error) {
	t := ExamType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown exam type: %q", s))
	}
	return t, nil
}

// ExamStatus is the scheduling status of an exam
type ExamStatus string

const (
	ExamStatusScheduled  ExamStatus = "SCHEDULED"
	ExamStatusInProgress ExamStatus = "IN_PROGRESS"
	ExamStatusCompleted  ExamStatus = "COMPLETED"
	ExamStatusCancelled  ExamStatus = "CANCELLED"
	ExamStatusPostponed  ExamStatus = "POSTPONED"
)

// IsValid checks if the status is a known value
func (s ExamStatus) IsValid() bool {
	switch s {
	case ExamStatusScheduled, ExamStatusInProgress, ExamStatusCompleted, ExamStatusCancelled, ExamStatusPostponed:
		return true
	}
	return false
}

// ParseExamStatus converts a wire value into an ExamStatus
func ParseExamStatus(s string) (ExamStatus, error) {
	status := ExamStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown exam status: %q", s))
	}
	return status, nil
}

// Exam is a scheduled assessment for one course
type Exam struct {
	shared.CenterAggregateRoot
	Name            string
	Description     string
	CourseID        uuid.UUID
	ExamDate        time.Time
	DurationMinutes int
	Type            ExamType
	TotalMarks      int
	PassingMarks    *int
	IsOnline        bool
	ExamLink        string
	Instructions    string
	Status          ExamStatus
}

// ExamInput carries the editable fields of an exam
type ExamInput struct {
	Name            string
	Description     string
	CourseID        uuid.UUID
	ExamDate        time.Time
	DurationMinutes int
	Type            ExamType
	TotalMarks      int
	PassingMarks    *int
	IsOnline        bool
	ExamLink        string
	Instructions    string
}

// NewExam schedules an exam. The exam date must lie in the future.
func NewExam(centerID uuid.UUID, in ExamInput, now time.Time) (*Exam, error) {
	if err := validateExamInput(in); err != nil {
		return nil, err
	}
	if !in.ExamDate.After(now) {
		return nil, shared.NewInvalidInputError("Exam date must be in the future")
	}

	e := &Exam{
		CenterAggregateRoot: shared.NewCenterAggregateRoot(centerID, now),
		Status:              ExamStatusScheduled,
	}
	e.apply(in)
	return e, nil
}

// Update replaces the editable fields. Completed and cancelled exams are frozen.
func (e *Exam) Update(in ExamInput, now time.Time) error {
	if e.Status == ExamStatusCompleted || e.Status == ExamStatusCancelled {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot update exam in %s status", e.Status))
	}
	if err := validateExamInput(in); err != nil {
		return err
	}
	e.apply(in)
	e.Touch(now)
	e.IncrementVersion()
	return nil
}

// HasPassingMarks reports whether a pass threshold is configured
func (e *Exam) HasPassingMarks() bool {
	return e.PassingMarks != nil
}

// Start opens a scheduled or postponed exam
func (e *Exam) Start(now time.Time) error {
	if e.Status != ExamStatusScheduled && e.Status != ExamStatusPostponed {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot start exam in %s status", e.Status))
	}
	return e.transition(ExamStatusInProgress, now)
}

// Complete closes a running exam
func (e *Exam) Complete(now time.Time) error {
	if e.Status != ExamStatusInProgress {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot complete exam in %s status", e.Status))
	}
	return e.transition(ExamStatusCompleted, now)
}

// Cancel calls off an exam that has not completed
func (e *Exam) Cancel(now time.Time) error {
	if e.Status == ExamStatusCompleted || e.Status == ExamStatusCancelled {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot cancel exam in %s status", e.Status))
	}
	return e.transition(ExamStatusCancelled, now)
}

// Postpone moves a scheduled exam to a later date
func (e *Exam) Postpone(newDate, now time.Time) error {
	if e.Status != ExamStatusScheduled && e.Status != ExamStatusPostponed {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot postpone exam in %s status", e.Status))
	}
	if !newDate.After(e.ExamDate) {
		return shared.NewInvalidInputError("New exam date must be after the current exam date")
	}
	e.ExamDate = newDate
	return e.transition(ExamStatusPostponed, now)
}

// AcceptsResults reports whether marks may be recorded against the exam
func (e *Exam) AcceptsResults() bool {
	return e.Status == ExamStatusInProgress || e.Status == ExamStatusCompleted
}

func (e *Exam) transition(to ExamStatus, now time.Time) error {
	from := e.Status
	e.Status = to
	e.Touch(now)
	e.IncrementVersion()
	e.AddDomainEvent(NewExamStatusChangedEvent(e, from, now))
	return nil
}

func (e *Exam) apply(in ExamInput) {
	e.Name = strings.TrimSpace(in.Name)
	e.Description = in.Description
	e.CourseID = in.CourseID
	e.ExamDate = in.ExamDate
	e.DurationMinutes = in.DurationMinutes
	e.Type = in.Type
	e.TotalMarks = in.TotalMarks
	e.PassingMarks = in.PassingMarks
	e.IsOnline = in.IsOnline
	e.ExamLink = in.ExamLink
	e.Instructions = in.Instructions
}

func validateExamInput(in ExamInput) error {
	name := strings.TrimSpace(in.Name)
	if len(name) < 3 || len(name) > 200 {
		return shared.NewInvalidInputError("Exam name must be between 3 and 200 characters")
	}
	if len(in.Description) > 1000 {
		return shared.NewInvalidInputError("Description cannot exceed 1000 characters")
	}
	if in.CourseID == uuid.Nil {
		return shared.NewInvalidInputError("Course ID cannot be empty")
	}
	if in.ExamDate.IsZero() {
		return shared.NewInvalidInputError("Exam date is required")
	}
	if in.DurationMinutes <= 0 {
		return shared.NewInvalidInputError("Duration must be positive")
	}
	if !in.Type.IsValid() {
		return shared.NewInvalidInputError(fmt.Sprintf("Invalid exam type: %s", in.Type))
	}
	if in.TotalMarks <= 0 {
		return shared.NewInvalidInputError("Total marks must be positive")
	}
	if in.PassingMarks != nil && (*in.PassingMarks < 0 || *in.PassingMarks > in.TotalMarks) {
		return shared.NewInvalidInputError("Passing marks must be between 0 and total marks")
	}
	if in.IsOnline && strings.TrimSpace(in.ExamLink) == "" {
		return shared.NewInvalidInputError("Exam link is required for online exams")
	}
	return nil
}
