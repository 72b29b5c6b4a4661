package exam

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type names
const (
	AggregateTypeExam       = "Exam"
	AggregateTypeExamResult = "ExamResult"
)

// Event types
const (
	EventTypeExamStatusChanged = "ExamStatusChanged"
	EventTypeResultRecorded    = "ExamResultRecorded"
	EventTypeResultPublished   = "ExamResultPublished"
)

// ExamStatusChangedEvent is raised on every exam transition
type ExamStatusChangedEvent struct {
	shared.BaseDomainEvent
	CourseID   uuid.UUID  `json:"course_id"`
	FromStatus ExamStatus `json:"from_status"`
	ToStatus   ExamStatus `json:"to_status"`
}

// NewExamStatusChangedEvent creates an ExamStatusChangedEvent
func NewExamStatusChangedEvent(e *Exam, from ExamStatus, at time.Time) *ExamStatusChangedEvent {
	return &ExamStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExamStatusChanged, AggregateTypeExam, e.ID, e.CenterID, at),
		CourseID:        e.CourseID,
		FromStatus:      from,
		ToStatus:        e.Status,
	}
}

// ResultRecordedEvent is raised when marks are submitted
type ResultRecordedEvent struct {
	shared.BaseDomainEvent
	ExamID       uuid.UUID       `json:"exam_id"`
	StudentID    uuid.UUID       `json:"student_id"`
	Percentage   decimal.Decimal `json:"percentage"`
	Grade        Grade           `json:"grade"`
	ResultStatus ResultStatus    `json:"result_status"`
}

// NewResultRecordedEvent creates a ResultRecordedEvent
func NewResultRecordedEvent(r *ExamResult, at time.Time) *ResultRecordedEvent {
	return &ResultRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResultRecorded, AggregateTypeExamResult, r.ID, r.CenterID, at),
		ExamID:          r.ExamID,
		StudentID:       r.StudentID,
		Percentage:      r.Percentage,
		Grade:           r.Grade,
		ResultStatus:    r.ResultStatus,
	}
}

// ResultPublishedEvent is raised the first time a result is published
type ResultPublishedEvent struct {
	shared.BaseDomainEvent
	ExamID       uuid.UUID    `json:"exam_id"`
	StudentID    uuid.UUID    `json:"student_id"`
	Grade        Grade        `json:"grade"`
	ResultStatus ResultStatus `json:"result_status"`
}

// NewResultPublishedEvent creates a ResultPublishedEvent
func NewResultPublishedEvent(r *ExamResult, at time.Time) *ResultPublishedEvent {
	return &ResultPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResultPublished, AggregateTypeExamResult, r.ID, r.CenterID, at),
		ExamID:          r.ExamID,
		StudentID:       r.StudentID,
		Grade:           r.Grade,
		ResultStatus:    r.ResultStatus,
	}
}
