package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/shopspring/decimal"
)

// ExamModel is the persistence model for exam.Exam
type ExamModel struct {
	CenterAggregateModel
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	CourseID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExamDate        time.Time       `gorm:"not null;index"`
	DurationMinutes int             `gorm:"not null"`
	Type            exam.ExamType   `gorm:"type:varchar(20);not null"`
	TotalMarks      int             `gorm:"not null"`
	PassingMarks    *int
	IsOnline        bool            `gorm:"not null;default:false"`
	ExamLink        string          `gorm:"type:varchar(500)"`
	Instructions    string          `gorm:"type:text"`
	Status          exam.ExamStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index"`
}

// TableName returns the table name for GORM
func (ExamModel) TableName() string {
	return "exams"
}

// ToDomain converts the model to an exam aggregate
func (m *ExamModel) ToDomain() *exam.Exam {
	return &exam.Exam{
		CenterAggregateRoot: m.ToDomainCenterAggregateRoot(),
		Name:                m.Name,
		Description:         m.Description,
		CourseID:            m.CourseID,
		ExamDate:            m.ExamDate,
		DurationMinutes:     m.DurationMinutes,
		Type:                m.Type,
		TotalMarks:          m.TotalMarks,
		PassingMarks:        m.PassingMarks,
		IsOnline:            m.IsOnline,
		ExamLink:            m.ExamLink,
		Instructions:        m.Instructions,
		Status:              m.Status,
	}
}

// ExamModelFromDomain builds a model from an exam aggregate
func ExamModelFromDomain(e *exam.Exam) *ExamModel {
	m := &ExamModel{
		Name:            e.Name,
		Description:     e.Description,
		CourseID:        e.CourseID,
		ExamDate:        e.ExamDate,
		DurationMinutes: e.DurationMinutes,
		Type:            e.Type,
		TotalMarks:      e.TotalMarks,
		PassingMarks:    e.PassingMarks,
		IsOnline:        e.IsOnline,
		ExamLink:        e.ExamLink,
		Instructions:    e.Instructions,
		Status:          e.Status,
	}
	m.FromDomainCenterAggregateRoot(e.CenterAggregateRoot)
	return m
}

// ExamResultModel is the persistence model for exam.ExamResult.
// One row per (exam, student).
type ExamResultModel struct {
	CenterAggregateModel
	ExamID                uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_exam_result_exam_student,priority:1"`
	StudentID             uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_exam_result_exam_student,priority:2;index"`
	TotalMarks            int               `gorm:"not null"`
	ObtainedMarks         int               `gorm:"not null"`
	Percentage            decimal.Decimal   `gorm:"type:decimal(5,2);not null"`
	Grade                 exam.Grade        `gorm:"type:varchar(5);not null"`
	ResultStatus          exam.ResultStatus `gorm:"type:varchar(20);index"`
	Rank                  *int
	TotalStudents         *int
	ExamStartTime         *time.Time
	ExamEndTime           *time.Time
	TotalTimeTakenMinutes *int
	Remarks               string `gorm:"type:text"`
	EvaluatedBy           string `gorm:"type:varchar(100)"`
	EvaluationDate        *time.Time
	IsPublished           bool `gorm:"not null;default:false;index"`
	PublishedDate         *time.Time
}

// TableName returns the table name for GORM
func (ExamResultModel) TableName() string {
	return "exam_results"
}

// ToDomain converts the model to an exam result aggregate
func (m *ExamResultModel) ToDomain() *exam.ExamResult {
	return &exam.ExamResult{
		CenterAggregateRoot:   m.ToDomainCenterAggregateRoot(),
		ExamID:                m.ExamID,
		StudentID:             m.StudentID,
		TotalMarks:            m.TotalMarks,
		ObtainedMarks:         m.ObtainedMarks,
		Percentage:            m.Percentage,
		Grade:                 m.Grade,
		ResultStatus:          m.ResultStatus,
		Rank:                  m.Rank,
		TotalStudents:         m.TotalStudents,
		ExamStartTime:         m.ExamStartTime,
		ExamEndTime:           m.ExamEndTime,
		TotalTimeTakenMinutes: m.TotalTimeTakenMinutes,
		Remarks:               m.Remarks,
		EvaluatedBy:           m.EvaluatedBy,
		EvaluationDate:        m.EvaluationDate,
		IsPublished:           m.IsPublished,
		PublishedDate:         m.PublishedDate,
	}
}

// ExamResultModelFromDomain builds a model from an exam result aggregate
func ExamResultModelFromDomain(r *exam.ExamResult) *ExamResultModel {
	m := &ExamResultModel{
		ExamID:                r.ExamID,
		StudentID:             r.StudentID,
		TotalMarks:            r.TotalMarks,
		ObtainedMarks:         r.ObtainedMarks,
		Percentage:            r.Percentage,
		Grade:                 r.Grade,
		ResultStatus:          r.ResultStatus,
		Rank:                  r.Rank,
		TotalStudents:         r.TotalStudents,
		ExamStartTime:         r.ExamStartTime,
		ExamEndTime:           r.ExamEndTime,
		TotalTimeTakenMinutes: r.TotalTimeTakenMinutes,
		Remarks:               r.Remarks,
		EvaluatedBy:           r.EvaluatedBy,
		EvaluationDate:        r.EvaluationDate,
		IsPublished:           r.IsPublished,
		PublishedDate:         r.PublishedDate,
	}
	m.FromDomainCenterAggregateRoot(r.CenterAggregateRoot)
	return m
}
