package exam

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/shopspring/decimal"
)

// ExamRequest carries the editable fields of an exam
type ExamRequest struct {
	Name            string
	Description     string
	CourseID        uuid.UUID
	ExamDate        time.Time
	DurationMinutes int
	Type            exam.ExamType
	TotalMarks      int
	PassingMarks    *int
	IsOnline        bool
	ExamLink        string
	Instructions    string
}

func (r ExamRequest) input() exam.ExamInput {
	return exam.ExamInput{
		Name:            r.Name,
		Description:     r.Description,
		CourseID:        r.CourseID,
		ExamDate:        r.ExamDate,
		DurationMinutes: r.DurationMinutes,
		Type:            r.Type,
		TotalMarks:      r.TotalMarks,
		PassingMarks:    r.PassingMarks,
		IsOnline:        r.IsOnline,
		ExamLink:        r.ExamLink,
		Instructions:    r.Instructions,
	}
}

// ExamListFilter narrows exam listings
type ExamListFilter struct {
	CourseID *uuid.UUID
	Status   exam.ExamStatus
	Type     exam.ExamType
	Search   string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// ExamResponse is an exam as returned by the API
type ExamResponse struct {
	ID              uuid.UUID `json:"id"`
	CenterID        uuid.UUID `json:"center_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	CourseID        uuid.UUID `json:"course_id"`
	ExamDate        time.Time `json:"exam_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Type            string    `json:"type"`
	TotalMarks      int       `json:"total_marks"`
	PassingMarks    *int      `json:"passing_marks,omitempty"`
	IsOnline        bool      `json:"is_online"`
	ExamLink        string    `json:"exam_link,omitempty"`
	Instructions    string    `json:"instructions,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// ToExamResponse converts an exam
func ToExamResponse(e *exam.Exam) ExamResponse {
	return ExamResponse{
		ID:              e.ID,
		CenterID:        e.CenterID,
		Name:            e.Name,
		Description:     e.Description,
		CourseID:        e.CourseID,
		ExamDate:        e.ExamDate,
		DurationMinutes: e.DurationMinutes,
		Type:            string(e.Type),
		TotalMarks:      e.TotalMarks,
		PassingMarks:    e.PassingMarks,
		IsOnline:        e.IsOnline,
		ExamLink:        e.ExamLink,
		Instructions:    e.Instructions,
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.GetVersion(),
	}
}

// SubmitResultRequest records one student's marks
type SubmitResultRequest struct {
	StudentID     uuid.UUID
	ObtainedMarks int
	StartedAt     *time.Time
	FinishedAt    *time.Time
	Remarks       string
}

// ResultListFilter narrows result listings
type ResultListFilter struct {
	Status    exam.ResultStatus
	Published *bool
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
}

// ResultResponse is an exam result as returned by the API
type ResultResponse struct {
	ID                    uuid.UUID       `json:"id"`
	CenterID              uuid.UUID       `json:"center_id"`
	ExamID                uuid.UUID       `json:"exam_id"`
	StudentID             uuid.UUID       `json:"student_id"`
	TotalMarks            int             `json:"total_marks"`
	ObtainedMarks         int             `json:"obtained_marks"`
	Percentage            decimal.Decimal `json:"percentage"`
	Grade                 string          `json:"grade"`
	ResultStatus          string          `json:"result_status,omitempty"`
	Rank                  *int            `json:"rank,omitempty"`
	TotalStudents         *int            `json:"total_students,omitempty"`
	ExamStartTime         *time.Time      `json:"exam_start_time,omitempty"`
	ExamEndTime           *time.Time      `json:"exam_end_time,omitempty"`
	TotalTimeTakenMinutes *int            `json:"total_time_taken_minutes,omitempty"`
	Remarks               string          `json:"remarks,omitempty"`
	EvaluatedBy           string          `json:"evaluated_by,omitempty"`
	EvaluationDate        *time.Time      `json:"evaluation_date,omitempty"`
	IsPublished           bool            `json:"is_published"`
	PublishedDate         *time.Time      `json:"published_date,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	Version               int             `json:"version"`
}

// ToResultResponse converts a result
func ToResultResponse(r *exam.ExamResult) ResultResponse {
	return ResultResponse{
		ID:                    r.ID,
		CenterID:              r.CenterID,
		ExamID:                r.ExamID,
		StudentID:             r.StudentID,
		TotalMarks:            r.TotalMarks,
		ObtainedMarks:         r.ObtainedMarks,
		Percentage:            r.Percentage,
		Grade:                 string(r.Grade),
		ResultStatus:          string(r.ResultStatus),
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
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
		Version:               r.GetVersion(),
	}
}

func toResultResponses(results []*exam.ExamResult) []ResultResponse {
	out := make([]ResultResponse, len(results))
	for i, r := range results {
		out[i] = ToResultResponse(r)
	}
	return out
}
