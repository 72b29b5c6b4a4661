package academic

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/shopspring/decimal"
)

// CourseRequest carries the fields of a course for create and update
type CourseRequest struct {
	Code               string
	Name               string
	Description        string
	DurationHours      int
	Fees               decimal.Decimal
	DiscountPercentage int
	MaxStudents        int
	IsPublished        bool
}

func (r CourseRequest) input() academic.CourseInput {
	return academic.CourseInput{
		Code:               r.Code,
		Name:               r.Name,
		Description:        r.Description,
		DurationHours:      r.DurationHours,
		Fees:               r.Fees,
		DiscountPercentage: r.DiscountPercentage,
		MaxStudents:        r.MaxStudents,
		IsPublished:        r.IsPublished,
	}
}

// CourseListFilter narrows course listings
type CourseListFilter struct {
	Search    string
	Published *bool
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
}

// CourseResponse is a course as returned by the API
type CourseResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CenterID           uuid.UUID       `json:"center_id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	DurationHours      int             `json:"duration_hours"`
	Fees               decimal.Decimal `json:"fees"`
	DiscountPercentage int             `json:"discount_percentage"`
	DiscountedFees     decimal.Decimal `json:"discounted_fees"`
	MaxStudents        int             `json:"max_students"`
	IsPublished        bool            `json:"is_published"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// ToCourseResponse converts a course
func ToCourseResponse(c *academic.Course) CourseResponse {
	return CourseResponse{
		ID:                 c.ID,
		CenterID:           c.CenterID,
		Code:               c.Code,
		Name:               c.Name,
		Description:        c.Description,
		DurationHours:      c.DurationHours,
		Fees:               c.Fees,
		DiscountPercentage: c.DiscountPercentage,
		DiscountedFees:     c.DiscountedFees(),
		MaxStudents:        c.MaxStudents,
		IsPublished:        c.IsPublished,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
		Version:            c.GetVersion(),
	}
}

// StudentRequest carries the fields of a student for create and update
type StudentRequest struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	EnrollmentDate time.Time
	Status         academic.StudentStatus
}

func (r StudentRequest) input() academic.StudentInput {
	return academic.StudentInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		EnrollmentDate: r.EnrollmentDate,
		Status:         r.Status,
	}
}

// StudentListFilter narrows student listings
type StudentListFilter struct {
	Search   string
	Status   academic.StudentStatus
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// StudentResponse is a student as returned by the API
type StudentResponse struct {
	ID             uuid.UUID `json:"id"`
	CenterID       uuid.UUID `json:"center_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

// ToStudentResponse converts a student
func ToStudentResponse(s *academic.Student) StudentResponse {
	return StudentResponse{
		ID:             s.ID,
		CenterID:       s.CenterID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		FullName:       s.FullName(),
		Email:          s.Email,
		Phone:          s.Phone,
		EnrollmentDate: s.EnrollmentDate,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Version:        s.GetVersion(),
	}
}
