package models

import (
	"time"

	"github.com/institute/backend/internal/domain/academic"
	"github.com/shopspring/decimal"
)

// CourseModel is the persistence model for academic.Course
type CourseModel struct {
	CenterAggregateModel
	Code               string          `gorm:"type:varchar(50);not null;index"`
	Name               string          `gorm:"type:varchar(200);not null"`
	Description        string          `gorm:"type:text"`
	DurationHours      int             `gorm:"not null;default:0"`
	Fees               decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercentage int             `gorm:"not null;default:0"`
	MaxStudents        int             `gorm:"not null;default:0"`
	IsPublished        bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (CourseModel) TableName() string {
	return "courses"
}

// ToDomain converts the model to a course aggregate
func (m *CourseModel) ToDomain() *academic.Course {
	return &academic.Course{
		CenterAggregateRoot: m.ToDomainCenterAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		DurationHours:       m.DurationHours,
		Fees:                m.Fees,
		DiscountPercentage:  m.DiscountPercentage,
		MaxStudents:         m.MaxStudents,
		IsPublished:         m.IsPublished,
	}
}

// CourseModelFromDomain builds a model from a course aggregate
func CourseModelFromDomain(c *academic.Course) *CourseModel {
	m := &CourseModel{
		Code:               c.Code,
		Name:               c.Name,
		Description:        c.Description,
		DurationHours:      c.DurationHours,
		Fees:               c.Fees,
		DiscountPercentage: c.DiscountPercentage,
		MaxStudents:        c.MaxStudents,
		IsPublished:        c.IsPublished,
	}
	m.FromDomainCenterAggregateRoot(c.CenterAggregateRoot)
	return m
}

// StudentModel is the persistence model for academic.Student
type StudentModel struct {
	CenterAggregateModel
	FirstName      string                 `gorm:"type:varchar(100);not null"`
	LastName       string                 `gorm:"type:varchar(100);not null"`
	Email          string                 `gorm:"type:varchar(200);index"`
	Phone          string                 `gorm:"type:varchar(30)"`
	EnrollmentDate time.Time              `gorm:"not null"`
	Status         academic.StudentStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the model to a student aggregate
func (m *StudentModel) ToDomain() *academic.Student {
	return &academic.Student{
		CenterAggregateRoot: m.ToDomainCenterAggregateRoot(),
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		Phone:               m.Phone,
		EnrollmentDate:      m.EnrollmentDate,
		Status:              m.Status,
	}
}

// StudentModelFromDomain builds a model from a student aggregate
func StudentModelFromDomain(s *academic.Student) *StudentModel {
	m := &StudentModel{
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		EnrollmentDate: s.EnrollmentDate,
		Status:         s.Status,
	}
	m.FromDomainCenterAggregateRoot(s.CenterAggregateRoot)
	return m
}
