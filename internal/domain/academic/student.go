package academic

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// StudentStatus represents the enrollment status of a student
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "ACTIVE"
	StudentStatusInactive  StudentStatus = "INACTIVE"
	StudentStatusGraduated StudentStatus = "GRADUATED"
	StudentStatusSuspended StudentStatus = "SUSPENDED"
)

// IsValid checks if the status is a known value
func (s StudentStatus) IsValid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusGraduated, StudentStatusSuspended:
		return true
	}
	return false
}

// String returns the string representation
func (s StudentStatus) String() string {
	return string(s)
}

// ParseStudentStatus converts a wire value into a StudentStatus
func ParseStudentStatus(s string) (StudentStatus, error) {
	status := StudentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown student status: %q", s))
	}
	return status, nil
}

// Student is a learner enrolled at a center
type Student struct {
	shared.CenterAggregateRoot
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	EnrollmentDate time.Time
	Status         StudentStatus
}

// StudentInput carries the mutable fields of a student
type StudentInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	EnrollmentDate time.Time
	Status         StudentStatus
}

// NewStudent creates a new student, ACTIVE unless a status is given
func NewStudent(centerID uuid.UUID, in StudentInput, now time.Time) (*Student, error) {
	if in.Status == "" {
		in.Status = StudentStatusActive
	}
	if in.EnrollmentDate.IsZero() {
		in.EnrollmentDate = shared.DateOf(now)
	}
	if err := validateStudentInput(in); err != nil {
		return nil, err
	}
	s := &Student{CenterAggregateRoot: shared.NewCenterAggregateRoot(centerID, now)}
	s.apply(in)
	return s, nil
}

// Update replaces the student's mutable fields
func (s *Student) Update(in StudentInput, now time.Time) error {
	if in.Status == "" {
		in.Status = s.Status
	}
	if in.EnrollmentDate.IsZero() {
		in.EnrollmentDate = s.EnrollmentDate
	}
	if err := validateStudentInput(in); err != nil {
		return err
	}
	s.apply(in)
	s.Touch(now)
	s.IncrementVersion()
	return nil
}

// FullName joins first and last name
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s *Student) apply(in StudentInput) {
	s.FirstName = strings.TrimSpace(in.FirstName)
	s.LastName = strings.TrimSpace(in.LastName)
	s.Email = strings.ToLower(strings.TrimSpace(in.Email))
	s.Phone = strings.TrimSpace(in.Phone)
	s.EnrollmentDate = shared.DateOf(in.EnrollmentDate)
	s.Status = in.Status
}

func validateStudentInput(in StudentInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return shared.NewInvalidInputError("First name cannot be empty")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return shared.NewInvalidInputError("Invalid email address")
		}
	}
	if !in.Status.IsValid() {
		return shared.NewInvalidInputError(fmt.Sprintf("Invalid student status: %s", in.Status))
	}
	return nil
}
