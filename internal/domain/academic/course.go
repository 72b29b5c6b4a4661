package academic

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Course is a billable course offered by a center
type Course struct {
	shared.CenterAggregateRoot
	Code               string
	Name               string
	Description        string
	DurationHours      int
	Fees               decimal.Decimal
	DiscountPercentage int
	MaxStudents        int
	IsPublished        bool
}

// CourseInput carries the mutable fields of a course
type CourseInput struct {
	Code               string
	Name               string
	Description        string
	DurationHours      int
	Fees               decimal.Decimal
	DiscountPercentage int
	MaxStudents        int
	IsPublished        bool
}

// NewCourse creates a new course
func NewCourse(centerID uuid.UUID, in CourseInput, now time.Time) (*Course, error) {
	if err := validateCourseInput(in); err != nil {
		return nil, err
	}
	c := &Course{CenterAggregateRoot: shared.NewCenterAggregateRoot(centerID, now)}
	c.apply(in)
	return c, nil
}

// Update replaces the course's mutable fields
func (c *Course) Update(in CourseInput, now time.Time) error {
	if err := validateCourseInput(in); err != nil {
		return err
	}
	c.apply(in)
	c.Touch(now)
	c.IncrementVersion()
	return nil
}

// DiscountedFees returns fees reduced by the course discount percentage
func (c *Course) DiscountedFees() decimal.Decimal {
	if c.DiscountPercentage <= 0 {
		return c.Fees
	}
	factor := decimal.NewFromInt(int64(100 - c.DiscountPercentage))
	return c.Fees.Mul(factor).Div(decimal.NewFromInt(100)).Round(2)
}

func (c *Course) apply(in CourseInput) {
	c.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.DurationHours = in.DurationHours
	c.Fees = in.Fees
	c.DiscountPercentage = in.DiscountPercentage
	c.MaxStudents = in.MaxStudents
	c.IsPublished = in.IsPublished
}

func validateCourseInput(in CourseInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return shared.NewInvalidInputError("Course code cannot be empty")
	}
	if len(in.Code) > 50 {
		return shared.NewInvalidInputError("Course code cannot exceed 50 characters")
	}
	if strings.TrimSpace(in.Name) == "" {
		return shared.NewInvalidInputError("Course name cannot be empty")
	}
	if in.Fees.IsNegative() {
		return shared.NewInvalidInputError("Course fees cannot be negative")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		return shared.NewInvalidInputError("Discount percentage must be between 0 and 100")
	}
	if in.DurationHours < 0 {
		return shared.NewInvalidInputError("Duration cannot be negative")
	}
	if in.MaxStudents < 0 {
		return shared.NewInvalidInputError("Max students cannot be negative")
	}
	return nil
}
