package academic

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC)

func goCourse() CourseRequest {
	return CourseRequest{
		Code:               "go-101",
		Name:               "Go Fundamentals",
		DurationHours:      40,
		Fees:               decimal.NewFromInt(1200),
		DiscountPercentage: 25,
		MaxStudents:        30,
	}
}

func TestCourseService_Create(t *testing.T) {
	centerID := uuid.New()

	t.Run("normalises code and saves", func(t *testing.T) {
		repo := new(testutil.MockCourseRepository)
		repo.On("ExistsByCode", mock.Anything, centerID, "GO-101").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*academic.Course")).Return(nil)
		svc := NewCourseService(repo)
		svc.SetClock(shared.NewFixedClock(testNow))

		resp, err := svc.Create(context.Background(), centerID, goCourse())

		require.NoError(t, err)
		assert.Equal(t, "GO-101", resp.Code)
		assert.Equal(t, "900", resp.DiscountedFees.String())
		assert.Equal(t, testNow, resp.CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(testutil.MockCourseRepository)
		repo.On("ExistsByCode", mock.Anything, centerID, "GO-101").Return(true, nil)

		_, err := NewCourseService(repo).Create(context.Background(), centerID, goCourse())

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid discount never reaches the store", func(t *testing.T) {
		repo := new(testutil.MockCourseRepository)
		req := goCourse()
		req.DiscountPercentage = 120

		_, err := NewCourseService(repo).Create(context.Background(), centerID, req)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "ExistsByCode", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCourseService_Update_CodeChange(t *testing.T) {
	centerID := uuid.New()
	course, err := academic.NewCourse(centerID, goCourse().input(), testNow)
	require.NoError(t, err)

	repo := new(testutil.MockCourseRepository)
	repo.On("FindByIDForCenter", mock.Anything, centerID, course.ID).Return(course, nil)
	repo.On("ExistsByCode", mock.Anything, centerID, "GO-201").Return(true, nil)

	req := goCourse()
	req.Code = "GO-201"
	_, err = NewCourseService(repo).Update(context.Background(), centerID, course.ID, req)

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCourseService_Delete_NotFound(t *testing.T) {
	centerID := uuid.New()
	id := uuid.New()
	repo := new(testutil.MockCourseRepository)
	repo.On("FindByIDForCenter", mock.Anything, centerID, id).Return(nil, shared.NewNotFoundError("Course", id))

	err := NewCourseService(repo).Delete(context.Background(), centerID, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestStudentService(t *testing.T) {
	centerID := uuid.New()

	t.Run("create defaults to active", func(t *testing.T) {
		repo := new(testutil.MockStudentRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*academic.Student")).Return(nil)
		svc := NewStudentService(repo)
		svc.SetClock(shared.NewFixedClock(testNow))

		resp, err := svc.Create(context.Background(), centerID, StudentRequest{
			FirstName: "Ravi",
			LastName:  "Kumar",
			Email:     "Ravi.Kumar@Example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", resp.FullName)
		assert.Equal(t, "ravi.kumar@example.com", resp.Email)
		assert.Equal(t, string(academic.StudentStatusActive), resp.Status)
		assert.Equal(t, shared.DateOf(testNow), resp.EnrollmentDate)
	})

	t.Run("update bumps version", func(t *testing.T) {
		student, err := academic.NewStudent(centerID, academic.StudentInput{FirstName: "Ravi"}, testNow)
		require.NoError(t, err)
		repo := new(testutil.MockStudentRepository)
		repo.On("FindByIDForCenter", mock.Anything, centerID, student.ID).Return(student, nil)
		repo.On("Save", mock.Anything, student).Return(nil)

		resp, err := NewStudentService(repo).Update(context.Background(), centerID, student.ID, StudentRequest{
			FirstName: "Ravi",
			Status:    academic.StudentStatusGraduated,
		})

		require.NoError(t, err)
		assert.Equal(t, string(academic.StudentStatusGraduated), resp.Status)
		assert.Equal(t, 2, resp.Version)
	})

	t.Run("list passes pagination", func(t *testing.T) {
		repo := new(testutil.MockStudentRepository)
		repo.On("FindAllForCenter", mock.Anything, centerID, mock.MatchedBy(func(f academic.StudentFilter) bool {
			return f.Page == 2 && f.PageSize == 5 && f.OrderBy == "created_at" && f.Status == academic.StudentStatusActive
		})).Return([]academic.Student{}, int64(7), nil)

		items, total, err := NewStudentService(repo).List(context.Background(), centerID, StudentListFilter{
			Page:     2,
			PageSize: 5,
			Status:   academic.StudentStatusActive,
		})

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, int64(7), total)
	})
}
