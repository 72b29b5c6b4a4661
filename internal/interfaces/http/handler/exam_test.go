package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	academicapp "github.com/institute/backend/internal/application/academic"
	examapp "github.com/institute/backend/internal/application/exam"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

func (a *testAPI) createExam(courseID uuid.UUID, passingMarks *int) examapp.ExamResponse {
	a.t.Helper()
	body := map[string]any{
		"name":             "Mid-term",
		"course_id":        courseID.String(),
		"exam_date":        "2026-05-10T09:00:00Z",
		"duration_minutes": 90,
		"type":             "mcq",
		"total_marks":      100,
	}
	if passingMarks != nil {
		body["passing_marks"] = *passingMarks
	}
	w := a.do(http.MethodPost, "/exams", body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[examapp.ExamResponse](a.t, w).Data
}

func (a *testAPI) createStudent(first, email string) uuid.UUID {
	a.t.Helper()
	w := a.do(http.MethodPost, "/students", map[string]any{"first_name": first, "email": email})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[academicapp.StudentResponse](a.t, w).Data.ID
}

func (a *testAPI) submitResult(examID, studentID uuid.UUID, marks int) examapp.ResultResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/exams/"+examID.String()+"/submit", map[string]any{
		"student_id":     studentID.String(),
		"obtained_marks": marks,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[examapp.ResultResponse](a.t, w).Data
}

func intPtr(v int) *int { return &v }

func TestExamHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t)
	courseID, _ := api.seedCourseAndStudent()
	e := api.createExam(courseID, intPtr(40))
	assert.Equal(t, "SCHEDULED", e.Status)
	assert.Equal(t, "MCQ", e.Type)
	path := "/exams/" + e.ID.String()

	w := api.do(http.MethodPost, path+"/complete", nil)
	assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

	w = api.do(http.MethodPost, path+"/postpone", map[string]any{"new_date": "2026-05-01"})
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)

	w = api.do(http.MethodPost, path+"/postpone", map[string]any{"new_date": "2026-05-17T09:00:00Z"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	postponed := decodeData[examapp.ExamResponse](t, w).Data
	assert.Equal(t, "POSTPONED", postponed.Status)
	assert.Equal(t, 17, postponed.ExamDate.Day())

	w = api.do(http.MethodPost, path+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IN_PROGRESS", decodeData[examapp.ExamResponse](t, w).Data.Status)

	w = api.do(http.MethodPost, path+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETED", decodeData[examapp.ExamResponse](t, w).Data.Status)

	w = api.do(http.MethodPost, path+"/cancel", nil)
	assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
}

func TestExamHandler_CreateAndList(t *testing.T) {
	api := newTestAPI(t)
	courseID, _ := api.seedCourseAndStudent()

	t.Run("unknown type", func(t *testing.T) {
		w := api.do(http.MethodPost, "/exams", map[string]any{
			"name":        "Quiz",
			"course_id":   courseID.String(),
			"exam_date":   "2026-05-10",
			"type":        "ESSAY",
			"total_marks": 10,
		})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("passing marks above total", func(t *testing.T) {
		w := api.do(http.MethodPost, "/exams", map[string]any{
			"name":          "Quiz",
			"course_id":     courseID.String(),
			"exam_date":     "2026-05-10",
			"type":          "ORAL",
			"total_marks":   10,
			"passing_marks": 11,
		})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("unknown course", func(t *testing.T) {
		w := api.do(http.MethodPost, "/exams", map[string]any{
			"name":        "Quiz",
			"course_id":   uuid.NewString(),
			"exam_date":   "2026-05-10",
			"type":        "ORAL",
			"total_marks": 10,
		})
		assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("list by course and status", func(t *testing.T) {
		first := api.createExam(courseID, nil)
		api.createExam(courseID, nil)
		w := api.do(http.MethodPost, "/exams/"+first.ID.String()+"/cancel", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(http.MethodGet, "/exams/course/"+courseID.String()+"?status=SCHEDULED", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeData[[]examapp.ExamResponse](t, w)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(1), resp.Meta.Total)

		w = api.do(http.MethodGet, "/exams?type=oral", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeData[[]examapp.ExamResponse](t, w).Data)
	})

	t.Run("update then delete", func(t *testing.T) {
		e := api.createExam(courseID, nil)
		w := api.do(http.MethodPut, "/exams/"+e.ID.String(), map[string]any{
			"name":             "Final",
			"course_id":        courseID.String(),
			"exam_date":        "2026-06-01",
			"duration_minutes": 120,
			"type":             "PRACTICAL",
			"total_marks":      50,
			"passing_marks":    20,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decodeData[examapp.ExamResponse](t, w).Data
		assert.Equal(t, "Final", updated.Name)
		require.NotNil(t, updated.PassingMarks)
		assert.Equal(t, 20, *updated.PassingMarks)

		w = api.do(http.MethodDelete, "/exams/"+e.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestResultHandler(t *testing.T) {
	api := newTestAPI(t)
	courseID, meera := api.seedCourseAndStudent()
	ravi := api.createStudent("Ravi", "ravi@example.com")
	asha := api.createStudent("Asha", "asha@example.com")
	kiran := api.createStudent("Kiran", "kiran@example.com")

	e := api.createExam(courseID, intPtr(40))
	examPath := "/exams/" + e.ID.String()

	w := api.do(http.MethodPost, examPath+"/submit", map[string]any{"student_id": meera.String(), "obtained_marks": 50})
	assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

	w = api.do(http.MethodPost, examPath+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	first := api.submitResult(e.ID, meera, 86)
	assert.True(t, decimal.NewFromInt(86).Equal(first.Percentage))
	assert.Equal(t, "A", first.Grade)
	assert.Equal(t, "PASS", first.ResultStatus)
	api.submitResult(e.ID, ravi, 86)
	api.submitResult(e.ID, asha, 35)
	absent := api.submitResult(e.ID, kiran, 0)

	t.Run("duplicate submission", func(t *testing.T) {
		w := api.do(http.MethodPost, examPath+"/submit", map[string]any{"student_id": meera.String(), "obtained_marks": 10})
		assertError(t, w, http.StatusConflict, dto.ErrCodeConflict)
	})

	t.Run("marks above total", func(t *testing.T) {
		other := api.createStudent("Dev", "dev@example.com")
		w := api.do(http.MethodPost, examPath+"/submit", map[string]any{"student_id": other.String(), "obtained_marks": 101})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("finish before start", func(t *testing.T) {
		other := api.createStudent("Isha", "isha@example.com")
		w := api.do(http.MethodPost, examPath+"/submit", map[string]any{
			"student_id":     other.String(),
			"obtained_marks": 10,
			"started_at":     "2026-05-10T10:00:00Z",
			"finished_at":    "2026-05-10T09:00:00Z",
		})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("mark absent", func(t *testing.T) {
		w := api.do(http.MethodPost, "/exams/results/"+absent.ID.String()+"/absent", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "ABSENT", decodeData[examapp.ResultResponse](t, w).Data.ResultStatus)
	})

	t.Run("evaluate ranks ties together", func(t *testing.T) {
		w := api.do(http.MethodPost, examPath+"/evaluate", map[string]any{"evaluated_by": "Dr. Rao"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		results := decodeData[[]examapp.ResultResponse](t, w).Data

		ranks := map[uuid.UUID]*int{}
		for _, r := range results {
			ranks[r.StudentID] = r.Rank
			require.NotNil(t, r.TotalStudents)
			assert.Equal(t, 3, *r.TotalStudents)
		}
		require.NotNil(t, ranks[meera])
		require.NotNil(t, ranks[ravi])
		require.NotNil(t, ranks[asha])
		assert.Equal(t, 1, *ranks[meera])
		assert.Equal(t, 1, *ranks[ravi])
		assert.Equal(t, 3, *ranks[asha])
		assert.Nil(t, ranks[kiran])
	})

	t.Run("list by exam filters status", func(t *testing.T) {
		w := api.do(http.MethodGet, examPath+"/results?status=FAIL", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		results := decodeData[[]examapp.ResultResponse](t, w).Data
		require.Len(t, results, 1)
		assert.Equal(t, asha, results[0].StudentID)
		assert.Equal(t, "F", results[0].Grade)
	})

	t.Run("publish all then one", func(t *testing.T) {
		w := api.do(http.MethodPost, examPath+"/results/publish", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, int64(4), decodeData[CountData](t, w).Data.Count)

		w = api.do(http.MethodPost, examPath+"/results/publish", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(0), decodeData[CountData](t, w).Data.Count)

		w = api.do(http.MethodPost, "/exams/results/"+first.ID.String()+"/publish", nil)
		require.Equal(t, http.StatusOK, w.Code)
		published := decodeData[examapp.ResultResponse](t, w).Data
		assert.True(t, published.IsPublished)
		require.NotNil(t, published.PublishedDate)
		assert.True(t, published.PublishedDate.Equal(testNow))
	})

	t.Run("published results are frozen", func(t *testing.T) {
		w := api.do(http.MethodPost, "/exams/results/"+first.ID.String()+"/disqualify", map[string]any{"reason": "Copying"})
		assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

		w = api.do(http.MethodPost, "/exams/results/"+first.ID.String()+"/disqualify", map[string]any{})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("list by student", func(t *testing.T) {
		w := api.do(http.MethodGet, "/exams/results/student/"+meera.String()+"?published=true", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, decodeData[[]examapp.ResultResponse](t, w).Data, 1)

		w = api.do(http.MethodGet, "/exams/results/"+uuid.NewString(), nil)
		assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("exam with results cannot be deleted", func(t *testing.T) {
		w := api.do(http.MethodDelete, examPath, nil)
		assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
	})
}

func TestResultHandler_EvaluateWithoutPassingMarks(t *testing.T) {
	api := newTestAPI(t)
	courseID, studentID := api.seedCourseAndStudent()
	e := api.createExam(courseID, nil)

	w := api.do(http.MethodPost, "/exams/"+e.ID.String()+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	r := api.submitResult(e.ID, studentID, 55)
	assert.Empty(t, r.ResultStatus)
	assert.Equal(t, "C+", r.Grade)

	w = api.do(http.MethodPost, "/exams/"+e.ID.String()+"/evaluate", nil)
	assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
}
