package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	examapp "github.com/institute/backend/internal/application/exam"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// ExamHandler handles exam API endpoints
type ExamHandler struct {
	BaseHandler
	examService *examapp.ExamService
}

// NewExamHandler creates a new ExamHandler
func NewExamHandler(examService *examapp.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ExamRequest represents a request to create or replace an exam
// @Description passing_marks may be omitted. Results are then recorded without a status.
type ExamRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200" example:"Mid-term"`
	Description     string `json:"description" binding:"max=2000" example:"Chapters 1-5"`
	CourseID        string `json:"course_id" binding:"required,uuid" example:"1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"`
	ExamDate        string `json:"exam_date" binding:"required" example:"2026-05-10T09:00:00Z"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0" example:"90"`
	Type            string `json:"type" binding:"required" example:"MCQ"`
	TotalMarks      int    `json:"total_marks" binding:"required,min=1" example:"100"`
	PassingMarks    *int   `json:"passing_marks" binding:"omitempty,min=0" example:"40"`
	IsOnline        bool   `json:"is_online" example:"false"`
	ExamLink        string `json:"exam_link" binding:"omitempty,url,max=500" example:"https://meet.example.com/exam"`
	Instructions    string `json:"instructions" binding:"max=4000" example:"Bring a calculator"`
}

// PostponeExamRequest represents a request to move an exam
type PostponeExamRequest struct {
	NewDate string `json:"new_date" binding:"required" example:"2026-05-17T09:00:00Z"`
}

// ExamListQuery represents exam list query parameters
type ExamListQuery struct {
	dto.ListRequest
	CourseID string `form:"course_id"`
	Status   string `form:"status"`
	Type     string `form:"type"`
}

func (h *ExamHandler) toApp(c *gin.Context, req ExamRequest) (examapp.ExamRequest, bool) {
	out := examapp.ExamRequest{
		Name:            req.Name,
		Description:     req.Description,
		CourseID:        uuid.MustParse(req.CourseID),
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		PassingMarks:    req.PassingMarks,
		IsOnline:        req.IsOnline,
		ExamLink:        req.ExamLink,
		Instructions:    req.Instructions,
	}
	examDate, err := parseTime(req.ExamDate)
	if err != nil {
		h.invalidInput(c, "Invalid exam_date")
		return out, false
	}
	out.ExamDate = examDate
	if out.Type, err = exam.ParseExamType(req.Type); err != nil {
		h.HandleDomainError(c, err)
		return out, false
	}
	return out, true
}

// Create godoc
// @ID           createExam
// @Summary      Schedule an exam
// @Tags         exams
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string      false "Center ID"
// @Param        request     body     ExamRequest true  "Exam"
// @Success      201         {object} APIResponse[examapp.ExamResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /exams [post]
func (h *ExamHandler) Create(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var req ExamRequest
	if !h.bindJSON(c, &req) {
		return
	}
	appReq, ok := h.toApp(c, req)
	if !ok {
		return
	}

	e, err := h.examService.Create(c.Request.Context(), centerID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, e)
}

// GetByID godoc
// @ID           getExam
// @Summary      Get an exam
// @Tags         exams
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Exam ID" format(uuid)
// @Success      200         {object} APIResponse[examapp.ExamResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /exams/{id} [get]
func (h *ExamHandler) GetByID(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}

	e, err := h.examService.GetByID(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, e)
}

// List godoc
// @ID           listExams
// @Summary      List exams
// @Tags         exams
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        course_id   query    string false "Course ID" format(uuid)
// @Param        status      query    string false "Exam status" Enums(SCHEDULED, IN_PROGRESS, COMPLETED, CANCELLED, POSTPONED)
// @Param        type        query    string false "Exam type"   Enums(MCQ, DESCRIPTIVE, MIXED, PRACTICAL, ORAL, PROJECT)
// @Param        search      query    string false "Search term"
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]examapp.ExamResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /exams [get]
func (h *ExamHandler) List(c *gin.Context) {
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	exams, total, err := h.examService.List(c.Request.Context(), centerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, exams, total, filter.Page, filter.PageSize)
}

// ListByCourse godoc
// @ID           listExamsByCourse
// @Summary      List a course's exams
// @Tags         exams
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        courseId    path     string true  "Course ID" format(uuid)
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]examapp.ExamResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /exams/course/{courseId} [get]
func (h *ExamHandler) ListByCourse(c *gin.Context) {
	courseID, ok := h.uuidParam(c, "courseId", "course")
	if !ok {
		return
	}
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	exams, total, err := h.examService.ListByCourse(c.Request.Context(), centerID, courseID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, exams, total, filter.Page, filter.PageSize)
}

func (h *ExamHandler) listFilter(c *gin.Context) (uuid.UUID, examapp.ExamListFilter, bool) {
	var filter examapp.ExamListFilter
	centerID, ok := h.center(c)
	if !ok {
		return centerID, filter, false
	}
	var q ExamListQuery
	if !h.bindQuery(c, &q) {
		return centerID, filter, false
	}
	q.Normalize()

	filter = examapp.ExamListFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	var err error
	if filter.CourseID, err = optionalUUID(q.CourseID); err != nil {
		h.invalidInput(c, "Invalid course_id")
		return centerID, filter, false
	}
	if q.Status != "" {
		if filter.Status, err = exam.ParseExamStatus(q.Status); err != nil {
			h.HandleDomainError(c, err)
			return centerID, filter, false
		}
	}
	if q.Type != "" {
		if filter.Type, err = exam.ParseExamType(q.Type); err != nil {
			h.HandleDomainError(c, err)
			return centerID, filter, false
		}
	}
	return centerID, filter, true
}

// Update godoc
// @ID           updateExam
// @Summary      Update an exam
// @Tags         exams
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string      false "Center ID"
// @Param        id          path     string      true  "Exam ID" format(uuid)
// @Param        request     body     ExamRequest true  "Exam"
// @Success      200         {object} APIResponse[examapp.ExamResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /exams/{id} [put]
func (h *ExamHandler) Update(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}
	var req ExamRequest
	if !h.bindJSON(c, &req) {
		return
	}
	appReq, ok := h.toApp(c, req)
	if !ok {
		return
	}

	e, err := h.examService.Update(c.Request.Context(), centerID, id, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, e)
}

// Delete godoc
// @ID           deleteExam
// @Summary      Delete an exam
// @Tags         exams
// @Param        X-Center-ID header string false "Center ID"
// @Param        id          path   string true  "Exam ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /exams/{id} [delete]
func (h *ExamHandler) Delete(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), centerID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Start godoc
// @ID           startExam
// @Summary      Start an exam
// @Tags         exams
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Exam ID" format(uuid)
// @Success      200         {object} APIResponse[examapp.ExamResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /exams/{id}/start [post]
func (h *ExamHandler) Start(c *gin.Context) {
	h.transition(c, h.examService.Start)
}

// Complete godoc
// @ID           completeExam
// @Summary      Complete an exam
// @Tags         exams
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Exam ID" format(uuid)
// @Success      200         {object} APIResponse[examapp.ExamResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /exams/{id}/complete [post]
func (h *ExamHandler) Complete(c *gin.Context) {
	h.transition(c, h.examService.Complete)
}

// Cancel godoc
// @ID           cancelExam
// @Summary      Cancel an exam
// @Tags         exams
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Exam ID" format(uuid)
// @Success      200         {object} APIResponse[examapp.ExamResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /exams/{id}/cancel [post]
func (h *ExamHandler) Cancel(c *gin.Context) {
	h.transition(c, h.examService.Cancel)
}

func (h *ExamHandler) transition(c *gin.Context, fn func(ctx context.Context, centerID, id uuid.UUID) (*examapp.ExamResponse, error)) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}

	e, err := fn(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, e)
}

// Postpone godoc
// @ID           postponeExam
// @Summary      Postpone an exam
// @Tags         exams
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string              false "Center ID"
// @Param        id          path     string              true  "Exam ID" format(uuid)
// @Param        request     body     PostponeExamRequest true  "New date"
// @Success      200         {object} APIResponse[examapp.ExamResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /exams/{id}/postpone [post]
func (h *ExamHandler) Postpone(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}
	var req PostponeExamRequest
	if !h.bindJSON(c, &req) {
		return
	}
	newDate, err := parseTime(req.NewDate)
	if err != nil {
		h.invalidInput(c, "Invalid new_date")
		return
	}

	e, err := h.examService.Postpone(c.Request.Context(), centerID, id, newDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, e)
}
