package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	examapp "github.com/institute/backend/internal/application/exam"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// ResultHandler handles exam result API endpoints
type ResultHandler struct {
	BaseHandler
	resultService *examapp.ResultService
}

// NewResultHandler creates a new ResultHandler
func NewResultHandler(resultService *examapp.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// SubmitResultRequest represents one student's marks for an exam
type SubmitResultRequest struct {
	StudentID     string  `json:"student_id" binding:"required,uuid" example:"9b2f3c1e-8a4d-4c7e-9f1a-2b3c4d5e6f70"`
	ObtainedMarks int     `json:"obtained_marks" binding:"min=0" example:"72"`
	StartedAt     *string `json:"started_at" example:"2026-05-10T09:00:00Z"`
	FinishedAt    *string `json:"finished_at" example:"2026-05-10T10:25:00Z"`
	Remarks       string  `json:"remarks" binding:"max=1000" example:"Good attempt"`
}

// EvaluateExamRequest names the evaluator
type EvaluateExamRequest struct {
	EvaluatedBy string `json:"evaluated_by" binding:"max=200" example:"Dr. Rao"`
}

// DisqualifyResultRequest carries the disqualification reason
type DisqualifyResultRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500" example:"Use of unfair means"`
}

// ResultListQuery represents result list query parameters
type ResultListQuery struct {
	dto.ListRequest
	Status    string `form:"status"`
	Published *bool  `form:"published"`
}

// Submit godoc
// @ID           submitExamResult
// @Summary      Record a result
// @Description  One result per student per exam. Percentage and grade are computed on entry.
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string              false "Center ID"
// @Param        id          path     string              true  "Exam ID" format(uuid)
// @Param        request     body     SubmitResultRequest true  "Marks"
// @Success      201         {object} APIResponse[examapp.ResultResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      409         {object} ErrorResponse
// @Router       /exams/{id}/submit [post]
func (h *ResultHandler) Submit(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	examID, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}
	var req SubmitResultRequest
	if !h.bindJSON(c, &req) {
		return
	}
	startedAt, err := optionalTime(req.StartedAt)
	if err != nil {
		h.invalidInput(c, "Invalid started_at")
		return
	}
	finishedAt, err := optionalTime(req.FinishedAt)
	if err != nil {
		h.invalidInput(c, "Invalid finished_at")
		return
	}

	result, err := h.resultService.Submit(c.Request.Context(), centerID, examID, examapp.SubmitResultRequest{
		StudentID:     uuid.MustParse(req.StudentID),
		ObtainedMarks: req.ObtainedMarks,
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
		Remarks:       req.Remarks,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getExamResult
// @Summary      Get a result
// @Tags         results
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        resultId    path     string true  "Result ID" format(uuid)
// @Success      200         {object} APIResponse[examapp.ResultResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /exams/results/{resultId} [get]
func (h *ResultHandler) GetByID(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "resultId", "result")
	if !ok {
		return
	}

	result, err := h.resultService.GetByID(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// ListByExam godoc
// @ID           listExamResults
// @Summary      List an exam's results
// @Tags         results
// @Produce      json
// @Param        X-Center-ID header   string  false "Center ID"
// @Param        id          path     string  true  "Exam ID" format(uuid)
// @Param        status      query    string  false "Result status" Enums(PASS, FAIL, ABSENT, DISQUALIFIED)
// @Param        published   query    boolean false "Published flag"
// @Param        page        query    int     false "Page number" default(1)
// @Param        page_size   query    int     false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]examapp.ResultResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /exams/{id}/results [get]
func (h *ResultHandler) ListByExam(c *gin.Context) {
	examID, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	results, total, err := h.resultService.ListByExam(c.Request.Context(), centerID, examID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// ListByStudent godoc
// @ID           listStudentResults
// @Summary      List a student's results
// @Tags         results
// @Produce      json
// @Param        X-Center-ID header   string  false "Center ID"
// @Param        studentId   path     string  true  "Student ID" format(uuid)
// @Param        published   query    boolean false "Published flag"
// @Param        page        query    int     false "Page number" default(1)
// @Param        page_size   query    int     false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]examapp.ResultResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /exams/results/student/{studentId} [get]
func (h *ResultHandler) ListByStudent(c *gin.Context) {
	studentID, ok := h.uuidParam(c, "studentId", "student")
	if !ok {
		return
	}
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	results, total, err := h.resultService.ListByStudent(c.Request.Context(), centerID, studentID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

func (h *ResultHandler) listFilter(c *gin.Context) (uuid.UUID, examapp.ResultListFilter, bool) {
	var filter examapp.ResultListFilter
	centerID, ok := h.center(c)
	if !ok {
		return centerID, filter, false
	}
	var q ResultListQuery
	if !h.bindQuery(c, &q) {
		return centerID, filter, false
	}
	q.Normalize()

	filter = examapp.ResultListFilter{
		Published: q.Published,
		Page:      q.Page,
		PageSize:  q.PageSize,
		OrderBy:   q.OrderBy,
		OrderDir:  q.OrderDir,
	}
	if q.Status != "" {
		status, err := exam.ParseResultStatus(q.Status)
		if err != nil {
			h.HandleDomainError(c, err)
			return centerID, filter, false
		}
		filter.Status = status
	}
	return centerID, filter, true
}

// Evaluate godoc
// @ID           evaluateExam
// @Summary      Evaluate an exam
// @Description  Re-derives pass/fail for every result and assigns ranks. Requires passing marks on the exam.
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string              false "Center ID"
// @Param        id          path     string              true  "Exam ID" format(uuid)
// @Param        request     body     EvaluateExamRequest false "Evaluator"
// @Success      200         {object} APIResponse[[]examapp.ResultResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /exams/{id}/evaluate [post]
func (h *ResultHandler) Evaluate(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	examID, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}
	var req EvaluateExamRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	results, err := h.resultService.Evaluate(c.Request.Context(), centerID, examID, req.EvaluatedBy)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, results)
}

// PublishAll godoc
// @ID           publishExamResults
// @Summary      Publish every result of an exam
// @Tags         results
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Exam ID" format(uuid)
// @Success      200         {object} APIResponse[CountData]
// @Failure      404         {object} ErrorResponse
// @Router       /exams/{id}/results/publish [post]
func (h *ResultHandler) PublishAll(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	examID, ok := h.uuidParam(c, "id", "exam")
	if !ok {
		return
	}

	n, err := h.resultService.PublishAll(c.Request.Context(), centerID, examID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, CountData{Count: int64(n)})
}

// Publish godoc
// @ID           publishExamResult
// @Summary      Publish a result
// @Description  Idempotent. The first publish time is kept.
// @Tags         results
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        resultId    path     string true  "Result ID" format(uuid)
// @Success      200         {object} APIResponse[examapp.ResultResponse]
// @Failure      404         {object} ErrorResponse
// @Router       /exams/results/{resultId}/publish [post]
func (h *ResultHandler) Publish(c *gin.Context) {
	h.mutate(c, h.resultService.Publish)
}

// MarkAbsent godoc
// @ID           markExamResultAbsent
// @Summary      Mark a result absent
// @Tags         results
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        resultId    path     string true  "Result ID" format(uuid)
// @Success      200         {object} APIResponse[examapp.ResultResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /exams/results/{resultId}/absent [post]
func (h *ResultHandler) MarkAbsent(c *gin.Context) {
	h.mutate(c, h.resultService.MarkAbsent)
}

// Disqualify godoc
// @ID           disqualifyExamResult
// @Summary      Disqualify a result
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string                  false "Center ID"
// @Param        resultId    path     string                  true  "Result ID" format(uuid)
// @Param        request     body     DisqualifyResultRequest true  "Reason"
// @Success      200         {object} APIResponse[examapp.ResultResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /exams/results/{resultId}/disqualify [post]
func (h *ResultHandler) Disqualify(c *gin.Context) {
	var req DisqualifyResultRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.mutate(c, func(ctx context.Context, centerID, id uuid.UUID) (*examapp.ResultResponse, error) {
		return h.resultService.Disqualify(ctx, centerID, id, req.Reason)
	})
}

func (h *ResultHandler) mutate(c *gin.Context, fn func(ctx context.Context, centerID, id uuid.UUID) (*examapp.ResultResponse, error)) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "resultId", "result")
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
