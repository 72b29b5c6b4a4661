package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feeapp "github.com/institute/backend/internal/application/fee"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// FeeHandler handles fee ledger API endpoints
type FeeHandler struct {
	BaseHandler
	feeService *feeapp.FeeService
}

// NewFeeHandler creates a new FeeHandler
func NewFeeHandler(feeService *feeapp.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// CreateFeeRequest represents a request to bill a student for a course
// @Description Omitting total_amount bills the course's discounted fees
type CreateFeeRequest struct {
	StudentID      string           `json:"student_id" binding:"required,uuid" example:"9b2f3c1e-8a4d-4c7e-9f1a-2b3c4d5e6f70"`
	CourseID       string           `json:"course_id" binding:"required,uuid" example:"1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"`
	TotalAmount    *decimal.Decimal `json:"total_amount" binding:"omitempty,dgte=0" swaggertype:"string" example:"15000"`
	DiscountAmount decimal.Decimal  `json:"discount_amount" binding:"dgte=0" swaggertype:"string" example:"500"`
	DiscountReason string           `json:"discount_reason" binding:"max=500" example:"Early bird"`
	LateFee        decimal.Decimal  `json:"late_fee" binding:"dgte=0" swaggertype:"string" example:"0"`
	DueDate        string           `json:"due_date" binding:"required" example:"2026-04-30"`
	PaymentPlan    string           `json:"payment_plan" binding:"max=100" example:"Quarterly"`
	Installments   int              `json:"installments" binding:"min=0" example:"3"`
}

// UpdateFeeRequest represents a request to replace a ledger's billing terms
// @Description Request body for updating a fee ledger
type UpdateFeeRequest struct {
	TotalAmount    decimal.Decimal `json:"total_amount" binding:"dgte=0" swaggertype:"string" example:"15000"`
	DiscountAmount decimal.Decimal `json:"discount_amount" binding:"dgte=0" swaggertype:"string" example:"500"`
	DiscountReason string          `json:"discount_reason" binding:"max=500" example:"Early bird"`
	LateFee        decimal.Decimal `json:"late_fee" binding:"dgte=0" swaggertype:"string" example:"0"`
	DueDate        string          `json:"due_date" binding:"required" example:"2026-04-30"`
	PaymentPlan    string          `json:"payment_plan" binding:"max=100" example:"Quarterly"`
	Installments   int             `json:"installments" binding:"min=0" example:"3"`
}

// ApplyDiscountRequest represents a request to replace a ledger's discount
type ApplyDiscountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgte=0" swaggertype:"string" example:"1000"`
	Reason string          `json:"reason" binding:"max=500" example:"Merit scholarship"`
}

// ApplyLateFeeRequest represents a request to replace a ledger's late fee
type ApplyLateFeeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgte=0" swaggertype:"string" example:"250"`
}

// FeeListQuery represents fee list query parameters
type FeeListQuery struct {
	dto.ListRequest
	StudentID string `form:"student_id"`
	CourseID  string `form:"course_id"`
	Status    string `form:"status"`
}

// Create godoc
// @ID           createFee
// @Summary      Create a fee ledger
// @Description  Bill a student for a course. Student and course must exist in the center.
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string           false "Center ID"
// @Param        request     body     CreateFeeRequest true  "Fee ledger"
// @Success      201         {object} APIResponse[feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      500         {object} ErrorResponse
// @Router       /fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var req CreateFeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	dueDate, err := parseTime(req.DueDate)
	if err != nil {
		h.invalidInput(c, "Invalid due_date")
		return
	}

	ledger, err := h.feeService.Create(c.Request.Context(), centerID, feeapp.CreateFeeRequest{
		StudentID:      uuid.MustParse(req.StudentID),
		CourseID:       uuid.MustParse(req.CourseID),
		TotalAmount:    req.TotalAmount,
		DiscountAmount: req.DiscountAmount,
		DiscountReason: req.DiscountReason,
		LateFee:        req.LateFee,
		DueDate:        dueDate,
		PaymentPlan:    req.PaymentPlan,
		Installments:   req.Installments,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, ledger)
}

// GetByID godoc
// @ID           getFee
// @Summary      Get a fee ledger
// @Tags         fees
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Fee ID" format(uuid)
// @Success      200         {object} APIResponse[feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /fees/{id} [get]
func (h *FeeHandler) GetByID(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "fee")
	if !ok {
		return
	}

	ledger, err := h.feeService.GetByID(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, ledger)
}

// List godoc
// @ID           listFees
// @Summary      List fee ledgers
// @Tags         fees
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        student_id  query    string false "Student ID" format(uuid)
// @Param        course_id   query    string false "Course ID"  format(uuid)
// @Param        status      query    string false "Fee status" Enums(PENDING, PARTIAL, PAID, OVERDUE, CANCELLED)
// @Param        search      query    string false "Search term"
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Param        order_by    query    string false "Order by field"
// @Param        order_dir   query    string false "Order direction" Enums(asc, desc)
// @Success      200         {object} APIResponse[[]feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	h.list(c, nil, nil)
}

// ListByStudent godoc
// @ID           listFeesByStudent
// @Summary      List a student's fee ledgers
// @Tags         fees
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        studentId   path     string true  "Student ID" format(uuid)
// @Param        status      query    string false "Fee status"
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /fees/student/{studentId} [get]
func (h *FeeHandler) ListByStudent(c *gin.Context) {
	studentID, ok := h.uuidParam(c, "studentId", "student")
	if !ok {
		return
	}
	h.list(c, &studentID, nil)
}

// ListByCourse godoc
// @ID           listFeesByCourse
// @Summary      List a course's fee ledgers
// @Tags         fees
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        courseId    path     string true  "Course ID" format(uuid)
// @Param        status      query    string false "Fee status"
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /fees/course/{courseId} [get]
func (h *FeeHandler) ListByCourse(c *gin.Context) {
	courseID, ok := h.uuidParam(c, "courseId", "course")
	if !ok {
		return
	}
	h.list(c, nil, &courseID)
}

func (h *FeeHandler) list(c *gin.Context, studentID, courseID *uuid.UUID) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var q FeeListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	q.Normalize()

	filter := feeapp.FeeListFilter{
		StudentID: studentID,
		CourseID:  courseID,
		Search:    q.Search,
		Page:      q.Page,
		PageSize:  q.PageSize,
		OrderBy:   q.OrderBy,
		OrderDir:  q.OrderDir,
	}
	if filter.StudentID == nil {
		id, err := optionalUUID(q.StudentID)
		if err != nil {
			h.invalidInput(c, "Invalid student_id")
			return
		}
		filter.StudentID = id
	}
	if filter.CourseID == nil {
		id, err := optionalUUID(q.CourseID)
		if err != nil {
			h.invalidInput(c, "Invalid course_id")
			return
		}
		filter.CourseID = id
	}
	if q.Status != "" {
		status, err := fee.ParseFeeStatus(q.Status)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		filter.Status = status
	}

	ledgers, total, err := h.feeService.List(c.Request.Context(), centerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, ledgers, total, q.Page, q.PageSize)
}

// Update godoc
// @ID           updateFee
// @Summary      Update a fee ledger
// @Description  Replace amounts, due date and plan. Status is re-derived.
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string           false "Center ID"
// @Param        id          path     string           true  "Fee ID" format(uuid)
// @Param        request     body     UpdateFeeRequest true  "Billing terms"
// @Success      200         {object} APIResponse[feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      409         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/{id} [put]
func (h *FeeHandler) Update(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "fee")
	if !ok {
		return
	}
	var req UpdateFeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	dueDate, err := parseTime(req.DueDate)
	if err != nil {
		h.invalidInput(c, "Invalid due_date")
		return
	}

	ledger, err := h.feeService.Update(c.Request.Context(), centerID, id, feeapp.UpdateFeeRequest{
		TotalAmount:    req.TotalAmount,
		DiscountAmount: req.DiscountAmount,
		DiscountReason: req.DiscountReason,
		LateFee:        req.LateFee,
		DueDate:        dueDate,
		PaymentPlan:    req.PaymentPlan,
		Installments:   req.Installments,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, ledger)
}

// Delete godoc
// @ID           deleteFee
// @Summary      Delete a fee ledger
// @Description  Only ledgers without payment attempts can be deleted
// @Tags         fees
// @Param        X-Center-ID header string false "Center ID"
// @Param        id          path   string true  "Fee ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /fees/{id} [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "fee")
	if !ok {
		return
	}

	if err := h.feeService.Delete(c.Request.Context(), centerID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Cancel godoc
// @ID           cancelFee
// @Summary      Cancel a fee ledger
// @Description  Allowed only while nothing has been paid
// @Tags         fees
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Fee ID" format(uuid)
// @Success      200         {object} APIResponse[feeapp.FeeResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/{id}/cancel [post]
func (h *FeeHandler) Cancel(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "fee")
	if !ok {
		return
	}

	ledger, err := h.feeService.Cancel(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, ledger)
}

// ApplyDiscount godoc
// @ID           applyFeeDiscount
// @Summary      Apply a discount
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string               false "Center ID"
// @Param        id          path     string               true  "Fee ID" format(uuid)
// @Param        request     body     ApplyDiscountRequest true  "Discount"
// @Success      200         {object} APIResponse[feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/{id}/discount [post]
func (h *FeeHandler) ApplyDiscount(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "fee")
	if !ok {
		return
	}
	var req ApplyDiscountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ledger, err := h.feeService.ApplyDiscount(c.Request.Context(), centerID, id, feeapp.ApplyDiscountRequest{
		Amount: req.Amount,
		Reason: req.Reason,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, ledger)
}

// ApplyLateFee godoc
// @ID           applyFeeLateFee
// @Summary      Apply a late fee
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string              false "Center ID"
// @Param        id          path     string              true  "Fee ID" format(uuid)
// @Param        request     body     ApplyLateFeeRequest true  "Late fee"
// @Success      200         {object} APIResponse[feeapp.FeeResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/{id}/late-fee [post]
func (h *FeeHandler) ApplyLateFee(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "fee")
	if !ok {
		return
	}
	var req ApplyLateFeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ledger, err := h.feeService.ApplyLateFee(c.Request.Context(), centerID, id, feeapp.ApplyLateFeeRequest{
		Amount: req.Amount,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, ledger)
}

// RefreshOverdue godoc
// @ID           refreshOverdueFees
// @Summary      Refresh overdue statuses
// @Description  Re-derives the status of every open ledger in the center and reports how many changed
// @Tags         fees
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Success      200         {object} APIResponse[CountData]
// @Failure      500         {object} ErrorResponse
// @Router       /fees/overdue/refresh [post]
func (h *FeeHandler) RefreshOverdue(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}

	n, err := h.feeService.RefreshOverdue(c.Request.Context(), centerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, CountData{Count: int64(n)})
}
