package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	feeapp "github.com/institute/backend/internal/application/fee"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/infrastructure/logger"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// PaymentHandler handles payment attempt API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *feeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *feeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest represents a request to open a payment attempt
// @Description ONLINE_PAYMENT attempts are answered with a hosted checkout token and URL
type CreatePaymentRequest struct {
	FeeID  string          `json:"fee_id" binding:"required,uuid" example:"9b2f3c1e-8a4d-4c7e-9f1a-2b3c4d5e6f70"`
	Amount decimal.Decimal `json:"amount" binding:"dgt=0" swaggertype:"string" example:"5000"`
	Method string          `json:"method" binding:"required" example:"ONLINE_PAYMENT"`
	Notes  string          `json:"notes" binding:"max=500" example:"First installment"`
}

// ProcessPaymentRequest represents the outcome of a payment attempt
type ProcessPaymentRequest struct {
	Success          *bool  `json:"success" binding:"required" example:"true"`
	TransactionID    string `json:"transaction_id" binding:"max=100" example:"TXN-20260315-0001"`
	GatewayReference string `json:"gateway_reference" binding:"max=200" example:"mt-tx-1"`
	GatewayResponse  string `json:"gateway_response" binding:"max=2000" example:"settlement"`
}

// PaymentListQuery represents payment list query parameters
type PaymentListQuery struct {
	dto.ListRequest
	FeeID     string `form:"fee_id"`
	StudentID string `form:"student_id"`
	Status    string `form:"status"`
	Method    string `form:"method"`
}

// Create godoc
// @ID           createPayment
// @Summary      Create a payment attempt
// @Description  The amount must be positive and must not exceed the ledger's remaining amount
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string               false "Center ID"
// @Param        request     body     CreatePaymentRequest true  "Payment"
// @Success      201         {object} APIResponse[feeapp.PaymentResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var req CreatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	method, err := fee.ParsePaymentMethod(req.Method)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), centerID, feeapp.CreatePaymentRequest{
		FeeID:  uuid.MustParse(req.FeeID),
		Amount: req.Amount,
		Method: method,
		Notes:  req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, payment)
}

// GetByID godoc
// @ID           getPayment
// @Summary      Get a payment attempt
// @Tags         payments
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Payment ID" format(uuid)
// @Success      200         {object} APIResponse[feeapp.PaymentResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /fees/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// List godoc
// @ID           listPayments
// @Summary      List payment attempts
// @Tags         payments
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        fee_id      query    string false "Fee ID"     format(uuid)
// @Param        student_id  query    string false "Student ID" format(uuid)
// @Param        status      query    string false "Payment status" Enums(PENDING, SUCCESS, FAILED, CANCELLED, REFUNDED, PARTIALLY_REFUNDED)
// @Param        method      query    string false "Payment method"
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]feeapp.PaymentResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /fees/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), centerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListByFee godoc
// @ID           listPaymentsByFee
// @Summary      List a ledger's payment attempts
// @Tags         payments
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Fee ID" format(uuid)
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]feeapp.PaymentResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /fees/{id}/payments [get]
func (h *PaymentHandler) ListByFee(c *gin.Context) {
	feeID, ok := h.uuidParam(c, "id", "fee")
	if !ok {
		return
	}
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	payments, total, err := h.paymentService.ListByFee(c.Request.Context(), centerID, feeID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListByStudent godoc
// @ID           listPaymentsByStudent
// @Summary      List a student's payment attempts
// @Tags         payments
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        studentId   path     string true  "Student ID" format(uuid)
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]feeapp.PaymentResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /fees/payments/student/{studentId} [get]
func (h *PaymentHandler) ListByStudent(c *gin.Context) {
	studentID, ok := h.uuidParam(c, "studentId", "student")
	if !ok {
		return
	}
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	payments, total, err := h.paymentService.ListByStudent(c.Request.Context(), centerID, studentID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

func (h *PaymentHandler) listFilter(c *gin.Context) (uuid.UUID, feeapp.PaymentListFilter, bool) {
	var filter feeapp.PaymentListFilter
	centerID, ok := h.center(c)
	if !ok {
		return centerID, filter, false
	}
	var q PaymentListQuery
	if !h.bindQuery(c, &q) {
		return centerID, filter, false
	}
	q.Normalize()

	filter = feeapp.PaymentListFilter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	var err error
	if filter.FeeID, err = optionalUUID(q.FeeID); err != nil {
		h.invalidInput(c, "Invalid fee_id")
		return centerID, filter, false
	}
	if filter.StudentID, err = optionalUUID(q.StudentID); err != nil {
		h.invalidInput(c, "Invalid student_id")
		return centerID, filter, false
	}
	if q.Status != "" {
		if filter.Status, err = fee.ParsePaymentStatus(q.Status); err != nil {
			h.HandleDomainError(c, err)
			return centerID, filter, false
		}
	}
	if q.Method != "" {
		if filter.Method, err = fee.ParsePaymentMethod(q.Method); err != nil {
			h.HandleDomainError(c, err)
			return centerID, filter, false
		}
	}
	return centerID, filter, true
}

// Process godoc
// @ID           processPayment
// @Summary      Process a payment attempt
// @Description  Resolve a pending attempt. Success records the payment on the ledger in the same transaction.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string                false "Center ID"
// @Param        id          path     string                true  "Payment ID" format(uuid)
// @Param        request     body     ProcessPaymentRequest true  "Outcome"
// @Success      200         {object} APIResponse[feeapp.PaymentResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      409         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/payments/{id}/process [post]
func (h *PaymentHandler) Process(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "payment")
	if !ok {
		return
	}
	var req ProcessPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Process(c.Request.Context(), centerID, id, feeapp.ProcessPaymentRequest{
		Success:          *req.Success,
		TransactionID:    req.TransactionID,
		GatewayReference: req.GatewayReference,
		GatewayResponse:  req.GatewayResponse,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// Retry godoc
// @ID           retryPayment
// @Summary      Retry a failed payment attempt
// @Tags         payments
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Payment ID" format(uuid)
// @Success      200         {object} APIResponse[feeapp.PaymentResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/payments/{id}/retry [post]
func (h *PaymentHandler) Retry(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.Retry(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// Cancel godoc
// @ID           cancelPayment
// @Summary      Cancel a payment attempt
// @Tags         payments
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Payment ID" format(uuid)
// @Success      200         {object} APIResponse[feeapp.PaymentResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/payments/{id}/cancel [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.Cancel(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// Receipt godoc
// @ID           getPaymentReceipt
// @Summary      Get a payment receipt
// @Description  Available once the attempt succeeded
// @Tags         payments
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        paymentId   path     string true  "Payment ID" format(uuid)
// @Success      200         {object} APIResponse[feeapp.ReceiptResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /fees/receipt/{paymentId} [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "paymentId", "payment")
	if !ok {
		return
	}

	receipt, err := h.paymentService.Receipt(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, receipt)
}

// GatewayNotification godoc
// @ID           paymentGatewayNotification
// @Summary      Payment gateway notification
// @Description  Signed callback from the payment gateway. Resolves the referenced attempt.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /fees/payments/gateway/notification [post]
func (h *PaymentHandler) GatewayNotification(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Unable to read notification body")
		return
	}

	if err := h.paymentService.HandleGatewayNotification(c.Request.Context(), body); err != nil {
		logger.GetGinLogger(c).Warn("Gateway notification rejected", zap.Error(err))
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, nil)
}
