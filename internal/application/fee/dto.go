package fee

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/shopspring/decimal"
)

// CreateFeeRequest bills a student for a course. A nil TotalAmount takes
// the course's discounted fees.
type CreateFeeRequest struct {
	StudentID      uuid.UUID
	CourseID       uuid.UUID
	TotalAmount    *decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountReason string
	LateFee        decimal.Decimal
	DueDate        time.Time
	PaymentPlan    string
	Installments   int
}

// UpdateFeeRequest replaces a ledger's billing terms
type UpdateFeeRequest struct {
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountReason string
	LateFee        decimal.Decimal
	DueDate        time.Time
	PaymentPlan    string
	Installments   int
}

// ApplyDiscountRequest replaces a ledger's discount
type ApplyDiscountRequest struct {
	Amount decimal.Decimal
	Reason string
}

// FeeListFilter narrows ledger listings
type FeeListFilter struct {
	StudentID *uuid.UUID
	CourseID  *uuid.UUID
	Status    fee.FeeStatus
	Search    string
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
}

// FeeResponse is a fee ledger as returned by the API
type FeeResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CenterID           uuid.UUID       `json:"center_id"`
	StudentID          uuid.UUID       `json:"student_id"`
	CourseID           uuid.UUID       `json:"course_id"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountReason     string          `json:"discount_reason,omitempty"`
	NetAmount          decimal.Decimal `json:"net_amount"`
	LateFee            decimal.Decimal `json:"late_fee"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	DueDate            time.Time       `json:"due_date"`
	Status             string          `json:"status"`
	IsOverdue          bool            `json:"is_overdue"`
	PaymentPlan        string          `json:"payment_plan,omitempty"`
	Installments       int             `json:"installments"`
	CurrentInstallment int             `json:"current_installment"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// ToFeeResponse converts a ledger, evaluating overdue against now
func ToFeeResponse(l *fee.FeeLedger, now time.Time) FeeResponse {
	return FeeResponse{
		ID:                 l.ID,
		CenterID:           l.CenterID,
		StudentID:          l.StudentID,
		CourseID:           l.CourseID,
		TotalAmount:        l.TotalAmount,
		DiscountAmount:     l.DiscountAmount,
		DiscountReason:     l.DiscountReason,
		NetAmount:          l.NetAmount(),
		LateFee:            l.LateFee,
		PaidAmount:         l.PaidAmount,
		RemainingAmount:    l.RemainingAmount(),
		DueDate:            l.DueDate,
		Status:             string(l.Status),
		IsOverdue:          l.IsOverdue(now),
		PaymentPlan:        l.PaymentPlan,
		Installments:       l.Installments,
		CurrentInstallment: l.CurrentInstallment,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
		Version:            l.Version,
	}
}

// CreatePaymentRequest opens a payment attempt against a ledger
type CreatePaymentRequest struct {
	FeeID  uuid.UUID
	Amount decimal.Decimal
	Method fee.PaymentMethod
	Notes  string
}

// ProcessPaymentRequest reports the outcome of an attempt
type ProcessPaymentRequest struct {
	Success          bool
	TransactionID    string
	GatewayReference string
	GatewayResponse  string
}

// PaymentListFilter narrows payment listings
type PaymentListFilter struct {
	FeeID     *uuid.UUID
	StudentID *uuid.UUID
	Status    fee.PaymentStatus
	Method    fee.PaymentMethod
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
}

// PaymentResponse is a payment attempt as returned by the API
type PaymentResponse struct {
	ID               uuid.UUID       `json:"id"`
	CenterID         uuid.UUID       `json:"center_id"`
	FeeID            uuid.UUID       `json:"fee_id"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Status           string          `json:"status"`
	TransactionID    *string         `json:"transaction_id,omitempty"`
	GatewayReference string          `json:"gateway_reference,omitempty"`
	GatewayResponse  string          `json:"gateway_response,omitempty"`
	GatewayFee       decimal.Decimal `json:"gateway_fee"`
	CheckoutToken    string          `json:"checkout_token,omitempty"`
	CheckoutURL      string          `json:"checkout_url,omitempty"`
	ReceiptNumber    string          `json:"receipt_number,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	PaymentDate      *time.Time      `json:"payment_date,omitempty"`
	RetryCount       int             `json:"retry_count"`
	CanRetry         bool            `json:"can_retry"`
	LastRetryAt      *time.Time      `json:"last_retry_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ToPaymentResponse converts a payment attempt
func ToPaymentResponse(p *fee.PaymentAttempt) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		CenterID:         p.CenterID,
		FeeID:            p.FeeID,
		Amount:           p.Amount,
		Method:           string(p.Method),
		Status:           string(p.Status),
		TransactionID:    p.TransactionID,
		GatewayReference: p.GatewayReference,
		GatewayResponse:  p.GatewayResponse,
		GatewayFee:       p.GatewayFee,
		CheckoutToken:    p.CheckoutToken,
		CheckoutURL:      p.CheckoutURL,
		ReceiptNumber:    p.ReceiptNumber,
		Notes:            p.Notes,
		PaymentDate:      p.PaymentDate,
		RetryCount:       p.RetryCount,
		CanRetry:         p.CanRetry(),
		LastRetryAt:      p.LastRetryAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}

// ReceiptResponse is the printable receipt of a successful payment
type ReceiptResponse struct {
	ReceiptNumber      string          `json:"receipt_number"`
	PaymentID          uuid.UUID       `json:"payment_id"`
	FeeID              uuid.UUID       `json:"fee_id"`
	StudentID          uuid.UUID       `json:"student_id"`
	StudentName        string          `json:"student_name"`
	CourseCode         string          `json:"course_code"`
	CourseName         string          `json:"course_name"`
	Amount             decimal.Decimal `json:"amount"`
	AmountFormatted    string          `json:"amount_formatted"`
	Method             string          `json:"method"`
	TransactionID      string          `json:"transaction_id,omitempty"`
	PaymentDate        time.Time       `json:"payment_date"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	Remaining          decimal.Decimal `json:"remaining"`
	RemainingFormatted string          `json:"remaining_formatted"`
	FeeStatus          string          `json:"fee_status"`
}

// ApplyLateFeeRequest replaces a ledger's late fee
type ApplyLateFeeRequest struct {
	Amount decimal.Decimal
}
