package fee

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type names
const (
	AggregateTypeFeeLedger      = "FeeLedger"
	AggregateTypePaymentAttempt = "PaymentAttempt"
)

// Event types
const (
	EventTypeFeeLedgerCreated = "FeeLedgerCreated"
	EventTypeFeeStatusChanged = "FeeStatusChanged"
	EventTypePaymentSucceeded = "PaymentSucceeded"
	EventTypePaymentFailed    = "PaymentFailed"
	EventTypePaymentCancelled = "PaymentCancelled"
)

// FeeLedgerCreatedEvent is raised when a student is billed
type FeeLedgerCreatedEvent struct {
	shared.BaseDomainEvent
	StudentID uuid.UUID       `json:"student_id"`
	CourseID  uuid.UUID       `json:"course_id"`
	NetAmount decimal.Decimal `json:"net_amount"`
	DueDate   time.Time       `json:"due_date"`
}

// NewFeeLedgerCreatedEvent creates a FeeLedgerCreatedEvent
func NewFeeLedgerCreatedEvent(l *FeeLedger, at time.Time) *FeeLedgerCreatedEvent {
	return &FeeLedgerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeeLedgerCreated, AggregateTypeFeeLedger, l.ID, l.CenterID, at),
		StudentID:       l.StudentID,
		CourseID:        l.CourseID,
		NetAmount:       l.NetAmount(),
		DueDate:         l.DueDate,
	}
}

// FeeStatusChangedEvent is raised whenever the derived status moves
type FeeStatusChangedEvent struct {
	shared.BaseDomainEvent
	StudentID  uuid.UUID `json:"student_id"`
	FromStatus FeeStatus `json:"from_status"`
	ToStatus   FeeStatus `json:"to_status"`
}

// NewFeeStatusChangedEvent creates a FeeStatusChangedEvent
func NewFeeStatusChangedEvent(l *FeeLedger, from FeeStatus, at time.Time) *FeeStatusChangedEvent {
	return &FeeStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeeStatusChanged, AggregateTypeFeeLedger, l.ID, l.CenterID, at),
		StudentID:       l.StudentID,
		FromStatus:      from,
		ToStatus:        l.Status,
	}
}

// PaymentSucceededEvent is raised when an attempt settles
type PaymentSucceededEvent struct {
	shared.BaseDomainEvent
	FeeID         uuid.UUID       `json:"fee_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	ReceiptNumber string          `json:"receipt_number"`
}

// NewPaymentSucceededEvent creates a PaymentSucceededEvent
func NewPaymentSucceededEvent(p *PaymentAttempt, at time.Time) *PaymentSucceededEvent {
	return &PaymentSucceededEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentSucceeded, AggregateTypePaymentAttempt, p.ID, p.CenterID, at),
		FeeID:           p.FeeID,
		Amount:          p.Amount,
		Method:          p.Method,
		ReceiptNumber:   p.ReceiptNumber,
	}
}

// PaymentFailedEvent is raised on every failed try
type PaymentFailedEvent struct {
	shared.BaseDomainEvent
	FeeID      uuid.UUID     `json:"fee_id"`
	Method     PaymentMethod `json:"method"`
	RetryCount int           `json:"retry_count"`
	CanRetry   bool          `json:"can_retry"`
}

// NewPaymentFailedEvent creates a PaymentFailedEvent
func NewPaymentFailedEvent(p *PaymentAttempt, at time.Time) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentFailed, AggregateTypePaymentAttempt, p.ID, p.CenterID, at),
		FeeID:           p.FeeID,
		Method:          p.Method,
		RetryCount:      p.RetryCount,
		CanRetry:        p.CanRetry(),
	}
}

// PaymentCancelledEvent is raised when an attempt is cancelled
type PaymentCancelledEvent struct {
	shared.BaseDomainEvent
	FeeID  uuid.UUID     `json:"fee_id"`
	Method PaymentMethod `json:"method"`
}

// NewPaymentCancelledEvent creates a PaymentCancelledEvent
func NewPaymentCancelledEvent(p *PaymentAttempt, at time.Time) *PaymentCancelledEvent {
	return &PaymentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCancelled, AggregateTypePaymentAttempt, p.ID, p.CenterID, at),
		FeeID:           p.FeeID,
		Method:          p.Method,
	}
}
