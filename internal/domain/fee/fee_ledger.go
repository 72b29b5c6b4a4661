package fee

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FeeStatus represents the payment status of a fee ledger
type FeeStatus string

const (
	FeeStatusPending   FeeStatus = "PENDING"
	FeeStatusPartial   FeeStatus = "PARTIAL"
	FeeStatusPaid      FeeStatus = "PAID"
	FeeStatusOverdue   FeeStatus = "OVERDUE"
	FeeStatusCancelled FeeStatus = "CANCELLED"
)

// IsValid checks if the status is a known value
func (s FeeStatus) IsValid() bool {
	switch s {
	case FeeStatusPending, FeeStatusPartial, FeeStatusPaid, FeeStatusOverdue, FeeStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s FeeStatus) String() string {
	return string(s)
}

// ParseFeeStatus converts a wire value into a FeeStatus
func ParseFeeStatus(s string) (FeeStatus, error) {
	status := FeeStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown fee status: %q", s))
	}
	return status, nil
}

// FeeLedger is the aggregate fee record for one student/course pairing.
// Status is always derived from PaidAmount against NetAmount and the due
// date; the only explicit status is CANCELLED.
type FeeLedger struct {
	shared.CenterAggregateRoot
	StudentID          uuid.UUID
	CourseID           uuid.UUID
	TotalAmount        decimal.Decimal
	DiscountAmount     decimal.Decimal
	DiscountReason     string
	LateFee            decimal.Decimal
	DueDate            time.Time
	PaidAmount         decimal.Decimal
	Status             FeeStatus
	PaymentPlan        string
	Installments       int
	CurrentInstallment int
}

// LedgerTerms are the billing terms of a ledger
type LedgerTerms struct {
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountReason string
	LateFee        decimal.Decimal
	DueDate        time.Time
	PaymentPlan    string
	Installments   int
}

// NewFeeLedger bills a student for a course
func NewFeeLedger(centerID, studentID, courseID uuid.UUID, terms LedgerTerms, now time.Time) (*FeeLedger, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Student ID cannot be empty")
	}
	if courseID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Course ID cannot be empty")
	}
	if terms.Installments == 0 {
		terms.Installments = 1
	}
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	l := &FeeLedger{
		CenterAggregateRoot: shared.NewCenterAggregateRoot(centerID, now),
		StudentID:           studentID,
		CourseID:            courseID,
		PaidAmount:          decimal.Zero,
		CurrentInstallment:  1,
	}
	l.applyTerms(terms)
	l.RecalculateStatus(now)

	l.AddDomainEvent(NewFeeLedgerCreatedEvent(l, now))
	return l, nil
}

// NetAmount is the total after discount
func (l *FeeLedger) NetAmount() decimal.Decimal {
	return l.TotalAmount.Sub(l.DiscountAmount)
}

// RemainingAmount is what is still owed including late fees
func (l *FeeLedger) RemainingAmount() decimal.Decimal {
	return l.NetAmount().Add(l.LateFee).Sub(l.PaidAmount)
}

// IsOverdue reports whether the due date has passed on an unpaid ledger
func (l *FeeLedger) IsOverdue(now time.Time) bool {
	if l.Status == FeeStatusPaid || l.Status == FeeStatusCancelled {
		return false
	}
	return shared.DateOf(now).After(shared.DateOf(l.DueDate))
}

// RecalculateStatus derives the status from the paid amount and due date.
// OVERDUE overrides PENDING and PARTIAL but never PAID. A cancelled
// ledger is left as is. Returns true when the status changed.
func (l *FeeLedger) RecalculateStatus(now time.Time) bool {
	if l.Status == FeeStatusCancelled {
		return false
	}
	previous := l.Status

	switch {
	case l.PaidAmount.IsZero():
		l.Status = FeeStatusPending
	case l.PaidAmount.GreaterThanOrEqual(l.NetAmount()):
		l.Status = FeeStatusPaid
	default:
		l.Status = FeeStatusPartial
	}

	if l.IsOverdue(now) {
		l.Status = FeeStatusOverdue
	}

	if previous != l.Status && previous != "" {
		l.AddDomainEvent(NewFeeStatusChangedEvent(l, previous, now))
	}
	return previous != l.Status
}

// RecordPayment accumulates a successful payment and recalculates status
func (l *FeeLedger) RecordPayment(amount decimal.Decimal, now time.Time) error {
	if l.Status == FeeStatusCancelled {
		return shared.NewInvalidStateError("Cannot record payment on a cancelled fee")
	}
	if !amount.IsPositive() {
		return shared.NewInvalidInputError("Payment amount must be positive")
	}

	l.PaidAmount = l.PaidAmount.Add(amount)
	if l.CurrentInstallment < l.Installments {
		l.CurrentInstallment++
	}
	l.RecalculateStatus(now)
	l.Touch(now)
	l.IncrementVersion()
	return nil
}

// ApplyDiscount replaces the discount and recalculates status
func (l *FeeLedger) ApplyDiscount(amount decimal.Decimal, reason string, now time.Time) error {
	if l.Status == FeeStatusCancelled {
		return shared.NewInvalidStateError("Cannot discount a cancelled fee")
	}
	terms := l.terms()
	terms.DiscountAmount = amount
	terms.DiscountReason = reason
	if err := validateTerms(terms); err != nil {
		return err
	}
	l.applyTerms(terms)
	l.RecalculateStatus(now)
	l.Touch(now)
	l.IncrementVersion()
	return nil
}

// ApplyLateFee replaces the late fee and recalculates status
func (l *FeeLedger) ApplyLateFee(amount decimal.Decimal, now time.Time) error {
	if l.Status == FeeStatusCancelled {
		return shared.NewInvalidStateError("Cannot add a late fee to a cancelled fee")
	}
	if amount.IsNegative() {
		return shared.NewInvalidInputError("Late fee cannot be negative")
	}
	l.LateFee = amount
	l.RecalculateStatus(now)
	l.Touch(now)
	l.IncrementVersion()
	return nil
}

// UpdateTerms replaces the billing terms. Payments already recorded are kept.
func (l *FeeLedger) UpdateTerms(terms LedgerTerms, now time.Time) error {
	if l.Status == FeeStatusCancelled {
		return shared.NewInvalidStateError("Cannot update a cancelled fee")
	}
	if terms.Installments == 0 {
		terms.Installments = l.Installments
	}
	if err := validateTerms(terms); err != nil {
		return err
	}
	if terms.Installments < l.CurrentInstallment {
		return shared.NewInvalidInputError("Installments cannot be fewer than the current installment")
	}
	l.applyTerms(terms)
	l.RecalculateStatus(now)
	l.Touch(now)
	l.IncrementVersion()
	return nil
}

// Cancel voids a ledger that has not received any payment
func (l *FeeLedger) Cancel(now time.Time) error {
	if l.Status == FeeStatusCancelled {
		return shared.NewInvalidStateError("Fee is already cancelled")
	}
	if !l.PaidAmount.IsZero() {
		return shared.NewInvalidStateError("Cannot cancel a fee with recorded payments")
	}
	previous := l.Status
	l.Status = FeeStatusCancelled
	l.Touch(now)
	l.IncrementVersion()
	l.AddDomainEvent(NewFeeStatusChangedEvent(l, previous, now))
	return nil
}

// IsCancelled reports whether the ledger is cancelled
func (l *FeeLedger) IsCancelled() bool {
	return l.Status == FeeStatusCancelled
}

func (l *FeeLedger) terms() LedgerTerms {
	return LedgerTerms{
		TotalAmount:    l.TotalAmount,
		DiscountAmount: l.DiscountAmount,
		DiscountReason: l.DiscountReason,
		LateFee:        l.LateFee,
		DueDate:        l.DueDate,
		PaymentPlan:    l.PaymentPlan,
		Installments:   l.Installments,
	}
}

func (l *FeeLedger) applyTerms(t LedgerTerms) {
	l.TotalAmount = t.TotalAmount
	l.DiscountAmount = t.DiscountAmount
	l.DiscountReason = t.DiscountReason
	l.LateFee = t.LateFee
	l.DueDate = shared.DateOf(t.DueDate)
	l.PaymentPlan = t.PaymentPlan
	l.Installments = t.Installments
}

func validateTerms(t LedgerTerms) error {
	if t.TotalAmount.IsNegative() {
		return shared.NewInvalidInputError("Total amount cannot be negative")
	}
	if t.DiscountAmount.IsNegative() {
		return shared.NewInvalidInputError("Discount amount cannot be negative")
	}
	if t.LateFee.IsNegative() {
		return shared.NewInvalidInputError("Late fee cannot be negative")
	}
	if t.DiscountAmount.GreaterThan(t.TotalAmount) {
		return shared.NewInvalidInputError("Discount cannot exceed the total amount")
	}
	if t.DueDate.IsZero() {
		return shared.NewInvalidInputError("Due date is required")
	}
	if t.Installments < 1 {
		return shared.NewInvalidInputError("Installments must be at least 1")
	}
	return nil
}
