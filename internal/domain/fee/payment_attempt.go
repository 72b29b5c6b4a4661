package fee

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxPaymentRetries is the number of failures after which an attempt can
// no longer be retried; a new attempt must be created instead.
const MaxPaymentRetries = 3

// PaymentStatus represents the status of a payment attempt
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusSuccess           PaymentStatus = "SUCCESS"
	PaymentStatusFailed            PaymentStatus = "FAILED"
	PaymentStatusCancelled         PaymentStatus = "CANCELLED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// IsValid checks if the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed,
		PaymentStatusCancelled, PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusSuccess, PaymentStatusCancelled, PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus converts a wire value into a PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown payment status: %q", s))
	}
	return status, nil
}

// PaymentMethod represents how a payment is made
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodCheque        PaymentMethod = "CHEQUE"
	PaymentMethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard     PaymentMethod = "DEBIT_CARD"
	PaymentMethodOnlinePayment PaymentMethod = "ONLINE_PAYMENT"
	PaymentMethodUPI           PaymentMethod = "UPI"
	PaymentMethodWallet        PaymentMethod = "WALLET"
)

// IsValid checks if the method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheque, PaymentMethodBankTransfer, PaymentMethodCreditCard,
		PaymentMethodDebitCard, PaymentMethodOnlinePayment, PaymentMethodUPI, PaymentMethodWallet:
		return true
	}
	return false
}

// UsesGateway reports whether the method settles through the hosted checkout
func (m PaymentMethod) UsesGateway() bool {
	return m == PaymentMethodOnlinePayment
}

// String returns the string representation
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod converts a wire value into a PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !method.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown payment method: %q", s))
	}
	return method, nil
}

// PaymentAttempt is one attempt to pay against a fee ledger.
//
// State machine:
//
//	PENDING -> SUCCESS (terminal)
//	PENDING -> FAILED -> (Retry, while CanRetry) -> PENDING
//	PENDING | FAILED -> CANCELLED (terminal)
type PaymentAttempt struct {
	shared.CenterAggregateRoot
	FeeID            uuid.UUID
	Amount           decimal.Decimal
	Method           PaymentMethod
	Status           PaymentStatus
	TransactionID    *string
	GatewayReference string
	GatewayResponse  string
	GatewayPayload   map[string]any
	GatewayFee       decimal.Decimal
	CheckoutToken    string
	CheckoutURL      string
	ReceiptNumber    string
	Notes            string
	PaymentDate      *time.Time
	RetryCount       int
	LastRetryAt      *time.Time
}

// NewPaymentAttempt creates a PENDING attempt against a ledger
func NewPaymentAttempt(centerID, feeID uuid.UUID, amount decimal.Decimal, method PaymentMethod, notes string, now time.Time) (*PaymentAttempt, error) {
	if feeID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Fee ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewInvalidInputError("Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewInvalidInputError(fmt.Sprintf("Invalid payment method: %s", method))
	}

	return &PaymentAttempt{
		CenterAggregateRoot: shared.NewCenterAggregateRoot(centerID, now),
		FeeID:               feeID,
		Amount:              amount,
		Method:              method,
		Status:              PaymentStatusPending,
		GatewayFee:          decimal.Zero,
		Notes:               notes,
	}, nil
}

// MarkSuccessful settles the attempt. It fails on a terminal attempt.
func (p *PaymentAttempt) MarkSuccessful(transactionID, gatewayReference, receiptNumber string, now time.Time) error {
	if p.Status.IsTerminal() {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot mark payment successful in %s status", p.Status))
	}

	p.Status = PaymentStatusSuccess
	if transactionID != "" {
		p.TransactionID = &transactionID
	}
	p.GatewayReference = gatewayReference
	p.ReceiptNumber = receiptNumber
	paidAt := now
	p.PaymentDate = &paidAt
	p.Touch(now)
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentSucceededEvent(p, now))
	return nil
}

// MarkFailed records a failed try. Only a PENDING attempt can fail, so the
// retry counter never passes MaxPaymentRetries.
func (p *PaymentAttempt) MarkFailed(gatewayResponse string, now time.Time) error {
	if p.Status != PaymentStatusPending {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot mark payment failed in %s status", p.Status))
	}

	p.Status = PaymentStatusFailed
	p.GatewayResponse = gatewayResponse
	p.RetryCount++
	failedAt := now
	p.LastRetryAt = &failedAt
	p.Touch(now)
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentFailedEvent(p, now))
	return nil
}

// CanRetry reports whether a failed attempt may be retried
func (p *PaymentAttempt) CanRetry() bool {
	return p.RetryCount < MaxPaymentRetries && p.Status == PaymentStatusFailed
}

// Retry moves a FAILED attempt back to PENDING
func (p *PaymentAttempt) Retry(now time.Time) error {
	if !p.CanRetry() {
		if p.Status == PaymentStatusFailed {
			return shared.NewInvalidStateError(fmt.Sprintf("Payment retry limit of %d reached", MaxPaymentRetries))
		}
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot retry payment in %s status", p.Status))
	}

	p.Status = PaymentStatusPending
	p.Touch(now)
	p.IncrementVersion()
	return nil
}

// MarkCancelled cancels the attempt. Cancelling twice is a no-op;
// cancelling a settled or refunded attempt is rejected.
func (p *PaymentAttempt) MarkCancelled(now time.Time) error {
	if p.Status == PaymentStatusCancelled {
		return nil
	}
	if p.Status.IsTerminal() {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot cancel payment in %s status", p.Status))
	}

	p.Status = PaymentStatusCancelled
	p.Touch(now)
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentCancelledEvent(p, now))
	return nil
}

// AttachCheckout stores the hosted checkout session of an online payment
func (p *PaymentAttempt) AttachCheckout(token, url string, now time.Time) error {
	if !p.Method.UsesGateway() {
		return shared.NewInvalidStateError(fmt.Sprintf("Payment method %s does not use the gateway", p.Method))
	}
	if p.Status != PaymentStatusPending {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot start checkout in %s status", p.Status))
	}
	p.CheckoutToken = token
	p.CheckoutURL = url
	p.Touch(now)
	p.IncrementVersion()
	return nil
}

// RecordGatewayPayload keeps the raw gateway notification for audit
func (p *PaymentAttempt) RecordGatewayPayload(payload map[string]any, fee decimal.Decimal) {
	p.GatewayPayload = payload
	if fee.IsPositive() {
		p.GatewayFee = fee
	}
}

// IsSuccessful reports whether the attempt settled
func (p *PaymentAttempt) IsSuccessful() bool {
	return p.Status == PaymentStatusSuccess
}
