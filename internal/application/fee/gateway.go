package fee

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest asks the payment gateway for a hosted checkout session
type CheckoutRequest struct {
	PaymentID     uuid.UUID
	Amount        decimal.Decimal
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ItemName      string
}

// CheckoutSession is the gateway's hosted checkout for one attempt
type CheckoutSession struct {
	Token       string
	RedirectURL string
}

// NotificationOutcome is the gateway's verdict on an attempt
type NotificationOutcome string

const (
	NotificationOutcomeSuccess NotificationOutcome = "SUCCESS"
	NotificationOutcomeFailed  NotificationOutcome = "FAILED"
	NotificationOutcomePending NotificationOutcome = "PENDING"
)

// GatewayNotification is a verified asynchronous notification
type GatewayNotification struct {
	PaymentID       uuid.UUID
	TransactionID   string
	Outcome         NotificationOutcome
	StatusMessage   string
	GrossAmount     decimal.Decimal
	GatewayFee      decimal.Decimal
	RawPayload      map[string]any
	PaymentType     string
	TransactionTime string
}

// PaymentGateway is the hosted checkout provider used by ONLINE_PAYMENT
type PaymentGateway interface {
	// CreateCheckout opens a hosted checkout for the attempt
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// ParseNotification verifies and decodes a notification body
	ParseNotification(ctx context.Context, body []byte) (*GatewayNotification, error)
}

// CheckoutAmountChecker is implemented by gateways that restrict which
// amounts they accept. It is consulted before the attempt is stored.
type CheckoutAmountChecker interface {
	CheckAmount(amount decimal.Decimal) error
}
