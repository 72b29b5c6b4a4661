package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	feeapp "github.com/institute/backend/internal/application/fee"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/config"
)

const (
	midtransItemMaxLen = 50
	midtransNameMaxLen = 20
)

// Midtrans transaction statuses
const (
	midtransStatusCapture    = "capture"
	midtransStatusSettlement = "settlement"
	midtransStatusPending    = "pending"
	midtransStatusDeny       = "deny"
	midtransStatusCancel     = "cancel"
	midtransStatusExpire     = "expire"
	midtransStatusFailure    = "failure"

	midtransFraudAccept    = "accept"
	midtransFraudChallenge = "challenge"
)

var (
	// ErrFractionalAmount is returned when a checkout amount has a minor unit part
	ErrFractionalAmount = shared.NewInvalidInputError("online payment amounts must be whole currency units")
	// ErrInvalidSignature is returned when a notification signature does not match
	ErrInvalidSignature = shared.NewInvalidInputError("invalid notification signature")
)

// snapAPI is the subset of the Snap client used by the gateway
type snapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// MidtransGateway implements feeapp.PaymentGateway with Midtrans Snap
type MidtransGateway struct {
	snap      snapAPI
	serverKey string
	logger    *zap.Logger
}

// MidtransOption configures a MidtransGateway
type MidtransOption func(*MidtransGateway)

// WithMidtransLogger sets the gateway logger
func WithMidtransLogger(logger *zap.Logger) MidtransOption {
	return func(g *MidtransGateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// withSnapAPI replaces the Snap client, used by tests
func withSnapAPI(api snapAPI) MidtransOption {
	return func(g *MidtransGateway) {
		g.snap = api
	}
}

// NewMidtransGateway creates a Snap gateway from the payment configuration
func NewMidtransGateway(cfg *config.PaymentConfig, opts ...MidtransOption) (*MidtransGateway, error) {
	if cfg == nil || cfg.ServerKey == "" {
		return nil, errors.New("payment: server key is required")
	}

	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	client := &snap.Client{}
	client.New(cfg.ServerKey, env)
	if cfg.CallbackURL != "" {
		client.Options.SetPaymentOverrideNotification(cfg.CallbackURL)
	}

	g := &MidtransGateway{
		snap:      client,
		serverKey: cfg.ServerKey,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CreateCheckout opens a Snap checkout keyed by the payment attempt ID
func (g *MidtransGateway) CreateCheckout(ctx context.Context, req feeapp.CheckoutRequest) (*feeapp.CheckoutSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snapReq, err := buildSnapRequest(req)
	if err != nil {
		return nil, err
	}

	resp, merr := g.snap.CreateTransaction(snapReq)
	if merr != nil {
		g.logger.Warn("Snap transaction rejected",
			zap.String("order_id", snapReq.TransactionDetails.OrderID),
			zap.Int("status_code", merr.GetStatusCode()),
			zap.String("message", merr.GetMessage()))
		return nil, fmt.Errorf("payment: create snap transaction: %s", merr.GetMessage())
	}
	if resp == nil || resp.Token == "" {
		return nil, errors.New("payment: snap returned no token")
	}

	g.logger.Debug("Snap checkout opened",
		zap.String("order_id", snapReq.TransactionDetails.OrderID))
	return &feeapp.CheckoutSession{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// CheckAmount rejects amounts Snap cannot charge
func (g *MidtransGateway) CheckAmount(amount decimal.Decimal) error {
	return checkWholeAmount(amount)
}

func checkWholeAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(0)) {
		return ErrFractionalAmount
	}
	return nil
}

func buildSnapRequest(req feeapp.CheckoutRequest) (*snap.Request, error) {
	if req.PaymentID == uuid.Nil {
		return nil, shared.NewInvalidInputError("payment id is required")
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewInvalidInputError("checkout amount must be positive")
	}
	if err := checkWholeAmount(req.Amount); err != nil {
		return nil, err
	}

	orderID := req.PaymentID.String()
	gross := req.Amount.IntPart()
	itemName := req.ItemName
	if itemName == "" {
		itemName = "Course fee"
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    orderID,
			Name:  truncate(itemName, midtransItemMaxLen),
			Price: gross,
			Qty:   1,
		}},
	}

	if req.CustomerName != "" || req.CustomerEmail != "" || req.CustomerPhone != "" {
		first, last := splitName(req.CustomerName)
		snapReq.CustomerDetail = &midtrans.CustomerDetails{
			FName: truncate(first, midtransNameMaxLen),
			LName: truncate(last, midtransNameMaxLen),
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		}
	}
	return snapReq, nil
}

type midtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}

// ParseNotification verifies the SHA-512 signature and maps the status
func (g *MidtransGateway) ParseNotification(_ context.Context, body []byte) (*feeapp.GatewayNotification, error) {
	var n midtransNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, shared.NewInvalidInputError("malformed notification body")
	}
	if n.OrderID == "" || n.StatusCode == "" || n.GrossAmount == "" || n.SignatureKey == "" {
		return nil, shared.NewInvalidInputError("notification is missing required fields")
	}

	expected := notificationSignature(n.OrderID, n.StatusCode, n.GrossAmount, g.serverKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(n.SignatureKey))) != 1 {
		g.logger.Warn("Rejected notification with bad signature",
			zap.String("order_id", n.OrderID))
		return nil, ErrInvalidSignature
	}

	paymentID, err := uuid.Parse(n.OrderID)
	if err != nil {
		return nil, shared.NewInvalidInputError("notification order id is not a payment id")
	}
	gross, err := decimal.NewFromString(n.GrossAmount)
	if err != nil {
		return nil, shared.NewInvalidInputError("notification gross amount is not a number")
	}

	raw := make(map[string]any)
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, shared.NewInvalidInputError("malformed notification body")
	}
	delete(raw, "signature_key")

	return &feeapp.GatewayNotification{
		PaymentID:       paymentID,
		TransactionID:   n.TransactionID,
		Outcome:         mapMidtransStatus(n.TransactionStatus, n.FraudStatus),
		StatusMessage:   n.StatusMessage,
		GrossAmount:     gross,
		GatewayFee:      decimal.Zero,
		RawPayload:      raw,
		PaymentType:     n.PaymentType,
		TransactionTime: n.TransactionTime,
	}, nil
}

func notificationSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func mapMidtransStatus(status, fraud string) feeapp.NotificationOutcome {
	switch strings.ToLower(status) {
	case midtransStatusCapture:
		switch strings.ToLower(fraud) {
		case "", midtransFraudAccept:
			return feeapp.NotificationOutcomeSuccess
		case midtransFraudChallenge:
			return feeapp.NotificationOutcomePending
		default:
			return feeapp.NotificationOutcomeFailed
		}
	case midtransStatusSettlement:
		return feeapp.NotificationOutcomeSuccess
	case midtransStatusDeny, midtransStatusCancel, midtransStatusExpire, midtransStatusFailure:
		return feeapp.NotificationOutcomeFailed
	case midtransStatusPending:
		return feeapp.NotificationOutcomePending
	default:
		return feeapp.NotificationOutcomePending
	}
}

func splitName(full string) (string, string) {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	_ feeapp.PaymentGateway        = (*MidtransGateway)(nil)
	_ feeapp.CheckoutAmountChecker = (*MidtransGateway)(nil)
)
