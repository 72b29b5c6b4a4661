package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// FeeLedgerModel is the persistence model for fee.FeeLedger
type FeeLedgerModel struct {
	CenterAggregateModel
	StudentID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourseID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountReason     string          `gorm:"type:varchar(500)"`
	LateFee            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DueDate            time.Time       `gorm:"type:date;not null;index"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status             fee.FeeStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentPlan        string          `gorm:"type:varchar(200)"`
	Installments       int             `gorm:"not null;default:1"`
	CurrentInstallment int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (FeeLedgerModel) TableName() string {
	return "fee_ledgers"
}

// ToDomain converts the model to a fee ledger aggregate
func (m *FeeLedgerModel) ToDomain() *fee.FeeLedger {
	return &fee.FeeLedger{
		CenterAggregateRoot: m.ToDomainCenterAggregateRoot(),
		StudentID:           m.StudentID,
		CourseID:            m.CourseID,
		TotalAmount:         m.TotalAmount,
		DiscountAmount:      m.DiscountAmount,
		DiscountReason:      m.DiscountReason,
		LateFee:             m.LateFee,
		DueDate:             m.DueDate,
		PaidAmount:          m.PaidAmount,
		Status:              m.Status,
		PaymentPlan:         m.PaymentPlan,
		Installments:        m.Installments,
		CurrentInstallment:  m.CurrentInstallment,
	}
}

// FeeLedgerModelFromDomain builds a model from a fee ledger aggregate
func FeeLedgerModelFromDomain(l *fee.FeeLedger) *FeeLedgerModel {
	m := &FeeLedgerModel{
		StudentID:          l.StudentID,
		CourseID:           l.CourseID,
		TotalAmount:        l.TotalAmount,
		DiscountAmount:     l.DiscountAmount,
		DiscountReason:     l.DiscountReason,
		LateFee:            l.LateFee,
		DueDate:            l.DueDate,
		PaidAmount:         l.PaidAmount,
		Status:             l.Status,
		PaymentPlan:        l.PaymentPlan,
		Installments:       l.Installments,
		CurrentInstallment: l.CurrentInstallment,
	}
	m.FromDomainCenterAggregateRoot(l.CenterAggregateRoot)
	return m
}

// PaymentAttemptModel is the persistence model for fee.PaymentAttempt.
// The raw gateway notification is kept as JSON for reconciliation.
type PaymentAttemptModel struct {
	CenterAggregateModel
	FeeID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Method           fee.PaymentMethod `gorm:"type:varchar(30);not null"`
	Status           fee.PaymentStatus `gorm:"type:varchar(30);not null;default:'PENDING';index"`
	TransactionID    *string           `gorm:"type:varchar(100);uniqueIndex"`
	GatewayReference string            `gorm:"type:varchar(100)"`
	GatewayResponse  string            `gorm:"type:text"`
	GatewayPayload   datatypes.JSONMap `gorm:"type:jsonb"`
	GatewayFee       decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	CheckoutToken    string            `gorm:"type:varchar(200)"`
	CheckoutURL      string            `gorm:"type:varchar(500)"`
	ReceiptNumber    string            `gorm:"type:varchar(50);index"`
	Notes            string            `gorm:"type:text"`
	PaymentDate      *time.Time
	RetryCount       int `gorm:"not null;default:0"`
	LastRetryAt      *time.Time
}

// TableName returns the table name for GORM
func (PaymentAttemptModel) TableName() string {
	return "payment_attempts"
}

// ToDomain converts the model to a payment attempt aggregate
func (m *PaymentAttemptModel) ToDomain() *fee.PaymentAttempt {
	var payload map[string]any
	if len(m.GatewayPayload) > 0 {
		payload = map[string]any(m.GatewayPayload)
	}
	return &fee.PaymentAttempt{
		CenterAggregateRoot: m.ToDomainCenterAggregateRoot(),
		FeeID:               m.FeeID,
		Amount:              m.Amount,
		Method:              m.Method,
		Status:              m.Status,
		TransactionID:       m.TransactionID,
		GatewayReference:    m.GatewayReference,
		GatewayResponse:     m.GatewayResponse,
		GatewayPayload:      payload,
		GatewayFee:          m.GatewayFee,
		CheckoutToken:       m.CheckoutToken,
		CheckoutURL:         m.CheckoutURL,
		ReceiptNumber:       m.ReceiptNumber,
		Notes:               m.Notes,
		PaymentDate:         m.PaymentDate,
		RetryCount:          m.RetryCount,
		LastRetryAt:         m.LastRetryAt,
	}
}

// PaymentAttemptModelFromDomain builds a model from a payment attempt aggregate
func PaymentAttemptModelFromDomain(p *fee.PaymentAttempt) *PaymentAttemptModel {
	m := &PaymentAttemptModel{
		FeeID:            p.FeeID,
		Amount:           p.Amount,
		Method:           p.Method,
		Status:           p.Status,
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
		LastRetryAt:      p.LastRetryAt,
	}
	if p.GatewayPayload != nil {
		m.GatewayPayload = datatypes.JSONMap(p.GatewayPayload)
	}
	m.FromDomainCenterAggregateRoot(p.CenterAggregateRoot)
	return m
}
