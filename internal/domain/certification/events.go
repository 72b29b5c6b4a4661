package certification

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// AggregateTypeCertificate is the aggregate type name
const AggregateTypeCertificate = "Certificate"

// Event types
const (
	EventTypeCertificateIssued        = "CertificateIssued"
	EventTypeCertificateRevoked       = "CertificateRevoked"
	EventTypeCertificateStatusChanged = "CertificateStatusChanged"
)

// CertificateIssuedEvent is raised when a certificate is issued
type CertificateIssuedEvent struct {
	shared.BaseDomainEvent
	CertificateID    string     `json:"certificate_id"`
	VerificationCode string     `json:"verification_code"`
	StudentID        uuid.UUID  `json:"student_id"`
	CourseID         uuid.UUID  `json:"course_id"`
	IssueDate        time.Time  `json:"issue_date"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
}

// NewCertificateIssuedEvent creates a CertificateIssuedEvent
func NewCertificateIssuedEvent(c *Certificate, at time.Time) *CertificateIssuedEvent {
	return &CertificateIssuedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCertificateIssued, AggregateTypeCertificate, c.ID, c.CenterID, at),
		CertificateID:    c.CertificateID,
		VerificationCode: c.VerificationCode,
		StudentID:        c.StudentID,
		CourseID:         c.CourseID,
		IssueDate:        c.IssueDate,
		ExpiryDate:       c.ExpiryDate,
	}
}

// CertificateRevokedEvent is raised when a certificate is revoked
type CertificateRevokedEvent struct {
	shared.BaseDomainEvent
	CertificateID string `json:"certificate_id"`
	Reason        string `json:"reason"`
}

// NewCertificateRevokedEvent creates a CertificateRevokedEvent
func NewCertificateRevokedEvent(c *Certificate, at time.Time) *CertificateRevokedEvent {
	return &CertificateRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCertificateRevoked, AggregateTypeCertificate, c.ID, c.CenterID, at),
		CertificateID:   c.CertificateID,
		Reason:          c.RevocationReason,
	}
}

// CertificateStatusChangedEvent is raised on suspend, reinstate and expiry
type CertificateStatusChangedEvent struct {
	shared.BaseDomainEvent
	CertificateID string            `json:"certificate_id"`
	FromStatus    CertificateStatus `json:"from_status"`
	ToStatus      CertificateStatus `json:"to_status"`
}

// NewCertificateStatusChangedEvent creates a CertificateStatusChangedEvent
func NewCertificateStatusChangedEvent(c *Certificate, from CertificateStatus, at time.Time) *CertificateStatusChangedEvent {
	return &CertificateStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCertificateStatusChanged, AggregateTypeCertificate, c.ID, c.CenterID, at),
		CertificateID:   c.CertificateID,
		FromStatus:      from,
		ToStatus:        c.Status,
	}
}
