package certification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
)

// CertificateStatus is the lifecycle status of a certificate
type CertificateStatus string

const (
	CertificateStatusActive    CertificateStatus = "ACTIVE"
	CertificateStatusExpired   CertificateStatus = "EXPIRED"
	CertificateStatusRevoked   CertificateStatus = "REVOKED"
	CertificateStatusSuspended CertificateStatus = "SUSPENDED"
)

// IsValid checks if the status is a known value
func (s CertificateStatus) IsValid() bool {
	switch s {
	case CertificateStatusActive, CertificateStatusExpired, CertificateStatusRevoked, CertificateStatusSuspended:
		return true
	}
	return false
}

// ParseCertificateStatus converts a wire value into a CertificateStatus
func ParseCertificateStatus(s string) (CertificateStatus, error) {
	status := CertificateStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewInvalidInputError(fmt.Sprintf("Unknown certificate status: %q", s))
	}
	return status, nil
}

// Certificate is a course completion certificate issued to a student.
//
// CertificateID and VerificationCode are generated once and never change.
// REVOKED is terminal.
type Certificate struct {
	shared.CenterAggregateRoot
	CertificateID     string
	VerificationCode  string
	StudentID         uuid.UUID
	CourseID          uuid.UUID
	IssueDate         time.Time
	ExpiryDate        *time.Time
	CertificateURL    string
	PDFPath           string
	Status            CertificateStatus
	IssuedBy          string
	IssuedAt          time.Time
	RevokedAt         *time.Time
	RevocationReason  string
	Remarks           string
	IsVerified        bool
	VerificationCount int
	LastVerifiedAt    *time.Time
}

// IssueRequest carries what is needed to issue a certificate
type IssueRequest struct {
	StudentID  uuid.UUID
	CourseID   uuid.UUID
	IssueDate  time.Time
	ExpiryDate *time.Time
	IssuedBy   string
	Remarks    string
}

// NewCertificate issues an ACTIVE certificate with freshly generated
// identifiers. A zero issue date defaults to today.
func NewCertificate(centerID uuid.UUID, req IssueRequest, ids shared.IDGenerator, now time.Time) (*Certificate, error) {
	if req.StudentID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Student ID cannot be empty")
	}
	if req.CourseID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Course ID cannot be empty")
	}
	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = now
	}
	issueDate = shared.DateOf(issueDate)

	var expiry *time.Time
	if req.ExpiryDate != nil {
		d := shared.DateOf(*req.ExpiryDate)
		if !d.After(issueDate) {
			return nil, shared.NewInvalidInputError("Expiry date must be after the issue date")
		}
		expiry = &d
	}

	c := &Certificate{
		CenterAggregateRoot: shared.NewCenterAggregateRoot(centerID, now),
		StudentID:           req.StudentID,
		CourseID:            req.CourseID,
		IssueDate:           issueDate,
		ExpiryDate:          expiry,
		Status:              CertificateStatusActive,
		IssuedBy:            req.IssuedBy,
		IssuedAt:            now,
		Remarks:             req.Remarks,
	}
	c.RegenerateIdentifiers(ids, now)
	return c, nil
}

// RegenerateIdentifiers draws new identifiers. It is only meaningful before
// the certificate is first persisted, when the store reported a collision.
// The pending issued event is replaced so it carries the new identifiers.
func (c *Certificate) RegenerateIdentifiers(ids shared.IDGenerator, now time.Time) {
	c.CertificateID = ids.CertificateID(now)
	c.VerificationCode = ids.VerificationCode()
	c.ClearDomainEvents()
	c.AddDomainEvent(NewCertificateIssuedEvent(c, now))
}

// IsValid reports whether the certificate is ACTIVE and not past expiry
func (c *Certificate) IsValid(now time.Time) bool {
	if c.Status != CertificateStatusActive {
		return false
	}
	return c.ExpiryDate == nil || shared.DateOf(now).Before(*c.ExpiryDate)
}

// IsExpired reports whether today is strictly after the expiry date
func (c *Certificate) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && shared.DateOf(now).After(*c.ExpiryDate)
}

// IsRevoked reports whether the certificate has been revoked
func (c *Certificate) IsRevoked() bool {
	return c.Status == CertificateStatusRevoked
}

// Revoke permanently invalidates the certificate. Revoking twice is an
// invalid state and leaves the first revocation untouched.
func (c *Certificate) Revoke(reason string, now time.Time) error {
	if c.IsRevoked() {
		return shared.NewInvalidStateError("Certificate is already revoked")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewInvalidInputError("Revocation reason is required")
	}
	c.Status = CertificateStatusRevoked
	revokedAt := now
	c.RevokedAt = &revokedAt
	c.RevocationReason = reason
	c.Touch(now)
	c.IncrementVersion()
	c.AddDomainEvent(NewCertificateRevokedEvent(c, now))
	return nil
}

// Verify records a verification. It is an audit counter only and does not
// affect validity.
func (c *Certificate) Verify(now time.Time) {
	c.IsVerified = true
	c.VerificationCount++
	verifiedAt := now
	c.LastVerifiedAt = &verifiedAt
	c.Touch(now)
	c.IncrementVersion()
}

// Suspend temporarily withdraws an active certificate
func (c *Certificate) Suspend(now time.Time) error {
	if c.Status != CertificateStatusActive {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot suspend certificate in %s status", c.Status))
	}
	return c.setStatus(CertificateStatusSuspended, now)
}

// Reinstate reactivates a suspended certificate
func (c *Certificate) Reinstate(now time.Time) error {
	if c.Status != CertificateStatusSuspended {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot reinstate certificate in %s status", c.Status))
	}
	return c.setStatus(CertificateStatusActive, now)
}

// MarkExpired moves an active certificate past its expiry date to EXPIRED
func (c *Certificate) MarkExpired(now time.Time) error {
	if c.Status != CertificateStatusActive {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot expire certificate in %s status", c.Status))
	}
	if !c.IsExpired(now) {
		return shared.NewInvalidStateError("Certificate has not reached its expiry date")
	}
	return c.setStatus(CertificateStatusExpired, now)
}

// ChangeStatus applies a requested status through the matching transition.
// REVOKED is only reachable through Revoke.
func (c *Certificate) ChangeStatus(to CertificateStatus, now time.Time) error {
	if c.Status == to {
		return nil
	}
	switch to {
	case CertificateStatusSuspended:
		return c.Suspend(now)
	case CertificateStatusActive:
		return c.Reinstate(now)
	case CertificateStatusExpired:
		return c.MarkExpired(now)
	case CertificateStatusRevoked:
		return shared.NewInvalidInputError("Use revoke to revoke a certificate")
	default:
		return shared.NewInvalidInputError(fmt.Sprintf("Unknown certificate status: %q", to))
	}
}

// AttachDocument records where the rendered PDF is stored
func (c *Certificate) AttachDocument(pdfPath, url string, now time.Time) error {
	if c.IsRevoked() {
		return shared.NewInvalidStateError("Cannot generate a revoked certificate")
	}
	c.PDFPath = pdfPath
	c.CertificateURL = url
	c.Touch(now)
	c.IncrementVersion()
	return nil
}

// HasDocument reports whether a PDF has been generated
func (c *Certificate) HasDocument() bool {
	return c.PDFPath != ""
}

func (c *Certificate) setStatus(to CertificateStatus, now time.Time) error {
	from := c.Status
	c.Status = to
	c.Touch(now)
	c.IncrementVersion()
	c.AddDomainEvent(NewCertificateStatusChangedEvent(c, from, now))
	return nil
}
