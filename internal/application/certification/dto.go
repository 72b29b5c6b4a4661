package certification

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/certification"
)

// IssueCertificateRequest issues a certificate to a student for a course
type IssueCertificateRequest struct {
	StudentID  uuid.UUID
	CourseID   uuid.UUID
	IssueDate  time.Time
	ExpiryDate *time.Time
	IssuedBy   string
	Remarks    string
}

// CertificateListFilter narrows certificate listings
type CertificateListFilter struct {
	StudentID *uuid.UUID
	CourseID  *uuid.UUID
	Status    certification.CertificateStatus
	Search    string
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
}

// CertificateResponse is a certificate as returned by the API
type CertificateResponse struct {
	ID                uuid.UUID  `json:"id"`
	CenterID          uuid.UUID  `json:"center_id"`
	CertificateID     string     `json:"certificate_id"`
	VerificationCode  string     `json:"verification_code"`
	StudentID         uuid.UUID  `json:"student_id"`
	CourseID          uuid.UUID  `json:"course_id"`
	IssueDate         time.Time  `json:"issue_date"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	CertificateURL    string     `json:"certificate_url,omitempty"`
	Status            string     `json:"status"`
	IsValid           bool       `json:"is_valid"`
	IsExpired         bool       `json:"is_expired"`
	IssuedBy          string     `json:"issued_by,omitempty"`
	IssuedAt          time.Time  `json:"issued_at"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
	RevocationReason  string     `json:"revocation_reason,omitempty"`
	Remarks           string     `json:"remarks,omitempty"`
	IsVerified        bool       `json:"is_verified"`
	VerificationCount int        `json:"verification_count"`
	LastVerifiedAt    *time.Time `json:"last_verified_at,omitempty"`
	HasDocument       bool       `json:"has_document"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Version           int        `json:"version"`
}

// ToCertificateResponse converts a certificate, evaluating validity at now
func ToCertificateResponse(c *certification.Certificate, now time.Time) CertificateResponse {
	return CertificateResponse{
		ID:                c.ID,
		CenterID:          c.CenterID,
		CertificateID:     c.CertificateID,
		VerificationCode:  c.VerificationCode,
		StudentID:         c.StudentID,
		CourseID:          c.CourseID,
		IssueDate:         c.IssueDate,
		ExpiryDate:        c.ExpiryDate,
		CertificateURL:    c.CertificateURL,
		Status:            string(c.Status),
		IsValid:           c.IsValid(now),
		IsExpired:         c.IsExpired(now),
		IssuedBy:          c.IssuedBy,
		IssuedAt:          c.IssuedAt,
		RevokedAt:         c.RevokedAt,
		RevocationReason:  c.RevocationReason,
		Remarks:           c.Remarks,
		IsVerified:        c.IsVerified,
		VerificationCount: c.VerificationCount,
		LastVerifiedAt:    c.LastVerifiedAt,
		HasDocument:       c.HasDocument(),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		Version:           c.GetVersion(),
	}
}

// VerificationResponse is the public answer to a verification lookup
type VerificationResponse struct {
	CertificateID     string     `json:"certificate_id"`
	Status            string     `json:"status"`
	IsValid           bool       `json:"is_valid"`
	IsExpired         bool       `json:"is_expired"`
	StudentName       string     `json:"student_name,omitempty"`
	CourseName        string     `json:"course_name,omitempty"`
	IssueDate         time.Time  `json:"issue_date"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	RevocationReason  string     `json:"revocation_reason,omitempty"`
	VerificationCount int        `json:"verification_count"`
	VerifiedAt        time.Time  `json:"verified_at"`
}

// DownloadResponse carries a presigned download link
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
