package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/certification"
)

// CertificateModel is the persistence model for certification.Certificate.
// CertificateID and VerificationCode are unique across all centers.
type CertificateModel struct {
	CenterAggregateModel
	CertificateID     string                          `gorm:"type:varchar(50);not null;uniqueIndex"`
	VerificationCode  string                          `gorm:"type:varchar(32);not null;uniqueIndex"`
	StudentID         uuid.UUID                       `gorm:"type:uuid;not null;index"`
	CourseID          uuid.UUID                       `gorm:"type:uuid;not null;index"`
	IssueDate         time.Time                       `gorm:"type:date;not null"`
	ExpiryDate        *time.Time                      `gorm:"type:date"`
	CertificateURL    string                          `gorm:"type:varchar(500)"`
	PDFPath           string                          `gorm:"type:varchar(500)"`
	Status            certification.CertificateStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	IssuedBy          string                          `gorm:"type:varchar(100)"`
	IssuedAt          time.Time                       `gorm:"not null"`
	RevokedAt         *time.Time
	RevocationReason  string `gorm:"type:varchar(500)"`
	Remarks           string `gorm:"type:text"`
	IsVerified        bool   `gorm:"not null;default:false"`
	VerificationCount int    `gorm:"not null;default:0"`
	LastVerifiedAt    *time.Time
}

// TableName returns the table name for GORM
func (CertificateModel) TableName() string {
	return "certificates"
}

// ToDomain converts the model to a certificate aggregate
func (m *CertificateModel) ToDomain() *certification.Certificate {
	return &certification.Certificate{
		CenterAggregateRoot: m.ToDomainCenterAggregateRoot(),
		CertificateID:       m.CertificateID,
		VerificationCode:    m.VerificationCode,
		StudentID:           m.StudentID,
		CourseID:            m.CourseID,
		IssueDate:           m.IssueDate,
		ExpiryDate:          m.ExpiryDate,
		CertificateURL:      m.CertificateURL,
		PDFPath:             m.PDFPath,
		Status:              m.Status,
		IssuedBy:            m.IssuedBy,
		IssuedAt:            m.IssuedAt,
		RevokedAt:           m.RevokedAt,
		RevocationReason:    m.RevocationReason,
		Remarks:             m.Remarks,
		IsVerified:          m.IsVerified,
		VerificationCount:   m.VerificationCount,
		LastVerifiedAt:      m.LastVerifiedAt,
	}
}

// CertificateModelFromDomain builds a model from a certificate aggregate
func CertificateModelFromDomain(c *certification.Certificate) *CertificateModel {
	m := &CertificateModel{
		CertificateID:     c.CertificateID,
		VerificationCode:  c.VerificationCode,
		StudentID:         c.StudentID,
		CourseID:          c.CourseID,
		IssueDate:         c.IssueDate,
		ExpiryDate:        c.ExpiryDate,
		CertificateURL:    c.CertificateURL,
		PDFPath:           c.PDFPath,
		Status:            c.Status,
		IssuedBy:          c.IssuedBy,
		IssuedAt:          c.IssuedAt,
		RevokedAt:         c.RevokedAt,
		RevocationReason:  c.RevocationReason,
		Remarks:           c.Remarks,
		IsVerified:        c.IsVerified,
		VerificationCount: c.VerificationCount,
		LastVerifiedAt:    c.LastVerifiedAt,
	}
	m.FromDomainCenterAggregateRoot(c.CenterAggregateRoot)
	return m
}
