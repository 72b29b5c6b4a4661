package certification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document is the data printed on a certificate
type Document struct {
	CertificateID    string
	VerificationCode string
	StudentName      string
	CourseCode       string
	CourseName       string
	IssueDate        time.Time
	ExpiryDate       *time.Time
	IssuedBy         string
	VerifyURL        string
}

// Renderer turns a certificate document into PDF bytes
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// DocumentStore keeps rendered certificates
type DocumentStore interface {
	// Put stores the object and returns its URL
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	// PresignGet returns a time-limited download URL
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// VerificationCache maps verification codes to certificate IDs.
// Codes never change, so entries never go stale except by deletion.
type VerificationCache interface {
	Get(ctx context.Context, code string) (uuid.UUID, bool, error)
	Set(ctx context.Context, code string, id uuid.UUID) error
	Delete(ctx context.Context, code string) error
}

// MailMessage is a single outgoing email
type MailMessage struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer sends email
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
