package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator supplies human-facing identifiers. Uniqueness is backed by
// unique constraints in the store; callers regenerate on ALREADY_EXISTS.
type IDGenerator interface {
	CertificateID(now time.Time) string
	VerificationCode() string
	ReceiptNumber(now time.Time) string
}

// UUIDGenerator derives identifiers from random UUIDs
type UUIDGenerator struct{}

// CertificateID returns CERT-<unix millis>-<8 upper-case hex>
func (UUIDGenerator) CertificateID(now time.Time) string {
	return fmt.Sprintf("CERT-%d-%s", now.UnixMilli(), randomHex(8))
}

// VerificationCode returns 12 upper-case hex characters
func (UUIDGenerator) VerificationCode() string {
	return randomHex(12)
}

// ReceiptNumber returns RCPT-<yyyymmdd>-<8 upper-case hex>
func (UUIDGenerator) ReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCPT-%s-%s", now.Format("20060102"), randomHex(8))
}

func randomHex(n int) string {
	s := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return s[:n]
}
