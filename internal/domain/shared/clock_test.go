package shared

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2026, 1, 31, 23, 30, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), Today(clock))

	clock.Advance(time.Hour)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Today(clock))

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}

func TestUUIDGenerator(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	gen := UUIDGenerator{}

	assert.Regexp(t, regexp.MustCompile(`^CERT-\d+-[0-9A-F]{8}$`), gen.CertificateID(now))
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{12}$`), gen.VerificationCode())
	assert.Regexp(t, regexp.MustCompile(`^RCPT-20260309-[0-9A-F]{8}$`), gen.ReceiptNumber(now))
	assert.NotEqual(t, gen.VerificationCode(), gen.VerificationCode())
}

func TestDomainError_Is(t *testing.T) {
	err := NewInvalidStateError("nope")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.True(t, IsNotFound(NewDomainError(CodeNotFound, "x")))
}

func TestFilter(t *testing.T) {
	f := NewFilter(0, 0, "", "", "java")
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "java", f.Search)
	assert.Equal(t, 0, f.Offset())
	assert.Equal(t, 20, Filter{Page: 2, PageSize: 20}.Offset())
}
