package certification_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)

type sequenceIDs struct{ n int }

func (s *sequenceIDs) CertificateID(now time.Time) string {
	s.n++
	return fmt.Sprintf("CERT-%d-%08d", now.UnixMilli(), s.n)
}

func (s *sequenceIDs) VerificationCode() string {
	return fmt.Sprintf("CODE%08d", s.n)
}

func (s *sequenceIDs) ReceiptNumber(now time.Time) string {
	return "RCPT-" + now.Format("20060102")
}

func issue(t *testing.T, expiry *time.Time) *certification.Certificate {
	t.Helper()
	c, err := certification.NewCertificate(uuid.New(), certification.IssueRequest{
		StudentID:  uuid.New(),
		CourseID:   uuid.New(),
		ExpiryDate: expiry,
	}, &sequenceIDs{}, testNow)
	require.NoError(t, err)
	return c
}

func datePtr(t time.Time) *time.Time { return &t }

func TestNewCertificate(t *testing.T) {
	t.Run("issues active certificate with identifiers", func(t *testing.T) {
		c := issue(t, nil)

		assert.Equal(t, certification.CertificateStatusActive, c.Status)
		assert.Equal(t, fmt.Sprintf("CERT-%d-00000001", testNow.UnixMilli()), c.CertificateID)
		assert.Equal(t, "CODE00000001", c.VerificationCode)
		assert.Equal(t, shared.DateOf(testNow), c.IssueDate)
		assert.Equal(t, 0, c.VerificationCount)
		assert.False(t, c.IsVerified)

		events := c.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, certification.EventTypeCertificateIssued, events[0].EventType())
	})

	t.Run("default generator formats", func(t *testing.T) {
		c, err := certification.NewCertificate(uuid.New(), certification.IssueRequest{
			StudentID: uuid.New(),
			CourseID:  uuid.New(),
		}, shared.UUIDGenerator{}, testNow)
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(fmt.Sprintf(`^CERT-%d-[0-9A-F]{8}$`, testNow.UnixMilli())), c.CertificateID)
		assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{12}$`), c.VerificationCode)
	})

	t.Run("regenerating draws new identifiers", func(t *testing.T) {
		ids := &sequenceIDs{}
		c, err := certification.NewCertificate(uuid.New(), certification.IssueRequest{
			StudentID: uuid.New(),
			CourseID:  uuid.New(),
		}, ids, testNow)
		require.NoError(t, err)
		first := c.CertificateID

		c.RegenerateIdentifiers(ids, testNow)
		assert.NotEqual(t, first, c.CertificateID)

		events := c.GetDomainEvents()
		require.Len(t, events, 1)
		issued, ok := events[0].(*certification.CertificateIssuedEvent)
		require.True(t, ok)
		assert.Equal(t, c.CertificateID, issued.CertificateID)
		assert.Equal(t, c.VerificationCode, issued.VerificationCode)
	})

	t.Run("expiry must follow issue date", func(t *testing.T) {
		_, err := certification.NewCertificate(uuid.New(), certification.IssueRequest{
			StudentID:  uuid.New(),
			CourseID:   uuid.New(),
			ExpiryDate: datePtr(testNow),
		}, &sequenceIDs{}, testNow)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("missing student", func(t *testing.T) {
		_, err := certification.NewCertificate(uuid.New(), certification.IssueRequest{CourseID: uuid.New()}, &sequenceIDs{}, testNow)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestCertificate_Validity(t *testing.T) {
	expiry := shared.DateOf(testNow).AddDate(0, 0, 30)

	tests := []struct {
		name        string
		expiry      *time.Time
		status      certification.CertificateStatus
		at          time.Time
		wantValid   bool
		wantExpired bool
	}{
		{"active without expiry", nil, certification.CertificateStatusActive, testNow.AddDate(10, 0, 0), true, false},
		{"active before expiry", &expiry, certification.CertificateStatusActive, expiry.AddDate(0, 0, -1), true, false},
		{"on expiry date is neither valid nor expired", &expiry, certification.CertificateStatusActive, expiry.Add(12 * time.Hour), false, false},
		{"after expiry", &expiry, certification.CertificateStatusActive, expiry.AddDate(0, 0, 1), false, true},
		{"suspended before expiry", &expiry, certification.CertificateStatusSuspended, testNow, false, false},
		{"revoked without expiry", nil, certification.CertificateStatusRevoked, testNow, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := issue(t, tt.expiry)
			c.Status = tt.status

			assert.Equal(t, tt.wantValid, c.IsValid(tt.at))
			assert.Equal(t, tt.wantExpired, c.IsExpired(tt.at))
		})
	}
}

func TestCertificate_Revoke(t *testing.T) {
	c := issue(t, nil)
	require.True(t, c.IsValid(testNow))

	require.NoError(t, c.Revoke("fraud", testNow))

	assert.False(t, c.IsValid(testNow))
	assert.Equal(t, certification.CertificateStatusRevoked, c.Status)
	assert.Equal(t, "fraud", c.RevocationReason)
	require.NotNil(t, c.RevokedAt)
	assert.Equal(t, testNow, *c.RevokedAt)

	later := testNow.Add(24 * time.Hour)
	err := c.Revoke("second thoughts", later)

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, "fraud", c.RevocationReason)
	assert.Equal(t, testNow, *c.RevokedAt)
	assert.False(t, c.IsValid(later))

	for _, status := range []certification.CertificateStatus{
		certification.CertificateStatusActive,
		certification.CertificateStatusSuspended,
		certification.CertificateStatusExpired,
	} {
		assert.Error(t, c.ChangeStatus(status, later))
		assert.Equal(t, certification.CertificateStatusRevoked, c.Status)
	}
}

func TestCertificate_Revoke_RequiresReason(t *testing.T) {
	c := issue(t, nil)
	assert.ErrorIs(t, c.Revoke("", testNow), shared.ErrInvalidInput)
	assert.Equal(t, certification.CertificateStatusActive, c.Status)
}

func TestCertificate_Verify(t *testing.T) {
	c := issue(t, nil)
	require.NoError(t, c.Revoke("fraud", testNow))

	clock := shared.NewFixedClock(testNow)
	for i := 0; i < 3; i++ {
		clock.Advance(time.Minute)
		c.Verify(clock.Now())
	}

	assert.True(t, c.IsVerified)
	assert.Equal(t, 3, c.VerificationCount)
	require.NotNil(t, c.LastVerifiedAt)
	assert.Equal(t, clock.Now(), *c.LastVerifiedAt)
	assert.Equal(t, certification.CertificateStatusRevoked, c.Status)
	assert.False(t, c.IsValid(clock.Now()))
}

func TestCertificate_ChangeStatus(t *testing.T) {
	t.Run("suspend and reinstate", func(t *testing.T) {
		c := issue(t, nil)
		require.NoError(t, c.ChangeStatus(certification.CertificateStatusSuspended, testNow))
		assert.False(t, c.IsValid(testNow))
		require.NoError(t, c.ChangeStatus(certification.CertificateStatusActive, testNow))
		assert.True(t, c.IsValid(testNow))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		c := issue(t, nil)
		version := c.GetVersion()
		require.NoError(t, c.ChangeStatus(certification.CertificateStatusActive, testNow))
		assert.Equal(t, version, c.GetVersion())
	})

	t.Run("expire only after expiry date", func(t *testing.T) {
		expiry := shared.DateOf(testNow).AddDate(0, 0, 1)
		c := issue(t, &expiry)

		assert.ErrorIs(t, c.ChangeStatus(certification.CertificateStatusExpired, testNow), shared.ErrInvalidState)
		require.NoError(t, c.ChangeStatus(certification.CertificateStatusExpired, testNow.AddDate(0, 0, 2)))
		assert.Equal(t, certification.CertificateStatusExpired, c.Status)
	})

	t.Run("revoked only through revoke", func(t *testing.T) {
		c := issue(t, nil)
		assert.ErrorIs(t, c.ChangeStatus(certification.CertificateStatusRevoked, testNow), shared.ErrInvalidInput)
	})
}

func TestCertificate_AttachDocument(t *testing.T) {
	c := issue(t, nil)
	assert.False(t, c.HasDocument())
	require.NoError(t, c.AttachDocument("certificates/a.pdf", "", testNow))
	assert.True(t, c.HasDocument())

	require.NoError(t, c.Revoke("error", testNow))
	assert.ErrorIs(t, c.AttachDocument("certificates/b.pdf", "", testNow), shared.ErrInvalidState)
}
