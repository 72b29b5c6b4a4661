package certification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type sequenceIDs struct{ n int }

func (s *sequenceIDs) CertificateID(time.Time) string {
	s.n++
	return fmt.Sprintf("CERT-%d-0000000%d", testNow.UnixMilli(), s.n)
}
func (s *sequenceIDs) VerificationCode() string       { return fmt.Sprintf("00000000000%d", s.n) }
func (s *sequenceIDs) ReceiptNumber(time.Time) string { return "" }

type MockRenderer struct{ mock.Mock }

func (m *MockRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockDocumentStore struct{ mock.Mock }

func (m *MockDocumentStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]uuid.UUID
	gets    int
}

func (c *mapCache) Get(_ context.Context, code string) (uuid.UUID, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	id, ok := c.entries[code]
	return id, ok, nil
}

func (c *mapCache) Set(_ context.Context, code string, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[code] = id
	return nil
}

func (c *mapCache) Delete(_ context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, code)
	return nil
}

type certFixture struct {
	certs     *testutil.MockCertificateRepository
	students  *testutil.MockStudentRepository
	courses   *testutil.MockCourseRepository
	publisher *testutil.RecordingPublisher
	clock     *shared.FixedClock
	ids       *sequenceIDs
	centerID  uuid.UUID
	student   *academic.Student
	course    *academic.Course
}

func newCertFixture(t *testing.T) *certFixture {
	t.Helper()
	centerID := uuid.New()
	student, err := academic.NewStudent(centerID, academic.StudentInput{
		FirstName: "Meera",
		LastName:  "Nair",
		Email:     "meera@example.com",
	}, testNow)
	require.NoError(t, err)
	course, err := academic.NewCourse(centerID, academic.CourseInput{
		Code: "DS-200",
		Name: "Data Structures",
		Fees: decimal.NewFromInt(800),
	}, testNow)
	require.NoError(t, err)

	f := &certFixture{
		certs:     new(testutil.MockCertificateRepository),
		students:  new(testutil.MockStudentRepository),
		courses:   new(testutil.MockCourseRepository),
		publisher: &testutil.RecordingPublisher{},
		clock:     shared.NewFixedClock(testNow),
		ids:       &sequenceIDs{},
		centerID:  centerID,
		student:   student,
		course:    course,
	}
	f.students.On("FindByIDForCenter", mock.Anything, centerID, student.ID).Return(student, nil).Maybe()
	f.courses.On("FindByIDForCenter", mock.Anything, centerID, course.ID).Return(course, nil).Maybe()
	return f
}

func (f *certFixture) service() *CertificateService {
	svc := NewCertificateService(f.certs, f.students, f.courses, NewNoOpTransactionScope(f.certs))
	svc.SetClock(f.clock)
	svc.SetIDGenerator(f.ids)
	svc.SetEventPublisher(f.publisher)
	return svc
}

func (f *certFixture) certificate(t *testing.T, expiry *time.Time) *certification.Certificate {
	t.Helper()
	c, err := certification.NewCertificate(f.centerID, certification.IssueRequest{
		StudentID:  f.student.ID,
		CourseID:   f.course.ID,
		ExpiryDate: expiry,
	}, shared.UUIDGenerator{}, testNow)
	require.NoError(t, err)
	c.ClearDomainEvents()
	return c
}

func TestCertificateService_Issue(t *testing.T) {
	t.Run("issues active certificate", func(t *testing.T) {
		f := newCertFixture(t)
		f.certs.On("Create", mock.Anything, mock.AnythingOfType("*certification.Certificate")).Return(nil)

		resp, err := f.service().Issue(context.Background(), f.centerID, IssueCertificateRequest{
			StudentID: f.student.ID,
			CourseID:  f.course.ID,
			IssuedBy:  "Director",
		})

		require.NoError(t, err)
		assert.Equal(t, string(certification.CertificateStatusActive), resp.Status)
		assert.True(t, resp.IsValid)
		assert.Equal(t, shared.DateOf(testNow), resp.IssueDate)
		assert.Equal(t, []string{certification.EventTypeCertificateIssued}, f.publisher.EventTypes())
	})

	t.Run("regenerates identifiers on collision", func(t *testing.T) {
		f := newCertFixture(t)
		f.certs.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists).Once()
		f.certs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := f.service().Issue(context.Background(), f.centerID, IssueCertificateRequest{
			StudentID: f.student.ID,
			CourseID:  f.course.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "000000000002", resp.VerificationCode)
		f.certs.AssertNumberOfCalls(t, "Create", 2)

		events := f.publisher.Events()
		require.Len(t, events, 1)
		issued, ok := events[0].(*certification.CertificateIssuedEvent)
		require.True(t, ok)
		assert.Equal(t, resp.VerificationCode, issued.VerificationCode)
		assert.Equal(t, resp.CertificateID, issued.CertificateID)
	})

	t.Run("gives up after three collisions", func(t *testing.T) {
		f := newCertFixture(t)
		f.certs.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := f.service().Issue(context.Background(), f.centerID, IssueCertificateRequest{
			StudentID: f.student.ID,
			CourseID:  f.course.ID,
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		f.certs.AssertNumberOfCalls(t, "Create", MaxIssueAttempts)
		assert.Empty(t, f.publisher.Events())
	})

	t.Run("expiry before issue", func(t *testing.T) {
		f := newCertFixture(t)
		expiry := testNow.AddDate(0, 0, -1)

		_, err := f.service().Issue(context.Background(), f.centerID, IssueCertificateRequest{
			StudentID:  f.student.ID,
			CourseID:   f.course.ID,
			ExpiryDate: &expiry,
		})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown student", func(t *testing.T) {
		f := newCertFixture(t)
		missing := uuid.New()
		f.students.On("FindByIDForCenter", mock.Anything, f.centerID, missing).
			Return(nil, shared.NewNotFoundError("Student", missing))

		_, err := f.service().Issue(context.Background(), f.centerID, IssueCertificateRequest{
			StudentID: missing,
			CourseID:  f.course.ID,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCertificateService_Revoke(t *testing.T) {
	f := newCertFixture(t)
	cert := f.certificate(t, nil)
	f.certs.On("FindByIDForUpdate", mock.Anything, f.centerID, cert.ID).Return(cert, nil)
	f.certs.On("SaveWithLock", mock.Anything, cert).Return(nil).Once()
	svc := f.service()

	resp, err := svc.Revoke(context.Background(), f.centerID, cert.ID, "Academic misconduct")
	require.NoError(t, err)
	assert.Equal(t, string(certification.CertificateStatusRevoked), resp.Status)
	assert.False(t, resp.IsValid)

	f.clock.Advance(time.Hour)
	_, err = svc.Revoke(context.Background(), f.centerID, cert.ID, "Second reason")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, "Academic misconduct", cert.RevocationReason)
	assert.Equal(t, testNow, *cert.RevokedAt)

	_, err = svc.UpdateStatus(context.Background(), f.centerID, cert.ID, certification.CertificateStatusActive)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCertificateService_UpdateStatus(t *testing.T) {
	f := newCertFixture(t)
	cert := f.certificate(t, nil)
	f.certs.On("FindByIDForUpdate", mock.Anything, f.centerID, cert.ID).Return(cert, nil)
	f.certs.On("SaveWithLock", mock.Anything, cert).Return(nil)
	svc := f.service()

	resp, err := svc.UpdateStatus(context.Background(), f.centerID, cert.ID, certification.CertificateStatusSuspended)
	require.NoError(t, err)
	assert.False(t, resp.IsValid)

	resp, err = svc.UpdateStatus(context.Background(), f.centerID, cert.ID, certification.CertificateStatusActive)
	require.NoError(t, err)
	assert.True(t, resp.IsValid)

	_, err = svc.UpdateStatus(context.Background(), f.centerID, cert.ID, certification.CertificateStatusRevoked)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCertificateService_Verify(t *testing.T) {
	t.Run("records verification and caches the code", func(t *testing.T) {
		f := newCertFixture(t)
		expiry := testNow.AddDate(1, 0, 0)
		cert := f.certificate(t, &expiry)
		cache := &mapCache{entries: map[string]uuid.UUID{}}
		f.certs.On("FindByVerificationCode", mock.Anything, cert.VerificationCode).Return(cert, nil).Once()
		f.certs.On("FindByIDForVerification", mock.Anything, cert.ID).Return(cert, nil)
		f.certs.On("SaveWithLock", mock.Anything, cert).Return(nil)
		svc := f.service()
		svc.SetVerificationCache(cache)

		first, err := svc.Verify(context.Background(), " "+cert.VerificationCode+" ")
		require.NoError(t, err)
		second, err := svc.Verify(context.Background(), cert.VerificationCode)
		require.NoError(t, err)

		assert.True(t, first.IsValid)
		assert.Equal(t, "Meera Nair", first.StudentName)
		assert.Equal(t, "Data Structures", first.CourseName)
		assert.Equal(t, 1, first.VerificationCount)
		assert.Equal(t, 2, second.VerificationCount)
		assert.Equal(t, cert.ID, cache.entries[cert.VerificationCode])
		f.certs.AssertNumberOfCalls(t, "FindByVerificationCode", 1)
	})

	t.Run("revoked certificate verifies as invalid", func(t *testing.T) {
		f := newCertFixture(t)
		cert := f.certificate(t, nil)
		require.NoError(t, cert.Revoke("Fraud", testNow))
		f.certs.On("FindByVerificationCode", mock.Anything, cert.VerificationCode).Return(cert, nil)
		f.certs.On("FindByIDForVerification", mock.Anything, cert.ID).Return(cert, nil)
		f.certs.On("SaveWithLock", mock.Anything, cert).Return(nil)

		resp, err := f.service().Verify(context.Background(), cert.VerificationCode)

		require.NoError(t, err)
		assert.False(t, resp.IsValid)
		assert.Equal(t, "Fraud", resp.RevocationReason)
		assert.Equal(t, 1, cert.VerificationCount)
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newCertFixture(t)
		f.certs.On("FindByVerificationCode", mock.Anything, "DEADBEEF0000").Return(nil, shared.ErrNotFound)

		_, err := f.service().Verify(context.Background(), "deadbeef0000")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stale cache entry is dropped", func(t *testing.T) {
		f := newCertFixture(t)
		staleID := uuid.New()
		cache := &mapCache{entries: map[string]uuid.UUID{"ABCDEF123456": staleID}}
		f.certs.On("FindByIDForVerification", mock.Anything, staleID).Return(nil, shared.ErrNotFound)
		svc := f.service()
		svc.SetVerificationCache(cache)

		_, err := svc.Verify(context.Background(), "ABCDEF123456")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NotContains(t, cache.entries, "ABCDEF123456")
	})
}

func TestCertificateService_GenerateAndDownload(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		f := newCertFixture(t)
		svc := f.service()

		_, err := svc.Generate(context.Background(), f.centerID, uuid.New())
		assert.ErrorIs(t, err, ErrDocumentsNotConfigured)
		_, err = svc.Download(context.Background(), f.centerID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("renders stores and presigns", func(t *testing.T) {
		f := newCertFixture(t)
		cert := f.certificate(t, nil)
		renderer := new(MockRenderer)
		store := new(MockDocumentStore)
		pdf := []byte("%PDF-1.7")
		key := fmt.Sprintf("certificates/%s/%s.pdf", f.centerID, cert.CertificateID)

		f.certs.On("FindByIDForCenter", mock.Anything, f.centerID, cert.ID).Return(cert, nil)
		f.certs.On("FindByIDForUpdate", mock.Anything, f.centerID, cert.ID).Return(cert, nil)
		f.certs.On("SaveWithLock", mock.Anything, cert).Return(nil)
		renderer.On("Render", mock.Anything, mock.MatchedBy(func(doc Document) bool {
			return doc.StudentName == "Meera Nair" &&
				doc.CourseName == "Data Structures" &&
				doc.VerifyURL == "https://institute.example.com/verify/"+cert.VerificationCode
		})).Return(pdf, nil)
		store.On("Put", mock.Anything, key, pdf, "application/pdf").Return("https://bucket.example.com/"+key, nil)
		store.On("PresignGet", mock.Anything, key, 10*time.Minute).Return("https://bucket.example.com/signed", nil)

		svc := f.service()
		svc.SetDocumentPipeline(renderer, store, 10*time.Minute)
		svc.SetVerifyBaseURL("https://institute.example.com/verify/")

		resp, err := svc.Generate(context.Background(), f.centerID, cert.ID)
		require.NoError(t, err)
		assert.True(t, resp.HasDocument)
		assert.Equal(t, "https://bucket.example.com/"+key, resp.CertificateURL)

		dl, err := svc.Download(context.Background(), f.centerID, cert.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example.com/signed", dl.URL)
		assert.Equal(t, testNow.Add(10*time.Minute), dl.ExpiresAt)
	})

	t.Run("render failure leaves certificate untouched", func(t *testing.T) {
		f := newCertFixture(t)
		cert := f.certificate(t, nil)
		renderer := new(MockRenderer)
		store := new(MockDocumentStore)
		f.certs.On("FindByIDForCenter", mock.Anything, f.centerID, cert.ID).Return(cert, nil)
		renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("chrome crashed"))
		svc := f.service()
		svc.SetDocumentPipeline(renderer, store, 0)

		_, err := svc.Generate(context.Background(), f.centerID, cert.ID)

		assert.ErrorContains(t, err, "chrome crashed")
		assert.False(t, cert.HasDocument())
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, msg MailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func TestIssuedNotifier(t *testing.T) {
	f := newCertFixture(t)
	cert, err := certification.NewCertificate(f.centerID, certification.IssueRequest{
		StudentID: f.student.ID,
		CourseID:  f.course.ID,
	}, shared.UUIDGenerator{}, testNow)
	require.NoError(t, err)
	event := cert.GetDomainEvents()[0]

	t.Run("sends email", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg MailMessage) bool {
			return msg.ToEmail == "meera@example.com" &&
				msg.Subject == "Your certificate for Data Structures" &&
				msg.HTML != ""
		})).Return(nil)
		notifier := NewIssuedNotifier(f.students, f.courses, mailer, zap.NewNop()).
			WithVerifyBaseURL("https://institute.example.com/verify")

		require.NoError(t, notifier.Handle(context.Background(), event))
		mailer.AssertExpectations(t)
	})

	t.Run("mail failure is swallowed", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))
		notifier := NewIssuedNotifier(f.students, f.courses, mailer, zap.NewNop())

		assert.NoError(t, notifier.Handle(context.Background(), event))
	})

	t.Run("rejects other events", func(t *testing.T) {
		notifier := NewIssuedNotifier(f.students, f.courses, new(MockMailer), zap.NewNop())
		revoked := certification.NewCertificateRevokedEvent(cert, testNow)

		assert.Error(t, notifier.Handle(context.Background(), revoked))
	})
}
