package certification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxIssueAttempts bounds identifier regeneration on collisions
const MaxIssueAttempts = 3

const defaultDownloadTTL = 15 * time.Minute

// ErrDocumentsNotConfigured is returned by generate and download when no
// renderer or document store is wired
var ErrDocumentsNotConfigured = shared.NewInvalidStateError("Certificate document generation is not configured")

// CertificateService issues, renders, verifies and revokes certificates
type CertificateService struct {
	certRepo       certification.CertificateRepository
	studentRepo    academic.StudentRepository
	courseRepo     academic.CourseRepository
	txScope        TransactionScope
	ids            shared.IDGenerator
	clock          shared.Clock
	renderer       Renderer
	store          DocumentStore
	cache          VerificationCache
	verifyBaseURL  string
	downloadTTL    time.Duration
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	certRepo certification.CertificateRepository,
	studentRepo academic.StudentRepository,
	courseRepo academic.CourseRepository,
	txScope TransactionScope,
) *CertificateService {
	return &CertificateService{
		certRepo:       certRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		txScope:        txScope,
		ids:            shared.UUIDGenerator{},
		clock:          shared.SystemClock{},
		downloadTTL:    defaultDownloadTTL,
		eventPublisher: shared.NoopEventPublisher{},
		logger:         zap.NewNop(),
	}
}

// SetIDGenerator replaces the identifier source
func (s *CertificateService) SetIDGenerator(ids shared.IDGenerator) {
	s.ids = ids
}

// SetClock replaces the time source
func (s *CertificateService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// SetDocumentPipeline wires PDF rendering and storage
func (s *CertificateService) SetDocumentPipeline(renderer Renderer, store DocumentStore, downloadTTL time.Duration) {
	s.renderer = renderer
	s.store = store
	if downloadTTL > 0 {
		s.downloadTTL = downloadTTL
	}
}

// SetVerificationCache wires the verification code lookup cache
func (s *CertificateService) SetVerificationCache(cache VerificationCache) {
	s.cache = cache
}

// SetVerifyBaseURL sets the public URL printed on certificates; the
// verification code is appended to it
func (s *CertificateService) SetVerifyBaseURL(baseURL string) {
	s.verifyBaseURL = strings.TrimRight(baseURL, "/")
}

// SetEventPublisher sets the publisher for domain events
func (s *CertificateService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the logger
func (s *CertificateService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Issue creates an ACTIVE certificate. Identifier collisions reported by the
// store are retried with fresh identifiers up to MaxIssueAttempts times.
func (s *CertificateService) Issue(ctx context.Context, centerID uuid.UUID, req IssueCertificateRequest) (*CertificateResponse, error) {
	if _, err := s.studentRepo.FindByIDForCenter(ctx, centerID, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.FindByIDForCenter(ctx, centerID, req.CourseID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	cert, err := certification.NewCertificate(centerID, certification.IssueRequest{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		IssueDate:  req.IssueDate,
		ExpiryDate: req.ExpiryDate,
		IssuedBy:   req.IssuedBy,
		Remarks:    req.Remarks,
	}, s.ids, now)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = s.certRepo.Create(ctx, cert)
		if err == nil {
			break
		}
		if !shared.IsAlreadyExists(err) || attempt >= MaxIssueAttempts {
			return nil, err
		}
		s.logger.Warn("Certificate identifier collision, regenerating",
			zap.String("certificate_id", cert.CertificateID),
			zap.Int("attempt", attempt))
		cert.RegenerateIdentifiers(s.ids, now)
	}
	s.publish(ctx, cert)

	s.logger.Info("Certificate issued",
		zap.String("id", cert.ID.String()),
		zap.String("certificate_id", cert.CertificateID),
		zap.String("student_id", cert.StudentID.String()))

	resp := ToCertificateResponse(cert, now)
	return &resp, nil
}

// GetByID retrieves a certificate
func (s *CertificateService) GetByID(ctx context.Context, centerID, id uuid.UUID) (*CertificateResponse, error) {
	cert, err := s.certRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCertificateResponse(cert, s.clock.Now())
	return &resp, nil
}

// List retrieves certificates matching the filter
func (s *CertificateService) List(ctx context.Context, centerID uuid.UUID, filter CertificateListFilter) ([]CertificateResponse, int64, error) {
	certs, total, err := s.certRepo.FindAllForCenter(ctx, centerID, certification.CertificateFilter{
		Filter:    shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search),
		StudentID: filter.StudentID,
		CourseID:  filter.CourseID,
		Status:    filter.Status,
	})
	if err != nil {
		return nil, 0, err
	}
	now := s.clock.Now()
	responses := make([]CertificateResponse, len(certs))
	for i := range certs {
		responses[i] = ToCertificateResponse(&certs[i], now)
	}
	return responses, total, nil
}

// ListByStudent retrieves the certificates of one student
func (s *CertificateService) ListByStudent(ctx context.Context, centerID, studentID uuid.UUID, filter CertificateListFilter) ([]CertificateResponse, int64, error) {
	if _, err := s.studentRepo.FindByIDForCenter(ctx, centerID, studentID); err != nil {
		return nil, 0, err
	}
	filter.StudentID = &studentID
	return s.List(ctx, centerID, filter)
}

// ListByCourse retrieves the certificates issued for one course
func (s *CertificateService) ListByCourse(ctx context.Context, centerID, courseID uuid.UUID, filter CertificateListFilter) ([]CertificateResponse, int64, error) {
	if _, err := s.courseRepo.FindByIDForCenter(ctx, centerID, courseID); err != nil {
		return nil, 0, err
	}
	filter.CourseID = &courseID
	return s.List(ctx, centerID, filter)
}

// Generate renders the certificate to PDF, stores it and records its location
func (s *CertificateService) Generate(ctx context.Context, centerID, id uuid.UUID) (*CertificateResponse, error) {
	if s.renderer == nil || s.store == nil {
		return nil, ErrDocumentsNotConfigured
	}
	cert, err := s.certRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	if cert.IsRevoked() {
		return nil, shared.NewInvalidStateError("Cannot generate a revoked certificate")
	}

	doc := Document{
		CertificateID:    cert.CertificateID,
		VerificationCode: cert.VerificationCode,
		IssueDate:        cert.IssueDate,
		ExpiryDate:       cert.ExpiryDate,
		IssuedBy:         cert.IssuedBy,
	}
	if s.verifyBaseURL != "" {
		doc.VerifyURL = s.verifyBaseURL + "/" + cert.VerificationCode
	}
	student, err := s.studentRepo.FindByIDForCenter(ctx, centerID, cert.StudentID)
	if err != nil {
		return nil, err
	}
	doc.StudentName = student.FullName()
	course, err := s.courseRepo.FindByIDForCenter(ctx, centerID, cert.CourseID)
	if err != nil {
		return nil, err
	}
	doc.CourseCode = course.Code
	doc.CourseName = course.Name

	pdf, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	key := documentKey(centerID, cert.CertificateID)
	url, err := s.store.Put(ctx, key, pdf, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to store certificate: %w", err)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked, err := repos.CertificateRepo().FindByIDForUpdate(ctx, centerID, id)
		if err != nil {
			return err
		}
		if err := locked.AttachDocument(key, url, s.clock.Now()); err != nil {
			return err
		}
		if err := repos.CertificateRepo().SaveWithLock(ctx, locked); err != nil {
			return err
		}
		cert = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Certificate generated",
		zap.String("certificate_id", cert.CertificateID),
		zap.String("key", key),
		zap.Int("bytes", len(pdf)))

	resp := ToCertificateResponse(cert, s.clock.Now())
	return &resp, nil
}

// Download returns a presigned link to the generated PDF
func (s *CertificateService) Download(ctx context.Context, centerID, id uuid.UUID) (*DownloadResponse, error) {
	if s.store == nil {
		return nil, ErrDocumentsNotConfigured
	}
	cert, err := s.certRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	if cert.IsRevoked() {
		return nil, shared.NewInvalidStateError("Cannot download a revoked certificate")
	}
	if !cert.HasDocument() {
		return nil, shared.NewInvalidStateError("Certificate has not been generated yet")
	}

	url, err := s.store.PresignGet(ctx, cert.PDFPath, s.downloadTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign certificate download: %w", err)
	}
	return &DownloadResponse{URL: url, ExpiresAt: s.clock.Now().Add(s.downloadTTL)}, nil
}

// Verify looks a certificate up by its verification code and records the
// verification. Validity is reported, never changed.
func (s *CertificateService) Verify(ctx context.Context, code string) (*VerificationResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewInvalidInputError("Verification code is required")
	}

	id, err := s.resolveCode(ctx, code)
	if err != nil {
		return nil, err
	}

	var cert *certification.Certificate
	now := s.clock.Now()
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		cert, err = repos.CertificateRepo().FindByIDForVerification(ctx, id)
		if err != nil {
			return err
		}
		cert.Verify(now)
		return repos.CertificateRepo().SaveWithLock(ctx, cert)
	})
	if err != nil {
		if shared.IsNotFound(err) {
			s.forgetCode(ctx, code)
		}
		return nil, err
	}

	resp := &VerificationResponse{
		CertificateID:     cert.CertificateID,
		Status:            string(cert.Status),
		IsValid:           cert.IsValid(now),
		IsExpired:         cert.IsExpired(now),
		IssueDate:         cert.IssueDate,
		ExpiryDate:        cert.ExpiryDate,
		RevocationReason:  cert.RevocationReason,
		VerificationCount: cert.VerificationCount,
		VerifiedAt:        now,
	}
	if student, err := s.studentRepo.FindByIDForCenter(ctx, cert.CenterID, cert.StudentID); err == nil {
		resp.StudentName = student.FullName()
	}
	if course, err := s.courseRepo.FindByIDForCenter(ctx, cert.CenterID, cert.CourseID); err == nil {
		resp.CourseName = course.Name
	}

	s.logger.Info("Certificate verified",
		zap.String("certificate_id", cert.CertificateID),
		zap.Bool("valid", resp.IsValid),
		zap.Int("count", cert.VerificationCount))
	return resp, nil
}

func (s *CertificateService) resolveCode(ctx context.Context, code string) (uuid.UUID, error) {
	if s.cache != nil {
		id, ok, err := s.cache.Get(ctx, code)
		if err != nil {
			s.logger.Warn("Verification cache read failed", zap.Error(err))
		} else if ok {
			return id, nil
		}
	}

	cert, err := s.certRepo.FindByVerificationCode(ctx, code)
	if err != nil {
		return uuid.Nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, code, cert.ID); err != nil {
			s.logger.Warn("Verification cache write failed", zap.Error(err))
		}
	}
	return cert.ID, nil
}

func (s *CertificateService) forgetCode(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, code); err != nil {
		s.logger.Warn("Verification cache delete failed", zap.Error(err))
	}
}

// UpdateStatus moves a certificate to ACTIVE, SUSPENDED or EXPIRED
func (s *CertificateService) UpdateStatus(ctx context.Context, centerID, id uuid.UUID, status certification.CertificateStatus) (*CertificateResponse, error) {
	return s.mutate(ctx, centerID, id, func(c *certification.Certificate, now time.Time) error {
		return c.ChangeStatus(status, now)
	})
}

// Revoke permanently invalidates a certificate
func (s *CertificateService) Revoke(ctx context.Context, centerID, id uuid.UUID, reason string) (*CertificateResponse, error) {
	return s.mutate(ctx, centerID, id, func(c *certification.Certificate, now time.Time) error {
		return c.Revoke(reason, now)
	})
}

func (s *CertificateService) mutate(ctx context.Context, centerID, id uuid.UUID, fn func(*certification.Certificate, time.Time) error) (*CertificateResponse, error) {
	var cert *certification.Certificate
	now := s.clock.Now()
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		cert, err = repos.CertificateRepo().FindByIDForUpdate(ctx, centerID, id)
		if err != nil {
			return err
		}
		version := cert.GetVersion()
		if err := fn(cert, now); err != nil {
			return err
		}
		if cert.GetVersion() == version {
			return nil
		}
		return repos.CertificateRepo().SaveWithLock(ctx, cert)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, cert)

	resp := ToCertificateResponse(cert, now)
	return &resp, nil
}

func (s *CertificateService) publish(ctx context.Context, cert *certification.Certificate) {
	events := shared.PullDomainEvents(cert)
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish certificate events", zap.Error(err))
	}
}

func documentKey(centerID uuid.UUID, certificateID string) string {
	return fmt.Sprintf("certificates/%s/%s.pdf", centerID, certificateID)
}
