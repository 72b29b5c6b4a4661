package certification

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IssuedNotifier emails the student when a certificate is issued.
// Delivery failures are logged and never fail the issue.
type IssuedNotifier struct {
	studentRepo   academic.StudentRepository
	courseRepo    academic.CourseRepository
	mailer        Mailer
	verifyBaseURL string
	logger        *zap.Logger
}

// NewIssuedNotifier creates a new IssuedNotifier
func NewIssuedNotifier(studentRepo academic.StudentRepository, courseRepo academic.CourseRepository, mailer Mailer, logger *zap.Logger) *IssuedNotifier {
	return &IssuedNotifier{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// WithVerifyBaseURL includes a verification link in the email
func (h *IssuedNotifier) WithVerifyBaseURL(baseURL string) *IssuedNotifier {
	h.verifyBaseURL = strings.TrimRight(baseURL, "/")
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *IssuedNotifier) EventTypes() []string {
	return []string{certification.EventTypeCertificateIssued}
}

// Handle sends the notification for a CertificateIssuedEvent
func (h *IssuedNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	issued, ok := event.(*certification.CertificateIssuedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			certification.EventTypeCertificateIssued, event.EventType())
	}

	student, err := h.studentRepo.FindByIDForCenter(ctx, event.CenterID(), issued.StudentID)
	if err != nil {
		h.logger.Warn("Certificate notification skipped, student lookup failed",
			zap.String("certificate_id", issued.CertificateID),
			zap.Error(err))
		return nil
	}
	if student.Email == "" {
		h.logger.Debug("Certificate notification skipped, student has no email",
			zap.String("certificate_id", issued.CertificateID))
		return nil
	}
	courseName := "your course"
	if course, err := h.courseRepo.FindByIDForCenter(ctx, event.CenterID(), issued.CourseID); err == nil {
		courseName = course.Name
	}

	msg := h.compose(student.FullName(), student.Email, courseName, issued)
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.logger.Warn("Certificate notification failed",
			zap.String("certificate_id", issued.CertificateID),
			zap.String("to", student.Email),
			zap.Error(err))
		return nil
	}

	h.logger.Info("Certificate notification sent",
		zap.String("certificate_id", issued.CertificateID),
		zap.String("to", student.Email))
	return nil
}

func (h *IssuedNotifier) compose(name, email, courseName string, issued *certification.CertificateIssuedEvent) MailMessage {
	subject := fmt.Sprintf("Your certificate for %s", courseName)

	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\n", name)
	fmt.Fprintf(&text, "Congratulations! Certificate %s has been issued to you for %s on %s.\n",
		issued.CertificateID, courseName, issued.IssueDate.Format("02 Jan 2006"))
	fmt.Fprintf(&text, "Verification code: %s\n", issued.VerificationCode)
	if h.verifyBaseURL != "" {
		fmt.Fprintf(&text, "Verify it at %s/%s\n", h.verifyBaseURL, issued.VerificationCode)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<p>Dear %s,</p>", html.EscapeString(name))
	fmt.Fprintf(&body, "<p>Congratulations! Certificate <strong>%s</strong> has been issued to you for <strong>%s</strong> on %s.</p>",
		html.EscapeString(issued.CertificateID), html.EscapeString(courseName), issued.IssueDate.Format("02 Jan 2006"))
	fmt.Fprintf(&body, "<p>Verification code: <code>%s</code></p>", html.EscapeString(issued.VerificationCode))
	if h.verifyBaseURL != "" {
		link := h.verifyBaseURL + "/" + issued.VerificationCode
		fmt.Fprintf(&body, `<p><a href="%s">Verify your certificate</a></p>`, html.EscapeString(link))
	}

	return MailMessage{
		ToEmail:   email,
		ToName:    name,
		Subject:   subject,
		PlainText: text.String(),
		HTML:      body.String(),
	}
}
