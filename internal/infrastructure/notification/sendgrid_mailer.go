// Package notification delivers outgoing email for certificate events.
package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	certapp "github.com/institute/backend/internal/application/certification"
	"github.com/institute/backend/internal/infrastructure/config"
)

const (
	defaultSendGridHost = "https://api.sendgrid.com"
	sendGridEndpoint    = "/v3/mail/send"
)

// ErrNoRecipient is returned for a message without a recipient address
var ErrNoRecipient = errors.New("notification: message has no recipient")

// SendGridMailer sends email through the SendGrid v3 API
type SendGridMailer struct {
	key    string
	host   string
	from   *sgmail.Email
	logger *zap.Logger
}

// SendGridOption configures a SendGridMailer
type SendGridOption func(*SendGridMailer)

// WithHost points the mailer at another API host
func WithHost(host string) SendGridOption {
	return func(m *SendGridMailer) {
		if host != "" {
			m.host = host
		}
	}
}

// WithLogger sets the mailer logger
func WithLogger(logger *zap.Logger) SendGridOption {
	return func(m *SendGridMailer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewSendGridMailer creates a mailer from the mail configuration
func NewSendGridMailer(cfg *config.MailConfig, opts ...SendGridOption) (*SendGridMailer, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("notification: sendgrid api key is required")
	}
	if cfg.FromEmail == "" {
		return nil, errors.New("notification: sender email is required")
	}
	m := &SendGridMailer{
		key:    cfg.APIKey,
		host:   defaultSendGridHost,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Send delivers a single message
func (m *SendGridMailer) Send(ctx context.Context, msg certapp.MailMessage) error {
	if msg.ToEmail == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(m.key, sendGridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("notification: sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Warn("SendGrid rejected message",
			zap.Int("status", res.StatusCode),
			zap.String("body", res.Body))
		return fmt.Errorf("notification: sendgrid returned status %d", res.StatusCode)
	}

	m.logger.Debug("Email sent",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject))
	return nil
}

func (m *SendGridMailer) prepare(msg certapp.MailMessage) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	mail := sgmail.NewV3Mail()
	mail.SetFrom(m.from)
	mail.AddPersonalizations(p)

	if msg.PlainText != "" {
		mail.AddContent(sgmail.NewContent("text/plain", msg.PlainText))
	}
	if msg.HTML != "" {
		mail.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return mail
}

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// Send logs the message
func (m *LogMailer) Send(_ context.Context, msg certapp.MailMessage) error {
	if msg.ToEmail == "" {
		return ErrNoRecipient
	}
	m.logger.Info("Email delivery disabled, message logged",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject))
	return nil
}

// NewMailer returns a SendGrid mailer when mail is enabled, a LogMailer otherwise
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) (certapp.Mailer, error) {
	if cfg == nil || !cfg.Enabled {
		return NewLogMailer(logger), nil
	}
	return NewSendGridMailer(cfg, WithLogger(logger))
}

var (
	_ certapp.Mailer = (*SendGridMailer)(nil)
	_ certapp.Mailer = (*LogMailer)(nil)
)
