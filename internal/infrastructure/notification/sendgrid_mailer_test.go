package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	certapp "github.com/institute/backend/internal/application/certification"
	"github.com/institute/backend/internal/infrastructure/config"
)

type capturedMail struct {
	Personalizations []struct {
		To      []struct{ Email, Name string } `json:"to"`
		Subject string                         `json:"subject"`
	} `json:"personalizations"`
	From    struct{ Email, Name string } `json:"from"`
	Content []struct{ Type, Value string } `json:"content"`
}

func fakeSendGrid(t *testing.T, status int) (*httptest.Server, *capturedMail, *string) {
	t.Helper()
	var captured capturedMail
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		auth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.WriteHeader(status)
		if status >= 400 {
			_, _ = w.Write([]byte(`{"errors":[{"message":"bad"}]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &captured, &auth
}

func testMailConfig() *config.MailConfig {
	return &config.MailConfig{
		Enabled:   true,
		APIKey:    "SG.test-key",
		FromEmail: "certificates@institute.example",
		FromName:  "Institute Certificates",
	}
}

func TestNewSendGridMailer(t *testing.T) {
	_, err := NewSendGridMailer(nil)
	assert.Error(t, err)

	_, err = NewSendGridMailer(&config.MailConfig{APIKey: "SG.key"})
	assert.Error(t, err)

	m, err := NewSendGridMailer(testMailConfig())
	require.NoError(t, err)
	assert.Equal(t, defaultSendGridHost, m.host)
}

func TestSendGridMailer_Send(t *testing.T) {
	msg := certapp.MailMessage{
		ToEmail:   "meera@example.com",
		ToName:    "Meera Nair",
		Subject:   "Your certificate for Data Structures",
		PlainText: "Congratulations",
		HTML:      "<p>Congratulations</p>",
	}

	t.Run("posts the message", func(t *testing.T) {
		srv, captured, auth := fakeSendGrid(t, http.StatusAccepted)
		m, err := NewSendGridMailer(testMailConfig(), WithHost(srv.URL))
		require.NoError(t, err)

		require.NoError(t, m.Send(context.Background(), msg))

		assert.Equal(t, "Bearer SG.test-key", *auth)
		require.Len(t, captured.Personalizations, 1)
		p := captured.Personalizations[0]
		assert.Equal(t, "Your certificate for Data Structures", p.Subject)
		require.Len(t, p.To, 1)
		assert.Equal(t, "meera@example.com", p.To[0].Email)
		assert.Equal(t, "Meera Nair", p.To[0].Name)
		assert.Equal(t, "certificates@institute.example", captured.From.Email)
		require.Len(t, captured.Content, 2)
		assert.Equal(t, "text/plain", captured.Content[0].Type)
		assert.Equal(t, "text/html", captured.Content[1].Type)
	})

	t.Run("error status is returned", func(t *testing.T) {
		srv, _, _ := fakeSendGrid(t, http.StatusUnauthorized)
		m, err := NewSendGridMailer(testMailConfig(), WithHost(srv.URL))
		require.NoError(t, err)

		err = m.Send(context.Background(), msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("requires a recipient", func(t *testing.T) {
		m, err := NewSendGridMailer(testMailConfig())
		require.NoError(t, err)
		assert.ErrorIs(t, m.Send(context.Background(), certapp.MailMessage{Subject: "x"}), ErrNoRecipient)
	})

	t.Run("cancelled context", func(t *testing.T) {
		m, err := NewSendGridMailer(testMailConfig())
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, m.Send(ctx, msg), context.Canceled)
	})
}

func TestNewMailer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	m, err := NewMailer(&config.MailConfig{}, logger)
	require.NoError(t, err)
	require.IsType(t, &LogMailer{}, m)

	require.NoError(t, m.Send(context.Background(), certapp.MailMessage{ToEmail: "a@example.com", Subject: "hello"}))
	assert.Equal(t, 1, logs.FilterField(zap.String("to", "a@example.com")).Len())

	m, err = NewMailer(testMailConfig(), logger)
	require.NoError(t, err)
	assert.IsType(t, &SendGridMailer{}, m)
}
