// Package mailer delivers transactional email through the Resend HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ChristianMThomas/Timenest/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer sends a single HTML email. Implementations must be safe for
// concurrent use; the monitor calls Send from its sweep goroutine.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ResendMailer is the production Mailer backed by Resend.
type ResendMailer struct {
	apiKey string
	from   string
	client *http.Client
	logger *zap.Logger
}

// NewResendMailer builds a ResendMailer from the mail configuration.
func NewResendMailer(cfg *config.MailConfig, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{
		apiKey: cfg.ResendAPIKey,
		from:   cfg.FromEmail,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts the email to Resend. A non-2xx response is returned as an error;
// the caller decides whether delivery failure is fatal.
func (m *ResendMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(resendPayload{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, string(body))
	}

	m.logger.Debug("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
