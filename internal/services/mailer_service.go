package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBrevoBaseURL = "https://api.brevo.com/v3"

// MailerService sends transactional mail. Reset delivery is best-effort;
// callers log failures and keep the response generic either way.
type MailerService interface {
	SendPasswordReset(ctx context.Context, toEmail, token string) error
	Enabled() bool
}

type brevoMailer struct {
	apiKey       string
	senderEmail  string
	senderName   string
	resetBaseURL string
	baseURL      string
	client       *http.Client
}

// NewBrevoMailer sends through the Brevo transactional API. An empty API
// key yields a disabled mailer that drops sends silently.
func NewBrevoMailer(apiKey, senderEmail, senderName, resetBaseURL string) MailerService {
	return &brevoMailer{
		apiKey:       apiKey,
		senderEmail:  senderEmail,
		senderName:   senderName,
		resetBaseURL: resetBaseURL,
		baseURL:      defaultBrevoBaseURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *brevoMailer) Enabled() bool {
	return m.apiKey != ""
}

func (m *brevoMailer) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	if !m.Enabled() {
		return nil
	}

	resetLink := fmt.Sprintf("%s/password-reset/confirm?token=%s", m.resetBaseURL, token)
	payload := map[string]any{
		"sender": map[string]string{
			"email": m.senderEmail,
			"name":  m.senderName,
		},
		"to": []map[string]string{
			{"email": toEmail},
		},
		"subject": "Reset your GiftNest password",
		"htmlContent": fmt.Sprintf(
			`<p>A password reset was requested for your account.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link expires in one hour. If you did not request this, ignore this email.</p>`,
			resetLink,
		),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reset email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build reset email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
