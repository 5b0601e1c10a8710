// Package brevo sends transactional email through the Brevo HTTP API.
package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/remind-api/internal/config"
)

// defaultBaseURL is the production Brevo API endpoint.
const defaultBaseURL = "https://api.brevo.com/v3"

// Common sender errors
var (
	// ErrMissingCredentials indicates the API key or sender address is not
	// configured. This is a configuration fault: it is surfaced per send
	// attempt, never at startup, so the affected task stays pending and is
	// retried once credentials appear.
	ErrMissingCredentials = errors.New("brevo: missing API key or sender address")

	// ErrSendRejected indicates Brevo rejected the send request.
	ErrSendRejected = errors.New("brevo: send rejected")
)

// Sender delivers email through Brevo's transactional endpoint. It
// implements the reminder.Sender interface.
type Sender struct {
	apiKey      string
	senderEmail string
	senderName  string
	baseURL     string
	client      *http.Client
	logger      *slog.Logger
}

// NewSender creates a Sender from the email configuration. Missing
// credentials are not an error here; they fail individual sends instead.
func NewSender(cfg config.EmailConfig, logger *slog.Logger) *Sender {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Sender{
		apiKey:      cfg.BrevoAPIKey,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// sendRequest is the Brevo v3 smtp/email payload.
type sendRequest struct {
	Sender      participant   `json:"sender"`
	To          []participant `json:"to"`
	Subject     string        `json:"subject"`
	TextContent string        `json:"textContent"`
}

type participant struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send delivers a plain-text email to the recipient. It blocks until Brevo
// accepts or rejects the message and returns ErrMissingCredentials when the
// transport is unconfigured, or a wrapped transport error on failure.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if s.apiKey == "" || s.senderEmail == "" {
		return ErrMissingCredentials
	}

	payload, err := json.Marshal(sendRequest{
		Sender:      participant{Name: s.senderName, Email: s.senderEmail},
		To:          []participant{{Email: to}},
		Subject:     subject,
		TextContent: body,
	})
	if err != nil {
		return fmt.Errorf("brevo: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("brevo: failed to build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		// Brevo error bodies are small JSON documents; keep a bounded
		// excerpt for the log.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Debug("brevo rejected send",
			"status", resp.StatusCode,
			"recipient", to,
			"response", string(excerpt))
		return fmt.Errorf("%w: status %d", ErrSendRejected, resp.StatusCode)
	}

	s.logger.Debug("email accepted by brevo", "recipient", to, "subject", subject)
	return nil
}
