package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// ErrMissingAPIKey is returned when the Resend sender is used without a
// configured API key.
var ErrMissingAPIKey = errors.New("email service is not configured: missing API key")

// ResendSender delivers email through the Resend HTTP API.
type ResendSender struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
}

// NewResendSender creates a sender for the given API key.
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{
		APIKey:   apiKey,
		Endpoint: resendEndpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send posts the email to the Resend API and returns the provider
// message id. A non-2xx response is treated as a provider failure.
func (s *ResendSender) Send(email *Email) (*Result, error) {
	if s.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = resendEndpoint
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	payload, err := json.Marshal(resendRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("email provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr resendResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("failed to send email: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("failed to send email: provider returned status %d", resp.StatusCode)
	}

	var ok resendResponse
	if err := json.Unmarshal(body, &ok); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return &Result{ID: ok.ID}, nil
}
