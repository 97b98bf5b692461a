package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// APIConfig holds the settings for a generic JSON email API. The
// provider is expected to accept a POST with from/to/subject/html
// fields and a bearer token. MessageIDPath is the gjson path of the
// provider message id in the response body, e.g. "data.message_id".
type APIConfig struct {
	Endpoint      string
	APIKey        string
	MessageIDPath string
	Timeout       time.Duration
}

// APISender delivers through a REST email provider.
type APISender struct {
	config APIConfig
	client *http.Client
}

// NewAPISender creates a new REST API sender
func NewAPISender(config APIConfig) *APISender {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &APISender{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *APISender) Send(ctx context.Context, message *Message) (string, error) {
	payload := map[string]string{
		"from_email": message.FromEmail,
		"from_name":  message.FromName,
		"to":         message.To,
		"subject":    message.Subject,
		"html":       message.HTML,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call email API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("email API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if s.config.MessageIDPath == "" {
		return "", nil
	}
	return gjson.GetBytes(respBody, s.config.MessageIDPath).String(), nil
}
