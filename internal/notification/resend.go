package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/advisor-site/lead-intake/internal/utils/httpclient"
)

// DefaultResendEndpoint is the Resend send-email API.
const DefaultResendEndpoint = "https://api.resend.com/emails"

// ResendSender delivers messages through the Resend HTTP API.
type ResendSender struct {
	apiKey   string
	endpoint string
	pool     *httpclient.Pool
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Text    string   `json:"text"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// NewResendSender creates a sender using the given API key. An empty endpoint
// selects DefaultResendEndpoint.
func NewResendSender(apiKey, endpoint string, pool *httpclient.Pool) *ResendSender {
	if endpoint == "" {
		endpoint = DefaultResendEndpoint
	}
	if pool == nil {
		pool = httpclient.GetGlobalPool()
	}
	return &ResendSender{apiKey: apiKey, endpoint: endpoint, pool: pool}
}

// Name implements Sender
func (s *ResendSender) Name() string { return "resend" }

// Send posts msg to the API. Any non-2xx response is an error.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		ReplyTo: msg.ReplyTo,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := s.pool.Get()
	defer s.pool.Put(client)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr resendError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("resend returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend returned status %d", resp.StatusCode)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
