// Package intake holds the client-side controllers for the intake forms. Each
// form is a pure state value moved through transition methods, wrapped by a
// controller that serialises submissions and talks to the API.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/utils/httpclient"
)

// Fallback messages shown when the server gives none.
const (
	FallbackApplyError     = "Unable to submit application."
	FallbackContactSuccess = "Message sent"
	FallbackContactError   = "Unable to send message"
)

// Submitter sends a complete form payload to the server. On success it returns
// the server's message, which may be empty.
type Submitter interface {
	Submit(ctx context.Context, form models.FormName, values map[string]string) (string, error)
}

// Confirmer receives the positive confirmation signal after an accepted
// application.
type Confirmer interface {
	Confirm(label string)
}

// ConfirmerFunc adapts a function to Confirmer
type ConfirmerFunc func(label string)

// Confirm implements Confirmer
func (f ConfirmerFunc) Confirm(label string) { f(label) }

// ServerError is a non-2xx response. Message is the server's error text, if any.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// errorMessage picks the text to show for a failed submission.
func errorMessage(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// HTTPSubmitter posts forms to the intake API
type HTTPSubmitter struct {
	baseURL string
	pool    *httpclient.Pool
}

// NewHTTPSubmitter creates a submitter for the API at baseURL
func NewHTTPSubmitter(baseURL string, pool *httpclient.Pool) *HTTPSubmitter {
	if pool == nil {
		pool = httpclient.GetGlobalPool()
	}
	return &HTTPSubmitter{baseURL: strings.TrimRight(baseURL, "/"), pool: pool}
}

type apiResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Submit implements Submitter. Transport failures are returned as is.
func (s *HTTPSubmitter) Submit(ctx context.Context, form models.FormName, values map[string]string) (string, error) {
	payload, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s form: %w", form, err)
	}

	url := s.baseURL + "/api/" + string(form)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.pool.Get()
	defer s.pool.Put(client)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	var body apiResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServerError{Status: resp.StatusCode, Message: body.Error}
	}
	return body.Message, nil
}
