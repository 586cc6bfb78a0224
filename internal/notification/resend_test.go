package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/advisor-site/lead-intake/internal/utils/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		From:    "site@advisor.test",
		To:      "inbox@advisor.test",
		Subject: "Contact Inquiry: Ana",
		ReplyTo: "ana@x.io",
		Text:    "Name: Ana",
	}
}

func TestResendSender_Send(t *testing.T) {
	var got resendRequest
	var auth, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer server.Close()

	sender := NewResendSender("re_test", server.URL, httpclient.NewPool(1, time.Second))
	err := sender.Send(context.Background(), testMessage())

	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, resendRequest{
		From:    "site@advisor.test",
		To:      []string{"inbox@advisor.test"},
		Subject: "Contact Inquiry: Ana",
		ReplyTo: "ana@x.io",
		Text:    "Name: Ana",
	}, got)
}

func TestResendSender_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error message", http.StatusUnprocessableEntity, `{"name":"validation_error","message":"Invalid from field"}`, "resend returned status 422: Invalid from field"},
		{"plain body", http.StatusInternalServerError, "oops", "resend returned status 500"},
		{"unauthorized", http.StatusUnauthorized, "", "resend returned status 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			sender := NewResendSender("re_test", server.URL, nil)
			err := sender.Send(context.Background(), testMessage())

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestResendSender_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewResendSender("re_test", url, nil).Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend request failed")
}

func TestResendSender_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewResendSender("re_test", server.URL, nil).Send(ctx, testMessage())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewResendSender_Defaults(t *testing.T) {
	sender := NewResendSender("key", "", nil)

	assert.Equal(t, DefaultResendEndpoint, sender.endpoint)
	assert.Same(t, httpclient.GetGlobalPool(), sender.pool)
	assert.Equal(t, "resend", sender.Name())
}
