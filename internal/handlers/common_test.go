package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/advisor-site/lead-intake/internal/config"
	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/middleware"
	"github.com/advisor-site/lead-intake/internal/notification"
	"github.com/advisor-site/lead-intake/internal/services"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// outbox records every message handed to the provider
type outbox struct {
	mu   sync.Mutex
	sent []notification.Message
	err  error
}

func (o *outbox) Name() string { return "test" }

func (o *outbox) Send(ctx context.Context, msg notification.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

func (o *outbox) SenderFor(ctx context.Context, settings config.EmailSettings) (notification.Sender, error) {
	return o, nil
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}

type testEnv struct {
	router   *gin.Engine
	outbox   *outbox
	settings config.EmailSettings
}

func configuredEmail() config.EmailSettings {
	return config.EmailSettings{
		Provider:     config.ProviderResend,
		ResendAPIKey: "re_test",
		From:         "site@advisor.test",
		Inbox:        "inbox@advisor.test",
	}
}

// newTestEnv wires the real service, dispatcher and routes around a recording
// provider.
func newTestEnv(limiter services.SubmissionLimiter) *testEnv {
	env := &testEnv{outbox: &outbox{}, settings: configuredEmail()}

	dispatcher := notification.NewDispatcher(env.outbox, logging.Logger)
	service := services.NewSubmissionService(dispatcher, func() config.EmailSettings { return env.settings }, logging.Logger)

	env.router = gin.New()
	env.router.Use(middleware.Recovery(), middleware.RequestID())
	Routes{
		Submissions:  NewSubmissionHandlers(logging.Logger, service),
		Schemas:      NewSchemaHandlers(logging.Logger),
		Limiter:      limiter,
		MaxBodyBytes: 64 << 10,
	}.Register(env.router)
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func toJSON(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func validApplication() map[string]interface{} {
	return map[string]interface{}{
		"fullName":            "Jane Doe",
		"dob":                 "1980-01-01",
		"gender":              "female",
		"state":               "AZ",
		"smokerStatus":        "never",
		"majorConditions":     "None",
		"monthlyContribution": "500-1000",
		"deathBenefitTarget":  "$500k",
		"primaryGoal":         "retirement_income",
		"email":               "jane@example.com",
		"phone":               "6025550143",
		"bestTimeToCall":      "Morning",
	}
}

func validContact() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Ana",
		"email":   "ana@x.io",
		"phone":   "5551234",
		"message": "Hello there",
	}
}
