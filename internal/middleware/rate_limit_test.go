package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLimiter struct {
	allowed    int
	retryAfter time.Duration
	keys       []string
}

func (l *countingLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	l.keys = append(l.keys, key)
	if l.allowed <= 0 {
		return false, l.retryAfter
	}
	l.allowed--
	return true, 0
}

func TestSubmissionRateLimit(t *testing.T) {
	limiter := &countingLimiter{allowed: 1, retryAfter: 1500 * time.Millisecond}
	router := gin.New()

	calls := 0
	router.POST("/api/contact", SubmissionRateLimit(limiter, models.FormContact), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	limited := observability.RateLimited.WithLabelValues("contact")
	before := testutil.ToFloat64(limited)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/contact", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, before+1, testutil.ToFloat64(limited))

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, models.MsgRateLimited, body.Error)
	assert.Equal(t, "2", second.Header().Get("Retry-After"))
	assert.Empty(t, first.Header().Get("Retry-After"))

	// httptest requests come from 192.0.2.1
	assert.Equal(t, []string{"contact:192.0.2.1", "contact:192.0.2.1"}, limiter.keys)
}

func TestSubmissionRateLimit_NilLimiter(t *testing.T) {
	router := gin.New()
	router.POST("/api/apply", SubmissionRateLimit(nil, models.FormApply), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/apply", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestSubmissionRateLimit_NoRetryHint(t *testing.T) {
	router := gin.New()
	router.POST("/api/apply", SubmissionRateLimit(&countingLimiter{}, models.FormApply), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/apply", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	_, present := w.Header()["Retry-After"]
	assert.False(t, present)
}
