package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/observability"
	"github.com/advisor-site/lead-intake/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionRateLimit rejects a client's submissions of form once limiter
// refuses them. A nil limiter disables the check.
func SubmissionRateLimit(limiter services.SubmissionLimiter, form models.FormName) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, retryAfter := limiter.Allow(c.Request.Context(), string(form)+":"+c.ClientIP())
		if !allowed {
			observability.RateLimited.WithLabelValues(string(form)).Inc()
			observability.SubmissionsTotal.WithLabelValues(string(form), observability.OutcomeRateLimited).Inc()
			observability.Logger().Warn("submission rate limited",
				zap.String("form", string(form)),
				zap.String("ip", c.ClientIP()),
				zap.String("request_id", c.GetString(RequestIDKey)))
			if retryAfter > 0 {
				c.Header("Retry-After", retryAfterSeconds(retryAfter))
			}
			_ = c.Error(models.ErrRateLimited)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: models.MsgRateLimited})
			return
		}

		c.Next()
	}
}

// retryAfterSeconds renders d as whole seconds, rounded up.
func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
