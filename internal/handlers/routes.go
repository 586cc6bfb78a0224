package handlers

import (
	"github.com/advisor-site/lead-intake/internal/middleware"
	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/services"
	"github.com/gin-gonic/gin"
)

// Routes bundles what the intake API serves
type Routes struct {
	Submissions  *SubmissionHandlers
	Schemas      *SchemaHandlers
	Limiter      services.SubmissionLimiter
	MaxBodyBytes int64
}

// Register mounts the health and /api routes on router
func (r Routes) Register(router gin.IRouter) {
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/schema/:form", r.Schemas.GetSchema)

		api.POST("/apply",
			middleware.SubmissionRateLimit(r.Limiter, models.FormApply),
			middleware.BodyLimit(r.MaxBodyBytes),
			r.Submissions.Apply,
		)
		api.POST("/contact",
			middleware.SubmissionRateLimit(r.Limiter, models.FormContact),
			middleware.BodyLimit(r.MaxBodyBytes),
			r.Submissions.Contact,
		)
	}
}
