package handlers

import (
	"errors"
	"net/http"

	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/middleware"
	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse = models.ErrorResponse

// SuccessResponse is the body of an accepted submission
type SuccessResponse = models.MessageResponse

// writeSubmissionError maps a submission error to its status and fixed client
// message. Internal detail is logged, never returned.
func writeSubmissionError(c *gin.Context, logger *logging.SafeLogger, err error, invalidMessage string) {
	var cfgErr *models.ConfigError
	switch {
	case errors.Is(err, models.ErrInvalidSubmission):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidMessage})
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: cfgErr.ClientMessage()})
	default:
		_ = c.Error(err)
		logger.Error("submission failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: models.MsgUnexpectedError})
	}
}
