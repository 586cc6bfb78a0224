package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionProcessor accepts decoded form payloads
type SubmissionProcessor interface {
	SubmitApplication(ctx context.Context, raw interface{}) error
	SubmitContact(ctx context.Context, raw interface{}) error
}

// SubmissionHandlers serves the apply and contact endpoints
type SubmissionHandlers struct {
	logger    *logging.SafeLogger
	processor SubmissionProcessor
}

// NewSubmissionHandlers creates a new submission handlers instance
func NewSubmissionHandlers(logger *logging.SafeLogger, processor SubmissionProcessor) *SubmissionHandlers {
	return &SubmissionHandlers{
		logger:    logger,
		processor: processor,
	}
}

// Apply godoc
// @Summary Submit an application
// @Description Validates an IUL application and forwards it to the advisor inbox
// @Tags intake
// @Accept json
// @Produce json
// @Param data body models.ApplicationSubmission true "Application"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/apply [post]
func (h *SubmissionHandlers) Apply(c *gin.Context) {
	raw, err := h.readPayload(c)
	if err != nil {
		h.logger.Warn("unreadable application body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MsgInvalidApplication})
		return
	}

	if err := h.processor.SubmitApplication(c.Request.Context(), raw); err != nil {
		writeSubmissionError(c, h.logger, err, models.MsgInvalidApplication)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: models.MsgApplicationSubmitted})
}

// Contact godoc
// @Summary Send a contact inquiry
// @Description Validates a contact message and forwards it to the advisor inbox
// @Tags intake
// @Accept json
// @Produce json
// @Param data body models.ContactSubmission true "Contact inquiry"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/contact [post]
func (h *SubmissionHandlers) Contact(c *gin.Context) {
	raw, err := h.readPayload(c)
	if err != nil {
		h.logger.Warn("unreadable contact body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MsgInvalidContact})
		return
	}

	if err := h.processor.SubmitContact(c.Request.Context(), raw); err != nil {
		writeSubmissionError(c, h.logger, err, models.MsgInvalidContact)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: models.MsgContactSent})
}

// readPayload decodes the body into a generic JSON value; the shape is checked
// by the schema.
func (h *SubmissionHandlers) readPayload(c *gin.Context) (interface{}, error) {
	_, span := utils.TraceInputParsing(c.Request.Context(), "json")
	defer span.End()

	body, err := c.GetRawData()
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"body.size": len(body)})
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return raw, nil
}
