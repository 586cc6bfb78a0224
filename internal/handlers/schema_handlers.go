package handlers

import (
	"errors"
	"net/http"

	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/schema"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchemaResponse describes one form to a browser client
type SchemaResponse struct {
	Form   models.FormName        `json:"form"`
	Schema map[string]interface{} `json:"schema"`
	Rules  []schema.Rule          `json:"rules"`
	Steps  []schema.Step          `json:"steps,omitempty"`
}

// SchemaHandlers serves the form rule tables
type SchemaHandlers struct {
	logger *logging.SafeLogger
}

// NewSchemaHandlers creates a new schema handlers instance
func NewSchemaHandlers(logger *logging.SafeLogger) *SchemaHandlers {
	return &SchemaHandlers{logger: logger}
}

// GetSchema godoc
// @Summary Get form schema
// @Description Returns the JSON Schema, the field rules and, for apply, the wizard steps
// @Tags intake
// @Produce json
// @Param form path string true "Form name (apply or contact)"
// @Success 200 {object} SchemaResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/schema/{form} [get]
func (h *SchemaHandlers) GetSchema(c *gin.Context) {
	form := models.FormName(c.Param("form"))

	doc, err := schema.Document(form)
	if err != nil {
		if errors.Is(err, models.ErrUnknownForm) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown form."})
			return
		}
		h.logger.Error("failed to build schema document", zap.String("form", string(form)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: models.MsgUnexpectedError})
		return
	}

	rules, _ := schema.Rules(form)
	resp := SchemaResponse{Form: form, Schema: doc, Rules: rules}
	if form == models.FormApply {
		resp.Steps = schema.ApplySteps
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, resp)
}
