package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/advisor-site/lead-intake/internal/config"
	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/notification"
	"github.com/advisor-site/lead-intake/internal/observability"
	"github.com/advisor-site/lead-intake/internal/schema"
	"github.com/advisor-site/lead-intake/internal/utils"
	"go.uber.org/zap"
)

// EmailDispatcher sends one notification message using the given settings.
type EmailDispatcher interface {
	Dispatch(ctx context.Context, settings config.EmailSettings, msg notification.Message) error
}

// SubmissionService validates intake submissions and forwards each accepted one
// as exactly one email. Nothing is stored.
type SubmissionService struct {
	dispatcher EmailDispatcher
	settings   func() config.EmailSettings
	logger     *logging.SafeLogger
}

// NewSubmissionService creates a submission service. settings is called on
// every submission; pass config.Email to read the live environment.
func NewSubmissionService(dispatcher EmailDispatcher, settings func() config.EmailSettings, logger *logging.SafeLogger) *SubmissionService {
	return &SubmissionService{
		dispatcher: dispatcher,
		settings:   settings,
		logger:     logger,
	}
}

// SubmitApplication validates raw as an application and emails it to the inbox.
func (s *SubmissionService) SubmitApplication(ctx context.Context, raw interface{}) error {
	return s.submit(ctx, models.FormApply, func() (notification.Message, *schema.ValidationResult, []zap.Field, error) {
		app, result, err := schema.ParseApplication(raw)
		if err != nil || !result.IsValid {
			return notification.Message{}, result, nil, err
		}
		return notification.ApplicationMessage(app), result, []zap.Field{
			zap.String("email", observability.MaskEmail(app.Email)),
			zap.String("phone", observability.MaskPhone(app.Phone)),
			zap.String("state", app.State),
		}, nil
	})
}

// SubmitContact validates raw as a contact inquiry and emails it to the inbox.
func (s *SubmissionService) SubmitContact(ctx context.Context, raw interface{}) error {
	return s.submit(ctx, models.FormContact, func() (notification.Message, *schema.ValidationResult, []zap.Field, error) {
		contact, result, err := schema.ParseContact(raw)
		if err != nil || !result.IsValid {
			return notification.Message{}, result, nil, err
		}
		return notification.ContactMessage(contact), result, []zap.Field{
			zap.String("email", observability.MaskEmail(contact.Email)),
			zap.String("phone", observability.MaskPhone(contact.Phone)),
		}, nil
	})
}

type parseFunc func() (notification.Message, *schema.ValidationResult, []zap.Field, error)

// submit runs validate, config check and dispatch in that order. The config is
// only consulted for valid payloads.
func (s *SubmissionService) submit(ctx context.Context, form models.FormName, parse parseFunc) error {
	logger := s.logger.With(zap.String("form", string(form)))

	_, span := utils.TraceInputValidation(ctx, "schema", string(form))
	msg, result, fields, err := parse()
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		span.End()
		observability.SubmissionsTotal.WithLabelValues(string(form), observability.OutcomeError).Inc()
		logger.Error("failed to validate submission", zap.Error(err))
		return fmt.Errorf("failed to validate %s submission: %w", form, err)
	}
	utils.AddSpanAttribute(span, "validation.valid", result.IsValid)
	span.End()

	if !result.IsValid {
		observability.SubmissionsTotal.WithLabelValues(string(form), observability.OutcomeInvalid).Inc()
		logger.Warn("submission rejected by schema",
			zap.Strings("fields", result.Fields()))
		return fmt.Errorf("%w: %s", models.ErrInvalidSubmission, strings.Join(result.Fields(), ", "))
	}

	_, span = utils.TraceBusinessLogic(ctx, "email_config_check")
	settings := s.settings()
	err = settings.Validate()
	span.End()
	if err != nil {
		observability.SubmissionsTotal.WithLabelValues(string(form), observability.OutcomeNotConfigured).Inc()
		var cfgErr *models.ConfigError
		if errors.As(err, &cfgErr) {
			logger.Error("email service is not configured",
				zap.String("provider", settings.Provider),
				zap.Strings("missing", cfgErr.Missing))
		}
		return err
	}

	if err := s.dispatcher.Dispatch(ctx, settings, msg); err != nil {
		observability.SubmissionsTotal.WithLabelValues(string(form), observability.OutcomeDispatchFailed).Inc()
		return err
	}

	observability.SubmissionsTotal.WithLabelValues(string(form), observability.OutcomeAccepted).Inc()
	logger.Info("submission forwarded", fields...)
	return nil
}
