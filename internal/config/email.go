package config

import (
	"strings"

	"github.com/advisor-site/lead-intake/internal/models"
)

// Email providers
const (
	ProviderResend = "resend"
	ProviderSES    = "ses"
)

// Email setting names
const (
	EnvEmailProvider = "EMAIL_PROVIDER"
	EnvResendAPIKey  = "RESEND_API_KEY"
	EnvSESRegion     = "SES_REGION"
	EnvEmailFrom     = "RESEND_FROM_EMAIL"
	EnvEmailInbox    = "JASON_INBOX_EMAIL"
)

// Provider-neutral aliases, read when the primary name is unset or empty.
const (
	EnvEmailFromAlias  = "EMAIL_FROM"
	EnvEmailInboxAlias = "EMAIL_INBOX"
)

// EmailSettings is the outbound email configuration at one point in time.
type EmailSettings struct {
	Provider     string
	ResendAPIKey string
	SESRegion    string
	From         string
	Inbox        string
}

// Email reads the email settings from the environment. It is called for every
// submission so that an operator fixing the environment takes effect without a
// restart.
func Email() EmailSettings {
	provider := strings.ToLower(lookup(EnvEmailProvider))
	if provider == "" {
		provider = ProviderResend
	}
	return EmailSettings{
		Provider:     provider,
		ResendAPIKey: lookup(EnvResendAPIKey),
		SESRegion:    lookup(EnvSESRegion),
		From:         lookup(EnvEmailFrom, EnvEmailFromAlias),
		Inbox:        lookup(EnvEmailInbox, EnvEmailInboxAlias),
	}
}

// credential returns the name and value of the provider credential setting.
func (s EmailSettings) credential() (string, string, bool) {
	switch s.Provider {
	case ProviderResend:
		return EnvResendAPIKey, s.ResendAPIKey, true
	case ProviderSES:
		return EnvSESRegion, s.SESRegion, true
	default:
		return EnvEmailProvider, "", false
	}
}

// Required lists the settings the active provider needs.
func (s EmailSettings) Required() []string {
	name, _, _ := s.credential()
	return []string{name, EnvEmailFrom, EnvEmailInbox}
}

// Missing lists the required settings that are unset.
func (s EmailSettings) Missing() []string {
	var missing []string
	if name, value, _ := s.credential(); value == "" {
		missing = append(missing, name)
	}
	if s.From == "" {
		missing = append(missing, EnvEmailFrom)
	}
	if s.Inbox == "" {
		missing = append(missing, EnvEmailInbox)
	}
	return missing
}

// Validate returns a *models.ConfigError when any required setting is missing.
func (s EmailSettings) Validate() error {
	missing := s.Missing()
	if len(missing) == 0 {
		return nil
	}
	return &models.ConfigError{Required: s.Required(), Missing: missing}
}
