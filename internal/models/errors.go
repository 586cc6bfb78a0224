package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error constants for submission processing
var (
	ErrInvalidSubmission  = errors.New("invalid submission")
	ErrEmailNotConfigured = errors.New("email service is not configured")
	ErrDispatchFailed     = errors.New("email dispatch failed")
	ErrUnknownForm        = errors.New("unknown form")
	ErrRateLimited        = errors.New("submission rate limit exceeded")
)

// ConfigError reports an incomplete email configuration. Required lists every
// setting the active provider needs; Missing the ones that were unset.
type ConfigError struct {
	Required []string
	Missing  []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrEmailNotConfigured, strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Unwrap() error {
	return ErrEmailNotConfigured
}

// ClientMessage is the operator-facing message returned to the caller.
func (e *ConfigError) ClientMessage() string {
	return "Email service is not configured. Set " + joinSettings(e.Required) + "."
}

// joinSettings renders "A", "A and B" or "A, B, and C".
func joinSettings(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
