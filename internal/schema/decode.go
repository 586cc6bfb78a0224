package schema

import (
	"fmt"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/mitchellh/mapstructure"
)

// ParseApplication validates raw against the apply rules and decodes it. When the
// payload is rejected the returned submission is nil and the result lists the
// failing fields.
func ParseApplication(raw interface{}) (*models.ApplicationSubmission, *ValidationResult, error) {
	var out models.ApplicationSubmission
	result, err := parse(models.FormApply, raw, &out)
	if err != nil || !result.IsValid {
		return nil, result, err
	}
	return &out, result, nil
}

// ParseContact validates raw against the contact rules and decodes it.
func ParseContact(raw interface{}) (*models.ContactSubmission, *ValidationResult, error) {
	var out models.ContactSubmission
	result, err := parse(models.FormContact, raw, &out)
	if err != nil || !result.IsValid {
		return nil, result, err
	}
	return &out, result, nil
}

func parse(form models.FormName, raw interface{}, out interface{}) (*ValidationResult, error) {
	result, err := Validate(form, raw)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		return result, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", form, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", form, err)
	}
	return result, nil
}
