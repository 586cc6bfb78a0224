package schema

import (
	"fmt"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

// RootField is the field name reported when the payload itself has the wrong shape.
const RootField = "(root)"

const rootMessage = "Submission must be a JSON object"

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ByField maps each failing field to its message.
func (vr *ValidationResult) ByField() map[string]string {
	out := make(map[string]string, len(vr.Errors))
	for _, e := range vr.Errors {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Fields lists the failing fields in report order.
func (vr *ValidationResult) Fields() []string {
	fields := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

type emailFormatChecker struct {
	validate *validator.Validate
}

// IsFormat accepts non-strings so that type errors are reported by the type keyword.
func (c emailFormatChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	return c.validate.Var(s, "required,email") == nil
}

type compiledForm struct {
	rules  []Rule
	schema *gojsonschema.Schema
}

var compiled map[models.FormName]*compiledForm

func init() {
	gojsonschema.FormatCheckers.Add("email", emailFormatChecker{validate: validator.New()})

	compiled = make(map[models.FormName]*compiledForm, 2)
	for _, form := range []models.FormName{models.FormApply, models.FormContact} {
		rules, _ := Rules(form)
		s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(document(form, rules)))
		if err != nil {
			panic(fmt.Sprintf("schema: compile %s: %v", form, err))
		}
		compiled[form] = &compiledForm{rules: rules, schema: s}
	}
}

// Validate checks a decoded JSON value against the rules of a form. A non-nil error
// means the form is unknown or the schema engine failed, never that the payload is
// invalid.
func Validate(form models.FormName, raw interface{}) (*ValidationResult, error) {
	cf, ok := compiled[form]
	if !ok {
		return nil, models.ErrUnknownForm
	}

	res, err := cf.schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", form, err)
	}

	result := NewValidationResult()
	if res.Valid() {
		return result, nil
	}

	failed := make(map[string]bool)
	rootFailed := false
	for _, re := range res.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if p, ok := re.Details()["property"].(string); ok {
				field = p
			}
		}
		if field == RootField {
			rootFailed = true
			continue
		}
		failed[field] = true
	}

	if rootFailed {
		result.AddError(RootField, rootMessage)
	}
	for _, r := range cf.rules {
		if failed[r.Field] {
			result.AddError(r.Field, r.Message)
		}
	}
	return result, nil
}

// ValidateFields validates the whole record but reports only the given fields.
func ValidateFields(form models.FormName, raw interface{}, fields []string) (*ValidationResult, error) {
	full, err := Validate(form, raw)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	result := NewValidationResult()
	for _, e := range full.Errors {
		if wanted[e.Field] || e.Field == RootField {
			result.AddError(e.Field, e.Message)
		}
	}
	return result, nil
}

// FromValues converts form input into the generic shape Validate consumes.
func FromValues(values map[string]string) map[string]interface{} {
	raw := make(map[string]interface{}, len(values))
	for k, v := range values {
		raw[k] = v
	}
	return raw
}
