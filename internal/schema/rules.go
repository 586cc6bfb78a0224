// Package schema holds the acceptance rules for every intake form. The same rule
// table drives server-side validation, the JSON Schema document served to browsers
// and the step gating of the client controllers.
package schema

import (
	"github.com/advisor-site/lead-intake/internal/models"
)

// Kind is the type of check a rule applies to its field.
type Kind string

const (
	KindMinLength Kind = "min_length"
	KindEnum      Kind = "enum"
	KindEmail     Kind = "email"
)

// Rule is the acceptance rule for a single field.
type Rule struct {
	Field     string   `json:"field"`
	Kind      Kind     `json:"kind"`
	MinLength int      `json:"minLength,omitempty"`
	Options   []string `json:"options,omitempty"`
	Message   string   `json:"message"`
}

// Option sets for the enumerated apply fields.
var (
	GenderOptions              = []string{"male", "female", "non_binary", "prefer_not_say"}
	SmokerStatusOptions        = []string{"never", "former", "current"}
	MonthlyContributionOptions = []string{"250-500", "500-1000", "1000-2500", "2500-plus"}
	PrimaryGoalOptions         = []string{"retirement_income", "legacy", "living_benefits"}
)

var applyRules = []Rule{
	{Field: "fullName", Kind: KindMinLength, MinLength: 2, Message: "Full name is required"},
	{Field: "dob", Kind: KindMinLength, MinLength: 1, Message: "Date of birth is required"},
	{Field: "gender", Kind: KindEnum, Options: GenderOptions, Message: "Please select a gender"},
	{Field: "state", Kind: KindMinLength, MinLength: 2, Message: "State is required"},
	{Field: "smokerStatus", Kind: KindEnum, Options: SmokerStatusOptions, Message: "Please select smoker status"},
	{Field: "majorConditions", Kind: KindMinLength, MinLength: 2, Message: "Please provide health details"},
	{Field: "monthlyContribution", Kind: KindEnum, Options: MonthlyContributionOptions, Message: "Select a contribution range"},
	{Field: "deathBenefitTarget", Kind: KindMinLength, MinLength: 2, Message: "Enter a death benefit target"},
	{Field: "primaryGoal", Kind: KindEnum, Options: PrimaryGoalOptions, Message: "Select a primary goal"},
	{Field: "email", Kind: KindEmail, Message: "Enter a valid email"},
	{Field: "phone", Kind: KindMinLength, MinLength: 7, Message: "Enter a valid phone number"},
	{Field: "bestTimeToCall", Kind: KindMinLength, MinLength: 2, Message: "Share the best time to call"},
}

var contactRules = []Rule{
	{Field: "name", Kind: KindMinLength, MinLength: 2, Message: "Name is required"},
	{Field: "email", Kind: KindEmail, Message: "Enter a valid email"},
	{Field: "phone", Kind: KindMinLength, MinLength: 7, Message: "Enter a valid phone"},
	{Field: "message", Kind: KindMinLength, MinLength: 10, Message: "Please share at least 10 characters"},
}

// Rules returns a copy of the rule table for a form.
func Rules(form models.FormName) ([]Rule, error) {
	var rules []Rule
	switch form {
	case models.FormApply:
		rules = applyRules
	case models.FormContact:
		rules = contactRules
	default:
		return nil, models.ErrUnknownForm
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out, nil
}

// Fields returns the field names of a form in rule order.
func Fields(form models.FormName) []string {
	rules, err := Rules(form)
	if err != nil {
		return nil
	}
	fields := make([]string, len(rules))
	for i, r := range rules {
		fields[i] = r.Field
	}
	return fields
}

// Step is one page of the apply wizard.
type Step struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// ApplySteps partitions the apply fields into the wizard pages. Every apply field
// belongs to exactly one step.
var ApplySteps = []Step{
	{Title: "Personal Info", Fields: []string{"fullName", "dob", "gender", "state"}},
	{Title: "Health Questions", Fields: []string{"smokerStatus", "majorConditions"}},
	{Title: "Coverage Goals", Fields: []string{"monthlyContribution", "deathBenefitTarget", "primaryGoal"}},
	{Title: "Contact Preferences", Fields: []string{"email", "phone", "bestTimeToCall"}},
}
