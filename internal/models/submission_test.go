package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationSubmission_Lines(t *testing.T) {
	app := ApplicationSubmission{
		FullName:            "Jane Doe",
		DOB:                 "1970-01-01",
		Gender:              "female",
		State:               "AZ",
		SmokerStatus:        "never",
		MajorConditions:     "none",
		MonthlyContribution: "500-1000",
		DeathBenefitTarget:  "$500,000",
		PrimaryGoal:         "retirement_income",
		Email:               "jane@example.com",
		Phone:               "555-1234567",
		BestTimeToCall:      "afternoons",
	}

	lines := app.Lines()
	labels := make([]string, len(lines))
	for i, l := range lines {
		labels[i] = l.Label
	}

	assert.Equal(t, []string{
		"Full Name", "DOB", "Gender", "State", "Smoker Status", "Major Conditions",
		"Monthly Contribution", "Death Benefit Target", "Primary Goal", "Email", "Phone",
		"Best Time to Call",
	}, labels)
	assert.Equal(t, "Jane Doe", lines[0].Value)
	assert.Equal(t, "afternoons", lines[11].Value)
}

func TestContactSubmission_Lines(t *testing.T) {
	c := ContactSubmission{Name: "Sam", Email: "sam@example.com", Phone: "5551234567", Message: "hello there"}

	assert.Equal(t, []LabeledValue{
		{"Name", "Sam"},
		{"Email", "sam@example.com"},
		{"Phone", "5551234567"},
		{"Message", "hello there"},
	}, c.Lines())
}
