package intake

import (
	"maps"
	"slices"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/schema"
)

// ConfirmationLabel is sent to the Confirmer when an application is accepted.
const ConfirmationLabel = "APPROVED"

// WizardState is one snapshot of the apply wizard. Transition methods never
// modify the receiver; they return the next state.
type WizardState struct {
	Step        int
	Values      map[string]string
	Errors      map[string]string
	Submitting  bool
	Succeeded   bool
	ServerError string
}

// NewWizardState returns the initial state: step 0 with the form defaults.
func NewWizardState() WizardState {
	values := emptyValues(models.FormApply)
	values["state"] = "AZ"
	values["primaryGoal"] = "retirement_income"
	return WizardState{
		Values: values,
		Errors: map[string]string{},
	}
}

// StepCount is the number of wizard pages.
func StepCount() int { return len(schema.ApplySteps) }

// LastStep reports whether the wizard is on the final page.
func (s WizardState) LastStep() bool { return s.Step == StepCount()-1 }

// Title is the current page title.
func (s WizardState) Title() string { return schema.ApplySteps[s.Step].Title }

// StepFields lists the fields shown on the current page.
func (s WizardState) StepFields() []string {
	return append([]string(nil), schema.ApplySteps[s.Step].Fields...)
}

// Progress is the completed fraction, (step + 1) / steps.
func (s WizardState) Progress() float64 {
	return float64(s.Step+1) / float64(StepCount())
}

// Editable reports whether input and navigation are accepted.
func (s WizardState) Editable() bool { return !s.Submitting && !s.Succeeded }

func (s WizardState) clone() WizardState {
	s.Values = maps.Clone(s.Values)
	s.Errors = maps.Clone(s.Errors)
	return s
}

// SetValue records input for field. Only fields on the current page accept
// input; any other name, including fields of other pages, is ignored.
func (s WizardState) SetValue(field, value string) WizardState {
	if !s.Editable() || !slices.Contains(schema.ApplySteps[s.Step].Fields, field) {
		return s
	}
	next := s
	next.Values, next.Errors = setValue(models.FormApply, s.Values, s.Errors, field, value)
	return next
}

// Continue advances one page when every field of the current page passes.
// Otherwise it stays and attaches each failing field's message.
func (s WizardState) Continue() WizardState {
	if !s.Editable() || s.LastStep() {
		return s
	}

	next := s.clone()
	fields := s.StepFields()
	failing := fieldErrors(models.FormApply, s.Values, fields)
	for _, f := range fields {
		delete(next.Errors, f)
		if msg, ok := failing[f]; ok {
			next.Errors[f] = msg
		}
	}
	if len(failing) == 0 {
		next.Step++
	}
	return next
}

// Back returns to the previous page without validating. It is refused on the
// first page and while a submission is in flight.
func (s WizardState) Back() WizardState {
	if !s.Editable() || s.Step == 0 {
		return s
	}
	next := s
	next.Step--
	return next
}

// BeginSubmit validates the whole record on the last page. ok is false when no
// request should be sent; the returned state then carries any field errors.
func (s WizardState) BeginSubmit() (next WizardState, ok bool) {
	if !s.Editable() || !s.LastStep() {
		return s, false
	}

	next = s.clone()
	failing := fieldErrors(models.FormApply, s.Values, schema.Fields(models.FormApply))
	next.Errors = failing
	if len(failing) > 0 {
		return next, false
	}

	next.Submitting = true
	next.ServerError = ""
	return next, true
}

// ResolveSubmit applies the outcome of the request started by BeginSubmit.
func (s WizardState) ResolveSubmit(err error) WizardState {
	if !s.Submitting {
		return s
	}
	next := s
	next.Submitting = false
	if err != nil {
		next.ServerError = errorMessage(err, FallbackApplyError)
		return next
	}
	next.Succeeded = true
	return next
}
