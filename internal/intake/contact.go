package intake

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/schema"
)

// ContactState is one snapshot of the contact form. The form stays editable
// after a successful send.
type ContactState struct {
	Values         map[string]string
	Errors         map[string]string
	Submitting     bool
	SuccessMessage string
	ServerError    string
}

// NewContactState returns an empty contact form
func NewContactState() ContactState {
	return ContactState{
		Values: emptyValues(models.FormContact),
		Errors: map[string]string{},
	}
}

func (s ContactState) clone() ContactState {
	s.Values = maps.Clone(s.Values)
	s.Errors = maps.Clone(s.Errors)
	return s
}

// SetValue records input for field. Names outside the contact form are
// ignored.
func (s ContactState) SetValue(field, value string) ContactState {
	if s.Submitting || !slices.Contains(schema.Fields(models.FormContact), field) {
		return s
	}
	next := s
	next.Values, next.Errors = setValue(models.FormContact, s.Values, s.Errors, field, value)
	return next
}

// BeginSubmit validates every field. When they pass it clears the previous
// outcome and marks the form as submitting.
func (s ContactState) BeginSubmit() (next ContactState, ok bool) {
	if s.Submitting {
		return s, false
	}

	next = s.clone()
	next.Errors = fieldErrors(models.FormContact, s.Values, schema.Fields(models.FormContact))
	if len(next.Errors) > 0 {
		return next, false
	}

	next.Submitting = true
	next.ServerError = ""
	next.SuccessMessage = ""
	return next, true
}

// ResolveSubmit applies the outcome of the request. Success clears every field
// and shows the server's message; failure keeps the input.
func (s ContactState) ResolveSubmit(message string, err error) ContactState {
	if !s.Submitting {
		return s
	}
	next := s
	next.Submitting = false
	if err != nil {
		next.ServerError = errorMessage(err, FallbackContactError)
		return next
	}

	next.Values = emptyValues(models.FormContact)
	next.Errors = map[string]string{}
	next.SuccessMessage = message
	if next.SuccessMessage == "" {
		next.SuccessMessage = FallbackContactSuccess
	}
	return next
}

// ContactForm drives a ContactState. It is safe for concurrent use.
type ContactForm struct {
	mu        sync.Mutex
	state     ContactState
	submitter Submitter
}

// NewContactForm creates an empty contact form
func NewContactForm(submitter Submitter) *ContactForm {
	return &ContactForm{state: NewContactState(), submitter: submitter}
}

// State returns a snapshot of the current state
func (f *ContactForm) State() ContactState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// SetValue records input for field
func (f *ContactForm) SetValue(field, value string) ContactState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = f.state.SetValue(field, value)
	return f.state.clone()
}

// Submit sends the form when it is valid and no request is in flight
func (f *ContactForm) Submit(ctx context.Context) ContactState {
	f.mu.Lock()
	next, ok := f.state.BeginSubmit()
	f.state = next
	if !ok {
		snapshot := f.state.clone()
		f.mu.Unlock()
		return snapshot
	}
	values := f.state.clone().Values
	f.mu.Unlock()

	message, err := f.submitter.Submit(ctx, models.FormContact, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = f.state.ResolveSubmit(message, err)
	return f.state.clone()
}
