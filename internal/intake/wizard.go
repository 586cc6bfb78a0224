package intake

import (
	"context"
	"sync"

	"github.com/advisor-site/lead-intake/internal/models"
)

// Wizard drives a WizardState for one user. It is safe for concurrent use;
// overlapping Submit calls send at most one request.
type Wizard struct {
	mu        sync.Mutex
	state     WizardState
	submitter Submitter
	confirmer Confirmer
}

// NewWizard creates a wizard in its initial state. confirmer may be nil.
func NewWizard(submitter Submitter, confirmer Confirmer) *Wizard {
	return &Wizard{
		state:     NewWizardState(),
		submitter: submitter,
		confirmer: confirmer,
	}
}

// State returns a snapshot of the current state
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.clone()
}

func (w *Wizard) apply(fn func(WizardState) WizardState) WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = fn(w.state)
	return w.state.clone()
}

// SetValue records input for field
func (w *Wizard) SetValue(field, value string) WizardState {
	return w.apply(func(s WizardState) WizardState { return s.SetValue(field, value) })
}

// Continue validates the current page and advances when it passes
func (w *Wizard) Continue() WizardState {
	return w.apply(WizardState.Continue)
}

// Back returns to the previous page
func (w *Wizard) Back() WizardState {
	return w.apply(WizardState.Back)
}

// Submit sends the application when the last page is valid and no request is
// in flight. It blocks until the request finishes.
func (w *Wizard) Submit(ctx context.Context) WizardState {
	w.mu.Lock()
	next, ok := w.state.BeginSubmit()
	w.state = next
	if !ok {
		snapshot := w.state.clone()
		w.mu.Unlock()
		return snapshot
	}
	values := w.state.clone().Values
	w.mu.Unlock()

	_, err := w.submitter.Submit(ctx, models.FormApply, values)

	w.mu.Lock()
	w.state = w.state.ResolveSubmit(err)
	snapshot := w.state.clone()
	w.mu.Unlock()

	if err == nil && w.confirmer != nil {
		w.confirmer.Confirm(ConfirmationLabel)
	}
	return snapshot
}
