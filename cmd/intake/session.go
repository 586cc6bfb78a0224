package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/advisor-site/lead-intake/internal/intake"
	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/schema"
)

// backInput moves the wizard to the previous page.
const backInput = "<"

// session reads answers line by line and prints the form state.
type session struct {
	in  *bufio.Scanner
	out io.Writer
}

func newSession(in io.Reader, out io.Writer) *session {
	return &session{in: bufio.NewScanner(in), out: out}
}

func (s *session) read(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// askField prompts for one field. An empty answer keeps current.
func (s *session) askField(rule schema.Rule, current, problem string) (value string, back bool, err error) {
	if problem != "" {
		fmt.Fprintf(s.out, "  ! %s\n", problem)
	}

	prompt := "  " + rule.Field
	if len(rule.Options) > 0 {
		prompt += " (" + strings.Join(rule.Options, "/") + ")"
	}
	if current != "" {
		prompt += " [" + current + "]"
	}

	line, ok := s.read(prompt + ": ")
	switch {
	case !ok:
		return "", false, errAborted
	case line == backInput:
		return current, true, nil
	case line == "":
		return current, false, nil
	}
	return line, false, nil
}

func rulesByField(form models.FormName) (map[string]schema.Rule, error) {
	rules, err := schema.Rules(form)
	if err != nil {
		return nil, err
	}
	out := make(map[string]schema.Rule, len(rules))
	for _, r := range rules {
		out[r.Field] = r
	}
	return out, nil
}

// runApply drives the application wizard until the server accepts it.
func (s *session) runApply(ctx context.Context, submitter intake.Submitter) error {
	rules, err := rulesByField(models.FormApply)
	if err != nil {
		return err
	}

	wizard := intake.NewWizard(submitter, intake.ConfirmerFunc(func(label string) {
		fmt.Fprintln(s.out, label)
	}))
	fmt.Fprintf(s.out, "Enter %q on any question to go back a page.\n", backInput)

	for {
		state := wizard.State()
		fmt.Fprintf(s.out, "\nStep %d of %d: %s (%.0f%%)\n",
			state.Step+1, intake.StepCount(), state.Title(), state.Progress()*100)

		back := false
		for _, field := range state.StepFields() {
			value, goBack, err := s.askField(rules[field], state.Values[field], state.Errors[field])
			if err != nil {
				return err
			}
			if goBack {
				back = true
				break
			}
			wizard.SetValue(field, value)
		}

		switch {
		case back:
			wizard.Back()
		case !state.LastStep():
			wizard.Continue()
		default:
			state = wizard.Submit(ctx)
			if state.Succeeded {
				return nil
			}
			if state.ServerError != "" {
				fmt.Fprintf(s.out, "  ! %s\n", state.ServerError)
			}
		}
	}
}

// runContact prompts for the contact form until the server accepts it. After
// a validation failure only the failing fields are asked again.
func (s *session) runContact(ctx context.Context, submitter intake.Submitter) error {
	rules, err := rulesByField(models.FormContact)
	if err != nil {
		return err
	}

	form := intake.NewContactForm(submitter)
	for {
		state := form.State()
		for _, field := range schema.Fields(models.FormContact) {
			problem, failing := state.Errors[field]
			if len(state.Errors) > 0 && !failing {
				continue
			}
			value, _, err := s.askField(rules[field], state.Values[field], problem)
			if err != nil {
				return err
			}
			form.SetValue(field, value)
		}

		state = form.Submit(ctx)
		if state.SuccessMessage != "" {
			fmt.Fprintln(s.out, state.SuccessMessage)
			return nil
		}
		if state.ServerError != "" {
			fmt.Fprintf(s.out, "  ! %s\n", state.ServerError)
		}
	}
}
