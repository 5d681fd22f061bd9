package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pskill9/PreclinicalResearch/form"
)

const (
	successText = "Thank you for your message! We'll get back to you soon."
	errorText   = "Sorry, there was an error sending your message. Please try again."
	submitLabel = "Send Message"
)

// termBanner prints its text when shown.
type termBanner struct {
	out  io.Writer
	text string
}

func (b *termBanner) Show() { fmt.Fprintln(b.out, b.text) }
func (b *termBanner) Hide() {}

// termButton prints the busy label while a submission is in flight.
type termButton struct {
	out   io.Writer
	idle  string
	label string
}

func (b *termButton) Label() string { return b.label }

func (b *termButton) SetLabel(label string) {
	b.label = label
	if label != b.idle {
		fmt.Fprintln(b.out, label)
	}
}

func (b *termButton) SetDisabled(bool) {}

// session runs the prompt, validate and submit loop over a MemoryForm.
type session struct {
	form   *form.MemoryForm
	ctrl   *form.Controller
	prompt Prompter
}

func newSession(p Prompter, submitter form.Submitter, out io.Writer, opts form.Options) *session {
	f := form.NewMemoryForm(form.ContactFields)
	ctrl := form.NewController(form.Elements{
		Form:    f,
		Submit:  &termButton{out: out, idle: submitLabel, label: submitLabel},
		Success: &termBanner{out: out, text: successText},
		Error:   &termBanner{out: out, text: errorText},
	}, submitter, opts)

	return &session{form: f, ctrl: ctrl, prompt: p}
}

// run prompts every field, then re-prompts invalid fields until the form
// validates. After a transport failure the user may resend the preserved
// values.
func (s *session) run(ctx context.Context) error {
	pending := form.ContactFields
	for {
		for _, spec := range pending {
			f := s.form.Field(spec.Name)
			v, err := s.prompt.Ask(ctx, f)
			if err != nil {
				return err
			}
			f.SetValue(v)
			s.ctrl.ClearFieldError(f)
		}

		err := s.ctrl.Submit(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, form.ErrInvalid):
			pending = s.invalid()
		default:
			retry, cerr := s.prompt.Confirm(ctx, "Send again?")
			if cerr != nil {
				return cerr
			}
			if !retry {
				return err
			}
			pending = nil
		}
	}
}

func (s *session) invalid() []form.Spec {
	var out []form.Spec
	for _, spec := range form.ContactFields {
		if s.form.Field(spec.Name).Invalid() {
			out = append(out, spec)
		}
	}
	return out
}

func bannerDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
