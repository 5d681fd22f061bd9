package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/pskill9/PreclinicalResearch/form"
)

var errAborted = errors.New("contactctl: aborted")

// Prompter asks the user for field values and confirmations.
type Prompter interface {
	Ask(ctx context.Context, f *form.MemoryField) (string, error)
	Confirm(ctx context.Context, msg string) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(ctx context.Context, f *form.MemoryField) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	msg := f.Label()
	if f.Required() {
		msg += " *"
	}
	help := ""
	if f.Invalid() {
		help = "This field is required"
		if f.Kind() == form.KindEmail {
			help = "Enter an email address like name@example.com"
		}
	}

	var prompt survey.Prompt = &survey.Input{Message: msg, Default: f.Value(), Help: help}
	if form.Multiline(f) {
		prompt = &survey.Multiline{Message: msg, Default: f.Value(), Help: help}
	}

	var out string
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Confirm(ctx context.Context, msg string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: msg, Default: true}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
