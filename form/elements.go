// Package form validates and submits the contact form and drives its
// visible feedback state through injected element handles.
package form

import (
	"context"
	"time"

	"github.com/pskill9/PreclinicalResearch/model"
)

// Kind is the input kind of a form field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindTextArea Kind = "textarea"
)

// Field is a handle on one input element.
type Field interface {
	Name() string
	Kind() Kind
	Required() bool
	Value() string
	SetValue(v string)
	// SetInvalid toggles the field's error indicator.
	SetInvalid(invalid bool)
	Focus()
}

// Form exposes the form's fields in document order.
type Form interface {
	Fields() []Field
}

// Button is the submit control.
type Button interface {
	Label() string
	SetLabel(label string)
	SetDisabled(disabled bool)
}

// Banner is a message region that can be shown and hidden.
type Banner interface {
	Show()
	Hide()
}

// Submitter delivers a submission to the webhook. Only transport failures
// are reported; the response itself is opaque.
type Submitter interface {
	Submit(ctx context.Context, sub model.FormSubmission) error
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimeScheduler schedules with time.AfterFunc.
type TimeScheduler struct{}

func (TimeScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Elements groups the element handles a Controller is bound to.
type Elements struct {
	Form    Form
	Submit  Button
	Success Banner
	Error   Banner
}

// Multiline reports whether Enter is allowed to insert text in f.
func Multiline(f Field) bool {
	return f.Kind() == KindTextArea
}

// SuppressEnter reports whether a keydown of key in f must be cancelled so
// that only the submit control submits the form.
func SuppressEnter(f Field, key string) bool {
	return key == "Enter" && !Multiline(f)
}
