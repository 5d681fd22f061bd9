//go:build js && wasm

// Package dom binds browser elements to the handles the form package
// drives.
package dom

import (
	"strings"
	"syscall/js"

	"github.com/pskill9/PreclinicalResearch/form"
)

// ErrorClass marks an invalid field.
const ErrorClass = "error"

// Element wraps a DOM element.
type Element struct {
	v js.Value
}

// ByID looks up an element of the current document.
func ByID(id string) (Element, bool) {
	v := js.Global().Get("document").Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return Element{}, false
	}
	return Element{v: v}, true
}

func (e Element) JSValue() js.Value {
	return e.v
}

// ToggleClass adds or removes class.
func (e Element) ToggleClass(class string, on bool) {
	e.v.Get("classList").Call("toggle", class, on)
}

// On registers fn for event. The returned func releases the listener.
func (e Element) On(event string, fn func(ev js.Value)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	e.v.Call("addEventListener", event, cb)
	return func() {
		e.v.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

func (e Element) attr(name string) string {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// Field is an input or textarea of the form.
type Field struct {
	Element
	name     string
	kind     form.Kind
	required bool
}

func NewField(v js.Value) *Field {
	el := Element{v: v}
	name := el.attr("name")
	if name == "" {
		name = el.attr("id")
	}

	kind := form.Kind(strings.ToLower(el.attr("type")))
	switch {
	case strings.EqualFold(v.Get("tagName").String(), "textarea"):
		kind = form.KindTextArea
	case kind != form.KindEmail && kind != form.KindTel:
		kind = form.KindText
	}

	return &Field{
		Element:  el,
		name:     name,
		kind:     kind,
		required: v.Get("required").Truthy(),
	}
}

func (f *Field) Name() string    { return f.name }
func (f *Field) Kind() form.Kind { return f.kind }
func (f *Field) Required() bool  { return f.required }
func (f *Field) Value() string   { return f.v.Get("value").String() }
func (f *Field) Focus()          { f.v.Call("focus") }

func (f *Field) SetValue(v string) {
	f.v.Set("value", v)
}

func (f *Field) SetInvalid(invalid bool) {
	f.ToggleClass(ErrorClass, invalid)
}

// Form is the contact form element and its text fields.
type Form struct {
	Element
	fields []*Field
}

// NewForm collects the form's input and textarea controls in document
// order, skipping buttons and hidden inputs.
func NewForm(el Element) *Form {
	f := &Form{Element: el}
	controls := el.v.Call("querySelectorAll", "input, textarea")
	for i := 0; i < controls.Length(); i++ {
		c := controls.Index(i)
		switch strings.ToLower(c.Get("type").String()) {
		case "submit", "button", "reset", "hidden", "checkbox", "radio":
			continue
		}
		f.fields = append(f.fields, NewField(c))
	}
	return f
}

func (f *Form) Fields() []form.Field {
	out := make([]form.Field, len(f.fields))
	for i, fld := range f.fields {
		out[i] = fld
	}
	return out
}

// FieldFor returns the field backing target, or nil.
func (f *Form) FieldFor(target js.Value) form.Field {
	for _, fld := range f.fields {
		if fld.v.Equal(target) {
			return fld
		}
	}
	return nil
}

// SubmitButton returns the form's submit control.
func (f *Form) SubmitButton() *Button {
	return &Button{Element: Element{v: f.v.Call("querySelector", `button[type="submit"], input[type="submit"]`)}}
}

// Button is a submit control. Its label is the text content.
type Button struct {
	Element
}

func (b *Button) Label() string {
	if b.v.IsNull() {
		return ""
	}
	return b.v.Get("textContent").String()
}

func (b *Button) SetLabel(label string) {
	if !b.v.IsNull() {
		b.v.Set("textContent", label)
	}
}

func (b *Button) SetDisabled(disabled bool) {
	if !b.v.IsNull() {
		b.v.Set("disabled", disabled)
	}
}

// Banner is a feedback message shown with display:block.
type Banner struct {
	Element
}

func NewBanner(el Element) *Banner {
	return &Banner{Element: el}
}

func (b *Banner) Show() { b.v.Get("style").Set("display", "block") }
func (b *Banner) Hide() { b.v.Get("style").Set("display", "none") }
