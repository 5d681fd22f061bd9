package form

import (
	"regexp"
	"strings"

	"github.com/pskill9/PreclinicalResearch/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Spec describes a field of the contact form.
type Spec struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
}

// ContactFields is the contact form layout in document order.
var ContactFields = []Spec{
	{Name: model.FieldName, Label: "Name", Kind: KindText, Required: true},
	{Name: model.FieldEmail, Label: "Email", Kind: KindEmail, Required: true},
	{Name: model.FieldCompany, Label: "Company", Kind: KindText},
	{Name: model.FieldPhone, Label: "Phone", Kind: KindTel},
	{Name: model.FieldSubject, Label: "Subject", Kind: KindText, Required: true},
	{Name: model.FieldMessage, Label: "Message", Kind: KindTextArea, Required: true},
}

// ValidEmail reports whether v has the local@domain.tld shape.
func ValidEmail(v string) bool {
	return emailPattern.MatchString(v)
}

// ValidValue applies the required-field rules for kind to value.
func ValidValue(kind Kind, value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	if kind == KindEmail && !ValidEmail(v) {
		return false
	}
	return true
}

// ValidateValues checks values against ContactFields and returns the names
// of the invalid required fields in document order.
func ValidateValues(values map[string]string) []string {
	var invalid []string
	for _, spec := range ContactFields {
		if !spec.Required {
			continue
		}
		if !ValidValue(spec.Kind, values[spec.Name]) {
			invalid = append(invalid, spec.Name)
		}
	}
	return invalid
}
