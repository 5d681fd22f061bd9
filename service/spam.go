package service

import (
	"strings"

	"github.com/pskill9/PreclinicalResearch/model"
)

// SpamFilter flags submissions containing a denylisted term.
type SpamFilter struct {
	terms []string
}

func NewSpamFilter(terms []string) *SpamFilter {
	f := &SpamFilter{}
	for _, term := range terms {
		if t := strings.ToLower(strings.TrimSpace(term)); t != "" {
			f.terms = append(f.terms, t)
		}
	}
	return f
}

// Match reports the first denylisted term found, case-insensitively, in
// the name, email, subject and message of sub.
func (f *SpamFilter) Match(sub model.FormSubmission) (string, bool) {
	text := strings.ToLower(strings.Join([]string{sub.Name, sub.Email, sub.Subject, sub.Message}, " "))
	for _, term := range f.terms {
		if strings.Contains(text, term) {
			return term, true
		}
	}
	return "", false
}
