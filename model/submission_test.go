package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewFormSubmission(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 4, 5, 123_000_000, time.FixedZone("EST", -5*3600))
	sub := NewFormSubmission(at, map[string]string{
		FieldName:    "Jo",
		FieldEmail:   "jo@x.com",
		FieldSubject: "Hi",
		FieldMessage: "Test",
	})

	want := FormSubmission{
		Timestamp: "2024-03-05T15:04:05.123Z",
		Name:      "Jo",
		Email:     "jo@x.com",
		Subject:   "Hi",
		Message:   "Test",
	}
	if diff := cmp.Diff(want, sub); diff != "" {
		t.Errorf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestFormSubmissionJSONKeys(t *testing.T) {
	data, err := json.Marshal(FormSubmission{Timestamp: "t", Name: "n", Email: "e", Company: "c", Phone: "p", Subject: "s", Message: "m"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var keys map[string]string
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]string{
		"timestamp": "t", "name": "n", "email": "e", "company": "c",
		"phone": "p", "subject": "s", "message": "m",
	}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("json keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRowValuesFollowSheetHeader(t *testing.T) {
	row := &Row{Submission: FormSubmission{Timestamp: "t", Name: "n", Email: "e", Company: "c", Phone: "p", Subject: "s", Message: "m"}}

	values := row.Values()
	if len(values) != len(SheetHeader) {
		t.Fatalf("Expected %d columns, got %d", len(SheetHeader), len(values))
	}
	if diff := cmp.Diff([]string{"t", "n", "e", "c", "p", "s", "m"}, values); diff != "" {
		t.Errorf("row values mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageStateString(t *testing.T) {
	states := []MessageState{MessageHidden, MessageSuccess, MessageError}
	expected := []string{"hidden", "success", "error"}

	for i, state := range states {
		if state.String() != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], state.String())
		}
	}
}
