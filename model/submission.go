package model

import (
	"time"
)

// TimestampLayout is the ISO-8601 form used for submission timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Field names of a contact form submission, in spreadsheet column order.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldPhone   = "phone"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// FormFields lists the submitted form fields in document order.
var FormFields = []string{FieldName, FieldEmail, FieldCompany, FieldPhone, FieldSubject, FieldMessage}

// SheetHeader is the header row of the submissions sheet.
var SheetHeader = []string{"Timestamp", "Name", "Email", "Company", "Phone", "Subject", "Message"}

// FormSubmission is the payload posted to the webhook
type FormSubmission struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// NewFormSubmission builds a snapshot from field values keyed by field name.
func NewFormSubmission(at time.Time, values map[string]string) FormSubmission {
	return FormSubmission{
		Timestamp: FormatTimestamp(at),
		Name:      values[FieldName],
		Email:     values[FieldEmail],
		Company:   values[FieldCompany],
		Phone:     values[FieldPhone],
		Subject:   values[FieldSubject],
		Message:   values[FieldMessage],
	}
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Values returns the submission keyed by field name.
func (s FormSubmission) Values() map[string]string {
	return map[string]string{
		FieldName:    s.Name,
		FieldEmail:   s.Email,
		FieldCompany: s.Company,
		FieldPhone:   s.Phone,
		FieldSubject: s.Subject,
		FieldMessage: s.Message,
	}
}

// Row is a submission appended to the submissions sheet
type Row struct {
	ID         string         `json:"id"`
	Submission FormSubmission `json:"submission"`
	ReceivedAt time.Time      `json:"received_at"`
}

// Values returns the seven sheet columns in header order.
func (r *Row) Values() []string {
	s := r.Submission
	return []string{s.Timestamp, s.Name, s.Email, s.Company, s.Phone, s.Subject, s.Message}
}

// Webhook response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WebhookResponse is the body returned by the webhook when it is readable.
type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MessageState is the visible state of the feedback banners.
type MessageState int

const (
	MessageHidden MessageState = iota
	MessageSuccess
	MessageError
)

func (s MessageState) String() string {
	switch s {
	case MessageSuccess:
		return "success"
	case MessageError:
		return "error"
	default:
		return "hidden"
	}
}
