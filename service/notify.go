package service

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pskill9/PreclinicalResearch/config"
	"github.com/pskill9/PreclinicalResearch/model"
)

const notificationSubject = "New Contact Form Submission - Anubis Pre-Clinical"

// Notifier announces a recorded submission.
type Notifier interface {
	Notify(ctx context.Context, sub model.FormSubmission) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// MailNotifier emails each recorded submission to a fixed address.
type MailNotifier struct {
	to       string
	smtp     config.SMTPConfig
	policy   *bluemonday.Policy
	sendMail sendMailFunc
}

func NewMailNotifier(to string, cfg config.SMTPConfig) *MailNotifier {
	return &MailNotifier{
		to:       to,
		smtp:     cfg,
		policy:   bluemonday.StrictPolicy(),
		sendMail: smtp.SendMail,
	}
}

func (n *MailNotifier) Notify(ctx context.Context, sub model.FormSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := n.smtp.From
	if from == "" {
		from = n.smtp.Username
	}

	var auth smtp.Auth
	if n.smtp.Username != "" {
		auth = smtp.PlainAuth("", n.smtp.Username, n.smtp.Password, n.smtp.Host)
	}

	addr := net.JoinHostPort(n.smtp.Host, strconv.Itoa(n.smtp.Port))
	if err := n.sendMail(addr, auth, from, []string{n.to}, n.Message(from, sub)); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// Message renders the plain-text notification mail for sub. Field values
// are stripped of markup and of line breaks where they land in headers.
func (n *MailNotifier) Message(from string, sub model.FormSubmission) []byte {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(s)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", n.to)
	fmt.Fprintf(&b, "Subject: %s\r\n", notificationSubject)
	if email := headerSafe(sub.Email); email != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", email)
	}
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")

	b.WriteString("New contact form submission received:\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", clean(sub.Name))
	fmt.Fprintf(&b, "Email: %s\r\n", clean(sub.Email))
	fmt.Fprintf(&b, "Company: %s\r\n", clean(sub.Company))
	fmt.Fprintf(&b, "Phone: %s\r\n", clean(sub.Phone))
	fmt.Fprintf(&b, "Subject: %s\r\n", clean(sub.Subject))
	fmt.Fprintf(&b, "Message: %s\r\n", clean(sub.Message))
	fmt.Fprintf(&b, "Timestamp: %s\r\n", clean(sub.Timestamp))
	return []byte(b.String())
}

func headerSafe(s string) string {
	if strings.ContainsAny(s, "\r\n") {
		return ""
	}
	return strings.TrimSpace(s)
}
