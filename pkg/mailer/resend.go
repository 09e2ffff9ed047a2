package mailer

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Mailer delivers transactional email. Notification creation calls this
// best-effort; a delivery failure never fails the triggering operation.
type Mailer interface {
	Send(to, subject, html string) error
}

type resendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a Resend-backed mailer
func NewResendMailer(apiKey, from string) Mailer {
	return &resendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers a single HTML email via Resend
func (m *resendMailer) Send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := m.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
