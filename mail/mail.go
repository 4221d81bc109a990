package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"

	"github.com/caasmo/tablebook/config"
)

// Mailer delivers templated HTML email over SMTP. It is the Notifier
// collaborator of the verification flow: send(toAddress, htmlBody), failure
// surfaced to the caller.
type Mailer struct {
	cfg config.Smtp
}

// New creates a new Mailer from SMTP configuration.
func New(cfg config.Smtp) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers one HTML email. The send runs in its own goroutine so the
// context can bound the total delivery time; mailyak itself has no context
// support.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	mail := mailyak.New(fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port),
		smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host))

	mail.To(to)
	mail.From(m.cfg.FromAddress)
	mail.FromName(m.cfg.FromName)
	mail.Subject(subject)
	mail.HTML().Set(htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
	}
	return nil
}
