// Package mail sends contact-form notifications through an external SMTP relay.
package mail

import (
	"context"
	"fmt"
	"html"

	"journal/internal/config"
	"journal/internal/middleware"
	"journal/internal/models"

	gomail "github.com/wneessen/go-mail"
)

const subject = "New message from contact form at Blog App"

// Message is one contact-form submission.
type Message struct {
	SenderName  string
	SenderEmail string
	Body        string
}

// Mailer delivers a contact message to the configured recipient.
// One attempt per call; failures are reported synchronously.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail over implicit TLS using credentials from configuration.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

// NewSMTPMailer builds a mailer from the process-wide configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		to:       cfg.MailTo,
	}
}

// Send delivers the message. Sender-controlled fields are escaped before being
// embedded in the HTML body.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := gomail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return models.NewMailDeliveryError(err)
	}
	if err := mm.To(m.to); err != nil {
		return models.NewMailDeliveryError(err)
	}
	mm.Subject(subject)
	mm.SetBodyString(gomail.TypeTextHTML, FormatBody(msg))

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.username),
		gomail.WithPassword(m.password),
	)
	if err != nil {
		return models.NewMailDeliveryError(err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		middleware.MailDeliveries.WithLabelValues("failure").Inc()
		return models.NewMailDeliveryError(err)
	}

	middleware.MailDeliveries.WithLabelValues("success").Inc()
	return nil
}

// FormatBody renders the notification body: sender name, address, and message.
func FormatBody(msg Message) string {
	return fmt.Sprintf("%s<br>(%s)<br> says: %s",
		html.EscapeString(msg.SenderName),
		html.EscapeString(msg.SenderEmail),
		html.EscapeString(msg.Body),
	)
}
