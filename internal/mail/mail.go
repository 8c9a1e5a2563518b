// Package mail delivers outbound notification email. Delivery is a single
// synchronous call with no retry; callers decide what a failure means.
package mail

import (
	"context"
	"io"
	"log"

	gomail "github.com/wneessen/go-mail"
)

// Mailer sends one message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPConfig carries the settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type smtpMailer struct {
	cfg    SMTPConfig
	logger *log.Logger
}

// NewSMTP returns a Mailer that delivers through the configured SMTP host.
func NewSMTP(cfg SMTPConfig, logger *log.Logger) Mailer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &smtpMailer{cfg: cfg, logger: logger}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.User),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Printf("mail: send to=%s failed: %v", to, err)
		return err
	}
	m.logger.Printf("mail: sent to=%s subject=%q", to, subject)
	return nil
}

type logMailer struct {
	logger *log.Logger
}

// NewLog returns a Mailer that only logs messages. Used when SMTP is not
// configured so moderation still works in development.
func NewLog(logger *log.Logger) Mailer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Printf("mail (log only): to=%s subject=%q body=%q", to, subject, body)
	return nil
}
