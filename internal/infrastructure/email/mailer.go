// Package email delivers the notification messages over SMTP. Bodies arrive
// as markdown from the application layer and are rendered to a simple HTML
// alternative here; the raw markdown doubles as the plain-text part.
package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"gopkg.in/gomail.v2"

	"zelador/internal/application/notification"
	"zelador/internal/shared/config"
	"zelador/internal/shared/logger"
)

type SMTPMailer struct {
	cfg      *config.EmailConfig
	dialer   *gomail.Dialer
	markdown goldmark.Markdown
	logger   logger.Interface
}

func NewSMTPMailer(cfg *config.EmailConfig, log logger.Interface) *SMTPMailer {
	return &SMTPMailer{
		cfg:      cfg,
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		markdown: goldmark.New(),
		logger:   log.Named("smtp"),
	}
}

// Send renders and delivers one message. gomail's dialer does not take a
// context; cancellation is checked before the blocking send.
func (m *SMTPMailer) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var html bytes.Buffer
	if err := m.markdown.Convert([]byte(msg.Markdown), &html); err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	message.SetHeader("To", msg.To...)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/plain", msg.Markdown)
	message.AddAlternative("text/html", html.String())

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debugw("email sent", "subject", msg.Subject, "recipients", len(msg.To))
	return nil
}
