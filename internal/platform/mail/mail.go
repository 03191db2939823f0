// Package mail delivers registration emails. SMTPSender talks to a real
// relay; LogSender writes messages to the structured log for local runs.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/bloggers-api/internal/config"
)

// Message is the payload accepted by every Sender.
type Message struct {
	From     string
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

func (m Message) normalized() Message {
	cp := m
	cp.From = strings.TrimSpace(cp.From)
	cp.Subject = strings.TrimSpace(cp.Subject)
	to := make([]string, 0, len(m.To))
	for _, addr := range m.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	cp.To = to
	return cp
}

func (m Message) validate() error {
	if len(m.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	if m.From == "" {
		return errors.New("sender is required")
	}
	if m.Subject == "" {
		return errors.New("subject is required")
	}
	if strings.TrimSpace(m.TextBody) == "" && strings.TrimSpace(m.HTMLBody) == "" {
		return errors.New("body is required (text or html)")
	}
	return nil
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender returns the Sender selected by cfg.Driver.
func NewSender(cfg config.MailConfig, logger *slog.Logger) (Sender, error) {
	switch cfg.Driver {
	case config.MailDriverSMTP:
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	case config.MailDriverLog, "":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unsupported mail driver %q", cfg.Driver)
	}
}

// Mailer composes registration emails and hands them to a Sender.
type Mailer struct {
	sender          Sender
	from            string
	confirmationURL string
}

// NewMailer creates a Mailer. confirmationURL is the page that receives the
// code as its "code" query parameter.
func NewMailer(sender Sender, from, confirmationURL string) *Mailer {
	return &Mailer{sender: sender, from: from, confirmationURL: confirmationURL}
}

// SendConfirmation emails the registration confirmation link to one address.
func (m *Mailer) SendConfirmation(ctx context.Context, to, code string) error {
	link, err := ConfirmationLink(m.confirmationURL, code)
	if err != nil {
		return err
	}

	msg := Message{
		From:     m.from,
		To:       []string{to},
		Subject:  "Finish registration",
		TextBody: "Thank you for your registration. To finish it please follow the link: " + link,
		HTMLBody: `<h1>Thank you for your registration</h1>` +
			`<p>To finish registration please follow the link below:` +
			`<a href="` + link + `">complete registration</a></p>`,
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to, err)
	}
	return nil
}

// ConfirmationLink appends code to base as the "code" query parameter,
// preserving any query the base already carries.
func ConfirmationLink(base, code string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid confirmation url: %w", err)
	}
	q := u.Query()
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
