package report

import (
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/logger"
)

// Transport delivers a rendered report. Implementations must return a
// non-nil error when delivery is not confirmed; callers treat any
// error as "not sent" and leave routine history untouched.
type Transport interface {
	Send(subject, htmlBody string, recipients []string) error
}

// SMTPTransport sends reports through an SMTP server.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewTransport picks a transport from the config: SMTP when a host is
// configured, otherwise an outbox directory next to the data dir.
func NewTransport(cfg *config.Config) Transport {
	if cfg.SMTP.Host != "" {
		return &SMTPTransport{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
	}
	return &OutboxTransport{Dir: filepath.Join(cfg.DataDir, "outbox")}
}

// Send delivers the message over SMTP.
func (t *SMTPTransport) Send(subject, htmlBody string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}
	from := t.From
	if from == "" {
		from = t.Username
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + strings.Join(recipients, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", t.Host, t.Port)
	var auth smtp.Auth
	if t.Username != "" {
		auth = smtp.PlainAuth("", t.Username, t.Password, t.Host)
	}
	if err := smtp.SendMail(addr, auth, from, recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	logger.Info("Report sent", logger.F("subject", subject), logger.F("recipients", len(recipients)))
	return nil
}

// OutboxTransport writes reports as HTML files instead of mailing
// them. Used when no SMTP server is configured and in tests.
type OutboxTransport struct {
	Dir string
}

// Send writes the report to a timestamped file in the outbox.
func (t *OutboxTransport) Send(subject, htmlBody string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}
	if err := os.MkdirAll(t.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create outbox: %w", err)
	}
	name := time.Now().Format("20060102-150405") + "-" + sanitizeFilename(subject) + ".html"
	path := filepath.Join(t.Dir, name)
	if err := os.WriteFile(path, []byte(htmlBody), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written to outbox", logger.F("path", path))
	return nil
}

func sanitizeFilename(s string) string {
	mapper := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}
	out := strings.Map(mapper, s)
	if out == "" {
		out = "report"
	}
	return out
}
