package smtp

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/PremPrakashCodes/inboxpilot/internal/config"
)

// Mailer sends HTML email. OTP and API-key delivery both go through here;
// a send failure on those paths fails the whole operation.
type Mailer interface {
	Send(from string, to []string, subject, html string) error
}

type mailer struct {
	host     string
	port     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) Send(from string, to []string, subject, html string) error {
	headers := []string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + html
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, envelopeAddr(from), to, []byte(msg))
}

// envelopeAddr strips a display name ("InboxPilot <x@y>" -> "x@y") for the
// SMTP MAIL FROM command.
func envelopeAddr(from string) string {
	if i := strings.IndexByte(from, '<'); i >= 0 {
		if j := strings.IndexByte(from[i:], '>'); j > 0 {
			return from[i+1 : i+j]
		}
	}
	return from
}
