// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is one outbound message. TextBody is the fallback for clients that
// do not render HTML.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. Implementations must be safe for concurrent use.
type Sender interface {
	Send(email Email) error
}

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	cfg SMTPConfig
	log *zap.Logger
}

func NewSMTPSender(cfg SMTPConfig, log *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: log}
}

func (s *SMTPSender) Send(email Email) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildMessage(s.cfg.From, email)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email.To}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	s.log.Info("email sent", zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}

func buildMessage(from string, email Email) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + email.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", email.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		const boundary = "dossierhub-alt"
		b.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n\r\n")
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(email.TextBody + "\r\n")
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(email.HTMLBody + "\r\n")
		b.WriteString("--" + boundary + "--\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(email.TextBody + "\r\n")
	}
	return []byte(b.String())
}
