package notify

import (
	"fmt"
	"net/smtp"

	"github.com/gofiber/fiber/v2/log"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/env"
)

// SMTPSender delivers email through a plain SMTP relay. Used as the
// fallback transport for deployments without a Resend account.
type SMTPSender struct {
	Host     string
	Port     string
	Username string
	Password string
}

// NewSMTPSenderFromEnv builds an SMTP sender from SMTP_* environment
// variables.
func NewSMTPSenderFromEnv() *SMTPSender {
	return &SMTPSender{
		Host:     env.GetEnv("SMTP_HOST", ""),
		Port:     env.GetEnv("SMTP_PORT", "587"),
		Username: env.GetEnv("SMTP_USERNAME", ""),
		Password: env.GetEnv("SMTP_PASSWORD", ""),
	}
}

// Send relays the email over SMTP. The relay does not assign message
// ids, so the result carries an empty one.
func (s *SMTPSender) Send(email *Email) (*Result, error) {
	if s.Host == "" {
		return nil, fmt.Errorf("email service is not configured: missing SMTP host")
	}

	var auth smtp.Auth
	if s.Username != "" && s.Password != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", email.From, email.To[0], email.Subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			email.HTML,
	)

	if err := smtp.SendMail(addr, auth, email.From, email.To, msg); err != nil {
		log.Errorf("SMTP send error: %v", err)
		return nil, err
	}
	log.Infof("Email sent to %s via %s", email.To[0], addr)
	return &Result{}, nil
}
