package notify

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/env"
)

// DefaultGovEmail receives violation reports when no explicit recipient
// is supplied.
const DefaultGovEmail = "government.billboard@municipal.gov.in"

// DefaultFrom is the sender address used when MAIL_FROM is unset.
const DefaultFrom = "onboarding@resend.dev"

// SendReceipt records a successful notification delivery.
type SendReceipt struct {
	EmailID   string    `json:"emailId"`
	ReportID  string    `json:"reportId"`
	SentTo    string    `json:"sentTo"`
	Timestamp time.Time `json:"timestamp"`
}

// Service renders and sends report notification mail.
type Service struct {
	sender   Sender
	from     string
	govEmail string
}

// NewService creates a notification service using the given sender.
func NewService(sender Sender, from, govEmail string) *Service {
	if from == "" {
		from = DefaultFrom
	}
	if govEmail == "" {
		govEmail = DefaultGovEmail
	}
	return &Service{sender: sender, from: from, govEmail: govEmail}
}

// NewServiceFromEnv wires the service from environment variables.
// RESEND_API_KEY selects the Resend transport; without it the service
// falls back to SMTP_* settings.
func NewServiceFromEnv() *Service {
	var sender Sender
	if key := env.GetEnv("RESEND_API_KEY", ""); key != "" {
		sender = NewResendSender(key)
	} else {
		sender = NewSMTPSenderFromEnv()
		log.Warn("RESEND_API_KEY not set, falling back to SMTP transport")
	}
	return NewService(sender,
		env.GetEnv("MAIL_FROM", DefaultFrom),
		env.GetEnv("GOV_REPORT_EMAIL", DefaultGovEmail),
	)
}

// SendReportEmail renders the notification for one report and delivers
// it to govEmail, or to the configured default authority address when
// govEmail is empty.
func (s *Service) SendReportEmail(reportID string, snap *ReportSnapshot, govEmail string) (*SendReceipt, error) {
	if govEmail == "" {
		govEmail = s.govEmail
	}

	rendered, err := Render(reportID, snap)
	if err != nil {
		return nil, err
	}

	result, err := s.sender.Send(&Email{
		From:    s.from,
		To:      []string{govEmail},
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send notification email: %w", err)
	}

	log.Infof("Report notification sent: report=%s to=%s emailId=%s", reportID, govEmail, result.ID)

	return &SendReceipt{
		EmailID:   result.ID,
		ReportID:  reportID,
		SentTo:    govEmail,
		Timestamp: time.Now().UTC(),
	}, nil
}

// SendRaw delivers an arbitrary prepared email through the configured
// transport. Used by the daily digest.
func (s *Service) SendRaw(to, subject, html, text string) error {
	_, err := s.sender.Send(&Email{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	return err
}
