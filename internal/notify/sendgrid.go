package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/blckops/agency-site/pkg/logging"
)

const sendGridMailPath = "/v3/mail/send"

// SendGridConfig configures SendGridSender. Host overrides the API origin
// and is only set in tests.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	Host      string
}

// SendGridSender mails alerts through the SendGrid v3 API in one request,
// with every recipient in a single personalization.
type SendGridSender struct {
	client *sendgrid.Client
	from   Address
	logger *logging.Logger
}

// NewSendGridSender returns nil without an API key or from address.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	client := sendgrid.NewSendClient(cfg.APIKey)
	if cfg.Host != "" {
		client.BaseURL = strings.TrimRight(cfg.Host, "/") + sendGridMailPath
	}
	return &SendGridSender{client: client, from: sender(cfg.FromEmail, cfg.FromName), logger: logger}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errNoRecipients
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.from.Name, s.from.Email))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}
	m.AddPersonalizations(p)
	if msg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	// text/plain must precede text/html.
	m.AddContent(mail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("notify: sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		s.logger.Warn("sendgrid rejected lead alert", "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("notify: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

var _ EmailSender = (*SendGridSender)(nil)
