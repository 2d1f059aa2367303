package notify

import (
	"context"
	"errors"
	netmail "net/mail"

	"github.com/blckops/agency-site/pkg/logging"
)

// DefaultFromName is the sender display name when none is configured.
const DefaultFromName = "BLCK OPS"

var errNoRecipients = errors.New("notify: message has no recipients")

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

// String renders the address in RFC 5322 form, quoting the name when needed.
func (a Address) String() string {
	return (&netmail.Address{Name: a.Name, Address: a.Email}).String()
}

func sender(email, name string) Address {
	if name == "" {
		name = DefaultFromName
	}
	return Address{Name: name, Email: email}
}

// Message is a single alert delivered to every address in To.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// EmailSender delivers a Message through one transport.
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes alerts to the log instead of mailing them. Development
// uses it when no transport is configured.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errNoRecipients
	}
	s.logger.Info("lead alert (not mailed)", "to", msg.To, "subject", msg.Subject, "reply_to", msg.ReplyTo)
	return nil
}
