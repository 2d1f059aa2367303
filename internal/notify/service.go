package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/blckops/agency-site/internal/leads"
	"github.com/blckops/agency-site/pkg/logging"
)

// LeadAlerter emails the studio inbox whenever a lead is stored.
type LeadAlerter struct {
	email      EmailSender
	recipients []string
	logger     *logging.Logger
}

// NewLeadAlerter returns nil when there is no sender or no recipient,
// which leaves the lead pipeline without a notifier.
func NewLeadAlerter(email EmailSender, recipients []string, logger *logging.Logger) *LeadAlerter {
	var to []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if email == nil || len(to) == 0 {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadAlerter{email: email, recipients: to, logger: logger}
}

// NotifyLead sends a single alert addressed to every recipient. Replies go
// straight to the lead.
func (a *LeadAlerter) NotifyLead(ctx context.Context, lead leads.Lead) error {
	subject := fmt.Sprintf("New lead - %s", lead.Name)
	body := fmt.Sprintf(`A new lead came in through the site.

Name: %s
Email: %s
Phone: %s
Budget: %s
Message: %s

Received: %s
Lead ID: %s`, lead.Name, lead.Email, orDash(lead.Phone), orDash(lead.Budget), orDash(lead.Message), lead.CreatedAtISO(), lead.ID)

	msgHTML := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>New lead</h2>
<p><strong>%s</strong> &lt;%s&gt;</p>
<p>Phone: %s<br>Budget: %s</p>
<p>%s</p>
<p style="color:#888;font-size:12px;">%s &middot; %s</p>
</div>`,
		html.EscapeString(lead.Name), html.EscapeString(lead.Email),
		html.EscapeString(orDash(lead.Phone)), html.EscapeString(orDash(lead.Budget)),
		html.EscapeString(truncate(orDash(lead.Message), 2000)),
		lead.CreatedAtISO(), lead.ID)

	err := a.email.Send(ctx, Message{
		To:      a.recipients,
		ReplyTo: lead.Email,
		Subject: subject,
		Text:    body,
		HTML:    msgHTML,
	})
	if err != nil {
		return fmt.Errorf("notify: lead alert %s: %w", lead.ID, err)
	}

	a.logger.Debug("lead alert sent", "lead_id", lead.ID, "recipients", len(a.recipients))
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// truncate keeps at most maxRunes characters.
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return string([]rune(s)[:maxRunes]) + "..."
}

var _ leads.Notifier = (*LeadAlerter)(nil)
