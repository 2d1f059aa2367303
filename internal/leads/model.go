package leads

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Lead represents a contact form submission. It is never modified after
// it has been built.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Budget    string    `json:"budget"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	SourceIP  string    `json:"sourceIP"`
	UserAgent string    `json:"userAgent"`
}

// CreatedAtISO formats CreatedAt as an ISO-8601 UTC timestamp with milliseconds.
func (l Lead) CreatedAtISO() string {
	return l.CreatedAt.UTC().Format(isoMillis)
}

// SubmitLeadRequest represents the request body for POST /api/lead
type SubmitLeadRequest struct {
	Name    Text `json:"name"`
	Email   Text `json:"email"`
	Phone   Text `json:"phone"`
	Budget  Text `json:"budget"`
	Message Text `json:"message"`

	// Provenance, filled from the HTTP request.
	SourceIP  string `json:"-"`
	UserAgent string `json:"-"`
}

// Validate validates the submit lead request
func (r *SubmitLeadRequest) Validate() error {
	if r.Name.Trimmed() == "" || r.Email.Trimmed() == "" {
		return ErrMissingNameOrEmail
	}
	return nil
}

// Text is a form field that also accepts JSON numbers and booleans, which
// some form libraries emit for phone or budget inputs. Falsy values (null,
// false and zero) decode as empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = ""
	case bool:
		*t = ""
		if x {
			*t = "true"
		}
	case float64:
		*t = ""
		if x != 0 {
			*t = Text(strings.TrimSpace(string(data)))
		}
	default:
		return errors.New("leads: field must be a string")
	}
	return nil
}

// Trimmed returns the value without surrounding whitespace.
func (t Text) Trimmed() string {
	return strings.TrimSpace(string(t))
}
