package collabs

import (
	"encoding/json"
	"strings"
	"time"
)

// MaxTags is how many tags a collab keeps; extra tags are dropped.
const MaxTags = 12

// Collab is one entry of the collaboration feed.
type Collab struct {
	ID        string    `json:"id"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCollabRequest is the POST /api/collabs body.
type CreateCollabRequest struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Tags    Tags   `json:"tags,omitempty"`
}

// Validate validates the create collab request
func (r *CreateCollabRequest) Validate() error {
	if strings.TrimSpace(r.Image) == "" || strings.TrimSpace(r.Caption) == "" {
		return ErrMissingImageOrCaption
	}
	return nil
}

// Tags decodes leniently: a JSON array keeps its entries (non-string
// scalars are kept as their JSON text), anything else decodes as no tags.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = nil
		return nil
	}
	out := make(Tags, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		out = append(out, string(item))
	}
	*t = out
	return nil
}

// capTags returns at most MaxTags tags, never nil.
func capTags(tags []string) []string {
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
