// Package content serves the site's static copy: stats, services, process
// steps, portfolio cards and FAQs.
package content

// Stats are the proof numbers shown under the hero.
type Stats struct {
	Clients      int `json:"clients"`
	Projects     int `json:"projects"`
	SupportHours int `json:"supportHours"`
	Satisfaction int `json:"satisfaction"`
}

type Service struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type ProcessStep struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type PortfolioItem struct {
	Title string `json:"title"`
	Cat   string `json:"cat"`
	URL   string `json:"url"`
	Img   string `json:"img"`
}

type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Snapshot is the full set of static content.
type Snapshot struct {
	Stats     Stats
	Services  []Service
	Process   []ProcessStep
	Portfolio []PortfolioItem
	FAQs      []FAQ
}

// Provider answers the read-only content queries.
type Provider interface {
	Stats() Stats
	Services() []Service
	Process() []ProcessStep
	Portfolio() []PortfolioItem
	FAQs() []FAQ
}

// StaticStore serves a Snapshot held in memory for the process lifetime.
// Callers get copies, so the snapshot cannot be mutated through it.
type StaticStore struct {
	snap Snapshot
}

// NewStaticStore wraps snap. Use Default() for the built-in copy.
func NewStaticStore(snap Snapshot) *StaticStore {
	return &StaticStore{snap: snap}
}

func (s *StaticStore) Stats() Stats               { return s.snap.Stats }
func (s *StaticStore) Services() []Service        { return cloneOrEmpty(s.snap.Services) }
func (s *StaticStore) Process() []ProcessStep     { return cloneOrEmpty(s.snap.Process) }
func (s *StaticStore) Portfolio() []PortfolioItem { return cloneOrEmpty(s.snap.Portfolio) }
func (s *StaticStore) FAQs() []FAQ                { return cloneOrEmpty(s.snap.FAQs) }

func cloneOrEmpty[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
