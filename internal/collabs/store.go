package collabs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blckops/agency-site/internal/docstore"
	"github.com/blckops/agency-site/internal/pagination"
)

// DocumentName is the file holding the feed, newest first.
const DocumentName = "collabs.json"

// Repository defines the interface for collab storage
type Repository interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[Collab], error)
	Create(ctx context.Context, req *CreateCollabRequest) (*Collab, error)
}

// Store keeps the feed in a single JSON document. Insertion order is the
// feed order: new items are prepended.
type Store struct {
	doc   *docstore.Document[Collab]
	now   func() time.Time
	newID func() string
}

// NewStore opens the collab document on ds.
func NewStore(ds *docstore.Store) *Store {
	return &Store{
		doc:   docstore.Open[Collab](ds, DocumentName),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return "cb_" + uuid.Must(uuid.NewV7()).String() },
	}
}

// List returns one page of the feed.
func (s *Store) List(ctx context.Context, p pagination.Params) (pagination.Page[Collab], error) {
	items, err := s.doc.Load(ctx)
	if err != nil {
		return pagination.Page[Collab]{}, fmt.Errorf("collabs: list: %w", err)
	}
	return pagination.Slice(items, p), nil
}

// Create validates req, prepends the new collab and rewrites the document.
func (s *Store) Create(ctx context.Context, req *CreateCollabRequest) (*Collab, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := Collab{
		ID:        s.newID(),
		Image:     strings.TrimSpace(req.Image),
		Caption:   strings.TrimSpace(req.Caption),
		Tags:      capTags(req.Tags),
		CreatedAt: s.now(),
	}

	err := s.doc.Update(ctx, func(items []Collab) ([]Collab, error) {
		return append([]Collab{item}, items...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("collabs: create: %w", err)
	}
	return &item, nil
}
