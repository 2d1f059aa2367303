package leads

import (
	"context"
	"fmt"

	"github.com/blckops/agency-site/internal/docstore"
	"github.com/blckops/agency-site/internal/pagination"
)

// DocumentName is the local fallback file, in submission order.
const DocumentName = "leads.json"

// FileSink appends leads to a JSON document on local disk. It is the
// fallback of last resort and doubles as the admin read-back source.
type FileSink struct {
	doc *docstore.Document[Lead]
}

// NewFileSink opens the leads document on ds.
func NewFileSink(ds *docstore.Store) *FileSink {
	return &FileSink{doc: docstore.Open[Lead](ds, DocumentName)}
}

func (s *FileSink) Name() string { return "local" }

// Deliver appends lead and rewrites the document.
func (s *FileSink) Deliver(ctx context.Context, lead Lead) (bool, error) {
	err := s.doc.Update(ctx, func(items []Lead) ([]Lead, error) {
		return append(items, lead), nil
	})
	if err != nil {
		return false, fmt.Errorf("leads: local append: %w", err)
	}
	return true, nil
}

// List returns one page of locally stored leads, oldest first.
func (s *FileSink) List(ctx context.Context, p pagination.Params) (pagination.Page[Lead], error) {
	items, err := s.doc.Load(ctx)
	if err != nil {
		return pagination.Page[Lead]{}, fmt.Errorf("leads: list: %w", err)
	}
	return pagination.Slice(items, p), nil
}
