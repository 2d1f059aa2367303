package collabs

import (
	"errors"
	"net/http"

	"github.com/blckops/agency-site/internal/docstore"
	"github.com/blckops/agency-site/internal/http/httpjson"
	"github.com/blckops/agency-site/internal/observability/metrics"
	"github.com/blckops/agency-site/internal/pagination"
	"github.com/blckops/agency-site/pkg/logging"
)

// DefaultPageSize is used when the client omits ?limit.
const DefaultPageSize = 12

// Handler handles HTTP requests for the collab feed
type Handler struct {
	repo    Repository
	logger  *logging.Logger
	metrics *metrics.CollabMetrics
}

// NewHandler creates a new collabs handler
func NewHandler(repo Repository, logger *logging.Logger, m *metrics.CollabMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger, metrics: m}
}

// CreateCollabResponse is returned by POST /api/collabs.
type CreateCollabResponse struct {
	OK   bool    `json:"ok"`
	Item *Collab `json:"item"`
}

// ListCollabs handles GET /api/collabs?page=&limit=
func (h *Handler) ListCollabs(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query(), DefaultPageSize)

	page, err := h.repo.List(r.Context(), params)
	if err != nil {
		if !errors.Is(err, docstore.ErrCorrupt) {
			h.logger.Error("failed to list collabs", "error", err)
			httpjson.Error(w, http.StatusInternalServerError, "")
			return
		}
		// Unreadable feed renders as empty rather than breaking the page.
		h.logger.Warn("collab document unreadable, serving empty feed", "error", err)
		page = pagination.Slice([]Collab{}, params)
	}

	httpjson.Write(w, http.StatusOK, page)
}

// CreateCollab handles POST /api/collabs. The route is admin-gated.
func (h *Handler) CreateCollab(w http.ResponseWriter, r *http.Request) {
	var req CreateCollabRequest
	if err := httpjson.DecodeBody(w, r, &req); err != nil {
		h.metrics.ObserveCreate("invalid")
		httpjson.Error(w, http.StatusBadRequest, httpjson.InvalidBodyMessage)
		return
	}

	item, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrMissingImageOrCaption) {
			h.metrics.ObserveCreate("invalid")
			httpjson.Error(w, http.StatusBadRequest, "Missing image/caption")
			return
		}
		h.metrics.ObserveCreate("failed")
		h.logger.Error("failed to create collab", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "")
		return
	}

	h.metrics.ObserveCreate("created")
	h.logger.Info("collab created", "id", item.ID, "tags", len(item.Tags))
	httpjson.Write(w, http.StatusOK, CreateCollabResponse{OK: true, Item: item})
}
