package leads

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/blckops/agency-site/internal/http/httpjson"
	"github.com/blckops/agency-site/internal/pagination"
	"github.com/blckops/agency-site/pkg/logging"
)

// DefaultPageSize is used by GET /api/leads when ?limit is omitted.
const DefaultPageSize = 20

// Submitter accepts a validated lead submission.
type Submitter interface {
	Submit(ctx context.Context, req *SubmitLeadRequest) (*Receipt, error)
}

// Lister reads back stored leads.
type Lister interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[Lead], error)
}

// Handler handles HTTP requests for leads
type Handler struct {
	submitter Submitter
	lister    Lister
	logger    *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(submitter Submitter, lister Lister, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{submitter: submitter, lister: lister, logger: logger}
}

// SubmitLeadResponse is deliberately opaque: it never reveals which sink
// stored the lead.
type SubmitLeadResponse struct {
	OK bool `json:"ok"`
}

// SubmitLead handles POST /api/lead
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeadRequest
	if err := httpjson.DecodeBody(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, httpjson.InvalidBodyMessage)
		return
	}
	req.SourceIP = sourceIP(r)
	req.UserAgent = r.UserAgent()

	if _, err := h.submitter.Submit(r.Context(), &req); err != nil {
		if errors.Is(err, ErrMissingNameOrEmail) {
			httpjson.Error(w, http.StatusBadRequest, "Missing name/email")
			return
		}
		h.logger.Error("failed to store lead", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "")
		return
	}

	httpjson.Write(w, http.StatusOK, SubmitLeadResponse{OK: true})
}

// ListLeads handles GET /api/leads?page=&limit=. The route is admin-gated.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query(), DefaultPageSize)

	page, err := h.lister.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "")
		return
	}
	httpjson.Write(w, http.StatusOK, page)
}

// sourceIP prefers the raw X-Forwarded-For header, as set by the edge proxy,
// and falls back to the peer address.
func sourceIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		return fwd
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
