package content

import (
	"net/http"

	"github.com/blckops/agency-site/internal/http/httpjson"
)

// Handler exposes the content queries as GET endpoints.
type Handler struct {
	provider Provider
}

// NewHandler creates a content handler. A nil provider serves Default().
func NewHandler(provider Provider) *Handler {
	if provider == nil {
		provider = NewStaticStore(Default())
	}
	return &Handler{provider: provider}
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.provider.Stats())
}

// GetServices handles GET /api/services
func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.provider.Services())
}

// GetProcess handles GET /api/process
func (h *Handler) GetProcess(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.provider.Process())
}

// GetPortfolio handles GET /api/portfolio
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.provider.Portfolio())
}

// GetFAQs handles GET /api/faqs
func (h *Handler) GetFAQs(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.provider.FAQs())
}
