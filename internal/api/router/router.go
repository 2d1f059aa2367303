package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"github.com/blckops/agency-site/internal/collabs"
	"github.com/blckops/agency-site/internal/content"
	"github.com/blckops/agency-site/internal/http/httpjson"
	httpmiddleware "github.com/blckops/agency-site/internal/http/middleware"
	"github.com/blckops/agency-site/internal/leads"
	"github.com/blckops/agency-site/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Env            string
	AdminToken     string
	ContentHandler *content.Handler
	CollabsHandler *collabs.Handler
	LeadsHandler   *leads.Handler
	MetricsHandler http.Handler

	CORSAllowedOrigins []string
	LeadLimiter        *httpmiddleware.RateLimiter
	// TrustProxy rewrites RemoteAddr from forwarded headers before rate
	// limiting. Off, every client is keyed on its TCP peer.
	TrustProxy bool

	// Site assets. PublicFS holds the client build and index.html;
	// StaticFS holds optional extra assets. Either may be nil.
	PublicFS afero.Fs
	StaticFS afero.Fs
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	OK  bool   `json:"ok"`
	Env string `json:"env"`
}

// AuthCheckResponse is returned by GET /api/auth/me.
type AuthCheckResponse struct {
	OK bool `json:"ok"`
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	requireAdmin := httpmiddleware.AdminToken(cfg.AdminToken)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, HealthResponse{OK: true, Env: cfg.Env})
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/auth/me", func(w http.ResponseWriter, req *http.Request) {
			httpjson.Write(w, http.StatusOK, AuthCheckResponse{OK: httpmiddleware.TokenMatches(req, cfg.AdminToken)})
		})

		contentHandler := cfg.ContentHandler
		if contentHandler == nil {
			contentHandler = content.NewHandler(nil)
		}
		api.Get("/stats", contentHandler.GetStats)
		api.Get("/services", contentHandler.GetServices)
		api.Get("/process", contentHandler.GetProcess)
		api.Get("/portfolio", contentHandler.GetPortfolio)
		api.Get("/faqs", contentHandler.GetFAQs)

		if cfg.CollabsHandler != nil {
			api.Get("/collabs", cfg.CollabsHandler.ListCollabs)
			api.With(requireAdmin).Post("/collabs", cfg.CollabsHandler.CreateCollab)
		}

		if cfg.LeadsHandler != nil {
			api.With(httpmiddleware.RateLimit(cfg.LeadLimiter)).Post("/lead", cfg.LeadsHandler.SubmitLead)
			api.With(requireAdmin).Get("/leads", cfg.LeadsHandler.ListLeads)
		}

		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			httpjson.Error(w, http.StatusNotFound, "Not Found")
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			httpjson.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		})
	})

	r.NotFound(newSiteHandler(cfg.PublicFS, cfg.StaticFS).ServeHTTP)

	return r
}
