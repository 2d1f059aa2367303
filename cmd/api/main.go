package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/blckops/agency-site/cmd/mainconfig"
	"github.com/blckops/agency-site/internal/api/router"
	"github.com/blckops/agency-site/internal/app/bootstrap"
	"github.com/blckops/agency-site/internal/collabs"
	appconfig "github.com/blckops/agency-site/internal/config"
	"github.com/blckops/agency-site/internal/content"
	"github.com/blckops/agency-site/internal/docstore"
	httpmiddleware "github.com/blckops/agency-site/internal/http/middleware"
	"github.com/blckops/agency-site/internal/leads"
	"github.com/blckops/agency-site/internal/notify"
	"github.com/blckops/agency-site/internal/observability/metrics"
	"github.com/blckops/agency-site/pkg/logging"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.ForEnv(cfg.Env, cfg.LogLevel)
	logger.Info("starting blckops site API",
		"env", cfg.Env,
		"port", cfg.Port,
	)
	if cfg.InsecureAdminToken() {
		logger.Warn("ADMIN_TOKEN is unset; the development token is guarding admin routes", "env", cfg.Env)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsHandler, leadMetrics, collabMetrics := setupMetrics()

	ds := docstore.NewOS(cfg.DataDir)
	collabStore := collabs.NewStore(ds)
	localLeads := leads.NewFileSink(ds)

	deps := bootstrap.SinkDeps{}
	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
		deps.Postgres = pool
	}
	if redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true); redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		deps.Redis = redisClient
	}

	var sesClient notify.SESAPI
	if cfg.AWSNeeded() {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		clients := mainconfig.NewAWSClients(awsCfg, cfg)
		deps.S3 = clients.S3
		deps.SQS = clients.SQS
		if cfg.SESFromEmail != "" {
			sesClient = clients.SES
		}
	}

	sinks, err := bootstrap.BuildLeadSinks(ctx, cfg, deps, localLeads, logger)
	if err != nil {
		logger.Error("failed to build lead sinks", "error", err)
		os.Exit(1)
	}

	pipelineOpts := []leads.Option{
		leads.WithMetrics(leadMetrics),
		leads.WithSinkTimeout(cfg.LeadSinkTimeout),
	}
	if notifier := bootstrap.BuildLeadNotifier(cfg, sesClient, logger); notifier != nil {
		pipelineOpts = append(pipelineOpts, leads.WithNotifier(notifier))
	}
	pipeline := leads.NewPipeline(sinks, logger, pipelineOpts...)
	logger.Info("lead pipeline ready",
		"sinks", pipeline.SinkNames(),
		"sheets_configured", cfg.SheetsConfigured(),
	)

	leadLimiter := httpmiddleware.NewRateLimiter(cfg.LeadRatePerSec, cfg.LeadRateBurst)
	go leadLimiter.Run(ctx)

	r := router.New(&router.Config{
		Logger:             logger,
		Env:                cfg.Env,
		AdminToken:         cfg.AdminToken,
		ContentHandler:     content.NewHandler(content.NewStaticStore(content.Default())),
		CollabsHandler:     collabs.NewHandler(collabStore, logger, collabMetrics),
		LeadsHandler:       leads.NewHandler(pipeline, localLeads, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LeadLimiter:        leadLimiter,
		TrustProxy:         cfg.TrustProxy,
		PublicFS:           siteFS(cfg.PublicDir),
		StaticFS:           siteFS(cfg.ClientStaticDir),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "data_dir", ds.Dir())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	pipeline.Wait()

	logger.Info("server stopped")
}

func setupMetrics() (http.Handler, *metrics.LeadMetrics, *metrics.CollabMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return handler, metrics.NewLeadMetrics(reg), metrics.NewCollabMetrics(reg)
}

func connectPostgresPool(ctx context.Context, url string, logger *logging.Logger) *pgxpool.Pool {
	if url == "" {
		return nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, url)
	if err != nil {
		logger.Warn("postgres unavailable, skipping postgres lead sink", "error", err)
		return nil
	}
	if err := pool.Ping(connectCtx); err != nil {
		logger.Warn("postgres ping failed, skipping postgres lead sink", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// siteFS roots an asset directory. A missing directory yields nil so the
// router skips it.
func siteFS(dir string) afero.Fs {
	if dir == "" {
		return nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}
	osFs := afero.NewOsFs()
	if ok, _ := afero.DirExists(osFs, abs); !ok {
		return nil
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(osFs, abs))
}
