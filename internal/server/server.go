package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
	httpserver "github.com/preston-bernstein/game-catalog-service/internal/http"
	"github.com/preston-bernstein/game-catalog-service/internal/http/handlers"
	"github.com/preston-bernstein/game-catalog-service/internal/http/middleware"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
	"github.com/preston-bernstein/game-catalog-service/internal/poller"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	catalog       *Catalog
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, credential store and poller wiring.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	cat, err := BuildCatalog(ctx, cfg, logger, recorder)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}
	return newServerWithCatalog(cfg, logger, cat, recorder, metricsSrv, metricsShutdown), nil
}

func newServerWithCatalog(cfg config.Config, logger *slog.Logger, cat *Catalog, recorder *metrics.Recorder, metricsSrv httpServer, metricsShutdown func(context.Context) error) *Server {
	plr := poller.New(cat.Service, logger, recorder, cfg.RefreshInterval)
	httpSrv := buildHTTPServer(cfg, cat, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		catalog:       cat,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, cat *Catalog, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		catalog:    cat,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, cat *Catalog, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(cat.Service, logger, statusFn)
	var admin *handlers.AdminHandler
	// Admin routes are only mounted when a token is configured.
	if cfg.AdminToken != "" {
		var tokens handlers.TokenResetter
		if cat.Tokens != nil {
			tokens = cat.Tokens
		}
		admin = handlers.NewAdminHandler(cat.Service, tokens, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, middleware.Compress(router))

	return newNetHTTPServer(listenAddr(cfg.Port), wrapped, apiTimeouts)
}

// Run starts the servers and the poller, blocks until ctx is done and then
// shuts everything down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

// startServer launches the API listener. A listen failure cancels the run.
func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

// startMetrics launches the scrape listener. Its failure is logged only.
func (s *Server) startMetrics() {
	if s.metricsServer != nil {
		launchServer("metrics", s.metricsServer, s.logger, nil)
	}
}

type shutdownStep struct {
	name string
	fn   func(context.Context) error
}

// shutdownSteps lists components in stop order: inbound traffic first, then
// background refresh, then telemetry, then storage.
func (s *Server) shutdownSteps() []shutdownStep {
	steps := []shutdownStep{
		{"http server", s.httpServer.Shutdown},
		{"poller", s.poller.Stop},
	}
	if s.metricsServer != nil {
		steps = append(steps, shutdownStep{"metrics server", s.metricsServer.Shutdown})
	}
	if s.metricsStop != nil {
		steps = append(steps, shutdownStep{"metrics exporter", s.metricsStop})
	}
	return append(steps, shutdownStep{"credential store", func(context.Context) error {
		return s.catalog.Close()
	}})
}

// gracefulShutdown runs every step even when an earlier one fails or the
// deadline passes.
func (s *Server) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, step := range s.shutdownSteps() {
		if err := step.fn(ctx); err != nil {
			logging.Warn(s.logger, "shutdown step failed",
				slog.String("component", step.name),
				slog.Any(logging.FieldError, err),
			)
		}
	}
	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:        cfg.Metrics.Enabled,
		Port:           cfg.Metrics.Port,
		ServiceName:    cfg.Metrics.ServiceName,
		ServiceVersion: cfg.Metrics.ServiceVersion,
		OtlpEndpoint:   cfg.Metrics.OtlpEndpoint,
		OtlpInsecure:   cfg.Metrics.OtlpInsecure,
		ExportInterval: cfg.Metrics.ExportInterval,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any(logging.FieldError, err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(listenAddr(recCfg.Port), handler, metricsTimeouts)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	logging.Info(logger, name+" server starting", slog.String("addr", srv.Addr()))
	go func() {
		err := srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		logging.Warn(logger, name+" server failed", slog.Any(logging.FieldError, err))
		if onError != nil {
			onError(err)
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
