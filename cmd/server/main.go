package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dennisdiepolder/monti/calldash/internal/api"
	"github.com/dennisdiepolder/monti/calldash/internal/config"
	"github.com/dennisdiepolder/monti/calldash/internal/dashboard"
	"github.com/dennisdiepolder/monti/calldash/internal/metrics"
	"github.com/dennisdiepolder/monti/calldash/internal/web"
	"github.com/dennisdiepolder/monti/calldash/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Str("telephony_base_url", cfg.TelephonyBaseURL).
		Int("call_limit", cfg.CallLimit).
		Int("recording_limit", cfg.RecordingLimit).
		Msg("starting calldash server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Dashboard service
	svc, err := dashboard.NewFromConfig(ctx, cfg, m, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create dashboard service")
	}

	r := newRouter(cfg, svc, m)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newRouter mounts the health check, JSON API, HTML page and metrics endpoint
func newRouter(cfg *config.Config, builder api.Builder, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(m.Middleware)

	r.Get("/health", healthHandler)
	r.Route("/api", api.NewDashboardHandler(builder, log.Logger).Routes)
	r.Method(http.MethodGet, "/", web.NewPage(builder, log.Logger))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"calldash"}`)
}
