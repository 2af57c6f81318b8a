package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rehearseiq/feedback-engine/internal/api"
	"github.com/rehearseiq/feedback-engine/internal/config"
	"github.com/rehearseiq/feedback-engine/internal/history"
	"github.com/rehearseiq/feedback-engine/internal/lexicon"
	"github.com/rehearseiq/feedback-engine/internal/observability"
	"github.com/rehearseiq/feedback-engine/internal/scoring"
	"github.com/rehearseiq/feedback-engine/internal/stream"
	"github.com/rehearseiq/feedback-engine/internal/stt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("history_db", cfg.HistoryDBPath).
		Str("log_level", cfg.LogLevel).
		Bool("transcription", cfg.TranscriptionEnabled()).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Feedback Engine starting")

	// Open the session history store
	store, err := history.Open(cfg.HistoryDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open history store")
	}
	defer store.Close()

	// Load the lexicon, with optional per-category overrides
	phrases, err := lexicon.LoadPhrases(cfg.LexiconPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.LexiconPath).Msg("Failed to load lexicon")
	}

	// Build the scoring pipeline
	engine := scoring.NewEngine(phrases, float64(cfg.SampleIntervalMs)/1000.0)
	service := api.NewService(cfg, engine, store)

	// Speech-to-text is optional; without credentials the transcribe
	// endpoint reports unavailable and scoring runs audio-only
	var transcriber stt.Transcriber
	if cfg.TranscriptionEnabled() {
		transcriber = stt.NewDeepgramClient(cfg)
	}

	mux := http.NewServeMux()

	// JSON scoring endpoints
	handler := api.NewHandler(cfg, service, transcriber)
	handler.Register(mux)

	// Live level-sample ingest
	mux.HandleFunc("/streams/levels", stream.HandleLevelsWS(cfg, service))

	// Health check endpoint
	mux.HandleFunc("/health", observability.HealthCheckHandler())

	// Readiness: the store must answer, transcription only when configured
	checks := map[string]observability.HealthCheckFunc{
		"history": func(ctx context.Context) (bool, error) {
			if err := store.Ping(ctx); err != nil {
				return false, err
			}
			return true, nil
		},
	}
	if cfg.TranscriptionEnabled() {
		checks["transcription"] = func(ctx context.Context) (bool, error) {
			if transcriber == nil {
				return false, fmt.Errorf("transcription client not initialized")
			}
			return true, nil
		}
	}
	mux.HandleFunc("/ready", observability.ReadinessHandler(checks))

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("endpoint", fmt.Sprintf("ws://localhost:%s/streams/levels", cfg.Port)).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
