package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/medic-api/config"
	"github.com/giygas/medic-api/data"
	"github.com/giygas/medic-api/handlers"
	"github.com/giygas/medic-api/health"
	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/lookup"
	"github.com/giygas/medic-api/scheduler"
	"github.com/giygas/medic-api/server"
	"github.com/giygas/medic-api/upstream"
	"github.com/giygas/medic-api/validation"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	loggingService := logging.InitLogger(logging.Options{
		Dir:            cfg.LogDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer loggingService.Close()

	if err := run(cfg); err != nil {
		logging.Error("Server stopped with error", "error", err)
		loggingService.Close()
		os.Exit(1)
	}
}

// app holds the wired services of one process
type app struct {
	store     *data.RecordStore
	scheduler *scheduler.Scheduler
	server    *server.Server
}

// newApp opens the store and wires clients, services and the HTTP server
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	store, err := data.NewRecordStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	fda := upstream.NewFDAClient(cfg.FDABaseURL, cfg.UpstreamTimeout)
	rxnav := upstream.NewRxNavClient(cfg.RxNavBaseURL, cfg.UpstreamTimeout)
	gemini, err := upstream.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint, cfg.UpstreamTimeout)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if !gemini.Enabled() {
		logging.Warn("GEMINI_API_KEY is not set, /ai will not be able to answer")
	}

	httpHandler := handlers.NewHTTPHandler(
		handlers.Services{
			Lookup:    lookup.NewOrchestrator(store, fda, rxnav),
			Searcher:  lookup.NewSearcher(fda, rxnav, cfg.SearchCacheTTL),
			Assistant: lookup.NewAssistant(store, gemini),
		},
		validation.NewInputValidator(),
		health.NewHealthChecker(store, gemini.Enabled()),
		cfg.SearchMaxLimit,
	)

	rateLimiter := server.NewRateLimiter()

	return &app{
		store:     store,
		scheduler: scheduler.NewScheduler(store, rateLimiter, cfg.StatsInterval),
		server:    server.NewServer(cfg, httpHandler, rateLimiter),
	}, nil
}

// close releases the store
func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logging.Error("Failed to close record store", "error", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer a.scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return a.server.Shutdown(shutdownCtx)
}
