// main runs the sandbox Students API: a local backend that speaks the
// same REST contract as the production service, for development and
// demos of students-cli.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the SQLite database
//  4. Register the Student routes and /metrics
//  5. Serve until SIGINT/SIGTERM, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/students-client/internal/config"
	"github.com/aanand-mishra/students-client/internal/http/handlers/student"
	"github.com/aanand-mishra/students-client/internal/http/metrics"
	"github.com/aanand-mishra/students-client/internal/logger"
	"github.com/aanand-mishra/students-client/internal/storage/sqlite"
)

func main() {
	// ── 1. Config ─────────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Logger ─────────────────────────────────────────────────────────
	// Handlers log through the package-level slog functions.
	log := logger.Setup(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Storage ────────────────────────────────────────────────────────
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	// ── 4. Routes ─────────────────────────────────────────────────────────
	m := metrics.New("students")
	router := http.NewServeMux()
	student.Register(router, storage)
	router.Handle("GET "+metrics.Path, m.Handler())

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: m.Instrument(router),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 5. Serve ──────────────────────────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// In-flight requests get five seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
