package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examtrack/backend/internal/advisor"
	"github.com/examtrack/backend/internal/api"
	"github.com/examtrack/backend/internal/infrastructure/config"
	"github.com/examtrack/backend/internal/service"
	"github.com/examtrack/backend/internal/store"

	_ "github.com/examtrack/backend/docs" // generated swagger docs
)

// @title           ExamTrack API
// @version         1.0
// @description     Personal exam tracker: register contests and mock exams, grade them against the official key, and compare results across exams.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := newLogger(os.Stdout, cfg)

	// ── Dependencies ────────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	examStore := store.NewSQLStore(db, store.Driver(cfg.DBDriver))
	defer examStore.Close()

	var adv advisor.Advisor
	if cfg.AnalysisEnabled {
		adv = advisor.NewLLMAdvisor(cfg.LLMURL, cfg.LLMModel)
	}
	gradingSvc := service.NewGradingService(examStore, adv, logger, cfg.GradingWorkers)
	handler := api.NewHandler(examStore, gradingSvc, logger)

	// ── Routes + middleware ─────────────────────────────────────────
	router := api.NewRouter(handler, logger, api.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: 4 * time.Minute, // analysis retries a slow LLM once
	})

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"db_driver", cfg.DBDriver,
		"analysis", cfg.AnalysisEnabled,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
