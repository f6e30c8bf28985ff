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

	"energyaudit/internal/audit"
	"energyaudit/internal/config"
	"energyaudit/internal/extractor"
	"energyaudit/internal/metrics"
	"energyaudit/internal/server"
	"energyaudit/internal/summarizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return err
	}
	level.Set(cfg.LogLevel)

	s, err := summarizer.NewGeminiSummarizer(summarizer.GeminiConfig{
		APIKey:        cfg.GeminiAPIKey,
		Model:         cfg.GeminiModel,
		BaseURL:       cfg.GeminiBaseURL,
		MaxInputChars: cfg.SummaryMaxChars,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to create Gemini summarizer",
			"error", err,
			"model", cfg.GeminiModel)

		return err
	}
	log.InfoContext(ctx, "Gemini summarizer is initialized",
		"model", cfg.GeminiModel,
		"baseURL", cfg.GeminiBaseURL,
		"maxInputChars", cfg.SummaryMaxChars)

	m := metrics.New()
	analyzer := audit.NewAnalyzer(s, m, log)
	handler := server.NewHandler(extractor.New(), analyzer, m, log, cfg.MaxUploadBytes)
	srv := server.NewHTTPServer(cfg.HTTPAddr, server.NewRouter(handler, m, log))

	errCh := make(chan error, 1)
	go func() {
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
		close(errCh)
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", cfg.HTTPAddr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case err = <-errCh:
		log.ErrorContext(ctx, "Server is stopped unexpectedly",
			"error", err,
			"addr", cfg.HTTPAddr)

		return err
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down server",
			"error", err,
			"uptimeSeconds", time.Since(start).Seconds())

		return err
	}

	log.InfoContext(shutdownCtx, "Server is stopped",
		"uptimeSeconds", time.Since(start).Seconds())

	return nil
}
