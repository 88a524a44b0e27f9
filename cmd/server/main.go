package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/aurora/internal/api"
	"github.com/Harshitk-cp/aurora/internal/buildconfig"
	"github.com/Harshitk-cp/aurora/internal/config"
	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/fetch"
	"github.com/Harshitk-cp/aurora/internal/llm"
	"github.com/Harshitk-cp/aurora/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	logger.Info("starting", zap.String("build", buildconfig.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := store.Open(ctx, config.StoreConfig(), logger)
	if err != nil {
		logger.Fatal("failed to open memory store", zap.String("backend", config.StoreBackend()), zap.Error(err))
	}
	defer closeRepo()

	llmProvider := config.LLMProvider()
	llmClient, err := llm.NewClient(llmProvider, config.LLMAPIKey(), config.LLMBaseURL())
	if err != nil {
		logger.Fatal("LLM client initialization failed", zap.String("provider", llmProvider), zap.Error(err))
	}
	logger.Info("LLM client initialized", zap.String("provider", llmProvider), zap.String("model", config.DefaultModel()))

	app := api.NewApp(repo, llmClient, fetch.NewHTTPFetcher(config.FetchTimeout()), api.Options{
		Defaults: domain.ChatDefaults{
			Model:       config.DefaultModel(),
			Temperature: config.DefaultTemperature(),
		},
		ExtractionModel:     config.ExtractionModel(),
		ExtractionWorkers:   config.ExtractionWorkers(),
		ExtractionQueueSize: config.ExtractionQueueSize(),
		RateLimitRPS:        config.RateLimitRPS(),
		RateLimitBurst:      config.RateLimitBurst(),
		AllowedOrigins:      config.CORSAllowedOrigins(),
		MaxBodyBytes:        config.MaxRequestBytes(),
	}, logger)

	// Start background services
	app.Learner.Start()
	go app.RateLimiter.RunCleanup(ctx, 10*time.Minute)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	// In-flight extractions finish after the last response is written.
	app.Learner.Stop()

	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
