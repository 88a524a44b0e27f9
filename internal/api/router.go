package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/aurora/internal/api/handlers"
	mw "github.com/Harshitk-cp/aurora/internal/api/middleware"
	"github.com/Harshitk-cp/aurora/internal/buildconfig"
	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/fetch"
	"github.com/Harshitk-cp/aurora/internal/llm"
	"github.com/Harshitk-cp/aurora/internal/service"
	"github.com/Harshitk-cp/aurora/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options carries the runtime settings NewApp needs besides its collaborators.
type Options struct {
	Defaults            domain.ChatDefaults
	ExtractionModel     string
	ExtractionWorkers   int
	ExtractionQueueSize int
	RateLimitRPS        float64
	RateLimitBurst      int
	AllowedOrigins      []string
	// MaxBodyBytes caps request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes matches the body limit the web client was built against.
const DefaultMaxBodyBytes = 50 << 20

// Pinger is implemented by repositories backed by a database connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the router and background services for lifecycle management.
type App struct {
	Router      *chi.Mux
	Learner     *service.LearnerService
	RateLimiter *mw.RateLimiter

	repo         domain.MemoryRepository
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(repo domain.MemoryRepository, llmClient domain.LLMClient, fetcher domain.Fetcher, opts Options, logger *zap.Logger) *App {
	// Services
	factSvc := service.NewFactService(repo, llmClient, opts.ExtractionModel, logger)
	sourceSvc := service.NewSourceService(repo, fetcher, logger)
	progressionSvc := service.NewProgressionService(repo, logger)
	composerSvc := service.NewComposerService(repo, progressionSvc, logger)
	learnerSvc := service.NewLearnerService(factSvc, opts.ExtractionWorkers, opts.ExtractionQueueSize, logger)
	chatSvc := service.NewChatService(composerSvc, llmClient, learnerSvc, opts.Defaults, logger)

	// Handlers
	knowledgeHandler := handlers.NewKnowledgeHandler(sourceSvc, logger)
	chatHandler := handlers.NewChatHandler(chatSvc)
	memoryHandler := handlers.NewMemoryHandler(factSvc, progressionSvc, logger)

	r := chi.NewRouter()

	app := &App{
		Router:      r,
		Learner:     learnerSvc,
		RateLimiter: mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		repo:        repo,
		startTime:   time.Now(),
	}

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.CORS(opts.AllowedOrigins))
	r.Use(app.RateLimiter.Middleware)
	r.Use(middleware.RequestSize(maxBody))

	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Post("/ingest", knowledgeHandler.Ingest)
	r.Route("/knowledge", func(r chi.Router) {
		r.Get("/", knowledgeHandler.List)
		r.Post("/verify", knowledgeHandler.Verify)
		r.Post("/delete", knowledgeHandler.Delete)
	})

	r.Post("/chat", chatHandler.Chat)

	r.Route("/memory", func(r chi.Router) {
		r.Get("/facts", memoryHandler.Facts)
		r.Get("/progression", memoryHandler.Progression)
	})

	return app
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if p, ok := app.repo.(Pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": buildconfig.Version(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.MemoryRepository = (*store.FileStore)(nil)
	_ domain.MemoryRepository = (*store.SQLiteStore)(nil)
	_ domain.MemoryRepository = (*store.PostgresStore)(nil)
	_ Pinger                  = (*store.SQLiteStore)(nil)
	_ Pinger                  = (*store.PostgresStore)(nil)
	_ domain.Fetcher          = (*fetch.HTTPFetcher)(nil)
	_ domain.LLMClient        = (*llm.OpenAIClient)(nil)
	_ domain.LLMClient        = (*llm.AnthropicClient)(nil)
	_ domain.LLMClient        = (*llm.GeminiClient)(nil)
	_ domain.LLMClient        = (*llm.MockClient)(nil)
)
