package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Harshitk-cp/aurora/internal/store"
	"github.com/joho/godotenv"
)

// Load reads the .env file specified by AURORA_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("AURORA_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// StoreBackend selects where the memory state lives.
// Valid values: file, sqlite, postgres. Defaults to file.
func StoreBackend() string {
	b := strings.ToLower(os.Getenv("STORE_BACKEND"))
	if b == "" {
		return "file"
	}
	return b
}

func MemoryFile() string {
	return getOr("MEMORY_FILE", "memory.json")
}

func SQLitePath() string {
	return getOr("SQLITE_PATH", "data/aurora.db")
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// StoreConfig gathers the storage settings for store.Open.
func StoreConfig() store.OpenConfig {
	return store.OpenConfig{
		Backend:     StoreBackend(),
		FilePath:    MemoryFile(),
		SQLitePath:  SQLitePath(),
		DatabaseURL: DatabaseURL(),
	}
}

// LLMProvider returns the configured LLM provider.
// Defaults to "openrouter" if not set.
// Valid values: openrouter, openai, gemini, anthropic, mock
func LLMProvider() string {
	return getOr("LLM_PROVIDER", "openrouter")
}

// LLMAPIKey returns the API key for the configured LLM provider.
func LLMAPIKey() string {
	switch LLMProvider() {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "mock":
		return ""
	default:
		return os.Getenv("OPENROUTER_API_KEY")
	}
}

// LLMBaseURL overrides the endpoint of OpenAI-compatible providers.
func LLMBaseURL() string {
	return os.Getenv("LLM_BASE_URL")
}

func DefaultModel() string {
	return getOr("DEFAULT_MODEL", "google/gemini-2.0-flash-001")
}

// ExtractionModel is used for background fact extraction.
// Defaults to DefaultModel.
func ExtractionModel() string {
	return getOr("EXTRACTION_MODEL", DefaultModel())
}

// DefaultTemperature defaults to 0.7 and must lie in [0, 2].
func DefaultTemperature() float64 {
	t, err := strconv.ParseFloat(os.Getenv("DEFAULT_TEMPERATURE"), 64)
	if err != nil || t < 0 || t > 2 {
		return 0.7
	}
	return t
}

// FetchTimeout bounds source ingestion requests. Defaults to 15s.
func FetchTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("FETCH_TIMEOUT"))
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

func ExtractionWorkers() int {
	return positiveInt("EXTRACTION_WORKERS", 2)
}

func ExtractionQueueSize() int {
	return positiveInt("EXTRACTION_QUEUE_SIZE", 64)
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	return positiveInt("RATE_LIMIT_BURST", 20)
}

// MaxRequestBytes caps JSON request bodies. Chat history repeats base64
// image data URLs, so the default is 50 MiB.
func MaxRequestBytes() int64 {
	return int64(positiveInt("MAX_REQUEST_BYTES", 50<<20))
}

// CORSAllowedOrigins is a comma separated list. Defaults to "*".
func CORSAllowedOrigins() []string {
	raw := getOr("CORS_ALLOWED_ORIGINS", "*")
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	return getOr("LOG_LEVEL", "info")
}

func getOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func positiveInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
