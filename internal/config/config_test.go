package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/aurora/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "STORE_BACKEND", "LLM_PROVIDER", "DEFAULT_MODEL", "EXTRACTION_MODEL",
		"DEFAULT_TEMPERATURE", "FETCH_TIMEOUT", "EXTRACTION_WORKERS", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_BURST",
		"MAX_REQUEST_BYTES"} {
		t.Setenv(k, "")
	}

	assert.Equal(t, 8080, ServerPort())
	assert.Equal(t, ":8080", ServerAddr())
	assert.Equal(t, store.BackendFile, StoreBackend())
	assert.Equal(t, "openrouter", LLMProvider())
	assert.Equal(t, "google/gemini-2.0-flash-001", DefaultModel())
	assert.Equal(t, DefaultModel(), ExtractionModel())
	assert.InDelta(t, 0.7, DefaultTemperature(), 1e-9)
	assert.Equal(t, 15*time.Second, FetchTimeout())
	assert.Equal(t, 2, ExtractionWorkers())
	assert.Equal(t, 20, RateLimitBurst())
	assert.Equal(t, []string{"*"}, CORSAllowedOrigins())
	assert.Equal(t, int64(50<<20), MaxRequestBytes())
}

func TestOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("DEFAULT_TEMPERATURE", "1.2")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("MAX_REQUEST_BYTES", "4096")

	assert.Equal(t, store.BackendSQLite, StoreBackend())
	assert.Equal(t, store.BackendSQLite, StoreConfig().Backend)
	assert.InDelta(t, 1.2, DefaultTemperature(), 1e-9)
	assert.Equal(t, 3*time.Second, FetchTimeout())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, CORSAllowedOrigins())
	assert.Equal(t, "g-key", LLMAPIKey())
	assert.Equal(t, int64(4096), MaxRequestBytes())
}

func TestDefaultTemperatureOutOfRange(t *testing.T) {
	t.Setenv("DEFAULT_TEMPERATURE", "3")
	assert.InDelta(t, 0.7, DefaultTemperature(), 1e-9)
}

func TestLoad_EnvAndSecret(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("AURORA_TEST_PLAIN=plain\n"), 0o600))
	require.NoError(t, os.WriteFile(envFile+".secret", []byte("AURORA_TEST_SECRET=hidden\n"), 0o600))

	t.Setenv("AURORA_ENV", envFile)
	t.Setenv("AURORA_TEST_PLAIN", "")
	t.Setenv("AURORA_TEST_SECRET", "")
	require.NoError(t, os.Unsetenv("AURORA_TEST_PLAIN"))
	require.NoError(t, os.Unsetenv("AURORA_TEST_SECRET"))

	require.NoError(t, Load())
	assert.Equal(t, "plain", os.Getenv("AURORA_TEST_PLAIN"))
	assert.Equal(t, "hidden", os.Getenv("AURORA_TEST_SECRET"))
}
