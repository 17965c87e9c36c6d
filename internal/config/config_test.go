package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, 600, cfg.RateLimit)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10000, cfg.CacheSize)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 500, cfg.MaxBatchSize)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Empty(t, cfg.ClassifierRules)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "idcheck-mcp-server", cfg.Tracing.ServiceName)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"IDCHECK_TRANSPORT":         "http",
		"IDCHECK_HTTP_ADDR":         ":9090",
		"IDCHECK_RATE_LIMIT":        "0",
		"IDCHECK_LOG_LEVEL":         "debug",
		"IDCHECK_CACHE_SIZE":        "0",
		"IDCHECK_CACHE_TTL":         "90s",
		"IDCHECK_MAX_BATCH":         "50",
		"IDCHECK_BATCH_CONCURRENCY": "2",
		"IDCHECK_CLASSIFIER_RULES":  "/etc/idcheck/rules.yaml",
		"OTEL_ENABLED":              "true",
	})
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 0, cfg.CacheSize)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.MaxBatchSize)
	assert.Equal(t, 2, cfg.BatchConcurrency)
	assert.Equal(t, "/etc/idcheck/rules.yaml", cfg.ClassifierRules)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestFromMap_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"unknown transport", map[string]string{"IDCHECK_TRANSPORT": "grpc"}},
		{"malformed duration", map[string]string{"IDCHECK_CACHE_TTL": "soon"}},
		{"malformed level", map[string]string{"IDCHECK_LOG_LEVEL": "loud"}},
		{"negative cache", map[string]string{"IDCHECK_CACHE_SIZE": "-1"}},
		{"negative rate limit", map[string]string{"IDCHECK_RATE_LIMIT": "-5"}},
		{"zero batch", map[string]string{"IDCHECK_MAX_BATCH": "0"}},
		{"zero concurrency", map[string]string{"IDCHECK_BATCH_CONCURRENCY": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.vars)
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	// t.Setenv restores the original state; the variable must then be truly unset for
	// godotenv to fill it.
	t.Setenv("IDCHECK_MAX_BATCH", "")
	require.NoError(t, os.Unsetenv("IDCHECK_MAX_BATCH"))
	// Values set in the environment win over the file.
	t.Setenv("IDCHECK_BATCH_CONCURRENCY", "3")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "IDCHECK_MAX_BATCH=42\nIDCHECK_BATCH_CONCURRENCY=16\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxBatchSize)
	assert.Equal(t, 3, cfg.BatchConcurrency)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLogger(t *testing.T) {
	cfg, err := FromMap(map[string]string{"IDCHECK_LOG_LEVEL": "warn"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "scheme", "IBAN")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "scheme=IBAN")
}
