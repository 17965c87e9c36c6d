// Package config loads the server configuration from IDCHECK_* environment variables,
// optionally seeded from a .env file. The resulting Config is passed explicitly to
// constructors; nothing reads the environment after startup.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/olgasafonova/idcheck-mcp-server/tracing"
)

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all server settings.
type Config struct {
	Transport string     `env:"IDCHECK_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string     `env:"IDCHECK_HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	LogLevel  slog.Level `env:"IDCHECK_LOG_LEVEL" envDefault:"INFO"`

	// Requests per minute per client IP on the http transport; 0 disables limiting.
	RateLimit int `env:"IDCHECK_RATE_LIMIT" envDefault:"600"`

	CacheSize int           `env:"IDCHECK_CACHE_SIZE" envDefault:"10000"`
	CacheTTL  time.Duration `env:"IDCHECK_CACHE_TTL" envDefault:"1h"`

	MaxBatchSize     int `env:"IDCHECK_MAX_BATCH" envDefault:"500"`
	BatchConcurrency int `env:"IDCHECK_BATCH_CONCURRENCY" envDefault:"8"`

	// Empty means the built-in rule table.
	ClassifierRules string `env:"IDCHECK_CLASSIFIER_RULES"`

	ShutdownTimeout time.Duration `env:"IDCHECK_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Tracing tracing.Config
}

// Load reads the given .env files (".env" when none are named) and then parses the
// process environment. Missing .env files are ignored; variables already set in the
// environment take precedence over .env values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap parses configuration from vars instead of the process environment.
func FromMap(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.HTTPAddr == "" {
			return fmt.Errorf("IDCHECK_HTTP_ADDR is required for the http transport")
		}
	default:
		return fmt.Errorf("IDCHECK_TRANSPORT must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("IDCHECK_RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("IDCHECK_CACHE_SIZE must not be negative, got %d", c.CacheSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("IDCHECK_CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("IDCHECK_MAX_BATCH must be positive, got %d", c.MaxBatchSize)
	}
	if c.BatchConcurrency <= 0 {
		return fmt.Errorf("IDCHECK_BATCH_CONCURRENCY must be positive, got %d", c.BatchConcurrency)
	}
	return nil
}

// Logger builds the server logger. Logs go to stderr because stdout carries the MCP
// stdio transport.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
