// idcheck MCP Server - A Model Context Protocol server for German and EU tax and
// business identifiers. Validates VAT IDs, tax IDs, IBANs, BICs, EORI numbers and
// Nordic organisation numbers offline and classifies inbox messages.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/idcheck-mcp-server/internal/checker"
	"github.com/olgasafonova/idcheck-mcp-server/internal/classify"
	"github.com/olgasafonova/idcheck-mcp-server/internal/config"
	"github.com/olgasafonova/idcheck-mcp-server/internal/httpapi"
	"github.com/olgasafonova/idcheck-mcp-server/tools"
	"github.com/olgasafonova/idcheck-mcp-server/tracing"
)

const (
	ServerName    = "idcheck-mcp-server"
	ServerVersion = "0.3.0"
)

const serverInstructions = `idcheck validates German and EU tax and business identifiers offline.

Available tools:
- validate_identifier: Check one identifier (format, length, characters, checksum)
- validate_identifiers_batch: Check up to 500 identifiers in one call
- normalize_identifier: Canonical and display form of an identifier
- detect_scheme: Guess which scheme an identifier belongs to
- list_schemes: Supported schemes with examples
- classify_message: Sort an e-mail into an inbox category

Supported schemes: DE_VAT, AT_VAT, DE_TAX_ID, IBAN, BIC, EORI, NO_ORG, DK_CVR,
FI_BUSINESS_ID, SE_ORG. A valid result means well-formed with a correct check digit,
not that the identifier is registered.`

// recoverPanic logs a panic that escaped a goroutine and turns it into an error.
func recoverPanic(logger *slog.Logger, operation string, errp *error) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s: panic: %v", operation, r)
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ServerName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr; stdout is used for the MCP stdio protocol.
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	ck, err := newChecker(cfg, logger)
	if err != nil {
		return err
	}
	defer ck.Close()

	server := newMCPServer(ck, logger)

	logger.Info("Starting idcheck MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"transport", cfg.Transport,
		"cache_size", cfg.CacheSize,
		"max_batch", cfg.MaxBatchSize,
	)

	if cfg.Transport == config.TransportHTTP {
		return serveHTTP(ctx, cfg, ck, server, logger)
	}
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newChecker(cfg config.Config, logger *slog.Logger) (*checker.Checker, error) {
	cl, err := classify.Load(cfg.ClassifierRules)
	if err != nil {
		return nil, fmt.Errorf("failed to load classifier rules: %w", err)
	}
	return checker.New(
		checker.WithLogger(logger),
		checker.WithCache(cfg.CacheSize, cfg.CacheTTL),
		checker.WithMaxBatchSize(cfg.MaxBatchSize),
		checker.WithConcurrency(cfg.BatchConcurrency),
		checker.WithClassifier(cl),
	), nil
}

func newMCPServer(ck *checker.Checker, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})
	tools.NewHandlerRegistry(ck, logger).RegisterAll(server)
	return server
}

// newHTTPHandler assembles the HTTP API with the MCP streamable transport mounted at
// /mcp. The returned func releases the rate limiter.
func newHTTPHandler(cfg config.Config, ck *checker.Checker, server *mcp.Server, logger *slog.Logger) (http.Handler, func()) {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	api := httpapi.New(ck,
		httpapi.WithLogger(logger),
		httpapi.WithMCPHandler(mcpHandler),
	)
	secured := httpapi.NewSecurityMiddleware(api.Routes(), logger, httpapi.SecurityConfig{
		RateLimit: cfg.RateLimit,
	})
	return secured, secured.Close
}

func serveHTTP(ctx context.Context, cfg config.Config, ck *checker.Checker, server *mcp.Server, logger *slog.Logger) error {
	handler, closeHandler := newHTTPHandler(cfg, ck, server, logger)
	defer closeHandler()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverPanic(logger, "http server", &err)
		logger.Info("Listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
