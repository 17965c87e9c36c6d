// Package httpapi exposes the checker over HTTP: a small JSON API under /v1, health
// and Prometheus endpoints, and optionally the MCP streamable HTTP transport at /mcp.
package httpapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olgasafonova/idcheck-mcp-server/internal/checker"
	"github.com/olgasafonova/idcheck-mcp-server/internal/classify"
	"github.com/olgasafonova/idcheck-mcp-server/internal/errors"
	"github.com/olgasafonova/idcheck-mcp-server/metrics"
)

const (
	// RequestIDHeader carries the request correlation ID in both directions
	RequestIDHeader = "X-Request-ID"

	// MaxBodyBytes bounds request bodies
	MaxBodyBytes = 1 << 20

	maxRequestIDLength = 128
)

type ctxKey struct{}

// RequestID returns the correlation ID stored by the request ID middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Server serves the HTTP API.
type Server struct {
	checker *checker.Checker
	logger  *slog.Logger
	mcp     http.Handler
}

// Option configures the Server
type Option func(*Server)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMCPHandler mounts an MCP transport handler at /mcp
func WithMCPHandler(h http.Handler) Option {
	return func(s *Server) {
		s.mcp = h
	}
}

// New creates a Server backed by c.
func New(c *checker.Checker, opts ...Option) *Server {
	s := &Server{
		checker: c,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/validate/batch", s.handleValidateBatch)
		r.Post("/normalize", s.handleNormalize)
		r.Post("/detect", s.handleDetect)
		r.Get("/schemes", s.handleSchemes)
		r.Post("/classify", s.handleClassify)
	})

	if s.mcp != nil {
		r.Handle("/mcp", s.mcp)
		r.Handle("/mcp/*", s.mcp)
	}
	return r
}

// requestID propagates an incoming X-Request-ID or assigns a fresh one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// instrument records request count and latency per route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, route, status, duration.Seconds())
		s.logger.Debug("HTTP request",
			"request_id", RequestID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", status,
			"duration_ms", duration.Milliseconds())
	})
}

type validateRequest struct {
	Identifier string `json:"identifier"`
	Scheme     string `json:"scheme,omitempty"`
}

type batchRequest struct {
	Identifiers []string `json:"identifiers"`
	Scheme      string   `json:"scheme,omitempty"`
}

type classifyRequest struct {
	From     string `json:"from,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Body     string `json:"body,omitempty"`
	HTMLBody string `json:"html_body,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.checker.Validate(r.Context(), req.Identifier, req.Scheme)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.checker.ValidateBatch(r.Context(), req.Identifiers, req.Scheme)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.checker.Normalize(req.Identifier, req.Scheme)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req checker.DetectSchemeArgs
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.checker.DetectSchemeMCP(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	res, _ := s.checker.ListSchemesMCP(r.Context(), checker.ListSchemesArgs{})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.checker.Classify(classify.Message{
		From:     req.From,
		Subject:  req.Subject,
		Body:     req.Body,
		HTMLBody: req.HTMLBody,
	}))
}

// decode reads a JSON body into dst, writing a 400 on failure or a 413 when the body
// exceeds MaxBodyBytes.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("request body too large (limit %d bytes)", maxErr.Limit),
				Field: "body",
			})
			return false
		}
		msg := "malformed JSON"
		if stderrors.Is(err, io.EOF) {
			msg = "is required"
		}
		s.writeError(w, r, errors.NewValidationError("body", "", msg))
		return false
	}
	if dec.More() {
		s.writeError(w, r, errors.NewValidationError("body", "", "must contain a single JSON object"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsBadRequest(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: errors.Field(err)})
		return
	}
	s.logger.Error("Request failed",
		"request_id", RequestID(r.Context()),
		"path", r.URL.Path,
		"error", err)
	status := http.StatusInternalServerError
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
