package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/olgasafonova/idcheck-mcp-server/internal/checker"
	"github.com/olgasafonova/idcheck-mcp-server/metrics"
	"github.com/olgasafonova/idcheck-mcp-server/tracing"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	checker *checker.Checker
	logger  *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(c *checker.Checker, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		checker: c,
		logger:  logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	registered := 0
	for _, spec := range AllTools {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered all tools", "count", registered)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "Validate":
		register(h, server, tool, spec, h.checker.ValidateMCP)
	case "ValidateBatch":
		register(h, server, tool, spec, h.checker.ValidateBatchMCP)
	case "Normalize":
		register(h, server, tool, spec, h.checker.NormalizeMCP)
	case "DetectScheme":
		register(h, server, tool, spec, h.checker.DetectSchemeMCP)
	case "ListSchemes":
		register(h, server, tool, spec, h.checker.ListSchemesMCP)
	case "ClassifyMessage":
		register(h, server, tool, spec, h.checker.ClassifyMessageMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	} else if !spec.ReadOnly {
		annotations.DestructiveHint = ptr(false)
	}
	// Tools are closed-world unless their ToolSpec says otherwise; the MCP default is open.
	annotations.OpenWorldHint = ptr(spec.OpenWorld)

	return &mcp.Tool{
		Name:        spec.Name,
		Title:       spec.Title,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the checker method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (_ *mcp.CallToolResult, result Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err = method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			h.logger.Warn("Tool failed", "tool", spec.Name, "error", err)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers and turns them into a tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details. Identifiers are not logged in full;
// only lengths, schemes and verdicts.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	switch a := args.(type) {
	case checker.ValidateArgs:
		attrs = append(attrs, "scheme_hint", a.Scheme, "input_len", len(a.Identifier))
	case checker.ValidateBatchArgs:
		attrs = append(attrs, "scheme_hint", a.Scheme, "batch_size", len(a.Identifiers))
	case checker.NormalizeArgs:
		attrs = append(attrs, "scheme_hint", a.Scheme)
	case checker.ClassifyMessageArgs:
		attrs = append(attrs, "html", a.HTMLBody != "")
	}

	switch r := result.(type) {
	case checker.ValidateResult:
		attrs = append(attrs, "scheme", r.Scheme, "valid", r.Valid, "errors", len(r.Errors))
	case checker.BatchResult:
		attrs = append(attrs, "valid", r.Valid, "invalid", r.Invalid)
	case checker.NormalizeResult:
		attrs = append(attrs, "scheme", r.Scheme)
	case checker.DetectSchemeResult:
		attrs = append(attrs, "found", r.Found, "scheme", r.Scheme)
	case checker.ListSchemesResult:
		attrs = append(attrs, "schemes", r.Count)
	case checker.ClassifyMessageResult:
		attrs = append(attrs, "category", r.Category, "score", r.Score)
	}

	h.logger.Info("Tool executed", attrs...)
}
