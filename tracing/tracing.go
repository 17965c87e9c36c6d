// Package tracing provides OpenTelemetry tracing for the identifier checker.
// It configures trace exporters and provides utilities for creating spans.
package tracing

import (
	"context"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "idcheck-mcp-server"
)

// Config holds tracing configuration. Fields are populated from the standard OTEL_*
// environment variables.
type Config struct {
	ServiceName    string  `env:"OTEL_SERVICE_NAME" envDefault:"idcheck-mcp-server"`
	ServiceVersion string  `env:"OTEL_SERVICE_VERSION" envDefault:"1.0.0"`
	Environment    string  `env:"OTEL_ENVIRONMENT" envDefault:"development"`
	Enabled        bool    `env:"OTEL_ENABLED"`
	OTLPEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"` // If set, uses OTLP exporter; otherwise stdout
	SampleRate     float64 `env:"OTEL_TRACES_SAMPLE_RATE" envDefault:"1.0"`
}

// DefaultConfig returns the tracing configuration from the environment. Tracing is
// enabled by OTEL_ENABLED=true or by setting an OTLP endpoint. Malformed values fall
// back to the defaults.
func DefaultConfig() Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		cfg = Config{
			ServiceName:    TracerName,
			ServiceVersion: "1.0.0",
			Environment:    "development",
			SampleRate:     1.0,
		}
	}
	return cfg.normalize()
}

func (c Config) normalize() Config {
	if c.OTLPEndpoint != "" {
		c.Enabled = true
	}
	return c
}

// Setup initializes OpenTelemetry tracing and returns a shutdown function
func Setup(ctx context.Context, config Config) (func(context.Context) error, error) {
	config = config.normalize()
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	var exporter sdktrace.SpanExporter
	if config.OTLPEndpoint != "" {
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(config.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	} else {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, err
	}

	var sampler sdktrace.Sampler
	switch {
	case config.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case config.SampleRate <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(config.SampleRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Tracer returns the named tracer for the server
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name and returns the context and span
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// AddToolAttributes adds standard tool attributes to a span
func AddToolAttributes(span trace.Span, toolName, category string) {
	span.SetAttributes(
		attribute.String("mcp.tool.name", toolName),
		attribute.String("mcp.tool.category", category),
	)
}

// AddValidationAttributes records the outcome of one identifier check. The identifier
// itself is not recorded.
func AddValidationAttributes(span trace.Span, scheme string, valid bool, errorCount int) {
	if scheme == "" {
		scheme = "unknown"
	}
	span.SetAttributes(
		attribute.String("idcheck.scheme", scheme),
		attribute.Bool("idcheck.valid", valid),
		attribute.Int("idcheck.error_count", errorCount),
	)
}

// AddBatchAttributes records the size and outcome of a batch validation.
func AddBatchAttributes(span trace.Span, size, invalid int) {
	span.SetAttributes(
		attribute.Int("idcheck.batch.size", size),
		attribute.Int("idcheck.batch.invalid", invalid),
	)
}

// RecordError records an error on the span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}
