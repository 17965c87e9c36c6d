// Package checker is the service layer shared by the MCP tools, the HTTP API and the
// CLI. It wraps the identifier library with scheme-hint resolution, a result cache,
// bounded batch fan-out, metrics and logging.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/idcheck-mcp-server/internal/classify"
	"github.com/olgasafonova/idcheck-mcp-server/internal/errors"
	"github.com/olgasafonova/idcheck-mcp-server/internal/identifier"
	"github.com/olgasafonova/idcheck-mcp-server/internal/infra"
	"github.com/olgasafonova/idcheck-mcp-server/metrics"
	"github.com/olgasafonova/idcheck-mcp-server/tracing"
)

const (
	// DefaultMaxBatchSize caps the identifiers accepted by one batch call
	DefaultMaxBatchSize = 500

	// DefaultConcurrency bounds parallel validations within a batch
	DefaultConcurrency = 8

	// MaxIdentifierLength rejects inputs no supported scheme could match
	MaxIdentifierLength = 256
)

// Checker validates identifiers. It is safe for concurrent use.
type Checker struct {
	logger      *slog.Logger
	cache       *infra.Cache[identifier.Result]
	cacheTTL    time.Duration
	maxBatch    int
	concurrency int
	classifier  *classify.Classifier
}

// Option configures the Checker
type Option func(*Checker)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// WithCache enables result caching with the given capacity and entry lifetime.
// A size of 0 disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Checker) {
		if c.cache != nil {
			c.cache.Close()
			c.cache = nil
		}
		if size > 0 {
			c.cache = infra.NewCache[identifier.Result](size, infra.WithEvictHook(metrics.RecordCacheEvictions))
			c.cacheTTL = ttl
		}
	}
}

// WithMaxBatchSize sets the largest accepted batch
func WithMaxBatchSize(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.maxBatch = n
		}
	}
}

// WithConcurrency sets how many identifiers of a batch are validated in parallel
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithClassifier sets the message classifier. The built-in rule table is used otherwise.
func WithClassifier(cl *classify.Classifier) Option {
	return func(c *Checker) {
		if cl != nil {
			c.classifier = cl
		}
	}
}

// New creates a Checker. Without WithCache, results are not cached.
func New(opts ...Option) *Checker {
	c := &Checker{
		logger:      slog.Default(),
		maxBatch:    DefaultMaxBatchSize,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.classifier == nil {
		c.classifier = classify.Default()
	}
	return c
}

// Close releases resources held by the checker
func (c *Checker) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// MaxBatchSize returns the largest batch Validate accepts.
func (c *Checker) MaxBatchSize() int {
	return c.maxBatch
}

// ResolveScheme turns a caller-supplied hint into a scheme. An empty hint means
// auto-detection and returns "".
func (c *Checker) ResolveScheme(hint string) (identifier.Scheme, error) {
	if strings.TrimSpace(hint) == "" {
		return "", nil
	}
	scheme, ok := identifier.Lookup(hint)
	if !ok {
		return "", errors.NewUnknownSchemeError(hint, schemeIDs())
	}
	return scheme, nil
}

// Validate checks one identifier. hint may be empty for auto-detection.
// Invalid identifiers are reported in the Result; an error means the request itself
// was unusable.
func (c *Checker) Validate(ctx context.Context, raw, hint string) (identifier.Result, error) {
	if strings.TrimSpace(raw) == "" {
		return identifier.Result{}, errors.NewValidationError("identifier", "", "is required")
	}
	if err := checkLength("identifier", raw); err != nil {
		return identifier.Result{}, err
	}
	scheme, err := c.ResolveScheme(hint)
	if err != nil {
		return identifier.Result{}, err
	}

	_, span := tracing.StartSpan(ctx, "idcheck.validate")
	defer span.End()

	res := c.validate(raw, scheme)
	tracing.AddValidationAttributes(span, string(res.Scheme), res.Valid, len(res.Errors))
	return res, nil
}

// ValidateBatch checks identifiers in parallel and returns results in input order.
// Blank entries are reported as invalid results rather than failing the batch.
func (c *Checker) ValidateBatch(ctx context.Context, raws []string, hint string) (BatchResult, error) {
	if len(raws) == 0 {
		return BatchResult{}, errors.NewValidationError("identifiers", "", "at least one identifier is required")
	}
	if len(raws) > c.maxBatch {
		return BatchResult{}, errors.NewValidationError("identifiers", strconv.Itoa(len(raws)),
			fmt.Sprintf("at most %d identifiers per batch", c.maxBatch))
	}
	for i, raw := range raws {
		if err := checkLength(fmt.Sprintf("identifiers[%d]", i), raw); err != nil {
			return BatchResult{}, err
		}
	}
	scheme, err := c.ResolveScheme(hint)
	if err != nil {
		return BatchResult{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "idcheck.validate_batch")
	defer span.End()
	metrics.BatchSize.Observe(float64(len(raws)))

	results := make([]identifier.Result, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.validate(raw, scheme)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tracing.RecordError(span, err)
		return BatchResult{}, fmt.Errorf("batch validation interrupted: %w", err)
	}

	out := BatchResult{Results: results, Total: len(results)}
	for _, r := range results {
		if r.Valid {
			out.Valid++
		} else {
			out.Invalid++
		}
	}
	tracing.AddBatchAttributes(span, out.Total, out.Invalid)
	return out, nil
}

// Normalize returns the normalized and display forms of raw. The display form uses the
// hinted scheme, or the detected one when hint is empty.
func (c *Checker) Normalize(raw, hint string) (NormalizeResult, error) {
	if err := checkLength("identifier", raw); err != nil {
		return NormalizeResult{}, err
	}
	scheme, err := c.ResolveScheme(hint)
	if err != nil {
		return NormalizeResult{}, err
	}
	out := NormalizeResult{
		Input:      raw,
		Normalized: identifier.Normalize(raw),
	}
	if scheme == "" {
		scheme, _ = identifier.Detect(raw)
	}
	if scheme != "" {
		out.Scheme = scheme
		out.Formatted = identifier.Format(raw, scheme)
	}
	return out, nil
}

// Detect infers the scheme of raw without validating it.
func (c *Checker) Detect(raw string) DetectSchemeResult {
	scheme, ok := identifier.Detect(raw)
	out := DetectSchemeResult{
		Input:      raw,
		Normalized: identifier.Normalize(raw),
		Found:      ok,
	}
	if ok {
		out.Scheme = scheme
		out.SchemeName = scheme.Name()
	}
	return out
}

// Schemes returns the supported scheme catalogue.
func (c *Checker) Schemes() []identifier.SchemeInfo {
	return identifier.Schemes()
}

// Classify assigns msg to an inbox category.
func (c *Checker) Classify(msg classify.Message) classify.Classification {
	res := c.classifier.Classify(msg)
	metrics.RecordClassification(res.Category)
	return res
}

// validate runs one check through the cache and records metrics.
func (c *Checker) validate(raw string, scheme identifier.Scheme) identifier.Result {
	key := string(scheme) + "|" + raw

	if c.cache != nil {
		if res, ok := c.cache.Get(key); ok {
			metrics.RecordCacheAccess(true)
			res.Errors = slices.Clone(res.Errors)
			return res
		}
		metrics.RecordCacheAccess(false)
	}

	var res identifier.Result
	if scheme == "" {
		res = identifier.Validate(raw)
	} else {
		res = identifier.ValidateAs(raw, scheme)
	}

	kinds := make([]string, 0, len(res.Errors))
	for _, k := range res.Kinds() {
		kinds = append(kinds, string(k))
	}
	metrics.RecordValidation(string(res.Scheme), res.Valid, kinds)
	c.logger.Debug("Identifier checked",
		"scheme", res.Scheme,
		"valid", res.Valid,
		"errors", len(res.Errors))

	if c.cache != nil {
		stored := res
		stored.Errors = slices.Clone(res.Errors)
		c.cache.Set(key, stored, c.cacheTTL)
		metrics.SetCacheSize(c.cache.Size())
	}
	return res
}

func checkLength(field, raw string) error {
	if len(raw) > MaxIdentifierLength {
		return errors.NewValidationError(field, "",
			fmt.Sprintf("must be at most %d bytes, got %d", MaxIdentifierLength, len(raw)))
	}
	return nil
}

func schemeIDs() []string {
	infos := identifier.Schemes()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = string(info.ID)
	}
	return ids
}
