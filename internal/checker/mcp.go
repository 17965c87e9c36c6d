package checker

import (
	"context"

	"github.com/olgasafonova/idcheck-mcp-server/internal/classify"
)

// MCP Tool wrapper methods
// These methods wrap the checker methods with Args/Result types for MCP integration.

// ValidateMCP is the MCP wrapper for Validate
func (c *Checker) ValidateMCP(ctx context.Context, args ValidateArgs) (ValidateResult, error) {
	return c.Validate(ctx, args.Identifier, args.Scheme)
}

// ValidateBatchMCP is the MCP wrapper for ValidateBatch
func (c *Checker) ValidateBatchMCP(ctx context.Context, args ValidateBatchArgs) (BatchResult, error) {
	return c.ValidateBatch(ctx, args.Identifiers, args.Scheme)
}

// NormalizeMCP is the MCP wrapper for Normalize
func (c *Checker) NormalizeMCP(_ context.Context, args NormalizeArgs) (NormalizeResult, error) {
	return c.Normalize(args.Identifier, args.Scheme)
}

// DetectSchemeMCP is the MCP wrapper for Detect
func (c *Checker) DetectSchemeMCP(_ context.Context, args DetectSchemeArgs) (DetectSchemeResult, error) {
	if err := checkLength("identifier", args.Identifier); err != nil {
		return DetectSchemeResult{}, err
	}
	return c.Detect(args.Identifier), nil
}

// ListSchemesMCP is the MCP wrapper for Schemes
func (c *Checker) ListSchemesMCP(_ context.Context, _ ListSchemesArgs) (ListSchemesResult, error) {
	schemes := c.Schemes()
	return ListSchemesResult{Schemes: schemes, Count: len(schemes)}, nil
}

// ClassifyMessageMCP is the MCP wrapper for Classify
func (c *Checker) ClassifyMessageMCP(_ context.Context, args ClassifyMessageArgs) (ClassifyMessageResult, error) {
	return c.Classify(classify.Message{
		From:     args.From,
		Subject:  args.Subject,
		Body:     args.Body,
		HTMLBody: args.HTMLBody,
	}), nil
}
