package checker

import (
	"github.com/olgasafonova/idcheck-mcp-server/internal/classify"
	"github.com/olgasafonova/idcheck-mcp-server/internal/identifier"
)

// ValidateArgs contains parameters for validating one identifier
type ValidateArgs struct {
	Identifier string `json:"identifier" jsonschema:"Identifier to check, e.g. DE136695976, an IBAN or a BIC. Spaces and separators are ignored"`
	Scheme     string `json:"scheme,omitempty" jsonschema:"Optional scheme hint (DE_VAT, AT_VAT, DE_TAX_ID, IBAN, BIC, EORI, NO_ORG, DK_CVR, FI_BUSINESS_ID, SE_ORG). Detected automatically when empty"`
}

// ValidateResult is the result of validating one identifier
type ValidateResult = identifier.Result

// ValidateBatchArgs contains parameters for validating several identifiers
type ValidateBatchArgs struct {
	Identifiers []string `json:"identifiers" jsonschema:"Identifiers to check, at most 500"`
	Scheme      string   `json:"scheme,omitempty" jsonschema:"Optional scheme hint applied to every identifier"`
}

// BatchResult is the result of a batch validation. Results keep the input order.
type BatchResult struct {
	Results []identifier.Result `json:"results"`
	Total   int                 `json:"total"`
	Valid   int                 `json:"valid"`
	Invalid int                 `json:"invalid"`
}

// NormalizeArgs contains parameters for normalizing an identifier
type NormalizeArgs struct {
	Identifier string `json:"identifier" jsonschema:"Identifier to normalize"`
	Scheme     string `json:"scheme,omitempty" jsonschema:"Optional scheme used for the display format"`
}

// NormalizeResult holds the canonical and display forms of an identifier
type NormalizeResult struct {
	Input      string            `json:"input"`
	Normalized string            `json:"normalized_code"`
	Formatted  string            `json:"formatted,omitempty"`
	Scheme     identifier.Scheme `json:"scheme,omitempty"`
}

// DetectSchemeArgs contains parameters for scheme detection
type DetectSchemeArgs struct {
	Identifier string `json:"identifier" jsonschema:"Identifier whose scheme should be inferred"`
}

// DetectSchemeResult is the detected scheme of an identifier
type DetectSchemeResult struct {
	Input      string            `json:"input"`
	Normalized string            `json:"normalized_code"`
	Found      bool              `json:"found"`
	Scheme     identifier.Scheme `json:"scheme,omitempty"`
	SchemeName string            `json:"scheme_name,omitempty"`
}

// ListSchemesArgs takes no parameters
type ListSchemesArgs struct{}

// ListSchemesResult is the supported scheme catalogue
type ListSchemesResult struct {
	Schemes []identifier.SchemeInfo `json:"schemes"`
	Count   int                     `json:"count"`
}

// ClassifyMessageArgs contains the message to categorize
type ClassifyMessageArgs struct {
	From     string `json:"from,omitempty" jsonschema:"Sender address"`
	Subject  string `json:"subject,omitempty" jsonschema:"Subject line"`
	Body     string `json:"body,omitempty" jsonschema:"Plain text body"`
	HTMLBody string `json:"html_body,omitempty" jsonschema:"HTML body, converted to text before matching"`
}

// ClassifyMessageResult is the chosen inbox category
type ClassifyMessageResult = classify.Classification
