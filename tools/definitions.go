package tools

// AllTools lists every tool the identifier checker exposes.
// Tool descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// VALIDATION TOOLS
	// ==========================================================================
	{
		Name:     "validate_identifier",
		Method:   "Validate",
		Title:    "Validate Identifier",
		Category: "validation",
		Description: `Check a German/EU tax or business identifier offline: format, length, character set and checksum.

USE WHEN: User asks "is DE136695976 a valid VAT ID", "check this IBAN", "is this Steuer-ID correct", "verify EORI".

NOT FOR: Checking many identifiers at once (use validate_identifiers_batch). Does not confirm that a VAT ID is registered; only that it is well-formed.

PARAMETERS:
- identifier: The identifier, spaces and separators allowed (required)
- scheme: DE_VAT, AT_VAT, DE_TAX_ID, IBAN, BIC, EORI, NO_ORG, DK_CVR, FI_BUSINESS_ID or SE_ORG. Auto-detected when omitted

RETURNS: valid flag, normalized_code, detected scheme, display format and an ordered list of errors (kind + message).`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "validate_identifiers_batch",
		Method:   "ValidateBatch",
		Title:    "Validate Identifiers (Batch)",
		Category: "validation",
		Description: `Validate a list of identifiers in one call.

USE WHEN: User pastes several IBANs or VAT IDs, "check all identifiers in this invoice list".

NOT FOR: A single identifier (use validate_identifier).

PARAMETERS:
- identifiers: List of identifiers, at most 500 (required)
- scheme: Optional hint applied to every entry

RETURNS: One result per identifier in input order, plus total/valid/invalid counts.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "normalize_identifier",
		Method:   "Normalize",
		Title:    "Normalize Identifier",
		Category: "validation",
		Description: `Return the canonical and display forms of an identifier without judging validity.

USE WHEN: User asks "format this IBAN", "how should I write this VAT ID", "remove spaces from".

NOT FOR: Checking validity (use validate_identifier).

PARAMETERS:
- identifier: The identifier (required)
- scheme: Optional scheme for the display format; detected when omitted

RETURNS: normalized_code (no separators, upper case) and formatted display string.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "detect_scheme",
		Method:   "DetectScheme",
		Title:    "Detect Identifier Scheme",
		Category: "validation",
		Description: `Guess which numbering scheme an identifier belongs to.

USE WHEN: User asks "what kind of number is this", "is this an IBAN or a VAT ID".

NOT FOR: Validation (use validate_identifier, which also detects).

PARAMETERS:
- identifier: The identifier (required)

RETURNS: found flag, scheme id and scheme name. DE + 9 digits is reported as DE_VAT even though it may also be a German EORI.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// CATALOGUE TOOLS
	// ==========================================================================
	{
		Name:     "list_schemes",
		Method:   "ListSchemes",
		Title:    "List Supported Schemes",
		Category: "catalogue",
		Description: `List the identifier schemes this server understands.

USE WHEN: User asks "which identifiers can you check", "what scheme names are accepted".

PARAMETERS: none

RETURNS: Scheme id, name, country, accepted lengths, checksum algorithm and a valid example for each scheme.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// MAIL TOOLS
	// ==========================================================================
	{
		Name:     "classify_message",
		Method:   "ClassifyMessage",
		Title:    "Classify Inbox Message",
		Category: "mail",
		Description: `Assign an e-mail to an inbox category (invoice, order, payment, tax-office, support, newsletter, spam or other) using the configured keyword rule table.

USE WHEN: User asks "what kind of mail is this", "sort this message", "is this from the tax office".

NOT FOR: Extracting or validating identifiers inside the mail (use validate_identifier on them).

PARAMETERS:
- from, subject, body: Message fields (all optional)
- html_body: HTML body, converted to text before matching

RETURNS: category, score and the rules that matched.`,
		ReadOnly:   true,
		Idempotent: true,
	},
}
