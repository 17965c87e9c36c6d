// Package identifier validates business and tax identifiers: German and Austrian VAT
// numbers, the German tax identification number, IBAN, BIC, EORI and the Nordic
// organization numbers.
//
// Every function in this package is pure. Validation failures are returned as data in
// Result.Errors, never as Go errors, so callers can validate concurrently without any
// coordination.
//
// The pipeline for a single identifier is:
//
//	Normalize -> Detect (or Lookup a hint) -> per-scheme checks -> Result
//
// Per-scheme checks run in a fixed order. Length and character set problems are
// reported first and suppress everything after them; structural rules come next; the
// checksum is only evaluated on a well-formed code.
package identifier
