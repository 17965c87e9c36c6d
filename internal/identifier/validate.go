package identifier

// Validate normalizes raw, infers its scheme and checks it. When no scheme matches, the
// result carries a single UnknownScheme error and no further checks run.
func Validate(raw string) Result {
	scheme, ok := Detect(raw)
	if !ok {
		code := Normalize(raw)
		msg := "no supported scheme matches this identifier"
		if code == "" {
			msg = "identifier is empty"
		}
		return Result{
			Input:      raw,
			Normalized: code,
			Errors:     []Issue{{Kind: UnknownScheme, Message: msg}},
		}
	}
	return ValidateAs(raw, scheme)
}

// ValidateAs checks raw against an explicit scheme.
func ValidateAs(raw string, scheme Scheme) Result {
	code := Normalize(raw)
	result := Result{
		Input:      raw,
		Normalized: code,
		Scheme:     scheme,
	}

	def, ok := definitions[scheme]
	if !ok {
		result.Errors = []Issue{issuef(UnknownScheme, "unsupported scheme %q", string(scheme))}
		return result
	}
	result.SchemeName = def.info.Name

	result.Errors = def.validate(code)
	result.Valid = len(result.Errors) == 0
	if result.Valid {
		result.Formatted = def.format(code)
	}
	return result
}

// Format renders code in the display convention of scheme. Input is normalized first;
// codes that do not have the scheme's length are returned normalized but otherwise
// untouched. Normalize(Format(x, s)) == Normalize(x) for every x.
func Format(code string, scheme Scheme) string {
	normalized := Normalize(code)
	def, ok := definitions[scheme]
	if !ok {
		return normalized
	}
	return def.format(normalized)
}
