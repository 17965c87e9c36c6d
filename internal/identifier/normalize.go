package identifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Normalize strips whitespace and separators from raw and upper-cases the rest.
// Full-width forms (as pasted from some PDF invoices) are folded to ASCII first.
//
// Normalize never fails: characters outside a scheme's alphabet are kept so that
// validation can report them. It is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	folded := width.Fold.String(raw)
	// Casers carry state and must not be shared between goroutines.
	upper := cases.Upper(language.Und).String(folded)

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if isSeparator(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isSeparator reports whether r is dropped during normalization.
func isSeparator(r rune) bool {
	if unicode.IsSpace(r) || unicode.Is(unicode.Cf, r) {
		return true
	}
	switch r {
	case '-', '.', '/', '_', ':', ',', '\u2010', '\u2011', '\u2012', '\u2013':
		return true
	}
	return false
}

// isDigits reports whether s is non-empty and contains only ASCII digits.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// isLetters reports whether s is non-empty and contains only ASCII upper-case letters.
func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return len(s) > 0
}

// isAlnum reports whether s is non-empty and contains only ASCII digits and upper-case
// letters.
func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
