package identifier

import "strings"

const (
	minIBANLength = 15
	maxIBANLength = 34
)

// ibanLengths is the total IBAN length per country from the SWIFT IBAN registry.
var ibanLengths = map[string]int{
	"AD": 24, "AE": 23, "AL": 28, "AT": 20, "AZ": 28, "BA": 20, "BE": 16, "BG": 22,
	"BH": 22, "BR": 29, "BY": 28, "CH": 21, "CR": 22, "CY": 28, "CZ": 24, "DE": 22,
	"DK": 18, "DO": 28, "EE": 20, "EG": 29, "ES": 24, "FI": 18, "FO": 18, "FR": 27,
	"GB": 22, "GE": 22, "GI": 23, "GL": 18, "GR": 27, "GT": 28, "HR": 21, "HU": 28,
	"IE": 22, "IL": 23, "IQ": 23, "IS": 26, "IT": 27, "JO": 30, "KW": 30, "KZ": 20,
	"LB": 28, "LC": 32, "LI": 21, "LT": 20, "LU": 20, "LV": 21, "MC": 27, "MD": 24,
	"ME": 22, "MK": 19, "MR": 27, "MT": 31, "MU": 30, "NL": 18, "NO": 15, "PK": 24,
	"PL": 28, "PS": 29, "PT": 25, "QA": 29, "RO": 24, "RS": 22, "SA": 24, "SC": 31,
	"SE": 24, "SI": 19, "SK": 24, "SM": 27, "ST": 25, "SV": 28, "TL": 23, "TN": 24,
	"TR": 26, "UA": 29, "VA": 22, "VG": 24, "XK": 20,
}

// validateIBAN checks length bounds, alphabet, country, the country's fixed length and
// finally the MOD 97-10 checksum.
func validateIBAN(code string) []Issue {
	return runStages(code,
		func(code string) []Issue {
			var issues []Issue
			if len(code) < minIBANLength || len(code) > maxIBANLength {
				issues = append(issues, issuef(InvalidLength, "must be between %d and %d characters long, got %d", minIBANLength, maxIBANLength, len(code)))
			}
			if code != "" && !isAlnum(code) {
				issues = append(issues, issuef(InvalidCharacterSet, "must contain only letters A-Z and digits"))
			}
			return issues
		},
		func(code string) []Issue {
			var issues []Issue
			if !isLetters(code[:2]) {
				issues = append(issues, issuef(InvalidFormat, "must start with a two-letter country code"))
			} else if _, ok := ibanLengths[code[:2]]; !ok {
				issues = append(issues, issuef(InvalidFormat, "country %s does not use IBAN", code[:2]))
			}
			if !isDigits(code[2:4]) {
				issues = append(issues, issuef(InvalidFormat, "positions 3 and 4 must be check digits"))
			}
			return issues
		},
		func(code string) []Issue {
			if want := ibanLengths[code[:2]]; len(code) != want {
				return []Issue{issuef(InvalidLength, "%s IBAN must be %d characters long, got %d", code[:2], want, len(code))}
			}
			return nil
		},
		func(code string) []Issue {
			if mod97(code) != 1 {
				return []Issue{issuef(ChecksumMismatch, "MOD 97 check failed for check digits %s", code[2:4])}
			}
			return nil
		},
	)
}

// ibanCountry reports whether code looks like the start of an IBAN from a registered
// country.
func ibanCountry(code string) (length int, ok bool) {
	if len(code) < 4 || !isLetters(code[:2]) || !isDigits(code[2:4]) {
		return 0, false
	}
	length, ok = ibanLengths[code[:2]]
	return length, ok
}

// formatIBAN renders the paper format: groups of four separated by spaces.
func formatIBAN(code string) string {
	var b strings.Builder
	b.Grow(len(code) + len(code)/4)
	for i := 0; i < len(code); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(code[i])
	}
	return b.String()
}
