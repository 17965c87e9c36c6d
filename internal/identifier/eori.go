package identifier

const (
	maxEORIBody   = 15
	maxEORILength = 2 + maxEORIBody
)

// eoriCountries lists the prefixes under which EORI numbers are issued: EU member
// states (Greece under both GR and EL), Northern Ireland and Great Britain.
var eoriCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "CY": true, "CZ": true, "DE": true, "DK": true,
	"EE": true, "EL": true, "ES": true, "FI": true, "FR": true, "GR": true, "HR": true,
	"HU": true, "IE": true, "IT": true, "LT": true, "LU": true, "LV": true, "MT": true,
	"NL": true, "PL": true, "PT": true, "RO": true, "SE": true, "SI": true, "SK": true,
	"XI": true, "GB": true,
}

// germanCustomsWeights are applied left to right over the digits preceding the German
// EORI check digit, repeating when the body is longer than the pattern.
var germanCustomsWeights = []int{3, 1, 2, 1, 2, 1, 2, 1, 2}

// validateEORI checks the common EORI shape and, for German numbers, the customs
// check digit.
func validateEORI(code string) []Issue {
	return runStages(code,
		func(code string) []Issue {
			var issues []Issue
			if len(code) < 3 || len(code) > maxEORILength {
				issues = append(issues, issuef(InvalidLength, "must be between 3 and %d characters long, got %d", maxEORILength, len(code)))
			}
			if code != "" && !isAlnum(code) {
				issues = append(issues, issuef(InvalidCharacterSet, "must contain only letters A-Z and digits"))
			}
			return issues
		},
		func(code string) []Issue {
			if !eoriCountries[code[:2]] {
				return []Issue{issuef(InvalidFormat, "country prefix %s does not issue EORI numbers", code[:2])}
			}
			return nil
		},
		func(code string) []Issue {
			if code[:2] != "DE" {
				return nil
			}
			return runStages(code[2:],
				shapeGermanEORI,
				checkGermanEORI,
			)
		},
	)
}

func shapeGermanEORI(body string) []Issue {
	var issues []Issue
	if len(body) < 2 {
		issues = append(issues, issuef(InvalidLength, "German EORI needs at least 2 digits after DE, got %d", len(body)))
	}
	if !isDigits(body) {
		issues = append(issues, issuef(InvalidCharacterSet, "German EORI must contain only digits after DE"))
	}
	return issues
}

func checkGermanEORI(body string) []Issue {
	payload, last := body[:len(body)-1], int(body[len(body)-1]-'0')
	want, ok := mod11Remainder(payload, germanCustomsWeights)
	if !ok {
		return []Issue{issuef(ChecksumMismatch, "check remainder is 10; no valid check digit exists")}
	}
	if last != want {
		return []Issue{issuef(ChecksumMismatch, "check digit is %d, expected %d", last, want)}
	}
	return nil
}
