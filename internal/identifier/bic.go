package identifier

import "golang.org/x/text/language"

// validateBIC checks the ISO 9362 structure: four-letter institution code, ISO 3166
// country code, two-character location code and an optional three-character branch
// code. BICs carry no checksum.
func validateBIC(code string) []Issue {
	return runStages(code,
		func(code string) []Issue {
			var issues []Issue
			if len(code) != 8 && len(code) != 11 {
				issues = append(issues, issuef(InvalidLength, "must be 8 or 11 characters long, got %d", len(code)))
			}
			if code != "" && !isAlnum(code) {
				issues = append(issues, issuef(InvalidCharacterSet, "must contain only letters A-Z and digits"))
			}
			return issues
		},
		func(code string) []Issue {
			var issues []Issue
			if !isLetters(code[:4]) {
				issues = append(issues, issuef(InvalidFormat, "institution code %s must be four letters", code[:4]))
			}
			if !knownCountry(code[4:6]) {
				issues = append(issues, issuef(InvalidFormat, "unknown country code %s", code[4:6]))
			}
			return issues
		},
	)
}

// knownCountry reports whether cc is an ISO 3166-1 alpha-2 country code.
func knownCountry(cc string) bool {
	if len(cc) != 2 || !isLetters(cc) {
		return false
	}
	region, err := language.ParseRegion(cc)
	if err != nil {
		return false
	}
	return region.IsCountry()
}

// bicShape reports whether code has the letter layout of a BIC.
func bicShape(code string) bool {
	if len(code) != 8 && len(code) != 11 {
		return false
	}
	return isLetters(code[:6]) && isAlnum(code[6:])
}
