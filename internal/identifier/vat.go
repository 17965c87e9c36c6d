package identifier

import "strings"

const (
	germanVATPrefix   = "DE"
	austrianVATPrefix = "ATU"
)

// prefixStage checks that code carries a country prefix.
func prefixStage(prefix string) stage {
	return func(code string) []Issue {
		if !strings.HasPrefix(code, prefix) {
			return []Issue{issuef(InvalidFormat, "must start with %s", prefix)}
		}
		return nil
	}
}

// bodyStage applies stages to the part after prefix.
func bodyStage(prefix string, stages ...stage) stage {
	return func(code string) []Issue {
		return runStages(strings.TrimPrefix(code, prefix), stages...)
	}
}

// validateGermanVAT checks a USt-IdNr.: DE followed by nine digits, the last one an
// ISO 7064 MOD 11,10 check digit over the first eight.
func validateGermanVAT(code string) []Issue {
	return runStages(code,
		prefixStage(germanVATPrefix),
		bodyStage(germanVATPrefix,
			shapeStage(9, isDigits, "digits after DE"),
			func(body string) []Issue {
				want := mod1110CheckDigit(body[:8])
				if int(body[8]-'0') != want {
					return []Issue{issuef(ChecksumMismatch, "check digit is %c, expected %d", body[8], want)}
				}
				return nil
			},
		),
	)
}

// validateAustrianVAT checks an Austrian UID: ATU followed by eight digits, the last
// one computed with the Federal Ministry of Finance weighting.
func validateAustrianVAT(code string) []Issue {
	return runStages(code,
		prefixStage(austrianVATPrefix),
		bodyStage(austrianVATPrefix,
			shapeStage(8, isDigits, "digits after ATU"),
			func(body string) []Issue {
				want := austrianUIDCheckDigit(body[:7])
				if int(body[7]-'0') != want {
					return []Issue{issuef(ChecksumMismatch, "check digit is %c, expected %d", body[7], want)}
				}
				return nil
			},
		),
	)
}

func formatGermanVAT(code string) string {
	if len(code) != 11 || !strings.HasPrefix(code, germanVATPrefix) {
		return code
	}
	return code[:2] + " " + code[2:5] + " " + code[5:8] + " " + code[8:]
}

func formatAustrianVAT(code string) string {
	if len(code) != 11 || !strings.HasPrefix(code, austrianVATPrefix) {
		return code
	}
	return code[:3] + " " + code[3:]
}
