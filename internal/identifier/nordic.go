package identifier

import "regexp"

// finnishPattern matches the hyphenated Y-tunnus form. Finnish IDs are only
// distinguishable from Danish CVR numbers by the hyphen, so detection looks at the raw
// input.
var finnishPattern = regexp.MustCompile(`^\d{7}-\d$`)

// MOD11 weights over the digits preceding the check digit.
var (
	norwayWeights  = []int{3, 2, 7, 6, 5, 4, 3, 2}
	denmarkWeights = []int{2, 7, 6, 5, 4, 3, 2}
	finlandWeights = []int{7, 9, 10, 5, 8, 4, 2}
)

// mod11Stage checks the trailing MOD11 check digit. Numbers whose computed check value
// is 10 are never issued and are rejected outright.
func mod11Stage(weights []int) stage {
	return func(code string) []Issue {
		n := len(code) - 1
		want, ok := mod11Complement(code[:n], weights)
		if !ok {
			return []Issue{issuef(ChecksumMismatch, "computed check value is 10; no number with these digits is issued")}
		}
		if int(code[n]-'0') != want {
			return []Issue{issuef(ChecksumMismatch, "check digit is %c, expected %d", code[n], want)}
		}
		return nil
	}
}

// validateNorwayOrgNumber validates a Norwegian org number using MOD11.
// Norwegian org numbers are 9 digits with the last digit being a MOD11 check digit.
func validateNorwayOrgNumber(code string) []Issue {
	return runStages(code, shapeStage(9, isDigits, "digits"), mod11Stage(norwayWeights))
}

// validateDenmarkCVR validates a Danish CVR number using MOD11.
func validateDenmarkCVR(code string) []Issue {
	return runStages(code, shapeStage(8, isDigits, "digits"), mod11Stage(denmarkWeights))
}

// validateFinlandBusinessID validates a Finnish Y-tunnus. The hyphen is removed by
// normalization, leaving 7 digits plus the check digit.
func validateFinlandBusinessID(code string) []Issue {
	return runStages(code, shapeStage(8, isDigits, "digits"), mod11Stage(finlandWeights))
}

// validateSwedenOrgNumber validates a Swedish org number using the Luhn algorithm.
func validateSwedenOrgNumber(code string) []Issue {
	return runStages(code,
		shapeStage(10, isDigits, "digits"),
		func(code string) []Issue {
			if !luhn(code) {
				return []Issue{issuef(ChecksumMismatch, "Luhn check failed")}
			}
			return nil
		},
	)
}

// 123 456 789
func formatNorwayOrgNumber(code string) string {
	if len(code) != 9 {
		return code
	}
	return code[:3] + " " + code[3:6] + " " + code[6:]
}

// 12 34 56 78
func formatDenmarkCVR(code string) string {
	if len(code) != 8 {
		return code
	}
	return code[:2] + " " + code[2:4] + " " + code[4:6] + " " + code[6:]
}

// 1234567-8
func formatFinlandBusinessID(code string) string {
	if len(code) != 8 {
		return code
	}
	return code[:7] + "-" + code[7:]
}

// 123456-7890
func formatSwedenOrgNumber(code string) string {
	if len(code) != 10 {
		return code
	}
	return code[:6] + "-" + code[6:]
}
