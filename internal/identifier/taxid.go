package identifier

// validateTaxID checks a German tax identification number (Steuer-IdNr.).
//
// Structural rules over the first ten digits:
//   - the first digit is not 0;
//   - exactly one digit occurs two or three times, every other digit at most once;
//   - a digit occurring twice never stands next to itself;
//   - a digit occurring three times may form one adjacent pair, never a run of three.
//
// The eleventh digit is an ISO 7064 MOD 11,10 check digit over the first ten.
func validateTaxID(code string) []Issue {
	return runStages(code,
		shapeStage(11, isDigits, "digits"),
		taxIDStructure,
		func(code string) []Issue {
			want := mod1110CheckDigit(code[:10])
			if int(code[10]-'0') != want {
				return []Issue{issuef(ChecksumMismatch, "check digit is %c, expected %d", code[10], want)}
			}
			return nil
		},
	)
}

func taxIDStructure(code string) []Issue {
	var issues []Issue
	if code[0] == '0' {
		issues = append(issues, issuef(InvalidFormat, "first digit must not be 0"))
	}

	body := code[:10]
	var counts [10]int
	for i := 0; i < len(body); i++ {
		counts[body[i]-'0']++
	}

	for i := 1; i < len(body); i++ {
		if body[i] != body[i-1] {
			continue
		}
		if counts[body[i]-'0'] == 2 {
			issues = append(issues, issuef(InvalidFormat, "digit %c repeats in adjacent positions %d and %d", body[i], i, i+1))
			break
		}
		if i >= 2 && body[i] == body[i-2] {
			issues = append(issues, issuef(InvalidFormat, "digit %c occurs three times in a row at positions %d to %d", body[i], i-1, i+1))
			break
		}
	}

	repeated := 0
	for _, n := range counts {
		switch {
		case n > 3:
			repeated += 2
		case n > 1:
			repeated++
		}
	}
	if repeated != 1 {
		issues = append(issues, issuef(InvalidFormat, "exactly one digit must occur two or three times in the first ten digits"))
	}
	return issues
}

func formatTaxID(code string) string {
	if len(code) != 11 {
		return code
	}
	return code[:2] + " " + code[2:5] + " " + code[5:8] + " " + code[8:]
}
