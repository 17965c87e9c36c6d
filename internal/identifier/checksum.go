package identifier

// Checksum engine. All functions expect input that already passed the shape checks of
// their scheme (ASCII digits, or digits and upper-case letters for mod97).

// mod1110CheckDigit computes the ISO 7064 MOD 11,10 check digit over digits.
// Used by the German VAT ID and the German tax identification number.
func mod1110CheckDigit(digits string) int {
	product := 10
	for i := 0; i < len(digits); i++ {
		sum := (int(digits[i]-'0') + product) % 10
		if sum == 0 {
			sum = 10
		}
		product = (2 * sum) % 11
	}
	check := 11 - product
	if check == 10 {
		check = 0
	}
	return check
}

// mod97 returns the ISO 7064 MOD 97-10 remainder of an IBAN: the first four characters
// move to the end and letters expand to 10..35. A valid IBAN yields 1.
// The remainder is folded one character at a time so no big integers are needed.
func mod97(code string) int {
	rearranged := code[4:] + code[:4]
	rem := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			rem = (rem*100 + int(c-'A') + 10) % 97
		}
	}
	return rem
}

// weightedSum multiplies each digit by its weight. Weights repeat when digits is longer
// than weights.
func weightedSum(digits string, weights []int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i%len(weights)]
	}
	return sum
}

// mod11Complement computes the check digit 11 - (sum mod 11), with 11 mapped to 0.
// ok is false when the complement is 10: the authority never issues such numbers.
// Norwegian, Danish and Finnish business numbers use this form.
func mod11Complement(digits string, weights []int) (check int, ok bool) {
	check = (11 - weightedSum(digits, weights)%11) % 11
	if check == 10 {
		return 0, false
	}
	return check, true
}

// mod11Remainder computes the check digit as sum mod 11. ok is false for remainder 10,
// which is always invalid regardless of the literal check digit.
func mod11Remainder(digits string, weights []int) (check int, ok bool) {
	check = weightedSum(digits, weights) % 11
	if check == 10 {
		return 0, false
	}
	return check, true
}

// luhn reports whether digits (including the trailing check digit) pass the Luhn test.
func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// austrianUIDCheckDigit computes the check digit over the seven digits following "ATU".
// Digits in even positions are doubled and reduced to their cross sum; the check digit
// is (10 - (sum + 4) mod 10) mod 10.
func austrianUIDCheckDigit(digits string) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i%2 == 1 {
			d *= 2
			d = d/10 + d%10
		}
		sum += d
	}
	return (10 - (sum+4)%10) % 10
}
