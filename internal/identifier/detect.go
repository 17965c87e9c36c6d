package identifier

import (
	"strings"
)

// Detect infers the scheme of raw from its normalized prefix and length. The rules are
// tried in a fixed order; the first match wins:
//
//  1. ATU prefix                                  -> AT_VAT
//  2. DE + 9 digits                               -> DE_VAT
//  3. IBAN country + 2 digits, IBAN-sized         -> IBAN
//  4. BIC letter layout, 8 or 11 characters       -> BIC
//  5. EORI country + alphanumeric body with digit -> EORI
//  6. 11 digits                                   -> DE_TAX_ID
//  7. raw 1234567-8                               -> FI_BUSINESS_ID
//  8. 9 / 10 / 8 digits                           -> NO_ORG / SE_ORG / DK_CVR
//
// A German EORI consisting of DE plus nine digits is indistinguishable from a VAT ID
// and is detected as DE_VAT; pass an explicit hint to validate it as EORI. Likewise an
// IBAN cut short to 17 characters or fewer fits the EORI shape and is detected as
// EORI; validate it with the IBAN hint to get the length error.
func Detect(raw string) (Scheme, bool) {
	code := Normalize(raw)
	if code == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(code, austrianVATPrefix):
		return SchemeATVAT, true
	case len(code) == 11 && strings.HasPrefix(code, germanVATPrefix) && isDigits(code[2:]):
		return SchemeDEVAT, true
	}

	if length, ok := ibanCountry(code); ok && (len(code) == length || len(code) > maxEORILength) {
		return SchemeIBAN, true
	}
	if bicShape(code) {
		return SchemeBIC, true
	}
	if len(code) > 2 && len(code) <= maxEORILength && eoriCountries[code[:2]] &&
		isAlnum(code[2:]) && strings.ContainsAny(code[2:], "0123456789") {
		return SchemeEORI, true
	}

	if !isDigits(code) {
		return "", false
	}
	switch len(code) {
	case 11:
		return SchemeDETaxID, true
	case 9:
		return SchemeNOOrg, true
	case 10:
		return SchemeSEOrg, true
	case 8:
		if finnishPattern.MatchString(strings.TrimSpace(raw)) {
			return SchemeFIBusinessID, true
		}
		return SchemeDKCVR, true
	}
	return "", false
}
