package identifier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestValidate_ReferenceIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantScheme Scheme
		wantFormat string
	}{
		{"German VAT test ID", "DE 136 695 976", SchemeDEVAT, "DE 136 695 976"},
		{"German VAT compact", "de136695976", SchemeDEVAT, "DE 136 695 976"},
		{"Austrian UID", "ATU13585627", SchemeATVAT, "ATU 13585627"},
		{"German tax ID", "86 095 742 719", SchemeDETaxID, "86 095 742 719"},
		{"German tax ID second sample", "47036892816", SchemeDETaxID, "47 036 892 816"},
		{"German tax ID with adjacent pair of a tripled digit", "65929970489", SchemeDETaxID, "65 929 970 489"},
		{"German tax ID with tripled digit apart", "25768131411", SchemeDETaxID, "25 768 131 411"},
		{"German IBAN", "DE89370400440532013000", SchemeIBAN, "DE89 3704 0044 0532 0130 00"},
		{"German IBAN paper format", "DE89 3704 0044 0532 0130 00", SchemeIBAN, "DE89 3704 0044 0532 0130 00"},
		{"British IBAN", "GB82 WEST 1234 5698 7654 32", SchemeIBAN, "GB82 WEST 1234 5698 7654 32"},
		{"Dutch IBAN", "NL91ABNA0417164300", SchemeIBAN, "NL91 ABNA 0417 1643 00"},
		{"Belgian IBAN", "BE68539007547034", SchemeIBAN, "BE68 5390 0754 7034"},
		{"French IBAN with letters in BBAN", "FR1420041010050500013M02606", SchemeIBAN, "FR14 2004 1010 0505 0001 3M02 606"},
		{"Norwegian IBAN", "NO9386011117947", SchemeIBAN, "NO93 8601 1117 947"},
		{"Swiss IBAN", "CH9300762011623852957", SchemeIBAN, "CH93 0076 2011 6238 5295 7"},
		{"Austrian IBAN", "AT611904300234573201", SchemeIBAN, "AT61 1904 3002 3457 3201"},
		{"BIC 8", "DEUTDEFF", SchemeBIC, "DEUTDEFF"},
		{"BIC 11", "deutdeff500", SchemeBIC, "DEUTDEFF500"},
		{"BIC primary office", "COBADEFFXXX", SchemeBIC, "COBADEFFXXX"},
		{"German EORI", "DE47110000", SchemeEORI, "DE47110000"},
		{"German EORI short", "DE1234569", SchemeEORI, "DE1234569"},
		{"British EORI", "GB123456789000", SchemeEORI, "GB123456789000"},
		{"Norwegian org number", "923609016", SchemeNOOrg, "923 609 016"},
		{"Norwegian org number spaced", "923 609 016", SchemeNOOrg, "923 609 016"},
		{"Danish CVR", "10150817", SchemeDKCVR, "10 15 08 17"},
		{"Finnish business ID", "0112038-9", SchemeFIBusinessID, "0112038-9"},
		{"Swedish org number", "556036-0793", SchemeSEOrg, "556036-0793"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.input)
			if !got.Valid {
				t.Fatalf("Validate(%q) invalid: %v", tt.input, got.Errors)
			}
			if got.Scheme != tt.wantScheme {
				t.Errorf("Scheme = %s, want %s", got.Scheme, tt.wantScheme)
			}
			if got.Formatted != tt.wantFormat {
				t.Errorf("Formatted = %q, want %q", got.Formatted, tt.wantFormat)
			}
			if len(got.Errors) != 0 {
				t.Errorf("valid result carries errors: %v", got.Errors)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKinds []ErrorKind
	}{
		{"German VAT wrong check digit", "DE136695977", []ErrorKind{ChecksumMismatch}},
		{"Austrian UID wrong check digit", "ATU13585626", []ErrorKind{ChecksumMismatch}},
		{"Austrian UID too short", "ATU1358562", []ErrorKind{InvalidLength}},
		{"Austrian UID letters", "ATU1358562X", []ErrorKind{InvalidCharacterSet}},
		{"IBAN last digit flipped", "DE89370400440532013001", []ErrorKind{ChecksumMismatch}},
		{"IBAN too short for country", "DE8937040044053201300", []ErrorKind{InvalidLength}},
		{"IBAN with symbol", "DE89370400440532013#00", []ErrorKind{InvalidCharacterSet}},
		{"tax ID adjacent repeat", "11234567890", []ErrorKind{InvalidFormat}},
		{"tax ID digit three times in a row", "11123456786", []ErrorKind{InvalidFormat}},
		{"tax ID wrong check digit", "86095742718", []ErrorKind{ChecksumMismatch}},
		{"German EORI remainder 10", "DE175", []ErrorKind{ChecksumMismatch}},
		{"German EORI wrong check digit", "DE47110001", []ErrorKind{ChecksumMismatch}},
		{"Norwegian wrong check digit", "923609017", []ErrorKind{ChecksumMismatch}},
		{"Norwegian never issued", "400000000", []ErrorKind{ChecksumMismatch}},
		{"Danish wrong check digit", "10150818", []ErrorKind{ChecksumMismatch}},
		{"Finnish wrong check digit", "0112038-8", []ErrorKind{ChecksumMismatch}},
		{"Swedish Luhn failure", "5560360794", []ErrorKind{ChecksumMismatch}},
		{"unknown scheme", "hello world", []ErrorKind{UnknownScheme}},
		{"empty", "   ", []ErrorKind{UnknownScheme}},
		{"too many digits", "1234567890123", []ErrorKind{UnknownScheme}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.input)
			if got.Valid {
				t.Fatalf("Validate(%q) = valid, want invalid", tt.input)
			}
			if diff := cmp.Diff(tt.wantKinds, got.Kinds()); diff != "" {
				t.Errorf("error kinds mismatch (-want +got):\n%s\nerrors: %v", diff, got.Errors)
			}
			if got.Formatted != "" {
				t.Errorf("invalid result should not be formatted, got %q", got.Formatted)
			}
		})
	}
}

func TestValidateAs(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		scheme    Scheme
		wantValid bool
		wantKinds []ErrorKind
	}{
		{"German VAT hint", "DE136695976", SchemeDEVAT, true, nil},
		{"German VAT missing prefix", "136695976", SchemeDEVAT, false, []ErrorKind{InvalidFormat}},
		{"German VAT length and alphabet", "DE13669597X1", SchemeDEVAT, false, []ErrorKind{InvalidLength, InvalidCharacterSet}},
		{"German VAT shaped EORI", "DE136695977", SchemeEORI, false, []ErrorKind{ChecksumMismatch}},
		{"Austrian UID without U", "AT13585627", SchemeATVAT, false, []ErrorKind{InvalidFormat}},
		{"tax ID too short", "8609574271", SchemeDETaxID, false, []ErrorKind{InvalidLength}},
		{"tax ID leading zero and two repeated digits", "06095742719", SchemeDETaxID, false, []ErrorKind{InvalidFormat, InvalidFormat}},
		{"tax ID two repeated digits", "12123456789", SchemeDETaxID, false, []ErrorKind{InvalidFormat}},
		{"tax ID no repeated digit", "1234567890" + "1", SchemeDETaxID, false, []ErrorKind{InvalidFormat}},
		{"truncated IBAN with hint", "DE89370400440532", SchemeIBAN, false, []ErrorKind{InvalidLength}},
		{"IBAN unknown country", "US12345678901234567", SchemeIBAN, false, []ErrorKind{InvalidFormat}},
		{"IBAN letters in check digits", "DEAB370400440532013000", SchemeIBAN, false, []ErrorKind{InvalidFormat}},
		{"BIC digit in country", "DEUT1AFF", SchemeBIC, false, []ErrorKind{InvalidFormat}},
		{"BIC digit in bank code", "D3UTDEFF", SchemeBIC, false, []ErrorKind{InvalidFormat}},
		{"BIC wrong length", "DEUTDEF", SchemeBIC, false, []ErrorKind{InvalidLength}},
		{"EORI unknown country", "US123456", SchemeEORI, false, []ErrorKind{InvalidFormat}},
		{"EORI too long", "DE1234567890123456", SchemeEORI, false, []ErrorKind{InvalidLength}},
		{"German EORI with letters", "DE12A4569", SchemeEORI, false, []ErrorKind{InvalidCharacterSet}},
		{"German EORI one digit", "DE5", SchemeEORI, false, []ErrorKind{InvalidLength}},
		{"Finnish ID without hyphen", "01120389", SchemeFIBusinessID, true, nil},
		{"unsupported scheme", "DE136695976", Scheme("XX_VAT"), false, []ErrorKind{UnknownScheme}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAs(tt.input, tt.scheme)
			if got.Valid != tt.wantValid {
				t.Fatalf("ValidateAs(%q, %s).Valid = %v, want %v (errors: %v)", tt.input, tt.scheme, got.Valid, tt.wantValid, got.Errors)
			}
			if diff := cmp.Diff(tt.wantKinds, got.Kinds(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("error kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_LengthSuppressesChecksum(t *testing.T) {
	got := ValidateAs("DE13669597", SchemeDEVAT)
	if got.Has(ChecksumMismatch) {
		t.Errorf("checksum must not be evaluated on a malformed length: %v", got.Errors)
	}
	if !got.Has(InvalidLength) {
		t.Errorf("expected InvalidLength, got %v", got.Errors)
	}
}

func TestValidate_TaxIDFormatBeforeChecksum(t *testing.T) {
	got := Validate("11234567890")
	if got.Scheme != SchemeDETaxID {
		t.Fatalf("Scheme = %s, want %s", got.Scheme, SchemeDETaxID)
	}
	want := []Issue{{Kind: InvalidFormat, Message: "digit 1 repeats in adjacent positions 1 and 2"}}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_TaxIDRunOfThree(t *testing.T) {
	// 1112345678 carries the correct check digit 6; only the run of three fails.
	got := Validate("11123456786")
	want := []Issue{{Kind: InvalidFormat, Message: "digit 1 occurs three times in a row at positions 1 to 3"}}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_UnknownSchemeRunsNoChecks(t *testing.T) {
	got := Validate("ZZ-12")
	want := Result{
		Input:      "ZZ-12",
		Normalized: "ZZ12",
		Errors:     []Issue{{Kind: UnknownScheme, Message: "no supported scheme matches this identifier"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate mismatch (-want +got):\n%s", diff)
	}
}

func TestResult_Messages(t *testing.T) {
	got := ValidateAs("DE13669597X1", SchemeDEVAT)
	want := []string{
		"must be 9 characters long, got 10",
		"must contain only digits after DE",
	}
	if diff := cmp.Diff(want, got.Messages()); diff != "" {
		t.Errorf("Messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := map[Scheme][]string{
		SchemeDEVAT:        {"DE 136 695 976", "DE1366"},
		SchemeATVAT:        {"ATU13585627"},
		SchemeDETaxID:      {"86095742719", "123"},
		SchemeIBAN:         {"DE89370400440532013000", "GB82WEST12345698765432"},
		SchemeBIC:          {"deutdeff"},
		SchemeNOOrg:        {"923609016"},
		SchemeDKCVR:        {"10150817"},
		SchemeFIBusinessID: {"0112038-9"},
		SchemeSEOrg:        {"5560360793"},
	}

	for scheme, values := range inputs {
		for _, v := range values {
			first := Format(v, scheme)
			for i := 0; i < 3; i++ {
				if again := Format(Normalize(first), scheme); again != first {
					t.Errorf("Format(%q, %s) unstable: %q then %q", v, scheme, first, again)
				}
			}
			if Normalize(first) != Normalize(v) {
				t.Errorf("Normalize(Format(%q)) = %q, want %q", v, Normalize(first), Normalize(v))
			}
		}
	}
}

func TestFormat_UnknownScheme(t *testing.T) {
	if got := Format("de 123", Scheme("nope")); got != "DE123" {
		t.Errorf("Format with unknown scheme = %q, want %q", got, "DE123")
	}
}
