package identifier

import (
	"sort"
	"strings"
)

// Scheme identifies a numbering scheme.
type Scheme string

// Supported schemes.
const (
	SchemeDEVAT        Scheme = "DE_VAT"
	SchemeATVAT        Scheme = "AT_VAT"
	SchemeDETaxID      Scheme = "DE_TAX_ID"
	SchemeIBAN         Scheme = "IBAN"
	SchemeBIC          Scheme = "BIC"
	SchemeEORI         Scheme = "EORI"
	SchemeNOOrg        Scheme = "NO_ORG"
	SchemeDKCVR        Scheme = "DK_CVR"
	SchemeFIBusinessID Scheme = "FI_BUSINESS_ID"
	SchemeSEOrg        Scheme = "SE_ORG"
)

// Checksum algorithm names reported in SchemeInfo.
const (
	AlgorithmMod1110      = "ISO 7064 MOD 11,10"
	AlgorithmMod9710      = "ISO 7064 MOD 97-10"
	AlgorithmMod11        = "MOD11"
	AlgorithmLuhn         = "Luhn"
	AlgorithmAustrianUID  = "BMF UID weighted cross sum"
	AlgorithmGermanCustom = "MOD11 3-1-2-1-2-1-2-1-2"
	AlgorithmNone         = "none"
)

// SchemeInfo describes a scheme for catalogues and tool listings.
type SchemeInfo struct {
	ID        Scheme `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country,omitempty"`
	Lengths   []int  `json:"lengths"`
	Pattern   string `json:"pattern"`
	Algorithm string `json:"algorithm"`
	Example   string `json:"example"`
}

// definition binds a scheme's metadata to its checks and display format.
type definition struct {
	info     SchemeInfo
	validate func(code string) []Issue
	format   func(code string) string
}

var definitions = map[Scheme]definition{
	SchemeDEVAT: {
		info: SchemeInfo{
			ID: SchemeDEVAT, Name: "German VAT ID (USt-IdNr.)", Country: "DE",
			Lengths: []int{11}, Pattern: "DE + 9 digits",
			Algorithm: AlgorithmMod1110, Example: "DE136695976",
		},
		validate: validateGermanVAT,
		format:   formatGermanVAT,
	},
	SchemeATVAT: {
		info: SchemeInfo{
			ID: SchemeATVAT, Name: "Austrian VAT ID (UID)", Country: "AT",
			Lengths: []int{11}, Pattern: "ATU + 8 digits",
			Algorithm: AlgorithmAustrianUID, Example: "ATU13585627",
		},
		validate: validateAustrianVAT,
		format:   formatAustrianVAT,
	},
	SchemeDETaxID: {
		info: SchemeInfo{
			ID: SchemeDETaxID, Name: "German tax identification number (Steuer-IdNr.)", Country: "DE",
			Lengths: []int{11}, Pattern: "11 digits, first digit not 0",
			Algorithm: AlgorithmMod1110, Example: "86095742719",
		},
		validate: validateTaxID,
		format:   formatTaxID,
	},
	SchemeIBAN: {
		info: SchemeInfo{
			ID: SchemeIBAN, Name: "International Bank Account Number",
			Lengths: []int{minIBANLength, maxIBANLength}, Pattern: "country + 2 check digits + BBAN",
			Algorithm: AlgorithmMod9710, Example: "DE89370400440532013000",
		},
		validate: validateIBAN,
		format:   formatIBAN,
	},
	SchemeBIC: {
		info: SchemeInfo{
			ID: SchemeBIC, Name: "Business Identifier Code (SWIFT)",
			Lengths: []int{8, 11}, Pattern: "4 letters bank + 2 letters country + 2 location [+ 3 branch]",
			Algorithm: AlgorithmNone, Example: "DEUTDEFF",
		},
		validate: validateBIC,
		format:   strings.ToUpper,
	},
	SchemeEORI: {
		info: SchemeInfo{
			ID: SchemeEORI, Name: "Economic Operators Registration and Identification number",
			Lengths: []int{3, maxEORILength}, Pattern: "country + up to 15 characters",
			Algorithm: AlgorithmGermanCustom + " (DE only)", Example: "DE47110000",
		},
		validate: validateEORI,
		format:   strings.ToUpper,
	},
	SchemeNOOrg: {
		info: SchemeInfo{
			ID: SchemeNOOrg, Name: "Norwegian organization number", Country: "NO",
			Lengths: []int{9}, Pattern: `^\d{9}$`,
			Algorithm: AlgorithmMod11, Example: "923609016",
		},
		validate: validateNorwayOrgNumber,
		format:   formatNorwayOrgNumber,
	},
	SchemeDKCVR: {
		info: SchemeInfo{
			ID: SchemeDKCVR, Name: "Danish CVR number", Country: "DK",
			Lengths: []int{8}, Pattern: `^\d{8}$`,
			Algorithm: AlgorithmMod11, Example: "10150817",
		},
		validate: validateDenmarkCVR,
		format:   formatDenmarkCVR,
	},
	SchemeFIBusinessID: {
		info: SchemeInfo{
			ID: SchemeFIBusinessID, Name: "Finnish business ID (Y-tunnus)", Country: "FI",
			Lengths: []int{8}, Pattern: `^\d{7}-\d$`,
			Algorithm: AlgorithmMod11, Example: "0112038-9",
		},
		validate: validateFinlandBusinessID,
		format:   formatFinlandBusinessID,
	},
	SchemeSEOrg: {
		info: SchemeInfo{
			ID: SchemeSEOrg, Name: "Swedish organization number", Country: "SE",
			Lengths: []int{10}, Pattern: `^\d{10}$`,
			Algorithm: AlgorithmLuhn, Example: "556036-0793",
		},
		validate: validateSwedenOrgNumber,
		format:   formatSwedenOrgNumber,
	},
}

// aliases maps accepted scheme hints to schemes. Keys are lower case with separators
// removed.
var aliases = map[string]Scheme{
	"devat":        SchemeDEVAT,
	"ustidnr":      SchemeDEVAT,
	"ustid":        SchemeDEVAT,
	"atvat":        SchemeATVAT,
	"atuid":        SchemeATVAT,
	"uid":          SchemeATVAT,
	"detaxid":      SchemeDETaxID,
	"taxid":        SchemeDETaxID,
	"steuerid":     SchemeDETaxID,
	"steueridnr":   SchemeDETaxID,
	"idnr":         SchemeDETaxID,
	"iban":         SchemeIBAN,
	"bic":          SchemeBIC,
	"swift":        SchemeBIC,
	"eori":         SchemeEORI,
	"noorg":        SchemeNOOrg,
	"orgnr":        SchemeNOOrg,
	"dkcvr":        SchemeDKCVR,
	"cvr":          SchemeDKCVR,
	"fibusinessid": SchemeFIBusinessID,
	"ytunnus":      SchemeFIBusinessID,
	"seorg":        SchemeSEOrg,
}

// String returns the scheme identifier.
func (s Scheme) String() string {
	return string(s)
}

// Name returns the human-readable scheme name, or the identifier for unknown schemes.
func (s Scheme) Name() string {
	if def, ok := definitions[s]; ok {
		return def.info.Name
	}
	return string(s)
}

// Valid reports whether s is a supported scheme.
func (s Scheme) Valid() bool {
	_, ok := definitions[s]
	return ok
}

// Info returns the catalogue entry for s.
func (s Scheme) Info() (SchemeInfo, bool) {
	def, ok := definitions[s]
	return def.info, ok
}

// Lookup resolves a caller-supplied scheme hint such as "DE_VAT", "ust-idnr" or
// "swift". Matching is case-insensitive and ignores separators.
func Lookup(hint string) (Scheme, bool) {
	key := strings.ToLower(strings.TrimSpace(hint))
	key = strings.NewReplacer("_", "", "-", "", " ", "", ".", "").Replace(key)
	if key == "" {
		return "", false
	}
	s, ok := aliases[key]
	return s, ok
}

// Schemes returns the catalogue of supported schemes ordered by identifier.
func Schemes() []SchemeInfo {
	infos := make([]SchemeInfo, 0, len(definitions))
	for _, def := range definitions {
		info := def.info
		info.Lengths = append([]int(nil), info.Lengths...)
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}
