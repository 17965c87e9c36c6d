package identifier

import "fmt"

// ErrorKind classifies a validation failure.
type ErrorKind string

// Validation error taxonomy.
const (
	UnknownScheme       ErrorKind = "UnknownScheme"
	InvalidLength       ErrorKind = "InvalidLength"
	InvalidCharacterSet ErrorKind = "InvalidCharacterSet"
	InvalidFormat       ErrorKind = "InvalidFormat"
	ChecksumMismatch    ErrorKind = "ChecksumMismatch"
)

// Issue is a single validation failure.
type Issue struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return string(i.Kind) + ": " + i.Message
}

func issuef(kind ErrorKind, format string, args ...any) Issue {
	return Issue{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Result is the verdict for one identifier.
type Result struct {
	Valid      bool    `json:"valid"`
	Input      string  `json:"input"`
	Normalized string  `json:"normalized_code"`
	Formatted  string  `json:"formatted,omitempty"`
	Scheme     Scheme  `json:"scheme,omitempty"`
	SchemeName string  `json:"scheme_name,omitempty"`
	Errors     []Issue `json:"errors,omitempty"`
}

// Messages returns the human-readable error messages in reporting order.
func (r Result) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Has reports whether r carries an error of the given kind.
func (r Result) Has(kind ErrorKind) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Kinds returns the error kinds in reporting order.
func (r Result) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, 0, len(r.Errors))
	for _, e := range r.Errors {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// stage is one step of a scheme's checks. A stage returning issues stops the pipeline.
type stage func(code string) []Issue

// runStages applies stages in order and returns the issues of the first failing one.
func runStages(code string, stages ...stage) []Issue {
	for _, s := range stages {
		if issues := s(code); len(issues) > 0 {
			return issues
		}
	}
	return nil
}

// shapeStage reports a length problem before a character set problem and returns both
// when both apply.
func shapeStage(wantLen int, alphabet func(string) bool, alphabetDesc string) stage {
	return func(code string) []Issue {
		var issues []Issue
		if len(code) != wantLen {
			issues = append(issues, issuef(InvalidLength, "must be %d characters long, got %d", wantLen, len(code)))
		}
		if code != "" && !alphabet(code) {
			issues = append(issues, issuef(InvalidCharacterSet, "must contain only %s", alphabetDesc))
		}
		return issues
	}
}
