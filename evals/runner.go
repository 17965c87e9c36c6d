// Package evals runs reference identifier suites against the checker and reports
// how many verdicts match the published expectations.
package evals

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/olgasafonova/idcheck-mcp-server/internal/identifier"
)

//go:embed reference_ids.yaml
var referenceSuite []byte

// Case is a single reference identifier with its expected verdict
type Case struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Input    string `yaml:"input"`

	// Scheme is passed as a hint; empty means auto-detection
	Scheme string `yaml:"scheme,omitempty"`

	ExpectValid  bool     `yaml:"expect_valid"`
	ExpectScheme string   `yaml:"expect_scheme,omitempty"`
	ExpectErrors []string `yaml:"expect_errors,omitempty"`
	Note         string   `yaml:"note,omitempty"`
}

// Suite is a named set of reference cases
type Suite struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Cases       []Case `yaml:"cases"`
}

// CaseResult is the outcome of one case
type CaseResult struct {
	CaseID string
	Input  string
	Passed bool
	Errors []string
}

// EvalMetrics contains aggregate metrics for an evaluation run
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64 // PassedTests / TotalTests
	ByCategory    map[string]*CategoryMetrics
	FailedDetails []string
}

// CategoryMetrics contains metrics per category
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// Validator is implemented by checker.Checker
type Validator interface {
	Validate(ctx context.Context, raw, hint string) (identifier.Result, error)
}

// ParseSuite decodes a suite from YAML. Unknown keys are rejected.
func ParseSuite(data []byte) (*Suite, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var suite Suite
	if err := dec.Decode(&suite); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(suite.Cases) == 0 {
		return nil, fmt.Errorf("suite %q has no cases", suite.Name)
	}
	seen := make(map[string]bool, len(suite.Cases))
	for i, c := range suite.Cases {
		if c.ID == "" {
			return nil, fmt.Errorf("case %d has no id", i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return &suite, nil
}

// LoadSuite loads a suite from a YAML file
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return ParseSuite(data)
}

// DefaultSuite returns the built-in reference identifiers.
func DefaultSuite() *Suite {
	suite, err := ParseSuite(referenceSuite)
	if err != nil {
		panic("evals: invalid built-in suite: " + err.Error())
	}
	return suite
}

// Evaluate runs every case of suite through v.
func Evaluate(ctx context.Context, suite *Suite, v Validator) (*EvalMetrics, []CaseResult) {
	metrics := &EvalMetrics{
		ByCategory: make(map[string]*CategoryMetrics),
	}
	results := make([]CaseResult, 0, len(suite.Cases))

	for _, c := range suite.Cases {
		metrics.TotalTests++
		if metrics.ByCategory[c.Category] == nil {
			metrics.ByCategory[c.Category] = &CategoryMetrics{}
		}
		metrics.ByCategory[c.Category].Total++

		result := CaseResult{CaseID: c.ID, Input: c.Input}
		res, err := v.Validate(ctx, c.Input, c.Scheme)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("validator error: %v", err))
		} else {
			result.Errors = compare(c, res)
		}
		result.Passed = len(result.Errors) == 0

		if result.Passed {
			metrics.PassedTests++
			metrics.ByCategory[c.Category].Passed++
		} else {
			metrics.FailedTests++
			metrics.ByCategory[c.Category].Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", c.ID, c.Input, strings.Join(result.Errors, "; ")))
		}
		results = append(results, result)
	}

	if metrics.TotalTests > 0 {
		metrics.Accuracy = float64(metrics.PassedTests) / float64(metrics.TotalTests)
	}
	return metrics, results
}

// compare lists every way res deviates from the expectations of c.
func compare(c Case, res identifier.Result) []string {
	var errs []string
	if res.Valid != c.ExpectValid {
		errs = append(errs, fmt.Sprintf("expected valid=%v, got %v (%s)", c.ExpectValid, res.Valid, strings.Join(res.Messages(), ", ")))
	}
	if c.ExpectScheme != "" && string(res.Scheme) != c.ExpectScheme {
		errs = append(errs, fmt.Sprintf("expected scheme %s, got %q", c.ExpectScheme, res.Scheme))
	}
	if len(c.ExpectErrors) > 0 {
		got := make([]string, 0, len(res.Errors))
		for _, k := range res.Kinds() {
			got = append(got, string(k))
		}
		if !slices.Equal(c.ExpectErrors, got) {
			errs = append(errs, fmt.Sprintf("expected errors %v, got %v", c.ExpectErrors, got))
		}
	}
	return errs
}

// FormatMetrics returns a human-readable summary of evaluation metrics
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d cases\n", metrics.TotalTests)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", metrics.FailedTests)

	if len(metrics.ByCategory) > 0 {
		b.WriteString("\nBy Category:\n")
		cats := make([]string, 0, len(metrics.ByCategory))
		for cat := range metrics.ByCategory {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			m := metrics.ByCategory[cat]
			if m.Total > 0 {
				acc := float64(m.Passed) / float64(m.Total) * 100
				fmt.Fprintf(&b, "  %-12s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, acc)
			}
		}
	}

	if len(metrics.FailedDetails) > 0 && len(metrics.FailedDetails) <= 10 {
		b.WriteString("\nFailed Cases:\n")
		for _, detail := range metrics.FailedDetails {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
	} else if len(metrics.FailedDetails) > 10 {
		fmt.Fprintf(&b, "\nFailed Cases (showing first 10 of %d):\n", len(metrics.FailedDetails))
		for _, detail := range metrics.FailedDetails[:10] {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
	}

	return b.String()
}
