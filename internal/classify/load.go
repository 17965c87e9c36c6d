package classify

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRulesYAML []byte

// ruleFile is the on-disk layout of a rule table.
type ruleFile struct {
	DefaultCategory string `yaml:"default_category"`
	Rules           []Rule `yaml:"rules"`
}

// Parse builds a Classifier from a YAML rule table. Unknown keys are rejected so that
// typos in rule files do not silently disable a rule.
func Parse(data []byte) (*Classifier, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f ruleFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rule table has no rules")
	}
	return New(f.Rules, f.DefaultCategory)
}

// LoadFile reads a YAML rule table from path.
func LoadFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the classifier for the built-in rule table.
func Default() *Classifier {
	c, err := Parse(defaultRulesYAML)
	if err != nil {
		panic("classify: built-in rules are invalid: " + err.Error())
	}
	return c
}

// Load returns the rules at path, or the built-in table when path is empty.
func Load(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// TextFromHTML extracts the visible text of an HTML mail body with whitespace
// collapsed. Script and style contents are dropped.
func TextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, head").Remove()
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
