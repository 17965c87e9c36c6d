// Package classify assigns inbox messages to categories using an ordered, weighted
// keyword rule table.
//
// Each Rule is a predicate over one message field (sender, subject, body or all of
// them) that contributes its weight to a category when it matches. The category with
// the highest total wins. Ties are broken by rule order: the category whose first
// matching rule appears earliest wins. A message no rule matches gets the table's
// default category.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCategory is used when a rule table does not name one.
const DefaultCategory = "other"

// Field selects the part of a message a rule looks at.
type Field string

const (
	FieldFrom    Field = "from"
	FieldSubject Field = "subject"
	FieldBody    Field = "body"
	FieldAny     Field = "any"
)

// Rule is one entry of the rule table. A rule matches when any Contains term occurs in
// the selected field (case-insensitive) or when Regex matches it.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Category string   `yaml:"category" json:"category"`
	Weight   int      `yaml:"weight" json:"weight"`
	Field    Field    `yaml:"field" json:"field"`
	Contains []string `yaml:"contains,omitempty" json:"contains,omitempty"`
	Regex    string   `yaml:"regex,omitempty" json:"regex,omitempty"`
}

// Message is the input to classification. HTMLBody is converted to text and appended
// to Body before matching.
type Message struct {
	From     string `json:"from"`
	Subject  string `json:"subject"`
	Body     string `json:"body,omitempty"`
	HTMLBody string `json:"html_body,omitempty"`
}

// Match records a rule that fired.
type Match struct {
	Rule     string `json:"rule"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
}

// Classification is the verdict for one message.
type Classification struct {
	Category string  `json:"category"`
	Score    int     `json:"score"`
	Matches  []Match `json:"matches,omitempty"`
}

// compiledRule is a validated rule with lower-cased terms and a compiled regex.
type compiledRule struct {
	Rule
	terms []string
	re    *regexp.Regexp
}

// Classifier evaluates a fixed rule table. It is safe for concurrent use.
type Classifier struct {
	rules           []compiledRule
	defaultCategory string
}

// New validates rules and builds a Classifier. An empty defaultCategory falls back to
// DefaultCategory.
func New(rules []Rule, defaultCategory string) (*Classifier, error) {
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}
	c := &Classifier{
		rules:           make([]compiledRule, 0, len(rules)),
		defaultCategory: defaultCategory,
	}
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		cr, err := compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Name, err)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("rule %d: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

func compileRule(r Rule) (compiledRule, error) {
	if r.Name == "" {
		return compiledRule{}, fmt.Errorf("name is required")
	}
	if r.Category == "" {
		return compiledRule{}, fmt.Errorf("category is required")
	}
	if r.Weight <= 0 {
		return compiledRule{}, fmt.Errorf("weight must be positive, got %d", r.Weight)
	}
	switch r.Field {
	case "":
		r.Field = FieldAny
	case FieldFrom, FieldSubject, FieldBody, FieldAny:
	default:
		return compiledRule{}, fmt.Errorf("unknown field %q", r.Field)
	}
	if len(r.Contains) == 0 && r.Regex == "" {
		return compiledRule{}, fmt.Errorf("needs contains terms or a regex")
	}

	cr := compiledRule{Rule: r}
	for _, term := range r.Contains {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			cr.terms = append(cr.terms, term)
		}
	}
	if r.Regex != "" {
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			return compiledRule{}, fmt.Errorf("bad regex: %w", err)
		}
		cr.re = re
	}
	return cr, nil
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Rule
		out[i].Contains = append([]string(nil), r.Contains...)
	}
	return out
}

// DefaultCategory returns the category assigned when nothing matches.
func (c *Classifier) DefaultCategory() string {
	return c.defaultCategory
}

// Classify scores msg against every rule.
func (c *Classifier) Classify(msg Message) Classification {
	body := msg.Body
	if msg.HTMLBody != "" {
		// Malformed HTML still yields whatever text goquery recovered.
		text, _ := TextFromHTML(msg.HTMLBody)
		body = strings.TrimSpace(body + "\n" + text)
	}
	fields := map[Field]string{
		FieldFrom:    msg.From,
		FieldSubject: msg.Subject,
		FieldBody:    body,
	}
	fields[FieldAny] = msg.From + "\n" + msg.Subject + "\n" + body

	lowered := make(map[Field]string, len(fields))
	for f, v := range fields {
		lowered[f] = strings.ToLower(v)
	}

	scores := make(map[string]int)
	var order []string
	var matches []Match
	for _, r := range c.rules {
		if !r.matches(fields[r.Field], lowered[r.Field]) {
			continue
		}
		if _, ok := scores[r.Category]; !ok {
			order = append(order, r.Category)
		}
		scores[r.Category] += r.Weight
		matches = append(matches, Match{Rule: r.Name, Category: r.Category, Weight: r.Weight})
	}

	if len(order) == 0 {
		return Classification{Category: c.defaultCategory}
	}
	best := order[0]
	for _, cat := range order[1:] {
		if scores[cat] > scores[best] {
			best = cat
		}
	}
	return Classification{Category: best, Score: scores[best], Matches: matches}
}

func (r compiledRule) matches(raw, lower string) bool {
	for _, term := range r.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return r.re != nil && r.re.MatchString(raw)
}
