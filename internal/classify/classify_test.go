package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Classify(t *testing.T) {
	c := Default()

	tests := []struct {
		name      string
		msg       Message
		wantCat   string
		wantScore int
		wantRules []string
	}{
		{
			name: "invoice with number and VAT ID",
			msg: Message{
				From:    "buchhaltung@shop.de",
				Subject: "Rechnung 2024-001",
				Body:    "Rechnungsnr: RE-2024-001\nUSt-IdNr: DE136695976",
			},
			wantCat:   "invoice",
			wantScore: 10,
			wantRules: []string{"invoice-subject", "invoice-number", "invoice-vat-id"},
		},
		{
			name: "tax office notice",
			msg: Message{
				From:    "poststelle@finanzamt-muenchen.de",
				Subject: "Ihr Steuerbescheid 2023",
			},
			wantCat:   "tax-office",
			wantScore: 16,
			wantRules: []string{"tax-office-sender", "tax-office-subject"},
		},
		{
			name: "payment outweighs invoice",
			msg: Message{
				From:    "service@paypal.de",
				Subject: "Mahnung: Rechnung 4711",
			},
			wantCat:   "payment",
			wantScore: 9,
			wantRules: []string{"invoice-subject", "payment-subject", "payment-sender"},
		},
		{
			name: "html newsletter",
			msg: Message{
				From:     "news@brand.de",
				Subject:  "Neuigkeiten",
				HTMLBody: `<html><head><style>.x{}</style></head><body><p>Zum <a href="#">Newsletter abmelden</a></p></body></html>`,
			},
			wantCat:   "newsletter",
			wantScore: 4,
			wantRules: []string{"newsletter-unsubscribe"},
		},
		{
			name: "nothing matches",
			msg: Message{
				From:    "friend@example.org",
				Subject: "Hallo",
				Body:    "Wie geht's?",
			},
			wantCat:   DefaultCategory,
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.msg)
			assert.Equal(t, tt.wantCat, got.Category)
			assert.Equal(t, tt.wantScore, got.Score)

			var rules []string
			for _, m := range got.Matches {
				rules = append(rules, m.Rule)
			}
			assert.Equal(t, tt.wantRules, rules)
		})
	}
}

func TestClassify_TieGoesToEarlierRule(t *testing.T) {
	a := Rule{Name: "a", Category: "first", Weight: 2, Field: FieldSubject, Contains: []string{"hello"}}
	b := Rule{Name: "b", Category: "second", Weight: 2, Field: FieldSubject, Contains: []string{"world"}}
	msg := Message{Subject: "Hello World"}

	c, err := New([]Rule{a, b}, "")
	require.NoError(t, err)
	assert.Equal(t, "first", c.Classify(msg).Category)

	c, err = New([]Rule{b, a}, "")
	require.NoError(t, err)
	assert.Equal(t, "second", c.Classify(msg).Category)
}

func TestClassify_FieldScoping(t *testing.T) {
	rules := []Rule{
		{Name: "from-only", Category: "vendor", Weight: 1, Field: FieldFrom, Contains: []string{"acme"}},
	}
	c, err := New(rules, "misc")
	require.NoError(t, err)

	assert.Equal(t, "misc", c.Classify(Message{Subject: "acme news"}).Category)
	assert.Equal(t, "vendor", c.Classify(Message{From: "billing@ACME.com"}).Category)
	assert.Equal(t, "misc", c.DefaultCategory())
}

func TestClassify_Regex(t *testing.T) {
	rules := []Rule{
		{Name: "order-no", Category: "order", Weight: 1, Field: FieldBody, Regex: `#\d{4,}`},
	}
	c, err := New(rules, "")
	require.NoError(t, err)

	assert.Equal(t, "order", c.Classify(Message{Body: "Ihre Bestellung #100234"}).Category)
	assert.Equal(t, DefaultCategory, c.Classify(Message{Body: "Ihre Bestellung #12"}).Category)
}

func TestNew_Errors(t *testing.T) {
	valid := Rule{Name: "ok", Category: "c", Weight: 1, Contains: []string{"x"}}

	tests := []struct {
		name  string
		rules []Rule
	}{
		{"missing name", []Rule{{Category: "c", Weight: 1, Contains: []string{"x"}}}},
		{"missing category", []Rule{{Name: "n", Weight: 1, Contains: []string{"x"}}}},
		{"zero weight", []Rule{{Name: "n", Category: "c", Contains: []string{"x"}}}},
		{"unknown field", []Rule{{Name: "n", Category: "c", Weight: 1, Field: "cc", Contains: []string{"x"}}}},
		{"no predicate", []Rule{{Name: "n", Category: "c", Weight: 1}}},
		{"bad regex", []Rule{{Name: "n", Category: "c", Weight: 1, Regex: "(unclosed"}}},
		{"duplicate name", []Rule{valid, valid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rules, "")
			assert.Error(t, err)
		})
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	c := Default()
	rules := c.Rules()
	require.NotEmpty(t, rules)

	rules[0].Contains[0] = "mutated"
	assert.NotEqual(t, "mutated", c.Rules()[0].Contains[0])
}

func TestParse(t *testing.T) {
	data := []byte(`
default_category: inbox
rules:
  - name: vip
    category: priority
    weight: 3
    field: from
    contains: ["ceo@"]
`)
	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "inbox", c.DefaultCategory())
	assert.Equal(t, "priority", c.Classify(Message{From: "CEO@example.com"}).Category)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "rules: [unterminated"},
		{"unknown key", "rules:\n  - name: a\n    category: c\n    weight: 1\n    keywords: [x]\n"},
		{"empty table", "default_category: x\nrules: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, len(Default().Rules()), len(c.Rules()))

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - {name: a, category: c, weight: 1, contains: [x]}\n"), 0o600))

	c, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Rules(), 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTextFromHTML(t *testing.T) {
	text, err := TextFromHTML(`<html><head><title>t</title></head><body><h1>Rechnung</h1>
<p>Betrag:   <b>12,00 EUR</b></p><script>track()</script></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Rechnung Betrag: 12,00 EUR", text)
}
