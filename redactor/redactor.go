// Package redactor removes policyholder PII from records and free text before
// anything is shared with a language model, and restores it on the way back to
// the user.
package redactor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/w-h-a/premind/retriever"
)

// Placeholder tokens substituted for PII-bearing record fields.
const (
	PlaceholderName  = "[NAME]"
	PlaceholderEmail = "[EMAIL]"
	PlaceholderPhone = "[PHONE]"
)

// Mapping relates placeholder tokens to the real values they replaced.
// Its lifetime is exactly one session.
type Mapping map[string]string

type fieldRule struct {
	field       string
	placeholder string
}

// pattern pairs a compiled regex with the placeholder it scrubs to.
type pattern struct {
	re          *regexp.Regexp
	placeholder string
}

type Redactor struct {
	fields   []fieldRule
	patterns []pattern
}

// Redact replaces the PII-bearing fields of rec with placeholder tokens and
// returns the redacted copy together with the placeholder-to-value mapping.
// A second pass scrubs email- and phone-shaped substrings out of every field
// value; those substitutions are one-way and never enter the mapping.
func (r *Redactor) Redact(rec retriever.Record) (retriever.Record, Mapping) {
	redacted := rec.Clone()
	mapping := Mapping{}

	for _, rule := range r.fields {
		value := redacted[rule.field]
		if value == "" {
			continue
		}

		mapping[rule.placeholder] = value
		redacted[rule.field] = rule.placeholder
	}

	for field, value := range redacted {
		redacted[field] = r.scrub(value)
	}

	return redacted, mapping
}

// RedactText substitutes every mapping value found in text with its
// placeholder, longest value first so that values containing shorter mapping
// values are covered whole.
func (r *Redactor) RedactText(text string, mapping Mapping) string {
	placeholders := make([]string, 0, len(mapping))
	for placeholder := range mapping {
		placeholders = append(placeholders, placeholder)
	}

	sort.Slice(placeholders, func(i, j int) bool {
		a, b := mapping[placeholders[i]], mapping[placeholders[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return placeholders[i] < placeholders[j]
	})

	out := text
	for _, placeholder := range placeholders {
		out = strings.ReplaceAll(out, mapping[placeholder], placeholder)
	}

	return out
}

// Reinsert replaces every placeholder in text with its real value. Only the
// display path calls this; reinserted text never leaves the process.
func (r *Redactor) Reinsert(text string, mapping Mapping) string {
	out := text
	for placeholder, real := range mapping {
		out = strings.ReplaceAll(out, placeholder, real)
	}

	return out
}

func (r *Redactor) scrub(value string) string {
	out := value
	for _, p := range r.patterns {
		out = p.re.ReplaceAllString(out, p.placeholder)
	}

	return out
}

// New compiles the scrub patterns and returns a ready Redactor.
func New() *Redactor {
	r := &Redactor{
		fields: []fieldRule{
			{field: retriever.FieldName, placeholder: PlaceholderName},
			{field: retriever.FieldEmail, placeholder: PlaceholderEmail},
			{field: retriever.FieldPhone, placeholder: PlaceholderPhone},
		},
	}

	specs := []struct {
		expr        string
		placeholder string
	}{
		{`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`, PlaceholderEmail},
		{`\+?\d[\d\- ]{6,}\d`, PlaceholderPhone},
	}

	for _, s := range specs {
		r.patterns = append(r.patterns, pattern{
			re:          regexp.MustCompile(s.expr),
			placeholder: s.placeholder,
		})
	}

	return r
}
