package retriever

import (
	"fmt"
	"sort"
	"strings"
)

const (
	FieldPolicyID      = "policy_id"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldDueDate       = "due_date"
	FieldPremiumAmount = "premium_amount"
	FieldNotes         = "notes"
)

// canonicalFields is the column order of the policyholder schema. Fields lists
// these first so prompts and transcripts render identically across runs.
var canonicalFields = []string{
	FieldPolicyID,
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldDueDate,
	FieldPremiumAmount,
	FieldNotes,
}

// Record is one policyholder row. Missing fields read as empty strings.
type Record map[string]string

func (r Record) Get(field string) string {
	return r[field]
}

func (r Record) PolicyID() string {
	return r[FieldPolicyID]
}

// Fields returns the record's field names in deterministic order: canonical
// schema fields that are present first, then any extra columns sorted.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	known := make(map[string]bool, len(canonicalFields))

	for _, f := range canonicalFields {
		known[f] = true
		if _, ok := r[f]; ok {
			fields = append(fields, f)
		}
	}

	extras := make([]string, 0)
	for f := range r {
		if !known[f] {
			extras = append(extras, f)
		}
	}
	sort.Strings(extras)

	return append(fields, extras...)
}

func (r Record) Clone() Record {
	cpy := make(Record, len(r))
	for k, v := range r {
		cpy[k] = v
	}
	return cpy
}

// Document renders the row as the text the similarity index is built over:
// the policy id line plus the non-empty descriptive fields.
func (r Record) Document() string {
	parts := []string{fmt.Sprintf("PolicyID: %s", r[FieldPolicyID])}
	for _, f := range []string{FieldName, FieldDueDate, FieldPremiumAmount, FieldNotes} {
		if v := r[f]; len(v) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", f, v))
		}
	}
	return strings.Join(parts, "\n")
}
