package intent

import (
	"strings"

	"github.com/w-h-a/premind/redactor"
	"github.com/w-h-a/premind/retriever"
)

// Reply carries the two renderings of a locally handled answer: one for the
// policyholder and one safe to keep in redacted history.
type Reply struct {
	User    string
	History string
}

type rule struct {
	keywords    []string
	field       string
	placeholder string // empty for factual rules
	prefix      string
}

// Handler answers simple factual and PII questions straight from the record so
// they never reach the language model.
type Handler struct {
	rules []rule
}

// Handle tries each rule in priority order against the raw input. It reports
// false when no rule matches with a non-empty backing value; the caller then
// forwards the turn to the model path.
func (h *Handler) Handle(input string, rec retriever.Record, mapping redactor.Mapping) (Reply, bool) {
	lowered := strings.ToLower(input)

	for _, r := range h.rules {
		if !containsAny(lowered, r.keywords) {
			continue
		}

		if r.placeholder != "" {
			real := mapping[r.placeholder]
			if real == "" {
				real = rec.Get(r.field)
			}
			if real == "" {
				continue
			}

			return Reply{
				User:    r.prefix + real,
				History: r.prefix + r.placeholder,
			}, true
		}

		value := rec.Get(r.field)
		if value == "" {
			continue
		}

		return Reply{
			User:    r.prefix + value,
			History: r.prefix + value,
		}, true
	}

	return Reply{}, false
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}

	return false
}

func New() *Handler {
	return &Handler{
		rules: []rule{
			{
				keywords:    []string{"email", "e-mail"},
				field:       retriever.FieldEmail,
				placeholder: redactor.PlaceholderEmail,
				prefix:      "Your registered email is: ",
			},
			{
				keywords:    []string{"phone", "mobile", "contact number"},
				field:       retriever.FieldPhone,
				placeholder: redactor.PlaceholderPhone,
				prefix:      "Your registered phone number is: ",
			},
			{
				keywords:    []string{"name"},
				field:       retriever.FieldName,
				placeholder: redactor.PlaceholderName,
				prefix:      "Your name on record is: ",
			},
			{
				keywords: []string{"due", "due date"},
				field:    retriever.FieldDueDate,
				prefix:   "Your premium due date is: ",
			},
			{
				keywords: []string{"premium", "amount"},
				field:    retriever.FieldPremiumAmount,
				prefix:   "Your premium amount is: ",
			},
		},
	}
}
