package conversation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/w-h-a/premind/gateway"
	"github.com/w-h-a/premind/intent"
	"github.com/w-h-a/premind/internal/metrics"
	"github.com/w-h-a/premind/redactor"
	"github.com/w-h-a/premind/retriever"
)

var ErrNoRecord = errors.New("no record found")

type Service struct {
	retriever retriever.Retriever
	redactor  *redactor.Redactor
	intents   *intent.Handler
	gateway   gateway.Gateway
	metrics   *metrics.Metrics
}

// StartSession looks up the policyholder and prepares the redacted record and
// mapping the rest of the conversation runs on.
func (s *Service) StartSession(ctx context.Context, policyID string) (*Session, error) {
	records, err := s.retriever.Lookup(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoRecord
	}

	record := records[0]
	redacted, mapping := s.redactor.Redact(record)

	if s.metrics != nil {
		s.metrics.SessionsStarted.Add(1)
	}

	return &Session{
		policyID: policyID,
		record:   record,
		redacted: redacted,
		mapping:  mapping,
		state:    StateAwaitingInput,
	}, nil
}

// Respond runs one turn. The returned reply is the user-facing rendering with
// real PII reinserted; ended reports whether the input closed the session.
func (s *Service) Respond(ctx context.Context, session *Session, input string) (string, bool, error) {
	if session == nil {
		return "", false, errors.New("session is required")
	}

	if session.state == StateEnded {
		return "", true, errors.New("session has ended")
	}

	// 1. Exit commands end the session without touching history.
	if isExit(input) {
		session.state = StateEnded
		return "", true, nil
	}

	if len(strings.TrimSpace(input)) == 0 {
		return "", false, errors.New("user input is required")
	}

	session.state = StateDispatching

	if s.metrics != nil {
		s.metrics.Turns.Add(1)
	}

	// 2. Try the local intents against the raw input.
	reply, handled := s.intents.Handle(input, session.record, session.mapping)

	// 3. Redact the raw input before it enters history.
	redactedInput := s.redactor.RedactText(input, session.mapping)

	session.history = append(session.history, Turn{
		Speaker: SpeakerPolicyholder,
		Text:    redactedInput,
	})

	if s.metrics != nil {
		s.metrics.PlaceholdersReplaced.Add(countPlaceholders(redactedInput, session.mapping))
	}

	// 4. Locally handled turns never reach the model.
	if handled {
		if s.metrics != nil {
			s.metrics.HandledLocally.Add(1)
		}

		session.history = append(session.history, Turn{
			Speaker: SpeakerAgent,
			Text:    reply.History,
		})

		session.state = StateAwaitingInput

		return reply.User, false, nil
	}

	// 5. Forward the redacted prompt. The gateway never fails the turn.
	prompt := s.buildPrompt(session)

	modelReply := s.gateway.Complete(ctx, prompt)

	if s.metrics != nil {
		s.metrics.PlaceholdersReinserted.Add(countPlaceholders(modelReply, session.mapping))
	}

	// 6. Reinsert PII for display only; history keeps the redacted reply.
	display := s.redactor.Reinsert(modelReply, session.mapping)

	session.history = append(session.history, Turn{
		Speaker: SpeakerAgent,
		Text:    s.redactor.RedactText(modelReply, session.mapping),
	})

	session.state = StateAwaitingInput

	return display, false, nil
}

// History returns a copy of the session's redacted transcript.
func (s *Service) History(session *Session) []Turn {
	if session == nil {
		return nil
	}

	cpy := make([]Turn, len(session.history))
	copy(cpy, session.history)

	return cpy
}

func (s *Service) buildPrompt(session *Session) string {
	var sb bytes.Buffer

	// 1. Fixed instructions: the model must leave placeholders alone.
	sb.WriteString("You are a polite insurance customer-service agent whose task is to remind policyholders about premium payments.\n")
	sb.WriteString("Do NOT attempt to infer or guess personal information. Placeholders like [NAME], [PHONE], [EMAIL] will be kept as placeholders.\n")
	sb.WriteString("Use friendly tone and confirm payment details when asked.\n")
	sb.WriteString("---\n")

	// 2. The redacted record, never the raw one.
	sb.WriteString("Policy holder information:\n")
	for _, field := range session.redacted.Fields() {
		sb.WriteString(fmt.Sprintf("%s: %s\n", field, session.redacted.Get(field)))
	}
	sb.WriteString("---\n")

	// 3. The redacted history.
	if len(session.history) > 0 {
		sb.WriteString("Conversation history:\n")
		for _, turn := range session.history {
			sb.WriteString(fmt.Sprintf("%s: %s\n", turn.Speaker, turn.Text))
		}
	}

	sb.WriteString("Agent:")

	return sb.String()
}

func isExit(input string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	return trimmed == "exit" || trimmed == "quit"
}

func countPlaceholders(text string, mapping redactor.Mapping) int64 {
	var n int64
	for placeholder := range mapping {
		n += int64(strings.Count(text, placeholder))
	}

	return n
}

func New(r retriever.Retriever, g gateway.Gateway, m *metrics.Metrics) *Service {
	return &Service{
		retriever: r,
		redactor:  redactor.New(),
		intents:   intent.New(),
		gateway:   g,
		metrics:   m,
	}
}
