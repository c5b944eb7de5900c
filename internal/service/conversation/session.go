package conversation

import (
	"github.com/w-h-a/premind/redactor"
	"github.com/w-h-a/premind/retriever"
)

type State int

const (
	StateAwaitingInput State = iota
	StateDispatching
	StateEnded
)

const (
	SpeakerPolicyholder = "Policyholder"
	SpeakerAgent        = "Agent"
)

// Turn is one line of conversation history. Text is always the redacted form;
// raw PII never enters a Turn.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Session binds one policyholder record to its redaction mapping and history
// for the duration of an interaction. Nothing in it is persisted.
type Session struct {
	policyID string
	record   retriever.Record
	redacted retriever.Record
	mapping  redactor.Mapping
	history  []Turn
	state    State
}

func (s *Session) PolicyID() string {
	return s.policyID
}

func (s *Session) State() State {
	return s.state
}
