package premind

import (
	"context"

	"github.com/w-h-a/premind/gateway"
	"github.com/w-h-a/premind/generator"
	"github.com/w-h-a/premind/internal/metrics"
	"github.com/w-h-a/premind/internal/service/conversation"
	"github.com/w-h-a/premind/internal/service/session"
	"github.com/w-h-a/premind/retriever"
)

// Turn is one line of a redacted transcript.
type Turn = conversation.Turn

var (
	// ErrNoRecord means the record store had nothing for the policy id.
	ErrNoRecord = conversation.ErrNoRecord

	// ErrSessionNotFound means the session id is unknown or already discarded.
	ErrSessionNotFound = session.ErrNotFound
)

// Assistant ties the record store, the redaction pipeline, and the model
// gateway together behind one conversational surface.
type Assistant struct {
	conversations *conversation.Service
	sessions      *session.Service
	metrics       *metrics.Metrics
}

// StartSession looks up the policyholder and opens a session, returning its id.
func (a *Assistant) StartSession(ctx context.Context, policyID string) (string, error) {
	id, _, err := a.sessions.CreateSession(ctx, policyID)
	if err != nil {
		return "", err
	}

	return id, nil
}

// Respond runs one conversation turn. The reply is user-facing text; ended
// reports whether the input closed the session, in which case the session is
// discarded.
func (a *Assistant) Respond(ctx context.Context, sessionID string, input string) (string, bool, error) {
	sess, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return "", false, err
	}

	reply, ended, err := a.conversations.Respond(ctx, sess, input)
	if ended {
		a.sessions.DeleteSession(ctx, sessionID)
	}

	return reply, ended, err
}

// History returns the session's redacted transcript.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]Turn, error) {
	sess, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return a.conversations.History(sess), nil
}

func (a *Assistant) ListSessionIds(ctx context.Context) []string {
	return a.sessions.ListSessionIds(ctx)
}

func (a *Assistant) DeleteSession(ctx context.Context, sessionID string) {
	a.sessions.DeleteSession(ctx, sessionID)
}

// Metrics exposes the assistant's runtime counters.
func (a *Assistant) Metrics() *metrics.Metrics {
	return a.metrics
}

// New wires an Assistant from a record store and an optional model provider.
// A nil generator leaves the gateway in canned-fallback mode.
func New(r retriever.Retriever, g generator.Generator) *Assistant {
	m := metrics.New()

	gw := gateway.NewGateway(
		gateway.WithGenerator(g),
		gateway.WithMetrics(m),
	)

	conversations := conversation.New(r, gw, m)

	return &Assistant{
		conversations: conversations,
		sessions:      session.New(conversations),
		metrics:       m,
	}
}
