package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/w-h-a/premind/generator/canned"
	"github.com/w-h-a/premind/internal/metrics"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.reply, g.err
}

func TestCompletePassesThroughProviderReply(t *testing.T) {
	g := NewGateway(WithGenerator(&stubGenerator{reply: "happy to help"}))

	if got := g.Complete(context.Background(), "anything"); got != "happy to help" {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestCompleteWrapsProviderError(t *testing.T) {
	g := NewGateway(WithGenerator(&stubGenerator{err: errors.New("quota exceeded")}))

	got := g.Complete(context.Background(), "anything")
	if got != "[model call failed: quota exceeded]" {
		t.Errorf("expected a bracketed diagnostic, got %q", got)
	}
}

func TestCompleteUnconfiguredFallsBackToCanned(t *testing.T) {
	g := NewGateway()

	got := g.Complete(context.Background(), "a reminder about the due date")
	if got != canned.ReminderReply {
		t.Errorf("expected the fixed reminder reply, got %q", got)
	}

	got = g.Complete(context.Background(), "hello")
	if got != canned.GreetingReply {
		t.Errorf("expected the fixed greeting, got %q", got)
	}
}

func TestCompleteCountsCallsFailuresAndFallbacks(t *testing.T) {
	m := metrics.New()

	unconfigured := NewGateway(WithMetrics(m))
	unconfigured.Complete(context.Background(), "hello")

	failing := NewGateway(WithMetrics(m), WithGenerator(&stubGenerator{err: errors.New("boom")}))
	failing.Complete(context.Background(), "hello")

	if got := m.GatewayCalls.Load(); got != 2 {
		t.Errorf("expected 2 gateway calls, got %d", got)
	}
	if got := m.GatewayFallbacks.Load(); got != 1 {
		t.Errorf("expected 1 fallback, got %d", got)
	}
	if got := m.GatewayFailures.Load(); got != 1 {
		t.Errorf("expected 1 failure, got %d", got)
	}
}
