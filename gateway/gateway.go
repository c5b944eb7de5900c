package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/w-h-a/premind/generator/canned"
)

// Gateway is the single outbound boundary to a language model.
type Gateway interface {
	// Complete never fails the caller: provider errors come back as a
	// bracketed diagnostic reply, and a gateway with no configured provider
	// falls back to canned replies.
	Complete(ctx context.Context, prompt string) string
}

type modelGateway struct {
	options Options
}

func (g *modelGateway) Complete(ctx context.Context, prompt string) string {
	if g.options.Metrics != nil {
		g.options.Metrics.GatewayCalls.Add(1)
	}

	gen := g.options.Generator
	if gen == nil {
		if g.options.Metrics != nil {
			g.options.Metrics.GatewayFallbacks.Add(1)
		}
		gen = g.options.Fallback
	}

	reply, err := gen.Generate(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "model call failed", "error", err)
		if g.options.Metrics != nil {
			g.options.Metrics.GatewayFailures.Add(1)
		}
		return fmt.Sprintf("[model call failed: %v]", err)
	}

	return reply
}

func NewGateway(opts ...Option) Gateway {
	options := NewOptions(opts...)

	if options.Fallback == nil {
		options.Fallback = canned.NewGenerator()
	}

	return &modelGateway{
		options: options,
	}
}
