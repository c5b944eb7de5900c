package canned

import (
	"context"
	"strings"

	"github.com/w-h-a/premind/generator"
)

// Fixed replies for the unconfigured mode. Simple keyword matching on the
// prompt picks between them.
const (
	ReminderReply = "Hello, this is a premium payment reminder: your premium is due soon. Please arrange payment or contact us for help."
	GreetingReply = "Hello, I'm your virtual insurance assistant. How can I help you today?"
)

type cannedGenerator struct {
	options generator.Options
}

func (g *cannedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	lowered := strings.ToLower(prompt)

	if strings.Contains(lowered, "remind") || strings.Contains(lowered, "due date") {
		return ReminderReply, nil
	}

	return GreetingReply, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	return &cannedGenerator{
		options: generator.NewOptions(opts...),
	}
}
