package gateway

import (
	"context"

	"github.com/w-h-a/premind/generator"
	"github.com/w-h-a/premind/internal/metrics"
)

type Option func(*Options)

type Options struct {
	Generator generator.Generator
	Fallback  generator.Generator
	Metrics   *metrics.Metrics
	Context   context.Context
}

// WithGenerator sets the primary model provider. Without one the gateway
// serves every completion from the fallback.
func WithGenerator(g generator.Generator) Option {
	return func(o *Options) {
		o.Generator = g
	}
}

func WithFallback(g generator.Generator) Option {
	return func(o *Options) {
		o.Fallback = g
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
