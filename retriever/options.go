package retriever

import (
	"context"

	"github.com/w-h-a/premind/embedder"
)

type Option func(*Options)

type Options struct {
	Location string
	Embedder embedder.Embedder
	ApiKey   string
	Model    string
	Context  context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithEmbedder(embedder embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = embedder
	}
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
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

type LookupOption func(*LookupOptions)

type LookupOptions struct {
	Limit   int
	Context context.Context
}

func WithLookupLimit(limit int) LookupOption {
	return func(o *LookupOptions) {
		o.Limit = limit
	}
}

func NewLookupOptions(opts ...LookupOption) LookupOptions {
	options := LookupOptions{
		Limit:   2,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
