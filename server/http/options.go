package http

import (
	"net/http"

	"github.com/w-h-a/premind/internal/logger"
)

type Option func(*Options)

type Options struct {
	Address    string
	Logger     *logger.Logger
	Middleware []func(h http.Handler) http.Handler
}

func WithAddress(address string) Option {
	return func(o *Options) {
		o.Address = address
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func WithMiddleware(ms ...func(h http.Handler) http.Handler) Option {
	return func(o *Options) {
		o.Middleware = append(o.Middleware, ms...)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Address: ":8080",
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
