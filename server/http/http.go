// Package http serves the assistant over a small JSON API so multiple
// policyholders can hold concurrent sessions.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/w-h-a/premind"
	"github.com/w-h-a/premind/internal/logger"
)

type Server struct {
	options   Options
	assistant *premind.Assistant
	router    *mux.Router
	srv       *http.Server
	log       *logger.Logger
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/messages", s.handleMessage).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving requests until Stop is called or the listener fails.
func (s *Server) Run() error {
	if s.log != nil {
		s.log.Info("server is running", logrus.Fields{"address": s.options.Address})
	}

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.srv.Shutdown(shutdownCtx)
}

func NewServer(assistant *premind.Assistant, opts ...Option) *Server {
	options := NewOptions(opts...)

	s := &Server{
		options:   options,
		assistant: assistant,
		router:    mux.NewRouter(),
		log:       options.Logger,
	}

	for _, m := range options.Middleware {
		s.router.Use(mux.MiddlewareFunc(m))
	}

	s.routes()

	s.srv = &http.Server{
		Addr:    options.Address,
		Handler: s.router,
	}

	return s
}
