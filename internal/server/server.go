// Package server exposes the piano controller over a JSON HTTP API for a
// browser front-end.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/store"
)

// Config holds listener settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
	ShutdownGrace  time.Duration
}

// DefaultConfig listens on :8080 and accepts any origin.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		AllowedOrigins: []string{"*"},
		ShutdownGrace:  5 * time.Second,
	}
}

// Server serializes API requests onto a single piano controller.
type Server struct {
	mu     sync.Mutex
	ctrl   *piano.Controller
	layout *piano.Layout
	events store.EventRepo // nil disables history endpoints

	router *mux.Router
}

// New builds a server. events may be nil.
func New(ctrl *piano.Controller, layout *piano.Layout, events store.EventRepo) *Server {
	if layout == nil {
		layout = piano.DefaultLayout()
	}
	s := &Server{ctrl: ctrl, layout: layout, events: events}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/keys", s.handleKeys).Methods(http.MethodGet)
	api.HandleFunc("/frequency/{note}", s.handleFrequency).Methods(http.MethodGet)
	api.HandleFunc("/exercise", s.handleGetExercise).Methods(http.MethodGet)
	api.HandleFunc("/exercise", s.handleNewExercise).Methods(http.MethodPost)
	api.HandleFunc("/exercise/press", s.handlePress).Methods(http.MethodPost)
	api.HandleFunc("/exercise/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/exercise/length", s.handleLength).Methods(http.MethodPost)
	api.HandleFunc("/key", s.handleSetKey).Methods(http.MethodPut)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	return r
}

// Handler returns the API wrapped in CORS handling for origins.
func (s *Server) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", cfg.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
