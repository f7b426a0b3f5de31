// Package server exposes the card endpoints over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/naka-gawa/readme-stats/internal/config"
	"github.com/naka-gawa/readme-stats/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

// Cards renders every card kind from raw query parameters.
type Cards interface {
	StatsCard(ctx context.Context, q url.Values) usecase.Result
	TopLanguagesCard(ctx context.Context, q url.Values) usecase.Result
	RepoCard(ctx context.Context, q url.Values) usecase.Result
	WakatimeCard(ctx context.Context, q url.Values) usecase.Result
}

// Server represents the HTTP server and its dependencies.
type Server struct {
	router *chi.Mux
	config config.ServerConfig
	cards  Cards
	logger *zap.SugaredLogger
}

// New creates a Server with its routes mounted.
func New(cfg config.ServerConfig, cards Cards, logger *zap.SugaredLogger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		cards:  cards,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	if s.config.WriteTimeout > 0 {
		s.router.Use(chimiddleware.Timeout(s.config.WriteTimeout))
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleCard(s.cards.StatsCard))
		r.Get("/pin", s.handleCard(s.cards.RepoCard))
		r.Get("/top-langs", s.handleCard(s.cards.TopLanguagesCard))
		r.Get("/wakatime", s.handleCard(s.cards.WakatimeCard))
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleCard writes a card. Error cards are served with 200 like any other
// image so that README embeds show them.
func (s *Server) handleCard(render func(context.Context, url.Values) usecase.Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := render(r.Context(), r.URL.Query())
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", result.CacheControl())
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, result.SVG); err != nil {
			s.logger.Debugw("writing card failed", "error", err)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Start serves until ctx is cancelled, then gives in-flight requests
// shutdownTimeout to finish.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.GetAddress(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Infow("server starting", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		s.logger.Infow("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Infow("server stopped gracefully")
	}
	return nil
}
