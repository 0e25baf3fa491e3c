// Package server expone el journal como una API JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alejandrodnm/polyjournal/internal/journal"
)

// Config es la configuración del servidor HTTP.
type Config struct {
	Addr          string
	DefaultWallet string // usada cuando el request no trae ?wallet=
}

// Server es el servidor HTTP de la API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New registra las rutas sobre un ServeMux y arma la cadena de middleware.
func New(cfg Config, svc *journal.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{svc: svc, defaultWallet: cfg.DefaultWallet, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /api/dashboard", h.dashboard)
	mux.HandleFunc("GET /api/trades", h.trades)
	mux.HandleFunc("GET /api/markets", h.markets)
	mux.HandleFunc("PUT /api/trades/{id}/note", h.saveNote)
	mux.HandleFunc("GET /api/trades/{id}/reviews", h.reviews)
	mux.HandleFunc("POST /api/review", h.review)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      logging(logger)(mux),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second, // la revisión del modelo puede tardar
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Handler devuelve el handler raíz, para tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start escucha hasta que el servidor se cierre.
func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Serve atiende en un listener ya abierto.
func (s *Server) Serve(l net.Listener) error {
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Serve: %w", err)
	}
	return nil
}

// Shutdown espera a los requests en curso dentro del deadline de ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}
