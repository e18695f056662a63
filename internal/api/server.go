package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quillworks/polishd/internal/events"
	"github.com/quillworks/polishd/internal/polisher"
	"github.com/quillworks/polishd/internal/store"
)

// PolishService runs one request through the polish pipeline.
type PolishService interface {
	Polish(ctx context.Context, req polisher.Request) (*polisher.Outcome, error)
}

// Recorder appends interaction records. Write-once; the count feeds the
// status endpoint.
type Recorder interface {
	WriteInteraction(ctx context.Context, rec store.InteractionRecord) (int64, error)
	CountInteractions(ctx context.Context) (int64, error)
}

// EventSink fans out recorded interactions. Optional; nil disables it.
type EventSink interface {
	InteractionRecorded(evt events.InteractionEvent) error
}

type Server struct {
	router   *chi.Mux
	port     int
	polisher PolishService
	store    Recorder
	events   EventSink
	logger   *slog.Logger
}

func NewServer(port int, apiToken string, svc PolishService, rec Recorder, sink EventSink, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		polisher: svc,
		store:    rec,
		events:   sink,
		logger:   logger,
	}

	router.Get("/", s.index)
	router.Get("/health", s.health)
	router.Get("/api/v1/polishd/status", s.status)

	router.Route("/api/v1/polish", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/", s.polish)
		r.Post("/download", s.download)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"service": "polishd",
		"status":  "ok",
	}
	if s.store != nil {
		if n, err := s.store.CountInteractions(r.Context()); err == nil {
			resp["records"] = n
		} else {
			s.logger.Warn("failed to count interactions", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
