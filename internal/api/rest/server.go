// Package rest provides the remote-control HTTP API.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	zlog "github.com/rs/zerolog/log"

	"playdeck/internal/app/notification"
	"playdeck/internal/app/player"
	"playdeck/internal/domain/track"
	"playdeck/internal/ui"
)

// Player is the subset of controller operations the API forwards to.
type Player interface {
	Select(i int)
	Toggle()
	Next()
	Previous()
	Seek(seconds float64)
	Snapshot() player.State
	Tracks() track.Tracklist
}

// Server serves player state and transport controls over HTTP.
// It mutates nothing itself; every request is forwarded to the controller
// and answered with a freshly derived view model.
type Server struct {
	player Player
	events *notification.Manager
	labels ui.Labels

	httpServer *http.Server
}

// NewServer creates a new API server.
func NewServer(addr string, p Player, events *notification.Manager, labels ui.Labels) *Server {
	s := &Server{
		player: p,
		events: events,
		labels: labels,
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/control/{action}", s.handleControl).Methods(http.MethodPost)
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe serves until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	zlog.Info().Msgf("api: listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// viewModel derives the current view model.
func (s *Server) viewModel() ui.ViewModel {
	return ui.Build(s.labels, s.player.Tracks(), s.player.Snapshot())
}

// handleState returns the current view model.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.viewModel())
}

// controlRequest is the optional body for select and seek actions.
type controlRequest struct {
	Index    int     `json:"index"`
	Position float64 `json:"position"`
}

// handleControl forwards a transport action to the controller.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	action := mux.Vars(r)["action"]

	switch action {
	case "play-pause":
		s.player.Toggle()
	case "next":
		s.player.Next()
	case "previous":
		s.player.Previous()
	case "select":
		var req controlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if !s.player.Tracks().Contains(req.Index) {
			http.Error(w, "index out of range", http.StatusBadRequest)
			return
		}
		s.player.Select(req.Index)
	case "seek":
		var req controlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		s.player.Seek(req.Position)
	default:
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}

	writeJSON(w, s.viewModel())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Warn().Msgf("api: failed to encode response: %v", err)
	}
}
