// Package api exposes a running session over HTTP: metrics, stats, single
// event lookup and remote inputs.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/nowbar/internal/app"
	"github.com/okian/nowbar/internal/domain/dedupe"
	"github.com/okian/nowbar/internal/domain/model"
)

// Session is the read side of a running session.
type Session interface {
	Stats() service.Stats
	Event(id model.EventID) (service.EventView, error)
}

// Enqueuer accepts inputs for the frame driver. Returns false on
// backpressure.
type Enqueuer interface {
	Enqueue(ctx context.Context, in model.Input) bool
}

// Clock stamps remote inputs with the song time they arrived at.
type Clock interface {
	Now() float64
}

// Server wires HTTP routes for a session.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	eventsHandler *EventsHandler
	inputsHandler *InputsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(session Session, q Enqueuer, clk Clock, d dedupe.Deduper, lanes int) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(session),
		eventsHandler: NewEventsHandler(session),
		inputsHandler: NewInputsHandler(q, clk, d, lanes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleGetEvent, "events"))
	mux.HandleFunc("/inputs", MetricsMiddleware(s.inputsHandler.HandlePostInput, "inputs"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
