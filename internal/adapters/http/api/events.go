package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/nowbar/internal/app"
	"github.com/okian/nowbar/internal/domain/catalog"
	"github.com/okian/nowbar/internal/domain/model"
)

// EventLookup returns one event with its status.
type EventLookup interface {
	Event(id model.EventID) (service.EventView, error)
}

// EventsHandler handles single event lookups.
type EventsHandler struct {
	lookup EventLookup
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(lookup EventLookup) *EventsHandler {
	return &EventsHandler{lookup: lookup}
}

// HandleGetEvent handles GET /events/{id} requests.
func (h *EventsHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/events/")
	id, err := strconv.Atoi(raw)
	if raw == "" || err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: event id %q", ErrBadRequest, raw))
		return
	}
	view, err := h.lookup.Event(model.EventID(id))
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownEvent) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
