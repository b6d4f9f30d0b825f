package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/nowbar/internal/domain/dedupe"
	"github.com/okian/nowbar/internal/domain/model"
)

// inputRequest is the body of POST /inputs.
type inputRequest struct {
	InputID string `json:"input_id"`
	Kind    string `json:"kind"`
	Lane    int    `json:"lane"`
}

var remoteKinds = map[string]model.InputKind{ //nolint:gochecknoglobals // lookup table
	model.InputLanePress.String():   model.InputLanePress,
	model.InputLaneRelease.String(): model.InputLaneRelease,
	model.InputTogglePause.String(): model.InputTogglePause,
}

func (r inputRequest) toInput(lanes int) (model.Input, error) {
	if strings.TrimSpace(r.InputID) == "" {
		return model.Input{}, errors.New("missing input_id")
	}
	kind, ok := remoteKinds[r.Kind]
	if !ok {
		return model.Input{}, fmt.Errorf("unsupported kind %q", r.Kind)
	}
	in := model.Input{Kind: kind}
	if kind == model.InputLanePress || kind == model.InputLaneRelease {
		if r.Lane < 1 || r.Lane > lanes {
			return model.Input{}, fmt.Errorf("lane %d outside 1..%d", r.Lane, lanes)
		}
		in.Lane = r.Lane
	}
	return in, nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// InputsHandler accepts remote inputs.
type InputsHandler struct {
	queue Enqueuer
	clock Clock
	dedup dedupe.Deduper
	lanes int
}

// NewInputsHandler creates a new inputs handler.
func NewInputsHandler(q Enqueuer, clk Clock, d dedupe.Deduper, lanes int) *InputsHandler {
	return &InputsHandler{queue: q, clock: clk, dedup: d, lanes: lanes}
}

// HandlePostInput handles POST /inputs requests. Accepted inputs carry the
// song time of arrival. A repeated input_id is acknowledged without being
// queued again.
func (h *InputsHandler) HandlePostInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	in, err := req.toInput(h.lanes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	if h.dedup.SeenAndRecord(r.Context(), req.InputID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	in.At = h.clock.Now()
	if !h.queue.Enqueue(r.Context(), in) {
		h.dedup.Unrecord(r.Context(), req.InputID)
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
