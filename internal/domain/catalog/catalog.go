// Package catalog holds the time-indexed events of a session and the
// per-event judgment status.
//
// Events are read-only after construction. Statuses move one way, from
// pending to exactly one terminal state; any other move is a logic error.
package catalog

import (
	"fmt"
	"math"

	"github.com/okian/nowbar/internal/domain/model"
)

// GemRecord is a parsed (timestamp, lane) tuple.
type GemRecord struct {
	Timestamp float64
	Lane      int
}

// MarkerRecord is a parsed downbeat timestamp.
type MarkerRecord struct {
	Timestamp float64
}

// Rejection describes an input record that did not make it into the catalog.
type Rejection struct {
	Kind  model.Kind
	Index int // position in the input sequence of that kind
	Err   error
}

// Counts tallies statuses for one kind.
type Counts struct {
	Pending int
	Hit     int
	Miss    int
	Passed  int
}

// Total returns the number of counted events.
func (c Counts) Total() int { return c.Pending + c.Hit + c.Miss + c.Passed }

// Catalog owns every TimedEvent and EventStatus of a session.
type Catalog struct {
	events []model.TimedEvent
	status []model.Status
	counts map[model.Kind]*Counts
	lanes  int
}

// New builds a catalog from gem and marker records. Gems receive ids in input
// order first, then markers. Malformed records are skipped and reported.
func New(gems []GemRecord, markers []MarkerRecord, opts ...Option) (*Catalog, []Rejection) {
	c := &Catalog{
		counts: map[model.Kind]*Counts{
			model.KindGem:      {},
			model.KindDownbeat: {},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	var rejected []Rejection
	c.events = make([]model.TimedEvent, 0, len(gems)+len(markers))

	for i, g := range gems {
		if err := c.validate(g.Timestamp, g.Lane, true); err != nil {
			rejected = append(rejected, Rejection{Kind: model.KindGem, Index: i, Err: err})
			continue
		}
		c.add(model.KindGem, g.Timestamp, g.Lane)
	}
	for i, m := range markers {
		if err := c.validate(m.Timestamp, model.NoLane, false); err != nil {
			rejected = append(rejected, Rejection{Kind: model.KindDownbeat, Index: i, Err: err})
			continue
		}
		c.add(model.KindDownbeat, m.Timestamp, model.NoLane)
	}

	c.status = make([]model.Status, len(c.events))
	return c, rejected
}

func (c *Catalog) add(kind model.Kind, ts float64, lane int) {
	c.events = append(c.events, model.TimedEvent{
		ID:        model.EventID(len(c.events)),
		Kind:      kind,
		Timestamp: ts,
		Lane:      lane,
	})
	c.counts[kind].Pending++
}

func (c *Catalog) validate(ts float64, lane int, laned bool) error {
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return fmt.Errorf("%w: timestamp %v is not finite", ErrInvalidRecord, ts)
	}
	if ts < 0 {
		return fmt.Errorf("%w: timestamp %v is negative", ErrInvalidRecord, ts)
	}
	if !laned {
		return nil
	}
	if lane < 1 {
		return fmt.Errorf("%w: lane %d must be positive", ErrInvalidRecord, lane)
	}
	if c.lanes > 0 && lane > c.lanes {
		return fmt.Errorf("%w: lane %d exceeds %d lanes", ErrInvalidRecord, lane, c.lanes)
	}
	return nil
}

// Len returns the number of events.
func (c *Catalog) Len() int { return len(c.events) }

// Events returns a copy of every event in id order.
func (c *Catalog) Events() []model.TimedEvent {
	out := make([]model.TimedEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Event returns the event with the given id.
func (c *Catalog) Event(id model.EventID) (model.TimedEvent, error) {
	if !c.inRange(id) {
		return model.TimedEvent{}, fmt.Errorf("%w: %d", ErrUnknownEvent, id)
	}
	return c.events[id], nil
}

// Status returns the current status of an event.
func (c *Catalog) Status(id model.EventID) (model.Status, error) {
	if !c.inRange(id) {
		return model.StatusPending, fmt.Errorf("%w: %d", ErrUnknownEvent, id)
	}
	return c.status[id], nil
}

// Transition moves a pending event into Hit, Miss or Passed.
func (c *Catalog) Transition(id model.EventID, to model.Status) error {
	if !c.inRange(id) {
		return fmt.Errorf("%w: %d", ErrUnknownEvent, id)
	}
	counts := c.counts[c.events[id].Kind]
	var tally *int
	switch to {
	case model.StatusHit:
		tally = &counts.Hit
	case model.StatusMiss:
		tally = &counts.Miss
	case model.StatusPassed:
		tally = &counts.Passed
	default:
		return fmt.Errorf("%w: event %d to %s", ErrIllegalTransition, id, to)
	}
	from := c.status[id]
	if from.Terminal() {
		return fmt.Errorf("%w: event %d already %s, refused %s", ErrIllegalTransition, id, from, to)
	}

	c.status[id] = to
	counts.Pending--
	*tally++
	return nil
}

// Counts returns the status tally for a kind.
func (c *Catalog) Counts(kind model.Kind) Counts {
	if counts, ok := c.counts[kind]; ok {
		return *counts
	}
	return Counts{}
}

// Resolved reports whether every event has reached a terminal status.
func (c *Catalog) Resolved() bool {
	for _, counts := range c.counts {
		if counts.Pending > 0 {
			return false
		}
	}
	return true
}

func (c *Catalog) inRange(id model.EventID) bool {
	return id >= 0 && int(id) < len(c.events)
}
