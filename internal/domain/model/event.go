// Package model contains domain models passed between layers.
package model

import "fmt"

// EventID addresses an event by its position in the catalog.
type EventID int

// Kind distinguishes judged gems from cue-only markers.
type Kind int

const (
	// KindGem is a lane-tagged event the player must strike.
	KindGem Kind = iota
	// KindDownbeat is an undifferentiated rhythm cue; never judged.
	KindDownbeat
)

func (k Kind) String() string {
	switch k {
	case KindGem:
		return "gem"
	case KindDownbeat:
		return "downbeat"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// NoLane marks events that are not bound to a lane.
const NoLane = 0

// TimedEvent is an immutable time-stamped catalog record.
type TimedEvent struct {
	ID        EventID
	Kind      Kind
	Timestamp float64 // song time in seconds
	Lane      int     // 1-based lane for gems, NoLane for downbeats
}

// HasLane reports whether the event is lane-tagged.
func (e TimedEvent) HasLane() bool { return e.Lane != NoLane }

// Status is the judgment state of an event.
type Status int

const (
	StatusPending Status = iota
	StatusHit
	StatusMiss
	StatusPassed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusHit:
		return "hit"
	case StatusMiss:
		return "miss"
	case StatusPassed:
		return "passed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool { return s != StatusPending }
