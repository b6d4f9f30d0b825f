// Package activeset tracks which events are eligible for rendering.
//
// Membership is recomputed from a pure predicate on every update and keyed by
// event id: an event is active when its timestamp lies in
// [now-lookbehind, now+lookahead] and the mapper places it on screen. The
// spawned and retired ids are the difference from the previous update.
// Membership is independent of judgment status.
package activeset

import (
	"fmt"
	"sort"

	"github.com/okian/nowbar/internal/domain/mapper"
	"github.com/okian/nowbar/internal/domain/model"
)

// Entry is one active event with its position for this frame.
type Entry struct {
	Event     model.TimedEvent
	Placement mapper.Placement
}

// Diff lists the membership changes made by an update, in id order.
type Diff struct {
	Spawned []model.EventID
	Retired []model.EventID
}

// Empty reports whether the update changed nothing.
func (d Diff) Empty() bool { return len(d.Spawned) == 0 && len(d.Retired) == 0 }

// InWindow is the time half of the active predicate.
func InWindow(timestamp, now, lookahead, lookbehind float64) bool {
	return now-lookbehind <= timestamp && timestamp <= now+lookahead
}

// Manager maintains the active set for one catalog.
type Manager struct {
	events     []model.TimedEvent
	byTime     []int // indices into events ordered by timestamp, then id
	mapper     *mapper.Mapper
	lookahead  float64
	lookbehind float64

	active  map[model.EventID]mapper.Placement
	ordered []model.EventID
}

// New creates a manager over events, which must be in id order as returned
// by Catalog.Events and must not be mutated afterwards.
func New(events []model.TimedEvent, m *mapper.Mapper, lookbehind float64) (*Manager, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil mapper", ErrInvalidWindow)
	}
	if !(lookbehind >= 0) {
		return nil, fmt.Errorf("%w: lookbehind %v", ErrInvalidWindow, lookbehind)
	}

	byTime := make([]int, len(events))
	for i := range byTime {
		byTime[i] = i
	}
	sort.SliceStable(byTime, func(a, b int) bool {
		return events[byTime[a]].Timestamp < events[byTime[b]].Timestamp
	})

	return &Manager{
		events:     events,
		byTime:     byTime,
		mapper:     m,
		lookahead:  m.Lookahead(),
		lookbehind: lookbehind,
		active:     make(map[model.EventID]mapper.Placement),
	}, nil
}

// Update recomputes membership for now on a viewport of the given height.
// Calling it again with the same arguments yields an empty Diff.
func (s *Manager) Update(now, height float64) Diff {
	lo := now - s.lookbehind
	hi := now + s.lookahead

	start := sort.Search(len(s.byTime), func(i int) bool {
		return s.events[s.byTime[i]].Timestamp >= lo
	})

	next := make(map[model.EventID]mapper.Placement, len(s.active))
	for _, idx := range s.byTime[start:] {
		e := s.events[idx]
		if e.Timestamp > hi {
			break
		}
		p := s.mapper.Map(e.Timestamp, now, height)
		if !p.Visible {
			continue
		}
		next[e.ID] = p
	}

	var diff Diff
	for id := range next {
		if _, ok := s.active[id]; !ok {
			diff.Spawned = append(diff.Spawned, id)
		}
	}
	for id := range s.active {
		if _, ok := next[id]; !ok {
			diff.Retired = append(diff.Retired, id)
		}
	}
	sortIDs(diff.Spawned)
	sortIDs(diff.Retired)

	s.active = next
	s.ordered = s.ordered[:0]
	for id := range next {
		s.ordered = append(s.ordered, id)
	}
	sortIDs(s.ordered)

	return diff
}

// Active returns the active entries in id order.
func (s *Manager) Active() []Entry {
	out := make([]Entry, 0, len(s.ordered))
	for _, id := range s.ordered {
		out = append(out, Entry{Event: s.events[id], Placement: s.active[id]})
	}
	return out
}

// IDs returns the active ids in ascending order.
func (s *Manager) IDs() []model.EventID {
	out := make([]model.EventID, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Contains reports whether id is active.
func (s *Manager) Contains(id model.EventID) bool {
	_, ok := s.active[id]
	return ok
}

// Len returns the number of active events.
func (s *Manager) Len() int { return len(s.active) }

// CountByKind returns the number of active events of kind.
func (s *Manager) CountByKind(kind model.Kind) int {
	n := 0
	for id := range s.active {
		if s.events[id].Kind == kind {
			n++
		}
	}
	return n
}

func sortIDs(ids []model.EventID) {
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
}
