// Package clock provides song-time sources for a session.
package clock

import (
	"sync"
	"time"
)

// Clock is the authoritative song time in seconds. Now is non-decreasing
// while playing and frozen while paused.
type Clock interface {
	Now() float64
	TogglePlayPause()
	Playing() bool
}

// Pausable is a wall-clock song timer with pause accounting. It starts
// paused at zero.
type Pausable struct {
	mu sync.RWMutex

	wall       func() time.Time
	startedAt  time.Time     // wall time of the last resume
	accumulate time.Duration // song time played before the last resume
	playing    bool
}

// PausableOption applies a configuration option to a Pausable clock.
type PausableOption func(*Pausable)

// WithWallClock replaces time.Now, mainly for tests.
func WithWallClock(now func() time.Time) PausableOption {
	return func(p *Pausable) {
		if now != nil {
			p.wall = now
		}
	}
}

// NewPausable creates a paused clock at song time zero.
func NewPausable(opts ...PausableOption) *Pausable {
	p := &Pausable{wall: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Now returns the elapsed song time.
func (p *Pausable) Now() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.elapsed().Seconds()
}

func (p *Pausable) elapsed() time.Duration {
	if !p.playing {
		return p.accumulate
	}
	return p.accumulate + p.wall().Sub(p.startedAt)
}

// TogglePlayPause resumes a paused clock or freezes a running one.
func (p *Pausable) TogglePlayPause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		p.accumulate = p.elapsed()
		p.playing = false
		return
	}
	p.startedAt = p.wall()
	p.playing = true
}

// Playing reports whether song time is advancing.
func (p *Pausable) Playing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.playing
}

// Manual is a clock moved by hand. Set and Advance work while paused so
// tests can script time directly; Now still reports the stored value.
type Manual struct {
	mu      sync.Mutex
	now     float64
	playing bool
}

// NewManual creates a playing manual clock at start.
func NewManual(start float64) *Manual {
	return &Manual{now: start, playing: true}
}

func (m *Manual) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t. Earlier values are ignored so time never runs
// backwards.
func (m *Manual) Set(t float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t > m.now {
		m.now = t
	}
}

// Advance moves the clock forward by d seconds when playing.
func (m *Manual) Advance(d float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playing && d > 0 {
		m.now += d
	}
}

func (m *Manual) TogglePlayPause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = !m.playing
}

func (m *Manual) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}
