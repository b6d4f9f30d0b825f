// Package autoplay plays a chart headlessly with a scripted player and
// checks the session's bookkeeping afterwards.
package autoplay

import (
	"fmt"
	"time"
)

// Config controls how the scripted player behaves.
type Config struct {
	Seed          int64   // rng seed; equal seeds replay identically
	Jitter        float64 // max absolute press offset in seconds
	WrongLaneRate float64 // probability a press goes to the neighbouring lane
	SkipRate      float64 // probability a gem is not pressed at all
	Height        float64 // viewport height handed to the session
	Verbose       bool
}

// DefaultConfig returns a player that mostly hits.
func DefaultConfig() Config {
	return Config{
		Seed:          1,
		Jitter:        0.04,
		WrongLaneRate: 0.05,
		SkipRate:      0.05,
		Height:        600,
	}
}

// Validate checks rates and ranges.
func (c Config) Validate() error {
	switch {
	case c.Jitter < 0:
		return fmt.Errorf("%w: jitter must be >= 0, got %v", ErrInvalidConfig, c.Jitter)
	case c.WrongLaneRate < 0 || c.WrongLaneRate > 1:
		return fmt.Errorf("%w: wrong lane rate must be within [0, 1], got %v", ErrInvalidConfig, c.WrongLaneRate)
	case c.SkipRate < 0 || c.SkipRate > 1:
		return fmt.Errorf("%w: skip rate must be within [0, 1], got %v", ErrInvalidConfig, c.SkipRate)
	case !(c.Height > 0):
		return fmt.Errorf("%w: height must be > 0, got %v", ErrInvalidConfig, c.Height)
	}
	return nil
}

// Report is the outcome of one run.
type Report struct {
	RunID     string
	SessionID string

	Planned int // presses scheduled
	Wrong   int // presses aimed at the wrong lane
	Skipped int // gems left alone

	Gems       int
	Pending    int
	Hits       int
	Misses     int
	Passes     int
	Whiffs     int
	Score      int
	MaxCombo   int
	Recomputed int // score rebuilt from notifications

	Frames   int
	SongTime float64
	Duration time.Duration
}
