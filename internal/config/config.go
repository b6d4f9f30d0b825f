// Package config defines session configuration and its loading hooks.
//
// Conventions:
// - New() returns defaults matching the original game tuning.
// - Load(ctx) layers defaults, an optional YAML file and NOWBAR_ env vars.
// - Validate() reports configuration errors wrapping ErrInvalidConfig.
package config

import (
	"fmt"
)

// Config contains process and session configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile receives log output while the terminal owns stdout.
	LogFile string `koanf:"log_file"`

	// Addr serves /healthz and /stats when non-empty, e.g. ":9090".
	Addr string `koanf:"addr"`

	// GemsPath and DownbeatsPath point at tab-separated annotation files.
	GemsPath      string `koanf:"gems_path"`
	DownbeatsPath string `koanf:"downbeats_path"`

	// SongPath is the base of <song>_bg.wav and <song>_solo.wav. Empty runs
	// on a silent wall clock.
	SongPath string `koanf:"song_path"`

	// Lanes is the number of playable lanes.
	Lanes int `koanf:"lanes"`

	// TickHz is the frame rate of the driver loop.
	TickHz int `koanf:"tick_hz"`

	// InputQueueSize bounds inputs buffered between ticks.
	InputQueueSize int `koanf:"input_queue_size"`

	// NowbarFraction is where "now" renders, as a fraction of viewport height.
	NowbarFraction float64 `koanf:"nowbar_fraction"`

	// LookaheadSeconds is how far ahead events become visible.
	LookaheadSeconds float64 `koanf:"lookahead_seconds"`

	// LookbehindSeconds is how long after its time an event stays active.
	LookbehindSeconds float64 `koanf:"lookbehind_seconds"`

	// SlopWindowSeconds is the symmetric hit tolerance.
	SlopWindowSeconds float64 `koanf:"slop_window_seconds"`

	// ScorePerComboStep is the points multiplier per combo step.
	ScorePerComboStep int `koanf:"score_per_combo_step"`
}

// New creates a Config holding default values.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              "",
		GemsPath:          "gems.txt",
		DownbeatsPath:     "downbeats.txt",
		Lanes:             5,
		TickHz:            60,
		InputQueueSize:    256,
		NowbarFraction:    0.2,
		LookaheadSeconds:  2.0,
		LookbehindSeconds: 0.5,
		SlopWindowSeconds: 0.1,
		ScorePerComboStep: 100,
	}
}

// Validate checks session constants. A failure means no playable session
// can start.
func (c *Config) Validate() error {
	switch {
	case c.NowbarFraction < 0 || c.NowbarFraction >= 1:
		return fmt.Errorf("%w: nowbar_fraction must be within [0, 1), got %v", ErrInvalidConfig, c.NowbarFraction)
	case !(c.LookaheadSeconds > 0):
		return fmt.Errorf("%w: lookahead_seconds must be > 0, got %v", ErrInvalidConfig, c.LookaheadSeconds)
	case !(c.LookbehindSeconds >= 0):
		return fmt.Errorf("%w: lookbehind_seconds must be >= 0, got %v", ErrInvalidConfig, c.LookbehindSeconds)
	case !(c.SlopWindowSeconds > 0):
		return fmt.Errorf("%w: slop_window_seconds must be > 0, got %v", ErrInvalidConfig, c.SlopWindowSeconds)
	case c.ScorePerComboStep <= 0:
		return fmt.Errorf("%w: score_per_combo_step must be positive, got %d", ErrInvalidConfig, c.ScorePerComboStep)
	case c.Lanes <= 0:
		return fmt.Errorf("%w: lanes must be positive, got %d", ErrInvalidConfig, c.Lanes)
	case c.TickHz <= 0:
		return fmt.Errorf("%w: tick_hz must be positive, got %d", ErrInvalidConfig, c.TickHz)
	case c.InputQueueSize <= 0:
		return fmt.Errorf("%w: input_queue_size must be positive, got %d", ErrInvalidConfig, c.InputQueueSize)
	case c.GemsPath == "":
		return fmt.Errorf("%w: gems_path must not be empty", ErrInvalidConfig)
	}
	return nil
}
