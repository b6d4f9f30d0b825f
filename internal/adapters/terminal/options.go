package terminal

import (
	"time"

	"github.com/okian/nowbar/pkg/logger"
)

// Option applies a configuration option to the Presenter.
type Option func(*Presenter)

// WithLanes sets the number of lanes drawn.
func WithLanes(n int) Option {
	return func(p *Presenter) {
		if n > 0 {
			p.lanes = n
		}
	}
}

// WithSongLength shows the total song length in the HUD.
func WithSongLength(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.length = d
		}
	}
}

// WithPressFrames sets how many frames a pressed lane stays highlighted.
// Terminals report no key release, so the highlight decays by frame count.
func WithPressFrames(n int) Option {
	return func(p *Presenter) {
		if n > 0 {
			p.pressFrames = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Presenter) {
		if l != nil {
			p.logger = l
		}
	}
}
