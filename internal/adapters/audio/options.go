package audio

import "github.com/okian/nowbar/pkg/logger"

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithOutput replaces the system speaker.
func WithOutput(out Output) Option {
	return func(c *Controller) {
		if out != nil {
			c.out = out
		}
	}
}

// WithWhiffGain sets the linear gain of the whiff tone.
func WithWhiffGain(g float64) Option {
	return func(c *Controller) {
		if g >= 0 {
			c.whiffGain = g
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}
