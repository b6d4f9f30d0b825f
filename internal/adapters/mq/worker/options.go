package worker

import (
	"time"

	"github.com/okian/nowbar/pkg/logger"
)

// Option applies a configuration option to the Driver.
type Option func(*Driver)

// WithName sets the driver name for logging.
func WithName(name string) Option {
	return func(d *Driver) {
		if name != "" {
			d.name = name
		}
	}
}

// WithTickRate sets how many frames per second the driver runs.
func WithTickRate(hz int) Option {
	return func(d *Driver) {
		if hz > 0 {
			d.interval = time.Second / time.Duration(hz)
		}
	}
}

// WithStopOnFinish makes Run return once every event is resolved.
func WithStopOnFinish() Option {
	return func(d *Driver) { d.stopOnFinish = true }
}

// WithLogger sets a custom logger for the driver.
func WithLogger(l logger.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}
