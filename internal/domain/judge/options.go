package judge

import "github.com/okian/nowbar/pkg/logger"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithNotifier sets the consumer of judgment notifications.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets the logger. Judgments are logged at debug level.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
