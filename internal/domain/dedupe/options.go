package dedupe

// Option applies a configuration option to InMemory.
type Option func(*InMemory)

// WithMaxSize bounds the number of remembered ids. Zero or less is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(d *InMemory) {
		d.maxSize = maxSize
	}
}
