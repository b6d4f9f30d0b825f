package catalog

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithLanes bounds valid gem lanes to 1..lanes. Zero or negative accepts any
// positive lane.
func WithLanes(lanes int) Option {
	return func(c *Catalog) {
		c.lanes = lanes
	}
}
