package judge

import "errors"

var (
	// ErrInvalidSlop is returned for a non-positive or non-finite slop window.
	ErrInvalidSlop = errors.New("slop window must be positive")

	// ErrNilDependency is returned when the catalog or score recorder is missing.
	ErrNilDependency = errors.New("judge dependency is nil")
)
