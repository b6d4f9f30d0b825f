package catalog

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	// ErrInvalidRecord marks a malformed input record. The record is dropped
	// and the catalog is built from the rest.
	ErrInvalidRecord = errors.New("invalid catalog record")

	// ErrLogic marks a state-machine violation by the caller.
	ErrLogic = errors.New("catalog logic error")

	ErrUnknownEvent      = fmt.Errorf("%w: event id out of range", ErrLogic)
	ErrIllegalTransition = fmt.Errorf("%w: illegal status transition", ErrLogic)
)
