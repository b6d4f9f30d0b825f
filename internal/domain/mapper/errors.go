package mapper

import "errors"

// Sentinel kinds for mapper configuration errors.
var (
	ErrInvalidLookahead = errors.New("lookahead must be positive")
	ErrInvalidNowbar    = errors.New("nowbar fraction must be within [0, 1)")
)
