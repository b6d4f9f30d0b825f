package autoplay

import "errors"

// Sentinel errors for autoplay runs.
var (
	ErrInvalidConfig = errors.New("invalid autoplay config")
	ErrVerification  = errors.New("autoplay verification failed")
)
