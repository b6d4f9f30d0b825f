package service

import "errors"

// ErrNilClock is returned when a session is built without a clock.
var ErrNilClock = errors.New("session clock is nil")
