package config

import (
	"errors"
)

var (
	// ErrInvalidConfig wraps every Validate failure. The message names the
	// offending key.
	ErrInvalidConfig = errors.New("invalid nowbar config")

	// ErrLoadConfig wraps failures reading the NOWBAR_CONFIG file or the
	// NOWBAR_ environment.
	ErrLoadConfig = errors.New("load nowbar config")
)
