package activeset

import "errors"

// ErrInvalidWindow is a configuration error for the activity window.
var ErrInvalidWindow = errors.New("invalid activity window")
