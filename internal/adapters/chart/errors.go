package chart

import "errors"

// ErrRead marks an I/O failure opening or scanning a chart file.
var ErrRead = errors.New("read chart")
