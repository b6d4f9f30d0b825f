package audio

import "errors"

var (
	// ErrOpenTrack is returned when a song track cannot be opened or decoded.
	ErrOpenTrack = errors.New("open audio track")

	// ErrSpeaker is returned when the output device cannot be initialised.
	ErrSpeaker = errors.New("init speaker")
)
