package model

// InputKind enumerates player actions delivered by the input source.
type InputKind int

const (
	InputLanePress InputKind = iota
	InputLaneRelease
	InputTogglePause
	InputQuit
)

func (k InputKind) String() string {
	switch k {
	case InputLanePress:
		return "press"
	case InputLaneRelease:
		return "release"
	case InputTogglePause:
		return "toggle_pause"
	case InputQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Input is one player action. Lane is set for press and release only. At is
// the song time the input was delivered; presses are judged at At, not at
// the frame that applies them.
type Input struct {
	Kind InputKind
	Lane int
	At   float64
}
