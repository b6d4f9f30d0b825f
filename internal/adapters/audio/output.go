package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the sink the mixer plays into. Lock and Unlock guard streamer
// state shared with the playback goroutine.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// Speaker plays through the system audio device.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s ...beep.Streamer)                       { speaker.Play(s...) }
func (Speaker) Lock()                                         { speaker.Lock() }
func (Speaker) Unlock()                                       { speaker.Unlock() }
func (Speaker) Close()                                        { speaker.Close() }
