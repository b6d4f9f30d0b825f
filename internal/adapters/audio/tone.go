package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// square is a fixed-length square wave with a linear release.
type square struct {
	freq     float64
	phase    float64
	rate     beep.SampleRate
	length   int
	release  int
	position int
}

func newSquare(freq float64, length, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &square{
		freq:    freq,
		rate:    rate,
		length:  rate.N(length),
		release: rate.N(release),
	}
}

func (s *square) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		val := 1.0
		if s.phase >= 0.5 {
			val = -1.0
		}
		if remaining := s.length - s.position; s.release > 0 && remaining < s.release {
			val *= float64(remaining) / float64(s.release)
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *square) Err() error { return nil }

// midiFreq converts a MIDI note number to Hz.
func midiFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// gain wraps s in a linear gain. Zero or less is silent.
func gain(s beep.Streamer, g float64) *effects.Volume {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}
