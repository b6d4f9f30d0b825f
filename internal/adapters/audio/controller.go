// Package audio plays a song as a background and a solo track and serves
// as the session clock. Song time is the background track position.
//
// The controller also consumes judgment notifications: misses and passes
// mute the solo track, hits bring it back, and misses or whiffs play a
// short square tone.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/pkg/logger"
)

const (
	whiffNote     = 72
	whiffLength   = 300 * time.Millisecond
	whiffRelease  = 100 * time.Millisecond
	speakerBuffer = 50 * time.Millisecond
	resampleQual  = 4
)

// Controller mixes the song tracks and reports song time.
type Controller struct {
	out    Output
	logger logger.Logger

	rate  beep.SampleRate
	mixer *beep.Mixer

	bg       beep.StreamSeekCloser
	bgCtrl   *beep.Ctrl
	solo     beep.StreamSeekCloser
	soloCtrl *beep.Ctrl
	soloGain *effects.Volume

	whiffGain float64
	muted     bool
}

// New opens "<base>_bg.wav" and, when present, "<base>_solo.wav", and starts
// the output paused at song time zero.
func New(base string, opts ...Option) (*Controller, error) {
	c := &Controller{
		out:       Speaker{},
		logger:    logger.Nop(),
		mixer:     &beep.Mixer{},
		whiffGain: 0.25,
	}
	for _, opt := range opts {
		opt(c)
	}

	bg, format, err := openTrack(base + "_bg.wav")
	if err != nil {
		return nil, err
	}
	c.bg = bg
	c.rate = format.SampleRate
	c.bgCtrl = &beep.Ctrl{Streamer: bg, Paused: true}
	c.mixer.Add(c.bgCtrl)

	solo, soloFormat, err := openTrack(base + "_solo.wav")
	switch {
	case err == nil:
		c.solo = solo
		var s beep.Streamer = solo
		if soloFormat.SampleRate != c.rate {
			s = beep.Resample(resampleQual, soloFormat.SampleRate, c.rate, solo)
		}
		c.soloGain = gain(s, 1)
		c.soloCtrl = &beep.Ctrl{Streamer: c.soloGain, Paused: true}
		c.mixer.Add(c.soloCtrl)
	case errors.Is(err, os.ErrNotExist):
		c.logger.Info(context.Background(), "no solo track", logger.String("base", base))
	default:
		_ = bg.Close()
		return nil, err
	}

	if err := c.out.Init(c.rate, c.rate.N(speakerBuffer)); err != nil {
		c.closeTracks()
		return nil, fmt.Errorf("%w: %w", ErrSpeaker, err)
	}
	c.out.Play(c.mixer)

	c.logger.Info(context.Background(), "audio ready",
		logger.Int("sample_rate", int(c.rate)),
		logger.Duration("length", c.rate.D(bg.Len())),
		logger.Bool("solo", c.solo != nil),
	)
	return c, nil
}

func openTrack(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %w", ErrOpenTrack, err)
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s: %w", ErrOpenTrack, path, err)
	}
	return s, format, nil
}

// Now returns the song time in seconds.
func (c *Controller) Now() float64 {
	c.out.Lock()
	defer c.out.Unlock()
	return float64(c.bg.Position()) / float64(c.rate)
}

// Length returns the background track duration.
func (c *Controller) Length() time.Duration {
	return c.rate.D(c.bg.Len())
}

// TogglePlayPause pauses or resumes both tracks together.
func (c *Controller) TogglePlayPause() {
	c.out.Lock()
	defer c.out.Unlock()
	c.bgCtrl.Paused = !c.bgCtrl.Paused
	if c.soloCtrl != nil {
		c.soloCtrl.Paused = c.bgCtrl.Paused
	}
}

// Playing reports whether the song is advancing.
func (c *Controller) Playing() bool {
	c.out.Lock()
	defer c.out.Unlock()
	return !c.bgCtrl.Paused
}

// Muted reports whether the solo track is silenced.
func (c *Controller) Muted() bool {
	c.out.Lock()
	defer c.out.Unlock()
	return c.muted
}

func (c *Controller) setMute(mute bool) {
	c.out.Lock()
	defer c.out.Unlock()
	c.muted = mute
	if c.soloGain != nil {
		c.soloGain.Silent = mute
	}
}

// OnHit brings the solo track back.
func (c *Controller) OnHit(model.EventID) { c.setMute(false) }

// OnMissOrPass silences the solo track.
func (c *Controller) OnMissOrPass(model.EventID) { c.setMute(true) }

// OnWhiff silences the solo track and plays the miss tone.
func (c *Controller) OnWhiff() {
	c.setMute(true)
	tone := gain(newSquare(midiFreq(whiffNote), whiffLength, whiffRelease, c.rate), c.whiffGain)

	c.out.Lock()
	defer c.out.Unlock()
	c.mixer.Add(tone)
}

// OnScore is a no-op; score has no audible effect.
func (c *Controller) OnScore(int, int) {}

// Close stops playback and releases the tracks.
func (c *Controller) Close() error {
	c.out.Lock()
	c.mixer.Clear()
	c.out.Unlock()
	c.out.Close()
	return c.closeTracks()
}

func (c *Controller) closeTracks() error {
	err := c.bg.Close()
	if c.solo != nil {
		err = errors.Join(err, c.solo.Close())
	}
	return err
}
