// Package mapper converts song time into screen position.
//
// The transform is affine and stateless: every call is derived from its
// arguments alone so a viewport resize is reflected on the next call.
package mapper

import (
	"fmt"
)

// Placement is the mapped position of one event.
type Placement struct {
	Y       float64 // distance above the bottom edge of the viewport
	Visible bool
}

// Map places an event on a viewport of the given height. A marker at now
// sits on the nowbar; one that is lookahead seconds away reaches the top.
// lookahead must be positive and nowbarFraction in [0, 1).
func Map(timestamp, now, height, lookahead, nowbarFraction float64) Placement {
	baseline := height * nowbarFraction
	timeDiff := timestamp - now
	y := baseline + (timeDiff/lookahead)*(height-baseline)
	return Placement{Y: y, Visible: 0 <= y && y <= height}
}

// Mapper binds Map to validated session constants.
type Mapper struct {
	nowbarFraction float64
	lookahead      float64
}

// New validates the constants and returns a Mapper.
func New(nowbarFraction, lookahead float64) (*Mapper, error) {
	if !(lookahead > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLookahead, lookahead)
	}
	if !(nowbarFraction >= 0 && nowbarFraction < 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNowbar, nowbarFraction)
	}
	return &Mapper{nowbarFraction: nowbarFraction, lookahead: lookahead}, nil
}

// Map places timestamp relative to now on a viewport of the given height.
func (m *Mapper) Map(timestamp, now, height float64) Placement {
	return Map(timestamp, now, height, m.lookahead, m.nowbarFraction)
}

// NowbarY returns the nowbar position for a viewport height.
func (m *Mapper) NowbarY(height float64) float64 {
	return height * m.nowbarFraction
}

// Lookahead returns the configured lookahead in seconds.
func (m *Mapper) Lookahead() float64 { return m.lookahead }

// LaneX centres lane (1-based) in one of lanes+1 equal columns, leaving a
// half column margin on each side.
func LaneX(lane, lanes int, width float64) float64 {
	if lanes <= 0 {
		return 0
	}
	return float64(lane) * width / float64(lanes+1)
}
