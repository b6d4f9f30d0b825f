// Package judge resolves lane presses against pending gems and retires
// events that time has carried past the slop window.
package judge

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/okian/nowbar/internal/domain/catalog"
	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/internal/domain/scoring"
	"github.com/okian/nowbar/pkg/logger"
)

// Outcome is the result of a single press.
type Outcome int

const (
	// OutcomeWhiff means no pending gem was inside the slop window.
	OutcomeWhiff Outcome = iota
	OutcomeHit
	// OutcomeMiss means the closest candidate was in another lane.
	OutcomeMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWhiff:
		return "whiff"
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Result describes a press judgment. Event is the zero value for a whiff.
type Result struct {
	Outcome Outcome
	Event   model.TimedEvent
	Offset  float64 // press time minus event timestamp
	Points  int
}

// Engine is the only writer of event statuses and score. It is not safe for
// concurrent use.
type Engine struct {
	catalog  *catalog.Catalog
	score    scoring.Recorder
	slop     float64
	notifier Notifier
	logger   logger.Logger

	gems   []model.TimedEvent // gems ordered by timestamp, then id
	all    []model.TimedEvent // every event ordered by timestamp, then id
	cursor int                // all[:cursor] are past the window and terminal

	lastScore, lastCombo int
}

// New creates an engine over c that feeds score.
func New(c *catalog.Catalog, score scoring.Recorder, slop float64, opts ...Option) (*Engine, error) {
	if c == nil || score == nil {
		return nil, ErrNilDependency
	}
	if !(slop > 0) || math.IsInf(slop, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSlop, slop)
	}

	e := &Engine{
		catalog:  c,
		score:    score,
		slop:     slop,
		notifier: Nop{},
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.all = c.Events()
	sort.SliceStable(e.all, func(i, j int) bool { return e.all[i].Timestamp < e.all[j].Timestamp })
	for _, ev := range e.all {
		if ev.Kind == model.KindGem {
			e.gems = append(e.gems, ev)
		}
	}

	snap := score.Snapshot()
	e.lastScore, e.lastCombo = snap.Score, snap.Combo
	return e, nil
}

// Slop returns the tolerance window in seconds.
func (e *Engine) Slop() float64 { return e.slop }

// Press judges a press of lane at time t. Only the time-closest pending gem
// inside the window is judged; ties go to the lowest id.
func (e *Engine) Press(ctx context.Context, t float64, lane int) (Result, error) {
	best, ok := e.closest(t)
	if !ok {
		e.score.RegisterMiss()
		e.logger.Debug(ctx, "whiff", logger.Float64("t", t), logger.Int("lane", lane))
		e.notifier.OnWhiff()
		e.publishScore()
		return Result{Outcome: OutcomeWhiff}, nil
	}

	res := Result{Event: best, Offset: t - best.Timestamp}
	if best.Lane == lane {
		if err := e.catalog.Transition(best.ID, model.StatusHit); err != nil {
			return Result{}, fmt.Errorf("judge hit: %w", err)
		}
		res.Outcome = OutcomeHit
		res.Points = e.score.RegisterHit()
		e.notifier.OnHit(best.ID)
	} else {
		if err := e.catalog.Transition(best.ID, model.StatusMiss); err != nil {
			return Result{}, fmt.Errorf("judge miss: %w", err)
		}
		res.Outcome = OutcomeMiss
		e.score.RegisterMiss()
		e.notifier.OnMissOrPass(best.ID)
		e.notifier.OnWhiff()
	}

	e.logger.Debug(ctx, res.Outcome.String(),
		logger.Int("event", int(best.ID)),
		logger.Int("lane", lane),
		logger.Float64("offset", res.Offset),
		logger.Int("points", res.Points),
	)
	e.publishScore()
	return res, nil
}

func (e *Engine) closest(t float64) (model.TimedEvent, bool) {
	start := sort.Search(len(e.gems), func(i int) bool { return e.gems[i].Timestamp > t-e.slop })

	var (
		best     model.TimedEvent
		bestDiff = math.Inf(1)
		found    bool
	)
	for i := start; i < len(e.gems) && e.gems[i].Timestamp < t+e.slop; i++ {
		ev := e.gems[i]
		diff := math.Abs(ev.Timestamp - t)
		if diff >= e.slop {
			continue
		}
		if st, err := e.catalog.Status(ev.ID); err != nil || st != model.StatusPending {
			continue
		}
		if diff < bestDiff || (diff == bestDiff && ev.ID < best.ID) {
			best, bestDiff, found = ev, diff, true
		}
	}
	return best, found
}

// Advance marks every pending event with now - timestamp > slop as passed
// and returns the gems it passed. Passed gems break the combo. Downbeats are
// retired silently. Calls with a smaller now than before do nothing.
func (e *Engine) Advance(ctx context.Context, now float64) ([]model.EventID, error) {
	var passed []model.EventID
	for ; e.cursor < len(e.all); e.cursor++ {
		ev := e.all[e.cursor]
		if !(now-ev.Timestamp > e.slop) {
			break
		}
		st, err := e.catalog.Status(ev.ID)
		if err != nil {
			return passed, fmt.Errorf("judge advance: %w", err)
		}
		if st.Terminal() {
			continue
		}
		if err := e.catalog.Transition(ev.ID, model.StatusPassed); err != nil {
			return passed, fmt.Errorf("judge advance: %w", err)
		}
		if ev.Kind != model.KindGem {
			continue
		}
		passed = append(passed, ev.ID)
		e.score.RegisterMiss()
		e.logger.Debug(ctx, "pass", logger.Int("event", int(ev.ID)), logger.Float64("now", now))
		e.notifier.OnMissOrPass(ev.ID)
	}
	if len(passed) > 0 {
		e.publishScore()
	}
	return passed, nil
}

func (e *Engine) publishScore() {
	snap := e.score.Snapshot()
	if snap.Score == e.lastScore && snap.Combo == e.lastCombo {
		return
	}
	e.lastScore, e.lastCombo = snap.Score, snap.Combo
	e.notifier.OnScore(snap.Score, snap.Combo)
}
