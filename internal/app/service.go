// Package service wires the catalog, mapper, active set, judge and score
// into one playable session driven by a clock.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/nowbar/internal/adapters/clock"
	"github.com/okian/nowbar/internal/domain/activeset"
	"github.com/okian/nowbar/internal/domain/catalog"
	"github.com/okian/nowbar/internal/domain/judge"
	"github.com/okian/nowbar/internal/domain/mapper"
	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/internal/domain/scoring"
	"github.com/okian/nowbar/pkg/logger"
	"github.com/okian/nowbar/pkg/metrics"
)

// Sprite is one active event positioned for drawing.
type Sprite struct {
	ID      model.EventID
	Kind    model.Kind
	Lane    int
	Y       float64
	Visible bool
	Status  model.Status
}

// Frame is everything the presenter needs for one tick.
type Frame struct {
	Now      float64
	Height   float64
	Playing  bool
	Sprites  []Sprite
	Spawned  []model.EventID
	Retired  []model.EventID
	Passed   []model.EventID
	Score    int
	Combo    int
	Finished bool
}

// Stats is a point-in-time summary of the session.
type Stats struct {
	SessionID string           `json:"session_id"`
	Started   bool             `json:"started"`
	Playing   bool             `json:"playing"`
	Now       float64          `json:"now"`
	Ticks     int              `json:"ticks"`
	Active    int              `json:"active"`
	Rejected  int              `json:"rejected"`
	Finished  bool             `json:"finished"`
	Score     scoring.Snapshot `json:"score"`
	Gems      catalog.Counts   `json:"gems"`
	Downbeats catalog.Counts   `json:"downbeats"`
}

// Service is a single game session. Tick and the input methods must be
// called from one goroutine; Stats may be read from any goroutine.
type Service struct {
	mu sync.RWMutex

	id    uuid.UUID
	clock clock.Clock

	// Core components
	catalog *catalog.Catalog
	mapper  *mapper.Mapper
	active  *activeset.Manager
	judge   *judge.Engine
	score   *scoring.State

	// Configuration
	lanes          int
	nowbarFraction float64
	lookahead      float64
	lookbehind     float64
	slop           float64
	stepPoints     int

	// State
	rejected  []catalog.Rejection
	notifiers []judge.Notifier
	started   bool
	ticks     int
	lastNow   float64

	logger logger.Logger
}

// New builds a session from parsed chart records. Malformed records are
// dropped and logged; configuration errors are fatal.
func New(gems []catalog.GemRecord, markers []catalog.MarkerRecord, clk clock.Clock, opts ...Option) (*Service, error) {
	if clk == nil {
		return nil, ErrNilClock
	}

	s := &Service{
		id:             uuid.New(),
		clock:          clk,
		nowbarFraction: 0.2,
		lookahead:      2.0,
		lookbehind:     0.5,
		slop:           0.1,
		stepPoints:     100,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx := context.Background()

	m, err := mapper.New(s.nowbarFraction, s.lookahead)
	if err != nil {
		return nil, fmt.Errorf("create mapper: %w", err)
	}
	s.mapper = m

	s.catalog, s.rejected = catalog.New(gems, markers, catalog.WithLanes(s.lanes))
	for _, r := range s.rejected {
		metrics.RecordCatalogRejected(r.Kind.String())
		s.logger.Warn(ctx, "rejected chart record",
			logger.String("kind", r.Kind.String()),
			logger.Int("index", r.Index),
			logger.Error(r.Err),
		)
	}

	s.active, err = activeset.New(s.catalog.Events(), m, s.lookbehind)
	if err != nil {
		return nil, fmt.Errorf("create active set: %w", err)
	}

	s.score = scoring.New(scoring.WithStepPoints(s.stepPoints))
	s.judge, err = judge.New(s.catalog, s.score, s.slop,
		judge.WithNotifier(judge.Multi(s.notifiers)),
		judge.WithLogger(s.logger.Named("judge")),
	)
	if err != nil {
		return nil, fmt.Errorf("create judge: %w", err)
	}

	metrics.UpdateCatalogEvents(model.KindGem.String(), s.catalog.Counts(model.KindGem).Total())
	metrics.UpdateCatalogEvents(model.KindDownbeat.String(), s.catalog.Counts(model.KindDownbeat).Total())

	return s, nil
}

// ID returns the session id.
func (s *Service) ID() string { return s.id.String() }

// Catalog exposes read access to events and statuses.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Mapper returns the time-to-position mapper in use.
func (s *Service) Mapper() *mapper.Mapper { return s.mapper }

// Lanes returns the configured lane count.
func (s *Service) Lanes() int { return s.lanes }

// Rejected returns the chart records dropped during construction.
func (s *Service) Rejected() []catalog.Rejection { return s.rejected }

// Clock returns the session clock.
func (s *Service) Clock() clock.Clock { return s.clock }

// Start marks the session live.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.started = true
	s.logger.Info(ctx, "session started",
		logger.String("session", s.ID()),
		logger.Int("gems", s.catalog.Counts(model.KindGem).Total()),
		logger.Int("downbeats", s.catalog.Counts(model.KindDownbeat).Total()),
		logger.Int("rejected", len(s.rejected)),
		logger.Float64("slop", s.slop),
	)
	return nil
}

// Stop marks the session over and logs the final score.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	snap := s.score.Snapshot()
	s.logger.Info(ctx, "session stopped",
		logger.String("session", s.ID()),
		logger.Int("score", snap.Score),
		logger.Int("max_combo", snap.MaxCombo),
		logger.Int("ticks", s.ticks),
		logger.Bool("finished", s.catalog.Resolved()),
	)
}

// Tick advances the session to now on a viewport of the given height. The
// pass check runs before spawn/cull so both see the same now.
func (s *Service) Tick(ctx context.Context, now, height float64) (Frame, error) {
	begin := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	passed, err := s.judge.Advance(ctx, now)
	for range passed {
		metrics.RecordJudgment(metrics.OutcomePass)
	}
	if err != nil {
		s.recordError(err)
		return Frame{}, fmt.Errorf("tick: %w", err)
	}

	diff := s.active.Update(now, height)
	metrics.RecordSpawns(len(diff.Spawned))
	metrics.RecordRetirements(len(diff.Retired))

	active := s.active.Active()
	sprites := make([]Sprite, 0, len(active))
	for _, entry := range active {
		st, err := s.catalog.Status(entry.Event.ID)
		if err != nil {
			s.recordError(err)
			return Frame{}, fmt.Errorf("tick: %w", err)
		}
		sprites = append(sprites, Sprite{
			ID:      entry.Event.ID,
			Kind:    entry.Event.Kind,
			Lane:    entry.Event.Lane,
			Y:       entry.Placement.Y,
			Visible: entry.Placement.Visible,
			Status:  st,
		})
	}

	s.ticks++
	s.lastNow = now
	snap := s.score.Snapshot()

	metrics.UpdateActiveObjects(model.KindGem.String(), s.active.CountByKind(model.KindGem))
	metrics.UpdateActiveObjects(model.KindDownbeat.String(), s.active.CountByKind(model.KindDownbeat))
	metrics.UpdateScore(snap.Score, snap.Combo, snap.MaxCombo)
	metrics.RecordTick(float64(time.Since(begin).Microseconds()) / 1000)

	return Frame{
		Now:      now,
		Height:   height,
		Playing:  s.clock.Playing(),
		Sprites:  sprites,
		Spawned:  diff.Spawned,
		Retired:  diff.Retired,
		Passed:   passed,
		Score:    snap.Score,
		Combo:    snap.Combo,
		Finished: s.catalog.Resolved(),
	}, nil
}

// Press judges a press of lane at the clock's current time. Presses while
// paused are ignored.
func (s *Service) Press(ctx context.Context, lane int) (judge.Result, bool, error) {
	if !s.clock.Playing() {
		return judge.Result{}, false, nil
	}
	res, err := s.PressAt(ctx, s.clock.Now(), lane)
	return res, err == nil, err
}

// PressAt judges a press of lane at song time t.
func (s *Service) PressAt(ctx context.Context, t float64, lane int) (judge.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.judge.Press(ctx, t, lane)
	if err != nil {
		s.recordError(err)
		return judge.Result{}, err
	}
	metrics.RecordJudgment(res.Outcome.String())
	snap := s.score.Snapshot()
	metrics.UpdateScore(snap.Score, snap.Combo, snap.MaxCombo)
	return res, nil
}

// HandleInput applies one input. A press is judged at its delivery time
// in.At. Releases carry no game meaning and quit is the driver's concern, so
// both are accepted and ignored here.
func (s *Service) HandleInput(ctx context.Context, in model.Input) error {
	metrics.RecordInputApplied(in.Kind.String())

	switch in.Kind {
	case model.InputLanePress:
		if !s.clock.Playing() {
			return nil
		}
		_, err := s.PressAt(ctx, in.At, in.Lane)
		return err
	case model.InputTogglePause:
		s.clock.TogglePlayPause()
		s.logger.Info(ctx, "playback toggled",
			logger.Bool("playing", s.clock.Playing()),
			logger.Float64("now", s.clock.Now()),
		)
	}
	return nil
}

// Finished reports whether every event has been judged or passed.
func (s *Service) Finished() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Resolved()
}

// Stats returns a snapshot safe to read from other goroutines.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		SessionID: s.ID(),
		Started:   s.started,
		Playing:   s.clock.Playing(),
		Now:       s.lastNow,
		Ticks:     s.ticks,
		Active:    s.active.Len(),
		Rejected:  len(s.rejected),
		Finished:  s.catalog.Resolved(),
		Score:     s.score.Snapshot(),
		Gems:      s.catalog.Counts(model.KindGem),
		Downbeats: s.catalog.Counts(model.KindDownbeat),
	}
}

// EventView is one catalog event with its current status.
type EventView struct {
	ID        model.EventID `json:"id"`
	Kind      string        `json:"kind"`
	Timestamp float64       `json:"timestamp"`
	Lane      int           `json:"lane,omitempty"`
	Status    string        `json:"status"`
}

// Event returns the event with the given id. Safe to call from any
// goroutine.
func (s *Service) Event(id model.EventID) (EventView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, err := s.catalog.Event(id)
	if err != nil {
		return EventView{}, err
	}
	st, err := s.catalog.Status(id)
	if err != nil {
		return EventView{}, err
	}
	return EventView{
		ID:        ev.ID,
		Kind:      ev.Kind.String(),
		Timestamp: ev.Timestamp,
		Lane:      ev.Lane,
		Status:    st.String(),
	}, nil
}

func (s *Service) recordError(err error) {
	kind := "unknown"
	if errors.Is(err, catalog.ErrLogic) {
		kind = "logic"
	}
	metrics.RecordErrorByComponent("judge", kind)
	s.logger.Error(context.Background(), "judgment failed", logger.Error(err))
}
