package autoplay

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/nowbar/internal/adapters/chart"
	"github.com/okian/nowbar/internal/adapters/clock"
	"github.com/okian/nowbar/internal/adapters/mq/queue"
	"github.com/okian/nowbar/internal/adapters/mq/worker"
	service "github.com/okian/nowbar/internal/app"
	"github.com/okian/nowbar/internal/config"
	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/pkg/logger"
)

// tailSeconds keeps ticking past the last event so pass checks can fire.
const tailSeconds = 1.0

// headless is a presenter that only remembers the last frame.
type headless struct {
	height float64
	last   service.Frame
}

func (h *headless) Height() float64                         { return h.height }
func (h *headless) Draw(_ context.Context, f service.Frame) { h.last = f }

// Run plays the chart with a scripted player on a manual clock, stepping the
// frame driver at game.TickHz, then verifies the result. Each press is queued
// on the first frame at or after its scripted time and judged at that time.
func Run(ctx context.Context, cfg Config, game *config.Config, song chart.Chart, log logger.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	begin := time.Now()
	runID := uuid.New().String()

	score := &tally{step: game.ScorePerComboStep}
	clk := clock.NewManual(0)
	sess, err := service.New(song.Gems, song.Markers, clk,
		service.WithConfig(game),
		service.WithNotifier(score),
		service.WithLogger(log.Named("session")),
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(game.InputQueueSize))
	defer func() { _ = q.Close() }()
	view := &headless{height: cfg.Height}
	drv := worker.NewDriver(sess, q, clk, view,
		worker.WithName("autoplay"),
		worker.WithTickRate(game.TickHz),
		worker.WithStopOnFinish(),
		worker.WithLogger(log.Named("driver")),
	)

	events := sess.Catalog().Events()
	plan := Schedule(events, sess.Lanes(), cfg, rand.New(rand.NewSource(cfg.Seed))) //nolint:gosec // reproducible runs
	log.Info(ctx, "autoplay planned",
		logger.String("run", runID),
		logger.Int("presses", len(plan.Presses)),
		logger.Int("skipped", plan.Skipped),
		logger.Int("wrong", plan.Wrong),
	)

	if err := sess.Start(ctx); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	end := lastTimestamp(events) + game.SlopWindowSeconds + tailSeconds
	dt := 1 / float64(game.TickHz)
	next := 0
	for step := 0; ; step++ {
		if err := ctx.Err(); err != nil {
			sess.Stop(ctx)
			return nil, fmt.Errorf("autoplay interrupted: %w", err)
		}
		t := float64(step) * dt
		clk.Set(t)
		for next < len(plan.Presses) && plan.Presses[next].At <= t {
			press := plan.Presses[next]
			in := model.Input{Kind: model.InputLanePress, Lane: press.Lane, At: press.At}
			if !q.Enqueue(ctx, in) {
				log.Warn(ctx, "press dropped", logger.Float64("at", press.At))
			}
			next++
		}
		stop, err := drv.Step(ctx)
		if err != nil {
			sess.Stop(ctx)
			return nil, fmt.Errorf("step at %.3f: %w", t, err)
		}
		if stop || t > end {
			break
		}
		if cfg.Verbose && step%game.TickHz == 0 {
			log.Debug(ctx, "autoplay progress",
				logger.Float64("t", t),
				logger.Int("score", view.last.Score),
				logger.Int("combo", view.last.Combo),
			)
		}
	}
	sess.Stop(ctx)

	stats := sess.Stats()
	report := &Report{
		RunID:      runID,
		SessionID:  stats.SessionID,
		Planned:    len(plan.Presses),
		Wrong:      plan.Wrong,
		Skipped:    plan.Skipped,
		Gems:       stats.Gems.Total(),
		Pending:    stats.Gems.Pending,
		Hits:       stats.Gems.Hit,
		Misses:     stats.Gems.Miss,
		Passes:     stats.Gems.Passed,
		Whiffs:     score.whiffs,
		Score:      stats.Score.Score,
		MaxCombo:   stats.Score.MaxCombo,
		Recomputed: score.score,
		Frames:     drv.Frames(),
		SongTime:   clk.Now(),
		Duration:   time.Since(begin),
	}
	if err := Verify(report); err != nil {
		log.Error(ctx, "autoplay verification failed", logger.String("run", runID), logger.Error(err))
		return report, err
	}
	return report, nil
}

func lastTimestamp(events []model.TimedEvent) float64 {
	last := 0.0
	for _, ev := range events {
		last = math.Max(last, ev.Timestamp)
	}
	return last
}
