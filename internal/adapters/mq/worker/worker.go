// Package worker runs the single-writer frame loop: drain inputs, advance
// the session, hand the frame to the presenter.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	service "github.com/okian/nowbar/internal/app"
	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/pkg/logger"
)

// Default driver configuration constants.
const (
	defaultTickRate = 60
)

// Session is the state the driver advances.
type Session interface {
	Tick(ctx context.Context, now, height float64) (service.Frame, error)
	HandleInput(ctx context.Context, in model.Input) error
	Finished() bool
}

// Queue is where the driver collects inputs.
type Queue interface {
	Drain(ctx context.Context) []model.Input
}

// Clock supplies song time.
type Clock interface {
	Now() float64
}

// Presenter draws frames and reports the viewport height in mapper units.
type Presenter interface {
	Height() float64
	Draw(ctx context.Context, f service.Frame)
}

// Driver owns every mutation of the session once Run starts.
type Driver struct {
	session   Session
	queue     Queue
	clock     Clock
	presenter Presenter

	name         string
	interval     time.Duration
	stopOnFinish bool

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	frames int

	logger logger.Logger
}

// NewDriver creates a driver. It does nothing until Run is called.
func NewDriver(session Session, queue Queue, clk Clock, presenter Presenter, opts ...Option) *Driver {
	d := &Driver{
		session:   session,
		queue:     queue,
		clock:     clk,
		presenter: presenter,
		name:      "driver",
		interval:  time.Second / defaultTickRate,
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Run ticks until ctx is cancelled, a quit input arrives, Shutdown is
// called, the session finishes (with WithStopOnFinish), or a tick fails.
func (d *Driver) Run(ctx context.Context) error {
	defer close(d.done)

	d.logger.Info(ctx, "driver started",
		logger.String("name", d.name),
		logger.Duration("interval", d.interval),
	)
	defer func() {
		d.logger.Info(context.Background(), "driver stopped",
			logger.String("name", d.name),
			logger.Int("frames", d.frames),
		)
	}()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.shutdown:
			return nil
		case <-ticker.C:
			stop, err := d.Step(ctx)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
}

// Step runs one frame synchronously and reports whether the loop should
// stop. Inputs are applied in arrival order, each at its own delivery time,
// before the session advances to the clock's current time.
func (d *Driver) Step(ctx context.Context) (bool, error) {
	for _, in := range d.queue.Drain(ctx) {
		if in.Kind == model.InputQuit {
			d.logger.Info(ctx, "quit requested")
			return true, nil
		}
		if err := d.session.HandleInput(ctx, in); err != nil {
			d.logger.Error(ctx, "input failed", logger.String("input", in.Kind.String()), logger.Error(err))
			return true, fmt.Errorf("apply %s: %w", in.Kind, err)
		}
	}

	frame, err := d.session.Tick(ctx, d.clock.Now(), d.presenter.Height())
	if err != nil {
		d.logger.Error(ctx, "tick failed", logger.Error(err))
		return true, err
	}
	d.frames++
	d.presenter.Draw(ctx, frame)

	return d.stopOnFinish && frame.Finished, nil
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() int { return d.frames }

// Shutdown stops the loop and waits for it to exit.
func (d *Driver) Shutdown(ctx context.Context) error {
	d.stopOnce.Do(func() { close(d.shutdown) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		d.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
