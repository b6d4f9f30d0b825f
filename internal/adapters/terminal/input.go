package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/okian/nowbar/internal/adapters/mq/queue"
	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/pkg/logger"
)

// Translate maps a key event to an input. Digits 1..lanes press a lane,
// p toggles pause, q, Esc and Ctrl-C quit.
func Translate(ev *tcell.EventKey, lanes int) (model.Input, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return model.Input{Kind: model.InputQuit}, true
	case tcell.KeyRune:
	default:
		return model.Input{}, false
	}

	r := ev.Rune()
	switch {
	case r >= '1' && r <= '9':
		lane := int(r - '0')
		if lane > lanes {
			return model.Input{}, false
		}
		return model.Input{Kind: model.InputLanePress, Lane: lane}, true
	case r == 'p' || r == 'P' || r == ' ':
		return model.Input{Kind: model.InputTogglePause}, true
	case r == 'q' || r == 'Q':
		return model.Input{Kind: model.InputQuit}, true
	}
	return model.Input{}, false
}

// PumpOption configures a Pump.
type PumpOption func(*Pump)

// WithPresenter lights lane buttons as presses are read.
func WithPresenter(p *Presenter) PumpOption {
	return func(pu *Pump) { pu.presenter = p }
}

// WithPumpLogger sets the logger.
func WithPumpLogger(l logger.Logger) PumpOption {
	return func(pu *Pump) {
		if l != nil {
			pu.logger = l
		}
	}
}

// Clock stamps inputs with the song time they were read at.
type Clock interface {
	Now() float64
}

// Pump reads screen events and feeds inputs into a queue.
type Pump struct {
	screen    tcell.Screen
	queue     queue.Queue
	clock     Clock
	lanes     int
	presenter *Presenter
	logger    logger.Logger
}

// NewPump creates a pump for the given screen and lane count. Every input
// is stamped with clk's time as it is read.
func NewPump(screen tcell.Screen, q queue.Queue, clk Clock, lanes int, opts ...PumpOption) *Pump {
	p := &Pump{screen: screen, queue: q, clock: clk, lanes: lanes, logger: logger.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run forwards inputs until ctx is done, a quit key is read or the screen
// stops delivering events.
func (p *Pump) Run(ctx context.Context) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go p.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if p.handle(ctx, ev) {
				return
			}
		}
	}
}

func (p *Pump) handle(ctx context.Context, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
	case *tcell.EventKey:
		in, ok := Translate(e, p.lanes)
		if !ok {
			return false
		}
		in.At = p.clock.Now()
		if in.Kind == model.InputLanePress && p.presenter != nil {
			p.presenter.Press(in.Lane)
		}
		if !p.queue.Enqueue(ctx, in) {
			p.logger.Warn(ctx, "input dropped", logger.String("kind", in.Kind.String()))
		}
		return in.Kind == model.InputQuit
	}
	return false
}
