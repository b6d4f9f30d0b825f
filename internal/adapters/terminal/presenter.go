// Package terminal draws sessions on a tcell screen and turns key presses
// into inputs.
package terminal

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	service "github.com/okian/nowbar/internal/app"
	"github.com/okian/nowbar/internal/domain/mapper"
	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/pkg/logger"
)

const (
	hudRows            = 1
	defaultLanes       = 5
	defaultPressFrames = 6
	flashFrames        = 30
	marginFraction     = 0.1

	gemRune      = '●'
	buttonRune   = '◯'
	nowbarRune   = '━'
	downbeatRune = '┄'
)

// laneColors follows the lane order of the original chart layout.
var laneColors = []tcell.Color{ //nolint:gochecknoglobals // palette
	tcell.ColorRed,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorBlue,
	tcell.ColorPurple,
}

var (
	styleBase     = tcell.StyleDefault                                //nolint:gochecknoglobals // palette
	styleNowbar   = styleBase.Foreground(tcell.ColorWhite).Bold(true) //nolint:gochecknoglobals // palette
	styleDownbeat = styleBase.Foreground(tcell.ColorSilver)           //nolint:gochecknoglobals // palette
	styleHit      = styleBase.Foreground(tcell.ColorWhite).Bold(true) //nolint:gochecknoglobals // palette
	styleGone     = styleBase.Foreground(tcell.ColorGray).Dim(true)   //nolint:gochecknoglobals // palette
	styleHUD      = styleBase.Foreground(tcell.ColorWhite)            //nolint:gochecknoglobals // palette
)

// Presenter renders frames. Draw and the notifier methods run on the driver
// goroutine; Press is called from the input goroutine.
type Presenter struct {
	screen tcell.Screen
	mapper *mapper.Mapper
	logger logger.Logger

	lanes       int
	length      time.Duration
	pressFrames int

	mu      sync.Mutex
	pressed map[int]int // lane -> frames of highlight left
	flash   string
	flashN  int
}

// NewPresenter creates a presenter over an initialised screen.
func NewPresenter(screen tcell.Screen, m *mapper.Mapper, opts ...Option) *Presenter {
	p := &Presenter{
		screen:      screen,
		mapper:      m,
		logger:      logger.Nop(),
		lanes:       defaultLanes,
		pressFrames: defaultPressFrames,
		pressed:     make(map[int]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Height returns the playfield height in rows, the unit the mapper works in.
func (p *Presenter) Height() float64 {
	_, h := p.screen.Size()
	if h <= hudRows {
		return 1
	}
	return float64(h - hudRows)
}

// Row converts a mapper y on a playfield of the given height to a screen
// row. Mapper y grows upward, rows grow downward.
func Row(y, height float64) int {
	row := hudRows + int(math.Round(height-y))
	maxRow := hudRows + int(height) - 1
	if row > maxRow {
		row = maxRow
	}
	if row < hudRows {
		row = hudRows
	}
	return row
}

// Press highlights a lane button for the next few frames.
func (p *Presenter) Press(lane int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pressed[lane] = p.pressFrames
}

// Draw renders one frame and shows it.
func (p *Presenter) Draw(_ context.Context, f service.Frame) {
	p.screen.Clear()
	w, _ := p.screen.Size()
	height := f.Height
	if height <= 0 {
		height = p.Height()
	}
	left, right := int(float64(w)*marginFraction), int(float64(w)*(1-marginFraction))

	for _, s := range f.Sprites {
		if s.Kind == model.KindDownbeat && s.Visible {
			p.hline(left, right, Row(s.Y, height), downbeatRune, styleDownbeat)
		}
	}

	nowbar := Row(p.mapper.NowbarY(height), height)
	p.hline(left, right, nowbar, nowbarRune, styleNowbar)

	p.mu.Lock()
	for lane := 1; lane <= p.lanes; lane++ {
		style := styleBase.Foreground(p.laneColor(lane))
		if p.pressed[lane] > 0 {
			style = style.Reverse(true).Bold(true)
			p.pressed[lane]--
		}
		p.screen.SetContent(p.laneX(lane, w), nowbar, buttonRune, nil, style)
	}
	flash := p.flash
	if p.flashN > 0 {
		p.flashN--
		if p.flashN == 0 {
			p.flash = ""
		}
	}
	p.mu.Unlock()

	for _, s := range f.Sprites {
		if s.Kind != model.KindGem || !s.Visible {
			continue
		}
		p.screen.SetContent(p.laneX(s.Lane, w), Row(s.Y, height), gemRune, nil, p.gemStyle(s))
	}

	p.text(0, 0, hudLine(f.Score, f.Combo, f.Now, p.length, f.Playing, flash), styleHUD)
	p.screen.Show()
}

func (p *Presenter) gemStyle(s service.Sprite) tcell.Style {
	switch s.Status {
	case model.StatusHit:
		return styleHit
	case model.StatusMiss, model.StatusPassed:
		return styleGone
	default:
		return styleBase.Foreground(p.laneColor(s.Lane))
	}
}

func (p *Presenter) laneColor(lane int) tcell.Color {
	if lane < 1 {
		return tcell.ColorWhite
	}
	return laneColors[(lane-1)%len(laneColors)]
}

func (p *Presenter) laneX(lane, width int) int {
	return int(math.Round(mapper.LaneX(lane, p.lanes, float64(width))))
}

func (p *Presenter) hline(from, to, row int, r rune, style tcell.Style) {
	for x := from; x < to; x++ {
		p.screen.SetContent(x, row, r, nil, style)
	}
}

func (p *Presenter) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (p *Presenter) setFlash(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flash = msg
	p.flashN = flashFrames
}

// OnHit flashes the hit in the HUD.
func (p *Presenter) OnHit(id model.EventID) { p.setFlash(fmt.Sprintf("HIT #%d", id)) }

// OnMissOrPass flashes the miss in the HUD.
func (p *Presenter) OnMissOrPass(id model.EventID) { p.setFlash(fmt.Sprintf("MISS #%d", id)) }

// OnWhiff flashes a whiff in the HUD.
func (p *Presenter) OnWhiff() { p.setFlash("WHIFF") }

// OnScore is a no-op; every frame carries the score.
func (p *Presenter) OnScore(int, int) {}
