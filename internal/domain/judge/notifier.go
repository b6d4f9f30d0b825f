package judge

import "github.com/okian/nowbar/internal/domain/model"

// Notifier receives discrete judgment outcomes. Calls happen on the single
// writer goroutine, synchronously inside Press and Advance.
type Notifier interface {
	OnHit(id model.EventID)
	OnMissOrPass(id model.EventID)
	OnWhiff()
	// OnScore is called whenever score or combo changed.
	OnScore(score, combo int)
}

// Nop ignores every notification.
type Nop struct{}

func (Nop) OnHit(model.EventID)        {}
func (Nop) OnMissOrPass(model.EventID) {}
func (Nop) OnWhiff()                   {}
func (Nop) OnScore(int, int)           {}

// Multi fans notifications out in order.
type Multi []Notifier

func (m Multi) OnHit(id model.EventID) {
	for _, n := range m {
		n.OnHit(id)
	}
}

func (m Multi) OnMissOrPass(id model.EventID) {
	for _, n := range m {
		n.OnMissOrPass(id)
	}
}

func (m Multi) OnWhiff() {
	for _, n := range m {
		n.OnWhiff()
	}
}

func (m Multi) OnScore(score, combo int) {
	for _, n := range m {
		n.OnScore(score, combo)
	}
}
