package autoplay

import (
	"fmt"

	"github.com/okian/nowbar/internal/domain/model"
)

// tally rebuilds the score from judgment notifications alone.
type tally struct {
	step   int
	combo  int
	score  int
	hits   int
	misses int
	whiffs int
}

func (t *tally) OnHit(model.EventID) {
	t.combo++
	t.score += t.step * t.combo
	t.hits++
}

func (t *tally) OnMissOrPass(model.EventID) {
	t.combo = 0
	t.misses++
}

func (t *tally) OnWhiff() {
	t.combo = 0
	t.whiffs++
}

func (t *tally) OnScore(int, int) {}

// Verify checks that every gem was resolved exactly once and that the
// session score matches the one rebuilt from notifications.
func Verify(r *Report) error {
	if r.Pending != 0 {
		return fmt.Errorf("%w: %d gems still pending", ErrVerification, r.Pending)
	}
	if got := r.Hits + r.Misses + r.Passes; got != r.Gems {
		return fmt.Errorf("%w: %d hits + %d misses + %d passes != %d gems",
			ErrVerification, r.Hits, r.Misses, r.Passes, r.Gems)
	}
	if r.Score != r.Recomputed {
		return fmt.Errorf("%w: score %d, recomputed %d", ErrVerification, r.Score, r.Recomputed)
	}
	if r.Hits > r.Planned {
		return fmt.Errorf("%w: %d hits from %d presses", ErrVerification, r.Hits, r.Planned)
	}
	if r.MaxCombo > r.Hits {
		return fmt.Errorf("%w: max combo %d above %d hits", ErrVerification, r.MaxCombo, r.Hits)
	}
	return nil
}
