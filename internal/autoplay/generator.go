package autoplay

import (
	"math/rand"
	"sort"

	"github.com/okian/nowbar/internal/domain/model"
)

// Press is one scripted lane press.
type Press struct {
	At     float64
	Lane   int
	Target model.EventID
	Wrong  bool
}

// Plan is the full press schedule for a chart, sorted by time.
type Plan struct {
	Presses []Press
	Skipped int
	Wrong   int
}

// Schedule builds a press plan for every gem in events. Downbeats are
// ignored. The same rng state yields the same plan.
func Schedule(events []model.TimedEvent, lanes int, cfg Config, rng *rand.Rand) Plan {
	var plan Plan
	for _, ev := range events {
		if ev.Kind != model.KindGem {
			continue
		}
		if rng.Float64() < cfg.SkipRate {
			plan.Skipped++
			continue
		}
		p := Press{
			At:     ev.Timestamp + (rng.Float64()*2-1)*cfg.Jitter,
			Lane:   ev.Lane,
			Target: ev.ID,
		}
		if lanes > 1 && rng.Float64() < cfg.WrongLaneRate {
			p.Lane = ev.Lane%lanes + 1
			p.Wrong = true
			plan.Wrong++
		}
		plan.Presses = append(plan.Presses, p)
	}
	sort.SliceStable(plan.Presses, func(i, j int) bool {
		return plan.Presses[i].At < plan.Presses[j].At
	})
	return plan
}
