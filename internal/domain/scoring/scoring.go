// Package scoring defines the score and combo accumulator fed by judgment
// outcomes.
package scoring

// Default scoring configuration constants.
const (
	defaultStepPoints = 100
)

// Option applies a configuration option to the State.
type Option func(*State)

// WithStepPoints sets the points awarded per combo step. Non-positive values
// keep the default.
func WithStepPoints(points int) Option {
	return func(s *State) {
		if points > 0 {
			s.stepPoints = points
		}
	}
}

// Snapshot is a read-only copy of the accumulator.
type Snapshot struct {
	Score    int `json:"score"`
	Combo    int `json:"combo"`
	MaxCombo int `json:"max_combo"`
	Hits     int `json:"hits"`
	Breaks   int `json:"breaks"`
}

// Recorder is the mutation surface of the accumulator. Only the judgment
// engine holds one.
type Recorder interface {
	// RegisterHit extends the combo and returns the points awarded.
	RegisterHit() int
	// RegisterMiss breaks the combo. The score is unchanged.
	RegisterMiss()
	Snapshot() Snapshot
}

// State accumulates score and combo. Score never decreases and combo never
// goes negative.
type State struct {
	stepPoints int
	score      int
	combo      int
	maxCombo   int
	hits       int
	breaks     int
}

// New creates an accumulator at zero.
func New(opts ...Option) *State {
	s := &State{stepPoints: defaultStepPoints}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PointsFor returns the award for a hit made with comboBefore consecutive
// hits already on the board.
func (s *State) PointsFor(comboBefore int) int {
	return s.stepPoints * (comboBefore + 1)
}

// RegisterHit increments the combo then adds step * combo to the score.
func (s *State) RegisterHit() int {
	delta := s.PointsFor(s.combo)
	s.combo++
	s.score += delta
	s.hits++
	if s.combo > s.maxCombo {
		s.maxCombo = s.combo
	}
	return delta
}

// RegisterMiss resets the combo.
func (s *State) RegisterMiss() {
	if s.combo > 0 {
		s.breaks++
	}
	s.combo = 0
}

// Score returns the cumulative score.
func (s *State) Score() int { return s.score }

// Combo returns the current streak.
func (s *State) Combo() int { return s.combo }

// Snapshot returns a copy of the accumulator.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Score:    s.score,
		Combo:    s.combo,
		MaxCombo: s.maxCombo,
		Hits:     s.hits,
		Breaks:   s.breaks,
	}
}

// ExpectedScore returns the score of k consecutive hits from an empty combo.
func ExpectedScore(stepPoints, k int) int {
	return stepPoints * k * (k + 1) / 2
}
