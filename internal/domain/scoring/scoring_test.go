package scoring_test

import (
	"testing"

	scoring "github.com/okian/nowbar/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestState_RegisterHit(t *testing.T) {
	Convey("Given a new accumulator", t, func() {
		s := scoring.New()

		Convey("When registering the first hit", func() {
			delta := s.RegisterHit()

			Convey("Then combo becomes 1 and 100 points are awarded", func() {
				So(delta, ShouldEqual, 100)
				So(s.Combo(), ShouldEqual, 1)
				So(s.Score(), ShouldEqual, 100)
			})
		})

		Convey("When registering k consecutive hits", func() {
			for k := 1; k <= 25; k++ {
				s.RegisterHit()

				So(s.Combo(), ShouldEqual, k)
				So(s.Score(), ShouldEqual, 100*k*(k+1)/2)
				So(s.Score(), ShouldEqual, scoring.ExpectedScore(100, k))
			}
		})

		Convey("When asking for the award before a hit", func() {
			So(s.PointsFor(0), ShouldEqual, 100)
			So(s.PointsFor(4), ShouldEqual, 500)
		})
	})
}

func TestState_RegisterMiss(t *testing.T) {
	Convey("Given an accumulator with a running combo", t, func() {
		s := scoring.New()
		s.RegisterHit()
		s.RegisterHit()
		s.RegisterHit()
		So(s.Score(), ShouldEqual, 600)

		Convey("When a miss is registered", func() {
			s.RegisterMiss()

			Convey("Then combo resets and score is kept", func() {
				So(s.Combo(), ShouldEqual, 0)
				So(s.Score(), ShouldEqual, 600)
			})

			Convey("And the next hit restarts the multiplier", func() {
				So(s.RegisterHit(), ShouldEqual, 100)
				So(s.Score(), ShouldEqual, 700)
			})

			Convey("And the snapshot keeps the longest streak", func() {
				snap := s.Snapshot()
				So(snap, ShouldResemble, scoring.Snapshot{Score: 600, Combo: 0, MaxCombo: 3, Hits: 3, Breaks: 1})
			})
		})

		Convey("When misses repeat", func() {
			s.RegisterMiss()
			s.RegisterMiss()

			Convey("Then combo never goes negative and only one break is counted", func() {
				So(s.Combo(), ShouldEqual, 0)
				So(s.Snapshot().Breaks, ShouldEqual, 1)
			})
		})
	})
}

func TestState_Options(t *testing.T) {
	Convey("Given a custom step", t, func() {
		s := scoring.New(scoring.WithStepPoints(50))
		s.RegisterHit()
		s.RegisterHit()
		So(s.Score(), ShouldEqual, 150)

		Convey("Then non-positive steps keep the default", func() {
			d := scoring.New(scoring.WithStepPoints(0), scoring.WithStepPoints(-3))
			So(d.RegisterHit(), ShouldEqual, 100)
		})
	})
}

func TestState_ScoreNeverDecreases(t *testing.T) {
	Convey("Given an arbitrary sequence of outcomes", t, func() {
		s := scoring.New()
		pattern := []bool{true, true, false, true, false, false, true, true, true, false}
		last := 0
		for i := 0; i < 50; i++ {
			if pattern[i%len(pattern)] {
				s.RegisterHit()
			} else {
				s.RegisterMiss()
			}
			So(s.Score(), ShouldBeGreaterThanOrEqualTo, last)
			So(s.Combo(), ShouldBeGreaterThanOrEqualTo, 0)
			last = s.Score()
		}
	})
}
