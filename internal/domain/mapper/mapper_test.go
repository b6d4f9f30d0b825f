package mapper_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/okian/nowbar/internal/domain/mapper"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func TestMap(t *testing.T) {
	Convey("Given the default tuning (nowbar 0.2, lookahead 2s)", t, func() {
		m, err := mapper.New(0.2, 2.0)
		So(err, ShouldBeNil)

		Convey("When the event is exactly at now", func() {
			for _, now := range []float64{0, 1.25, 97.5} {
				for _, h := range []float64{600, 1200, 37} {
					p := m.Map(now, now, h)
					So(p.Y, ShouldAlmostEqual, h*0.2, epsilon)
					So(p.Visible, ShouldBeTrue)
				}
			}
		})

		Convey("When the event is lookahead seconds away", func() {
			p := m.Map(12.0, 10.0, 600)

			Convey("Then it sits on the top edge", func() {
				So(p.Y, ShouldAlmostEqual, 600, epsilon)
				So(p.Visible, ShouldBeTrue)
			})
		})

		Convey("When mapping 0.718s ahead on 600 and 1200 pixel viewports", func() {
			small := m.Map(0.718, 0, 600)
			large := m.Map(0.718, 0, 1200)

			Convey("Then the affine span above the nowbar is used", func() {
				So(small.Y, ShouldAlmostEqual, 120+0.359*480, 1e-6)
				So(large.Y, ShouldAlmostEqual, 240+0.359*960, 1e-6)
				So(large.Y, ShouldAlmostEqual, 2*small.Y, 1e-6)
			})
		})

		Convey("When the event is half a second in the past", func() {
			p := m.Map(9.5, 10.0, 600)

			Convey("Then it reaches the bottom edge", func() {
				So(p.Y, ShouldAlmostEqual, 0, 1e-9)
				So(p.Visible, ShouldBeTrue)
			})
			Convey("And anything older is off screen", func() {
				So(m.Map(9.4, 10.0, 600).Visible, ShouldBeFalse)
				So(m.Map(12.1, 10.0, 600).Visible, ShouldBeFalse)
			})
		})

		Convey("When the viewport is resized between calls", func() {
			first := m.Map(1.0, 0.5, 600)
			resized := m.Map(1.0, 0.5, 300)
			again := m.Map(1.0, 0.5, 600)

			Convey("Then each result depends only on its arguments", func() {
				So(resized.Y, ShouldAlmostEqual, first.Y/2, epsilon)
				So(again, ShouldResemble, first)
			})
		})

		Convey("Then NowbarY and Lookahead expose the constants", func() {
			So(m.NowbarY(500), ShouldAlmostEqual, 100, epsilon)
			So(m.Lookahead(), ShouldEqual, 2.0)
		})
	})
}

func TestMapProperties(t *testing.T) {
	Convey("Given random timestamps, times and heights", t, func() {
		rng := rand.New(rand.NewSource(7))
		m, err := mapper.New(0.2, 2.0)
		So(err, ShouldBeNil)

		Convey("Then visibility always agrees with the computed y", func() {
			for i := 0; i < 2000; i++ {
				ts := rng.Float64() * 200
				now := rng.Float64() * 200
				h := 1 + rng.Float64()*2000
				p := m.Map(ts, now, h)
				So(p.Visible, ShouldEqual, 0 <= p.Y && p.Y <= h)
			}
		})

		Convey("Then y strictly increases with the timestamp", func() {
			for i := 0; i < 500; i++ {
				now := rng.Float64() * 100
				h := 1 + rng.Float64()*2000
				a := rng.Float64() * 100
				b := a + 0.001 + rng.Float64()
				So(m.Map(b, now, h).Y, ShouldBeGreaterThan, m.Map(a, now, h).Y)
			}
		})
	})
}

func TestNewValidation(t *testing.T) {
	Convey("Given invalid constants", t, func() {
		_, err := mapper.New(0.2, 0)
		So(errors.Is(err, mapper.ErrInvalidLookahead), ShouldBeTrue)

		_, err = mapper.New(0.2, -1)
		So(errors.Is(err, mapper.ErrInvalidLookahead), ShouldBeTrue)

		_, err = mapper.New(1.0, 2)
		So(errors.Is(err, mapper.ErrInvalidNowbar), ShouldBeTrue)

		_, err = mapper.New(-0.1, 2)
		So(errors.Is(err, mapper.ErrInvalidNowbar), ShouldBeTrue)

		m, err := mapper.New(0, 2)
		So(err, ShouldBeNil)
		So(m, ShouldNotBeNil)
	})
}

func TestLaneX(t *testing.T) {
	Convey("Given five lanes on a 600 wide viewport", t, func() {
		So(mapper.LaneX(1, 5, 600), ShouldEqual, 100)
		So(mapper.LaneX(5, 5, 600), ShouldEqual, 500)
		So(mapper.LaneX(3, 0, 600), ShouldEqual, 0)
	})
}
