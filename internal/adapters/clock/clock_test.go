package clock_test

import (
	"testing"
	"time"

	"github.com/okian/nowbar/internal/adapters/clock"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeWall struct{ t time.Time }

func (f *fakeWall) now() time.Time      { return f.t }
func (f *fakeWall) add(d time.Duration) { f.t = f.t.Add(d) }

func TestPausable(t *testing.T) {
	Convey("Given a pausable clock on a fake wall", t, func() {
		wall := &fakeWall{t: time.Unix(1000, 0)}
		c := clock.NewPausable(clock.WithWallClock(wall.now))

		Convey("Then it starts paused at zero", func() {
			wall.add(time.Second)
			So(c.Playing(), ShouldBeFalse)
			So(c.Now(), ShouldEqual, 0)
		})

		Convey("When playing for 1.5s", func() {
			c.TogglePlayPause()
			wall.add(1500 * time.Millisecond)

			Convey("Then song time follows the wall", func() {
				So(c.Playing(), ShouldBeTrue)
				So(c.Now(), ShouldAlmostEqual, 1.5, 1e-9)
			})

			Convey("And pausing for a while", func() {
				c.TogglePlayPause()
				wall.add(10 * time.Second)

				Convey("Then time is frozen", func() {
					So(c.Now(), ShouldAlmostEqual, 1.5, 1e-9)
				})

				Convey("And resuming continues from the pause point", func() {
					c.TogglePlayPause()
					wall.add(500 * time.Millisecond)
					So(c.Now(), ShouldAlmostEqual, 2.0, 1e-9)
				})
			})
		})
	})
}

func TestManual(t *testing.T) {
	Convey("Given a manual clock", t, func() {
		var c clock.Clock = clock.NewManual(1)
		m := c.(*clock.Manual)

		m.Advance(0.5)
		So(c.Now(), ShouldEqual, 1.5)

		m.Set(1.0)
		So(c.Now(), ShouldEqual, 1.5)

		c.TogglePlayPause()
		m.Advance(1)
		So(c.Playing(), ShouldBeFalse)
		So(c.Now(), ShouldEqual, 1.5)

		m.Set(3)
		So(c.Now(), ShouldEqual, 3)
	})
}
