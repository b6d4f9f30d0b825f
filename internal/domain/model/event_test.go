package model_test

import (
	"testing"

	"github.com/okian/nowbar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStatus(t *testing.T) {
	Convey("Given the event statuses", t, func() {
		Convey("Then only pending is non-terminal", func() {
			So(model.StatusPending.Terminal(), ShouldBeFalse)
			So(model.StatusHit.Terminal(), ShouldBeTrue)
			So(model.StatusMiss.Terminal(), ShouldBeTrue)
			So(model.StatusPassed.Terminal(), ShouldBeTrue)
		})

		Convey("Then they render readable names", func() {
			So(model.StatusPending.String(), ShouldEqual, "pending")
			So(model.StatusPassed.String(), ShouldEqual, "passed")
			So(model.Status(42).String(), ShouldEqual, "status(42)")
		})
	})
}

func TestKindAndLane(t *testing.T) {
	Convey("Given events of both kinds", t, func() {
		gem := model.TimedEvent{ID: 0, Kind: model.KindGem, Timestamp: 1.0, Lane: 2}
		beat := model.TimedEvent{ID: 1, Kind: model.KindDownbeat, Timestamp: 1.0, Lane: model.NoLane}

		So(gem.HasLane(), ShouldBeTrue)
		So(beat.HasLane(), ShouldBeFalse)
		So(gem.Kind.String(), ShouldEqual, "gem")
		So(beat.Kind.String(), ShouldEqual, "downbeat")
		So(model.InputTogglePause.String(), ShouldEqual, "toggle_pause")
	})
}
