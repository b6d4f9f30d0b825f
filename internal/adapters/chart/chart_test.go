package chart_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/nowbar/internal/adapters/chart"
	"github.com/okian/nowbar/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseGems(t *testing.T) {
	Convey("Given a gems annotation", t, func() {
		in := "1.0\t1\n\n1.05\t2\textra\n  3.5\t4  \nbogus\t1\n2.0\tx\n4.0\n"
		gems, err := chart.ParseGems(strings.NewReader(in))
		So(err, ShouldBeNil)

		Convey("Then good lines parse and bad lines stay for rejection", func() {
			So(len(gems), ShouldEqual, 6)
			So(gems[0], ShouldResemble, catalog.GemRecord{Timestamp: 1.0, Lane: 1})
			So(gems[1], ShouldResemble, catalog.GemRecord{Timestamp: 1.05, Lane: 2})
			So(gems[2], ShouldResemble, catalog.GemRecord{Timestamp: 3.5, Lane: 4})
			So(math.IsNaN(gems[3].Timestamp), ShouldBeTrue)
			So(gems[4].Lane, ShouldEqual, 0)
			So(gems[5].Lane, ShouldEqual, 0)
		})

		Convey("And the catalog rejects exactly the bad lines", func() {
			c, rejected := catalog.New(gems, nil)
			So(c.Len(), ShouldEqual, 3)
			So(len(rejected), ShouldEqual, 3)
			So(rejected[0].Index, ShouldEqual, 3)
			So(errors.Is(rejected[0].Err, catalog.ErrInvalidRecord), ShouldBeTrue)
		})
	})
}

func TestParseMarkers(t *testing.T) {
	Convey("Given a downbeats annotation", t, func() {
		markers, err := chart.ParseMarkers(strings.NewReader("0.5\t1\n2.5\n\nnope\n"))
		So(err, ShouldBeNil)
		So(len(markers), ShouldEqual, 3)
		So(markers[0].Timestamp, ShouldEqual, 0.5)
		So(markers[1].Timestamp, ShouldEqual, 2.5)
		So(math.IsNaN(markers[2].Timestamp), ShouldBeTrue)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given chart files on disk", t, func() {
		dir := t.TempDir()
		gemsPath := filepath.Join(dir, "song_gems.txt")
		beatsPath := filepath.Join(dir, "song_downbeats.txt")
		So(os.WriteFile(gemsPath, []byte("1.0\t1\n2.0\t2\n"), 0o600), ShouldBeNil)
		So(os.WriteFile(beatsPath, []byte("0.0\n1.0\n"), 0o600), ShouldBeNil)

		Convey("When loading both", func() {
			c, err := chart.Load(gemsPath, beatsPath)
			So(err, ShouldBeNil)
			So(len(c.Gems), ShouldEqual, 2)
			So(len(c.Markers), ShouldEqual, 2)
		})

		Convey("When the downbeats path is empty", func() {
			c, err := chart.Load(gemsPath, "")
			So(err, ShouldBeNil)
			So(c.Markers, ShouldBeEmpty)
		})

		Convey("When a file is missing", func() {
			_, err := chart.Load(filepath.Join(dir, "missing.txt"), beatsPath)
			So(errors.Is(err, chart.ErrRead), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)

			_, err = chart.Load(gemsPath, filepath.Join(dir, "missing.txt"))
			So(errors.Is(err, chart.ErrRead), ShouldBeTrue)
		})
	})
}
