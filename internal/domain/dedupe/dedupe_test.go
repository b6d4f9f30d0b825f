package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/nowbar/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemory()
		So(d.Size(), ShouldEqual, 0)

		Convey("When an id is seen twice", func() {
			first := d.SeenAndRecord(ctx, "press-1")
			second := d.SeenAndRecord(ctx, "press-1")

			Convey("Then only the second is reported as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an id is unrecorded", func() {
			d.SeenAndRecord(ctx, "press-1")
			d.Unrecord(ctx, "press-1")
			d.Unrecord(ctx, "never-seen")

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "press-1"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a deduper bounded to three ids", t, func() {
		d := dedupe.NewInMemory(dedupe.WithMaxSize(3))
		for i := 1; i <= 4; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i))
		}

		Convey("Then the oldest id is forgotten", func() {
			So(d.Size(), ShouldEqual, 3)
			So(d.SeenAndRecord(ctx, "id-4"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "id-2"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "id-1"), ShouldBeFalse)
		})

		Convey("When a middle id is unrecorded", func() {
			d.Unrecord(ctx, "id-3")
			d.SeenAndRecord(ctx, "id-5")

			Convey("Then nothing else is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "id-2"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "id-4"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemory(dedupe.WithMaxSize(0))
		for i := 0; i < 10000; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i))
		}
		So(d.Size(), ShouldEqual, 10000)
	})
}

func TestInMemoryConcurrent(t *testing.T) {
	Convey("Given many goroutines racing on the same ids", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemory()
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			fresh int
		)
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if !d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each id is new exactly once", func() {
			So(fresh, ShouldEqual, 100)
			So(d.Size(), ShouldEqual, 100)
		})
	})
}
