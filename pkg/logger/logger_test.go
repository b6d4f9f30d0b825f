package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerWriter(t *testing.T) {
	Convey("Given a logger writing into a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at info with fields", func() {
			Get().Info(ctx, "session started",
				String("session", "abc"),
				Int("gems", 3),
				Bool("audio", false),
				Duration("length", 2*time.Second),
			)

			Convey("Then the message and fields are rendered", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "session started")
				So(out, ShouldContainSubstring, "session=abc")
				So(out, ShouldContainSubstring, "gems=3")
				So(out, ShouldContainSubstring, "audio=false")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the configured level", func() {
			SetLevel(slog.LevelWarn)
			Get().Debug(ctx, "hidden")
			Get().Info(ctx, "hidden too")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When using a named logger", func() {
			Named("judge").Warn(ctx, "whiff", Float64("t", 1.5))

			Convey("Then the group prefixes the fields", func() {
				So(buf.String(), ShouldContainSubstring, "judge.t=1.5")
			})
		})

		Convey("When passing a nil writer", func() {
			So(InitWithWriter(nil), ShouldNotBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(SetLevelString("debug"), ShouldBeNil)
		So(SetLevelString(" WARNING "), ShouldBeNil)
		So(SetLevelString(""), ShouldBeNil)
		So(SetLevelString("error"), ShouldBeNil)
		So(SetLevelString("loud"), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given the discard logger", t, func() {
		l := Nop()

		Convey("Then logging never panics", func() {
			So(func() {
				l.Info(context.Background(), "ignored", Int("n", 1))
				l.Named("x").Error(context.TODO(), "ignored")
			}, ShouldNotPanic)
		})
	})
}
