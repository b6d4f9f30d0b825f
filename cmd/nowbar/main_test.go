package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/nowbar/internal/adapters/clock"
	"github.com/okian/nowbar/internal/adapters/mq/queue"
	service "github.com/okian/nowbar/internal/app"
	"github.com/okian/nowbar/internal/config"
	"github.com/okian/nowbar/pkg/logger"
)

func writeChart(dir string) (string, string) {
	gems := filepath.Join(dir, "gems.txt")
	downbeats := filepath.Join(dir, "downbeats.txt")
	_ = os.WriteFile(gems, []byte("1.0\t1\n1.5\t2\n2.0\t3\n"), 0o600)
	_ = os.WriteFile(downbeats, []byte("1.0\n3.0\n"), 0o600)
	return gems, downbeats
}

func TestNewClock(t *testing.T) {
	convey.Convey("Given configuration without a song", t, func() {
		cfg := config.New()
		clk, track, err := newClock(cfg, logger.Nop())

		convey.Convey("Then a paused wall clock is used", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(track, convey.ShouldBeNil)
			_, ok := clk.(*clock.Pausable)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(clk.Playing(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a song path with no tracks", t, func() {
		cfg := config.New()
		cfg.SongPath = filepath.Join(t.TempDir(), "missing")
		_, _, err := newClock(cfg, logger.Nop())
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestHTTPServer(t *testing.T) {
	convey.Convey("Given the HTTP server of a session", t, func() {
		ctx := context.Background()
		sess, err := service.New(nil, nil, clock.NewManual(0))
		convey.So(err, convey.ShouldBeNil)
		srv := newHTTPServer(ctx, ":0", sess, queue.NewInMemoryQueue(), 5)

		convey.Convey("Then every route is mounted", func() {
			for _, path := range []string{"/healthz", "/stats", "/openapi.yaml"} {
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a chart and a simulated terminal", t, func() {
		cfg := config.New()
		cfg.GemsPath, cfg.DownbeatsPath = writeChart(t.TempDir())
		screen := tcell.NewSimulationScreen("UTF-8")
		convey.So(screen.Init(), convey.ShouldBeNil)
		defer screen.Fini()
		screen.SetSize(60, 20)

		convey.Convey("When the player unpauses, presses a lane and quits", func() {
			screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
			screen.InjectKey(tcell.KeyRune, '1', tcell.ModNone)
			screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

			done := make(chan error, 1)
			go func() { done <- run(context.Background(), cfg, screen, logger.Nop()) }()

			var (
				err      error
				finished bool
			)
			select {
			case err = <-done:
				finished = true
			case <-time.After(5 * time.Second):
			}

			convey.Convey("Then the session ends cleanly", func() {
				convey.So(finished, convey.ShouldBeTrue)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			convey.So(run(ctx, cfg, screen, logger.Nop()), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a missing chart", t, func() {
		cfg := config.New()
		cfg.GemsPath = filepath.Join(t.TempDir(), "nope.txt")
		screen := tcell.NewSimulationScreen("UTF-8")
		convey.So(screen.Init(), convey.ShouldBeNil)
		defer screen.Fini()
		convey.So(run(context.Background(), cfg, screen, logger.Nop()), convey.ShouldNotBeNil)
	})
}
