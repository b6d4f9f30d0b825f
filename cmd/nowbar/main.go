package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/hako/durafmt"

	"github.com/okian/nowbar/internal/adapters/audio"
	"github.com/okian/nowbar/internal/adapters/chart"
	"github.com/okian/nowbar/internal/adapters/clock"
	"github.com/okian/nowbar/internal/adapters/http/api"
	"github.com/okian/nowbar/internal/adapters/http/swagger"
	"github.com/okian/nowbar/internal/adapters/mq/queue"
	"github.com/okian/nowbar/internal/adapters/mq/worker"
	"github.com/okian/nowbar/internal/adapters/terminal"
	service "github.com/okian/nowbar/internal/app"
	"github.com/okian/nowbar/internal/config"
	"github.com/okian/nowbar/internal/domain/dedupe"
	"github.com/okian/nowbar/internal/domain/judge"
	"github.com/okian/nowbar/internal/domain/mapper"
	"github.com/okian/nowbar/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second

	logFilePermission = 0o600
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// The terminal owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			os.Stderr.WriteString("failed to open log file: " + err.Error() + "\n")
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	if err := logger.InitWithWriter(logOut); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		os.Stderr.WriteString("failed to open terminal: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize terminal: " + err.Error() + "\n")
		os.Exit(1)
	}

	err = run(ctx, cfg, screen, logger.Get())
	screen.Fini()
	if err != nil {
		os.Stderr.WriteString("nowbar: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run plays one session on screen until quit, a signal or a driver error.
func run(ctx context.Context, cfg *config.Config, screen tcell.Screen, log logger.Logger) error {
	song, err := chart.Load(cfg.GemsPath, cfg.DownbeatsPath)
	if err != nil {
		return fmt.Errorf("load chart: %w", err)
	}

	clk, track, err := newClock(cfg, log)
	if err != nil {
		return err
	}
	if track != nil {
		defer func() {
			if err := track.Close(); err != nil {
				log.Error(context.Background(), "close audio", logger.Error(err))
			}
		}()
	}

	m, err := mapper.New(cfg.NowbarFraction, cfg.LookaheadSeconds)
	if err != nil {
		return fmt.Errorf("create mapper: %w", err)
	}
	presenterOpts := []terminal.Option{
		terminal.WithLanes(cfg.Lanes),
		terminal.WithLogger(log.Named("terminal")),
	}
	notifiers := []judge.Notifier{}
	if track != nil {
		presenterOpts = append(presenterOpts, terminal.WithSongLength(track.Length()))
		notifiers = append(notifiers, track)
	}
	presenter := terminal.NewPresenter(screen, m, presenterOpts...)
	notifiers = append(notifiers, presenter)

	sessOpts := []service.Option{
		service.WithConfig(cfg),
		service.WithLogger(log.Named("session")),
	}
	for _, n := range notifiers {
		sessOpts = append(sessOpts, service.WithNotifier(n))
	}
	sess, err := service.New(song.Gems, song.Markers, clk, sessOpts...)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(cfg.InputQueueSize))
	defer func() { _ = q.Close() }()

	if cfg.Addr != "" {
		srv := newHTTPServer(ctx, cfg.Addr, sess, q, cfg.Lanes)
		go func() {
			log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "HTTP server failed", logger.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
			}
		}()
	}

	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pump := terminal.NewPump(screen, q, clk, cfg.Lanes,
		terminal.WithPresenter(presenter),
		terminal.WithPumpLogger(log.Named("input")),
	)
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		pump.Run(runCtx)
	}()

	drv := worker.NewDriver(sess, q, clk, presenter,
		worker.WithName("frames"),
		worker.WithTickRate(cfg.TickHz),
		worker.WithLogger(log.Named("driver")),
	)
	err = drv.Run(runCtx)
	cancel()
	<-pumpDone

	sess.Stop(ctx)
	logSummary(ctx, log, sess.Stats())
	return err
}

// newClock picks the song clock: the audio tracks when song_path is set,
// otherwise a silent wall clock. The controller is nil for the latter.
func newClock(cfg *config.Config, log logger.Logger) (clock.Clock, *audio.Controller, error) {
	if cfg.SongPath == "" {
		log.Info(context.Background(), "no song_path; playing on a silent clock")
		return clock.NewPausable(), nil, nil
	}
	track, err := audio.New(cfg.SongPath, audio.WithLogger(log.Named("audio")))
	if err != nil {
		return nil, nil, fmt.Errorf("open song: %w", err)
	}
	return track, track, nil
}

func newHTTPServer(ctx context.Context, addr string, sess *service.Service, q queue.Queue, lanes int) *http.Server {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(sess, q, sess.Clock(), dedupe.NewInMemory(), lanes).Register(ctx, mux)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func logSummary(ctx context.Context, log logger.Logger, st service.Stats) {
	log.Info(ctx, "session summary",
		logger.String("session", st.SessionID),
		logger.String("score", humanize.Comma(int64(st.Score.Score))),
		logger.Int("max_combo", st.Score.MaxCombo),
		logger.Int("hits", st.Gems.Hit),
		logger.Int("misses", st.Gems.Miss),
		logger.Int("passed", st.Gems.Passed),
		logger.Int("pending", st.Gems.Pending),
		logger.String("song_time", durafmt.Parse(time.Duration(st.Now*float64(time.Second))).LimitFirstN(2).String()),
		logger.Bool("finished", st.Finished),
	)
}
