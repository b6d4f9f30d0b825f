package autoplay

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/okian/nowbar/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging initialises the global logger on stdout, teeing into logFile
// when one is given. The returned closer releases the file.
func SetupLogging(logFile, level string) (io.Closer, error) {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
	)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
		closer = f
	}
	if err := logger.InitWithWriter(w); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(level); err != nil {
		return nil, fmt.Errorf("set log level: %w", err)
	}
	return closer, nil
}

// LogReport writes the run summary.
func LogReport(ctx context.Context, log logger.Logger, r *Report) {
	var hitRate float64
	if r.Gems > 0 {
		hitRate = float64(r.Hits) / float64(r.Gems) * 100
	}
	log.Info(ctx, "autoplay finished",
		logger.String("run", r.RunID),
		logger.String("session", r.SessionID),
		logger.String("score", humanize.Comma(int64(r.Score))),
		logger.Int("max_combo", r.MaxCombo),
		logger.Int("gems", r.Gems),
		logger.Int("hits", r.Hits),
		logger.Int("misses", r.Misses),
		logger.Int("passes", r.Passes),
		logger.Int("whiffs", r.Whiffs),
		logger.String("hit_rate", fmt.Sprintf("%.1f%%", hitRate)),
		logger.Int("frames", r.Frames),
		logger.String("song_time", fmt.Sprintf("%.2fs", r.SongTime)),
		logger.String("took", durafmt.Parse(r.Duration).LimitFirstN(2).String()),
	)
}
