package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/nowbar/internal/adapters/chart"
	"github.com/okian/nowbar/internal/autoplay"
	"github.com/okian/nowbar/internal/config"
	"github.com/okian/nowbar/pkg/logger"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	defaults := autoplay.DefaultConfig()
	var (
		gemsPath      = flag.String("gems", "", "Gems file (default: gems_path from config)")
		downbeatsPath = flag.String("downbeats", "", "Downbeats file (default: downbeats_path from config)")
		seed          = flag.Int64("seed", defaults.Seed, "Random seed for the scripted player")
		jitter        = flag.Float64("jitter", defaults.Jitter, "Max press offset in seconds")
		wrongLane     = flag.Float64("wrong-lane", defaults.WrongLaneRate, "Probability of pressing a neighbouring lane")
		skip          = flag.Float64("skip", defaults.SkipRate, "Probability of leaving a gem alone")
		runs          = flag.Int("runs", 1, "Number of runs; run i uses seed+i")
		timeout       = flag.Duration("timeout", defaultRunTimeout, "Overall timeout")
		logFile       = flag.String("log", "", "Also append logs to this file")
		verbose       = flag.Bool("verbose", false, "Log progress every song second")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	game, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	level := game.LogLevel
	if *verbose {
		level = "debug"
	}
	closer, err := autoplay.SetupLogging(*logFile, level)
	if err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = closer.Close() }()
	log := logger.Named("autoplay")

	if *gemsPath == "" {
		*gemsPath = game.GemsPath
	}
	if *downbeatsPath == "" {
		*downbeatsPath = game.DownbeatsPath
	}
	song, err := chart.Load(*gemsPath, *downbeatsPath)
	if err != nil {
		log.Error(ctx, "failed to load chart", logger.Error(err))
		return 1
	}

	cfg := autoplay.Config{
		Jitter:        *jitter,
		WrongLaneRate: *wrongLane,
		SkipRate:      *skip,
		Height:        defaults.Height,
		Verbose:       *verbose,
	}
	failed := 0
	for i := 0; i < *runs; i++ {
		cfg.Seed = *seed + int64(i)
		report, err := autoplay.Run(ctx, cfg, game, song, log)
		if report != nil {
			autoplay.LogReport(ctx, log, report)
		}
		if err != nil {
			log.Error(ctx, "run failed", logger.Any("seed", cfg.Seed), logger.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}
