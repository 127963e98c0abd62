package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/chance-sim/internal/chance"
	"github.com/xtding233/chance-sim/internal/config"
	"github.com/xtding233/chance-sim/internal/logger"
	"github.com/xtding233/chance-sim/internal/metrics"
	"github.com/xtding233/chance-sim/internal/report"
)

type flags struct {
	configDir   string
	profile     string
	logLevel    string
	metricsFile string
	watch       bool
	interval    time.Duration

	numSimulations int
	maxRounds      int
	workers        int
	seed           uint64
	samples        bool
}

func parseFlags(env config.Env) (flags, config.Overrides) {
	var f flags
	flag.StringVar(&f.configDir, "config-dir", env.ConfigDir, "directory holding default.yaml and profiles/")
	flag.StringVar(&f.profile, "profile", env.Profile, "profile name under profiles/ (optional)")
	flag.StringVar(&f.logLevel, "log-level", env.LogLevel, "debug, info, warn or error")
	flag.StringVar(&f.metricsFile, "metrics-file", env.MetricsFile, "write prometheus metrics to this file after each run")
	flag.BoolVar(&f.watch, "watch", false, "re-run whenever the config files change")
	flag.DurationVar(&f.interval, "watch-interval", 2*time.Second, "polling interval for -watch")
	flag.IntVar(&f.numSimulations, "n", 0, "number of games (overrides config)")
	flag.IntVar(&f.maxRounds, "max-rounds", 0, "round cap per game, 0 = unbounded (overrides config)")
	flag.IntVar(&f.workers, "workers", 0, "parallel workers (overrides config)")
	flag.Uint64Var(&f.seed, "seed", 0, "seed for a reproducible run (overrides config)")
	flag.BoolVar(&f.samples, "samples", false, "keep rounds per game and print their distribution")
	flag.Parse()

	// only flags given on the command line override the files
	var o config.Overrides
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "n":
			o.NumSimulations = &f.numSimulations
		case "max-rounds":
			o.MaxRounds = &f.maxRounds
		case "workers":
			o.Workers = &f.workers
		case "seed":
			o.Seed = &f.seed
		case "samples":
			o.KeepSamples = &f.samples
		}
	})
	return f, o
}

func main() {
	env, err := config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}
	f, overrides := parseFlags(env)

	if err := logger.Init(f.logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.Log
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(f.configDir, log)
	collector := metrics.New()

	run := func() error {
		raw, err := loader.LoadMerged(f.profile)
		if err != nil {
			return err
		}
		resolved, err := config.Resolve(raw, overrides)
		if err != nil {
			return err
		}
		res, runErr := chance.RunSimulations(ctx, resolved.Game, resolved.RunOptions(log, collector))
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			return runErr
		}
		if err := report.Build(resolved.Game, res).Render(os.Stdout); err != nil {
			return err
		}
		collector.RunDone()
		if f.metricsFile != "" {
			if err := collector.WriteTextfile(f.metricsFile); err != nil {
				log.Warn("write metrics", zap.String("path", f.metricsFile), zap.Error(err))
			}
		}
		return runErr
	}

	if err := run(); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("simulation failed", zap.Error(err))
		if !f.watch {
			// os.Exit skips deferred calls
			_ = log.Sync()
			os.Exit(1)
		}
	}
	if !f.watch {
		return
	}

	log.Info("watching config", zap.Strings("paths", loader.Paths(f.profile)), zap.Duration("interval", f.interval))
	w := config.NewFileWatcher(loader.Paths(f.profile), f.interval, func(path string) {
		log.Info("config changed", zap.String("path", path))
		loader.Invalidate()
		if err := run(); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("simulation failed", zap.Error(err))
		}
	})
	w.Run(ctx)
}
