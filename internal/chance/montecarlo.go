package chance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Observer is notified once per finished game. Implementations must be safe
// for concurrent use when Workers > 1.
type Observer interface {
	ObserveGame(cfg GameConfig, g GameResult)
}

// RunOptions controls how a run is executed. The zero value runs sequentially
// on DefaultRNG.
type RunOptions struct {
	Workers     int                           // <=1 => sequential
	NewSource   func(worker int) RandomSource // one independent source per worker
	KeepSamples bool                          // retain rounds per game in RoundSamples
	Observer    Observer
	Logger      *zap.Logger
}

// RunSimulations plays cfg.NumSimulations independent games and returns their
// aggregate. When ctx is cancelled no new game is started and the aggregate of
// the games completed so far is returned together with ctx's error.
func RunSimulations(ctx context.Context, cfg GameConfig, opts RunOptions) (SimulationResults, error) {
	if err := cfg.Validate(); err != nil {
		return SimulationResults{}, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run_id", uuid.NewString()))

	newSource := opts.NewSource
	if newSource == nil {
		newSource = func(int) RandomSource { return DefaultRNG() }
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.NumSimulations {
		workers = cfg.NumSimulations
	}

	log.Debug("run started",
		zap.Int("games", cfg.NumSimulations),
		zap.Int("workers", workers),
		zap.Int("max_rounds", cfg.MaxRounds),
	)
	start := time.Now()

	var (
		res SimulationResults
		err error
	)
	if workers == 1 {
		res, err = runBatch(ctx, cfg, cfg.NumSimulations, newSource(0), opts)
	} else {
		res, err = runParallel(ctx, cfg, workers, newSource, opts)
	}

	elapsed := time.Since(start)
	if err != nil {
		log.Warn("run interrupted",
			zap.Error(err),
			zap.Int("completed", res.Games),
			zap.Int("requested", cfg.NumSimulations),
			zap.Duration("elapsed", elapsed),
		)
		return res, err
	}
	log.Info("run finished",
		zap.Int("games", res.Games),
		zap.Int("wins", res.Wins),
		zap.Int("losses", res.Losses),
		zap.Int("draws", res.Draws()),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

// runBatch plays n games on a single source and folds them in order.
func runBatch(ctx context.Context, cfg GameConfig, n int, rng RandomSource, opts RunOptions) (SimulationResults, error) {
	var acc SimulationResults
	if opts.KeepSamples {
		acc.RoundSamples = make([]int, 0, n)
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return acc, err
		}
		g := PlayGame(cfg, rng)
		acc = Fold(acc, cfg, g)
		if opts.KeepSamples {
			acc.RoundSamples = append(acc.RoundSamples, g.NumRounds)
		}
		if opts.Observer != nil {
			opts.Observer.ObserveGame(cfg, g)
		}
	}
	return acc, nil
}

// runParallel splits the games across workers, each with its own source and
// partial aggregate, then merges the partials in worker order.
func runParallel(ctx context.Context, cfg GameConfig, workers int, newSource func(int) RandomSource, opts RunOptions) (SimulationResults, error) {
	partials := make([]SimulationResults, workers)
	per, rem := cfg.NumSimulations/workers, cfg.NumSimulations%workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		rng := newSource(w)
		g.Go(func() error {
			r, err := runBatch(gctx, cfg, n, rng, opts)
			partials[w] = r
			return err
		})
	}
	err := g.Wait()

	var out SimulationResults
	for _, p := range partials {
		out = Merge(out, p)
	}
	return out, err
}
