package chance_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xtding233/chance-sim/internal/chance"
)

func TestFoldCountsOutcomes(t *testing.T) {
	cfg := flatBetConfigN(t, 3)

	var acc chance.SimulationResults
	acc = chance.Fold(acc, cfg, chance.GameResult{FinalBalance: 20, NumRounds: 2, MaxBalance: 20, MinBalance: 10})
	acc = chance.Fold(acc, cfg, chance.GameResult{FinalBalance: -30, NumRounds: 5, MaxBalance: 10, MinBalance: -30})
	acc = chance.Fold(acc, cfg, chance.GameResult{FinalBalance: 0, NumRounds: 4, MaxBalance: 10, MinBalance: -10})

	assert.Equal(t, 3, acc.Games)
	assert.Equal(t, 1, acc.Wins)
	assert.Equal(t, 1, acc.Losses)
	assert.Equal(t, 1, acc.Draws())
	assert.Equal(t, 11, acc.TotalRounds)
	assert.Equal(t, -10, acc.TotalBalance)
	assert.Equal(t, 20, acc.MaxBalance)
	assert.Equal(t, -30, acc.MinBalance)
}

func TestFoldFirstGameSetsExtrema(t *testing.T) {
	cfg := chance.GameConfig{MinBet: 1, MaxBet: 1, WinThreshold: 200, LoseThreshold: 100, InitialBalance: 150, NumSimulations: 1}
	acc := chance.Fold(chance.SimulationResults{}, cfg, chance.GameResult{FinalBalance: 200, NumRounds: 50, MaxBalance: 200, MinBalance: 149})

	// a zero-initialised accumulator would have reported 0 as the minimum
	assert.Equal(t, 149, acc.MinBalance)
	assert.Equal(t, 200, acc.MaxBalance)
}

func TestMergeMatchesSingleBatch(t *testing.T) {
	cfg := chance.ReferenceConfig()
	rng := chance.NewSeededRNG(99)

	games := make([]chance.GameResult, 500)
	for i := range games {
		games[i] = chance.PlayGame(cfg, rng)
	}

	var whole, left, right chance.SimulationResults
	for i, g := range games {
		whole = chance.Fold(whole, cfg, g)
		if i < 173 {
			left = chance.Fold(left, cfg, g)
		} else {
			right = chance.Fold(right, cfg, g)
		}
	}

	assert.Equal(t, whole, chance.Merge(left, right))
	assert.Equal(t, whole, chance.Merge(right, left))
	assert.Equal(t, whole, chance.Merge(whole, chance.SimulationResults{}))
	assert.Equal(t, whole, chance.Merge(chance.SimulationResults{}, whole))
}

func TestRunSimulationsRejectsInvalidConfig(t *testing.T) {
	cfg := chance.ReferenceConfig()
	cfg.NumSimulations = 0

	res, err := chance.RunSimulations(context.Background(), cfg, chance.RunOptions{})
	require.ErrorIs(t, err, chance.ErrInvalidConfig)
	assert.Zero(t, res.Games)
}

func TestRunSimulationsForcedWins(t *testing.T) {
	cfg := flatBetConfigN(t, 25)

	res, err := chance.RunSimulations(context.Background(), cfg, chance.RunOptions{
		NewSource: func(int) chance.RandomSource { return fixedDie{face: 6} },
	})
	require.NoError(t, err)

	assert.Equal(t, 25, res.Games)
	assert.Equal(t, 25, res.Wins)
	assert.Zero(t, res.Losses)
	assert.Equal(t, 50, res.TotalRounds)
	assert.Equal(t, 500, res.TotalBalance)
	assert.Equal(t, 20, res.MaxBalance)
	assert.Equal(t, 10, res.MinBalance)
}

func TestRunSimulationsProperties(t *testing.T) {
	cfg := chance.ReferenceConfig()
	cfg.NumSimulations = 3000

	res, err := chance.RunSimulations(context.Background(), cfg, chance.RunOptions{
		NewSource:   chance.SeededSources(2024),
		KeepSamples: true,
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)

	assert.Equal(t, cfg.NumSimulations, res.Games)
	assert.LessOrEqual(t, res.Wins+res.Losses, cfg.NumSimulations)
	assert.Zero(t, res.Draws())
	assert.Len(t, res.RoundSamples, cfg.NumSimulations)
	assert.LessOrEqual(t, res.MinBalance, res.MaxBalance)

	sum := 0
	for _, n := range res.RoundSamples {
		sum += n
	}
	assert.Equal(t, res.TotalRounds, sum)

	// fair walk from 0 between -100 and 500: a bit over 1 in 6 games win
	winRate := float64(res.Wins) / float64(res.Games)
	assert.InDelta(t, 0.18, winRate, 0.04)
}

func TestRunSimulationsParallelReproducible(t *testing.T) {
	cfg := chance.ReferenceConfig()
	cfg.NumSimulations = 2001

	opts := chance.RunOptions{Workers: 4, NewSource: chance.SeededSources(7), KeepSamples: true}
	a, err := chance.RunSimulations(context.Background(), cfg, opts)
	require.NoError(t, err)
	b, err := chance.RunSimulations(context.Background(), cfg, opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 2001, a.Games)
	assert.Len(t, a.RoundSamples, 2001)
}

func TestRunSimulationsParallelEqualsMergedWorkers(t *testing.T) {
	cfg := chance.ReferenceConfig()
	cfg.NumSimulations = 10

	par, err := chance.RunSimulations(context.Background(), cfg, chance.RunOptions{Workers: 3, NewSource: chance.SeededSources(11)})
	require.NoError(t, err)

	// 10 games on 3 workers => 4, 3, 3
	var want chance.SimulationResults
	for w, n := range []int{4, 3, 3} {
		part := cfg
		part.NumSimulations = n
		r, err := chance.RunSimulations(context.Background(), part, chance.RunOptions{
			NewSource: func(int) chance.RandomSource { return chance.NewSeededStream(11, uint64(w)) },
		})
		require.NoError(t, err)
		want = chance.Merge(want, r)
	}
	assert.Equal(t, want, par)
}

func TestRunSimulationsCancelledReturnsPartial(t *testing.T) {
	cfg := chance.ReferenceConfig()
	ctx, cancel := context.WithCancel(context.Background())

	obs := &cancelAfter{n: 10, cancel: cancel}
	res, err := chance.RunSimulations(ctx, cfg, chance.RunOptions{
		NewSource: chance.SeededSources(1),
		Observer:  obs,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, res.Games)
	assert.Equal(t, res.Games, res.Wins+res.Losses)
}

func TestRunSimulationsParallelCancelledReturnsPartial(t *testing.T) {
	cfg := chance.ReferenceConfig()
	ctx, cancel := context.WithCancel(context.Background())

	obs := &cancelAfter{n: 50, cancel: cancel}
	res, err := chance.RunSimulations(ctx, cfg, chance.RunOptions{
		Workers:     4,
		NewSource:   chance.SeededSources(1),
		KeepSamples: true,
		Observer:    obs,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, res.Games, 50)
	assert.Less(t, res.Games, cfg.NumSimulations)
	assert.Len(t, res.RoundSamples, res.Games)
	assert.Equal(t, res.Games, res.Wins+res.Losses)

	sum := 0
	for _, n := range res.RoundSamples {
		sum += n
	}
	assert.Equal(t, res.TotalRounds, sum)
}

// cancelAfter cancels the run once n games were observed.
type cancelAfter struct {
	mu     sync.Mutex
	seen   int
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) ObserveGame(chance.GameConfig, chance.GameResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen++
	if c.seen == c.n {
		c.cancel()
	}
}

func TestRunSimulationsWithCapCountsDraws(t *testing.T) {
	cfg, err := chance.ReferenceConfig().WithMaxRounds(1)
	require.NoError(t, err)
	cfg.NumSimulations = 100

	res, err := chance.RunSimulations(context.Background(), cfg, chance.RunOptions{NewSource: chance.SeededSources(3)})
	require.NoError(t, err)

	// a single bet of at most 50 can't reach either threshold from 0
	assert.Equal(t, 100, res.Draws())
	assert.Equal(t, 100, res.TotalRounds)
}

func flatBetConfigN(t *testing.T, n int) chance.GameConfig {
	t.Helper()
	cfg, err := chance.NewGameConfig(10, 10, 20, -20, 0, n)
	require.NoError(t, err)
	return cfg
}
