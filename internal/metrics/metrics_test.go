package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/chance-sim/internal/chance"
	"github.com/xtding233/chance-sim/internal/metrics"
)

func TestCollectorMatchesAggregate(t *testing.T) {
	cfg := chance.ReferenceConfig()
	cfg.NumSimulations = 400

	c := metrics.New()
	res, err := chance.RunSimulations(context.Background(), cfg, chance.RunOptions{
		Workers:   4,
		NewSource: chance.SeededSources(3),
		Observer:  c,
	})
	require.NoError(t, err)
	c.RunDone()

	assert.Equal(t, float64(res.Wins), testutil.ToFloat64(c.Games.WithLabelValues("win")))
	assert.Equal(t, float64(res.Losses), testutil.ToFloat64(c.Games.WithLabelValues("loss")))
	assert.Equal(t, float64(res.TotalRounds), testutil.ToFloat64(c.Rounds))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs))
}

func TestWriteTextfile(t *testing.T) {
	c := metrics.New()
	cfg := chance.ReferenceConfig()
	c.ObserveGame(cfg, chance.GameResult{FinalBalance: 510, NumRounds: 12})

	path := filepath.Join(t.TempDir(), "chance.prom")
	require.NoError(t, c.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `chance_games_total{outcome="win"} 1`)
	assert.Contains(t, string(b), "chance_rounds_total 12")
}
