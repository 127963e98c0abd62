package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xtding233/chance-sim/internal/chance"
)

// Collector counts simulated games. It implements chance.Observer and is safe
// for concurrent workers.
type Collector struct {
	registry *prometheus.Registry

	Games         *prometheus.CounterVec
	Rounds        prometheus.Counter
	RoundsPerGame prometheus.Histogram
	Runs          prometheus.Counter
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Games: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chance_games_total",
				Help: "Simulated games by outcome",
			},
			[]string{"outcome"},
		),
		Rounds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chance_rounds_total",
				Help: "Betting rounds played across all games",
			},
		),
		RoundsPerGame: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chance_rounds_per_game",
				Help:    "Rounds played until a game ended",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		Runs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chance_runs_total",
				Help: "Completed simulation runs",
			},
		),
	}
	c.registry.MustRegister(c.Games, c.Rounds, c.RoundsPerGame, c.Runs)
	return c
}

// ObserveGame records one finished game.
func (c *Collector) ObserveGame(cfg chance.GameConfig, g chance.GameResult) {
	c.Games.WithLabelValues(string(chance.Classify(cfg, g))).Inc()
	c.Rounds.Add(float64(g.NumRounds))
	c.RoundsPerGame.Observe(float64(g.NumRounds))
}

// RunDone marks the end of a run.
func (c *Collector) RunDone() { c.Runs.Inc() }

// Registry exposes the collector's registry, e.g. for tests or an exporter.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteTextfile dumps the current values in the text exposition format, for
// node_exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
