// resolve.go
package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xtding233/chance-sim/internal/chance"
)

// Overrides carries command-line values that win over every file.
type Overrides struct {
	NumSimulations *int
	MaxRounds      *int
	Workers        *int
	Seed           *uint64
	KeepSamples    *bool
}

// Resolved is a validated game config plus how to run it.
type Resolved struct {
	Game        chance.GameConfig
	Workers     int
	RNG         string
	Seed        *uint64
	KeepSamples bool
	Version     string // effective config version for tracing
}

// Resolve fills unset fields from chance.ReferenceConfig, applies overrides
// and validates the resulting game config.
func Resolve(raw RawConfig, o Overrides) (Resolved, error) {
	g := chance.ReferenceConfig()
	set(&g.MinBet, raw.Game.MinBet)
	set(&g.MaxBet, raw.Game.MaxBet)
	set(&g.WinThreshold, raw.Game.WinThreshold)
	set(&g.LoseThreshold, raw.Game.LoseThreshold)
	set(&g.InitialBalance, raw.Game.InitialBalance)
	set(&g.MaxRounds, raw.Game.MaxRounds)

	out := Resolved{Workers: 1, RNG: RNGDefault, Version: raw.Version}
	if r := raw.Run; r != nil {
		set(&g.NumSimulations, r.NumSimulations)
		set(&out.Workers, r.Workers)
		set(&out.KeepSamples, r.KeepSamples)
		if r.RNG != "" {
			out.RNG = r.RNG
		}
		out.Seed = r.Seed
	}

	set(&g.NumSimulations, o.NumSimulations)
	set(&g.MaxRounds, o.MaxRounds)
	set(&out.Workers, o.Workers)
	set(&out.KeepSamples, o.KeepSamples)
	if o.Seed != nil {
		// a seed only makes sense on the replicable source
		out.Seed = o.Seed
		out.RNG = RNGPCG
	}
	switch out.RNG {
	case RNGDefault, RNGCrypto, RNGPCG:
	default:
		return Resolved{}, fmt.Errorf("%w: rng must be one of: %s, %s, %s (got %q)",
			chance.ErrInvalidConfig, RNGDefault, RNGCrypto, RNGPCG, out.RNG)
	}
	if out.RNG == RNGPCG && out.Seed == nil {
		var zero uint64
		out.Seed = &zero
	}

	if err := g.Validate(); err != nil {
		return Resolved{}, err
	}
	out.Game = g
	return out, nil
}

// RunOptions translates the resolved settings into aggregator options.
func (r Resolved) RunOptions(log *zap.Logger, obs chance.Observer) chance.RunOptions {
	opts := chance.RunOptions{
		Workers:     r.Workers,
		KeepSamples: r.KeepSamples,
		Observer:    obs,
		Logger:      log,
	}
	switch r.RNG {
	case RNGCrypto:
		opts.NewSource = func(int) chance.RandomSource { return chance.CryptoRNG() }
	case RNGPCG:
		opts.NewSource = chance.SeededSources(*r.Seed)
	default:
		opts.NewSource = func(int) chance.RandomSource { return chance.DefaultRNG() }
	}
	return opts
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
