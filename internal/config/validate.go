package config

import (
	"fmt"
	"strings"
)

// ValidateRaw checks the constraints that can be judged from the file alone.
// Cross-field checks that need defaults filled in happen in Resolve.
func ValidateRaw(cfg RawConfig) error {
	var errs []string
	g := cfg.Game

	if g.MinBet != nil && *g.MinBet <= 0 {
		errs = append(errs, "game.min_bet must be > 0")
	}
	if g.MinBet != nil && g.MaxBet != nil && *g.MinBet > *g.MaxBet {
		errs = append(errs, "game.min_bet must be <= game.max_bet")
	}
	if g.LoseThreshold != nil && g.WinThreshold != nil && *g.LoseThreshold >= *g.WinThreshold {
		errs = append(errs, "game.lose_threshold must be < game.win_threshold")
	}
	if g.MaxRounds != nil && *g.MaxRounds < 0 {
		errs = append(errs, "game.max_rounds must be >= 0 (0 means unbounded)")
	}

	if r := cfg.Run; r != nil {
		if r.NumSimulations != nil && *r.NumSimulations <= 0 {
			errs = append(errs, "run.num_simulations must be > 0")
		}
		if r.Workers != nil && *r.Workers < 0 {
			errs = append(errs, "run.workers must be >= 0")
		}
		switch r.RNG {
		case "", RNGDefault, RNGCrypto, RNGPCG:
		default:
			errs = append(errs, fmt.Sprintf("run.rng must be one of: %s, %s, %s", RNGDefault, RNGCrypto, RNGPCG))
		}
		if r.RNG == RNGCrypto && r.Seed != nil {
			errs = append(errs, "run.seed cannot be used with rng=crypto")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
