package chance

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid game config")

// Validate checks every constraint and reports all violations at once.
func (c GameConfig) Validate() error {
	var errs []string

	if c.MinBet <= 0 {
		errs = append(errs, "min_bet must be > 0")
	}
	if c.MinBet > c.MaxBet {
		errs = append(errs, fmt.Sprintf("min_bet (%d) must be <= max_bet (%d)", c.MinBet, c.MaxBet))
	}
	if c.NumSimulations <= 0 {
		errs = append(errs, "num_simulations must be > 0")
	}
	// the game must start strictly inside (lose_threshold, win_threshold)
	if c.LoseThreshold >= c.InitialBalance {
		errs = append(errs, fmt.Sprintf("lose_threshold (%d) must be < initial_balance (%d)", c.LoseThreshold, c.InitialBalance))
	}
	if c.InitialBalance >= c.WinThreshold {
		errs = append(errs, fmt.Sprintf("initial_balance (%d) must be < win_threshold (%d)", c.InitialBalance, c.WinThreshold))
	}
	if c.MaxRounds < 0 {
		errs = append(errs, "max_rounds must be >= 0 (0 means unbounded)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
