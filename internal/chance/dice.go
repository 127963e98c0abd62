package chance

const DieFaces = 6

// RollDie rolls a fair six-sided die.
func RollDie(rng RandomSource) int {
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.UniformInt(1, DieFaces)
}

// IsWin reports whether a roll wins the round (even face).
func IsWin(roll int) bool {
	return roll%2 == 0
}

// Outcome classifies a finished game against its thresholds.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	// only reachable when MaxRounds stops a game inside the interval
	OutcomeDraw Outcome = "draw"
)

// Classify maps a result onto win / loss / draw.
func Classify(cfg GameConfig, g GameResult) Outcome {
	switch {
	case g.FinalBalance >= cfg.WinThreshold:
		return OutcomeWin
	case g.FinalBalance <= cfg.LoseThreshold:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}
