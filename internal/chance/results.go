package chance

// SimulationResults aggregates the games of one run. It is a plain value:
// Fold and Merge return a new accumulator instead of mutating their inputs.
type SimulationResults struct {
	Games        int // games folded so far
	Wins         int
	Losses       int
	TotalRounds  int
	TotalBalance int
	MaxBalance   int // meaningful only when Games > 0
	MinBalance   int
	// Optional: per-game round counts when RunOptions.KeepSamples is set
	RoundSamples []int `json:"-"`
}

// Draws counts games that ended inside the interval.
func (r SimulationResults) Draws() int {
	return r.Games - r.Wins - r.Losses
}

// Fold adds one finished game to acc.
// - FinalBalance >= WinThreshold => win
// - else FinalBalance <= LoseThreshold => loss
// - else neither counter moves
// The first game folded into an empty accumulator sets both extrema.
func Fold(acc SimulationResults, cfg GameConfig, g GameResult) SimulationResults {
	switch Classify(cfg, g) {
	case OutcomeWin:
		acc.Wins++
	case OutcomeLoss:
		acc.Losses++
	}

	if acc.Games == 0 {
		acc.MaxBalance = g.MaxBalance
		acc.MinBalance = g.MinBalance
	} else {
		acc.MaxBalance = max(acc.MaxBalance, g.MaxBalance)
		acc.MinBalance = min(acc.MinBalance, g.MinBalance)
	}
	acc.Games++
	acc.TotalRounds += g.NumRounds
	acc.TotalBalance += g.FinalBalance
	return acc
}

// Merge combines two partial aggregates. It is associative and commutative
// on every counter; an empty operand is the identity.
func Merge(a, b SimulationResults) SimulationResults {
	if b.Games == 0 {
		return withSamples(a, a.RoundSamples, b.RoundSamples)
	}
	if a.Games == 0 {
		return withSamples(b, a.RoundSamples, b.RoundSamples)
	}
	out := SimulationResults{
		Games:        a.Games + b.Games,
		Wins:         a.Wins + b.Wins,
		Losses:       a.Losses + b.Losses,
		TotalRounds:  a.TotalRounds + b.TotalRounds,
		TotalBalance: a.TotalBalance + b.TotalBalance,
		MaxBalance:   max(a.MaxBalance, b.MaxBalance),
		MinBalance:   min(a.MinBalance, b.MinBalance),
	}
	return withSamples(out, a.RoundSamples, b.RoundSamples)
}

// withSamples concatenates into a fresh slice so neither operand is aliased.
func withSamples(r SimulationResults, a, b []int) SimulationResults {
	if len(a)+len(b) == 0 {
		r.RoundSamples = nil
		return r
	}
	cp := make([]int, 0, len(a)+len(b))
	cp = append(cp, a...)
	cp = append(cp, b...)
	r.RoundSamples = cp
	return r
}
