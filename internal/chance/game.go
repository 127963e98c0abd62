package chance

// GameConfig is shared read-only by every game of a run.
type GameConfig struct {
	MinBet         int // smallest wager, drawn uniformly in [MinBet, MaxBet]
	MaxBet         int
	WinThreshold   int // balance at or above which the game is won
	LoseThreshold  int // balance at or below which the game is lost
	InitialBalance int
	NumSimulations int // games per run
	MaxRounds      int // optional round cap; 0 means unbounded
}

// ReferenceConfig is the configuration used when nothing else is supplied.
func ReferenceConfig() GameConfig {
	return GameConfig{
		MinBet:         5,
		MaxBet:         50,
		WinThreshold:   500,
		LoseThreshold:  -100,
		InitialBalance: 0,
		NumSimulations: 100000,
	}
}

// NewGameConfig builds a config without a round cap and rejects invalid values.
func NewGameConfig(minBet, maxBet, winThreshold, loseThreshold, initialBalance, numSimulations int) (GameConfig, error) {
	c := GameConfig{
		MinBet:         minBet,
		MaxBet:         maxBet,
		WinThreshold:   winThreshold,
		LoseThreshold:  loseThreshold,
		InitialBalance: initialBalance,
		NumSimulations: numSimulations,
	}
	if err := c.Validate(); err != nil {
		return GameConfig{}, err
	}
	return c, nil
}

// WithMaxRounds returns a copy with the round cap set and validated.
func (c GameConfig) WithMaxRounds(n int) (GameConfig, error) {
	c.MaxRounds = n
	if err := c.Validate(); err != nil {
		return GameConfig{}, err
	}
	return c, nil
}

// GameResult reports one finished game.
type GameResult struct {
	FinalBalance int
	NumRounds    int
	MaxBalance   int // watermarks over post-round balances; the initial
	MinBalance   int // balance only when no round was played
}

// inPlay is the loop guard: strictly between both thresholds.
func (c GameConfig) inPlay(balance int) bool {
	return c.LoseThreshold < balance && balance < c.WinThreshold
}

// PlayGame runs rounds until the balance leaves (LoseThreshold, WinThreshold)
// or the optional round cap is reached.
// Each round:
// - bet ~ U[MinBet, MaxBet]
// - roll a die; an even face wins the bet, an odd face loses it
// - watermarks track the balance after each round; the first round replaces
//   the initial balance as both extrema
func PlayGame(cfg GameConfig, rng RandomSource) GameResult {
	if rng == nil {
		rng = DefaultRNG()
	}
	balance := cfg.InitialBalance
	res := GameResult{MaxBalance: balance, MinBalance: balance}

	for cfg.inPlay(balance) {
		if cfg.MaxRounds > 0 && res.NumRounds >= cfg.MaxRounds {
			break
		}
		bet := rng.UniformInt(cfg.MinBet, cfg.MaxBet)
		res.NumRounds++

		if IsWin(RollDie(rng)) {
			balance += bet
		} else {
			balance -= bet
		}

		if res.NumRounds == 1 {
			res.MaxBalance, res.MinBalance = balance, balance
		} else {
			res.MaxBalance = max(res.MaxBalance, balance)
			res.MinBalance = min(res.MinBalance, balance)
		}
	}

	res.FinalBalance = balance
	return res
}
