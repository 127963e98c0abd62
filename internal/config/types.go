// types.go
package config

// Raw config loaded from YAML profiles.
type RawConfig struct {
	Version string      `yaml:"version"`
	Game    GameSection `yaml:"game"`
	Run     *RunSection `yaml:"run,omitempty"`
	Notes   string      `yaml:"notes,omitempty"`
}

type GameSection struct {
	MinBet         *int `yaml:"min_bet"`
	MaxBet         *int `yaml:"max_bet"`
	WinThreshold   *int `yaml:"win_threshold"`
	LoseThreshold  *int `yaml:"lose_threshold"`
	InitialBalance *int `yaml:"initial_balance"`
	MaxRounds      *int `yaml:"max_rounds,omitempty"` // 0 or absent => unbounded
}

type RunSection struct {
	NumSimulations *int    `yaml:"num_simulations"`
	Workers        *int    `yaml:"workers,omitempty"`
	RNG            string  `yaml:"rng,omitempty"` // "default" | "crypto" | "pcg"
	Seed           *uint64 `yaml:"seed,omitempty"`
	KeepSamples    *bool   `yaml:"keep_samples,omitempty"`
}

// Random source kinds accepted in run.rng.
const (
	RNGDefault = "default"
	RNGCrypto  = "crypto"
	RNGPCG     = "pcg"
)
