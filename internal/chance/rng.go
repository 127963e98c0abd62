package chance

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

// RandomSource abstract

type RandomSource interface {
	UniformInt(low, high int) int // [low, high], both inclusive
}

// default: runtime-seeded math/rand/v2, safe for concurrent use
type globalRNG struct{}

func (globalRNG) UniformInt(low, high int) int {
	if high <= low {
		return low
	}
	return low + rand.IntN(high-low+1)
}

func DefaultRNG() RandomSource { return globalRNG{} }

// crypto random : unpredictable draws, slower than the default
type cryptoRNG struct{}

func (cryptoRNG) UniformInt(low, high int) int {
	if high <= low {
		return low
	}
	n, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(high-low)+1))
	if err != nil {
		// backto math / rand/ v2
		return low + rand.IntN(high-low+1)
	}
	return low + int(n.Int64())
}

func CryptoRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. tests, reproducible runs)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return NewSeededStream(seed, 0)
}

// NewSeededStream returns a PCG source on the given stream. Different streams
// with the same seed produce independent sequences.
func NewSeededStream(seed, stream uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, stream))}
}

func (s *seededRNG) UniformInt(low, high int) int {
	if high <= low {
		return low
	}
	return low + s.r.IntN(high-low+1)
}

// SeededSources gives every worker its own PCG stream so that a (seed, workers)
// pair always reproduces the same aggregate.
func SeededSources(seed uint64) func(worker int) RandomSource {
	return func(worker int) RandomSource {
		return NewSeededStream(seed, uint64(worker))
	}
}
