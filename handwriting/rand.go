package handwriting

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source consumed by the engine. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRand returns a PCG-backed source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// timeSeed derives a seed for engines created without one.
func timeSeed() uint64 {
	return uint64(time.Now().UnixNano()) //nolint:gosec // seed only
}

// centered returns a value in [-span/2, span/2).
func centered(r Rand, span float64) float64 {
	return (r.Float64() - 0.5) * span
}
