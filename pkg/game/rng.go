package game

import (
	"math/rand"
	"time"
)

// Park–Miller minimal standard generator constants
const (
	lcgModulus    = 2147483647
	lcgMultiplier = 16807
)

// NewLCG returns a reproducible source. The same seed always yields the same
// sequence of draws.
func NewLCG(seed int64) RandomSource {
	value := seed % lcgModulus
	if value <= 0 {
		value += lcgModulus - 1
	}
	return func() float64 {
		value = (value * lcgMultiplier) % lcgModulus
		return float64(value-1) / float64(lcgModulus-1)
	}
}

// DefaultSource returns a non-reproducible source seeded from the wall clock.
// It is the documented default for callers that do not need determinism.
func DefaultSource() RandomSource {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Float64
}
