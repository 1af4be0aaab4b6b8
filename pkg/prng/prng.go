// Package prng provides the deterministic random stream used by the
// building generator. Every build owns exactly one Stream seeded from
// the build parameters, threaded explicitly through all generation
// stages; there is no package-level randomness, so identical seeds
// reproduce identical buildings and parallel builds never share state.
package prng

import "math/rand"

// Stream is a seeded random source. Not safe for concurrent use; each
// goroutine gets its own Stream.
type Stream struct {
	r *rand.Rand
}

// New returns a Stream seeded with seed.
func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// Float returns a uniform value in [0, 1).
func (s *Stream) Float() float64 {
	return s.r.Float64()
}

// Uniform returns a uniform value in [lo, hi).
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// IntN returns a uniform int in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	return s.r.Intn(n)
}

// IntRange returns a uniform int in [lo, hi] inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.r.Float64() < p
}
