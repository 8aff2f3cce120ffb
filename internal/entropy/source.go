// Package entropy supplies the randomness used by placement scoring and
// value jitter. The generator is an injected capability rather than an
// ambient global, so tests can request fully deterministic runs and two
// concurrent generations never share state.
package entropy

import "math/rand"

// Source is the random capability threaded through the pipeline.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

type seeded struct {
	r *rand.Rand
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return &seeded{r: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Float64() float64 { return s.r.Float64() }
func (s *seeded) Intn(n int) int   { return s.r.Intn(n) }

// Derive returns a source for a sub-stage, offset so that stages draw
// from independent streams of the same run seed.
func Derive(seed int64, stage int64) Source {
	return NewSource(seed + stage*1000)
}
