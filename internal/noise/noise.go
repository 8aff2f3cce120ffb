// Package noise provides the deterministic 2D scalar fields used by
// terrain synthesis. Fields return values in [-1, 1] and carry no
// mutable state, so a field can be shared across goroutines.
package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field is a deterministic pseudo-random 2D scalar field.
// At returns a value in [-1, 1] and must return the same value for
// the same (x, y) every time.
type Field interface {
	At(x, y float64) float64
}

// Hash is a sine-scramble hash field. It is not smooth: there is no
// interpolation between lattice points, so callers layer several
// frequencies themselves to approximate smoothness. This is the
// default backend; the terrain constants were tuned against it.
type Hash struct {
	offset float64
}

// NewHash returns a hash field. The seed shifts the sample domain so
// different seeds produce uncorrelated fields.
func NewHash(seed int64) *Hash {
	return &Hash{offset: float64(seed%100000) * 0.0137}
}

// At scrambles (x, y) through a sine and extracts the fractional part,
// mapped to [-1, 1].
func (h *Hash) At(x, y float64) float64 {
	s := math.Sin(x*12.9898+y*78.233+h.offset) * 43758.5453123
	return (s-math.Floor(s))*2 - 1
}

// Simplex is a smooth opensimplex-backed field. Selectable as an
// alternate backend when a softer look is wanted.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex returns a simplex field seeded for reproducibility.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// At maps the normalized [0, 1] simplex output into [-1, 1].
func (s *Simplex) At(x, y float64) float64 {
	return s.n.Eval2(x, y)*2 - 1
}
