package noise

import "testing"

func TestHashDeterminism(t *testing.T) {
	h1 := NewHash(42)
	h2 := NewHash(42)

	for i := 0; i < 200; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.91
		if h1.At(x, y) != h2.At(x, y) {
			t.Fatalf("Hash.At not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestHashRange(t *testing.T) {
	h := NewHash(7)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.13 - 600
		y := float64(i)*0.07 - 350
		v := h.At(x, y)
		if v < -1 || v > 1 {
			t.Errorf("Hash.At(%f, %f) = %f, out of [-1, 1]", x, y, v)
		}
	}
}

func TestHashSeedsDiffer(t *testing.T) {
	a := NewHash(1)
	b := NewHash(2)

	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.53
		if a.At(x, x) == b.At(x, x) {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical fields")
	}
}

func TestSimplexRange(t *testing.T) {
	s := NewSimplex(99)
	for i := 0; i < 5000; i++ {
		x := float64(i)*0.11 - 200
		y := float64(i)*0.17 - 400
		v := s.At(x, y)
		if v < -1 || v > 1 {
			t.Errorf("Simplex.At(%f, %f) = %f, out of [-1, 1]", x, y, v)
		}
	}
}

func TestSimplexDeterminism(t *testing.T) {
	s1 := NewSimplex(5)
	s2 := NewSimplex(5)
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.29
		if s1.At(x, -x) != s2.At(x, -x) {
			t.Fatalf("Simplex.At not deterministic at x=%f", x)
		}
	}
}
