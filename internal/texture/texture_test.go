package texture

import (
	"bytes"
	"testing"

	"github.com/talgya/terraforge/internal/heightmap"
)

func TestClassifyLengthAndAlpha(t *testing.T) {
	g := heightmap.NewGrid(16)
	buf := Classify(g, 60)
	if len(buf) != 16*16*4 {
		t.Fatalf("buffer length %d, want %d", len(buf), 16*16*4)
	}
	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 255 {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, buf[i])
		}
	}
}

func TestClassifyBands(t *testing.T) {
	g := heightmap.NewGrid(3)
	wl := 60.0
	// One cell per band, plus both edges of the beach band.
	g.Cells = []float64{
		30,    // water
		60,    // beach (exactly at water level)
		79.9,  // beach
		80,    // grass
		120,   // grass
		139.9, // grass
		140,   // rock
		179.9, // rock
		180,   // snow
	}
	buf := Classify(g, wl)

	want := []rgb{
		waterColor, beachColor, beachColor,
		grassColor, grassColor, grassColor,
		rockColor, rockColor, snowColor,
	}
	for i, c := range want {
		got := rgb{buf[i*4], buf[i*4+1], buf[i*4+2]}
		if got != c {
			t.Errorf("cell %d (height %f) = %+v, want %+v", i, g.Cells[i], got, c)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	g := heightmap.NewGrid(32)
	for i := range g.Cells {
		g.Cells[i] = float64((i * 7) % 256)
	}
	a := Classify(g, 60)
	b := Classify(g, 60)
	if !bytes.Equal(a, b) {
		t.Error("classifying the same grid twice produced different buffers")
	}
}
