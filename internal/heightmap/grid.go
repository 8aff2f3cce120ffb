// Package heightmap synthesizes and analyzes the terrain height grid.
// Cells are stored row-major in a flat slice, clamped to [0, 255] on
// the same scale the water level threshold uses.
package heightmap

// Grid is a square height field of size×size cells.
type Grid struct {
	Size  int
	Cells []float64 // length Size*Size, row-major, values in [0, 255]
}

// NewGrid allocates a zeroed grid.
func NewGrid(size int) *Grid {
	return &Grid{
		Size:  size,
		Cells: make([]float64, size*size),
	}
}

// At returns the height at (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.Cells[y*g.Size+x]
}

// Set stores a height at (x, y).
func (g *Grid) Set(x, y int, v float64) {
	g.Cells[y*g.Size+x] = v
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Size && y < g.Size
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Size:  g.Size,
		Cells: make([]float64, len(g.Cells)),
	}
	copy(c.Cells, g.Cells)
	return c
}

// Bytes quantizes the grid into one byte per cell, for storage.
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.Cells))
	for i, v := range g.Cells {
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		out[i] = byte(v)
	}
	return out
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
