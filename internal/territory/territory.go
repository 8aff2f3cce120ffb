// Package territory labels every map cell with its nearest start
// position. The map is filled in stride-sized blocks from a single
// sample per block, so boundaries are blocky rather than pixel-exact
// Voronoi. That trade is deliberate: a per-pixel scan over every start
// position is wasted work for a partition that only feeds per-player
// resource quotas.
package territory

import "github.com/talgya/terraforge/internal/spawn"

// Map assigns each cell the 0-based index of its nearest start
// position. Recompute whenever start positions change.
type Map struct {
	Size  int
	Cells []int
}

// Stride returns the block edge length for a map size.
func Stride(size int) int {
	switch {
	case size >= 1024:
		return 4
	case size >= 512:
		return 2
	default:
		return 1
	}
}

// Partition builds the territory map for the given start positions.
// Each block takes the owner nearest to its top-left sample point;
// distance ties go to the lowest index.
func Partition(size int, positions []spawn.Placement) *Map {
	m := &Map{
		Size:  size,
		Cells: make([]int, size*size),
	}
	stride := Stride(size)

	for by := 0; by < size; by += stride {
		for bx := 0; bx < size; bx += stride {
			owner := nearest(bx, by, positions)

			maxY := by + stride
			if maxY > size {
				maxY = size
			}
			maxX := bx + stride
			if maxX > size {
				maxX = size
			}
			for y := by; y < maxY; y++ {
				row := y * size
				for x := bx; x < maxX; x++ {
					m.Cells[row+x] = owner
				}
			}
		}
	}
	return m
}

// At returns the owning start-position index for (x, y).
func (m *Map) At(x, y int) int {
	return m.Cells[y*m.Size+x]
}

func nearest(x, y int, positions []spawn.Placement) int {
	best := 0
	bestDist := -1
	for i, p := range positions {
		dx, dy := p.X-x, p.Y-y
		d := dx*dx + dy*dy
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
