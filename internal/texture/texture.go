// Package texture maps heights into biome colors for the preview/base
// texture layer. Classification is per-cell and stateless.
package texture

import "github.com/talgya/terraforge/internal/heightmap"

// Band thresholds are offsets from the water level.
const (
	shallowBand  = 20.0
	lowlandBand  = 80.0
	highlandBand = 120.0
)

type rgb struct{ r, g, b byte }

var (
	waterColor = rgb{38, 84, 158}
	beachColor = rgb{208, 190, 140}
	grassColor = rgb{86, 140, 62}
	rockColor  = rgb{132, 126, 118}
	snowColor  = rgb{236, 240, 245}
)

// Classify renders the grid into a flat RGBA buffer, size²×4 bytes,
// row-major, full alpha.
func Classify(g *heightmap.Grid, waterLevel float64) []byte {
	out := make([]byte, len(g.Cells)*4)
	for i, h := range g.Cells {
		c := classify(h - waterLevel)
		out[i*4] = c.r
		out[i*4+1] = c.g
		out[i*4+2] = c.b
		out[i*4+3] = 255
	}
	return out
}

func classify(d float64) rgb {
	switch {
	case d < 0:
		return waterColor
	case d < shallowBand:
		return beachColor
	case d < lowlandBand:
		return grassColor
	case d < highlandBand:
		return rockColor
	default:
		return snowColor
	}
}
