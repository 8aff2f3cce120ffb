package heightmap

import (
	"fmt"
	"math"

	"github.com/talgya/terraforge/internal/noise"
)

// TerrainType selects the shape of the synthesized height field and the
// start-position strategy downstream.
type TerrainType uint8

const (
	Continental TerrainType = iota // one landmass falling off toward the edges
	Islands                        // four fixed islands
	Canyon                         // valley band across the horizontal centerline
	Hills                          // rolling noise, mostly above water
	Flat                           // near-constant with light texture
)

// ParseTerrainType maps a config string to a terrain type. Unknown
// names are a configuration error, not a silent fallback.
func ParseTerrainType(s string) (TerrainType, error) {
	switch s {
	case "continental":
		return Continental, nil
	case "islands":
		return Islands, nil
	case "canyon":
		return Canyon, nil
	case "hills":
		return Hills, nil
	case "flat":
		return Flat, nil
	default:
		return 0, fmt.Errorf("unknown terrain type %q", s)
	}
}

func (t TerrainType) String() string {
	switch t {
	case Continental:
		return "continental"
	case Islands:
		return "islands"
	case Canyon:
		return "canyon"
	case Hills:
		return "hills"
	case Flat:
		return "flat"
	default:
		return "unknown"
	}
}

// Island is one of the fixed island regions used by the islands
// archetype and by island start placement.
type Island struct {
	X, Y, R float64
}

// IslandsFor returns the four fixed island regions for a map size.
func IslandsFor(size int) []Island {
	s := float64(size)
	return []Island{
		{X: s * 0.30, Y: s * 0.30, R: s * 0.20},
		{X: s * 0.70, Y: s * 0.70, R: s * 0.20},
		{X: s * 0.20, Y: s * 0.80, R: s * 0.15},
		{X: s * 0.80, Y: s * 0.20, R: s * 0.15},
	}
}

// SynthConfig holds the terrain synthesis parameters.
type SynthConfig struct {
	Size            int
	Terrain         TerrainType
	NoiseStrength   float64 // weight of the noise octaves, typically [0, 1]
	HeightVariation float64 // vertical scale, typically [0, 1]
	Field           noise.Field
}

// Synthesize computes the full height grid for the configured
// archetype. Raw archetype heights are roughly [0, 1] and are scaled
// by HeightVariation onto the [0, 255] cell range.
func Synthesize(cfg SynthConfig) *Grid {
	g := NewGrid(cfg.Size)
	islands := IslandsFor(cfg.Size)

	for y := 0; y < cfg.Size; y++ {
		for x := 0; x < cfg.Size; x++ {
			fx, fy := float64(x), float64(y)

			var raw float64
			switch cfg.Terrain {
			case Continental:
				raw = continentalHeight(fx, fy, cfg)
			case Islands:
				raw = islandsHeight(fx, fy, islands, cfg)
			case Canyon:
				raw = canyonHeight(fx, fy, cfg)
			case Hills:
				raw = hillsHeight(fx, fy, cfg)
			case Flat:
				raw = flatHeight(fx, fy, cfg)
			}

			g.Set(x, y, clamp255(raw*cfg.HeightVariation*255))
		}
	}

	return g
}

// continentalHeight is a linear radial falloff from the map center
// with two noise octaves layered on top.
func continentalHeight(x, y float64, cfg SynthConfig) float64 {
	half := float64(cfg.Size) / 2
	dx, dy := x-half, y-half
	dist := math.Sqrt(dx*dx+dy*dy) / half

	h := (1 - dist) * 0.7
	h += (cfg.Field.At(x*0.01, y*0.01) + cfg.Field.At(x*0.005, y*0.005)*0.5) * cfg.NoiseStrength
	if h < 0 {
		h = 0
	}
	return h
}

// islandsHeight takes the best falloff over the four fixed islands.
func islandsHeight(x, y float64, islands []Island, cfg SynthConfig) float64 {
	var h float64
	for _, isl := range islands {
		dx, dy := x-isl.X, y-isl.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if f := 1 - dist/isl.R; f > h {
			h = f
		}
	}

	h += cfg.Field.At(x*0.01, y*0.01) * cfg.NoiseStrength
	if h < 0 {
		h = 0
	}
	return h
}

// canyonHeight rises with distance from the horizontal centerline,
// leaving a valley band down the middle.
func canyonHeight(x, y float64, cfg SynthConfig) float64 {
	half := float64(cfg.Size) / 2
	h := math.Abs(y-half) / half
	h += cfg.Field.At(x*0.008, y*0.008) * cfg.NoiseStrength
	if h < 0.1 {
		h = 0.1
	}
	return h
}

// hillsHeight layers three octaves above a large constant offset. The
// offset keeps most of the map above the water threshold.
func hillsHeight(x, y float64, cfg SynthConfig) float64 {
	n := cfg.Field.At(x*0.008, y*0.008) +
		cfg.Field.At(x*0.015, y*0.015)*0.5 +
		cfg.Field.At(x*0.03, y*0.03)*0.25

	h := n*cfg.NoiseStrength*0.5 + 0.65
	if h < 0.4 {
		h = 0.4
	}
	return h
}

// flatHeight is near-constant with a light single octave of texture.
func flatHeight(x, y float64, cfg SynthConfig) float64 {
	return 0.6 + cfg.Field.At(x*0.02, y*0.02)*0.3*cfg.NoiseStrength
}
