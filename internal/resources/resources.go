// Package resources distributes metal extraction spots per territory
// and geothermal vents globally. Candidates are sampled on a coarse
// stride, ranked by a strategic score, and accepted greedily under a
// minimum-separation constraint. The score deliberately mixes a small
// terrain-height term with a dominant random term: placement is
// controlled randomness inside a fairness envelope, not a pure terrain
// heuristic.
package resources

import (
	"math"
	"sort"

	"github.com/talgya/terraforge/internal/entropy"
	"github.com/talgya/terraforge/internal/heightmap"
	"github.com/talgya/terraforge/internal/territory"
)

// MetalSpot is a placed metal extraction point.
type MetalSpot struct {
	X, Y      int
	Value     float64 // extraction rate, clamped to [1, 5]
	Territory int     // owning start-position index
}

// GeoSpot is a placed geothermal vent. Vents have no territory
// affinity; they are contested map features.
type GeoSpot struct {
	X, Y  int
	Value float64 // output, clamped to [150, 550]
}

// Config holds the placement parameters.
type Config struct {
	MetalSpots    int     // total across all players
	GeoSpots      int     // global count
	MetalStrength float64 // caller-tuned value multiplier
	WaterLevel    float64
}

// Layout is the full resource placement for one attempt.
type Layout struct {
	Metal     []MetalSpot
	Geo       []GeoSpot
	PerPlayer []int // metal spots placed per start-position index
}

const (
	metalSeparation = 0.05 // fraction of map size
	geoSeparation   = 0.12
	metalBaseValue  = 2.0
)

type candidate struct {
	x, y  int
	score float64
}

// Place computes a resource layout for the given territories.
func Place(g *heightmap.Grid, terr *territory.Map, players int, cfg Config, rng entropy.Source) *Layout {
	out := &Layout{PerPlayer: make([]int, players)}
	placeMetal(g, terr, players, cfg, rng, out)
	placeGeo(g, cfg, rng, out)
	return out
}

// metalStride returns the candidate sampling stride for metal spots.
func metalStride(size int) int {
	switch {
	case size >= 1024:
		return 16
	case size >= 512:
		return 8
	default:
		return 4
	}
}

// placeMetal splits the requested total evenly across players, with
// the remainder going to the lowest-indexed players, then fills each
// quota from that player's territory.
func placeMetal(g *heightmap.Grid, terr *territory.Map, players int, cfg Config, rng entropy.Source, out *Layout) {
	stride := metalStride(g.Size)
	minDist := float64(g.Size) * metalSeparation

	base := cfg.MetalSpots / players
	rem := cfg.MetalSpots % players

	for player := 0; player < players; player++ {
		quota := base
		if player < rem {
			quota++
		}
		if quota == 0 {
			continue
		}

		cands := metalCandidates(g, terr, player, stride, cfg.WaterLevel, rng)
		if len(cands) == 0 {
			continue
		}
		maxScore := cands[0].score

		for _, c := range cands {
			if out.PerPlayer[player] >= quota {
				break
			}
			if tooCloseMetal(c.x, c.y, out.Metal, minDist) {
				continue
			}
			out.Metal = append(out.Metal, MetalSpot{
				X:         c.x,
				Y:         c.y,
				Value:     metalValue(g.Size, players, c.score, maxScore, cfg.MetalStrength, rng),
				Territory: player,
			})
			out.PerPlayer[player]++
		}
	}
}

// metalCandidates samples the player's territory and returns scored
// candidates sorted best-first.
func metalCandidates(g *heightmap.Grid, terr *territory.Map, player, stride int, waterLevel float64, rng entropy.Source) []candidate {
	var cands []candidate
	for y := 0; y < g.Size; y += stride {
		for x := 0; x < g.Size; x += stride {
			if terr.At(x, y) != player {
				continue
			}
			h := g.At(x, y)
			if h <= waterLevel+10 {
				continue
			}
			cands = append(cands, candidate{
				x:     x,
				y:     y,
				score: h/255*30 + rng.Float64()*20,
			})
		}
	}
	sortCandidates(cands)
	return cands
}

// metalValue derives a spot's extraction rate from map size, player
// count, its rank within the territory, and the configured strength.
func metalValue(size, players int, score, maxScore, strength float64, rng entropy.Source) float64 {
	sizeMult := 1.0
	switch {
	case size <= 512:
		sizeMult = 0.9
	case size <= 1024:
		sizeMult = 1.0
	default:
		sizeMult = 1.1
	}

	playerAdj := 1 - float64(players-2)*0.05
	strategic := 0.8 + 0.4*score/maxScore
	jitter := 0.85 + rng.Float64()*0.3

	v := metalBaseValue * sizeMult * playerAdj * strategic * strength * jitter
	if v < 1.0 {
		v = 1.0
	}
	if v > 5.0 {
		v = 5.0
	}
	return v
}

// placeGeo samples the whole map for geothermal vents, which need
// higher ground and a much wider separation than metal.
func placeGeo(g *heightmap.Grid, cfg Config, rng entropy.Source, out *Layout) {
	if cfg.GeoSpots == 0 {
		return
	}

	stride := g.Size / 50
	if stride < 8 {
		stride = 8
	}
	minDist := float64(g.Size) * geoSeparation

	var cands []candidate
	for y := 0; y < g.Size; y += stride {
		for x := 0; x < g.Size; x += stride {
			h := g.At(x, y)
			if h <= cfg.WaterLevel+30 {
				continue
			}
			cands = append(cands, candidate{
				x:     x,
				y:     y,
				score: h/255*40 + rng.Float64()*15,
			})
		}
	}
	if len(cands) == 0 {
		return
	}
	sortCandidates(cands)
	maxScore := cands[0].score

	for _, c := range cands {
		if len(out.Geo) >= cfg.GeoSpots {
			break
		}
		if tooCloseGeo(c.x, c.y, out.Geo, minDist) {
			continue
		}
		v := 200 + 300*c.score/maxScore + rng.Float64()*50 - 25
		if v < 150 {
			v = 150
		}
		if v > 550 {
			v = 550
		}
		out.Geo = append(out.Geo, GeoSpot{X: c.x, Y: c.y, Value: v})
	}
}

// sortCandidates orders best-first, with a positional tie-break so the
// order never depends on sort internals.
func sortCandidates(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].y != cands[j].y {
			return cands[i].y < cands[j].y
		}
		return cands[i].x < cands[j].x
	})
}

func tooCloseMetal(x, y int, spots []MetalSpot, minDist float64) bool {
	for _, s := range spots {
		dx, dy := float64(s.X-x), float64(s.Y-y)
		if math.Sqrt(dx*dx+dy*dy) < minDist {
			return true
		}
	}
	return false
}

func tooCloseGeo(x, y int, spots []GeoSpot, minDist float64) bool {
	for _, s := range spots {
		dx, dy := float64(s.X-x), float64(s.Y-y)
		if math.Sqrt(dx*dx+dy*dy) < minDist {
			return true
		}
	}
	return false
}
