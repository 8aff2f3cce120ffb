// Package spawn places one start position per player, using a strategy
// matched to the terrain archetype. Placement is best-effort: when no
// land cell is reachable within the search budget the last candidate is
// used and flagged, never raised as an error.
package spawn

import (
	"math"

	"github.com/talgya/terraforge/internal/entropy"
	"github.com/talgya/terraforge/internal/heightmap"
)

// Placement is a resolved start position. Team ids are 1-based and
// assigned in placement order. OnLand reports whether the land
// constraint was actually satisfied, so callers can tell an ideal
// placement from a degraded one.
type Placement struct {
	X, Y   int
	Team   int
	OnLand bool
}

const (
	edgeMargin     = 10  // candidates never come closer than this to a map edge
	spiralAttempts = 100 // land-search budget
	jitterAttempts = 50  // circular-placement retry budget
)

// Plan places playerCount start positions on the grid.
func Plan(g *heightmap.Grid, terrain heightmap.TerrainType, waterLevel float64, playerCount int, rng entropy.Source) []Placement {
	var out []Placement
	switch terrain {
	case heightmap.Canyon:
		out = planCanyon(g, waterLevel, playerCount)
	case heightmap.Islands:
		out = planIslands(g, waterLevel, playerCount)
	default:
		out = planCircle(g, waterLevel, playerCount, rng)
	}

	for i := range out {
		out[i].Team = i + 1
	}
	return out
}

// planCircle spreads players evenly around a circle of radius
// 0.35×size. An underwater sample gets up to 50 radius-jitter retries;
// the first land cell wins, otherwise the last sample stands.
func planCircle(g *heightmap.Grid, waterLevel float64, playerCount int, rng entropy.Source) []Placement {
	half := float64(g.Size) / 2
	radius := float64(g.Size) * 0.35

	out := make([]Placement, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(playerCount)

		x, y := pointAt(g, half, half, radius, angle)
		onLand := g.At(x, y) > waterLevel
		for try := 0; try < jitterAttempts && !onLand; try++ {
			r := radius + rng.Float64()*50 - 25
			x, y = pointAt(g, half, half, r, angle)
			onLand = g.At(x, y) > waterLevel
		}

		out = append(out, Placement{X: x, Y: y, OnLand: onLand})
	}
	return out
}

// planCanyon splits players between a land band above the canyon and
// one below it. From five players up, each band further splits into a
// frontline near the canyon (up to four players total) and a backline
// near the map edge.
func planCanyon(g *heightmap.Grid, waterLevel float64, playerCount int) []Placement {
	s := float64(g.Size)

	type lane struct {
		y     float64
		count int
	}
	var lanes []lane

	if playerCount < 5 {
		top := (playerCount + 1) / 2
		lanes = []lane{
			{y: s * 0.15, count: top},
			{y: s * 0.85, count: playerCount - top},
		}
	} else {
		front := 4
		back := playerCount - front
		lanes = []lane{
			{y: s * 0.25, count: (front + 1) / 2},
			{y: s * 0.75, count: front / 2},
			{y: s * 0.10, count: (back + 1) / 2},
			{y: s * 0.90, count: back / 2},
		}
	}

	margin := s * 0.15
	span := s - 2*margin

	out := make([]Placement, 0, playerCount)
	for _, l := range lanes {
		for i := 0; i < l.count; i++ {
			x := margin + span*float64(i+1)/float64(l.count+1)
			out = append(out, landSearch(g, waterLevel, x, l.y))
		}
	}
	return out
}

// planIslands assigns players round-robin to the four fixed island
// centers, resolving each through the land search.
func planIslands(g *heightmap.Grid, waterLevel float64, playerCount int) []Placement {
	islands := heightmap.IslandsFor(g.Size)

	out := make([]Placement, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		isl := islands[i%len(islands)]
		out = append(out, landSearch(g, waterLevel, isl.X, isl.Y))
	}
	return out
}

// landSearch resolves a candidate point onto land via a bounded spiral:
// radius grows by 5 and the angle advances by 0.5 per attempt. Every
// candidate is clamped to stay edgeMargin cells from the map edges.
// Returns the last candidate, flagged, if no land is found.
func landSearch(g *heightmap.Grid, waterLevel float64, fx, fy float64) Placement {
	x, y := clampToMargin(g, fx, fy)
	if g.At(x, y) > waterLevel {
		return Placement{X: x, Y: y, OnLand: true}
	}

	for attempt := 1; attempt <= spiralAttempts; attempt++ {
		r := float64(attempt) * 5
		a := float64(attempt) * 0.5
		x, y = clampToMargin(g, fx+math.Cos(a)*r, fy+math.Sin(a)*r)
		if g.At(x, y) > waterLevel {
			return Placement{X: x, Y: y, OnLand: true}
		}
	}
	return Placement{X: x, Y: y, OnLand: false}
}

func clampToMargin(g *heightmap.Grid, fx, fy float64) (int, int) {
	x := int(fx)
	y := int(fy)
	if x < edgeMargin {
		x = edgeMargin
	}
	if y < edgeMargin {
		y = edgeMargin
	}
	if x > g.Size-1-edgeMargin {
		x = g.Size - 1 - edgeMargin
	}
	if y > g.Size-1-edgeMargin {
		y = g.Size - 1 - edgeMargin
	}
	return x, y
}

// pointAt converts polar coordinates to a grid cell, clamped in-bounds.
func pointAt(g *heightmap.Grid, cx, cy, r, angle float64) (int, int) {
	x := int(cx + math.Cos(angle)*r)
	y := int(cy + math.Sin(angle)*r)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > g.Size-1 {
		x = g.Size - 1
	}
	if y > g.Size-1 {
		y = g.Size - 1
	}
	return x, y
}
