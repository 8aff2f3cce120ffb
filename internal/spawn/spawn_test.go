package spawn

import (
	"math"
	"testing"

	"github.com/talgya/terraforge/internal/entropy"
	"github.com/talgya/terraforge/internal/heightmap"
	"github.com/talgya/terraforge/internal/noise"
)

func makeGrid(t *testing.T, terrain heightmap.TerrainType, size int) *heightmap.Grid {
	t.Helper()
	return heightmap.Synthesize(heightmap.SynthConfig{
		Size:            size,
		Terrain:         terrain,
		NoiseStrength:   0.3,
		HeightVariation: 0.8,
		Field:           noise.NewHash(42),
	})
}

func checkTeams(t *testing.T, placements []Placement, playerCount int) {
	t.Helper()
	if len(placements) != playerCount {
		t.Fatalf("got %d placements, want %d", len(placements), playerCount)
	}
	seen := make(map[int]bool)
	for _, p := range placements {
		if p.Team < 1 || p.Team > playerCount {
			t.Errorf("team id %d out of [1, %d]", p.Team, playerCount)
		}
		if seen[p.Team] {
			t.Errorf("team id %d assigned twice", p.Team)
		}
		seen[p.Team] = true
	}
}

func TestPlanCounts(t *testing.T) {
	for _, terrain := range []heightmap.TerrainType{
		heightmap.Continental, heightmap.Islands, heightmap.Canyon,
		heightmap.Hills, heightmap.Flat,
	} {
		for _, players := range []int{1, 2, 4, 6, 8} {
			g := makeGrid(t, terrain, 256)
			got := Plan(g, terrain, 60, players, entropy.NewSource(1))
			checkTeams(t, got, players)
		}
	}
}

func TestPlanInBounds(t *testing.T) {
	g := makeGrid(t, heightmap.Flat, 256)
	for _, p := range Plan(g, heightmap.Flat, 60, 8, entropy.NewSource(1)) {
		if !g.In(p.X, p.Y) {
			t.Errorf("placement (%d, %d) out of bounds", p.X, p.Y)
		}
	}
}

// canyonGrid keeps the noise weight low so every lane candidate is on
// land and placements stay exactly on their lanes.
func canyonGrid(t *testing.T, size int) *heightmap.Grid {
	t.Helper()
	return heightmap.Synthesize(heightmap.SynthConfig{
		Size:            size,
		Terrain:         heightmap.Canyon,
		NoiseStrength:   0.1,
		HeightVariation: 0.8,
		Field:           noise.NewHash(42),
	})
}

func TestCanyonSplitsIntoBands(t *testing.T) {
	size := 256
	g := canyonGrid(t, size)
	placements := Plan(g, heightmap.Canyon, 60, 6, entropy.NewSource(1))
	checkTeams(t, placements, 6)

	top, bottom := 0, 0
	for _, p := range placements {
		fy := float64(p.Y) / float64(size)
		switch {
		case fy < 0.35:
			top++
		case fy > 0.65:
			bottom++
		default:
			t.Errorf("canyon placement at y=%d sits inside the valley band", p.Y)
		}
		if p.X < edgeMargin || p.X > size-1-edgeMargin ||
			p.Y < edgeMargin || p.Y > size-1-edgeMargin {
			t.Errorf("canyon placement (%d, %d) violates the edge margin", p.X, p.Y)
		}
	}
	if top != 3 || bottom != 3 {
		t.Errorf("canyon split %d/%d, want 3/3", top, bottom)
	}
}

func TestCanyonFewPlayersUsesBothBands(t *testing.T) {
	g := canyonGrid(t, 256)
	placements := Plan(g, heightmap.Canyon, 60, 2, entropy.NewSource(1))

	if placements[0].Y >= 128 || placements[1].Y <= 128 {
		t.Errorf("2-player canyon should place one per band, got y=%d and y=%d",
			placements[0].Y, placements[1].Y)
	}
}

func TestIslandsRoundRobin(t *testing.T) {
	size := 256
	g := makeGrid(t, heightmap.Islands, size)
	islands := heightmap.IslandsFor(size)
	placements := Plan(g, heightmap.Islands, 60, 8, entropy.NewSource(1))
	checkTeams(t, placements, 8)

	for i, p := range placements {
		isl := islands[i%len(islands)]
		dx := float64(p.X) - isl.X
		dy := float64(p.Y) - isl.Y
		if dist := math.Sqrt(dx*dx + dy*dy); dist > isl.R {
			t.Errorf("placement %d at (%d, %d) is %f cells from its island, radius %f",
				i, p.X, p.Y, dist, isl.R)
		}
		if !p.OnLand {
			t.Errorf("placement %d on island center not resolved to land", i)
		}
	}
}

func TestLandSearchEscapesWaterDisk(t *testing.T) {
	g := heightmap.NewGrid(128)
	// Land everywhere except a water disk of radius 30 around the start.
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			dx, dy := float64(x-64), float64(y-64)
			if dx*dx+dy*dy > 30*30 {
				g.Set(x, y, 200)
			}
		}
	}

	p := landSearch(g, 60, 64, 64)
	if !p.OnLand {
		t.Fatal("land search failed to escape a 30-cell water disk")
	}
	if g.At(p.X, p.Y) <= 60 {
		t.Error("land search returned an underwater cell flagged as land")
	}
}

func TestLandSearchFallsBackOnAllWater(t *testing.T) {
	g := heightmap.NewGrid(128) // entirely underwater
	p := landSearch(g, 60, 64, 64)
	if p.OnLand {
		t.Error("all-water grid cannot produce an on-land placement")
	}
	if p.X < edgeMargin || p.Y < edgeMargin ||
		p.X > g.Size-1-edgeMargin || p.Y > g.Size-1-edgeMargin {
		t.Errorf("fallback placement (%d, %d) violates the edge margin", p.X, p.Y)
	}
}

func TestPlanDeterministicForSeed(t *testing.T) {
	g := makeGrid(t, heightmap.Continental, 256)
	a := Plan(g, heightmap.Continental, 60, 4, entropy.NewSource(9))
	b := Plan(g, heightmap.Continental, 60, 4, entropy.NewSource(9))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs across identical seeds", i)
		}
	}
}
