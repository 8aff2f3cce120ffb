package resources

import (
	"math"
	"testing"

	"github.com/talgya/terraforge/internal/entropy"
	"github.com/talgya/terraforge/internal/heightmap"
	"github.com/talgya/terraforge/internal/noise"
	"github.com/talgya/terraforge/internal/spawn"
	"github.com/talgya/terraforge/internal/territory"
)

// fixture builds a mostly-land map with four well-separated spawns.
func fixture(t *testing.T) (*heightmap.Grid, *territory.Map, int) {
	t.Helper()
	g := heightmap.Synthesize(heightmap.SynthConfig{
		Size:            256,
		Terrain:         heightmap.Flat,
		NoiseStrength:   0.3,
		HeightVariation: 0.6,
		Field:           noise.NewHash(42),
	})
	positions := []spawn.Placement{
		{X: 64, Y: 64, Team: 1},
		{X: 192, Y: 64, Team: 2},
		{X: 64, Y: 192, Team: 3},
		{X: 192, Y: 192, Team: 4},
	}
	return g, territory.Partition(256, positions), len(positions)
}

func TestMetalQuotaAndSplit(t *testing.T) {
	g, terr, players := fixture(t)
	cfg := Config{MetalSpots: 21, GeoSpots: 0, MetalStrength: 1.0, WaterLevel: 20}

	layout := Place(g, terr, players, cfg, entropy.NewSource(7))

	if len(layout.Metal) > cfg.MetalSpots {
		t.Fatalf("placed %d metal spots, requested %d", len(layout.Metal), cfg.MetalSpots)
	}

	// 21 across 4 players: remainder goes to the lowest indices.
	want := []int{6, 5, 5, 5}
	for i, n := range layout.PerPlayer {
		if n != want[i] {
			t.Errorf("player %d got %d spots, want %d", i, n, want[i])
		}
	}
}

func TestMetalSeparation(t *testing.T) {
	g, terr, players := fixture(t)
	cfg := Config{MetalSpots: 20, MetalStrength: 1.0, WaterLevel: 20}

	layout := Place(g, terr, players, cfg, entropy.NewSource(7))
	minDist := float64(g.Size) * metalSeparation

	for i := range layout.Metal {
		for j := i + 1; j < len(layout.Metal); j++ {
			a, b := layout.Metal[i], layout.Metal[j]
			dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
			if d := math.Sqrt(dx*dx + dy*dy); d < minDist {
				t.Errorf("metal spots %d and %d are %f apart, want >= %f", i, j, d, minDist)
			}
		}
	}
}

func TestMetalSpotsStayInOwnTerritory(t *testing.T) {
	g, terr, players := fixture(t)
	cfg := Config{MetalSpots: 16, MetalStrength: 1.0, WaterLevel: 20}

	layout := Place(g, terr, players, cfg, entropy.NewSource(3))
	for _, s := range layout.Metal {
		if owner := terr.At(s.X, s.Y); owner != s.Territory {
			t.Errorf("spot at (%d, %d) tagged territory %d but sits in %d",
				s.X, s.Y, s.Territory, owner)
		}
	}
}

func TestMetalValueClamped(t *testing.T) {
	g, terr, players := fixture(t)
	for _, strength := range []float64{0.1, 1.0, 10.0} {
		cfg := Config{MetalSpots: 12, MetalStrength: strength, WaterLevel: 20}
		layout := Place(g, terr, players, cfg, entropy.NewSource(11))
		for _, s := range layout.Metal {
			if s.Value < 1.0 || s.Value > 5.0 {
				t.Errorf("strength %f: spot value %f out of [1, 5]", strength, s.Value)
			}
		}
	}
}

func TestGeoCountAndSeparation(t *testing.T) {
	g, terr, players := fixture(t)
	cfg := Config{MetalSpots: 0, GeoSpots: 4, MetalStrength: 1.0, WaterLevel: 20}

	layout := Place(g, terr, players, cfg, entropy.NewSource(5))
	if len(layout.Geo) > cfg.GeoSpots {
		t.Fatalf("placed %d geo spots, requested %d", len(layout.Geo), cfg.GeoSpots)
	}
	if len(layout.Geo) == 0 {
		t.Fatal("no geo spots placed on an all-land map")
	}

	minDist := float64(g.Size) * geoSeparation
	for i := range layout.Geo {
		a := layout.Geo[i]
		if a.Value < 150 || a.Value > 550 {
			t.Errorf("geo value %f out of [150, 550]", a.Value)
		}
		for j := i + 1; j < len(layout.Geo); j++ {
			b := layout.Geo[j]
			dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
			if d := math.Sqrt(dx*dx + dy*dy); d < minDist {
				t.Errorf("geo spots %d and %d are %f apart, want >= %f", i, j, d, minDist)
			}
		}
	}
}

func TestUnderwaterMapPlacesNothing(t *testing.T) {
	g := heightmap.NewGrid(256) // all zero height
	positions := []spawn.Placement{{X: 64, Y: 64, Team: 1}, {X: 192, Y: 192, Team: 2}}
	terr := territory.Partition(256, positions)

	cfg := Config{MetalSpots: 10, GeoSpots: 4, MetalStrength: 1.0, WaterLevel: 60}
	layout := Place(g, terr, 2, cfg, entropy.NewSource(1))

	if len(layout.Metal) != 0 || len(layout.Geo) != 0 {
		t.Errorf("underwater map produced %d metal and %d geo spots",
			len(layout.Metal), len(layout.Geo))
	}
}

func TestPlaceDeterministicForSeed(t *testing.T) {
	g, terr, players := fixture(t)
	cfg := Config{MetalSpots: 12, GeoSpots: 3, MetalStrength: 1.0, WaterLevel: 20}

	a := Place(g, terr, players, cfg, entropy.NewSource(99))
	b := Place(g, terr, players, cfg, entropy.NewSource(99))

	if len(a.Metal) != len(b.Metal) || len(a.Geo) != len(b.Geo) {
		t.Fatal("layout sizes differ across identical seeds")
	}
	for i := range a.Metal {
		if a.Metal[i] != b.Metal[i] {
			t.Fatalf("metal spot %d differs across identical seeds", i)
		}
	}
	for i := range a.Geo {
		if a.Geo[i] != b.Geo[i] {
			t.Fatalf("geo spot %d differs across identical seeds", i)
		}
	}
}
