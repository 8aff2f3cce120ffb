// Package mapgen runs the full generation pipeline: terrain synthesis,
// smoothing, analysis, start placement, territory partitioning,
// fairness-balanced resource placement, and texture classification.
// One call is one clean, independent computation over the supplied
// config; nothing is shared between runs.
package mapgen

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/terraforge/internal/entropy"
	"github.com/talgya/terraforge/internal/fairness"
	"github.com/talgya/terraforge/internal/heightmap"
	"github.com/talgya/terraforge/internal/noise"
	"github.com/talgya/terraforge/internal/resources"
	"github.com/talgya/terraforge/internal/spawn"
	"github.com/talgya/terraforge/internal/territory"
	"github.com/talgya/terraforge/internal/texture"
)

// Config is the complete input of one generation run.
type Config struct {
	Size            int                   `json:"size"`
	Terrain         heightmap.TerrainType `json:"-"`
	TerrainName     string                `json:"terrain_type"`
	NoiseStrength   float64               `json:"noise_strength"`
	HeightVariation float64               `json:"height_variation"`
	WaterLevel      float64               `json:"water_level"`
	SmoothingPasses int                   `json:"smoothing_passes"`
	PlayerCount     int                   `json:"player_count"`
	MetalSpots      int                   `json:"metal_spots"`
	GeoSpots        int                   `json:"geo_spots"`
	MetalStrength   float64               `json:"metal_strength"`
	Seed            int64                 `json:"seed"`          // 0 = pick one
	SimplexNoise    bool                  `json:"simplex_noise"` // smooth backend instead of the hash field
}

// DefaultConfig returns a playable 4-player continental map setup.
func DefaultConfig() Config {
	return Config{
		Size:            512,
		Terrain:         heightmap.Continental,
		TerrainName:     "continental",
		NoiseStrength:   0.5,
		HeightVariation: 0.7,
		WaterLevel:      60,
		SmoothingPasses: 2,
		PlayerCount:     4,
		MetalSpots:      40,
		GeoSpots:        6,
		MetalStrength:   1.0,
	}
}

// Normalize resolves TerrainName into Terrain when the config came in
// over the wire.
func (c *Config) Normalize() error {
	if c.TerrainName == "" {
		c.TerrainName = c.Terrain.String()
		return nil
	}
	t, err := heightmap.ParseTerrainType(c.TerrainName)
	if err != nil {
		return err
	}
	c.Terrain = t
	return nil
}

// Validate rejects out-of-range inputs up front. An unknown terrain
// type or a NaN parameter fails here instead of producing degenerate
// output downstream.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.Terrain.String() == "unknown" {
		return fmt.Errorf("unknown terrain type %d", c.Terrain)
	}
	if c.PlayerCount < 1 || c.PlayerCount > 32 {
		return fmt.Errorf("player count must be in [1, 32], got %d", c.PlayerCount)
	}
	if c.MetalSpots < 0 {
		return fmt.Errorf("metal spots must be non-negative, got %d", c.MetalSpots)
	}
	if c.GeoSpots < 0 {
		return fmt.Errorf("geo spots must be non-negative, got %d", c.GeoSpots)
	}
	if c.SmoothingPasses < 0 {
		return fmt.Errorf("smoothing passes must be non-negative, got %d", c.SmoothingPasses)
	}
	if c.MetalStrength < 0 || c.MetalStrength > 10 {
		return fmt.Errorf("metal strength must be in [0, 10], got %f", c.MetalStrength)
	}
	if c.WaterLevel < 0 || c.WaterLevel > 255 {
		return fmt.Errorf("water level must be in [0, 255], got %f", c.WaterLevel)
	}
	for name, v := range map[string]float64{
		"noise strength":   c.NoiseStrength,
		"height variation": c.HeightVariation,
		"water level":      c.WaterLevel,
		"metal strength":   c.MetalStrength,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %f", name, v)
		}
	}
	return nil
}

// Result is the complete output of one generation run.
type Result struct {
	Config         Config
	Heightmap      *heightmap.Grid
	Texture        []byte // RGBA, size²×4
	Analysis       heightmap.Analysis
	StartPositions []spawn.Placement
	Territories    *territory.Map
	Layout         *resources.Layout
	Fairness       fairness.Report
}

// ProgressFunc receives named milestones in a fixed order during a
// run. Milestones are for observability, not flow control.
type ProgressFunc func(milestone string)

// Generate runs the pipeline. A zero seed is replaced with a fresh
// random one, recorded in the result config so the run can be
// reproduced.
func Generate(cfg Config, progress ProgressFunc) (*Result, error) {
	emit := func(m string) {
		if progress != nil {
			progress(m)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = entropy.CryptoSeed()
	}

	var field noise.Field = noise.NewHash(cfg.Seed)
	if cfg.SimplexNoise {
		field = noise.NewSimplex(cfg.Seed)
	}

	emit("heightmap")
	grid := heightmap.Synthesize(heightmap.SynthConfig{
		Size:            cfg.Size,
		Terrain:         cfg.Terrain,
		NoiseStrength:   cfg.NoiseStrength,
		HeightVariation: cfg.HeightVariation,
		Field:           field,
	})
	heightmap.Smooth(grid, cfg.SmoothingPasses)

	emit("analysis")
	analysis := heightmap.Analyze(grid, cfg.WaterLevel)

	emit("start positions")

	// Each balancer attempt regenerates start positions and
	// territories from its own derived random stream; the winning
	// attempt's artifacts are recovered by index afterwards.
	type attemptState struct {
		positions   []spawn.Placement
		territories *territory.Map
	}
	var states []attemptState

	resCfg := resources.Config{
		MetalSpots:    cfg.MetalSpots,
		GeoSpots:      cfg.GeoSpots,
		MetalStrength: cfg.MetalStrength,
		WaterLevel:    cfg.WaterLevel,
	}

	best := fairness.Balance(cfg.PlayerCount, func(attempt int) *resources.Layout {
		emit(fmt.Sprintf("resources attempt %d", attempt))
		rng := entropy.Derive(cfg.Seed, int64(attempt))
		positions := spawn.Plan(grid, cfg.Terrain, cfg.WaterLevel, cfg.PlayerCount, rng)
		territories := territory.Partition(cfg.Size, positions)
		states = append(states, attemptState{positions, territories})
		return resources.Place(grid, territories, cfg.PlayerCount, resCfg, rng)
	})
	won := states[best.Index-1]

	slog.Debug("resource balancing finished",
		"attempts", best.Report.Attempts,
		"winner", best.Index,
		"fairness", fmt.Sprintf("%.1f", best.Report.Overall),
	)

	emit("texture")
	tex := texture.Classify(grid, cfg.WaterLevel)

	return &Result{
		Config:         cfg,
		Heightmap:      grid,
		Texture:        tex,
		Analysis:       analysis,
		StartPositions: won.positions,
		Territories:    won.territories,
		Layout:         best.Layout,
		Fairness:       best.Report,
	}, nil
}
