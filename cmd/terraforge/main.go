// Command terraforge generates one RTS map from the command line and
// optionally archives it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/terraforge/internal/entropy"
	"github.com/talgya/terraforge/internal/mapgen"
	"github.com/talgya/terraforge/internal/persistence"
)

func main() {
	var (
		size          = flag.Int("size", 512, "map edge length in cells (512/1024/2048 are the compiler-friendly ones)")
		terrain       = flag.String("terrain", "continental", "terrain type: continental, islands, canyon, hills, flat")
		players       = flag.Int("players", 4, "number of players")
		metalSpots    = flag.Int("metal", 40, "total metal spots across all players")
		geoSpots      = flag.Int("geo", 6, "geothermal vents")
		metalStrength = flag.Float64("metal-strength", 1.0, "metal value multiplier")
		noiseStrength = flag.Float64("noise", 0.5, "noise strength")
		heightVar     = flag.Float64("height-variation", 0.7, "height variation")
		waterLevel    = flag.Float64("water", 60, "water level threshold on the [0, 255] height scale")
		smoothing     = flag.Int("smooth", 2, "smoothing passes")
		seed          = flag.Int64("seed", 0, "generation seed (0 = random)")
		simplex       = flag.Bool("simplex", false, "use the smooth simplex noise backend")
		archive       = flag.String("archive", "", "sqlite archive path (empty = don't archive)")
		name          = flag.String("name", "", "map name for the archive")
		desc          = flag.String("desc", "", "map description for the archive")
		verbose       = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := mapgen.Config{
		Size:            *size,
		TerrainName:     *terrain,
		NoiseStrength:   *noiseStrength,
		HeightVariation: *heightVar,
		WaterLevel:      *waterLevel,
		SmoothingPasses: *smoothing,
		PlayerCount:     *players,
		MetalSpots:      *metalSpots,
		GeoSpots:        *geoSpots,
		MetalStrength:   *metalStrength,
		Seed:            *seed,
		SimplexNoise:    *simplex,
	}
	if cfg.Seed == 0 {
		// random.org when a key is configured, crypto/rand otherwise.
		cfg.Seed = entropy.NewClient(os.Getenv("RANDOM_ORG_KEY")).Seed()
	}

	slog.Info("generating map",
		"size", cfg.Size,
		"terrain", cfg.TerrainName,
		"players", cfg.PlayerCount,
		"seed", cfg.Seed,
	)

	res, err := mapgen.Generate(cfg, func(milestone string) {
		slog.Info("progress", "milestone", milestone)
	})
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nMap generated (seed %d)\n", res.Config.Seed)
	fmt.Printf("  heightmap: %s cells (%s)\n",
		humanize.Comma(int64(len(res.Heightmap.Cells))),
		humanize.Bytes(uint64(len(res.Heightmap.Bytes()))))
	fmt.Printf("  texture:   %s\n", humanize.Bytes(uint64(len(res.Texture))))
	fmt.Printf("  terrain:   %d hills, %d valleys\n", len(res.Analysis.Hills), len(res.Analysis.Valleys))
	fmt.Printf("  resources: %d metal spots, %d geo vents\n", len(res.Layout.Metal), len(res.Layout.Geo))
	fmt.Printf("  fairness:  %.1f/100 after %d attempt(s)\n", res.Fairness.Overall, res.Fairness.Attempts)
	for _, p := range res.Fairness.Players {
		pos := res.StartPositions[p.Team-1]
		fmt.Printf("    team %d at (%d, %d): %d spots, %.1f total value\n",
			p.Team, pos.X, pos.Y, p.SpotCount, p.TotalValue)
	}

	if *archive == "" {
		return
	}

	db, err := persistence.Open(*archive)
	if err != nil {
		slog.Error("failed to open archive", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	mapName := *name
	if mapName == "" {
		mapName = fmt.Sprintf("%s-%dp-%d", cfg.TerrainName, cfg.PlayerCount, res.Config.Seed)
	}
	id, err := db.SaveResult(mapName, *desc, res)
	if err != nil {
		slog.Error("archive failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nArchived as %s (%s)\n", mapName, id)
}
