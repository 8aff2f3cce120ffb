// Package persistence provides the SQLite map archive. Every generated
// map is stored with its full input config, fairness score, quantized
// heightmap, and resource layout, so a run can be inspected, re-exported,
// or reproduced from its seed later.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/terraforge/internal/mapgen"
)

// DB wraps a SQLite connection for the map archive.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the archive at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		size INTEGER NOT NULL,
		terrain_type TEXT NOT NULL,
		player_count INTEGER NOT NULL,
		metal_spots INTEGER NOT NULL,
		geo_spots INTEGER NOT NULL,
		metal_strength REAL NOT NULL,
		water_level REAL NOT NULL,
		seed INTEGER NOT NULL,
		fairness REAL NOT NULL,
		created_at INTEGER NOT NULL,
		heightmap BLOB NOT NULL,
		layout_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_maps_terrain ON maps(terrain_type);
	CREATE INDEX IF NOT EXISTS idx_maps_players ON maps(player_count);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// MapRecord is one archived map.
type MapRecord struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Size          int       `db:"size" json:"size"`
	TerrainType   string    `db:"terrain_type" json:"terrain_type"`
	PlayerCount   int       `db:"player_count" json:"player_count"`
	MetalSpots    int       `db:"metal_spots" json:"metal_spots"`
	GeoSpots      int       `db:"geo_spots" json:"geo_spots"`
	MetalStrength float64   `db:"metal_strength" json:"metal_strength"`
	WaterLevel    float64   `db:"water_level" json:"water_level"`
	Seed          int64     `db:"seed" json:"seed"`
	Fairness      float64   `db:"fairness" json:"fairness"`
	CreatedAt     int64     `db:"created_at" json:"created_at"` // unix seconds
	Heightmap     []byte    `db:"heightmap" json:"-"`
	LayoutJSON    string    `db:"layout_json" json:"-"`
}

// Layout is the JSON payload stored per map: everything the packaging
// stage needs besides the heightmap itself.
type Layout struct {
	StartPositions any `json:"start_positions"`
	Metal          any `json:"metal_spots"`
	Geo            any `json:"geo_spots"`
	PerPlayer      any `json:"spots_per_player"`
	Fairness       any `json:"fairness"`
}

// SaveResult archives a generation result and returns the new map id.
func (db *DB) SaveResult(name, description string, res *mapgen.Result) (string, error) {
	layoutJSON, err := json.Marshal(Layout{
		StartPositions: res.StartPositions,
		Metal:          res.Layout.Metal,
		Geo:            res.Layout.Geo,
		PerPlayer:      res.Layout.PerPlayer,
		Fairness:       res.Fairness,
	})
	if err != nil {
		return "", fmt.Errorf("marshal layout: %w", err)
	}

	rec := MapRecord{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   description,
		Size:          res.Config.Size,
		TerrainType:   res.Config.Terrain.String(),
		PlayerCount:   res.Config.PlayerCount,
		MetalSpots:    res.Config.MetalSpots,
		GeoSpots:      res.Config.GeoSpots,
		MetalStrength: res.Config.MetalStrength,
		WaterLevel:    res.Config.WaterLevel,
		Seed:          res.Config.Seed,
		Fairness:      res.Fairness.Overall,
		CreatedAt:     time.Now().Unix(),
		Heightmap:     res.Heightmap.Bytes(),
		LayoutJSON:    string(layoutJSON),
	}

	_, err = db.conn.NamedExec(`INSERT INTO maps
		(id, name, description, size, terrain_type, player_count,
		 metal_spots, geo_spots, metal_strength, water_level, seed,
		 fairness, created_at, heightmap, layout_json)
		VALUES (:id, :name, :description, :size, :terrain_type, :player_count,
		 :metal_spots, :geo_spots, :metal_strength, :water_level, :seed,
		 :fairness, :created_at, :heightmap, :layout_json)`, rec)
	if err != nil {
		return "", fmt.Errorf("insert map: %w", err)
	}

	slog.Info("map archived", "id", rec.ID, "name", name, "fairness", fmt.Sprintf("%.1f", rec.Fairness))
	return rec.ID, nil
}

// GetMap loads one archived map, heightmap and layout included.
func (db *DB) GetMap(id string) (*MapRecord, error) {
	var rec MapRecord
	err := db.conn.Get(&rec, "SELECT * FROM maps WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", id, err)
	}
	return &rec, nil
}

// ListMaps returns the most recent maps without their blobs.
func (db *DB) ListMaps(limit int) ([]MapRecord, error) {
	var recs []MapRecord
	err := db.conn.Select(&recs, `SELECT
		id, name, description, size, terrain_type, player_count,
		metal_spots, geo_spots, metal_strength, water_level, seed,
		fairness, created_at, x'' AS heightmap, '' AS layout_json
		FROM maps ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	return recs, nil
}

// DeleteMap removes an archived map.
func (db *DB) DeleteMap(id string) error {
	_, err := db.conn.Exec("DELETE FROM maps WHERE id = ?", id)
	return err
}
