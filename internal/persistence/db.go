// Package persistence provides SQLite-based storage for generated
// worlds: grid layers as blobs, plus strategic point and nation rows.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/cartograph/internal/gen"
	"github.com/talgya/cartograph/internal/world"
)

// DB wraps a SQLite connection for world storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
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
	CREATE TABLE IF NOT EXISTS worlds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		sea_level REAL NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		elevation BLOB NOT NULL,
		temperature BLOB NOT NULL,
		humidity BLOB NOT NULL,
		biome BLOB NOT NULL,
		river BLOB NOT NULL,
		resource BLOB NOT NULL,
		density BLOB NOT NULL,
		owner BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS strategic_points (
		world_id INTEGER NOT NULL REFERENCES worlds(id),
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		value INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS nations (
		world_id INTEGER NOT NULL REFERENCES worlds(id),
		idx INTEGER NOT NULL,
		uuid TEXT NOT NULL,
		name TEXT NOT NULL,
		color_r INTEGER NOT NULL,
		color_g INTEGER NOT NULL,
		color_b INTEGER NOT NULL,
		flag_json TEXT NOT NULL,
		government INTEGER NOT NULL,
		personality_json TEXT NOT NULL,
		capital INTEGER NOT NULL,
		provinces BLOB NOT NULL,
		stats_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_points_world ON strategic_points(world_id);
	CREATE INDEX IF NOT EXISTS idx_nations_world ON nations(world_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveWorld writes a complete generation result and returns the new
// world row id.
func (db *DB) SaveWorld(res *gen.Result) (int64, error) {
	m := res.Map
	slog.Info("saving world", "seed", res.Seed, "cells", m.CellCount())

	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	r, err := tx.Exec(`INSERT INTO worlds
		(seed, width, height, sea_level,
		 elevation, temperature, humidity, biome, river, resource, density, owner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Seed, m.Width, m.Height, m.SeaLevel,
		float32Bytes(m.Elevation), float32Bytes(m.Temperature),
		float32Bytes(m.Humidity), []byte(m.Biome), boolBytes(m.River),
		[]byte(m.Resource), []byte(m.Density), int16Bytes(m.Owner),
	)
	if err != nil {
		return 0, fmt.Errorf("insert world: %w", err)
	}
	worldID, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Preparex(
		"INSERT INTO strategic_points (world_id, x, y, kind, value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, p := range res.Points {
		if _, err := stmt.Exec(worldID, p.X, p.Y, p.Kind, p.Value); err != nil {
			return 0, fmt.Errorf("insert point (%d,%d): %w", p.X, p.Y, err)
		}
	}

	for _, n := range res.Nations {
		flagJSON, _ := json.Marshal(n.Flag)
		persJSON, _ := json.Marshal(n.Personality)
		statsJSON, _ := json.Marshal(n.Stats)

		_, err := tx.Exec(`INSERT INTO nations
			(world_id, idx, uuid, name, color_r, color_g, color_b,
			 flag_json, government, personality_json, capital, provinces, stats_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			worldID, n.Index, n.ID.String(), n.Name,
			n.Color.R, n.Color.G, n.Color.B,
			string(flagJSON), n.Government, string(persJSON),
			n.Capital, intBytes(n.Provinces), string(statsJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("insert nation %q: %w", n.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	slog.Info("world saved", "world_id", worldID)
	return worldID, nil
}

// LoadWorld restores a saved world by row id.
func (db *DB) LoadWorld(worldID int64) (*gen.Result, error) {
	var row struct {
		Seed        int64   `db:"seed"`
		Width       int     `db:"width"`
		Height      int     `db:"height"`
		SeaLevel    float32 `db:"sea_level"`
		Elevation   []byte  `db:"elevation"`
		Temperature []byte  `db:"temperature"`
		Humidity    []byte  `db:"humidity"`
		Biome       []byte  `db:"biome"`
		River       []byte  `db:"river"`
		Resource    []byte  `db:"resource"`
		Density     []byte  `db:"density"`
		Owner       []byte  `db:"owner"`
	}
	err := db.conn.Get(&row, `SELECT seed, width, height, sea_level,
		elevation, temperature, humidity, biome, river, resource, density, owner
		FROM worlds WHERE id = ?`, worldID)
	if err != nil {
		return nil, fmt.Errorf("load world %d: %w", worldID, err)
	}

	m := world.NewMap(row.Width, row.Height, row.SeaLevel)
	n := m.CellCount()
	for _, l := range []struct {
		name string
		got  int
		want int
	}{
		{"elevation", len(row.Elevation), n * 4},
		{"temperature", len(row.Temperature), n * 4},
		{"humidity", len(row.Humidity), n * 4},
		{"biome", len(row.Biome), n},
		{"river", len(row.River), n},
		{"resource", len(row.Resource), n},
		{"density", len(row.Density), n},
		{"owner", len(row.Owner), n * 2},
	} {
		if l.got != l.want {
			return nil, fmt.Errorf("world %d: %s blob is %d bytes, want %d for %dx%d grid",
				worldID, l.name, l.got, l.want, row.Width, row.Height)
		}
	}
	bytesToFloat32(row.Elevation, m.Elevation)
	bytesToFloat32(row.Temperature, m.Temperature)
	bytesToFloat32(row.Humidity, m.Humidity)
	copy(m.Biome, row.Biome)
	bytesToBool(row.River, m.River)
	copy(m.Resource, row.Resource)
	copy(m.Density, row.Density)
	bytesToInt16(row.Owner, m.Owner)

	points, err := db.loadPoints(worldID)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		if !m.InBounds(p.X, p.Y) {
			return nil, fmt.Errorf("world %d: point (%d,%d) outside %dx%d grid",
				worldID, p.X, p.Y, row.Width, row.Height)
		}
	}
	nations, err := db.loadNations(worldID)
	if err != nil {
		return nil, err
	}

	return &gen.Result{
		Seed:       row.Seed,
		Map:        m,
		Points:     points,
		PointIndex: world.NewPointIndex(m.Width, m.Height, points),
		Nations:    nations,
	}, nil
}

func (db *DB) loadPoints(worldID int64) ([]world.StrategicPoint, error) {
	rows, err := db.conn.Queryx(
		"SELECT x, y, kind, value FROM strategic_points WHERE world_id = ? ORDER BY y, x, kind", worldID)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	defer rows.Close()

	var points []world.StrategicPoint
	for rows.Next() {
		var x, y, kind, value int
		if err := rows.Scan(&x, &y, &kind, &value); err != nil {
			return nil, err
		}
		points = append(points, world.StrategicPoint{
			X: x, Y: y, Kind: world.PointKind(kind), Value: value,
		})
	}
	return points, rows.Err()
}

func (db *DB) loadNations(worldID int64) ([]world.Nation, error) {
	rows, err := db.conn.Queryx(`SELECT idx, uuid, name, color_r, color_g, color_b,
		flag_json, government, personality_json, capital, provinces, stats_json
		FROM nations WHERE world_id = ? ORDER BY idx`, worldID)
	if err != nil {
		return nil, fmt.Errorf("load nations: %w", err)
	}
	defer rows.Close()

	var nations []world.Nation
	for rows.Next() {
		var (
			n                   world.Nation
			idStr, flagJSON     string
			persJSON, statsJSON string
			r, g, b, gov        int
			provs               []byte
		)
		if err := rows.Scan(&n.Index, &idStr, &n.Name, &r, &g, &b,
			&flagJSON, &gov, &persJSON, &n.Capital, &provs, &statsJSON); err != nil {
			return nil, err
		}
		id, err := parseUUID(idStr)
		if err != nil {
			return nil, fmt.Errorf("nation %q: %w", n.Name, err)
		}
		n.ID = id
		n.Color = world.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
		n.Government = world.GovernmentType(gov)
		n.Provinces = bytesToInt(provs)
		if err := json.Unmarshal([]byte(flagJSON), &n.Flag); err != nil {
			return nil, fmt.Errorf("nation %q flag: %w", n.Name, err)
		}
		if err := json.Unmarshal([]byte(persJSON), &n.Personality); err != nil {
			return nil, fmt.Errorf("nation %q personality: %w", n.Name, err)
		}
		if err := json.Unmarshal([]byte(statsJSON), &n.Stats); err != nil {
			return nil, fmt.Errorf("nation %q stats: %w", n.Name, err)
		}
		nations = append(nations, n)
	}
	return nations, rows.Err()
}

// ListWorlds returns stored world ids mapped to their seeds.
func (db *DB) ListWorlds() (map[int64]int64, error) {
	rows, err := db.conn.Queryx("SELECT id, seed FROM worlds ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]int64)
	for rows.Next() {
		var id, seed int64
		if err := rows.Scan(&id, &seed); err != nil {
			return nil, err
		}
		out[id] = seed
	}
	return out, rows.Err()
}
