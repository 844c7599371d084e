package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGridsQuery := `
	CREATE TABLE IF NOT EXISTS grids (
		name TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		ellipsoid_id INTEGER NOT NULL,
		false_easting REAL NOT NULL,
		false_northing REAL NOT NULL,
		origin_latitude REAL NOT NULL,
		origin_longitude REAL NOT NULL,
		scale_factor REAL NOT NULL CHECK (scale_factor > 0)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_grids_ellipsoid
	ON grids(ellipsoid_id);
	`

	statements := []string{
		createGridsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with grid definitions from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed grids: DB is nil")
	}

	grids, err := LoadGridSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed grids: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed grids: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO grids (
		name,
		description,
		ellipsoid_id,
		false_easting,
		false_northing,
		origin_latitude,
		origin_longitude,
		scale_factor
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed grids: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range grids {
		p := g.Params
		if _, err := stmt.Exec(
			g.Name, g.Description, int(g.Ellipsoid),
			p.FalseEasting, p.FalseNorthing, p.OriginLatitude, p.OriginLongitude, p.ScaleFactor,
		); err != nil {
			return fmt.Errorf("seed grids: insert name=%q: %w", g.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed grids: commit tx: %w", err)
	}

	return nil
}
