package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSQLSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init sql schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init sql schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS grids (
			name TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT '',
			ellipsoid_id INTEGER NOT NULL,
			false_easting DOUBLE PRECISION NOT NULL,
			false_northing DOUBLE PRECISION NOT NULL,
			origin_latitude DOUBLE PRECISION NOT NULL,
			origin_longitude DOUBLE PRECISION NOT NULL,
			scale_factor DOUBLE PRECISION NOT NULL CHECK (scale_factor > 0)
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_grids_ellipsoid
		ON grids(ellipsoid_id);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init sql schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sql schema: commit tx: %w", err)
	}

	return nil
}

// Upsert grid definitions from a JSON file into Postgres.
func SeedSQLFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed sql grids: DB is nil")
	}

	grids, err := LoadGridSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed sql grids: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed sql grids: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO grids (
		name, description, ellipsoid_id,
		false_easting, false_northing,
		origin_latitude, origin_longitude, scale_factor
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (name) DO UPDATE
	SET description = EXCLUDED.description,
		ellipsoid_id = EXCLUDED.ellipsoid_id,
		false_easting = EXCLUDED.false_easting,
		false_northing = EXCLUDED.false_northing,
		origin_latitude = EXCLUDED.origin_latitude,
		origin_longitude = EXCLUDED.origin_longitude,
		scale_factor = EXCLUDED.scale_factor;
	`)
	if err != nil {
		return fmt.Errorf("seed sql grids: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range grids {
		p := g.Params
		if _, err := stmt.ExecContext(ctx,
			g.Name, g.Description, int(g.Ellipsoid),
			p.FalseEasting, p.FalseNorthing, p.OriginLatitude, p.OriginLongitude, p.ScaleFactor,
		); err != nil {
			return fmt.Errorf("seed sql grids: insert name=%q: %w", g.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed sql grids: commit tx: %w", err)
	}

	return nil
}
