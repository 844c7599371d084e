package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"grid-conversion-service/internal/domain"
)

// SQLite-backed implementation of the GridRepository port.
type SqliteGridRepository struct{ DB *sql.DB }

func NewSqliteGridRepository(db *sql.DB) *SqliteGridRepository {
	return &SqliteGridRepository{DB: db}
}

const gridColumns = `
		name,
		description,
		ellipsoid_id,
		false_easting,
		false_northing,
		origin_latitude,
		origin_longitude,
		scale_factor`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrid(row rowScanner) (*domain.NamedGrid, error) {
	var g domain.NamedGrid
	var ellipsoidID int
	err := row.Scan(
		&g.Name, &g.Description, &ellipsoidID,
		&g.Params.FalseEasting, &g.Params.FalseNorthing,
		&g.Params.OriginLatitude, &g.Params.OriginLongitude,
		&g.Params.ScaleFactor,
	)
	if err != nil {
		return nil, err
	}
	g.Ellipsoid = domain.EllipsoidID(ellipsoidID)
	return &g, nil
}

// Return all grids stored in the database.
func (s *SqliteGridRepository) ListGrids(ctx context.Context) ([]*domain.NamedGrid, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite grid repository: DB is nil")
	}

	query := `SELECT` + gridColumns + `
	FROM grids
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list grids: query grids table: %w", err)
	}
	defer rows.Close()

	grids := make([]*domain.NamedGrid, 0, 8)
	for rows.Next() {
		g, err := scanGrid(rows)
		if err != nil {
			return nil, fmt.Errorf("list grids: scan row: %w", err)
		}
		grids = append(grids, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list grids: row iteration: %w", err)
	}

	return grids, nil
}

// Return one grid by its normalized name.
func (s *SqliteGridRepository) GetGrid(ctx context.Context, name string) (*domain.NamedGrid, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite grid repository: DB is nil")
	}

	query := `SELECT` + gridColumns + `
	FROM grids
	WHERE name = ?;
	`
	g, err := scanGrid(s.DB.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get grid %q: %w", name, domain.ErrGridNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get grid %q: %w", name, err)
	}

	return g, nil
}
