package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/platform/obs"
)

// SQLGridRepository is a Postgres-backed implementation of the GridRepository port.
type SQLGridRepository struct {
	DB *sql.DB
}

func NewSQLGridRepository(db *sql.DB) *SQLGridRepository {
	return &SQLGridRepository{DB: db}
}

func (s *SQLGridRepository) ListGrids(ctx context.Context) (_ []*domain.NamedGrid, err error) {
	defer obs.Time(ctx, "grid.repo.ListGrids")(&err)

	if s.DB == nil {
		return nil, errors.New("sql grid repository: db is nil")
	}

	q := `SELECT` + gridColumns + `
	FROM grids
	ORDER BY name;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list grids: query grids table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.NamedGrid, 0, 8)
	for rows.Next() {
		g, err := scanGrid(rows)
		if err != nil {
			return nil, fmt.Errorf("list grids: scan rows: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list grids: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLGridRepository) GetGrid(ctx context.Context, name string) (_ *domain.NamedGrid, err error) {
	defer obs.Time(ctx, "grid.repo.GetGrid")(&err)

	if s.DB == nil {
		return nil, errors.New("sql grid repository: db is nil")
	}

	q := `SELECT` + gridColumns + `
	FROM grids
	WHERE name = $1;
	`

	g, err := scanGrid(s.DB.QueryRowContext(ctx, q, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get grid %q: %w", name, domain.ErrGridNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get grid %q: %w", name, err)
	}

	return g, nil
}
