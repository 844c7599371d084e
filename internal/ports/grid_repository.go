package ports

import (
	"context"
	"grid-conversion-service/internal/domain"
)

// Port: a boundary for retrieving named local grids from a data source.
type GridRepository interface {
	// Retrieve all grids ordered by name.
	ListGrids(ctx context.Context) ([]*domain.NamedGrid, error)
	// Retrieve one grid by name. Returns an error wrapping domain.ErrGridNotFound if absent.
	GetGrid(ctx context.Context, name string) (*domain.NamedGrid, error)
}
