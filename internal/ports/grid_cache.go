package ports

import (
	"context"
	"grid-conversion-service/internal/domain"
)

// Optional read-through cache in front of a GridRepository.
type GridCache interface {
	// Return the cached grid and whether it was present.
	Get(ctx context.Context, name string) (*domain.NamedGrid, bool, error)
	// Store a grid under its name.
	Put(ctx context.Context, grid *domain.NamedGrid) error
}
