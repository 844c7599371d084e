package services

import (
	"context"
	"errors"
	"fmt"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/platform/obs"
	"grid-conversion-service/internal/ports"
	"log"
	"strings"
)

// GridCatalog resolves named grids to LocalGrid converters.
//
// It coordinates:
//   - Name normalization
//   - An optional cache checked before the repository
//   - Write-back of repository hits into the cache
//
// Cache failures are logged and never fail a lookup.
type GridCatalog struct {
	repo  ports.GridRepository
	cache ports.GridCache
}

// NewGridCatalog wires a repository and an optional cache (nil disables caching).
func NewGridCatalog(repo ports.GridRepository, cache ports.GridCache) (*GridCatalog, error) {
	if repo == nil {
		return nil, errors.New("grid catalog: repository is nil")
	}
	return &GridCatalog{repo: repo, cache: cache}, nil
}

// NormalizeGridName produces the catalogue key for a user supplied name.
func NormalizeGridName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Grid looks up a grid by name and binds it.
func (c *GridCatalog) Grid(ctx context.Context, name string) (_ *LocalGrid, err error) {
	defer obs.Time(ctx, "grid.catalog.Grid")(&err)

	key := NormalizeGridName(name)
	if key == "" {
		return nil, fmt.Errorf("grid catalog: empty name: %w", domain.ErrGridNotFound)
	}

	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("grid cache read failed: name=%s err=%v", key, err)
		} else if ok {
			grid, err := NewLocalGrid(cached)
			if err == nil {
				return grid, nil
			}
			log.Printf("grid cache entry invalid: name=%s err=%v", key, err)
		}
	}

	g, err := c.repo.GetGrid(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("grid catalog: get %q: %w", key, err)
	}

	grid, err := NewLocalGrid(g)
	if err != nil {
		return nil, fmt.Errorf("grid catalog: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, g); err != nil {
			log.Printf("grid cache write failed: name=%s err=%v", key, err)
		}
	}

	return grid, nil
}

// List returns every grid in the repository.
func (c *GridCatalog) List(ctx context.Context) (_ []*domain.NamedGrid, err error) {
	defer obs.Time(ctx, "grid.catalog.List")(&err)

	grids, err := c.repo.ListGrids(ctx)
	if err != nil {
		return nil, fmt.Errorf("grid catalog: list: %w", err)
	}
	return grids, nil
}
