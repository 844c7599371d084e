package repositories

import (
	"context"
	"fmt"
	"grid-conversion-service/internal/domain"
	"sort"
	"strings"
	"sync"
)

// MemoryGridRepository keeps grids in a map. Used when no database is configured
// and in tests.
type MemoryGridRepository struct {
	mu sync.RWMutex
	m  map[string]domain.NamedGrid
}

func NewMemoryGridRepository(grids ...*domain.NamedGrid) (*MemoryGridRepository, error) {
	r := &MemoryGridRepository{m: make(map[string]domain.NamedGrid, len(grids))}
	for _, g := range grids {
		if err := r.Put(g); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Put validates and stores a grid, replacing any grid with the same name.
func (r *MemoryGridRepository) Put(g *domain.NamedGrid) error {
	if g == nil {
		return fmt.Errorf("memory grid repo: grid must be non-nil: %w", domain.ErrInvalidGrid)
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("memory grid repo: %w", err)
	}

	cp := *g
	cp.Name = strings.ToLower(strings.TrimSpace(g.Name))

	r.mu.Lock()
	r.m[cp.Name] = cp
	r.mu.Unlock()
	return nil
}

func (r *MemoryGridRepository) ListGrids(ctx context.Context) ([]*domain.NamedGrid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.NamedGrid, 0, len(r.m))
	for _, g := range r.m {
		cp := g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *MemoryGridRepository) GetGrid(ctx context.Context, name string) (*domain.NamedGrid, error) {
	r.mu.RLock()
	g, ok := r.m[strings.ToLower(strings.TrimSpace(name))]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("grid %q: %w", name, domain.ErrGridNotFound)
	}
	return &g, nil
}
