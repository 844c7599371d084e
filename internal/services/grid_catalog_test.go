package services

import (
	"context"
	"errors"
	"grid-conversion-service/internal/adapters/repositories"
	"grid-conversion-service/internal/domain"
	"testing"
)

type fakeGridCache struct {
	m        map[string]domain.NamedGrid
	getErr   error
	putErr   error
	gets     int
	puts     int
	lastRead string
}

func newFakeGridCache() *fakeGridCache {
	return &fakeGridCache{m: map[string]domain.NamedGrid{}}
}

func (c *fakeGridCache) Get(ctx context.Context, name string) (*domain.NamedGrid, bool, error) {
	c.gets++
	c.lastRead = name
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	g, ok := c.m[name]
	if !ok {
		return nil, false, nil
	}
	return &g, true, nil
}

func (c *fakeGridCache) Put(ctx context.Context, g *domain.NamedGrid) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.m[g.Name] = *g
	return nil
}

func newTestCatalog(t *testing.T, cache *fakeGridCache) *GridCatalog {
	t.Helper()

	repo, err := repositories.NewMemoryGridRepository(domain.BermudaNationalGrid())
	if err != nil {
		t.Fatalf("memory repo: %v", err)
	}

	var c *GridCatalog
	if cache == nil {
		c, err = NewGridCatalog(repo, nil)
	} else {
		c, err = NewGridCatalog(repo, cache)
	}
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

func TestGridCatalogMissThenHit(t *testing.T) {
	cache := newFakeGridCache()
	c := newTestCatalog(t, cache)

	g, err := c.Grid(context.Background(), " BNG ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name() != "bng" {
		t.Fatalf("name = %q, want bng", g.Name())
	}
	if cache.lastRead != "bng" {
		t.Fatalf("cache read key %q, want normalized bng", cache.lastRead)
	}
	if cache.puts != 1 {
		t.Fatalf("puts = %d, want 1 write-back", cache.puts)
	}

	if _, err := c.Grid(context.Background(), "bng"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("cache hit should not write back, puts = %d", cache.puts)
	}
	if cache.gets != 2 {
		t.Fatalf("gets = %d, want 2", cache.gets)
	}
}

func TestGridCatalogServesFromCache(t *testing.T) {
	cache := newFakeGridCache()
	custom := domain.NamedGrid{
		Name:      "cached-only",
		Ellipsoid: domain.WGS84,
		Params:    domain.UTMGridParameters(domain.ZoneDesignator{Number: 31, Letter: 'N'}),
	}
	cache.m[custom.Name] = custom

	c := newTestCatalog(t, cache)
	g, err := c.Grid(context.Background(), "cached-only")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Params() != custom.Params {
		t.Fatalf("params = %+v, want %+v", g.Params(), custom.Params)
	}
}

func TestGridCatalogReplacesInvalidCacheEntry(t *testing.T) {
	cache := newFakeGridCache()
	stale := *domain.BermudaNationalGrid()
	stale.Params.ScaleFactor = 0
	cache.m["bng"] = stale

	c := newTestCatalog(t, cache)
	g, err := c.Grid(context.Background(), "bng")
	if err != nil {
		t.Fatalf("invalid cache entry failed the lookup: %v", err)
	}
	if g.Params() != domain.BermudaNationalGridParameters {
		t.Fatalf("params = %+v, want the repository definition", g.Params())
	}
	if cache.puts != 1 || cache.m["bng"].Params.ScaleFactor != 1 {
		t.Fatalf("cache not repaired: puts=%d entry=%+v", cache.puts, cache.m["bng"])
	}
}

func TestGridCatalogNotFound(t *testing.T) {
	c := newTestCatalog(t, newFakeGridCache())

	for _, name := range []string{"atlantis", "", "   "} {
		if _, err := c.Grid(context.Background(), name); !errors.Is(err, domain.ErrGridNotFound) {
			t.Errorf("Grid(%q) err = %v, want ErrGridNotFound", name, err)
		}
	}
}

func TestGridCatalogCacheFailuresAreNotFatal(t *testing.T) {
	cache := newFakeGridCache()
	cache.getErr = errors.New("connection refused")
	cache.putErr = errors.New("connection refused")

	c := newTestCatalog(t, cache)
	g, err := c.Grid(context.Background(), "bng")
	if err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
	if g.Name() != "bng" {
		t.Fatalf("name = %q", g.Name())
	}
}

func TestGridCatalogWithoutCache(t *testing.T) {
	c := newTestCatalog(t, nil)

	if _, err := c.Grid(context.Background(), "bng"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grids, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grids) != 1 || grids[0].Name != "bng" {
		t.Fatalf("List = %+v", grids)
	}
}

func TestNewGridCatalogRequiresRepository(t *testing.T) {
	if _, err := NewGridCatalog(nil, nil); err == nil {
		t.Fatal("expected an error for a nil repository")
	}
}
