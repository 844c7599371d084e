package main

import (
	"context"
	"errors"
	"fmt"
	"grid-conversion-service/internal/adapters/remote"
	"grid-conversion-service/internal/adapters/repositories"
	"grid-conversion-service/internal/config"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/services"
	"io/fs"
)

// converter is implemented in-process and by the remote client.
type converter interface {
	UTMForward(ctx context.Context, ellipsoid string, lat, lon float64, zone int) (domain.ProjectedCoordinate, error)
	UTMInverse(ctx context.Context, ellipsoid string, easting, northing float64, zone string) (domain.Coordinates, error)
	GridToGeodetic(ctx context.Context, grid string, easting, northing float64) (domain.Coordinates, error)
	GridFromGeodetic(ctx context.Context, grid string, lat, lon float64) (domain.ProjectedCoordinate, error)
	Ellipsoids(ctx context.Context) ([]domain.Ellipsoid, error)
}

var _ converter = (*remote.Client)(nil)

type localConverter struct {
	catalog *services.GridCatalog
}

// newLocalConverter loads grids from seedPath. A missing file leaves only the
// built-in Bermuda grid.
func newLocalConverter(seedPath string) (*localConverter, error) {
	grids, err := repositories.LoadGridSeeds(seedPath)
	if errors.Is(err, fs.ErrNotExist) {
		grids = []*domain.NamedGrid{domain.BermudaNationalGrid()}
	} else if err != nil {
		return nil, err
	}

	repo, err := repositories.NewMemoryGridRepository(grids...)
	if err != nil {
		return nil, err
	}
	catalog, err := services.NewGridCatalog(repo, nil)
	if err != nil {
		return nil, err
	}
	return &localConverter{catalog: catalog}, nil
}

func (l *localConverter) UTMForward(ctx context.Context, ellipsoid string, lat, lon float64, zone int) (domain.ProjectedCoordinate, error) {
	e, err := domain.ParseEllipsoid(ellipsoid)
	if err != nil {
		return domain.ProjectedCoordinate{}, err
	}
	if zone != 0 {
		return services.ForwardProjectInZone(e.ID, lat, lon, zone)
	}
	return services.ForwardProject(e.ID, lat, lon)
}

func (l *localConverter) UTMInverse(ctx context.Context, ellipsoid string, easting, northing float64, zone string) (domain.Coordinates, error) {
	e, err := domain.ParseEllipsoid(ellipsoid)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return services.InverseProjectStandard(e.ID, northing, easting, zone)
}

func (l *localConverter) GridToGeodetic(ctx context.Context, grid string, easting, northing float64) (domain.Coordinates, error) {
	g, err := l.catalog.Grid(ctx, grid)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return g.ToGeodetic(easting, northing), nil
}

func (l *localConverter) GridFromGeodetic(ctx context.Context, grid string, lat, lon float64) (domain.ProjectedCoordinate, error) {
	g, err := l.catalog.Grid(ctx, grid)
	if err != nil {
		return domain.ProjectedCoordinate{}, err
	}
	return g.FromGeodetic(lat, lon), nil
}

func (l *localConverter) Ellipsoids(ctx context.Context) ([]domain.Ellipsoid, error) {
	return domain.Ellipsoids(), nil
}

func newConverter(server, seedPath string) (converter, error) {
	if server != "" {
		c, err := remote.NewClient(server, nil)
		if err != nil {
			return nil, fmt.Errorf("server %q: %w", server, err)
		}
		return c, nil
	}

	if seedPath == "" {
		seedPath = config.Get("SEED_PATH", "data/seeds/grids.json")
	}
	return newLocalConverter(seedPath)
}
