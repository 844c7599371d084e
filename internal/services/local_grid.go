package services

import (
	"fmt"
	"grid-conversion-service/internal/domain"
)

// LocalGrid is a transverse Mercator grid bound to one ellipsoid and one set of
// grid parameters, such as a national grid. It has no zones.
//
// A LocalGrid is immutable and safe for concurrent use.
type LocalGrid struct {
	name        string
	description string
	ellipsoid   domain.Ellipsoid
	params      domain.GridParameters
}

// NewLocalGrid validates a catalogue entry and binds it.
func NewLocalGrid(g *domain.NamedGrid) (*LocalGrid, error) {
	if g == nil {
		return nil, fmt.Errorf("new local grid: grid must be non-nil: %w", domain.ErrInvalidGrid)
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("new local grid: %w", err)
	}

	// Validate has already checked the id.
	e, _ := domain.LookupEllipsoid(g.Ellipsoid)

	return &LocalGrid{
		name:        g.Name,
		description: g.Description,
		ellipsoid:   e,
		params:      g.Params,
	}, nil
}

// BermudaNationalGrid returns the Bermuda 2000 National Grid converter.
func BermudaNationalGrid() *LocalGrid {
	g, err := NewLocalGrid(domain.BermudaNationalGrid())
	if err != nil {
		panic(err)
	}
	return g
}

func (l *LocalGrid) Name() string                  { return l.name }
func (l *LocalGrid) Ellipsoid() domain.Ellipsoid   { return l.ellipsoid }
func (l *LocalGrid) Params() domain.GridParameters { return l.params }

// NamedGrid returns the catalogue form of the grid.
func (l *LocalGrid) NamedGrid() *domain.NamedGrid {
	return &domain.NamedGrid{
		Name:        l.name,
		Description: l.description,
		Ellipsoid:   l.ellipsoid.ID,
		Params:      l.params,
	}
}

// ToGeodetic converts grid easting/northing to latitude/longitude in degrees.
func (l *LocalGrid) ToGeodetic(easting, northing float64) domain.Coordinates {
	return transverseMercatorInverse(l.ellipsoid, northing, easting, l.params)
}

// FromGeodetic converts latitude/longitude in degrees to grid easting/northing.
func (l *LocalGrid) FromGeodetic(lat, lon float64) domain.ProjectedCoordinate {
	easting, northing := transverseMercatorForward(l.ellipsoid, lat, lon, l.params)
	return domain.ProjectedCoordinate{Easting: easting, Northing: northing}
}
