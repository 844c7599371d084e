package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidGrid  = errors.New("invalid grid parameters")
	ErrGridNotFound = errors.New("grid not found")
)

// Standard UTM constants.
const (
	UTMFalseEasting          = 500000.0
	UTMSouthernFalseNorthing = 10000000.0
	UTMScaleFactor           = 0.9996
)

// Transverse Mercator grid definition. Angles in degrees, offsets in meters.
type GridParameters struct {
	FalseEasting    float64
	FalseNorthing   float64
	OriginLatitude  float64
	OriginLongitude float64
	ScaleFactor     float64
}

// Validate rejects non-finite values and a non-positive scale factor.
func (g GridParameters) Validate() error {
	values := []struct {
		name string
		v    float64
	}{
		{"false easting", g.FalseEasting},
		{"false northing", g.FalseNorthing},
		{"origin latitude", g.OriginLatitude},
		{"origin longitude", g.OriginLongitude},
		{"scale factor", g.ScaleFactor},
	}
	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("validate grid: %s is not finite: %w", f.name, ErrInvalidGrid)
		}
	}

	if g.ScaleFactor <= 0 {
		return fmt.Errorf("validate grid: scale factor %g must be positive: %w", g.ScaleFactor, ErrInvalidGrid)
	}

	return nil
}

// UTMGridParameters expresses a standard UTM zone as explicit grid parameters.
// Southern bands carry the 10,000,000 m false northing.
func UTMGridParameters(zone ZoneDesignator) GridParameters {
	g := GridParameters{
		FalseEasting:    UTMFalseEasting,
		OriginLongitude: zone.CentralMeridian(),
		ScaleFactor:     UTMScaleFactor,
	}
	if zone.Southern() {
		g.FalseNorthing = UTMSouthernFalseNorthing
	}
	return g
}

// BermudaNationalGridParameters is the Bermuda 2000 National Grid:
// transverse Mercator on WGS-84, origin 32°N 64°45'W, unit scale.
var BermudaNationalGridParameters = GridParameters{
	FalseEasting:    550000,
	FalseNorthing:   100000,
	OriginLatitude:  32.0,
	OriginLongitude: -64.75,
	ScaleFactor:     1.0,
}

// BermudaNationalGridName is the catalogue key of the Bermuda grid.
const BermudaNationalGridName = "bng"

// A local grid as stored in the catalogue.
type NamedGrid struct {
	Name        string
	Description string
	Ellipsoid   EllipsoidID
	Params      GridParameters
}

// Validate checks the name, the ellipsoid id and the grid parameters.
func (g *NamedGrid) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("validate named grid: name must be non-empty: %w", ErrInvalidGrid)
	}
	if _, err := LookupEllipsoid(g.Ellipsoid); err != nil {
		return fmt.Errorf("validate named grid %q: %w", g.Name, err)
	}
	if err := g.Params.Validate(); err != nil {
		return fmt.Errorf("validate named grid %q: %w", g.Name, err)
	}
	return nil
}

// BermudaNationalGrid returns the catalogue entry for the Bermuda grid.
func BermudaNationalGrid() *NamedGrid {
	return &NamedGrid{
		Name:        BermudaNationalGridName,
		Description: "Bermuda 2000 National Grid",
		Ellipsoid:   WGS84,
		Params:      BermudaNationalGridParameters,
	}
}
