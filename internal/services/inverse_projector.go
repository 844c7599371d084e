package services

import (
	"errors"
	"fmt"
	"grid-conversion-service/internal/domain"
	"math"
)

// InverseProject converts grid coordinates back to latitude/longitude in degrees.
// Standard modes take their origin, offsets and scale from the zone; Custom modes
// supply them explicitly.
func InverseProject(
	id domain.EllipsoidID,
	northing float64,
	easting float64,
	mode domain.ProjectionMode,
) (domain.Coordinates, error) {
	e, err := domain.LookupEllipsoid(id)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("inverse project: %w", err)
	}

	var grid domain.GridParameters
	switch m := mode.(type) {
	case domain.Standard:
		if err := domain.ValidateZoneNumber(m.Zone.Number); err != nil {
			return domain.Coordinates{}, fmt.Errorf("inverse project: %w", err)
		}
		grid = m.Grid()
	case domain.Custom:
		if err := m.Params.Validate(); err != nil {
			return domain.Coordinates{}, fmt.Errorf("inverse project: %w", err)
		}
		grid = m.Grid()
	default:
		return domain.Coordinates{}, errors.New("inverse project: projection mode must be Standard or Custom")
	}

	return transverseMercatorInverse(e, northing, easting, grid), nil
}

// InverseProjectStandard inverts a UTM position given its zone designator, e.g. "20S".
func InverseProjectStandard(id domain.EllipsoidID, northing, easting float64, zone string) (domain.Coordinates, error) {
	z, err := domain.ParseZoneDesignator(zone)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("inverse project: %w", err)
	}

	return InverseProject(id, northing, easting, domain.Standard{Zone: z})
}

// InverseProjectCustom inverts a position on an explicit grid.
func InverseProjectCustom(
	id domain.EllipsoidID,
	northing float64,
	easting float64,
	grid domain.GridParameters,
) (domain.Coordinates, error) {
	return InverseProject(id, northing, easting, domain.Custom{Params: grid})
}

// transverseMercatorInverse evaluates the USGS Bulletin 1532 inverse series via
// the footpoint latitude. Accuracy degrades silently far from the origin meridian.
func transverseMercatorInverse(e domain.Ellipsoid, northing, easting float64, g domain.GridParameters) domain.Coordinates {
	a := e.SemiMajorAxis
	e2 := e.EccentricitySquared
	ep2 := e2 / (1 - e2)
	k0 := g.ScaleFactor

	sq := math.Sqrt(1 - e2)
	e1 := (1 - sq) / (1 + sq)
	e1p2 := e1 * e1
	e1p3 := e1p2 * e1
	e1p4 := e1p3 * e1

	x := easting - g.FalseEasting
	y := northing - g.FalseNorthing

	m := meridionalArc(e, g.OriginLatitude*deg2rad) + y/k0
	mu := m / (a * arcScale(e2))

	phi1 := mu +
		(3*e1/2-27*e1p3/32)*math.Sin(2*mu) +
		(21*e1p2/16-55*e1p4/32)*math.Sin(4*mu) +
		(151*e1p3/96)*math.Sin(6*mu) +
		(1097*e1p4/512)*math.Sin(8*mu)

	sinPhi1, cosPhi1 := math.Sincos(phi1)
	tanPhi1 := math.Tan(phi1)
	w := 1 - e2*sinPhi1*sinPhi1

	n1 := a / math.Sqrt(w)
	t1 := tanPhi1 * tanPhi1
	c1 := ep2 * cosPhi1 * cosPhi1
	r1 := a * (1 - e2) / math.Pow(w, 1.5)
	d := x / (n1 * k0)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat := phi1 - (n1*tanPhi1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d6/720)

	lon := (d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d5/120) / cosPhi1

	return domain.Coordinates{
		Lat: lat * rad2deg,
		Lon: g.OriginLongitude + lon*rad2deg,
	}
}
