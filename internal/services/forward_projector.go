package services

import (
	"fmt"
	"grid-conversion-service/internal/domain"
	"math"
)

// ForwardProject converts latitude/longitude (degrees) to UTM with automatic zone selection.
func ForwardProject(id domain.EllipsoidID, lat, lon float64) (domain.ProjectedCoordinate, error) {
	e, err := domain.LookupEllipsoid(id)
	if err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("forward project: %w", err)
	}

	return forwardUTM(e, lat, lon, ResolveZone(lat, lon)), nil
}

// ForwardProjectInZone projects into the given zone, bypassing automatic zone
// selection and the regional exceptions. The band letter still follows latitude.
func ForwardProjectInZone(id domain.EllipsoidID, lat, lon float64, zone int) (domain.ProjectedCoordinate, error) {
	e, err := domain.LookupEllipsoid(id)
	if err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("forward project: %w", err)
	}

	if err := domain.ValidateZoneNumber(zone); err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("forward project: %w", err)
	}

	return forwardUTM(e, lat, lon, domain.ZoneDesignator{Number: zone, Letter: BandLetter(lat)}), nil
}

// ForwardProjectCustom projects onto an explicit transverse Mercator grid.
func ForwardProjectCustom(
	id domain.EllipsoidID,
	lat float64,
	lon float64,
	grid domain.GridParameters,
) (domain.ProjectedCoordinate, error) {
	e, err := domain.LookupEllipsoid(id)
	if err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("forward project custom: %w", err)
	}

	if err := grid.Validate(); err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("forward project custom: %w", err)
	}

	easting, northing := transverseMercatorForward(e, lat, lon, grid)
	return domain.ProjectedCoordinate{Easting: easting, Northing: northing}, nil
}

func forwardUTM(e domain.Ellipsoid, lat, lon float64, zone domain.ZoneDesignator) domain.ProjectedCoordinate {
	grid := domain.GridParameters{
		FalseEasting:    domain.UTMFalseEasting,
		OriginLongitude: zone.CentralMeridian(),
		ScaleFactor:     domain.UTMScaleFactor,
	}

	easting, northing := transverseMercatorForward(e, lat, lon, grid)
	// The southern offset follows the sign of the latitude, not the band letter,
	// so points below 80°S (band Z) are still shifted.
	if lat < 0 {
		northing += domain.UTMSouthernFalseNorthing
	}

	return domain.ProjectedCoordinate{Easting: easting, Northing: northing, Zone: &zone}
}

// transverseMercatorForward evaluates the USGS Bulletin 1532 forward series.
// Angles in degrees; the longitude difference to the grid origin is wrapped to [-180, 180).
func transverseMercatorForward(e domain.Ellipsoid, lat, lon float64, g domain.GridParameters) (easting, northing float64) {
	a := e.SemiMajorAxis
	e2 := e.EccentricitySquared
	ep2 := e2 / (1 - e2)
	k0 := g.ScaleFactor

	latRad := lat * deg2rad
	sinLat, cosLat := math.Sincos(latRad)
	tanLat := math.Tan(latRad)

	n := a / math.Sqrt(1-e2*sinLat*sinLat)
	t := tanLat * tanLat
	c := ep2 * cosLat * cosLat
	A := cosLat * NormalizeLongitude(NormalizeLongitude(lon)-g.OriginLongitude) * deg2rad

	m := meridionalArc(e, latRad)
	m0 := meridionalArc(e, g.OriginLatitude*deg2rad)

	A2 := A * A
	A3 := A2 * A
	A4 := A3 * A
	A5 := A4 * A
	A6 := A5 * A

	easting = k0*n*(A+(1-t+c)*A3/6+(5-18*t+t*t+72*c-58*ep2)*A5/120) + g.FalseEasting

	northing = k0*(m-m0+n*tanLat*(A2/2+
		(5-t+9*c+4*c*c)*A4/24+
		(61-58*t+t*t+600*c-330*ep2)*A6/720)) + g.FalseNorthing

	return easting, northing
}
