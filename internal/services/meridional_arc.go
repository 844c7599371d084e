package services

import (
	"grid-conversion-service/internal/domain"
	"math"
)

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// meridionalArc is the ground distance along the meridian from the equator to
// latitude phi (radians), from the USGS Bulletin 1532 series in e².
func meridionalArc(e domain.Ellipsoid, phi float64) float64 {
	e2 := e.EccentricitySquared
	e4 := e2 * e2
	e6 := e4 * e2

	return e.SemiMajorAxis * (arcScale(e2)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}

// arcScale is the leading coefficient of the meridional arc series. It is also
// the denominator that turns an arc length into the rectifying latitude mu.
func arcScale(e2 float64) float64 {
	return 1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256
}
