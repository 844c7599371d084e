package services

import (
	"errors"
	"grid-conversion-service/internal/domain"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestForwardProject(t *testing.T) {
	cases := []struct {
		name      string
		ellipsoid domain.EllipsoidID
		lat, lon  float64
		zone      string
		easting   float64
		northing  float64
	}{
		{"bermuda", domain.WGS84, 32.249546, -64.855876, "20S", 325165.7710089388, 3569607.7864851663},
		{"sydney", domain.WGS84, -33.8688, 151.2093, "56H", 334368.63364639843, 6250948.345360274},
		{"norway", domain.WGS84, 60.0, 5.0, "32V", 276979.9264163872, 6658157.203131719},
		{"svalbard", domain.WGS84, 75.0, 10.0, "33X", 355706.5666666576, 8329692.651618629},
		{"equator on meridian", domain.WGS84, 0.0, 3.0, "31N", 500000, 0},
		{"just south of equator", domain.WGS84, -0.5, 3.0, "31M", 500000, 9944734.9628579},
		{"clarke 1866", 5, 40.0, -105.0, "13T", 500000, 4427546.902843752},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := ForwardProject(c.ellipsoid, c.lat, c.lon)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Zone == nil || p.Zone.String() != c.zone {
				t.Fatalf("zone = %v, want %s", p.Zone, c.zone)
			}
			if !scalar.EqualWithinAbs(p.Easting, c.easting, 1e-6) {
				t.Errorf("easting = %.6f, want %.6f", p.Easting, c.easting)
			}
			if !scalar.EqualWithinAbs(p.Northing, c.northing, 1e-6) {
				t.Errorf("northing = %.6f, want %.6f", p.Northing, c.northing)
			}
		})
	}
}

func TestForwardProjectUnknownEllipsoid(t *testing.T) {
	for _, id := range []domain.EllipsoidID{0, 24} {
		if _, err := ForwardProject(id, 10, 10); !errors.Is(err, domain.ErrUnknownEllipsoid) {
			t.Errorf("ForwardProject(%d) err = %v, want ErrUnknownEllipsoid", id, err)
		}
	}
}

func TestForwardProjectInZoneBypassesExceptions(t *testing.T) {
	// (60, 5) is in the Norway exception; forcing zone 31 must use its own meridian.
	p, err := ForwardProjectInZone(domain.WGS84, 60.0, 5.0, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Zone.String() != "31V" {
		t.Fatalf("zone = %s, want 31V", p.Zone)
	}

	auto, err := ForwardProject(domain.WGS84, 60.0, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scalar.EqualWithinAbs(p.Easting, auto.Easting, 1) {
		t.Fatalf("override easting %.3f equals automatic easting", p.Easting)
	}

	// East of the central meridian (3°E) the easting exceeds the false easting.
	if p.Easting <= domain.UTMFalseEasting {
		t.Fatalf("easting = %.3f, want > 500000", p.Easting)
	}
}

func TestForwardProjectInZoneMatchesAutomaticZone(t *testing.T) {
	auto, err := ForwardProject(domain.WGS84, -33.8688, 151.2093)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	forced, err := ForwardProjectInZone(domain.WGS84, -33.8688, 151.2093, 56)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *forced.Zone != *auto.Zone || forced.Easting != auto.Easting || forced.Northing != auto.Northing {
		t.Fatalf("forced %+v (%v) != automatic %+v (%v)", forced, forced.Zone, auto, auto.Zone)
	}
}

func TestForwardProjectInZoneRejectsBadZone(t *testing.T) {
	for _, zone := range []int{0, -3, 61} {
		if _, err := ForwardProjectInZone(domain.WGS84, 10, 10, zone); !errors.Is(err, domain.ErrZoneOutOfRange) {
			t.Errorf("zone %d: err = %v, want ErrZoneOutOfRange", zone, err)
		}
	}
}

func TestForwardProjectSouthernOffset(t *testing.T) {
	for _, lat := range []float64{-0.001, -10, -45.5, -79.9} {
		p, err := ForwardProject(domain.WGS84, lat, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		unshifted, err := ForwardProjectCustom(domain.WGS84, lat, 20, domain.GridParameters{
			FalseEasting:    domain.UTMFalseEasting,
			OriginLongitude: p.Zone.CentralMeridian(),
			ScaleFactor:     domain.UTMScaleFactor,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if diff := p.Northing - unshifted.Northing; !scalar.EqualWithinAbs(diff, 10000000, 1e-6) {
			t.Errorf("lat %v: northing offset = %.6f, want 10000000", lat, diff)
		}
		if unshifted.Northing >= 0 {
			t.Errorf("lat %v: unshifted northing %.3f should be negative", lat, unshifted.Northing)
		}
	}
}

func TestForwardProjectBandAgreesWithOffset(t *testing.T) {
	for _, lat := range []float64{-1e-15, -5e-15, math.Nextafter(0, -1)} {
		p, err := ForwardProject(domain.WGS84, lat, 3.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Zone.String() != "31M" || !p.Zone.Southern() {
			t.Errorf("lat %g: zone = %s, want 31M", lat, p.Zone)
		}
		if p.Northing < 9999999 {
			t.Errorf("lat %g: northing = %.3f, want the southern offset", lat, p.Northing)
		}
	}
}

func TestForwardProjectInZoneAcrossAntimeridian(t *testing.T) {
	// 3.5° either side of zone 60's meridian (177°E).
	east, err := ForwardProjectInZone(domain.WGS84, 10, -179.5, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	west, err := ForwardProjectInZone(domain.WGS84, 10, 173.5, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !scalar.EqualWithinAbs(east.Easting-domain.UTMFalseEasting, domain.UTMFalseEasting-west.Easting, 1e-6) {
		t.Fatalf("eastings %.6f and %.6f are not symmetric about the meridian", east.Easting, west.Easting)
	}
	if !scalar.EqualWithinAbs(east.Northing, west.Northing, 1e-6) {
		t.Fatalf("northings %.6f and %.6f differ", east.Northing, west.Northing)
	}
}

func TestForwardProjectCustomRejectsBadGrid(t *testing.T) {
	_, err := ForwardProjectCustom(domain.WGS84, 32, -64, domain.GridParameters{ScaleFactor: 0})
	if !errors.Is(err, domain.ErrInvalidGrid) {
		t.Fatalf("err = %v, want ErrInvalidGrid", err)
	}
}

func TestForwardProjectNormalizesLongitude(t *testing.T) {
	a, err := ForwardProject(domain.WGS84, 45, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ForwardProject(domain.WGS84, 45, 370)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *a.Zone != *b.Zone || !scalar.EqualWithinAbs(a.Easting, b.Easting, 1e-6) || !scalar.EqualWithinAbs(a.Northing, b.Northing, 1e-6) {
		t.Fatalf("lon 10 -> %+v, lon 370 -> %+v", a, b)
	}
}
