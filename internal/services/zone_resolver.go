package services

import (
	"grid-conversion-service/internal/domain"
	"math"
)

// NormalizeLongitude maps any longitude onto [-180, 180).
// Values already in range are returned unchanged, so normalization is idempotent.
func NormalizeLongitude(lon float64) float64 {
	if lon >= -180 && lon < 180 {
		return lon
	}

	n := math.Mod(lon+180, 360)
	if n < 0 {
		n += 360
	}
	n -= 180
	// Rounding in the shift can land exactly on +180.
	if n >= 180 {
		n -= 360
	}
	return n
}

// ResolveZone returns the UTM zone and latitude band for a geodetic point,
// including the southern Norway and Svalbard exceptions.
func ResolveZone(lat, lon float64) domain.ZoneDesignator {
	lon = NormalizeLongitude(lon)

	zone := int(math.Floor((lon+180)/6)) + 1
	// lon just below 180 can round up to a 61st zone.
	zone = min(max(zone, domain.MinZone), domain.MaxZone)

	if lat >= 56.0 && lat < 64.0 && lon >= 3.0 && lon < 12.0 {
		zone = 32
	}

	if lat >= 72.0 && lat < 84.0 {
		switch {
		case lon >= 0.0 && lon < 9.0:
			zone = 31
		case lon >= 9.0 && lon < 21.0:
			zone = 33
		case lon >= 21.0 && lon < 33.0:
			zone = 35
		case lon >= 33.0 && lon < 42.0:
			zone = 37
		}
	}

	return domain.ZoneDesignator{Number: zone, Letter: BandLetter(lat)}
}

// BandLetter returns the 8° latitude band letter, or 'Z' outside [-80, 84].
// Bands are [lower, upper) except X, which spans [72, 84].
func BandLetter(lat float64) byte {
	switch {
	case math.IsNaN(lat) || lat > 84 || lat < -80:
		return domain.OutOfRangeBand
	case lat >= 72:
		return 'X'
	}
	// lat+80 can round up onto the next boundary just below it.
	i := int((lat + 80) / 8)
	if lat < -80+8*float64(i) {
		i--
	}
	return domain.BandLetters[i]
}
