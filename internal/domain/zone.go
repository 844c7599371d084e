package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedZoneDesignator = errors.New("malformed zone designator")
	ErrZoneOutOfRange          = errors.New("zone number out of range")
)

const (
	MinZone = 1
	MaxZone = 60

	// BandLetters lists the latitude bands from 80°S northwards. I and O are skipped.
	BandLetters = "CDEFGHJKLMNPQRSTUVWX"

	// OutOfRangeBand marks latitudes outside the UTM envelope.
	OutOfRangeBand byte = 'Z'
)

// UTM zone number and latitude band letter, e.g. 32V.
type ZoneDesignator struct {
	Number int
	Letter byte
}

func (z ZoneDesignator) String() string {
	return strconv.Itoa(z.Number) + string(z.Letter)
}

// Southern reports whether the band lies south of the equator.
// Bands C through M are southern; N is the first band north of the equator.
func (z ZoneDesignator) Southern() bool {
	return z.Letter < 'N'
}

// CentralMeridian returns the longitude of the zone's central meridian in degrees.
func (z ZoneDesignator) CentralMeridian() float64 {
	return CentralMeridian(z.Number)
}

// CentralMeridian returns the central meridian of a UTM zone in degrees.
func CentralMeridian(zone int) float64 {
	return float64((zone-1)*6-180) + 3
}

// ValidateZoneNumber rejects zone numbers outside 1..60.
func ValidateZoneNumber(zone int) error {
	if zone < MinZone || zone > MaxZone {
		return fmt.Errorf("zone %d: %w", zone, ErrZoneOutOfRange)
	}
	return nil
}

// ParseZoneDesignator parses "<number><letter>" such as "20S" or "56h".
// The letter is case-insensitive and must be one of BandLetters.
func ParseZoneDesignator(s string) (ZoneDesignator, error) {
	raw := strings.TrimSpace(s)
	if len(raw) < 2 {
		return ZoneDesignator{}, fmt.Errorf("parse zone %q: too short: %w", s, ErrMalformedZoneDesignator)
	}

	letter := raw[len(raw)-1]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if strings.IndexByte(BandLetters, letter) < 0 {
		return ZoneDesignator{}, fmt.Errorf("parse zone %q: invalid band letter %q: %w", s, raw[len(raw)-1], ErrMalformedZoneDesignator)
	}

	digits := raw[:len(raw)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return ZoneDesignator{}, fmt.Errorf("parse zone %q: zone number must be decimal digits: %w", s, ErrMalformedZoneDesignator)
		}
	}

	number, err := strconv.Atoi(digits)
	if err != nil {
		return ZoneDesignator{}, fmt.Errorf("parse zone %q: %v: %w", s, err, ErrMalformedZoneDesignator)
	}
	if number < MinZone || number > MaxZone {
		return ZoneDesignator{}, fmt.Errorf("parse zone %q: zone %d not in %d..%d: %w", s, number, MinZone, MaxZone, ErrMalformedZoneDesignator)
	}

	return ZoneDesignator{Number: number, Letter: letter}, nil
}
