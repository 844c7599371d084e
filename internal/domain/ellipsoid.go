package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownEllipsoid = errors.New("unknown ellipsoid")

// EllipsoidID identifies a reference ellipsoid in the registry. Valid ids start at 1.
type EllipsoidID int

// WGS84 is the id of the WGS-84 ellipsoid, the default for every grid.
const WGS84 EllipsoidID = 23

// Reference ellipsoid: semi-major axis in meters and first eccentricity squared.
type Ellipsoid struct {
	ID                  EllipsoidID
	Name                string
	SemiMajorAxis       float64
	EccentricitySquared float64
}

// Reference ellipsoids after Peter H. Dana's ellipsoid list (University of Texas at Austin)
// and DMA Technical Report TR 8350.2 supplement. Position i holds id i+1.
var ellipsoids = [...]Ellipsoid{
	{1, "Airy", 6377563, 0.00667054},
	{2, "Australian National", 6378160, 0.006694542},
	{3, "Bessel 1841", 6377397, 0.006674372},
	{4, "Bessel 1841 (Nambia)", 6377484, 0.006674372},
	{5, "Clarke 1866", 6378206, 0.006768658},
	{6, "Clarke 1880", 6378249, 0.006803511},
	{7, "Everest", 6377276, 0.006637847},
	{8, "Fischer 1960 (Mercury)", 6378166, 0.006693422},
	{9, "Fischer 1968", 6378150, 0.006693422},
	{10, "GRS 1967", 6378160, 0.006694605},
	{11, "GRS 1980", 6378137, 0.00669438},
	{12, "Helmert 1906", 6378200, 0.006693422},
	{13, "Hough", 6378270, 0.00672267},
	{14, "International", 6378388, 0.00672267},
	{15, "Krassovsky", 6378245, 0.006693422},
	{16, "Modified Airy", 6377340, 0.00667054},
	{17, "Modified Everest", 6377304, 0.006637847},
	{18, "Modified Fischer 1960", 6378155, 0.006693422},
	{19, "South American 1969", 6378160, 0.006694542},
	{20, "WGS 60", 6378165, 0.006693422},
	{21, "WGS 66", 6378145, 0.006694542},
	{22, "WGS-72", 6378135, 0.006694318},
	{23, "WGS-84", 6378137, 0.00669438},
}

// Valid reports whether id is present in the registry.
func (id EllipsoidID) Valid() bool {
	return id >= 1 && int(id) <= len(ellipsoids)
}

// LookupEllipsoid returns the registry entry for id.
func LookupEllipsoid(id EllipsoidID) (Ellipsoid, error) {
	if !id.Valid() {
		return Ellipsoid{}, fmt.Errorf("lookup ellipsoid: id %d: %w", id, ErrUnknownEllipsoid)
	}
	return ellipsoids[id-1], nil
}

// LookupEllipsoidByName matches names case-insensitively, ignoring spaces and dashes,
// so "wgs84", "WGS-84" and "WGS 84" all resolve to the same entry.
func LookupEllipsoidByName(name string) (Ellipsoid, error) {
	key := ellipsoidKey(name)
	if key == "" {
		return Ellipsoid{}, fmt.Errorf("lookup ellipsoid: empty name: %w", ErrUnknownEllipsoid)
	}

	for _, e := range ellipsoids {
		if ellipsoidKey(e.Name) == key {
			return e, nil
		}
	}

	return Ellipsoid{}, fmt.Errorf("lookup ellipsoid: name %q: %w", name, ErrUnknownEllipsoid)
}

// Ellipsoids returns a copy of the registry ordered by id.
func Ellipsoids() []Ellipsoid {
	out := make([]Ellipsoid, len(ellipsoids))
	copy(out, ellipsoids[:])
	return out
}

func ellipsoidKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// ParseEllipsoid accepts a registry id ("23") or a name ("WGS 84").
// An empty string selects WGS-84.
func ParseEllipsoid(s string) (Ellipsoid, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LookupEllipsoid(WGS84)
	}

	if id, err := strconv.Atoi(s); err == nil {
		return LookupEllipsoid(EllipsoidID(id))
	}
	return LookupEllipsoidByName(s)
}
