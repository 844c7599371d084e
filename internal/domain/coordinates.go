package domain

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Projected grid position in meters. Zone is nil for local grids that have no zone.
type ProjectedCoordinate struct {
	Easting  float64
	Northing float64
	Zone     *ZoneDesignator
}

// Return the position as [easting, northing].
func (p ProjectedCoordinate) CoordsToList() []float64 { return []float64{p.Easting, p.Northing} }
