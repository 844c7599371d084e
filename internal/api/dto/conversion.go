package dto

// Response of the /bng endpoint. Keys are "lat" and "long".
type BNGResponse struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type GeodeticResponse struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Grid      string  `json:"grid,omitempty"`
	Zone      string  `json:"zone,omitempty"`
	Ellipsoid int     `json:"ellipsoid,omitempty"`
}

type ProjectedResponse struct {
	Easting   float64 `json:"easting"`
	Northing  float64 `json:"northing"`
	Zone      string  `json:"zone,omitempty"`
	Grid      string  `json:"grid,omitempty"`
	Ellipsoid int     `json:"ellipsoid,omitempty"`
}

type GridPoint struct {
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
}

type BatchRequest struct {
	Points []GridPoint `json:"points"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BatchResponse struct {
	Grid   string   `json:"grid"`
	Points []LatLon `json:"points"`
}
