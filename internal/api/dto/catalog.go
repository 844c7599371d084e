package dto

type GridResponse struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	EllipsoidID     int     `json:"ellipsoid_id"`
	EllipsoidName   string  `json:"ellipsoid_name"`
	FalseEasting    float64 `json:"false_easting"`
	FalseNorthing   float64 `json:"false_northing"`
	OriginLatitude  float64 `json:"origin_latitude"`
	OriginLongitude float64 `json:"origin_longitude"`
	ScaleFactor     float64 `json:"scale_factor"`
}

type ListGridsResponse struct {
	Grids []GridResponse `json:"grids"`
}

type EllipsoidResponse struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	SemiMajorAxis       float64 `json:"semi_major_axis"`
	EccentricitySquared float64 `json:"eccentricity_squared"`
}

type ListEllipsoidsResponse struct {
	Ellipsoids []EllipsoidResponse `json:"ellipsoids"`
}
