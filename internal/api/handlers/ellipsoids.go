package handlers

import (
	"grid-conversion-service/internal/api/dto"
	"grid-conversion-service/internal/domain"
	"net/http"
)

// Ellipsoids lists the reference ellipsoid registry.
func Ellipsoids(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	all := domain.Ellipsoids()
	res := dto.ListEllipsoidsResponse{
		Ellipsoids: make([]dto.EllipsoidResponse, 0, len(all)),
	}
	for _, e := range all {
		res.Ellipsoids = append(res.Ellipsoids, dto.EllipsoidResponse{
			ID:                  int(e.ID),
			Name:                e.Name,
			SemiMajorAxis:       e.SemiMajorAxis,
			EccentricitySquared: e.EccentricitySquared,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
