package handlers

import (
	"grid-conversion-service/internal/api/dto"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/platform/metrics"
	"grid-conversion-service/internal/services"
	"net/http"
	"strconv"
	"strings"
)

// UTMHandler exposes the standard UTM projections.
type UTMHandler struct {
	Metrics *metrics.Metrics
}

// Forward handles /utm/forward?lat=&lon=[&ellipsoid=][&zone=].
// A zone parameter forces the zone number instead of resolving it.
func (h *UTMHandler) Forward(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	lat, err := parseLatitude(q.Get("lat"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := parseFloat("lon", q.Get("lon"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	e, err := domain.ParseEllipsoid(q.Get("ellipsoid"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var p domain.ProjectedCoordinate
	if raw := strings.TrimSpace(q.Get("zone")); raw != "" {
		zone, convErr := strconv.Atoi(raw)
		if convErr != nil {
			writeError(w, r, http.StatusBadRequest, "zone must be an integer between 1 and 60")
			return
		}
		p, err = services.ForwardProjectInZone(e.ID, lat, lon, zone)
	} else {
		p, err = services.ForwardProject(e.ID, lat, lon)
	}
	if err == nil {
		err = finite(p.Easting, p.Northing)
	}
	h.Metrics.ObserveConversion("utm_forward", err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if wantsGeoJSON(r) {
		writeGeoJSON(w, r, http.StatusOK, pointFeature(lon, lat, map[string]any{
			"zone":      p.Zone.String(),
			"easting":   p.Easting,
			"northing":  p.Northing,
			"ellipsoid": int(e.ID),
		}))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ProjectedResponse{
		Easting:   p.Easting,
		Northing:  p.Northing,
		Zone:      p.Zone.String(),
		Ellipsoid: int(e.ID),
	})
}

// Inverse handles /utm/inverse?easting=&northing=&zone=[&ellipsoid=].
func (h *UTMHandler) Inverse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	easting, err := parseFloat("easting", q.Get("easting"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	northing, err := parseFloat("northing", q.Get("northing"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	zone := strings.TrimSpace(q.Get("zone"))
	if zone == "" {
		writeError(w, r, http.StatusBadRequest, "zone is required")
		return
	}

	e, err := domain.ParseEllipsoid(q.Get("ellipsoid"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	c, err := services.InverseProjectStandard(e.ID, northing, easting, zone)
	if err == nil {
		err = finite(c.Lat, c.Lon)
	}
	h.Metrics.ObserveConversion("utm_inverse", err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if wantsGeoJSON(r) {
		writeGeoJSON(w, r, http.StatusOK, pointFeature(c.Lon, c.Lat, map[string]any{
			"zone":      strings.ToUpper(zone),
			"easting":   easting,
			"northing":  northing,
			"ellipsoid": int(e.ID),
		}))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.GeodeticResponse{
		Lat:       c.Lat,
		Lon:       c.Lon,
		Zone:      strings.ToUpper(zone),
		Ellipsoid: int(e.ID),
	})
}
