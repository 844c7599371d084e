package handlers

import (
	"encoding/json"
	"grid-conversion-service/internal/api/dto"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/platform/metrics"
	"grid-conversion-service/internal/services"
	"io"
	"net/http"
	"strconv"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// maxBatchBody bounds the batch request body.
const maxBatchBody = 1 << 20

// GridHandler exposes conversions on named local grids.
type GridHandler struct {
	Catalog     *services.GridCatalog
	DefaultGrid string
	Metrics     *metrics.Metrics
}

// BNG serves the legacy /bng/{easting}/{northing} endpoint on the default grid.
// Coordinates must be integers and the response keys are "lat" and "long".
func (h *GridHandler) BNG(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	easting, errE := strconv.Atoi(r.PathValue("easting"))
	northing, errN := strconv.Atoi(r.PathValue("northing"))
	if errE != nil || errN != nil {
		writeError(w, r, http.StatusBadRequest, "easting and northing must be integers")
		return
	}

	grid, err := h.Catalog.Grid(r.Context(), h.DefaultGrid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	c := grid.ToGeodetic(float64(easting), float64(northing))
	err = finite(c.Lat, c.Lon)
	h.Metrics.ObserveConversion("bng", err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if wantsGeoJSON(r) {
		writeGeoJSON(w, r, http.StatusOK, pointFeature(c.Lon, c.Lat, map[string]any{
			"grid":     grid.Name(),
			"easting":  easting,
			"northing": northing,
		}))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.BNGResponse{Lat: c.Lat, Long: c.Lon})
}

// List returns the grid catalogue.
func (h *GridHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	grids, err := h.Catalog.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListGridsResponse{Grids: make([]dto.GridResponse, 0, len(grids))}
	for _, g := range grids {
		res.Grids = append(res.Grids, gridResponse(g))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one grid definition.
func (h *GridHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	grid, err := h.Catalog.Grid(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, gridResponse(grid.NamedGrid()))
}

// Inverse converts /grids/{name}/{easting}/{northing} to latitude/longitude.
func (h *GridHandler) Inverse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	easting, err := parseFloat("easting", r.PathValue("easting"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	northing, err := parseFloat("northing", r.PathValue("northing"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	grid, err := h.Catalog.Grid(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	c := grid.ToGeodetic(easting, northing)
	err = finite(c.Lat, c.Lon)
	h.Metrics.ObserveConversion("grid_inverse", err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if wantsGeoJSON(r) {
		writeGeoJSON(w, r, http.StatusOK, pointFeature(c.Lon, c.Lat, map[string]any{
			"grid":     grid.Name(),
			"easting":  easting,
			"northing": northing,
		}))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.GeodeticResponse{Lat: c.Lat, Lon: c.Lon, Grid: grid.Name()})
}

// Forward converts ?lat=&lon= to easting/northing on a named grid.
func (h *GridHandler) Forward(w http.ResponseWriter, r *http.Request) {
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

	grid, err := h.Catalog.Grid(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	p := grid.FromGeodetic(lat, lon)
	err = finite(p.Easting, p.Northing)
	h.Metrics.ObserveConversion("grid_forward", err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if wantsGeoJSON(r) {
		writeGeoJSON(w, r, http.StatusOK, pointFeature(lon, lat, map[string]any{
			"grid":     grid.Name(),
			"easting":  p.Easting,
			"northing": p.Northing,
		}))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ProjectedResponse{Easting: p.Easting, Northing: p.Northing, Grid: grid.Name()})
}

// Batch converts many grid positions in one request.
func (h *GridHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BatchRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	grid, err := h.Catalog.Grid(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	points := make([]domain.ProjectedCoordinate, 0, len(req.Points))
	for _, p := range req.Points {
		if err := finite(p.Easting, p.Northing); err != nil {
			writeError(w, r, http.StatusBadRequest, "points must have finite easting and northing")
			return
		}
		points = append(points, domain.ProjectedCoordinate{Easting: p.Easting, Northing: p.Northing})
	}

	out, err := services.ConvertBatch(r.Context(), grid, points)
	if err == nil {
		for _, c := range out {
			if err = finite(c.Lat, c.Lon); err != nil {
				break
			}
		}
	}
	h.Metrics.ObserveConversion("grid_batch", err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.Metrics.BatchPoints.Observe(float64(len(out)))

	if wantsGeoJSON(r) {
		fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(out))}
		for i, c := range out {
			fc.Features = append(fc.Features, pointFeature(c.Lon, c.Lat, map[string]any{
				"grid":     grid.Name(),
				"easting":  req.Points[i].Easting,
				"northing": req.Points[i].Northing,
			}))
		}
		writeGeoJSON(w, r, http.StatusOK, fc)
		return
	}

	res := dto.BatchResponse{Grid: grid.Name(), Points: make([]dto.LatLon, 0, len(out))}
	for _, c := range out {
		res.Points = append(res.Points, dto.LatLon{Lat: c.Lat, Lon: c.Lon})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func gridResponse(g *domain.NamedGrid) dto.GridResponse {
	res := dto.GridResponse{
		Name:            g.Name,
		Description:     g.Description,
		EllipsoidID:     int(g.Ellipsoid),
		FalseEasting:    g.Params.FalseEasting,
		FalseNorthing:   g.Params.FalseNorthing,
		OriginLatitude:  g.Params.OriginLatitude,
		OriginLongitude: g.Params.OriginLongitude,
		ScaleFactor:     g.Params.ScaleFactor,
	}
	if e, err := domain.LookupEllipsoid(g.Ellipsoid); err == nil {
		res.EllipsoidName = e.Name
	}
	return res
}
