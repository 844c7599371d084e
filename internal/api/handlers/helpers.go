package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/services"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
)

var errNonFinite = errors.New("conversion produced a non-finite result")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// requireMethod answers 405 with an Allow header unless r uses method.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// writeServiceError maps domain and service errors onto HTTP statuses.
// Unclassified errors are logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrGridNotFound):
		writeError(w, r, http.StatusNotFound, "grid not found")
	case errors.Is(err, services.ErrBatchTooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d points per batch", services.MaxBatchPoints))
	case errors.Is(err, domain.ErrMalformedZoneDesignator),
		errors.Is(err, domain.ErrZoneOutOfRange),
		errors.Is(err, domain.ErrUnknownEllipsoid),
		errors.Is(err, domain.ErrInvalidGrid):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, errNonFinite):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func parseFloat(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	return v, nil
}

func parseLatitude(raw string) (float64, error) {
	lat, err := parseFloat("lat", raw)
	if err != nil {
		return 0, err
	}
	if lat < -90 || lat > 90 {
		return 0, errors.New("lat must be within [-90, 90]")
	}
	return lat, nil
}

func finite(vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errNonFinite
		}
	}
	return nil
}

func wantsGeoJSON(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "geojson")
}
