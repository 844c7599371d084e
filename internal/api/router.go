package api

import (
	"grid-conversion-service/internal/api/handlers"
	"grid-conversion-service/internal/platform/metrics"
	"grid-conversion-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(catalog *services.GridCatalog, defaultGrid string, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	gridHandler := &handlers.GridHandler{
		Catalog:     catalog,
		DefaultGrid: defaultGrid,
		Metrics:     m,
	}
	utmHandler := &handlers.UTMHandler{Metrics: m}

	mux.HandleFunc("/{$}", handlers.Index)
	mux.HandleFunc("/bng/{$}", handlers.Index)
	mux.HandleFunc("/bng/{easting}/{northing}", gridHandler.BNG)

	mux.HandleFunc("/grids", gridHandler.List)
	mux.HandleFunc("/grids/{name}", gridHandler.Get)
	mux.HandleFunc("/grids/{name}/forward", gridHandler.Forward)
	mux.HandleFunc("/grids/{name}/batch", gridHandler.Batch)
	mux.HandleFunc("/grids/{name}/{easting}/{northing}", gridHandler.Inverse)

	mux.HandleFunc("/utm/forward", utmHandler.Forward)
	mux.HandleFunc("/utm/inverse", utmHandler.Inverse)
	mux.HandleFunc("/ellipsoids", handlers.Ellipsoids)

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", m.Handler())

	return requestMiddleware(mux, m)
}
