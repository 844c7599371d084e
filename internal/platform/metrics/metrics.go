package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Conversions     *prometheus.CounterVec
	BatchPoints     prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gridconv",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gridconv",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"route"}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gridconv",
			Name:      "conversions_total",
			Help:      "Coordinate conversions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		BatchPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gridconv",
			Name:      "batch_points",
			Help:      "Number of points per batch conversion request.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
		}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.Conversions,
		m.BatchPoints,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveConversion counts one conversion of the given kind.
func (m *Metrics) ObserveConversion(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Conversions.WithLabelValues(kind, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
