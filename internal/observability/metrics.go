package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard service.
type Metrics struct {
	RecordsLoaded   prometheus.Counter
	RecordsDropped  prometheus.Counter
	MalformedFields *prometheus.CounterVec // label: field
	DatasetReady    prometheus.Gauge

	DatasetLoadDuration prometheus.Histogram

	// HTTP serving metrics.
	HTTPRequests *prometheus.CounterVec   // labels: endpoint, status
	HTTPDuration *prometheus.HistogramVec // label: endpoint

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: method={forward,reverse}, outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec   // labels: method={forward,reverse}, result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: method={forward,reverse}
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "market_dash",
			Name:      "records_loaded_total",
			Help:      "Listings loaded and analyzed into the dataset.",
		}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "market_dash",
			Name:      "records_dropped_total",
			Help:      "Listings dropped because a field failed to parse.",
		}),
		MalformedFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "market_dash",
			Name:      "malformed_fields_total",
			Help:      "Field parse failures by column name.",
		}, []string{"field"}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "market_dash",
			Name:      "dataset_ready",
			Help:      "1 once the dataset is loaded and analyzed, 0 before.",
		}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "market_dash",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of the load-and-analyze pass at startup.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "market_dash",
			Name:      "http_requests_total",
			Help:      "API requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "market_dash",
			Name:      "http_request_duration_seconds",
			Help:      "API request duration by endpoint.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"endpoint"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "market_dash",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "market_dash",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "market_dash",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "market_dash",
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsLoaded,
		m.RecordsDropped,
		m.MalformedFields,
		m.DatasetReady,
		m.DatasetLoadDuration,
		m.HTTPRequests,
		m.HTTPDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry, avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "market_dash", Name: "records_loaded_total"}),
		RecordsDropped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "market_dash", Name: "records_dropped_total"}),
		MalformedFields:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "market_dash", Name: "malformed_fields_total"}, []string{"field"}),
		DatasetReady:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "market_dash", Name: "dataset_ready"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "market_dash", Name: "dataset_load_duration_seconds"}),
		HTTPRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "market_dash", Name: "http_requests_total"}, []string{"endpoint", "status"}),
		HTTPDuration:        prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "market_dash", Name: "http_request_duration_seconds"}, []string{"endpoint"}),
		GeocodeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "market_dash", Name: "geocode_requests_total"}, []string{"method", "outcome"}),
		GeocodeCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "market_dash", Name: "geocode_cache_total"}, []string{"method", "result"}),
		GeocodeAPIDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "market_dash", Name: "geocode_api_duration_seconds"}, []string{"method"}),
		GeocodeEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "market_dash", Name: "geocode_enabled"}),
	}
}
