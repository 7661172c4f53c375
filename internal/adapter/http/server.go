// Package http exposes the dashboard API plus health, readiness, and
// metrics endpoints. It is a thin presentation surface: every data endpoint
// re-runs filter and pivot over the in-memory dataset per request.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/farmersjam/market-dashboard/internal/domain"
	"github.com/farmersjam/market-dashboard/internal/observability"
	"github.com/farmersjam/market-dashboard/internal/render"
)

// DataSource is what the server needs from the dataset: the analyzed
// records, the distinct values seeding default filters, and readiness.
type DataSource interface {
	Records() []domain.Record
	Days() []string
	Counties() []string
	Names() []string
	DefaultFilter() domain.Filter
	CheckReadiness(ctx context.Context) error
}

// Server serves the dashboard API.
type Server struct {
	httpServer    *http.Server
	data          DataSource
	logger        *slog.Logger
	metrics       *observability.Metrics
	defaultRadius int
}

// NewServer creates the HTTP server with all dashboard routes.
func NewServer(addr string, data DataSource, defaultRadius int, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		data:          data,
		logger:        logger,
		metrics:       metrics,
		defaultRadius: defaultRadius,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/events", s.instrument("events", s.handleEvents))
	mux.HandleFunc("GET /api/calendar", s.instrument("calendar", s.handleCalendar))
	mux.HandleFunc("GET /api/map", s.instrument("map", s.handleMap))
	mux.HandleFunc("GET /api/summary", s.instrument("summary", s.handleSummary))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.data.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleEvents returns the filtered table rows.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	events := filter.Apply(s.data.Records())
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(events),
		"events": events,
	})
}

// handleCalendar returns the day-of-week pivot over the name selection.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	names := selection(r, "name", s.data.Names())
	built := domain.BuildCalendar(s.data.Records(), names)
	writeJSON(w, http.StatusOK, domain.NewCalendarView(built))
}

// handleMap returns the point-layer map spec for the filtered records.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	radius := s.defaultRadius
	if v := r.URL.Query().Get("radius"); v != "" {
		radius, err = strconv.Atoi(v)
		if err != nil || radius <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid radius"})
			return
		}
	}

	events := filter.Apply(s.data.Records())
	writeJSON(w, http.StatusOK, render.NewMapSpec(events, radius))
}

// handleSummary returns the cost breakdown over the name selection.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	names := selection(r, "name", s.data.Names())
	built := domain.BuildCalendar(s.data.Records(), names)
	writeJSON(w, http.StatusOK, domain.Summarize(built))
}

// parseFilter builds a domain.Filter from query parameters. Omitted
// categorical parameters default to every distinct value, matching the
// original UI's default-checked multiselects; a parameter present with an
// empty value is an explicit empty selection, which selects nothing.
func (s *Server) parseFilter(r *http.Request) (domain.Filter, error) {
	filter := s.data.DefaultFilter()
	q := r.URL.Query()

	if vals, ok := q["day"]; ok {
		filter.Days = nonEmpty(vals)
	}
	if vals, ok := q["county"]; ok {
		filter.Counties = nonEmpty(vals)
	}
	if vals, ok := q["name"]; ok {
		filter.Names = nonEmpty(vals)
	}

	var err error
	if filter.MinDuration, err = floatParam(q.Get("min_duration"), filter.MinDuration); err != nil {
		return domain.Filter{}, err
	}
	if filter.MaxDuration, err = floatParam(q.Get("max_duration"), filter.MaxDuration); err != nil {
		return domain.Filter{}, err
	}
	if filter.MinFee, err = decimalParam(q.Get("min_fee"), filter.MinFee); err != nil {
		return domain.Filter{}, err
	}
	if filter.MaxFee, err = decimalParam(q.Get("max_fee"), filter.MaxFee); err != nil {
		return domain.Filter{}, err
	}

	return filter, nil
}

// selection reads a repeatable query parameter, defaulting to all values
// when the parameter is omitted entirely.
func selection(r *http.Request, key string, all []string) []string {
	if vals, ok := r.URL.Query()[key]; ok {
		return nonEmpty(vals)
	}
	return all
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func floatParam(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &paramError{raw: raw}
	}
	return v, nil
}

func decimalParam(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &paramError{raw: raw}
	}
	return v, nil
}

type paramError struct{ raw string }

func (e *paramError) Error() string { return "invalid numeric parameter: " + e.raw }

// instrument wraps a handler with request count and duration metrics.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.HTTPRequests.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
