// Package pipeline builds the read-only dataset the dashboard serves from:
// one load-parse-analyze pass at startup, then pure reads for the rest of
// the session. The Dataset is the explicit handle pipeline functions take
// instead of ambient global state.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmersjam/market-dashboard/internal/domain"
	"github.com/farmersjam/market-dashboard/internal/loader"
	"github.com/farmersjam/market-dashboard/internal/observability"
)

// Dataset is the analyzed record set plus the parse failures surfaced while
// building it. Immutable after Build; accessors hand out copies.
type Dataset struct {
	records     []domain.Record
	fieldErrors []*domain.FieldError
	loadedAt    time.Time
}

// Build loads the CSV at path, analyzes every record, and applies optional
// geocoding enrichment. Records with malformed fields are dropped and
// reported per record (logged and counted), never coerced; a source that is
// missing or empty after cleaning fails the build outright.
func Build(ctx context.Context, path string, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) (*Dataset, error) {
	start := time.Now()

	table, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	raw := make([]domain.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		raw = append(raw, domain.ParseRecord(table.RowMap(i)))
	}

	analyzed, fieldErrs := domain.Analyze(raw)
	for _, fe := range fieldErrs {
		logger.Warn("dropping record with malformed field",
			"row", fe.Row, "field", fe.Field, "value", fe.Value, "error", fe.Err)
		metrics.MalformedFields.WithLabelValues(fe.Field).Inc()
		metrics.RecordsDropped.Inc()
	}

	for i := range analyzed {
		analyzed[i] = domain.EnrichWithGeocoding(ctx, analyzed[i], geocoder, logger)
	}

	metrics.RecordsLoaded.Add(float64(len(analyzed)))
	metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	metrics.DatasetReady.Set(1)

	logger.Info("dataset built",
		"path", path,
		"records", len(analyzed),
		"dropped", len(fieldErrs),
		"duration", time.Since(start),
	)

	return &Dataset{
		records:     analyzed,
		fieldErrors: fieldErrs,
		loadedAt:    start,
	}, nil
}

// CheckReadiness returns nil once the dataset holds at least one analyzed
// record. Satisfies the HTTP adapter's readiness contract.
func (d *Dataset) CheckReadiness(_ context.Context) error {
	if d == nil || len(d.records) == 0 {
		return errors.New("dataset is not loaded")
	}
	return nil
}

// Records returns a copy of the analyzed record set.
func (d *Dataset) Records() []domain.Record {
	out := make([]domain.Record, len(d.records))
	copy(out, d.records)
	return out
}

// FieldErrors returns the parse failures surfaced during the build.
func (d *Dataset) FieldErrors() []*domain.FieldError {
	out := make([]*domain.FieldError, len(d.fieldErrors))
	copy(out, d.fieldErrors)
	return out
}

// LoadedAt reports when the build started.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Days returns the distinct day-of-week values, first-seen order.
func (d *Dataset) Days() []string { return d.distinct(func(r domain.Record) string { return r.DayOfWeek }) }

// Counties returns the distinct county values, first-seen order.
func (d *Dataset) Counties() []string {
	return d.distinct(func(r domain.Record) string { return r.County })
}

// Names returns the distinct market names, sorted.
func (d *Dataset) Names() []string {
	names := d.distinct(func(r domain.Record) string { return r.Name })
	sort.Strings(names)
	return names
}

// DurationBounds returns the min and max duration across the dataset, for
// seeding the duration range filter.
func (d *Dataset) DurationBounds() (min, max float64) {
	for i, rec := range d.records {
		if i == 0 || rec.DurationHours < min {
			min = rec.DurationHours
		}
		if i == 0 || rec.DurationHours > max {
			max = rec.DurationHours
		}
	}
	return min, max
}

// FeeBounds returns the min and max weekly fee across the dataset.
func (d *Dataset) FeeBounds() (min, max decimal.Decimal) {
	for i, rec := range d.records {
		if i == 0 || rec.WeeklyFeeValue.LessThan(min) {
			min = rec.WeeklyFeeValue
		}
		if i == 0 || rec.WeeklyFeeValue.GreaterThan(max) {
			max = rec.WeeklyFeeValue
		}
	}
	return min, max
}

// DefaultFilter returns the select-everything filter: all days, counties,
// and names, with ranges spanning the dataset. Mirrors the UI's
// default-checked state.
func (d *Dataset) DefaultFilter() domain.Filter {
	minDur, maxDur := d.DurationBounds()
	minFee, maxFee := d.FeeBounds()
	return domain.Filter{
		Days:        d.Days(),
		Counties:    d.Counties(),
		Names:       d.Names(),
		MinDuration: minDur,
		MaxDuration: maxDur,
		MinFee:      minFee,
		MaxFee:      maxFee,
	}
}

func (d *Dataset) distinct(key func(domain.Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range d.records {
		v := key(rec)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
