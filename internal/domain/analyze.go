package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	timeOfDayLayout = "15:04:05"
	displayLayout   = "03:04 PM"
	periodLayout    = "02-Jan-2006"
)

// Analyze derives metrics for every record, dropping records whose fields
// fail to parse and reporting each as a FieldError. Bad rows are excluded
// rather than coerced: a listing with a junk fee must not show up as free.
func Analyze(records []Record) ([]Record, []*FieldError) {
	analyzed := make([]Record, 0, len(records))
	var errs []*FieldError

	for i, rec := range records {
		out, err := AnalyzeRecord(rec)
		if err != nil {
			err.Row = i
			errs = append(errs, err)
			continue
		}
		analyzed = append(analyzed, out)
	}

	return analyzed, errs
}

// AnalyzeRecord derives all computed metrics from a record's raw fields, in
// dependency order: times and duration first, then fee and price-per-hour,
// then the period week count and totals, then booth prices and
// per-square-foot metrics. The transform is additive; raw fields are left
// untouched.
func AnalyzeRecord(rec Record) (Record, *FieldError) {
	start, err := time.Parse(timeOfDayLayout, rec.StartTimeRaw)
	if err != nil {
		return Record{}, newFieldError(0, ColStartTime, rec.StartTimeRaw, err)
	}
	end, err := time.Parse(timeOfDayLayout, rec.EndTimeRaw)
	if err != nil {
		return Record{}, newFieldError(0, ColEndTime, rec.EndTimeRaw, err)
	}
	rec.StartTime = start
	rec.EndTime = end

	// Negative durations (end before start) propagate as-is; they mark a
	// bad listing and are not silently corrected here.
	rec.DurationHours = end.Sub(start).Seconds() / 3600
	rec.Start = start.Format(displayLayout)
	rec.End = end.Format(displayLayout)

	fee, err := parseCurrency(rec.WeeklyFee)
	if err != nil {
		return Record{}, newFieldError(0, ColWeeklyFee, rec.WeeklyFee, err)
	}
	rec.WeeklyFeeValue = fee

	// Division by zero stays an explicit null, never Inf leaking into sums.
	if rec.DurationHours != 0 {
		rec.PricePerHour = decimal.NewNullDecimal(
			fee.Div(decimal.NewFromFloat(rec.DurationHours)).Round(2))
	}

	// Period dates carry no year; assume the current one. A December to
	// January period parses reversed, which the absolute difference below
	// absorbs. Known year-boundary quirk, kept observable.
	year := clock.Now().Year()
	from, err := time.Parse(periodLayout, fmt.Sprintf("%s-%d", rec.PeriodFromRaw, year))
	if err != nil {
		return Record{}, newFieldError(0, ColPeriodFrom, rec.PeriodFromRaw, err)
	}
	to, err := time.Parse(periodLayout, fmt.Sprintf("%s-%d", rec.PeriodToRaw, year))
	if err != nil {
		return Record{}, newFieldError(0, ColPeriodTo, rec.PeriodToRaw, err)
	}
	rec.PeriodFrom = from
	rec.PeriodTo = to

	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		days = -days
	}
	rec.TotalWeeks = days / 7

	rec.TotalHours = float64(rec.TotalWeeks) * rec.DurationHours
	rec.TotalCost = fee.Mul(decimal.NewFromInt(int64(rec.TotalWeeks)))

	booth5, err := parseBoothPrice(rec.Booth5x5Raw)
	if err != nil {
		return Record{}, newFieldError(0, ColBooth5x5, rec.Booth5x5Raw, err)
	}
	booth10, err := parseBoothPrice(rec.Booth10x10Raw)
	if err != nil {
		return Record{}, newFieldError(0, ColBooth10x10, rec.Booth10x10Raw, err)
	}
	rec.Booth5x5 = booth5
	rec.Booth10x10 = booth10
	rec.PricePerSqFt5x5 = pricePerSqFt(booth5, BoothArea5x5)
	rec.PricePerSqFt10x10 = pricePerSqFt(booth10, BoothArea10x10)

	return rec, nil
}

// parseCurrency strips dollar signs and thousands separators and converts
// the remainder to decimal.
func parseCurrency(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty currency value")
	}
	return decimal.NewFromString(cleaned)
}

// parseBoothPrice converts a booth column value to an optional price. The
// "Not an Option" sentinel means no value present, not zero and not an
// error; anything else must be a currency string.
func parseBoothPrice(s string) (decimal.NullDecimal, error) {
	if strings.EqualFold(strings.TrimSpace(s), BoothNotAnOption) {
		return decimal.NullDecimal{}, nil
	}
	price, err := parseCurrency(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(price), nil
}

// pricePerSqFt divides an optional booth price by its fixed area. Absence
// propagates: no booth, no per-square-foot price.
func pricePerSqFt(price decimal.NullDecimal, area int64) decimal.NullDecimal {
	if !price.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(price.Decimal.Div(decimal.NewFromInt(area)))
}
