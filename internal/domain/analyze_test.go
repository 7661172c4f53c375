package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freezeYear pins the analyzer clock so "current year" period parsing is
// deterministic regardless of when the tests run.
func freezeYear(t *testing.T, year int) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })
}

func baseRecord() Record {
	return Record{
		Name:          "Grant Park Farmers Market",
		Location:      "600 Cherokee Ave SE",
		DayOfWeek:     "Sunday",
		County:        "Fulton",
		StartTimeRaw:  "09:00:00",
		EndTimeRaw:    "13:00:00",
		WeeklyFee:     "$100",
		PeriodFromRaw: "01-Jan",
		PeriodToRaw:   "15-Jan",
		Booth5x5Raw:   "$50",
		Booth10x10Raw: "$150",
		Latitude:      33.7366,
		Longitude:     -84.3702,
	}
}

func TestAnalyzeRecord(t *testing.T) {
	freezeYear(t, 2026)

	t.Run("derives scheduling and cost metrics", func(t *testing.T) {
		rec, ferr := AnalyzeRecord(baseRecord())
		require.Nil(t, ferr)

		assert.Equal(t, 4.0, rec.DurationHours)
		assert.Equal(t, "09:00 AM", rec.Start)
		assert.Equal(t, "01:00 PM", rec.End)
		assert.True(t, rec.WeeklyFeeValue.Equal(decimal.NewFromInt(100)))

		require.True(t, rec.PricePerHour.Valid)
		assert.True(t, rec.PricePerHour.Decimal.Equal(decimal.RequireFromString("25.00")))

		assert.Equal(t, 2, rec.TotalWeeks)
		assert.Equal(t, 8.0, rec.TotalHours)
		assert.True(t, rec.TotalCost.Equal(decimal.NewFromInt(200)))
	})

	t.Run("raw fields survive the transform", func(t *testing.T) {
		in := baseRecord()
		rec, ferr := AnalyzeRecord(in)
		require.Nil(t, ferr)

		assert.Equal(t, in.WeeklyFee, rec.WeeklyFee)
		assert.Equal(t, in.StartTimeRaw, rec.StartTimeRaw)
		assert.Equal(t, in.PeriodFromRaw, rec.PeriodFromRaw)
		assert.Equal(t, in.Booth5x5Raw, rec.Booth5x5Raw)
	})

	t.Run("booth prices and per-square-foot metrics", func(t *testing.T) {
		rec, ferr := AnalyzeRecord(baseRecord())
		require.Nil(t, ferr)

		require.True(t, rec.Booth5x5.Valid)
		assert.True(t, rec.Booth5x5.Decimal.Equal(decimal.NewFromInt(50)))
		require.True(t, rec.PricePerSqFt5x5.Valid)
		assert.True(t, rec.PricePerSqFt5x5.Decimal.Equal(decimal.NewFromInt(2)))

		require.True(t, rec.PricePerSqFt10x10.Valid)
		assert.True(t, rec.PricePerSqFt10x10.Decimal.Equal(decimal.RequireFromString("1.5")))
	})

	t.Run("booth sentinel yields absent price, not zero", func(t *testing.T) {
		in := baseRecord()
		in.Booth5x5Raw = "Not an Option"
		rec, ferr := AnalyzeRecord(in)
		require.Nil(t, ferr)

		assert.False(t, rec.Booth5x5.Valid)
		assert.False(t, rec.PricePerSqFt5x5.Valid)
		assert.True(t, rec.Booth10x10.Valid, "other booth unaffected")
	})

	t.Run("zero duration leaves price per hour undefined", func(t *testing.T) {
		in := baseRecord()
		in.EndTimeRaw = in.StartTimeRaw
		rec, ferr := AnalyzeRecord(in)
		require.Nil(t, ferr)

		assert.Equal(t, 0.0, rec.DurationHours)
		assert.False(t, rec.PricePerHour.Valid)
		assert.Equal(t, 0.0, rec.TotalHours)
	})

	t.Run("negative duration propagates uncorrected", func(t *testing.T) {
		in := baseRecord()
		in.StartTimeRaw = "13:00:00"
		in.EndTimeRaw = "09:00:00"
		rec, ferr := AnalyzeRecord(in)
		require.Nil(t, ferr)

		assert.Equal(t, -4.0, rec.DurationHours)
		require.True(t, rec.PricePerHour.Valid)
		assert.True(t, rec.PricePerHour.Decimal.IsNegative())
	})

	t.Run("reversed period still counts weeks", func(t *testing.T) {
		in := baseRecord()
		in.PeriodFromRaw = "15-Oct"
		in.PeriodToRaw = "01-Mar"
		rec, ferr := AnalyzeRecord(in)
		require.Nil(t, ferr)

		assert.GreaterOrEqual(t, rec.TotalWeeks, 0)
		assert.Equal(t, 32, rec.TotalWeeks) // |Mar 1 - Oct 15| = 228 days in 2026
	})

	t.Run("fee with thousands separator", func(t *testing.T) {
		in := baseRecord()
		in.WeeklyFee = "$1,250.50"
		rec, ferr := AnalyzeRecord(in)
		require.Nil(t, ferr)

		assert.True(t, rec.WeeklyFeeValue.Equal(decimal.RequireFromString("1250.50")))
	})
}

func TestAnalyzeRecord_MalformedFields(t *testing.T) {
	freezeYear(t, 2026)

	tests := []struct {
		name   string
		mutate func(*Record)
		field  string
	}{
		{"bad start time", func(r *Record) { r.StartTimeRaw = "9am" }, ColStartTime},
		{"bad end time", func(r *Record) { r.EndTimeRaw = "25:00:00" }, ColEndTime},
		{"junk fee", func(r *Record) { r.WeeklyFee = "call us" }, ColWeeklyFee},
		{"empty fee", func(r *Record) { r.WeeklyFee = "" }, ColWeeklyFee},
		{"bad period start", func(r *Record) { r.PeriodFromRaw = "January 1" }, ColPeriodFrom},
		{"bad period end", func(r *Record) { r.PeriodToRaw = "32-Jan" }, ColPeriodTo},
		{"junk booth price", func(r *Record) { r.Booth5x5Raw = "ask manager" }, ColBooth5x5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseRecord()
			tt.mutate(&in)

			_, ferr := AnalyzeRecord(in)
			require.NotNil(t, ferr)
			assert.Equal(t, tt.field, ferr.Field)
			assert.ErrorIs(t, ferr, ErrMalformedField)
		})
	}
}

func TestAnalyze_PartialFailure(t *testing.T) {
	freezeYear(t, 2026)

	good := baseRecord()
	bad := baseRecord()
	bad.Name = "Broken Listing"
	bad.WeeklyFee = "free-ish"

	analyzed, errs := Analyze([]Record{good, bad, good})

	assert.Len(t, analyzed, 2, "bad row dropped, good rows kept")
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Row)
	assert.Equal(t, ColWeeklyFee, errs[0].Field)
}
