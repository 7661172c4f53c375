package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source CSV column names. The schema is fixed; see the package doc.
const (
	ColName       = "Name"
	ColLocation   = "Location"
	ColDayOfWeek  = "Day of the Week"
	ColCounty     = "County"
	ColStartTime  = "Start Time"
	ColEndTime    = "End Time"
	ColWeeklyFee  = "Weekly Fee"
	ColPeriodFrom = "Start of Period"
	ColPeriodTo   = "End of Period"
	ColBooth5x5   = "5x5 Booth"
	ColBooth10x10 = "10x10 Booth"
	ColLatitude   = "Latitude"
	ColLongitude  = "Longitude"
	ColDesc       = "Description"
	ColVendorLink = "Vendor Application Link"
	ColSource     = "Source"
)

// BoothNotAnOption is the source sentinel for a stall size the market does
// not offer. It converts to an absent price, never zero.
const BoothNotAnOption = "Not an Option"

// Fixed booth areas in square feet.
const (
	BoothArea5x5   = 25
	BoothArea10x10 = 100
)

// Record is one market/day/time-slot listing: the raw CSV fields plus the
// metrics derived by AnalyzeRecord. Raw fields keep their source strings so
// the original columns survive the additive transform intact.
type Record struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	DayOfWeek string `json:"day_of_week"`
	County    string `json:"county"`

	StartTimeRaw  string `json:"start_time"`
	EndTimeRaw    string `json:"end_time"`
	WeeklyFee     string `json:"weekly_fee"`
	PeriodFromRaw string `json:"start_of_period"`
	PeriodToRaw   string `json:"end_of_period"`
	Booth5x5Raw   string `json:"5x5_booth"`
	Booth10x10Raw string `json:"10x10_booth"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Description string `json:"description,omitempty"`
	VendorLink  string `json:"vendor_application_link,omitempty"`
	Source      string `json:"source,omitempty"`

	// Derived by AnalyzeRecord.
	StartTime         time.Time           `json:"-"`
	EndTime           time.Time           `json:"-"`
	DurationHours     float64             `json:"duration"`
	Start             string              `json:"start"` // 12-hour display, "09:00 AM"
	End               string              `json:"end"`
	WeeklyFeeValue    decimal.Decimal     `json:"weekly_fee_value"`
	PricePerHour      decimal.NullDecimal `json:"price_per_hour"` // null when duration is zero
	PeriodFrom        time.Time           `json:"-"`
	PeriodTo          time.Time           `json:"-"`
	TotalWeeks        int                 `json:"total_weeks"`
	TotalHours        float64             `json:"total_hours"`
	TotalCost         decimal.Decimal     `json:"total_cost"`
	Booth5x5          decimal.NullDecimal `json:"5x5_price"` // null when not offered
	Booth10x10        decimal.NullDecimal `json:"10x10_price"`
	PricePerSqFt5x5   decimal.NullDecimal `json:"5x5_price_per_sqft"`
	PricePerSqFt10x10 decimal.NullDecimal `json:"10x10_price_per_sqft"`

	// Geocoding enrichment fields.
	GeoSource string `json:"geo_source,omitempty"` // "forward", "reverse", "original", "failed"

	// EventID is assigned by BuildCalendar and is meaningless outside a
	// single build; see the package doc.
	EventID int `json:"-"`
}

// HasCoordinates reports whether the record carries a usable map position.
// Blank source coordinates parse to zero, which is nowhere near Georgia.
func (r Record) HasCoordinates() bool {
	return r.Latitude != 0 || r.Longitude != 0
}

// ParseRecord maps a header-keyed CSV row onto a raw Record. Coordinates
// parse leniently to zero (geocoding can fill them later); everything else
// is carried as-is for AnalyzeRecord to validate.
func ParseRecord(fields map[string]string) Record {
	return Record{
		Name:          strings.TrimSpace(fields[ColName]),
		Location:      strings.TrimSpace(fields[ColLocation]),
		DayOfWeek:     strings.TrimSpace(fields[ColDayOfWeek]),
		County:        strings.TrimSpace(fields[ColCounty]),
		StartTimeRaw:  strings.TrimSpace(fields[ColStartTime]),
		EndTimeRaw:    strings.TrimSpace(fields[ColEndTime]),
		WeeklyFee:     strings.TrimSpace(fields[ColWeeklyFee]),
		PeriodFromRaw: strings.TrimSpace(fields[ColPeriodFrom]),
		PeriodToRaw:   strings.TrimSpace(fields[ColPeriodTo]),
		Booth5x5Raw:   strings.TrimSpace(fields[ColBooth5x5]),
		Booth10x10Raw: strings.TrimSpace(fields[ColBooth10x10]),
		Latitude:      parseFloatOrZero(fields[ColLatitude]),
		Longitude:     parseFloatOrZero(fields[ColLongitude]),
		Description:   strings.TrimSpace(fields[ColDesc]),
		VendorLink:    strings.TrimSpace(fields[ColVendorLink]),
		Source:        strings.TrimSpace(fields[ColSource]),
	}
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
