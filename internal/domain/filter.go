package domain

import "github.com/shopspring/decimal"

// Filter is the conjunction of the dashboard's predicates. Set predicates
// (days, counties, names) are literal selections: an empty set means
// "select none", not "select all"; callers wanting everything pass every
// distinct value, the way the UI's default-checked multiselects do.
type Filter struct {
	Days     []string
	Counties []string
	Names    []string

	// Inclusive ranges.
	MinDuration float64
	MaxDuration float64
	MinFee      decimal.Decimal
	MaxFee      decimal.Decimal
}

// Apply returns the subset of records satisfying every predicate. The input
// is never mutated; the result is a fresh slice. Applying the same filter
// twice yields the same subset.
func (f Filter) Apply(records []Record) []Record {
	days := toSet(f.Days)
	counties := toSet(f.Counties)
	names := toSet(f.Names)

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !days[rec.DayOfWeek] || !counties[rec.County] || !names[rec.Name] {
			continue
		}
		if rec.DurationHours < f.MinDuration || rec.DurationHours > f.MaxDuration {
			continue
		}
		if rec.WeeklyFeeValue.LessThan(f.MinFee) || rec.WeeklyFeeValue.GreaterThan(f.MaxFee) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
