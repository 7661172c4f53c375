package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary is the cost breakdown over a selected record set. Totals are
// aggregates of derived metrics; everything else is per-record display.
type Summary struct {
	Count          int             `json:"count"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalHours     float64         `json:"total_hours"`
	AvgCostPerEach decimal.Decimal `json:"avg_cost_per_market"`
	AvgCostPerHour decimal.Decimal `json:"avg_cost_per_hour"`

	Headline  string   `json:"headline"`
	Breakdown []string `json:"breakdown"`
}

// Summarize aggregates cost metrics over the given records and formats the
// display text. An empty selection is a valid state and yields the
// "no matching results" headline, not an error. Average cost per hour falls
// back to zero when total hours is zero, mirroring the upstream behavior.
func Summarize(records []Record) Summary {
	s := Summary{Count: len(records)}

	if len(records) == 0 {
		s.Headline = "No matching results."
		return s
	}

	for _, rec := range records {
		s.TotalCost = s.TotalCost.Add(rec.TotalCost)
		s.TotalHours += rec.TotalHours
	}

	s.AvgCostPerEach = s.TotalCost.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	if s.TotalHours != 0 {
		s.AvgCostPerHour = s.TotalCost.Div(decimal.NewFromFloat(s.TotalHours)).Round(2)
	}

	if s.TotalCost.IsZero() {
		s.Headline = "The Total Cost is $0"
	} else {
		s.Headline = fmt.Sprintf(
			"The Total Cost is $%s for %d Farmers' Market. Each Farmers' Market costs on average $%s. Each Hour costs on average $%s",
			s.TotalCost.StringFixed(2), s.Count,
			s.AvgCostPerEach.StringFixed(2), s.AvgCostPerHour.StringFixed(2))
	}

	s.Breakdown = make([]string, 0, len(records))
	for _, rec := range records {
		s.Breakdown = append(s.Breakdown, fmt.Sprintf(
			"%s on %s from %s to %s: Duration: %d weeks, Weekly Fee: $%s, Total Cost: $%s.",
			rec.Name, rec.DayOfWeek, rec.Start, rec.End,
			rec.TotalWeeks, rec.WeeklyFeeValue.StringFixed(2), rec.TotalCost.StringFixed(2)))
	}

	return s
}
