package domain

import (
	"sort"
	"strings"
)

// weekOrder fixes the column order of the calendar view. Day values outside
// it (typos in the source) sort after the real days, alphabetically.
var weekOrder = map[string]int{
	"Sunday":    0,
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
}

// BuildCalendar assigns each record a transient event ID (its position in
// the input) and keeps only records whose name is in selectedNames. The ID
// exists solely so two listings with identical times but different names
// stay separate rows when pivoted; it is scoped to this call. An empty
// selection selects nothing.
func BuildCalendar(records []Record, selectedNames []string) []Record {
	names := toSet(selectedNames)

	out := make([]Record, 0, len(records))
	for i, rec := range records {
		if !names[rec.Name] {
			continue
		}
		rec.EventID = i
		out = append(out, rec)
	}
	return out
}

// CalendarView is the day-of-week pivot: one column per distinct day
// present in the input, one row per (start, end, event ID) group. Cells
// hold the comma-joined names occurring on that day for the group, or the
// empty string. The event ID is pivot scaffolding and does not appear.
type CalendarView struct {
	Days []string      `json:"days"`
	Rows []CalendarRow `json:"rows"`
}

// CalendarRow is one pivoted row. ByDay has an entry for every day column,
// empty-string cells included, so the view stays rectangular.
type CalendarRow struct {
	Start string            `json:"start"`
	End   string            `json:"end"`
	ByDay map[string]string `json:"by_day"`

	eventID int
}

// NewCalendarView pivots calendar-built records into a day-of-week grid.
// Since event IDs are unique per source row, every input record becomes its
// own pivot row; the grouping key exists to array same-event occurrences by
// day for scanning, not to merge events.
func NewCalendarView(records []Record) CalendarView {
	days := distinctDays(records)

	type key struct {
		start, end string
		eventID    int
	}
	groups := make(map[key][]Record)
	var order []key
	for _, rec := range records {
		k := key{start: rec.Start, end: rec.End, eventID: rec.EventID}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], rec)
	}

	rows := make([]CalendarRow, 0, len(order))
	for _, k := range order {
		row := CalendarRow{Start: k.start, End: k.end, eventID: k.eventID, ByDay: make(map[string]string, len(days))}
		byDay := make(map[string][]string)
		for _, rec := range groups[k] {
			byDay[rec.DayOfWeek] = append(byDay[rec.DayOfWeek], rec.Name)
		}
		for _, day := range days {
			row.ByDay[day] = strings.Join(byDay[day], ", ")
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Start != rows[j].Start {
			return rows[i].Start < rows[j].Start
		}
		if rows[i].End != rows[j].End {
			return rows[i].End < rows[j].End
		}
		return rows[i].eventID < rows[j].eventID
	})

	return CalendarView{Days: days, Rows: rows}
}

// distinctDays returns the day-of-week values present, in week order.
func distinctDays(records []Record) []string {
	seen := make(map[string]bool)
	var days []string
	for _, rec := range records {
		if rec.DayOfWeek == "" || seen[rec.DayOfWeek] {
			continue
		}
		seen[rec.DayOfWeek] = true
		days = append(days, rec.DayOfWeek)
	}

	sort.Slice(days, func(i, j int) bool {
		oi, iKnown := weekOrder[days[i]]
		oj, jKnown := weekOrder[days[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return days[i] < days[j]
		}
	})
	return days
}
