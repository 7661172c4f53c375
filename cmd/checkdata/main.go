// Command checkdata runs integrity checks over a listings CSV before it is
// handed to the dashboard: schema presence, per-field parse failures, and
// derived-metric spot checks.
//
// Usage:
//
//	go run ./cmd/checkdata -file Database.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/farmersjam/market-dashboard/internal/domain"
	"github.com/farmersjam/market-dashboard/internal/loader"
)

// requiredColumns must survive empty-column pruning for the analyzer to
// produce every derived metric.
var requiredColumns = []string{
	domain.ColName,
	domain.ColLocation,
	domain.ColDayOfWeek,
	domain.ColCounty,
	domain.ColStartTime,
	domain.ColEndTime,
	domain.ColWeeklyFee,
	domain.ColPeriodFrom,
	domain.ColPeriodTo,
	domain.ColBooth5x5,
	domain.ColBooth10x10,
	domain.ColLatitude,
	domain.ColLongitude,
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "Database.csv", "path to the listings CSV")
	flag.Parse()

	os.Exit(run(*file))
}

func run(path string) int {
	fmt.Println("=== Listings Data Integrity Check ===")
	fmt.Println()

	table, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	records := make([]domain.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		records = append(records, domain.ParseRecord(table.RowMap(i)))
	}
	analyzed, fieldErrs := domain.Analyze(records)

	phases := []*phase{
		checkSchema(table),
		checkParsing(fieldErrs),
		checkDerivedMetrics(analyzed),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d loaded, %d analyzed, %d dropped\n",
		table.Len(), len(analyzed), len(fieldErrs))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll checks passed.")
		return 0
	}
	fmt.Println("\nCheck FAILED.")
	return 1
}

// checkSchema verifies the expected columns survived pruning.
func checkSchema(table *loader.Table) *phase {
	p := &phase{name: "Schema presence"}

	present := make(map[string]bool, len(table.Header))
	for _, h := range table.Header {
		present[h] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			p.errorf("missing column %q", col)
		}
	}
	return p
}

// checkParsing reports every field that failed to parse.
func checkParsing(fieldErrs []*domain.FieldError) *phase {
	p := &phase{name: "Field parsing"}
	for _, fe := range fieldErrs {
		p.errorf("%v", fe)
	}
	return p
}

// checkDerivedMetrics flags listings whose derived values look wrong:
// non-positive durations, undefined hourly prices, suspicious coordinates.
// These are warnings about the data, not the pipeline, but they are exactly
// what shows up as an odd row on the dashboard.
func checkDerivedMetrics(records []domain.Record) *phase {
	p := &phase{name: "Derived metrics"}

	for _, rec := range records {
		if rec.DurationHours < 0 {
			p.errorf("%s (%s): negative duration %.2fh, end precedes start", rec.Name, rec.DayOfWeek, rec.DurationHours)
		}
		if rec.DurationHours == 0 {
			p.errorf("%s (%s): zero duration, price per hour is undefined", rec.Name, rec.DayOfWeek)
		}
		if rec.WeeklyFeeValue.IsNegative() {
			p.errorf("%s (%s): negative weekly fee %s", rec.Name, rec.DayOfWeek, rec.WeeklyFeeValue)
		}
		if !rec.HasCoordinates() {
			p.errorf("%s (%s): no coordinates, will not appear on the map", rec.Name, rec.DayOfWeek)
		}
	}
	return p
}
