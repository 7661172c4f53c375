// Package loader reads the delimited listings file into a rectangular table.
// It prunes rows and columns that are entirely empty and nothing else; all
// per-field parsing belongs to the domain package.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/farmersjam/market-dashboard/internal/domain"
)

// Table is a header-keyed rectangular record set.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// RowMap returns row i keyed by header name, values trimmed.
func (t *Table) RowMap(i int) map[string]string {
	fields := make(map[string]string, len(t.Header))
	for j, h := range t.Header {
		if j < len(t.Rows[i]) {
			fields[h] = strings.TrimSpace(t.Rows[i][j])
		}
	}
	return fields
}

// Load reads a CSV file and returns the pruned table. Errors wrap
// domain.ErrDataUnavailable: a missing, unreadable, or empty-after-pruning
// source is fatal to the dashboard, there is nothing to render.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrDataUnavailable, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; pruning squares things up
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrDataUnavailable, path, err)
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("%w: %s has no data rows", domain.ErrDataUnavailable, path)
	}

	t := &Table{Header: all[0], Rows: all[1:]}
	t.pruneEmptyRows()
	t.pruneEmptyColumns()

	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: %s is empty after cleaning", domain.ErrDataUnavailable, path)
	}
	return t, nil
}

// pruneEmptyRows drops rows that are empty across all columns.
func (t *Table) pruneEmptyRows() {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if !allEmpty(row) {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}

// pruneEmptyColumns drops columns that are empty across all rows.
func (t *Table) pruneEmptyColumns() {
	keep := make([]bool, len(t.Header))
	for j := range t.Header {
		for _, row := range t.Rows {
			if j < len(row) && strings.TrimSpace(row[j]) != "" {
				keep[j] = true
				break
			}
		}
	}

	header := make([]string, 0, len(t.Header))
	for j, h := range t.Header {
		if keep[j] {
			header = append(header, h)
		}
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		pruned := make([]string, 0, len(header))
		for j := range t.Header {
			if !keep[j] {
				continue
			}
			if j < len(row) {
				pruned = append(pruned, row[j])
			} else {
				pruned = append(pruned, "")
			}
		}
		rows[i] = pruned
	}

	t.Header = header
	t.Rows = rows
}

func allEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
