// Package snapshot parses an externally supplied availability table (CSV with
// a header row) into loosely-typed rows and owns the fuzzy matching rules:
// which column carries the date, and which column belongs to which developer.
package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"polypoint-backend/internal/pkg/calendar"
)

// Row is one imported record, keyed by the original header names.
type Row struct {
	headers []string
	values  map[string]string
}

// Table is a parsed snapshot.
type Table struct {
	Headers []string
	Rows    []Row
}

// Parse reads a CSV snapshot. The first record is the header; short records
// are tolerated, empty lines skipped.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse snapshot csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse snapshot csv: missing header row")
	}

	headers := records[0]
	t := &Table{Headers: headers}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		row := Row{headers: headers, values: make(map[string]string, len(headers))}
		empty := true
		for i, h := range headers {
			if i < len(rec) {
				row.values[h] = rec[i]
				if strings.TrimSpace(rec[i]) != "" {
					empty = false
				}
			}
		}
		if empty {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Get returns the raw cell under an exact header name.
func (r Row) Get(header string) (string, bool) {
	v, ok := r.values[header]
	return v, ok
}

// Date resolves the row's date to canonical YYYY-MM-DD. The column is found by
// header alias ("date"/"datum", case-insensitive) or, failing that, by the
// first column whose value has the D.M.YYYY shape. Returns "" when no column
// resolves or the value does not normalize.
func (r Row) Date() string {
	for _, h := range r.headers {
		u := strings.ToUpper(strings.TrimSpace(h))
		if u == "DATE" || u == "DATUM" {
			return calendar.Normalize(r.values[h])
		}
	}
	for _, h := range r.headers {
		if calendar.LooksLikeExportDate(r.values[h]) {
			return calendar.Normalize(r.values[h])
		}
	}
	return ""
}

// ResolveColumn finds the column belonging to a developer key: the first
// header whose trimmed first three characters, upper-cased, equal the key
// upper-cased. This is the single place the truncate-and-uppercase policy
// lives.
func (r Row) ResolveColumn(key string) (string, bool) {
	want := strings.ToUpper(key)
	for _, h := range r.headers {
		trimmed := strings.TrimSpace(h)
		if len(trimmed) < 3 {
			continue
		}
		if strings.ToUpper(trimmed[:3]) == want {
			return r.values[h], true
		}
	}
	return "", false
}

// ByDate indexes rows by normalized date. Rows without a resolvable date are
// dropped; on duplicate dates the first row wins.
func (t *Table) ByDate() map[string]Row {
	idx := make(map[string]Row, len(t.Rows))
	for _, row := range t.Rows {
		d := row.Date()
		if d == "" {
			continue
		}
		if _, exists := idx[d]; !exists {
			idx[d] = row
		}
	}
	return idx
}
