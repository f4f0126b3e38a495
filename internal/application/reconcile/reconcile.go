// Package reconcile compares the availability ledger against an externally
// supplied snapshot and produces a signed delta per (date, developer).
// The output is read-only; the ledger is never mutated here.
package reconcile

import (
	"strconv"

	"polypoint-backend/internal/application/snapshot"
	"polypoint-backend/internal/domain"
	"polypoint-backend/internal/pkg/calendar"
	"polypoint-backend/internal/pkg/constants"
	"polypoint-backend/internal/pkg/validation"
)

// Filter narrows the delta table. Empty or "All" means no filtering.
// Week is the ISO week as a string since it arrives from a query parameter.
type Filter struct {
	Team    string
	Sprint  string
	Weekday string
	Week    string
}

func active(v string) bool {
	return v != "" && v != constants.FilterAll
}

// DeltaRow is one ledger date of the comparison. Deltas line up with
// Result.Keys; positive means capacity gained since the snapshot, negative
// means lost.
type DeltaRow struct {
	Date        string    `json:"date"`
	DisplayDate string    `json:"displayDate"`
	Weekday     string    `json:"weekday"`
	Week        int       `json:"week"`
	Sprint      string    `json:"sprint"`
	Deltas      []float64 `json:"deltas"`
}

// Result is the full delta table.
type Result struct {
	Keys []string   `json:"keys"`
	Rows []DeltaRow `json:"rows"`
}

// Compare matches every ledger date against the snapshot and computes
// ledger − snapshot per developer.
//
// A ledger date with no snapshot row yields delta 0 everywhere (no change,
// not all lost). On a matched row, a developer whose column is absent reads
// as 1, the same default-absent convention the ledger itself uses.
func Compare(ledger []domain.AvailabilityRow, devs []domain.Developer, table *snapshot.Table, f Filter) Result {
	var keys []string
	var scoped []domain.Developer
	for _, d := range devs {
		if active(f.Team) && d.Team != f.Team {
			continue
		}
		scoped = append(scoped, d)
		keys = append(keys, d.Key)
	}

	byDate := table.ByDate()
	res := Result{Keys: keys}

	for _, row := range ledger {
		weekday := calendar.Weekday(row.Date)
		week := calendar.ISOWeek(row.Date)
		if active(f.Sprint) && row.Sprint != f.Sprint {
			continue
		}
		if active(f.Weekday) && weekday != f.Weekday {
			continue
		}
		if active(f.Week) && strconv.Itoa(week) != f.Week {
			continue
		}

		out := DeltaRow{
			Date:        row.Date,
			DisplayDate: calendar.FormatDisplay(row.Date),
			Weekday:     weekday,
			Week:        week,
			Sprint:      row.Sprint,
			Deltas:      make([]float64, len(scoped)),
		}

		snapRow, matched := byDate[row.Date]
		for i, dev := range scoped {
			ledgerVal := row.Fraction(dev.Key)
			if !matched {
				// No snapshot data for this date: treated as no change.
				continue
			}
			snapVal := 1.0
			if raw, found := snapRow.ResolveColumn(dev.Key); found {
				snapVal = validation.ParseFraction(raw)
			}
			out.Deltas[i] = ledgerVal - snapVal
		}
		res.Rows = append(res.Rows, out)
	}
	return res
}

// FilterOptions lists the selectable values for each comparison filter, in
// display order, derived from the current ledger and roster.
type FilterOptions struct {
	Teams    []string `json:"teams"`
	Sprints  []string `json:"sprints"`
	Weekdays []string `json:"weekdays"`
	Weeks    []int    `json:"weeks"`
}

// Options derives the filter choices offered alongside a comparison.
func Options(ledger []domain.AvailabilityRow, devs []domain.Developer) FilterOptions {
	var opts FilterOptions
	seenTeam := map[string]bool{}
	for _, d := range devs {
		if d.Team != "" && !seenTeam[d.Team] {
			seenTeam[d.Team] = true
			opts.Teams = append(opts.Teams, d.Team)
		}
	}
	seenSprint := map[string]bool{}
	seenDay := map[string]bool{}
	seenWeek := map[int]bool{}
	for _, r := range ledger {
		if r.Sprint != "" && !seenSprint[r.Sprint] {
			seenSprint[r.Sprint] = true
			opts.Sprints = append(opts.Sprints, r.Sprint)
		}
		if day := calendar.Weekday(r.Date); day != "" && !seenDay[day] {
			seenDay[day] = true
			opts.Weekdays = append(opts.Weekdays, day)
		}
		if wk := calendar.ISOWeek(r.Date); wk != 0 && !seenWeek[wk] {
			seenWeek[wk] = true
			opts.Weeks = append(opts.Weeks, wk)
		}
	}
	calendar.SortWeekdays(opts.Weekdays)
	return opts
}
