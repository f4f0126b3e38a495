// Package capacity turns the availability ledger plus developer profiles into
// sprint-level metric tables. Computation is pure: inputs are borrowed for one
// call and the result is an independent structure, never persisted back.
package capacity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"polypoint-backend/internal/domain"
	"polypoint-backend/internal/pkg/constants"
)

// Filter narrows the computed tables. Empty or "All" means no filtering.
type Filter struct {
	Team   string
	Sprint string
}

func (f Filter) wantTeam() bool {
	return f.Team != "" && f.Team != constants.FilterAll
}

func (f Filter) wantSprint() bool {
	return f.Sprint != "" && f.Sprint != constants.FilterAll
}

// Column describes one developer column of a table.
type Column struct {
	Key         string `json:"key"`
	SpecialCase bool   `json:"specialCase"`
}

// Row is one sprint line of a table. Total excludes special-case developers.
type Row struct {
	Sprint string    `json:"sprint"`
	Cells  []float64 `json:"cells"`
	Total  float64   `json:"total"`
}

// Table is one metric's sprint × developer matrix with the two trailing
// summary rows. All cell values are unrounded; rounding happens only at the
// presentation boundary (Format/Records).
type Table struct {
	Metric    constants.Metric `json:"metric"`
	Title     string           `json:"title"`
	Columns   []Column         `json:"columns"`
	Rows      []Row            `json:"rows"`
	Total     Row              `json:"total"`
	WithoutIP Row              `json:"withoutIP"`
}

type sprintGroup struct {
	name string
	rows []domain.AvailabilityRow
}

// groupSprints partitions rows (already in chronological order) into sprints,
// ordered by each sprint's earliest date.
func groupSprints(rows []domain.AvailabilityRow) []sprintGroup {
	var groups []sprintGroup
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.Sprint]
		if !ok {
			i = len(groups)
			index[r.Sprint] = i
			groups = append(groups, sprintGroup{name: r.Sprint})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

// Compute builds the three metric tables (story points, develop hours,
// maintain hours) for the given ledger and profiles under a filter.
//
// A developer with no availability data contributes full default availability
// (absent fields read as 1); a sprint with no developers in scope still gets
// an all-zero row. Special-case developers keep their own column but are left
// out of every summed total.
func Compute(rows []domain.AvailabilityRow, devs []domain.Developer, f Filter) []Table {
	groups := groupSprints(rows)
	if f.wantSprint() {
		var kept []sprintGroup
		for _, g := range groups {
			if g.name == f.Sprint {
				kept = append(kept, g)
			}
		}
		groups = kept
	}

	// A developer is in scope when their team matches for at least one sprint
	// in scope, honoring per-sprint team overrides.
	var scoped []domain.Developer
	for _, d := range devs {
		if !f.wantTeam() {
			scoped = append(scoped, d)
			continue
		}
		for _, g := range groups {
			if d.TeamFor(g.name) == f.Team {
				scoped = append(scoped, d)
				break
			}
		}
	}

	// days[gi][di]: availability-day sum for developer di in sprint gi, zero
	// when the team filter excludes the developer for that sprint.
	days := make([][]float64, len(groups))
	for gi, g := range groups {
		days[gi] = make([]float64, len(scoped))
		for di, d := range scoped {
			if f.wantTeam() && d.TeamFor(g.name) != f.Team {
				continue
			}
			sum := 0.0
			for _, r := range g.rows {
				sum += r.Fraction(d.Key)
			}
			days[gi][di] = sum
		}
	}

	rates := make([]domain.DailyRates, len(scoped))
	for di, d := range scoped {
		rates[di] = d.Rates()
	}

	columns := make([]Column, len(scoped))
	for di, d := range scoped {
		columns[di] = Column{Key: d.Key, SpecialCase: d.SpecialCase}
	}

	tables := make([]Table, 0, len(constants.Metrics))
	for _, metric := range constants.Metrics {
		t := Table{
			Metric:    metric,
			Title:     metric.Title(),
			Columns:   columns,
			Total:     Row{Sprint: "Total", Cells: make([]float64, len(scoped))},
			WithoutIP: Row{Sprint: "Ohne IP", Cells: make([]float64, len(scoped))},
		}
		for gi, g := range groups {
			isIP := strings.Contains(g.name, constants.IPSubstring)
			row := Row{Sprint: g.name, Cells: make([]float64, len(scoped))}
			for di, d := range scoped {
				val := days[gi][di] * rate(rates[di], metric)
				row.Cells[di] = val
				t.Total.Cells[di] += val
				if !isIP {
					t.WithoutIP.Cells[di] += val
				}
				if !d.SpecialCase {
					row.Total += val
				}
			}
			t.Rows = append(t.Rows, row)
		}
		for di, d := range scoped {
			if !d.SpecialCase {
				t.Total.Total += t.Total.Cells[di]
				t.WithoutIP.Total += t.WithoutIP.Cells[di]
			}
		}
		tables = append(tables, t)
	}
	return tables
}

func rate(r domain.DailyRates, metric constants.Metric) float64 {
	switch metric {
	case constants.MetricStoryPoints:
		return r.StoryPoints
	case constants.MetricDevelopHours:
		return r.DevelopHours
	case constants.MetricMaintainHours:
		return r.MaintainHours
	}
	return 0
}

// Format renders one cell for display: story points to one decimal, hour
// metrics to the nearest integer.
func (t *Table) Format(v float64) string {
	if t.Metric == constants.MetricStoryPoints {
		return fmt.Sprintf("%.1f", v)
	}
	return strconv.Itoa(int(math.Round(v)))
}

// Header returns the export header: Sprint, developer keys, Total.
func (t *Table) Header() []string {
	h := make([]string, 0, len(t.Columns)+2)
	h = append(h, "Sprint")
	for _, c := range t.Columns {
		h = append(h, c.Key)
	}
	return append(h, "Total")
}

// Records returns all formatted rows including the Total and Ohne IP lines,
// ready for CSV or terminal table output.
func (t *Table) Records() [][]string {
	recs := make([][]string, 0, len(t.Rows)+2)
	for _, r := range t.Rows {
		recs = append(recs, t.record(r))
	}
	recs = append(recs, t.record(t.Total), t.record(t.WithoutIP))
	return recs
}

func (t *Table) record(r Row) []string {
	rec := make([]string, 0, len(r.Cells)+2)
	rec = append(rec, r.Sprint)
	for _, v := range r.Cells {
		rec = append(rec, t.Format(v))
	}
	return append(rec, t.Format(r.Total))
}
