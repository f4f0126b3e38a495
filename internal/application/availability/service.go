package availability

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"polypoint-backend/internal/application/snapshot"
	"polypoint-backend/internal/domain"
	"polypoint-backend/internal/infrastructure/cache"
	"polypoint-backend/internal/pkg/calendar"
	"polypoint-backend/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service owns the availability ledger of a planning interval.
type Service struct {
	DB    *gorm.DB
	Cache *cache.Client
}

// sprintTable is the hard-coded sprint calendar. Only one interval is
// defined; seeding any other interval is a no-op and callers treat an empty
// ledger as "not yet seeded", not as an error.
var sprintTable = map[string][]struct {
	name  string
	start string
	end   string
}{
	"26.1": {
		{"26.1-S1", "2025-12-04", "2025-12-17"},
		{"26.1-S2", "2025-12-18", "2026-01-14"},
		{"26.1-S3", "2026-01-15", "2026-01-28"},
		{"26.1-S4", "2026-01-29", "2026-02-18"},
		{"26.1-IP", "2026-02-19", "2026-03-04"},
	},
}

// List returns the interval's rows in chronological order.
func (s *Service) List(ctx context.Context, pi string) ([]domain.AvailabilityRow, error) {
	var rows []domain.AvailabilityRow
	if err := s.DB.WithContext(ctx).
		Where("pi = ?", pi).
		Order("date").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save upserts rows keyed by (pi, date). The interval is forced onto every
// row so a client cannot write across intervals.
func (s *Service) Save(ctx context.Context, pi string, rows []domain.AvailabilityRow) error {
	for i := range rows {
		rows[i].PI = pi
		if err := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	s.Cache.InvalidateInterval(ctx, pi)
	return nil
}

// SeedDefaultSprints populates an empty ledger from the sprint table: one row
// per working day, no developer fields set (everyone reads as fully
// available). Idempotent: any existing row makes it a no-op. Returns the
// number of rows created.
func (s *Service) SeedDefaultSprints(ctx context.Context, pi string) (int, error) {
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&domain.AvailabilityRow{}).
		Where("pi = ?", pi).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	sprints, ok := sprintTable[pi]
	if !ok {
		return 0, nil
	}

	created := 0
	for _, sp := range sprints {
		for date := range calendar.WorkingDays(sp.start, sp.end) {
			row := domain.AvailabilityRow{
				PI:        pi,
				Date:      date,
				Sprint:    sp.name,
				Fractions: datatypes.JSONMap{},
			}
			if err := s.DB.WithContext(ctx).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&row).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	s.Cache.InvalidateInterval(ctx, pi)
	return created, nil
}

// MergeResult reports what a bulk import would change.
type MergeResult struct {
	MatchedDates int
	Rows         []domain.AvailabilityRow
}

// ImportMerge merges a snapshot into the ledger in memory: for every snapshot
// row whose date matches an existing ledger date, each developer column found
// by the 3-character prefix rule overwrites that date's fraction. Unmatched
// snapshot dates are skipped. Nothing is persisted; the caller decides based
// on MatchedDates whether to Save the returned rows.
func (s *Service) ImportMerge(ctx context.Context, pi string, table *snapshot.Table) (*MergeResult, error) {
	rows, err := s.List(ctx, pi)
	if err != nil {
		return nil, err
	}
	var devs []domain.Developer
	if err := s.DB.WithContext(ctx).
		Where("pi = ?", pi).
		Order("key").
		Find(&devs).Error; err != nil {
		return nil, err
	}

	byDate := table.ByDate()
	matched := 0
	for i := range rows {
		snapRow, ok := byDate[rows[i].Date]
		if !ok {
			continue
		}
		matched++
		for _, dev := range devs {
			if raw, found := snapRow.ResolveColumn(dev.Key); found {
				rows[i].SetFraction(dev.Key, validation.ParseFraction(raw))
			}
		}
	}
	return &MergeResult{MatchedDates: matched, Rows: rows}, nil
}

// ExportCSV writes the ledger in the export shape: Date,Sprint,PI followed by
// one column per developer key, dates as DD.MM.YYYY, absent fractions as 1.
func (s *Service) ExportCSV(ctx context.Context, pi string, w io.Writer) error {
	rows, err := s.List(ctx, pi)
	if err != nil {
		return err
	}
	var devs []domain.Developer
	if err := s.DB.WithContext(ctx).
		Where("pi = ?", pi).
		Order("key").
		Find(&devs).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"Date", "Sprint", "PI"}
	for _, d := range devs {
		header = append(header, d.Key)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{calendar.FormatExport(row.Date), row.Sprint, row.PI}
		for _, d := range devs {
			rec = append(rec, strconv.FormatFloat(row.Fraction(d.Key), 'f', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
