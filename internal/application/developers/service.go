package developers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"polypoint-backend/internal/domain"
	"polypoint-backend/internal/infrastructure/cache"
	"polypoint-backend/internal/pkg/constants"
	"polypoint-backend/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service holds the record store and the dashboard cache for developer
// profile operations.
type Service struct {
	DB    *gorm.DB
	Cache *cache.Client
}

// List returns all profiles of a planning interval ordered by team, then key.
func (s *Service) List(ctx context.Context, pi string) ([]domain.Developer, error) {
	var devs []domain.Developer
	if err := s.DB.WithContext(ctx).
		Where("pi = ?", pi).
		Order("team, key").
		Find(&devs).Error; err != nil {
		return nil, err
	}
	return devs, nil
}

// Save upserts a profile keyed by (pi, key) from a loosely-typed field map.
// The key is required and must be exactly 3 letters; every numeric field is
// parsed leniently with the documented defaults.
func (s *Service) Save(ctx context.Context, pi string, fields map[string]interface{}) (*domain.Developer, error) {
	rawKey, _ := fields["key"].(string)
	if rawKey == "" {
		return nil, errors.New("Developer key is required")
	}
	if !validation.IsValidDeveloperKey(rawKey) {
		return nil, errors.New("Developer key must be exactly 3 letters")
	}

	dev := domain.Developer{
		PI:            pi,
		Key:           validation.NormalizeKey(rawKey),
		Team:          stringField(fields, "team"),
		SpecialCase:   boolField(fields, "specialCase"),
		DailyHours:    numberField(fields, "dailyHours", constants.DefaultDailyHours),
		Load:          numberField(fields, "load", constants.DefaultLoad),
		ManageRatio:   numberField(fields, "manageRatio", 0),
		DevelopRatio:  numberField(fields, "developRatio", 0),
		MaintainRatio: numberField(fields, "maintainRatio", 0),
		Velocity:      numberField(fields, "velocity", 0),
	}
	if st, ok := fields["sprintTeams"].(map[string]interface{}); ok && len(st) > 0 {
		dev.SprintTeams = datatypes.JSONMap(st)
	}

	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dev).Error; err != nil {
		return nil, err
	}
	s.Cache.InvalidateInterval(ctx, pi)
	return &dev, nil
}

// Delete removes a profile. Deleting an unknown key is a no-op; historical
// availability rows keep whatever fractions they recorded for the key.
func (s *Service) Delete(ctx context.Context, pi, key string) error {
	err := s.DB.WithContext(ctx).
		Where("pi = ? AND key = ?", pi, validation.NormalizeKey(key)).
		Delete(&domain.Developer{}).Error
	if err != nil {
		return err
	}
	s.Cache.InvalidateInterval(ctx, pi)
	return nil
}

// EnsureDefaults seeds the default roster for an interval exactly once,
// guarded by the interval's migration record so deleted developers are not
// re-added on later sessions.
func (s *Service) EnsureDefaults(ctx context.Context, pi string) error {
	var state domain.IntervalState
	err := s.DB.WithContext(ctx).Where("pi = ?", pi).First(&state).Error
	if err == nil && state.DevelopersSeeded && state.SeedVersion >= domain.SeedVersion {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing, err := s.List(ctx, pi)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, d := range existing {
		have[d.Key] = true
	}

	for _, def := range defaultRoster {
		if have[def.key] {
			continue
		}
		dev := domain.Developer{
			PI:            pi,
			Key:           def.key,
			Team:          def.team,
			DailyHours:    constants.DefaultDailyHours,
			Load:          constants.DefaultLoad,
			DevelopRatio:  80,
			MaintainRatio: 20,
			Velocity:      1,
		}
		if err := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dev).Error; err != nil {
			return err
		}
	}

	state = domain.IntervalState{PI: pi, SeedVersion: domain.SeedVersion, DevelopersSeeded: true}
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&state).Error; err != nil {
		return err
	}
	s.Cache.InvalidateInterval(ctx, pi)
	return nil
}

var profileCSVHeader = []string{
	"team", "key", "specialCase", "dailyHours", "load",
	"manageRatio", "developRatio", "maintainRatio", "velocity",
}

// ExportCSV writes all profiles of an interval in the profile export shape.
func (s *Service) ExportCSV(ctx context.Context, pi string, w io.Writer) error {
	devs, err := s.List(ctx, pi)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(profileCSVHeader); err != nil {
		return err
	}
	for _, d := range devs {
		rec := []string{
			d.Team,
			d.Key,
			strconv.FormatBool(d.SpecialCase),
			formatNum(d.DailyHours),
			formatNum(d.Load),
			formatNum(d.ManageRatio),
			formatNum(d.DevelopRatio),
			formatNum(d.MaintainRatio),
			formatNum(d.Velocity),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV upserts profiles from a CSV in the export shape. Rows without a
// valid 3-letter key are skipped; numeric cells are parsed leniently. Returns
// the number of imported profiles.
func (s *Service) ImportCSV(ctx context.Context, pi string, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse profile csv: %w", err)
	}
	if len(records) < 1 {
		return 0, errors.New("parse profile csv: missing header row")
	}

	col := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		col[h] = i
	}
	cell := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	imported := 0
	for _, rec := range records[1:] {
		key := cell(rec, "key")
		if !validation.IsValidDeveloperKey(key) {
			continue
		}
		fields := map[string]interface{}{
			"key":           key,
			"team":          cell(rec, "team"),
			"specialCase":   validation.ParseBool(cell(rec, "specialCase")),
			"dailyHours":    cell(rec, "dailyHours"),
			"load":          cell(rec, "load"),
			"manageRatio":   cell(rec, "manageRatio"),
			"developRatio":  cell(rec, "developRatio"),
			"maintainRatio": cell(rec, "maintainRatio"),
			"velocity":      cell(rec, "velocity"),
		}
		if _, err := s.Save(ctx, pi, fields); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func stringField(fields map[string]interface{}, name string) string {
	v, _ := fields[name].(string)
	return v
}

func boolField(fields map[string]interface{}, name string) bool {
	switch v := fields[name].(type) {
	case bool:
		return v
	case string:
		return validation.ParseBool(v)
	default:
		return false
	}
}

func numberField(fields map[string]interface{}, name string, def float64) float64 {
	switch v := fields[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		return validation.ParseNumber(v, def)
	default:
		return def
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
