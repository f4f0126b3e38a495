package availability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"polypoint-backend/internal/application/snapshot"
	"polypoint-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AvailabilityRow{}, &domain.Developer{}))
	return &Service{DB: db}
}

func addDeveloper(t *testing.T, svc *Service, key string) {
	t.Helper()
	require.NoError(t, svc.DB.Create(&domain.Developer{PI: "26.1", Key: key, Team: "Neon"}).Error)
}

func TestSeedDefaultSprints(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.SeedDefaultSprints(ctx, "26.1")
	require.NoError(t, err)
	require.Greater(t, created, 0)

	rows, err := svc.List(ctx, "26.1")
	require.NoError(t, err)
	assert.Len(t, rows, created)

	// Chronological, weekdays only, every row carries its sprint.
	prev := ""
	for _, r := range rows {
		assert.Greater(t, r.Date, prev)
		prev = r.Date
		day, err := time.Parse("2006-01-02", r.Date)
		require.NoError(t, err)
		assert.NotContains(t, []time.Weekday{time.Saturday, time.Sunday}, day.Weekday())
		assert.NotEmpty(t, r.Sprint)
	}
	assert.Equal(t, "2025-12-04", rows[0].Date)
	assert.Equal(t, "26.1-S1", rows[0].Sprint)
	assert.Equal(t, "26.1-IP", rows[len(rows)-1].Sprint)
}

func TestSeedDefaultSprints_Idempotent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.SeedDefaultSprints(ctx, "26.1")
	require.NoError(t, err)
	require.Greater(t, first, 0)

	again, err := svc.SeedDefaultSprints(ctx, "26.1")
	require.NoError(t, err)
	assert.Zero(t, again)

	rows, err := svc.List(ctx, "26.1")
	require.NoError(t, err)
	assert.Len(t, rows, first)
}

func TestSeedDefaultSprints_UnknownInterval(t *testing.T) {
	svc := setupService(t)
	created, err := svc.SeedDefaultSprints(context.Background(), "99.9")
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestSave_ForcesIntervalAndUpserts(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	rows := []domain.AvailabilityRow{
		{PI: "intruder", Date: "2026-01-05", Sprint: "26.1-S2", Fractions: datatypes.JSONMap{"JRE": 0.5}},
	}
	require.NoError(t, svc.Save(ctx, "26.1", rows))

	got, err := svc.List(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "26.1", got[0].PI)
	assert.InDelta(t, 0.5, got[0].Fraction("JRE"), 1e-9)

	// Saving the same date again overwrites, it does not duplicate.
	rows[0].SetFraction("JRE", 0)
	require.NoError(t, svc.Save(ctx, "26.1", rows))
	got, err = svc.List(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Fraction("JRE"))
}

func TestImportMerge_NoMatchingDates(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	addDeveloper(t, svc, "JRE")
	require.NoError(t, svc.Save(ctx, "26.1", []domain.AvailabilityRow{
		{Date: "2026-01-05", Sprint: "26.1-S2"},
	}))

	table, err := snapshot.Parse(strings.NewReader("Datum,JRE\n01.06.2026,0\n"))
	require.NoError(t, err)

	res, err := svc.ImportMerge(ctx, "26.1", table)
	require.NoError(t, err)
	assert.Zero(t, res.MatchedDates)

	got, _ := svc.List(ctx, "26.1")
	assert.InDelta(t, 1, got[0].Fraction("JRE"), 1e-9, "merge must not persist anything")
}

func TestImportMerge_UpdatesOnlyMatchedDates(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	addDeveloper(t, svc, "JRE")
	addDeveloper(t, svc, "ABC")
	require.NoError(t, svc.Save(ctx, "26.1", []domain.AvailabilityRow{
		{Date: "2026-01-05", Sprint: "26.1-S2"},
		{Date: "2026-01-06", Sprint: "26.1-S2"},
	}))

	table, err := snapshot.Parse(strings.NewReader("Datum,JRE_FULL\n05.01.2026,0.5\n"))
	require.NoError(t, err)

	res, err := svc.ImportMerge(ctx, "26.1", table)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MatchedDates)
	require.Len(t, res.Rows, 2)

	// The fuzzy header matched JRE; ABC had no column and is untouched.
	assert.InDelta(t, 0.5, res.Rows[0].Fraction("JRE"), 1e-9)
	assert.InDelta(t, 1, res.Rows[0].Fraction("ABC"), 1e-9)
	assert.InDelta(t, 1, res.Rows[1].Fraction("JRE"), 1e-9)

	// Persisting is the caller's decision.
	require.NoError(t, svc.Save(ctx, "26.1", res.Rows))
	got, _ := svc.List(ctx, "26.1")
	assert.InDelta(t, 0.5, got[0].Fraction("JRE"), 1e-9)
}

func TestExportCSV(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	addDeveloper(t, svc, "JRE")
	require.NoError(t, svc.Save(ctx, "26.1", []domain.AvailabilityRow{
		{Date: "2026-01-05", Sprint: "26.1-S2", Fractions: datatypes.JSONMap{"JRE": 0.5}},
	}))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, "26.1", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Sprint,PI,JRE", lines[0])
	assert.Equal(t, "05.01.2026,26.1-S2,26.1,0.5", lines[1])
}
