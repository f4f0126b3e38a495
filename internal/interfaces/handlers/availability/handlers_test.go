package availability

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	availsvc "polypoint-backend/internal/application/availability"
	"polypoint-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupAvailTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AvailabilityRow{}, &domain.Developer{}))

	h := &Handlers{Service: &availsvc.Service{DB: db}, DefaultPI: "26.1"}
	app := fiber.New()
	app.Get("/availabilities", h.List)
	app.Post("/availabilities", h.Save)
	app.Post("/availabilities/seed", h.Seed)
	app.Post("/availabilities/import", h.ImportCSV)
	return app, db
}

func seedLedger(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Developer{PI: "26.1", Key: "JRE", Team: "Neon"}).Error)
	rows := []domain.AvailabilityRow{
		{PI: "26.1", Date: "2026-01-05", Sprint: "26.1-S2", Fractions: datatypes.JSONMap{}},
		{PI: "26.1", Date: "2026-01-15", Sprint: "26.1-S3", Fractions: datatypes.JSONMap{}},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestList_Filters(t *testing.T) {
	app, db := setupAvailTest(t)
	seedLedger(t, db)

	var body struct {
		Data []domain.AvailabilityRow `json:"data"`
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/availabilities", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/availabilities?sprint=26.1-S3", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "2026-01-15", body.Data[0].Date)

	// 2026-01-05 is a Monday in ISO week 2.
	resp, err = app.Test(httptest.NewRequest("GET", "/availabilities?weekday=Mon&kw=2", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "2026-01-05", body.Data[0].Date)
}

func TestSave_NoRows(t *testing.T) {
	app, _ := setupAvailTest(t)

	req := httptest.NewRequest("POST", "/availabilities", strings.NewReader(`{"rows":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSeed_ReportsCreated(t *testing.T) {
	app, _ := setupAvailTest(t)

	var body struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	resp, err := app.Test(httptest.NewRequest("POST", "/availabilities/seed", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	created, _ := body.Metadata["created"].(float64)
	assert.Greater(t, created, float64(0))

	resp, err = app.Test(httptest.NewRequest("POST", "/availabilities/seed", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 0, body.Metadata["created"])
}

func TestImportCSV_DryRunThenApply(t *testing.T) {
	app, db := setupAvailTest(t)
	seedLedger(t, db)

	csvBody := "Datum,JRE_FULL\n05.01.2026,0.5\n"

	var body struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	resp, err := app.Test(httptest.NewRequest("POST", "/availabilities/import", strings.NewReader(csvBody)))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body.Metadata["matchedDates"])
	assert.Equal(t, false, body.Metadata["applied"])

	// Dry run leaves the ledger untouched.
	var row domain.AvailabilityRow
	require.NoError(t, db.Where("pi = ? AND date = ?", "26.1", "2026-01-05").First(&row).Error)
	assert.InDelta(t, 1, row.Fraction("JRE"), 1e-9)

	resp, err = app.Test(httptest.NewRequest("POST", "/availabilities/import?apply=true", strings.NewReader(csvBody)))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body.Metadata["applied"])

	require.NoError(t, db.Where("pi = ? AND date = ?", "26.1", "2026-01-05").First(&row).Error)
	assert.InDelta(t, 0.5, row.Fraction("JRE"), 1e-9)
}

func TestImportCSV_NoMatchesNeverApplies(t *testing.T) {
	app, db := setupAvailTest(t)
	seedLedger(t, db)

	var body struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	resp, err := app.Test(httptest.NewRequest("POST", "/availabilities/import?apply=true",
		strings.NewReader("Datum,JRE\n01.07.2026,0\n")))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 0, body.Metadata["matchedDates"])
	assert.Equal(t, false, body.Metadata["applied"])
}
