package developers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	devsvc "polypoint-backend/internal/application/developers"
	"polypoint-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDevTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Developer{}, &domain.IntervalState{}))

	h := &Handlers{Service: &devsvc.Service{DB: db}, DefaultPI: "26.1"}
	app := fiber.New()
	app.Get("/developers", h.List)
	app.Post("/developers", h.Save)
	app.Delete("/developers/:key", h.Delete)
	app.Get("/developers/export.csv", h.ExportCSV)
	app.Post("/developers/import", h.ImportCSV)
	return app, db
}

type devListBody struct {
	Status string             `json:"status"`
	Data   []domain.Developer `json:"data"`
}

func TestList_SeedsDefaultRoster(t *testing.T) {
	app, _ := setupDevTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/developers", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body devListBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data, 29)
	for _, d := range body.Data {
		assert.Equal(t, "26.1", d.PI)
	}
}

func TestSave_InvalidKey(t *testing.T) {
	app, _ := setupDevTest(t)

	req := httptest.NewRequest("POST", "/developers", strings.NewReader(`{"key":"TOOLONG"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	req = httptest.NewRequest("POST", "/developers", strings.NewReader(`{"team":"Neon"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSaveAndDelete(t *testing.T) {
	app, db := setupDevTest(t)

	req := httptest.NewRequest("POST", "/developers", strings.NewReader(
		`{"key":"zzx","team":"Neon","velocity":1.5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var dev domain.Developer
	require.NoError(t, db.Where("pi = ? AND key = ?", "26.1", "ZZX").First(&dev).Error)
	assert.Equal(t, 1.5, dev.Velocity)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/developers/ZZX", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	err = db.Where("pi = ? AND key = ?", "26.1", "ZZX").First(&dev).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExportCSV_Headers(t *testing.T) {
	app, db := setupDevTest(t)
	require.NoError(t, db.Create(&domain.Developer{PI: "26.1", Key: "JRE", Team: "Neon"}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/developers/export.csv", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "developers_export.csv")

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "team,key,"))
}

func TestImportCSV(t *testing.T) {
	app, db := setupDevTest(t)

	req := httptest.NewRequest("POST", "/developers/import", strings.NewReader(
		"team,key,velocity\nNeon,ZZX,1\nNeon,bad-key,1\n"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body.Metadata["imported"])

	var count int64
	db.Model(&domain.Developer{}).Where("pi = ?", "26.1").Count(&count)
	assert.EqualValues(t, 1, count)
}
