package availability

import (
	"bytes"
	"strconv"

	availsvc "polypoint-backend/internal/application/availability"
	"polypoint-backend/internal/application/snapshot"
	"polypoint-backend/internal/domain"
	"polypoint-backend/internal/pkg/calendar"
	"polypoint-backend/internal/pkg/constants"
	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles availability ledger handlers with dependencies.
type Handlers struct {
	Service   *availsvc.Service
	DefaultPI string
}

func (h *Handlers) pi(c *fiber.Ctx) string {
	return c.Query("pi", h.DefaultPI)
}

func filterActive(v string) bool {
	return v != "" && v != constants.FilterAll
}

// List GET /api/v1/availabilities?sprint=&weekday=&kw=
func (h *Handlers) List(c *fiber.Ctx) error {
	rows, err := h.Service.List(c.Context(), h.pi(c))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	sprint := c.Query("sprint")
	weekday := c.Query("weekday")
	kw := c.Query("kw")
	if filterActive(sprint) || filterActive(weekday) || filterActive(kw) {
		filtered := make([]domain.AvailabilityRow, 0, len(rows))
		for _, r := range rows {
			if filterActive(sprint) && r.Sprint != sprint {
				continue
			}
			if filterActive(weekday) && calendar.Weekday(r.Date) != weekday {
				continue
			}
			if filterActive(kw) && strconv.Itoa(calendar.ISOWeek(r.Date)) != kw {
				continue
			}
			filtered = append(filtered, r)
		}
		rows = filtered
	}
	return response.Success(c, "Availabilities fetched successfully", rows, nil)
}

type saveBody struct {
	Rows []domain.AvailabilityRow `json:"rows"`
}

// Save POST /api/v1/availabilities
func (h *Handlers) Save(c *fiber.Ctx) error {
	var body saveBody
	if err := c.BodyParser(&body); err != nil || len(body.Rows) == 0 {
		return response.Error(c, "No rows provided", 400, nil)
	}
	if err := h.Service.Save(c.Context(), h.pi(c), body.Rows); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Availabilities saved successfully", nil, fiber.Map{"saved": len(body.Rows)})
}

// Seed POST /api/v1/availabilities/seed
func (h *Handlers) Seed(c *fiber.Ctx) error {
	created, err := h.Service.SeedDefaultSprints(c.Context(), h.pi(c))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Default sprints ensured", nil, fiber.Map{"created": created})
}

// ExportCSV GET /api/v1/availabilities/export.csv
func (h *Handlers) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Service.ExportCSV(c.Context(), h.pi(c), &buf); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.CSV(c, "availabilities_export.csv", buf.Bytes())
}

// ImportCSV POST /api/v1/availabilities/import?apply=true|false
// Merges the uploaded snapshot against the ledger; persists only when apply
// is set and at least one date matched.
func (h *Handlers) ImportCSV(c *fiber.Ctx) error {
	table, err := snapshot.Parse(bytes.NewReader(c.Body()))
	if err != nil {
		return response.Error(c, "Could not parse CSV", 400, nil)
	}
	pi := h.pi(c)
	result, err := h.Service.ImportMerge(c.Context(), pi, table)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	applied := false
	if c.QueryBool("apply") && result.MatchedDates > 0 {
		if err := h.Service.Save(c.Context(), pi, result.Rows); err != nil {
			return response.Error(c, "Internal Server Error", 500, nil)
		}
		applied = true
	}
	return response.Success(c, "Import processed", nil, fiber.Map{
		"matchedDates": result.MatchedDates,
		"applied":      applied,
	})
}
