package capacity

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	availsvc "polypoint-backend/internal/application/availability"
	"polypoint-backend/internal/application/capacity"
	devsvc "polypoint-backend/internal/application/developers"
	"polypoint-backend/internal/infrastructure/cache"
	"polypoint-backend/internal/pkg/constants"
	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles dashboard handlers with dependencies.
type Handlers struct {
	Developers   *devsvc.Service
	Availability *availsvc.Service
	Cache        *cache.Client
	DefaultPI    string
}

func (h *Handlers) compute(c *fiber.Ctx) (string, []capacity.Table, error) {
	pi := c.Query("pi", h.DefaultPI)
	devs, err := h.Developers.List(c.Context(), pi)
	if err != nil {
		return pi, nil, err
	}
	rows, err := h.Availability.List(c.Context(), pi)
	if err != nil {
		return pi, nil, err
	}
	return pi, capacity.Compute(rows, devs, capacity.Filter{
		Team:   c.Query("team"),
		Sprint: c.Query("sprint"),
	}), nil
}

// Dashboard GET /api/v1/capacity/dashboard?team=&sprint=
// Serves the three metric tables, read through the dashboard cache.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	pi := c.Query("pi", h.DefaultPI)
	team := c.Query("team", constants.FilterAll)
	sprint := c.Query("sprint", constants.FilterAll)

	if cached, ok := h.Cache.GetDashboard(c.Context(), pi, team, sprint); ok {
		return response.Success(c, "Dashboard computed successfully", json.RawMessage(cached), fiber.Map{"cached": true})
	}

	_, tables, err := h.compute(c)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	payload, err := json.Marshal(tables)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	h.Cache.SetDashboard(c.Context(), pi, team, sprint, payload)
	return response.Success(c, "Dashboard computed successfully", json.RawMessage(payload), nil)
}

// ExportCSV GET /api/v1/capacity/export.csv?metric=sp|dev|maintain
func (h *Handlers) ExportCSV(c *fiber.Ctx) error {
	metric := c.Query("metric", string(constants.MetricStoryPoints))
	if !constants.IsValidMetric(metric) {
		return response.Error(c, "Unknown metric", 400, nil)
	}

	_, tables, err := h.compute(c)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	for _, t := range tables {
		if string(t.Metric) != metric {
			continue
		}
		if err := cw.Write(t.Header()); err != nil {
			return response.Error(c, "Internal Server Error", 500, nil)
		}
		for _, rec := range t.Records() {
			if err := cw.Write(rec); err != nil {
				return response.Error(c, "Internal Server Error", 500, nil)
			}
		}
	}
	cw.Flush()

	return response.CSV(c, "dashboard_"+metric+".csv", buf.Bytes())
}
