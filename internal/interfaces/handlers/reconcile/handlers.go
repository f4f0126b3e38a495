package reconcile

import (
	"bytes"

	availsvc "polypoint-backend/internal/application/availability"
	devsvc "polypoint-backend/internal/application/developers"
	"polypoint-backend/internal/application/reconcile"
	"polypoint-backend/internal/application/snapshot"
	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles snapshot comparison handlers with dependencies.
type Handlers struct {
	Developers   *devsvc.Service
	Availability *availsvc.Service
	DefaultPI    string
}

// Compare POST /api/v1/reconcile/compare?team=&sprint=&weekday=&kw=
// The request body is the snapshot CSV. The delta table is read-only; the
// ledger is not touched.
func (h *Handlers) Compare(c *fiber.Ctx) error {
	table, err := snapshot.Parse(bytes.NewReader(c.Body()))
	if err != nil {
		return response.Error(c, "Could not parse CSV", 400, nil)
	}

	pi := c.Query("pi", h.DefaultPI)
	devs, err := h.Developers.List(c.Context(), pi)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	rows, err := h.Availability.List(c.Context(), pi)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	result := reconcile.Compare(rows, devs, table, reconcile.Filter{
		Team:    c.Query("team"),
		Sprint:  c.Query("sprint"),
		Weekday: c.Query("weekday"),
		Week:    c.Query("kw"),
	})
	return response.Success(c, "Comparison computed successfully", result, fiber.Map{
		"options": reconcile.Options(rows, devs),
	})
}
