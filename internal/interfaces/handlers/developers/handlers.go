package developers

import (
	"bytes"
	"encoding/json"

	devsvc "polypoint-backend/internal/application/developers"
	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles developer handlers with dependencies.
type Handlers struct {
	Service   *devsvc.Service
	DefaultPI string
}

func (h *Handlers) pi(c *fiber.Ctx) string {
	return c.Query("pi", h.DefaultPI)
}

// List GET /api/v1/developers
func (h *Handlers) List(c *fiber.Ctx) error {
	pi := h.pi(c)
	if err := h.Service.EnsureDefaults(c.Context(), pi); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	devs, err := h.Service.List(c.Context(), pi)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Developers fetched successfully", devs, nil)
}

// Save POST /api/v1/developers
func (h *Handlers) Save(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Developer key is required", 400, nil)
	}
	dev, err := h.Service.Save(c.Context(), h.pi(c), body)
	if err != nil {
		switch err.Error() {
		case "Developer key is required", "Developer key must be exactly 3 letters":
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Developer saved successfully", dev, nil)
}

// Delete DELETE /api/v1/developers/:key
func (h *Handlers) Delete(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return response.Error(c, "Missing developer key", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), h.pi(c), key); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Developer deleted successfully", nil, nil)
}

// ExportCSV GET /api/v1/developers/export.csv
func (h *Handlers) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Service.ExportCSV(c.Context(), h.pi(c), &buf); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.CSV(c, "developers_export.csv", buf.Bytes())
}

// ImportCSV POST /api/v1/developers/import (CSV request body)
func (h *Handlers) ImportCSV(c *fiber.Ctx) error {
	imported, err := h.Service.ImportCSV(c.Context(), h.pi(c), bytes.NewReader(c.Body()))
	if err != nil {
		switch err.Error() {
		case "Developer key is required", "Developer key must be exactly 3 letters":
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Could not parse CSV", 400, nil)
		}
	}
	return response.Success(c, "Developers imported successfully", nil, fiber.Map{"imported": imported})
}
