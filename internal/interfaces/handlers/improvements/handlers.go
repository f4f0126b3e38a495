package improvements

import (
	impsvc "polypoint-backend/internal/application/improvements"
	"polypoint-backend/internal/domain"
	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles improvement tracker handlers with dependencies.
type Handlers struct {
	Service *impsvc.Service
}

// List GET /api/v1/improvements
func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Improvements fetched successfully", items, nil)
}

// Save POST /api/v1/improvements
func (h *Handlers) Save(c *fiber.Ctx) error {
	var item domain.Improvement
	if err := c.BodyParser(&item); err != nil {
		return response.Error(c, "Idea is required", 400, nil)
	}
	saved, err := h.Service.Save(c.Context(), item)
	if err != nil {
		if err.Error() == "Idea is required" {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	if item.ID == "" {
		return response.SuccessCreated(c, "Improvement created successfully", saved, nil)
	}
	return response.Success(c, "Improvement saved successfully", saved, nil)
}

// Delete DELETE /api/v1/improvements/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.Error(c, "Missing improvement id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Improvement deleted successfully", nil, nil)
}
