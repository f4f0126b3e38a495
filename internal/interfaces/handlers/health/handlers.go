package health

import (
	"polypoint-backend/internal/infrastructure/cache"
	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handlers serves liveness/readiness info.
type Handlers struct {
	DB    *gorm.DB
	Cache *cache.Client
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.DB != nil {
		sqlDB, err := h.DB.DB()
		if err != nil {
			dbStatus = "error"
		} else if err := sqlDB.Ping(); err != nil {
			dbStatus = "error"
		}
	} else {
		dbStatus = "not configured"
	}

	cacheStatus := "disabled"
	if h.Cache != nil {
		cacheStatus = "ok"
		if err := h.Cache.Ping(c.Context()); err != nil {
			cacheStatus = "error"
		}
	}

	return response.Success(c, "Health", fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	}, nil)
}
