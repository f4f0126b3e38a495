package middleware

import (
	"strings"

	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig restricts browser origins. Any localhost origin is accepted for
// local frontend development, a deployed frontend matches by domain suffix,
// and the dev-password header bypasses both checks.
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

// CORS returns the origin gate. Requests without an Origin header (same
// origin, curl, polyctl) pass through untouched.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if !originAllowed(cfg, c, origin) {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}
		allowOrigin(c, origin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func originAllowed(cfg CORSConfig, c *fiber.Ctx, origin string) bool {
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
		return true
	}
	if cfg.AllowedSuffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(cfg.AllowedSuffix)) {
		return true
	}
	return cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword
}

func allowOrigin(c *fiber.Ctx, origin string) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
	c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, dev-password")
	c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, DELETE, OPTIONS")
}
