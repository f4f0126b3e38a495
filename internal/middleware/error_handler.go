package middleware

import (
	"errors"

	"polypoint-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Fiber errors keep their status
// code, everything else becomes a 500 with the original error logged under
// the request's trace ID.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Str("trace_id", GetTraceID(c)).Err(err).Msg("Unhandled error")
	}

	return response.Error(c, message, code, nil)
}
