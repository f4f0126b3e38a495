// Package response owns the JSON envelope every handler replies with:
// {status, message, data, metadata} on success and {status, error} on failure.
// The frontend dispatches on status, so nothing else may write response bodies.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the success envelope.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the error envelope.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

func success(c *fiber.Ctx, code int, message string, data, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(code).JSON(SuccessBody{
		Status:   "success",
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Success sends 200 OK in the success envelope.
func Success(c *fiber.Ctx, message string, data, metadata interface{}) error {
	return success(c, fiber.StatusOK, message, data, metadata)
}

// SuccessCreated sends 201 Created in the success envelope.
func SuccessCreated(c *fiber.Ctx, message string, data, metadata interface{}) error {
	return success(c, fiber.StatusCreated, message, data, metadata)
}

// CSV sends a payload as a CSV file download.
func CSV(c *fiber.Ctx, filename string, payload []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(payload)
}

// Error sends the error envelope with the given status code.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: "error",
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}
