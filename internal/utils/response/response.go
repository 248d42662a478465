package response

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func ValidationError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// ServerErrorEnvelope is the diagnostic 500 shape returned by the intake
// endpoint: callers always learn definitively whether the application
// record was created.
func ServerErrorEnvelope(c *fiber.Ctx, err error, errorType string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success":   false,
		"error":     "Internal server error",
		"message":   "The application could not be created",
		"details":   err.Error(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"errorType": errorType,
	})
}
