package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the error body shape for every failed request.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Error writes a standard error body with the given status.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// ErrorWithDetails writes a standard error body carrying extra context.
func ErrorWithDetails(c *fiber.Ctx, status int, msg string, details interface{}) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg, Details: details})
}

// Success writes the standard `{success, message}` body.
func Success(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}
