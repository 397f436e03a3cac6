package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the payload returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendOK serializes data with a 200 status.
func SendOK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// SendCreated serializes data with a 201 status.
func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}
