package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quizmaster/quiz-api/internal/config"
	"github.com/quizmaster/quiz-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendOK(c, HealthResponse{
			Status:    "OK",
			Message:   "Server is running",
			Timestamp: time.Now().UTC(),
			Service:   cfg.AppName,
		})
	}
}
