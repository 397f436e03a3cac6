package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quizmaster/quiz-api/internal/config"
	"github.com/quizmaster/quiz-api/internal/handler"
	"github.com/quizmaster/quiz-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	QuizHandler       *handler.QuizHandler
	SubmissionHandler *handler.SubmissionHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.QuizHandler != nil {
		deps.QuizHandler.Register(api.Group("/quizzes"))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions"))
	}
}
