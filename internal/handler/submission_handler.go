package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/quizmaster/quiz-api/internal/service"
	"github.com/quizmaster/quiz-api/internal/utils"
)

// SubmissionHandler manages submission read endpoints. Submissions are only
// created through the quiz submit route.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("/:id", h.getDetail)
}

func (h *SubmissionHandler) getDetail(c *fiber.Ctx) error {
	detail, err := h.service.GetDetail(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, detail)
}
