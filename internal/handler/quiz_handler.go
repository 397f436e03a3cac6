package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/quizmaster/quiz-api/internal/dto"
	"github.com/quizmaster/quiz-api/internal/service"
	"github.com/quizmaster/quiz-api/internal/utils"
)

// QuizHandler wires quiz HTTP routes.
type QuizHandler struct {
	quizzes     service.QuizService
	submissions service.SubmissionService
	logger      zerolog.Logger
}

// NewQuizHandler constructs the handler.
func NewQuizHandler(quizzes service.QuizService, submissions service.SubmissionService, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizzes:     quizzes,
		submissions: submissions,
		logger:      logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register attaches quiz endpoints to the router group.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Get("", h.listPublished)
	router.Get("/all", h.listAll)
	router.Get("/:id", h.get)
	router.Get("/:id/questions", h.getQuestions)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.togglePublish)
	router.Post("/:id/submit", h.submit)
}

func (h *QuizHandler) listPublished(c *fiber.Ctx) error {
	quizzes, err := h.quizzes.ListPublished(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, quizzes)
}

func (h *QuizHandler) listAll(c *fiber.Ctx) error {
	quizzes, err := h.quizzes.ListAll(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, quizzes)
}

func (h *QuizHandler) get(c *fiber.Ctx) error {
	quiz, err := h.quizzes.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, quiz)
}

func (h *QuizHandler) getQuestions(c *fiber.Ctx) error {
	questions, err := h.quizzes.GetQuestions(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, questions)
}

func (h *QuizHandler) create(c *fiber.Ctx) error {
	var payload dto.QuizCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	quiz, err := h.quizzes.Create(c.Context(), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, quiz)
}

func (h *QuizHandler) update(c *fiber.Ctx) error {
	var payload dto.QuizUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	quiz, err := h.quizzes.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, quiz)
}

func (h *QuizHandler) delete(c *fiber.Ctx) error {
	if err := h.quizzes.Delete(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, fiber.Map{"message": "quiz deleted successfully"})
}

func (h *QuizHandler) togglePublish(c *fiber.Ctx) error {
	quiz, err := h.quizzes.TogglePublish(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendOK(c, quiz)
}

func (h *QuizHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitQuizRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.submissions.Submit(c.Context(), c.Params("id"), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, result)
}
