package dto

import (
	"time"

	"github.com/quizmaster/quiz-api/internal/models"
)

// QuestionPayload describes one question supplied when creating or updating a quiz.
type QuestionPayload struct {
	QuestionText  string   `json:"question_text" validate:"required"`
	QuestionType  string   `json:"question_type" validate:"required,oneof=mcq true_false text"`
	Options       []string `json:"options" validate:"omitempty,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Points        int      `json:"points" validate:"omitempty,min=1"`
}

// QuizCreateRequest describes the payload for creating a new quiz.
type QuizCreateRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description *string           `json:"description"`
	Questions   []QuestionPayload `json:"questions" validate:"omitempty,dive"`
}

// QuizUpdateRequest describes a partial quiz update. A nil Questions pointer
// leaves the existing question set untouched; a non-nil pointer (including an
// empty list) replaces it wholesale.
type QuizUpdateRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1"`
	Description *string            `json:"description"`
	Questions   *[]QuestionPayload `json:"questions" validate:"omitempty,dive"`
}

// QuizResponse is the serialized representation of a quiz returned to API clients.
type QuizResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestionResponse is the serialized representation of a question.
type QuestionResponse struct {
	ID            string    `json:"id"`
	QuizID        string    `json:"quiz_id"`
	QuestionText  string    `json:"question_text"`
	QuestionType  string    `json:"question_type"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Points        int       `json:"points"`
	OrderIndex    int       `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewQuizResponse converts a model into a DTO.
func NewQuizResponse(model models.Quiz) QuizResponse {
	return QuizResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		IsPublished: model.IsPublished,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewQuizResponseSlice converts a slice of models into DTOs.
func NewQuizResponseSlice(quizzes []models.Quiz) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizResponse(quiz))
	}

	return responses
}

// NewQuestionResponse converts a model into a DTO.
func NewQuestionResponse(model models.Question) QuestionResponse {
	return QuestionResponse{
		ID:            model.ID,
		QuizID:        model.QuizID,
		QuestionText:  model.QuestionText,
		QuestionType:  model.QuestionType,
		Options:       model.OptionList(),
		CorrectAnswer: model.CorrectAnswer,
		Points:        model.Points,
		OrderIndex:    model.OrderIndex,
		CreatedAt:     model.CreatedAt,
	}
}

// NewQuestionResponseSlice converts a slice of models into DTOs.
func NewQuestionResponseSlice(questions []models.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question))
	}

	return responses
}
