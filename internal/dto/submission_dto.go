package dto

import (
	"time"

	"github.com/quizmaster/quiz-api/internal/models"
)

// SubmitQuizRequest describes the payload for submitting answers to a quiz.
// Answers maps question ids to raw answer strings; missing keys are graded
// as empty answers.
type SubmitQuizRequest struct {
	ParticipantName string            `json:"participant_name" validate:"required"`
	Answers         map[string]string `json:"answers"`
}

// SubmitQuizResponse acknowledges a graded submission.
type SubmitQuizResponse struct {
	SubmissionID string `json:"submission_id"`
}

// QuizLite summarizes the owning quiz in submission detail responses.
type QuizLite struct {
	Title string `json:"title"`
}

// QuestionLite carries the question metadata shown next to a graded response.
type QuestionLite struct {
	QuestionText  string `json:"question_text"`
	CorrectAnswer string `json:"correct_answer"`
	Points        int    `json:"points"`
}

// ResponseDetail serializes one graded response with its question metadata.
type ResponseDetail struct {
	QuestionID   string       `json:"question_id"`
	UserAnswer   string       `json:"user_answer"`
	IsCorrect    bool         `json:"is_correct"`
	PointsEarned int          `json:"points_earned"`
	Question     QuestionLite `json:"question"`
}

// SubmissionResponse is the serialized representation of a submission.
type SubmissionResponse struct {
	ID              string    `json:"id"`
	QuizID          string    `json:"quiz_id"`
	ParticipantName string    `json:"participant_name"`
	Score           int       `json:"score"`
	TotalPoints     int       `json:"total_points"`
	SubmittedAt     time.Time `json:"submitted_at"`
	Quiz            QuizLite  `json:"quiz"`
}

// SubmissionDetailResponse joins a submission with its graded responses in
// the original grading order.
type SubmissionDetailResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Responses  []ResponseDetail   `json:"responses"`
}

// NewSubmissionResponse converts a submission and its owning quiz into a DTO.
func NewSubmissionResponse(model models.Submission, quiz models.Quiz) SubmissionResponse {
	return SubmissionResponse{
		ID:              model.ID,
		QuizID:          model.QuizID,
		ParticipantName: model.ParticipantName,
		Score:           model.Score,
		TotalPoints:     model.TotalPoints,
		SubmittedAt:     model.CreatedAt,
		Quiz:            QuizLite{Title: quiz.Title},
	}
}
