package service

import (
	"strings"

	"github.com/quizmaster/quiz-api/internal/models"
)

// GradeResult is the outcome of grading one set of answers against a quiz's
// question set. Responses are ordered by grading order, which is also the
// canonical display order, and carry a snapshot of the graded question.
type GradeResult struct {
	Score       int
	TotalPoints int
	Responses   []models.Response
}

// gradeQuiz scores raw answers against the supplied questions. Questions must
// already be in grading order (order_index ascending). Missing answers grade
// as empty strings; comparison trims whitespace and ignores case. Pure
// computation, persistence is the caller's concern.
func gradeQuiz(questions []models.Question, answers map[string]string) GradeResult {
	result := GradeResult{
		Responses: make([]models.Response, 0, len(questions)),
	}

	for i, question := range questions {
		result.TotalPoints += question.Points

		userAnswer := strings.TrimSpace(answers[question.ID])
		isCorrect := strings.ToLower(userAnswer) == strings.ToLower(question.CorrectAnswer)

		pointsEarned := 0
		if isCorrect {
			pointsEarned = question.Points
			result.Score += question.Points
		}

		result.Responses = append(result.Responses, models.Response{
			QuestionID:    question.ID,
			UserAnswer:    userAnswer,
			IsCorrect:     isCorrect,
			PointsEarned:  pointsEarned,
			Position:      i,
			QuestionText:  question.QuestionText,
			CorrectAnswer: question.CorrectAnswer,
			Points:        question.Points,
		})
	}

	return result
}
