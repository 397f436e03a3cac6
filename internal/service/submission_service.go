package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/quizmaster/quiz-api/internal/dto"
	"github.com/quizmaster/quiz-api/internal/models"
	"github.com/quizmaster/quiz-api/internal/repository"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionService grades quiz submissions and assembles submission detail
// for read-back.
type SubmissionService interface {
	Submit(ctx context.Context, quizID string, payload dto.SubmitQuizRequest) (dto.SubmitQuizResponse, error)
	GetDetail(ctx context.Context, id string) (dto.SubmissionDetailResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	responses   repository.ResponseRepository
	quizzes     repository.QuizRepository
	questions   repository.QuestionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	responses repository.ResponseRepository,
	quizzes repository.QuizRepository,
	questions repository.QuestionRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions: submissions,
		responses:   responses,
		quizzes:     quizzes,
		questions:   questions,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
	}
}

// Submit grades the participant's answers against the quiz's current question
// set and persists the frozen result: score and total_points on the
// submission never change when the quiz is edited later.
func (s *submissionService) Submit(ctx context.Context, quizID string, payload dto.SubmitQuizRequest) (dto.SubmitQuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmitQuizResponse{}, err
	}

	participantName := strings.TrimSpace(payload.ParticipantName)
	if participantName == "" {
		return dto.SubmitQuizResponse{}, fmt.Errorf("%w: participant name is required", ErrValidation)
	}

	if payload.Answers == nil {
		return dto.SubmitQuizResponse{}, fmt.Errorf("%w: answers are required", ErrValidation)
	}

	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmitQuizResponse{}, ErrQuizNotFound
		}
		return dto.SubmitQuizResponse{}, err
	}

	questions, err := s.questions.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return dto.SubmitQuizResponse{}, err
	}

	if len(questions) == 0 {
		return dto.SubmitQuizResponse{}, fmt.Errorf("%w: quiz has no questions", ErrValidation)
	}

	result := gradeQuiz(questions, payload.Answers)

	submission := models.Submission{
		QuizID:          quiz.ID,
		ParticipantName: participantName,
		Score:           result.Score,
		TotalPoints:     result.TotalPoints,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmitQuizResponse{}, err
	}

	for i := range result.Responses {
		result.Responses[i].SubmissionID = submission.ID
	}

	if err := s.responses.CreateBatch(ctx, result.Responses); err != nil {
		return dto.SubmitQuizResponse{}, err
	}

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("quiz_id", quiz.ID).
		Int("score", submission.Score).
		Int("total_points", submission.TotalPoints).
		Msg("submission graded")

	return dto.SubmitQuizResponse{SubmissionID: submission.ID}, nil
}

// GetDetail loads a submission with its responses in grading order. Question
// metadata comes from the live question when it still exists and falls back
// to the snapshot stored on the response when the quiz was edited since.
func (s *submissionService) GetDetail(ctx context.Context, id string) (dto.SubmissionDetailResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionDetailResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionDetailResponse{}, err
	}

	quiz, err := s.quizzes.GetByID(ctx, submission.QuizID)
	if err != nil {
		return dto.SubmissionDetailResponse{}, err
	}

	responses, err := s.responses.ListBySubmission(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionDetailResponse{}, err
	}

	details := make([]dto.ResponseDetail, 0, len(responses))
	for _, response := range responses {
		metadata := dto.QuestionLite{
			QuestionText:  response.QuestionText,
			CorrectAnswer: response.CorrectAnswer,
			Points:        response.Points,
		}

		question, err := s.questions.GetByID(ctx, response.QuestionID)
		switch {
		case err == nil:
			metadata = dto.QuestionLite{
				QuestionText:  question.QuestionText,
				CorrectAnswer: question.CorrectAnswer,
				Points:        question.Points,
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return dto.SubmissionDetailResponse{}, err
		}

		details = append(details, dto.ResponseDetail{
			QuestionID:   response.QuestionID,
			UserAnswer:   response.UserAnswer,
			IsCorrect:    response.IsCorrect,
			PointsEarned: response.PointsEarned,
			Question:     metadata,
		})
	}

	return dto.SubmissionDetailResponse{
		Submission: dto.NewSubmissionResponse(submission, quiz),
		Responses:  details,
	}, nil
}
