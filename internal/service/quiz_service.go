package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quizmaster/quiz-api/internal/dto"
	"github.com/quizmaster/quiz-api/internal/models"
	"github.com/quizmaster/quiz-api/internal/repository"
)

// ErrQuizNotFound indicates the requested quiz does not exist.
var ErrQuizNotFound = errors.New("quiz not found")

const publishedQuizzesCacheKey = "quizzes:published"

// QuizService exposes quiz authoring and listing use cases.
type QuizService interface {
	ListPublished(ctx context.Context) ([]dto.QuizResponse, error)
	ListAll(ctx context.Context) ([]dto.QuizResponse, error)
	Get(ctx context.Context, id string) (dto.QuizResponse, error)
	GetQuestions(ctx context.Context, quizID string) ([]dto.QuestionResponse, error)
	Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizResponse, error)
	Update(ctx context.Context, id string, payload dto.QuizUpdateRequest) (dto.QuizResponse, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (dto.QuizResponse, error)
}

type quizService struct {
	quizzes     repository.QuizRepository
	questions   repository.QuestionRepository
	submissions repository.SubmissionRepository
	responses   repository.ResponseRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewQuizService builds the quiz authoring service.
func NewQuizService(
	quizzes repository.QuizRepository,
	questions repository.QuestionRepository,
	submissions repository.SubmissionRepository,
	responses repository.ResponseRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger zerolog.Logger,
) QuizService {
	return &quizService{
		quizzes:     quizzes,
		questions:   questions,
		submissions: submissions,
		responses:   responses,
		cache:       cache,
		cacheTTL:    cacheTTL,
		validator:   validate,
		logger:      logger.With().Str("component", "quiz_service").Logger(),
	}
}

func (s *quizService) ListPublished(ctx context.Context) ([]dto.QuizResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, publishedQuizzesCacheKey).Result(); err == nil {
			var responses []dto.QuizResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				s.logger.Debug().Msg("published quiz list cache hit")
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read published quiz cache")
		}
	}

	quizzes, err := s.quizzes.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	responses := dto.NewQuizResponseSlice(quizzes)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, publishedQuizzesCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store published quiz cache")
			}
		}
	}

	return responses, nil
}

func (s *quizService) ListAll(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizResponseSlice(quizzes), nil
}

func (s *quizService) Get(ctx context.Context, id string) (dto.QuizResponse, error) {
	quiz, err := s.getQuiz(ctx, id)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) GetQuestions(ctx context.Context, quizID string) ([]dto.QuestionResponse, error) {
	if _, err := s.getQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuestionResponseSlice(questions), nil
}

func (s *quizService) Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return dto.QuizResponse{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	quiz := models.Quiz{
		Title:       title,
		Description: normalizeDescription(payload.Description),
		IsPublished: false,
	}

	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	if len(payload.Questions) > 0 {
		questions, err := buildQuestions(quiz.ID, payload.Questions)
		if err != nil {
			return dto.QuizResponse{}, err
		}
		if err := s.questions.CreateBatch(ctx, questions); err != nil {
			return dto.QuizResponse{}, err
		}
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Str("quiz_id", quiz.ID).Int("questions", len(payload.Questions)).Msg("quiz created")

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Update(ctx context.Context, id string, payload dto.QuizUpdateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.getQuiz(ctx, id)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	if payload.Title != nil {
		title := strings.TrimSpace(*payload.Title)
		if title == "" {
			return dto.QuizResponse{}, fmt.Errorf("%w: title must not be blank", ErrValidation)
		}
		quiz.Title = title
	}

	if payload.Description != nil {
		quiz.Description = normalizeDescription(payload.Description)
	}

	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	// A supplied question list, even an empty one, replaces the whole set.
	// Historical submissions keep their grading-time snapshots untouched.
	if payload.Questions != nil {
		if err := s.questions.DeleteByQuiz(ctx, id); err != nil {
			return dto.QuizResponse{}, err
		}

		questions, err := buildQuestions(id, *payload.Questions)
		if err != nil {
			return dto.QuizResponse{}, err
		}
		if err := s.questions.CreateBatch(ctx, questions); err != nil {
			return dto.QuizResponse{}, err
		}
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Str("quiz_id", quiz.ID).Msg("quiz updated")

	return dto.NewQuizResponse(quiz), nil
}

// Delete removes a quiz and everything that references it. Children go first
// so a partial failure can never leave orphans pointing at a missing parent:
// questions, then responses of the quiz's submissions, then the submissions,
// then the quiz itself.
func (s *quizService) Delete(ctx context.Context, id string) error {
	if _, err := s.getQuiz(ctx, id); err != nil {
		return err
	}

	if err := s.questions.DeleteByQuiz(ctx, id); err != nil {
		return err
	}

	submissions, err := s.submissions.ListByQuiz(ctx, id)
	if err != nil {
		return err
	}

	submissionIDs := make([]string, 0, len(submissions))
	for _, submission := range submissions {
		submissionIDs = append(submissionIDs, submission.ID)
	}

	if err := s.responses.DeleteBySubmissions(ctx, submissionIDs); err != nil {
		return err
	}

	if err := s.submissions.DeleteByQuiz(ctx, id); err != nil {
		return err
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Str("quiz_id", id).Int("submissions", len(submissionIDs)).Msg("quiz deleted")

	return nil
}

func (s *quizService) TogglePublish(ctx context.Context, id string) (dto.QuizResponse, error) {
	quiz, err := s.getQuiz(ctx, id)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	quiz.IsPublished = !quiz.IsPublished

	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Str("quiz_id", quiz.ID).Bool("is_published", quiz.IsPublished).Msg("quiz publish toggled")

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) getQuiz(ctx context.Context, id string) (models.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Quiz{}, ErrQuizNotFound
		}
		return models.Quiz{}, err
	}

	return quiz, nil
}

func (s *quizService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, publishedQuizzesCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate published quiz cache")
	}
}

// normalizeDescription maps absent or blank descriptions to null.
func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// buildQuestions converts question payloads into models, assigning order_index
// from list position and defaulting points to 1. Options are kept only for
// mcq questions.
func buildQuestions(quizID string, payloads []dto.QuestionPayload) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(payloads))

	for index, payload := range payloads {
		points := payload.Points
		if points < 1 {
			points = 1
		}

		var options datatypes.JSON
		if payload.QuestionType == models.QuestionTypeMCQ && len(payload.Options) > 0 {
			raw, err := json.Marshal(payload.Options)
			if err != nil {
				return nil, err
			}
			options = datatypes.JSON(raw)
		}

		questions = append(questions, models.Question{
			QuizID:        quizID,
			QuestionText:  strings.TrimSpace(payload.QuestionText),
			QuestionType:  payload.QuestionType,
			Options:       options,
			CorrectAnswer: strings.TrimSpace(payload.CorrectAnswer),
			Points:        points,
			OrderIndex:    index,
		})
	}

	return questions, nil
}
