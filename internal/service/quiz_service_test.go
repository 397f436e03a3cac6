package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quizmaster/quiz-api/internal/dto"
	"github.com/quizmaster/quiz-api/internal/models"
)

type quizServiceFixture struct {
	service     QuizService
	quizzes     *memoryQuizRepo
	questions   *memoryQuestionRepo
	submissions *memorySubmissionRepo
	responses   *memoryResponseRepo
	log         *opLog
}

func newQuizServiceFixture(t *testing.T, cache *redis.Client) quizServiceFixture {
	t.Helper()

	log := &opLog{}
	quizzes := newMemoryQuizRepo(log)
	questions := newMemoryQuestionRepo(log)
	submissions := newMemorySubmissionRepo(log)
	responses := newMemoryResponseRepo(log)

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	svc := NewQuizService(quizzes, questions, submissions, responses, cache, time.Minute, validate, logger)

	return quizServiceFixture{
		service:     svc,
		quizzes:     quizzes,
		questions:   questions,
		submissions: submissions,
		responses:   responses,
		log:         log,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestQuizServiceCreateRejectsBlankTitle(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)

	_, err := fixture.service.Create(context.Background(), dto.QuizCreateRequest{Title: "   "})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, fixture.quizzes.items)
}

func TestQuizServiceCreateNormalizesQuestions(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)

	quiz, err := fixture.service.Create(context.Background(), dto.QuizCreateRequest{
		Title:       "  Capitals  ",
		Description: strPtr(""),
		Questions: []dto.QuestionPayload{
			{QuestionText: "Capital of France?", QuestionType: models.QuestionTypeMCQ, Options: []string{"Paris", "Lyon"}, CorrectAnswer: "Paris", Points: 5},
			{QuestionText: "Meaning of life?", QuestionType: models.QuestionTypeText, Options: []string{"ignored"}, CorrectAnswer: "42"},
			{QuestionText: "Sky is blue?", QuestionType: models.QuestionTypeTrueFalse, CorrectAnswer: "true"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Capitals", quiz.Title)
	require.Nil(t, quiz.Description)
	require.False(t, quiz.IsPublished)

	questions, err := fixture.service.GetQuestions(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for i, question := range questions {
		require.Equal(t, i, question.OrderIndex)
	}

	require.Equal(t, []string{"Paris", "Lyon"}, questions[0].Options)
	require.Equal(t, 5, questions[0].Points)

	require.Nil(t, questions[1].Options, "options are dropped for non-mcq questions")
	require.Equal(t, 1, questions[1].Points, "points default to 1")

	require.Nil(t, questions[2].Options)
}

func TestQuizServiceCreateValidatesQuestionPayloads(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)

	_, err := fixture.service.Create(context.Background(), dto.QuizCreateRequest{
		Title: "Broken",
		Questions: []dto.QuestionPayload{
			{QuestionText: "No answer", QuestionType: models.QuestionTypeText},
		},
	})

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Empty(t, fixture.quizzes.items)
}

func TestQuizServiceUpdateUnknownQuiz(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)

	_, err := fixture.service.Update(context.Background(), "missing", dto.QuizUpdateRequest{Title: strPtr("New")})
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizServiceUpdateReplacesQuestionSet(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{
		Title: "History",
		Questions: []dto.QuestionPayload{
			{QuestionText: "Old 1", QuestionType: models.QuestionTypeText, CorrectAnswer: "a"},
			{QuestionText: "Old 2", QuestionType: models.QuestionTypeText, CorrectAnswer: "b"},
			{QuestionText: "Old 3", QuestionType: models.QuestionTypeText, CorrectAnswer: "c"},
		},
	})
	require.NoError(t, err)

	oldQuestions, err := fixture.service.GetQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, oldQuestions, 3)

	newSet := []dto.QuestionPayload{
		{QuestionText: "New 1", QuestionType: models.QuestionTypeText, CorrectAnswer: "x"},
		{QuestionText: "New 2", QuestionType: models.QuestionTypeText, CorrectAnswer: "y"},
	}
	_, err = fixture.service.Update(ctx, quiz.ID, dto.QuizUpdateRequest{Questions: &newSet})
	require.NoError(t, err)

	questions, err := fixture.service.GetQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	require.Equal(t, "New 1", questions[0].QuestionText)
	require.Equal(t, 0, questions[0].OrderIndex)
	require.Equal(t, "New 2", questions[1].QuestionText)
	require.Equal(t, 1, questions[1].OrderIndex)

	for _, old := range oldQuestions {
		_, err := fixture.questions.GetByID(ctx, old.ID)
		require.Error(t, err, "old question ids no longer resolve")
	}
}

func TestQuizServiceUpdateWithoutQuestionsLeavesSetUntouched(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{
		Title: "Geo",
		Questions: []dto.QuestionPayload{
			{QuestionText: "Q1", QuestionType: models.QuestionTypeText, CorrectAnswer: "a"},
		},
	})
	require.NoError(t, err)

	updated, err := fixture.service.Update(ctx, quiz.ID, dto.QuizUpdateRequest{
		Title:       strPtr("Geography"),
		Description: strPtr("about maps"),
	})
	require.NoError(t, err)
	require.Equal(t, "Geography", updated.Title)
	require.NotNil(t, updated.Description)
	require.Equal(t, "about maps", *updated.Description)

	questions, err := fixture.service.GetQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestQuizServiceUpdateRejectsBlankTitle(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Keep"})
	require.NoError(t, err)

	_, err = fixture.service.Update(ctx, quiz.ID, dto.QuizUpdateRequest{Title: strPtr("  ")})
	require.ErrorIs(t, err, ErrValidation)

	unchanged, err := fixture.service.Get(ctx, quiz.ID)
	require.NoError(t, err)
	require.Equal(t, "Keep", unchanged.Title)
}

func TestQuizServiceUpdateClearsDescription(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Desc", Description: strPtr("original")})
	require.NoError(t, err)

	updated, err := fixture.service.Update(ctx, quiz.ID, dto.QuizUpdateRequest{Description: strPtr("")})
	require.NoError(t, err)
	require.Nil(t, updated.Description)
}

func TestQuizServiceDeleteCascades(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{
		Title: "Doomed",
		Questions: []dto.QuestionPayload{
			{QuestionText: "Q1", QuestionType: models.QuestionTypeText, CorrectAnswer: "a", Points: 2},
		},
	})
	require.NoError(t, err)

	submission := models.Submission{QuizID: quiz.ID, ParticipantName: "Sam", Score: 2, TotalPoints: 2}
	require.NoError(t, fixture.submissions.Create(ctx, &submission))
	require.NoError(t, fixture.responses.CreateBatch(ctx, []models.Response{
		{SubmissionID: submission.ID, QuestionID: "q", UserAnswer: "a", IsCorrect: true, PointsEarned: 2},
	}))

	require.NoError(t, fixture.service.Delete(ctx, quiz.ID))

	_, err = fixture.service.Get(ctx, quiz.ID)
	require.ErrorIs(t, err, ErrQuizNotFound)

	questions, err := fixture.questions.ListByQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	require.Empty(t, questions)

	submissions, err := fixture.submissions.ListByQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	require.Empty(t, submissions)

	responses, err := fixture.responses.ListBySubmission(ctx, submission.ID)
	require.NoError(t, err)
	require.Empty(t, responses)

	require.Equal(t, []string{"delete_questions", "delete_responses", "delete_submissions", "delete_quiz"}, fixture.log.ops,
		"children are removed before their parents")
}

func TestQuizServiceDeleteUnknownQuiz(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)

	err := fixture.service.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, ErrQuizNotFound)
	require.Empty(t, fixture.log.ops, "no cascade runs for an unknown quiz")
}

func TestQuizServiceTogglePublish(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Flip"})
	require.NoError(t, err)
	require.False(t, quiz.IsPublished)

	toggled, err := fixture.service.TogglePublish(ctx, quiz.ID)
	require.NoError(t, err)
	require.True(t, toggled.IsPublished)

	toggledBack, err := fixture.service.TogglePublish(ctx, quiz.ID)
	require.NoError(t, err)
	require.False(t, toggledBack.IsPublished, "double toggle returns to the original state")
}

func TestQuizServiceListPublishedFiltersAndOrders(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)
	ctx := context.Background()

	first, err := fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "First"})
	require.NoError(t, err)
	second, err := fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Second"})
	require.NoError(t, err)
	_, err = fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Draft"})
	require.NoError(t, err)

	_, err = fixture.service.TogglePublish(ctx, first.ID)
	require.NoError(t, err)
	_, err = fixture.service.TogglePublish(ctx, second.ID)
	require.NoError(t, err)

	published, err := fixture.service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	require.Equal(t, "Second", published[0].Title, "newest quiz comes first")
	require.Equal(t, "First", published[1].Title)

	all, err := fixture.service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestQuizServiceGetQuestionsUnknownQuiz(t *testing.T) {
	fixture := newQuizServiceFixture(t, nil)

	_, err := fixture.service.GetQuestions(context.Background(), "missing")
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizServicePublishedListCache(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	fixture := newQuizServiceFixture(t, cache)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Cached"})
	require.NoError(t, err)
	_, err = fixture.service.TogglePublish(ctx, quiz.ID)
	require.NoError(t, err)

	published, err := fixture.service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.True(t, server.Exists(publishedQuizzesCacheKey))

	// Served from cache: a direct store write does not show up until the
	// cache is invalidated by a service mutation.
	sneaked := models.Quiz{Title: "Sneaked", IsPublished: true}
	require.NoError(t, fixture.quizzes.Create(ctx, &sneaked))

	cached, err := fixture.service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)

	_, err = fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Invalidates"})
	require.NoError(t, err)
	require.False(t, server.Exists(publishedQuizzesCacheKey))

	refreshed, err := fixture.service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, refreshed, 2)
}

func TestQuizServiceCacheFailureFallsBackToStore(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	fixture := newQuizServiceFixture(t, cache)
	ctx := context.Background()

	quiz, err := fixture.service.Create(ctx, dto.QuizCreateRequest{Title: "Resilient"})
	require.NoError(t, err)
	_, err = fixture.service.TogglePublish(ctx, quiz.ID)
	require.NoError(t, err)

	server.Close()

	published, err := fixture.service.ListPublished(ctx)
	require.NoError(t, err, "cache errors degrade to store reads")
	require.Len(t, published, 1)
	require.False(t, errors.Is(err, redis.Nil))
}
