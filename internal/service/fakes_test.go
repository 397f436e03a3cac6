package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmaster/quiz-api/internal/models"
)

// opLog records store mutations so tests can assert cascade ordering.
type opLog struct {
	ops []string
}

func (l *opLog) record(op string) {
	l.ops = append(l.ops, op)
}

type memoryQuizRepo struct {
	items map[string]models.Quiz
	order []string
	clock int64
	log   *opLog
}

func newMemoryQuizRepo(log *opLog) *memoryQuizRepo {
	return &memoryQuizRepo{items: make(map[string]models.Quiz), log: log}
}

func (m *memoryQuizRepo) tick() time.Time {
	m.clock++
	return time.Unix(0, m.clock)
}

func (m *memoryQuizRepo) List(ctx context.Context) ([]models.Quiz, error) {
	results := make([]models.Quiz, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if quiz, ok := m.items[m.order[i]]; ok {
			results = append(results, quiz)
		}
	}
	return results, nil
}

func (m *memoryQuizRepo) ListPublished(ctx context.Context) ([]models.Quiz, error) {
	all, _ := m.List(ctx)
	results := make([]models.Quiz, 0, len(all))
	for _, quiz := range all {
		if quiz.IsPublished {
			results = append(results, quiz)
		}
	}
	return results, nil
}

func (m *memoryQuizRepo) GetByID(ctx context.Context, id string) (models.Quiz, error) {
	quiz, ok := m.items[id]
	if !ok {
		return models.Quiz{}, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (m *memoryQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	quiz.CreatedAt = m.tick()
	quiz.UpdatedAt = quiz.CreatedAt
	m.items[quiz.ID] = *quiz
	m.order = append(m.order, quiz.ID)
	return nil
}

func (m *memoryQuizRepo) Update(ctx context.Context, quiz *models.Quiz) error {
	if _, ok := m.items[quiz.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	quiz.UpdatedAt = m.tick()
	m.items[quiz.ID] = *quiz
	return nil
}

func (m *memoryQuizRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	m.log.record("delete_quiz")
	return nil
}

type memoryQuestionRepo struct {
	items []models.Question
	log   *opLog
}

func newMemoryQuestionRepo(log *opLog) *memoryQuestionRepo {
	return &memoryQuestionRepo{log: log}
}

func (m *memoryQuestionRepo) ListByQuiz(ctx context.Context, quizID string) ([]models.Question, error) {
	results := make([]models.Question, 0)
	for _, question := range m.items {
		if question.QuizID == quizID {
			results = append(results, question)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OrderIndex < results[j].OrderIndex
	})
	return results, nil
}

func (m *memoryQuestionRepo) GetByID(ctx context.Context, id string) (models.Question, error) {
	for _, question := range m.items {
		if question.ID == id {
			return question, nil
		}
	}
	return models.Question{}, gorm.ErrRecordNotFound
}

func (m *memoryQuestionRepo) CreateBatch(ctx context.Context, questions []models.Question) error {
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		m.items = append(m.items, questions[i])
	}
	return nil
}

func (m *memoryQuestionRepo) DeleteByQuiz(ctx context.Context, quizID string) error {
	kept := m.items[:0]
	for _, question := range m.items {
		if question.QuizID != quizID {
			kept = append(kept, question)
		}
	}
	m.items = kept
	m.log.record("delete_questions")
	return nil
}

type memorySubmissionRepo struct {
	items map[string]models.Submission
	order []string
	log   *opLog
}

func newMemorySubmissionRepo(log *opLog) *memorySubmissionRepo {
	return &memorySubmissionRepo{items: make(map[string]models.Submission), log: log}
}

func (m *memorySubmissionRepo) ListByQuiz(ctx context.Context, quizID string) ([]models.Submission, error) {
	results := make([]models.Submission, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		if submission, ok := m.items[m.order[i]]; ok && submission.QuizID == quizID {
			results = append(results, submission)
		}
	}
	return results, nil
}

func (m *memorySubmissionRepo) GetByID(ctx context.Context, id string) (models.Submission, error) {
	submission, ok := m.items[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (m *memorySubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	submission.CreatedAt = time.Now()
	m.items[submission.ID] = *submission
	m.order = append(m.order, submission.ID)
	return nil
}

func (m *memorySubmissionRepo) DeleteByQuiz(ctx context.Context, quizID string) error {
	for id, submission := range m.items {
		if submission.QuizID == quizID {
			delete(m.items, id)
		}
	}
	m.log.record("delete_submissions")
	return nil
}

type memoryResponseRepo struct {
	items []models.Response
	log   *opLog
}

func newMemoryResponseRepo(log *opLog) *memoryResponseRepo {
	return &memoryResponseRepo{log: log}
}

func (m *memoryResponseRepo) ListBySubmission(ctx context.Context, submissionID string) ([]models.Response, error) {
	results := make([]models.Response, 0)
	for _, response := range m.items {
		if response.SubmissionID == submissionID {
			results = append(results, response)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})
	return results, nil
}

func (m *memoryResponseRepo) CreateBatch(ctx context.Context, responses []models.Response) error {
	for i := range responses {
		if responses[i].ID == "" {
			responses[i].ID = uuid.NewString()
		}
		m.items = append(m.items, responses[i])
	}
	return nil
}

func (m *memoryResponseRepo) DeleteBySubmissions(ctx context.Context, submissionIDs []string) error {
	ids := make(map[string]struct{}, len(submissionIDs))
	for _, id := range submissionIDs {
		ids[id] = struct{}{}
	}
	kept := m.items[:0]
	for _, response := range m.items {
		if _, ok := ids[response.SubmissionID]; !ok {
			kept = append(kept, response)
		}
	}
	m.items = kept
	m.log.record("delete_responses")
	return nil
}
