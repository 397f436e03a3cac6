package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizmaster/quiz-api/internal/models"
)

// QuestionRepository defines persistence operations for quiz questions.
type QuestionRepository interface {
	ListByQuiz(ctx context.Context, quizID string) ([]models.Question, error)
	GetByID(ctx context.Context, id string) (models.Question, error)
	CreateBatch(ctx context.Context, questions []models.Question) error
	DeleteByQuiz(ctx context.Context, quizID string) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository instantiates a GORM-backed repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// ListByQuiz returns the quiz's questions in grading order: order_index
// ascending, insertion order as the tie-break.
func (r *questionRepository) ListByQuiz(ctx context.Context, quizID string) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("order_index ASC, created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return models.Question{}, err
	}

	return question, nil
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) DeleteByQuiz(ctx context.Context, quizID string) error {
	return r.db.WithContext(ctx).Delete(&models.Question{}, "quiz_id = ?", quizID).Error
}
