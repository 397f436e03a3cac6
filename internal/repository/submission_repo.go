package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizmaster/quiz-api/internal/models"
)

// SubmissionRepository defines persistence operations for quiz submissions.
// Submissions are immutable once created, so there is no update path.
type SubmissionRepository interface {
	ListByQuiz(ctx context.Context, quizID string) ([]models.Submission, error)
	GetByID(ctx context.Context, id string) (models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	DeleteByQuiz(ctx context.Context, quizID string) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) ListByQuiz(ctx context.Context, quizID string) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) DeleteByQuiz(ctx context.Context, quizID string) error {
	return r.db.WithContext(ctx).Delete(&models.Submission{}, "quiz_id = ?", quizID).Error
}
