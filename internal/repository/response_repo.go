package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizmaster/quiz-api/internal/models"
)

// ResponseRepository defines persistence operations for graded responses.
type ResponseRepository interface {
	ListBySubmission(ctx context.Context, submissionID string) ([]models.Response, error)
	CreateBatch(ctx context.Context, responses []models.Response) error
	DeleteBySubmissions(ctx context.Context, submissionIDs []string) error
}

type responseRepository struct {
	db *gorm.DB
}

// NewResponseRepository instantiates the repository.
func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// ListBySubmission returns responses in the order they were graded.
func (r *responseRepository) ListBySubmission(ctx context.Context, submissionID string) ([]models.Response, error) {
	var responses []models.Response
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("position ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *responseRepository) CreateBatch(ctx context.Context, responses []models.Response) error {
	if len(responses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&responses).Error
}

func (r *responseRepository) DeleteBySubmissions(ctx context.Context, submissionIDs []string) error {
	if len(submissionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.Response{}, "submission_id IN ?", submissionIDs).Error
}
