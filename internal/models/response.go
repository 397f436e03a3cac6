package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response is the graded record of one participant answer to one question
// within a submission. QuestionText, CorrectAnswer and Points are a snapshot
// taken at grading time so submission detail survives later quiz edits that
// delete the referenced question.
type Response struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	SubmissionID  string    `gorm:"size:36;not null;index" json:"submission_id"`
	QuestionID    string    `gorm:"size:36;not null" json:"question_id"`
	UserAnswer    string    `gorm:"type:text;not null" json:"user_answer"`
	IsCorrect     bool      `gorm:"not null" json:"is_correct"`
	PointsEarned  int       `gorm:"not null;default:0" json:"points_earned"`
	Position      int       `gorm:"not null;default:0" json:"position"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	CorrectAnswer string    `gorm:"type:text;not null" json:"correct_answer"`
	Points        int       `gorm:"not null;default:0" json:"points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided.
func (r *Response) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
