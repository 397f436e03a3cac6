package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is one participant's completed attempt at a quiz. Score and
// TotalPoints are frozen at grading time and never recomputed from the
// current question set.
type Submission struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	QuizID          string    `gorm:"size:36;not null;index" json:"quiz_id"`
	ParticipantName string    `gorm:"size:255;not null" json:"participant_name"`
	Score           int       `gorm:"not null;default:0" json:"score"`
	TotalPoints     int       `gorm:"not null;default:0" json:"total_points"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided.
func (s *Submission) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
