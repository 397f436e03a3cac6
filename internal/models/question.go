package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// QuestionTypeMCQ is a multiple-choice question with a fixed option list.
	QuestionTypeMCQ = "mcq"
	// QuestionTypeTrueFalse is a two-option true/false question.
	QuestionTypeTrueFalse = "true_false"
	// QuestionTypeText is a free-text question graded by string comparison.
	QuestionTypeText = "text"
)

// Question is one gradable item within a quiz.
type Question struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	QuizID        string         `gorm:"size:36;not null;index" json:"quiz_id"`
	QuestionText  string         `gorm:"type:text;not null" json:"question_text"`
	QuestionType  string         `gorm:"size:32;not null" json:"question_type"`
	Options       datatypes.JSON `gorm:"type:json" json:"options"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
	Points        int            `gorm:"not null;default:1" json:"points"`
	OrderIndex    int            `gorm:"not null;default:0" json:"order_index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided.
func (q *Question) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// OptionList decodes the stored options column. Returns nil for non-mcq questions.
func (q Question) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}

	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil
	}
	return options
}
