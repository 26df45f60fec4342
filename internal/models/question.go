package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is a standalone question-bank entry authored by a teacher.
// Adding one to a quiz copies it into the quiz's question list.
type Question struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Text        string                      `json:"text" gorm:"not null;type:text" validate:"required"`
	Type        QuestionType                `json:"type" gorm:"not null;size:20" validate:"required,question_type"`
	Options     datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb" validate:"required,min=2"`
	CorrectIdx  datatypes.JSONSlice[int]    `json:"correct_answers" gorm:"column:correct_answers;type:jsonb" validate:"required,min=1"`
	Explanation string                      `json:"explanation" gorm:"type:text"`
	Difficulty  Difficulty                  `json:"difficulty" gorm:"not null;size:10;index" validate:"required,difficulty"`
	Topic       string                      `json:"topic" gorm:"size:100;index"`
	Subtopic    string                      `json:"subtopic" gorm:"size:100"`
	Points      int                         `json:"points" gorm:"default:10" validate:"min=1"`

	// Usage aggregates
	TimesAnswered int     `json:"times_answered" gorm:"default:0"`
	SuccessRate   float64 `json:"success_rate" gorm:"default:0"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// Snapshot converts a bank question into the embedded form quizzes carry.
func (q *Question) Snapshot() QuizQuestion {
	return QuizQuestion{
		QuestionID:     itoa(q.ID),
		Text:           q.Text,
		Type:           q.Type,
		Options:        q.Options,
		CorrectAnswers: q.CorrectIdx,
		Explanation:    q.Explanation,
		Difficulty:     q.Difficulty,
		Topic:          q.Topic,
		Points:         q.Points,
	}
}
