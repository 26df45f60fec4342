package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionType string

const (
	SingleChoice QuestionType = "single-choice"
	TrueFalse    QuestionType = "true-false"
	MultiSelect  QuestionType = "multi-select"
)

// QuizQuestion is a point-in-time snapshot of a bank question embedded in a
// quiz. Quizzes carry their own copies so later edits to the bank never change
// a published quiz.
type QuizQuestion struct {
	QuestionID     string       `json:"question_id"`
	Text           string       `json:"text" validate:"required"`
	Type           QuestionType `json:"type" validate:"required,question_type"`
	Options        []string     `json:"options" validate:"required,min=2"`
	CorrectAnswers []int        `json:"correct_answers" validate:"required,min=1"`
	Explanation    string       `json:"explanation"`
	Difficulty     Difficulty   `json:"difficulty" validate:"omitempty,difficulty"`
	Topic          string       `json:"topic"`
	Points         int          `json:"points" validate:"required,min=1"`
}

type Quiz struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description   string     `json:"description" gorm:"type:text" validate:"max=1000"`
	Subject       string     `json:"subject" gorm:"not null;size:100;index" validate:"required"`
	GradeLevel    string     `json:"grade_level" gorm:"size:50"`
	Difficulty    Difficulty `json:"difficulty" gorm:"not null;size:10;index" validate:"required,difficulty"`
	EstimatedTime int        `json:"estimated_time" gorm:"not null" validate:"required,min=1,max=180"` // minutes

	Questions datatypes.JSONSlice[QuizQuestion] `json:"questions" gorm:"type:jsonb"`
	Tags      datatypes.JSONSlice[string]       `json:"tags" gorm:"type:jsonb"`

	IsActive bool `json:"is_active" gorm:"default:true;index"`

	// Aggregates updated after each submission. AverageScore is the running
	// mean of attempt accuracy, rounded to the nearest integer.
	TimesAttempted int `json:"times_attempted" gorm:"default:0"`
	AverageScore   int `json:"average_score" gorm:"default:0"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// MaxScore is the sum of point values over all questions.
func (q *Quiz) MaxScore() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// DifficultyMultiplier feeds the XP formula.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyHard:
		return 1.5
	case DifficultyMedium:
		return 1.2
	default:
		return 1.0
	}
}
