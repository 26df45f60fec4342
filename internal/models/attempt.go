package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in-progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptAbandoned  AttemptStatus = "abandoned"
)

// QuestionResponse records what the learner selected for one question,
// derived at submission time.
type QuestionResponse struct {
	QuestionID      string  `json:"question_id"`
	SelectedAnswers []int   `json:"selected_answers"`
	IsCorrect       bool    `json:"is_correct"`
	TimeSpent       float64 `json:"time_spent"` // seconds
	Flagged         bool    `json:"flagged"`
}

// Attempt is one in-progress-or-completed instance of a learner taking a quiz.
type Attempt struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"not null;size:255;index"`
	QuizID    uint   `json:"quiz_id" gorm:"not null;index"`
	QuizTitle string `json:"quiz_title" gorm:"size:200"`

	StartedAt time.Time     `json:"started_at"`
	EndedAt   *time.Time    `json:"ended_at"`
	Status    AttemptStatus `json:"status" gorm:"not null;size:20;index;default:in-progress"`

	Responses datatypes.JSONSlice[QuestionResponse] `json:"responses" gorm:"type:jsonb"`

	Score          int     `json:"score" gorm:"default:0"`
	MaxScore       int     `json:"max_score" gorm:"default:0"`
	Accuracy       int     `json:"accuracy" gorm:"default:0"`        // percent, rounded
	CompletionRate float64 `json:"completion_rate" gorm:"default:0"` // percent
}

func (Attempt) TableName() string {
	return "attempts"
}

// TopicPerformance aggregates correctness per subject-matter label within one
// result.
type TopicPerformance struct {
	Topic    string `json:"topic"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Accuracy int    `json:"accuracy"` // percent, rounded
}

// Result is the finalized, persisted outcome of a completed attempt.
type Result struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"not null;size:255;index"`
	QuizID    uint   `json:"quiz_id" gorm:"not null;index"`
	QuizTitle string `json:"quiz_title" gorm:"size:200"`
	AttemptID uint   `json:"attempt_id" gorm:"not null;uniqueIndex"`

	Score     int     `json:"score"`
	MaxScore  int     `json:"max_score"`
	Accuracy  int     `json:"accuracy"`   // percent, rounded
	TimeSpent float64 `json:"time_spent"` // seconds

	TopicPerformance datatypes.JSONSlice[TopicPerformance] `json:"topic_performance" gorm:"type:jsonb"`
	WeakTopics       datatypes.JSONSlice[string]           `json:"weak_topics" gorm:"type:jsonb"`
	StrongTopics     datatypes.JSONSlice[string]           `json:"strong_topics" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

func (Result) TableName() string {
	return "results"
}
