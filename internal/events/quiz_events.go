package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents the kinds of quiz lifecycle events.
type EventType string

const (
	EventAttemptStarted EventType = "attempt.started"
	EventQuizCompleted  EventType = "quiz.completed"
	EventBadgeUnlocked  EventType = "badge.unlocked"
)

// QuizEvent is the envelope every published event shares.
type QuizEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// Event payloads

type AttemptStartedEvent struct {
	AttemptID uint      `json:"attempt_id"`
	QuizID    uint      `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
	TimeLimit int       `json:"time_limit"` // seconds
}

type QuizCompletedEvent struct {
	AttemptID uint      `json:"attempt_id"`
	QuizID    uint      `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	MaxScore  int       `json:"max_score"`
	Accuracy  int       `json:"accuracy"`
	XPEarned  int       `json:"xp_earned"`
	Level     int       `json:"level"`
	EndedAt   time.Time `json:"ended_at"`
}

type BadgeUnlockedEvent struct {
	UserID    string `json:"user_id"`
	BadgeID   string `json:"badge_id"`
	BadgeName string `json:"badge_name"`
	AttemptID uint   `json:"attempt_id"`
}

// NewQuizEvent wraps a payload in the standard envelope.
func NewQuizEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data:      data,
	}
}
