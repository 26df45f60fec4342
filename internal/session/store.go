package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightboard/quiz-service/internal/models"
)

// Session state machine errors.
var (
	ErrNoQuestions          = errors.New("quiz has no questions")
	ErrAlreadyStarted       = errors.New("session already started")
	ErrNotActive            = errors.New("session is not in progress")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrQuestionNotDisplayed = errors.New("question is not the one currently displayed")
)

// PersistenceError wraps a failed write during start or submission. The
// session rolls back to in-progress, so the caller can retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ProfileDelta is the stat change a completed attempt proposes. The store
// applies it against current stored values; the session never assumes it can
// safely read-then-write profile aggregates itself.
type ProfileDelta struct {
	Score     int // points to add to totalScore
	Accuracy  int // accuracy of this attempt, feeds the rolling average
	XP        int // XP earned by this attempt
	Level     int // level implied by the new XP total
	NewBadges []string
}

// Store is the persistence collaborator the session submits through.
// Implementations must treat ApplyProfileDelta and ApplyQuizAggregate as
// increment-style operations; concurrent submissions may interleave.
type Store interface {
	// CreateAttempt persists a new in-progress attempt and assigns its ID.
	CreateAttempt(ctx context.Context, attempt *models.Attempt) error
	UpdateAttempt(ctx context.Context, attempt *models.Attempt) error
	SaveResult(ctx context.Context, result *models.Result) error
	ApplyProfileDelta(ctx context.Context, userID string, delta ProfileDelta) error
	ApplyQuizAggregate(ctx context.Context, quizID uint, accuracy int) error
}
