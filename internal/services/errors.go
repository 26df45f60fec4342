package services

import (
	"errors"

	apperrors "github.com/brightboard/quiz-service/internal/errors"
	"github.com/brightboard/quiz-service/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")

	// Quiz specific errors
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrQuizInactive    = errors.New("quiz is not active")
	ErrQuizNoQuestions = errors.New("quiz must contain at least one question")

	// Question specific errors
	ErrQuestionNotFound = errors.New("question not found")

	// Attempt/session specific errors
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrSessionNotFound   = errors.New("no active session for attempt")
	ErrAttemptNotActive  = errors.New("attempt is not active")
	ErrActiveAttemptOpen = errors.New("an attempt for this quiz is already in progress")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid user role")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrQuizNoQuestions) ||
		errors.Is(err, session.ErrIndexOutOfRange) ||
		errors.Is(err, session.ErrQuestionNotDisplayed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a state conflict with the session
// lifecycle
func IsConflict(err error) bool {
	return errors.Is(err, ErrActiveAttemptOpen) ||
		errors.Is(err, ErrAttemptNotActive) ||
		errors.Is(err, session.ErrNotActive) ||
		errors.Is(err, session.ErrAlreadyStarted)
}

// IsRetryable checks if error is a transient persistence failure the client
// may retry
func IsRetryable(err error) bool {
	var pe *session.PersistenceError
	return errors.As(err, &pe)
}
