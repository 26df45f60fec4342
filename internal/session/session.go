// Package session holds the quiz-taking state machine. One Session owns the
// in-memory state of a single attempt: timer, navigation, answers, flags.
// All mutations are serialized behind the session mutex, so the periodic tick
// and user actions act as two event sources feeding one reducer; the
// idempotent submit guard is what makes a timer-triggered and a manual submit
// safe to race.
package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/brightboard/quiz-service/internal/gamification"
	"github.com/brightboard/quiz-service/internal/models"
)

type State string

const (
	StateNotStarted State = "not-started"
	StateInProgress State = "in-progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateAbandoned  State = "abandoned"
)

// Outcome is what a completed submission exposes to the caller.
type Outcome struct {
	Result    models.Result `json:"result"`
	NewBadges []string      `json:"new_badges"`
	XPEarned  int           `json:"xp_earned"`
	Level     int           `json:"level"`
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	AttemptID       uint          `json:"attempt_id"`
	QuizID          uint          `json:"quiz_id"`
	QuizTitle       string        `json:"quiz_title"`
	State           State         `json:"state"`
	CurrentQuestion int           `json:"current_question"`
	QuestionCount   int           `json:"question_count"`
	AnsweredCount   int           `json:"answered_count"`
	Answers         map[int][]int `json:"answers"`
	Flagged         []int         `json:"flagged"`
	RemainingTime   int           `json:"remaining_time"` // seconds
}

type Session struct {
	mu     sync.Mutex
	store  Store
	badges *gamification.Registry
	logger *slog.Logger
	now    func() time.Time

	quiz    *models.Quiz
	profile models.UserProfile // snapshot taken at start; deltas proposed at submit

	state     State
	attemptID uint
	current   int
	answers   map[int][]int
	flagged   map[int]struct{}
	remaining int // seconds until forced submission

	// dwell accumulates wall-clock seconds per question index. All time since
	// the last navigation is attributed to the question being left, which
	// misattributes slightly on revisits; downstream logic only needs totals,
	// so the approximation is kept.
	dwell         map[int]float64
	startedAt     time.Time
	questionStart time.Time

	outcome *Outcome
}

// Option configures a Session.
type Option func(*Session)

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(quiz *models.Quiz, profile models.UserProfile, store Store, badges *gamification.Registry, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		store:   store,
		badges:  badges,
		logger:  logger,
		now:     time.Now,
		quiz:    quiz,
		profile: profile,
		state:   StateNotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start transitions to in-progress and creates the persisted attempt record.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	if len(s.quiz.Questions) == 0 {
		return ErrNoQuestions
	}

	now := s.now()
	attempt := &models.Attempt{
		UserID:    s.profile.ID,
		QuizID:    s.quiz.ID,
		QuizTitle: s.quiz.Title,
		StartedAt: now,
		Status:    models.AttemptInProgress,
		MaxScore:  s.quiz.MaxScore(),
	}
	if err := s.store.CreateAttempt(ctx, attempt); err != nil {
		return &PersistenceError{Op: "create attempt", Err: err}
	}

	s.attemptID = attempt.ID
	s.current = 0
	s.answers = make(map[int][]int)
	s.flagged = make(map[int]struct{})
	s.dwell = make(map[int]float64)
	s.remaining = s.quiz.EstimatedTime * 60
	s.startedAt = now
	s.questionStart = now
	s.state = StateInProgress

	s.logger.Info("quiz session started",
		"attempt_id", s.attemptID,
		"quiz_id", s.quiz.ID,
		"user_id", s.profile.ID,
		"time_limit", s.remaining)
	return nil
}

// SelectAnswer records a choice for the question currently displayed.
// Single-choice and true-false replace the selection; multi-select toggles
// membership of the option.
func (s *Session) SelectAnswer(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotActive
	}
	if questionIndex < 0 || questionIndex >= len(s.quiz.Questions) {
		return ErrIndexOutOfRange
	}
	if questionIndex != s.current {
		return ErrQuestionNotDisplayed
	}
	question := s.quiz.Questions[questionIndex]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return ErrIndexOutOfRange
	}

	if question.Type == models.MultiSelect {
		s.answers[questionIndex] = toggle(s.answers[questionIndex], optionIndex)
		if len(s.answers[questionIndex]) == 0 {
			delete(s.answers, questionIndex)
		}
	} else {
		s.answers[questionIndex] = []int{optionIndex}
	}
	return nil
}

// Navigate moves the question pointer, folding the dwell time of the question
// being left into its accumulator.
func (s *Session) Navigate(targetIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotActive
	}
	if targetIndex < 0 || targetIndex >= len(s.quiz.Questions) {
		return ErrIndexOutOfRange
	}

	now := s.now()
	s.dwell[s.current] += now.Sub(s.questionStart).Seconds()
	s.questionStart = now
	s.current = targetIndex
	return nil
}

// ToggleFlag flips the review flag on the current question.
func (s *Session) ToggleFlag() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotActive
	}
	if _, ok := s.flagged[s.current]; ok {
		delete(s.flagged, s.current)
	} else {
		s.flagged[s.current] = struct{}{}
	}
	return nil
}

// Tick advances the countdown by one second. When it reaches zero the session
// submits itself exactly once; a failed expiry submission leaves the counter
// at zero so the tick never fires a second time, and a manual retry is still
// possible.
func (s *Session) Tick(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.remaining <= 0 {
		return nil, nil
	}
	s.remaining--
	if s.remaining > 0 {
		return nil, nil
	}

	s.logger.Info("quiz timer expired, auto-submitting", "attempt_id", s.attemptID)
	return s.submitLocked(ctx)
}

// Submit finalizes the attempt. Calling it again after completion returns the
// same Outcome without repeating any write.
func (s *Session) Submit(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(ctx)
}

// Abandon discards the session. The persisted attempt record is left in its
// non-terminal status on purpose.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress || s.state == StateNotStarted {
		s.state = StateAbandoned
	}
}

// Snapshot returns a copy of the current session state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[int][]int, len(s.answers))
	for idx, sel := range s.answers {
		answers[idx] = append([]int(nil), sel...)
	}
	flagged := make([]int, 0, len(s.flagged))
	for idx := range s.flagged {
		flagged = append(flagged, idx)
	}
	sort.Ints(flagged)

	return Snapshot{
		AttemptID:       s.attemptID,
		QuizID:          s.quiz.ID,
		QuizTitle:       s.quiz.Title,
		State:           s.state,
		CurrentQuestion: s.current,
		QuestionCount:   len(s.quiz.Questions),
		AnsweredCount:   len(s.answers),
		Answers:         answers,
		Flagged:         flagged,
		RemainingTime:   s.remaining,
	}
}

// AttemptID returns the identifier assigned at start.
func (s *Session) AttemptID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptID
}

// UserID returns the owner of the attempt.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.ID
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func toggle(selected []int, option int) []int {
	for i, v := range selected {
		if v == option {
			return append(selected[:i], selected[i+1:]...)
		}
	}
	return append(selected, option)
}

