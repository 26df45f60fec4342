package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/brightboard/quiz-service/internal/events"
	"github.com/brightboard/quiz-service/internal/gamification"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/brightboard/quiz-service/internal/session"
)

// AttemptService orchestrates live quiz sessions: starting them, routing user
// actions to the right session, and finishing the lifecycle with events.
type AttemptService struct {
	repo        repositories.Repository
	store       session.Store
	manager     *session.Manager
	badges      *gamification.Registry
	publisher   events.EventPublisher
	leaderboard *LeaderboardService
	logger      *slog.Logger
}

func NewAttemptService(
	repo repositories.Repository,
	manager *session.Manager,
	badges *gamification.Registry,
	publisher events.EventPublisher,
	leaderboard *LeaderboardService,
	logger *slog.Logger,
) *AttemptService {
	return &AttemptService{
		repo:        repo,
		store:       NewSessionStore(repo),
		manager:     manager,
		badges:      badges,
		publisher:   publisher,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Start loads the quiz and the learner's profile, spins up a session and
// registers it with the manager so the countdown runs.
func (s *AttemptService) Start(ctx context.Context, userID string, quizID uint) (session.Snapshot, error) {
	var empty session.Snapshot

	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return empty, ErrQuizNotFound
		}
		return empty, err
	}
	if !quiz.IsActive {
		return empty, ErrQuizInactive
	}

	profile, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return empty, ErrUserNotFound
		}
		return empty, err
	}

	sess := session.New(quiz, *profile, s.store, s.badges, s.logger)
	if err := sess.Start(ctx); err != nil {
		return empty, err
	}
	s.manager.Put(sess)

	snap := sess.Snapshot()
	s.publishEvent(ctx, events.NewQuizEvent(events.EventAttemptStarted, events.AttemptStartedEvent{
		AttemptID: snap.AttemptID,
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		UserID:    userID,
		StartedAt: time.Now(),
		TimeLimit: snap.RemainingTime,
	}))
	return snap, nil
}

// Snapshot returns the live view of a session.
func (s *AttemptService) Snapshot(attemptID uint, userID string) (session.Snapshot, error) {
	sess, err := s.ownedSession(attemptID, userID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *AttemptService) SelectAnswer(attemptID uint, userID string, questionIndex, optionIndex int) (session.Snapshot, error) {
	sess, err := s.ownedSession(attemptID, userID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.SelectAnswer(questionIndex, optionIndex); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *AttemptService) Navigate(attemptID uint, userID string, targetIndex int) (session.Snapshot, error) {
	sess, err := s.ownedSession(attemptID, userID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.Navigate(targetIndex); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *AttemptService) ToggleFlag(attemptID uint, userID string) (session.Snapshot, error) {
	sess, err := s.ownedSession(attemptID, userID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.ToggleFlag(); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Submit finalizes the attempt, drops the session from the registry and
// publishes completion events.
func (s *AttemptService) Submit(ctx context.Context, attemptID uint, userID string) (*session.Outcome, error) {
	sess, err := s.ownedSession(attemptID, userID)
	if err != nil {
		return nil, err
	}
	outcome, err := sess.Submit(ctx)
	if err != nil {
		return nil, err
	}
	s.manager.Remove(attemptID)
	s.PublishCompletion(ctx, attemptID, outcome)
	return outcome, nil
}

// Abandon drops the session without finalizing it.
func (s *AttemptService) Abandon(attemptID uint, userID string) error {
	sess, err := s.ownedSession(attemptID, userID)
	if err != nil {
		return err
	}
	sess.Abandon()
	s.manager.Remove(attemptID)
	return nil
}

// PublishCompletion emits the quiz.completed and badge.unlocked events for a
// finished attempt and drops the stale leaderboard cache. The manager calls
// this through its expiry hook as well.
func (s *AttemptService) PublishCompletion(ctx context.Context, attemptID uint, outcome *session.Outcome) {
	s.leaderboard.Invalidate(ctx)
	s.publishEvent(ctx, events.NewQuizEvent(events.EventQuizCompleted, events.QuizCompletedEvent{
		AttemptID: attemptID,
		QuizID:    outcome.Result.QuizID,
		QuizTitle: outcome.Result.QuizTitle,
		UserID:    outcome.Result.UserID,
		Score:     outcome.Result.Score,
		MaxScore:  outcome.Result.MaxScore,
		Accuracy:  outcome.Result.Accuracy,
		XPEarned:  outcome.XPEarned,
		Level:     outcome.Level,
		EndedAt:   time.Now(),
	}))

	for _, badgeID := range outcome.NewBadges {
		name := badgeID
		if badge, ok := s.badges.Get(badgeID); ok {
			name = badge.Name
		}
		s.publishEvent(ctx, events.NewQuizEvent(events.EventBadgeUnlocked, events.BadgeUnlockedEvent{
			UserID:    outcome.Result.UserID,
			BadgeID:   badgeID,
			BadgeName: name,
			AttemptID: attemptID,
		}))
	}
}

// History lists a user's past attempts.
func (s *AttemptService) History(ctx context.Context, userID string, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	return s.repo.Attempt().GetByUser(ctx, userID, filters)
}

// RecentResults lists a user's newest results, most recent first.
func (s *AttemptService) RecentResults(ctx context.Context, userID string, limit int) ([]*models.Result, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.Result().GetByUser(ctx, userID, limit)
}

// GetResult loads the persisted result of a completed attempt.
func (s *AttemptService) GetResult(ctx context.Context, attemptID uint, userID string) (*models.Result, error) {
	result, err := s.repo.Result().GetByAttempt(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	if result.UserID != userID {
		return nil, ErrForbidden
	}
	return result, nil
}

func (s *AttemptService) ownedSession(attemptID uint, userID string) (*session.Session, error) {
	sess, ok := s.manager.Get(attemptID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.UserID() != userID {
		return nil, ErrForbidden
	}
	return sess, nil
}

func (s *AttemptService) publishEvent(ctx context.Context, event *events.QuizEvent) {
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Warn("event publish failed", "event_type", event.Type, "error", err)
	}
}
