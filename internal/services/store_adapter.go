package services

import (
	"context"

	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/brightboard/quiz-service/internal/session"
)

// repositoryStore adapts the repository layer to the session package's Store
// collaborator.
type repositoryStore struct {
	repo repositories.Repository
}

func NewSessionStore(repo repositories.Repository) session.Store {
	return &repositoryStore{repo: repo}
}

func (s *repositoryStore) CreateAttempt(ctx context.Context, attempt *models.Attempt) error {
	return s.repo.Attempt().Create(ctx, attempt)
}

func (s *repositoryStore) UpdateAttempt(ctx context.Context, attempt *models.Attempt) error {
	return s.repo.Attempt().Update(ctx, attempt)
}

func (s *repositoryStore) SaveResult(ctx context.Context, result *models.Result) error {
	return s.repo.Result().Create(ctx, result)
}

func (s *repositoryStore) ApplyProfileDelta(ctx context.Context, userID string, delta session.ProfileDelta) error {
	return s.repo.User().ApplyStatsDelta(ctx, userID, repositories.StatsDelta{
		Score:     delta.Score,
		Accuracy:  delta.Accuracy,
		XP:        delta.XP,
		Level:     delta.Level,
		NewBadges: delta.NewBadges,
	})
}

func (s *repositoryStore) ApplyQuizAggregate(ctx context.Context, quizID uint, accuracy int) error {
	return s.repo.Quiz().ApplyAggregate(ctx, quizID, accuracy)
}
