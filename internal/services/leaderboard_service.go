package services

import (
	"context"
	"log/slog"

	"github.com/brightboard/quiz-service/internal/cache"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
)

const defaultLeaderboardSize = 20

// LeaderboardService serves the ranked student listing, cache first.
type LeaderboardService struct {
	repo   repositories.Repository
	cache  *cache.LeaderboardCache
	logger *slog.Logger
}

func NewLeaderboardService(repo repositories.Repository, lbCache *cache.LeaderboardCache, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{
		repo:   repo,
		cache:  lbCache,
		logger: logger,
	}
}

// Top returns the highest-ranked students. Cache failures degrade to a
// direct read; the listing must stay available without Redis.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardSize
	}

	if entries, err := s.cache.Get(ctx, limit); err != nil {
		s.logger.Warn("leaderboard cache read failed", "error", err)
	} else if entries != nil {
		return entries, nil
	}

	entries, err := s.repo.User().GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, limit, entries); err != nil {
		s.logger.Warn("leaderboard cache write failed", "error", err)
	}
	return entries, nil
}

// Invalidate drops cached listings after profile stats change.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("leaderboard cache invalidation failed", "error", err)
	}
}
