package services

import (
	"context"
	"log/slog"

	apperrors "github.com/brightboard/quiz-service/internal/errors"
	"github.com/brightboard/quiz-service/internal/gamification"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/go-playground/validator/v10"
)

// ProfileService manages user profiles and the derived progression view.
type ProfileService struct {
	repo      repositories.Repository
	badges    *gamification.Registry
	validator *validator.Validate
	logger    *slog.Logger
}

func NewProfileService(repo repositories.Repository, badges *gamification.Registry, validate *validator.Validate, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:      repo,
		badges:    badges,
		validator: validate,
		logger:    logger,
	}
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	profile, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Register creates a profile for a user the identity provider just
// authenticated for the first time.
func (s *ProfileService) Register(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if err := s.validator.Struct(profile); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}
	if profile.Level == 0 {
		profile.Level = 1
	}
	if err := s.repo.User().Create(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("profile registered", "user_id", profile.ID, "role", profile.Role)
	return profile, nil
}

func (s *ProfileService) Update(ctx context.Context, id string, name, gradeLevel string, subjects []string) (*models.UserProfile, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		profile.Name = name
	}
	if gradeLevel != "" {
		profile.GradeLevel = gradeLevel
	}
	if subjects != nil {
		profile.Subjects = subjects
	}
	if err := s.validator.Struct(profile); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	if err := s.repo.User().Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// BadgeCatalog returns every badge the service can award.
func (s *ProfileService) BadgeCatalog() []models.Badge {
	return s.badges.Badges()
}

// BadgeStatus pairs a catalog badge with whether this user holds it.
type BadgeStatus struct {
	models.Badge
	Unlocked bool `json:"unlocked"`
}

// Progression is the gamification view of a profile.
type Progression struct {
	XP            int                        `json:"xp"`
	Level         int                        `json:"level"`
	NextLevel     gamification.LevelProgress `json:"next_level"`
	Streak        int                        `json:"streak"`
	LongestStreak int                        `json:"longest_streak"`
	Badges        []BadgeStatus              `json:"badges"`
}

// Progress computes level progress and the full badge catalog annotated with
// unlock state.
func (s *ProfileService) Progress(ctx context.Context, id string) (*Progression, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog := s.badges.Badges()
	statuses := make([]BadgeStatus, 0, len(catalog))
	for _, badge := range catalog {
		statuses = append(statuses, BadgeStatus{
			Badge:    badge,
			Unlocked: profile.HasBadge(badge.ID),
		})
	}

	return &Progression{
		XP:            profile.XP,
		Level:         profile.Level,
		NextLevel:     gamification.XPForNextLevel(profile.XP),
		Streak:        profile.Streak,
		LongestStreak: profile.LongestStreak,
		Badges:        statuses,
	}, nil
}
