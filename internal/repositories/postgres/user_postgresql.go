package postgres

import (
	"context"
	"math"
	"time"

	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u UserPostgreSQL) Create(ctx context.Context, profile *models.UserProfile) error {
	return u.db.WithContext(ctx).Create(profile).Error
}

func (u UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := u.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (u UserPostgreSQL) Update(ctx context.Context, profile *models.UserProfile) error {
	return u.db.WithContext(ctx).Save(profile).Error
}

// ApplyStatsDelta folds one completed attempt into the profile inside a
// transaction. The streak counts consecutive active days: completing a quiz
// the day after the last activity extends it, a gap resets it to one, and a
// second completion the same day leaves it unchanged.
func (u UserPostgreSQL) ApplyStatsDelta(ctx context.Context, userID string, delta repositories.StatsDelta) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.UserProfile
		if err := tx.First(&profile, "id = ?", userID).Error; err != nil {
			return err
		}

		completed := profile.QuizzesCompleted
		newAvg := (profile.AverageAccuracy*float64(completed) + float64(delta.Accuracy)) / float64(completed+1)

		now := time.Now()
		streak := rollStreak(profile.Streak, profile.LastActiveAt, now)
		longest := profile.LongestStreak
		if streak > longest {
			longest = streak
		}

		badges := profile.Badges
		for _, id := range delta.NewBadges {
			if !profile.HasBadge(id) {
				badges = append(badges, id)
			}
		}

		profile.TotalScore += delta.Score
		profile.QuizzesCompleted = completed + 1
		profile.AverageAccuracy = math.Round(newAvg*100) / 100
		profile.XP += delta.XP
		profile.Level = delta.Level
		profile.Streak = streak
		profile.LongestStreak = longest
		profile.Badges = badges
		profile.LastActiveAt = &now

		return tx.Save(&profile).Error
	})
}

func (u UserPostgreSQL) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	var profiles []*models.UserProfile
	if err := u.db.WithContext(ctx).
		Where("role = ?", models.RoleStudent).
		Order("total_score DESC, xp DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	entries := make([]*models.LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, &models.LeaderboardEntry{
			UserID:           p.ID,
			Name:             p.Name,
			TotalScore:       p.TotalScore,
			QuizzesCompleted: p.QuizzesCompleted,
			AverageAccuracy:  p.AverageAccuracy,
			Rank:             i + 1,
			XP:               p.XP,
			Level:            p.Level,
			Badges:           p.Badges,
		})
	}
	return entries, nil
}

func rollStreak(current int, lastActive *time.Time, now time.Time) int {
	if lastActive == nil {
		return 1
	}
	lastDay := lastActive.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	switch today.Sub(lastDay) {
	case 0:
		if current == 0 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}
