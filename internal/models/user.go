package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// UserProfile holds identity plus the cumulative gamification stats rolled up
// after every submission. The ID is the identity provider's user id.
type UserProfile struct {
	ID         string                      `json:"id" gorm:"primaryKey;size:255"`
	Name       string                      `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email      string                      `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Role       UserRole                    `json:"role" gorm:"not null;size:20;index" validate:"required,user_role"`
	GradeLevel string                      `json:"grade_level" gorm:"size:50"`
	Subjects   datatypes.JSONSlice[string] `json:"subjects" gorm:"type:jsonb"`

	TotalScore       int     `json:"total_score" gorm:"default:0"`
	QuizzesCompleted int     `json:"quizzes_completed" gorm:"default:0"`
	AverageAccuracy  float64 `json:"average_accuracy" gorm:"default:0"`
	Streak           int     `json:"streak" gorm:"default:0"`
	LongestStreak    int     `json:"longest_streak" gorm:"default:0"`
	XP               int     `json:"xp" gorm:"default:0;index"`
	Level            int     `json:"level" gorm:"default:1"`

	Badges datatypes.JSONSlice[string] `json:"badges" gorm:"type:jsonb"`

	LastActiveAt *time.Time     `json:"last_active_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// LeaderboardEntry is the read model for the ranked student listing.
type LeaderboardEntry struct {
	UserID           string   `json:"user_id"`
	Name             string   `json:"name"`
	TotalScore       int      `json:"total_score"`
	QuizzesCompleted int      `json:"quizzes_completed"`
	AverageAccuracy  float64  `json:"average_accuracy"`
	Rank             int      `json:"rank"`
	XP               int      `json:"xp"`
	Level            int      `json:"level"`
	Badges           []string `json:"badges"`
}
