// Package gamification computes XP, levels and badge unlocks. Everything here
// is a total function over plain values: degenerate input yields a defined
// default, never an error.
package gamification

import (
	"math"

	"github.com/brightboard/quiz-service/internal/models"
)

// XPPerLevel is the width of each level band. Levels are 1-indexed.
const XPPerLevel = 500

// CalculateXP returns the XP awarded for one completed quiz:
// round(score * accuracy/100 * difficultyMultiplier * 10).
func CalculateXP(score, accuracy int, difficulty models.Difficulty) int {
	return int(math.Round(float64(score) * (float64(accuracy) / 100) * difficulty.Multiplier() * 10))
}

// Level maps cumulative XP to a level: floor(xp/500)+1.
func Level(xp int) int {
	return xp/XPPerLevel + 1
}

// LevelProgress describes how far into the current level band an XP total is.
type LevelProgress struct {
	CurrentInLevel  int     `json:"current_in_level"`
	NeededForLevel  int     `json:"needed_for_level"`
	ProgressPercent float64 `json:"progress_percent"`
}

// XPForNextLevel returns progress within the current 500-XP band.
func XPForNextLevel(xp int) LevelProgress {
	current := xp - (Level(xp)-1)*XPPerLevel
	return LevelProgress{
		CurrentInLevel:  current,
		NeededForLevel:  XPPerLevel,
		ProgressPercent: float64(current) / XPPerLevel * 100,
	}
}

// Stats is the prospective post-submission view of a profile that badge
// predicates are evaluated against.
type Stats struct {
	QuizzesCompleted int
	Streak           int
	Level            int
	LastAccuracy     int     // percent of the just-completed quiz
	LastTimeSpent    float64 // seconds spent on the just-completed quiz
}
