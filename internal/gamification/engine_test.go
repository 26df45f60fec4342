package gamification

import (
	"testing"

	"github.com/brightboard/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLevelBands(t *testing.T) {
	assert.Equal(t, 1, Level(0))
	assert.Equal(t, 1, Level(499))
	assert.Equal(t, 2, Level(500))
	assert.Equal(t, 2, Level(999))
	assert.Equal(t, 3, Level(1000))
}

func TestCalculateXP(t *testing.T) {
	// 30 points at 100% on easy: 30 * 1.0 * 1.0 * 10
	assert.Equal(t, 300, CalculateXP(30, 100, models.DifficultyEasy))
	// medium multiplies by 1.2
	assert.Equal(t, 360, CalculateXP(30, 100, models.DifficultyMedium))
	// hard multiplies by 1.5, accuracy scales down
	assert.Equal(t, 225, CalculateXP(30, 50, models.DifficultyHard))
	// zero score earns nothing
	assert.Equal(t, 0, CalculateXP(0, 100, models.DifficultyHard))
}

func TestXPForNextLevel(t *testing.T) {
	p := XPForNextLevel(650)
	assert.Equal(t, 150, p.CurrentInLevel)
	assert.Equal(t, 500, p.NeededForLevel)
	assert.InDelta(t, 30.0, p.ProgressPercent, 0.0001)

	p = XPForNextLevel(0)
	assert.Equal(t, 0, p.CurrentInLevel)
	assert.Equal(t, 0.0, p.ProgressPercent)
}

func TestCheckNewBadges_FirstQuiz(t *testing.T) {
	r := NewRegistry()

	stats := Stats{QuizzesCompleted: 1, Streak: 0, Level: 1}
	assert.Equal(t, []string{"first-quiz"}, r.CheckNewBadges(nil, stats))

	// already-owned badges are never re-reported
	assert.Empty(t, r.CheckNewBadges([]string{"first-quiz"}, stats))
}

func TestCheckNewBadges_CatalogOrder(t *testing.T) {
	r := NewRegistry()

	stats := Stats{
		QuizzesCompleted: 50,
		Streak:           30,
		Level:            10,
		LastAccuracy:     100,
		LastTimeSpent:    60,
	}
	got := r.CheckNewBadges(nil, stats)
	assert.Equal(t, []string{
		"first-quiz", "ten-quizzes", "fifty-quizzes",
		"perfect-score", "speed-demon",
		"streak-3", "streak-7", "streak-30",
		"level-5", "level-10",
	}, got)
}

func TestCheckNewBadges_MasteryBadgesNeverUnlock(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("math-master")
	assert.True(t, ok, "mastery badges stay in the catalog")

	stats := Stats{QuizzesCompleted: 500, Streak: 365, Level: 99, LastAccuracy: 100, LastTimeSpent: 30}
	for _, id := range r.CheckNewBadges(nil, stats) {
		assert.NotContains(t, []string{"math-master", "science-star", "history-buff"}, id)
	}
}

func TestCheckNewBadges_SpeedDemonBoundary(t *testing.T) {
	r := NewRegistry()

	got := r.CheckNewBadges([]string{"first-quiz"}, Stats{QuizzesCompleted: 2, Level: 1, LastTimeSpent: 119.9})
	assert.Contains(t, got, "speed-demon")

	got = r.CheckNewBadges([]string{"first-quiz"}, Stats{QuizzesCompleted: 2, Level: 1, LastTimeSpent: 120})
	assert.NotContains(t, got, "speed-demon")

	// a zero LastTimeSpent means "not reported", not an instant finish
	got = r.CheckNewBadges([]string{"first-quiz"}, Stats{QuizzesCompleted: 2, Level: 1})
	assert.NotContains(t, got, "speed-demon")
}
