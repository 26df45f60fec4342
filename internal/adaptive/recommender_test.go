package adaptive

import (
	"testing"

	"github.com/brightboard/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func attempts(accuracy int, difficulty models.Difficulty, n int) []AttemptPerformance {
	out := make([]AttemptPerformance, n)
	for i := range out {
		out[i] = AttemptPerformance{Accuracy: accuracy, Difficulty: difficulty}
	}
	return out
}

func TestRecommendDifficulty(t *testing.T) {
	tests := []struct {
		name   string
		recent []AttemptPerformance
		want   models.Difficulty
	}{
		{"empty history defaults to easy", nil, models.DifficultyEasy},
		{"consistent mastery steps up", attempts(90, models.DifficultyEasy, 3), models.DifficultyMedium},
		{"mastery on medium steps to hard", attempts(85, models.DifficultyMedium, 4), models.DifficultyHard},
		{"hard stays hard", attempts(95, models.DifficultyHard, 5), models.DifficultyHard},
		{"high mean but too few samples stays put", attempts(95, models.DifficultyEasy, 2), models.DifficultyEasy},
		{"struggling steps down", attempts(30, models.DifficultyHard, 3), models.DifficultyMedium},
		{"struggling on easy stays easy", attempts(10, models.DifficultyEasy, 1), models.DifficultyEasy},
		{"mixed results keep current difficulty", attempts(65, models.DifficultyMedium, 5), models.DifficultyMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendDifficulty(tt.recent))
		})
	}
}

func TestRecommendDifficulty_WindowIsFiveNewest(t *testing.T) {
	// Five strong recent attempts; older failures beyond the window must not count.
	history := append(attempts(90, models.DifficultyMedium, 5), attempts(0, models.DifficultyEasy, 10)...)
	assert.Equal(t, models.DifficultyHard, RecommendDifficulty(history))
}

func TestAnalyzeTopicStrengths(t *testing.T) {
	weak, strong := AnalyzeTopicStrengths([]models.TopicPerformance{
		{Topic: "Algebra", Correct: 9, Total: 10},
	})
	assert.Empty(t, weak)
	assert.Equal(t, []string{"Algebra"}, strong)

	weak, strong = AnalyzeTopicStrengths([]models.TopicPerformance{
		{Topic: "Geometry", Correct: 2, Total: 10},
	})
	assert.Equal(t, []string{"Geometry"}, weak)
	assert.Empty(t, strong)

	// the 50-79% band lands in neither list; empty topics are skipped
	weak, strong = AnalyzeTopicStrengths([]models.TopicPerformance{
		{Topic: "Fractions", Correct: 6, Total: 10},
		{Topic: "Unused", Correct: 0, Total: 0},
	})
	assert.Empty(t, weak)
	assert.Empty(t, strong)
}

func TestRecommendQuizzes(t *testing.T) {
	available := []QuizSummary{
		{ID: 1, Subject: "Science", Difficulty: models.DifficultyHard},
		{ID: 2, Subject: "Mathematics", Difficulty: models.DifficultyMedium, Tags: []string{"Algebra"}},
		{ID: 3, Subject: "History", Difficulty: models.DifficultyMedium},
		{ID: 4, Subject: "Mathematics", Difficulty: models.DifficultyEasy, Tags: []string{"Algebra"}},
		{ID: 5, Subject: "Science", Difficulty: models.DifficultyMedium},
		{ID: 6, Subject: "Art", Difficulty: models.DifficultyEasy},
		{ID: 7, Subject: "Music", Difficulty: models.DifficultyEasy},
	}

	got := RecommendQuizzes(available, []string{"Algebra"}, models.DifficultyMedium, []uint{1})
	// quiz 2: weak topic + difficulty (15); quiz 4: weak topic (10);
	// quizzes 3 and 5: difficulty (5), input order preserved; then quiz 6 (0).
	assert.Equal(t, []uint{2, 4, 3, 5, 6}, got)
}

func TestRecommendQuizzes_SubjectMatchIsCaseInsensitive(t *testing.T) {
	available := []QuizSummary{
		{ID: 1, Subject: "Mathematics", Difficulty: models.DifficultyHard},
		{ID: 2, Subject: "Art", Difficulty: models.DifficultyHard},
	}
	got := RecommendQuizzes(available, []string{"math"}, models.DifficultyEasy, nil)
	assert.Equal(t, []uint{1, 2}, got)
}

func TestRecommendQuizzes_ExcludesCompletedAndCapsAtFive(t *testing.T) {
	available := make([]QuizSummary, 8)
	for i := range available {
		available[i] = QuizSummary{ID: uint(i + 1), Subject: "Science", Difficulty: models.DifficultyEasy}
	}
	got := RecommendQuizzes(available, nil, models.DifficultyEasy, []uint{1, 2})
	assert.Equal(t, []uint{3, 4, 5, 6, 7}, got)
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0, RoundPercent(3, 0))
	assert.Equal(t, 33, RoundPercent(1, 3))
	assert.Equal(t, 67, RoundPercent(2, 3))
	assert.Equal(t, 100, RoundPercent(10, 10))
}
