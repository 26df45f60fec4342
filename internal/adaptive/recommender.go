// Package adaptive derives difficulty suggestions and topic classifications
// from historical performance. Like the gamification engine, every function is
// total: empty or degenerate input produces a defined default.
package adaptive

import (
	"math"
	"sort"
	"strings"

	"github.com/brightboard/quiz-service/internal/models"
)

const (
	// recentWindow caps how many attempts feed the difficulty decision.
	recentWindow = 5
	// minSamples is the minimum history needed before stepping difficulty up.
	minSamples = 3

	strongThreshold = 80 // percent
	weakThreshold   = 50 // percent
)

// AttemptPerformance is one historical attempt, newest first in the slices
// passed to RecommendDifficulty.
type AttemptPerformance struct {
	Accuracy   int
	TimeSpent  float64
	Difficulty models.Difficulty
}

// RecommendDifficulty suggests the next quiz difficulty from recent attempts.
// It is a hysteresis band, not a mastery model: stepping up requires both a
// high mean and at least minSamples attempts, so a single lucky run does not
// cause oscillation. Stepping down on a low mean has no sample floor.
func RecommendDifficulty(recentNewestFirst []AttemptPerformance) models.Difficulty {
	if len(recentNewestFirst) == 0 {
		return models.DifficultyEasy
	}

	window := recentNewestFirst
	if len(window) > recentWindow {
		window = window[:recentWindow]
	}

	sum := 0
	for _, a := range window {
		sum += a.Accuracy
	}
	mean := float64(sum) / float64(len(window))
	current := window[0].Difficulty
	if current == "" {
		current = models.DifficultyEasy
	}

	if mean >= strongThreshold && len(window) >= minSamples {
		switch current {
		case models.DifficultyEasy:
			return models.DifficultyMedium
		default:
			return models.DifficultyHard
		}
	}

	if mean < weakThreshold {
		switch current {
		case models.DifficultyHard:
			return models.DifficultyMedium
		default:
			return models.DifficultyEasy
		}
	}

	return current
}

// AnalyzeTopicStrengths splits topics into weak (<50%) and strong (>=80%)
// lists. Topics with no answered questions are skipped; the 50-79% band lands
// in neither list.
func AnalyzeTopicStrengths(topicPerformance []models.TopicPerformance) (weak, strong []string) {
	weak = []string{}
	strong = []string{}
	for _, tp := range topicPerformance {
		if tp.Total == 0 {
			continue
		}
		accuracy := float64(tp.Correct) / float64(tp.Total) * 100
		if accuracy >= strongThreshold {
			strong = append(strong, tp.Topic)
		} else if accuracy < weakThreshold {
			weak = append(weak, tp.Topic)
		}
	}
	return weak, strong
}

// QuizSummary is the slice of quiz data the ranker needs.
type QuizSummary struct {
	ID         uint
	Subject    string
	Difficulty models.Difficulty
	Tags       []string
}

// RecommendQuizzes ranks uncompleted quizzes: +10 for covering a weak topic,
// +5 for matching the recommended difficulty, top 5 returned. Ties keep input
// order, so the sort must be stable.
func RecommendQuizzes(available []QuizSummary, weakTopics []string, recommended models.Difficulty, completedIDs []uint) []uint {
	completed := make(map[uint]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	type scored struct {
		id    uint
		score int
	}
	candidates := []scored{}
	for _, quiz := range available {
		if _, done := completed[quiz.ID]; done {
			continue
		}
		score := 0
		if coversWeakTopic(quiz, weakTopics) {
			score += 10
		}
		if quiz.Difficulty == recommended {
			score += 5
		}
		candidates = append(candidates, scored{id: quiz.ID, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	ids := make([]uint, len(candidates))
	for i, c := range candidates {
		ids[i] = c.id
	}
	return ids
}

func coversWeakTopic(quiz QuizSummary, weakTopics []string) bool {
	for _, topic := range weakTopics {
		for _, tag := range quiz.Tags {
			if tag == topic {
				return true
			}
		}
		if strings.Contains(strings.ToLower(quiz.Subject), strings.ToLower(topic)) {
			return true
		}
	}
	return false
}

// RoundPercent converts a correct/total ratio to a rounded integer percent,
// returning 0 when total is 0.
func RoundPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
