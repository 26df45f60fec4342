package gamification

import "github.com/brightboard/quiz-service/internal/models"

// Registry is the immutable badge catalog plus the unlock predicates.
// Catalog order is the evaluation and reporting order, so CheckNewBadges
// output is deterministic.
type Registry struct {
	catalog    []models.Badge
	predicates map[string]func(Stats) bool
}

// NewRegistry builds the default catalog.
//
// The mastery badges (math-master, science-star, history-buff) are in the
// catalog but have no unlock predicate yet, so they can never unlock.
// TODO: per-subject mastery tracking (80%+ across 5 quizzes of one subject)
// needs subject counters on the profile before these can be implemented.
func NewRegistry() *Registry {
	return &Registry{
		catalog: []models.Badge{
			{ID: "first-quiz", Name: "First Steps", Description: "Complete your first quiz", Icon: "🎯", Requirement: "Complete 1 quiz", Category: models.BadgeMilestone},
			{ID: "ten-quizzes", Name: "Quiz Warrior", Description: "Complete 10 quizzes", Icon: "⚔️", Requirement: "Complete 10 quizzes", Category: models.BadgeMilestone},
			{ID: "fifty-quizzes", Name: "Quiz Legend", Description: "Complete 50 quizzes", Icon: "👑", Requirement: "Complete 50 quizzes", Category: models.BadgeMilestone},
			{ID: "perfect-score", Name: "Perfectionist", Description: "Score 100% on a quiz", Icon: "💯", Requirement: "100% accuracy on any quiz", Category: models.BadgeSpecial},
			{ID: "speed-demon", Name: "Speed Demon", Description: "Finish a quiz in under 2 minutes", Icon: "⚡", Requirement: "Complete quiz under 2 min", Category: models.BadgeSpecial},
			{ID: "streak-3", Name: "On Fire", Description: "3-day learning streak", Icon: "🔥", Requirement: "3 consecutive days", Category: models.BadgeStreak},
			{ID: "streak-7", Name: "Unstoppable", Description: "7-day learning streak", Icon: "🌟", Requirement: "7 consecutive days", Category: models.BadgeStreak},
			{ID: "streak-30", Name: "Dedicated Learner", Description: "30-day learning streak", Icon: "🏆", Requirement: "30 consecutive days", Category: models.BadgeStreak},
			{ID: "math-master", Name: "Math Master", Description: "Master Mathematics", Icon: "🧮", Requirement: "80%+ on 5 math quizzes", Category: models.BadgeMastery},
			{ID: "science-star", Name: "Science Star", Description: "Master Science", Icon: "🔬", Requirement: "80%+ on 5 science quizzes", Category: models.BadgeMastery},
			{ID: "history-buff", Name: "History Buff", Description: "Master History", Icon: "📜", Requirement: "80%+ on 5 history quizzes", Category: models.BadgeMastery},
			{ID: "level-5", Name: "Rising Star", Description: "Reach Level 5", Icon: "⭐", Requirement: "Reach Level 5", Category: models.BadgeMilestone},
			{ID: "level-10", Name: "Elite Scholar", Description: "Reach Level 10", Icon: "🌠", Requirement: "Reach Level 10", Category: models.BadgeMilestone},
		},
		predicates: map[string]func(Stats) bool{
			"first-quiz":    func(s Stats) bool { return s.QuizzesCompleted >= 1 },
			"ten-quizzes":   func(s Stats) bool { return s.QuizzesCompleted >= 10 },
			"fifty-quizzes": func(s Stats) bool { return s.QuizzesCompleted >= 50 },
			"perfect-score": func(s Stats) bool { return s.LastAccuracy == 100 },
			"speed-demon":   func(s Stats) bool { return s.LastTimeSpent > 0 && s.LastTimeSpent < 120 },
			"streak-3":      func(s Stats) bool { return s.Streak >= 3 },
			"streak-7":      func(s Stats) bool { return s.Streak >= 7 },
			"streak-30":     func(s Stats) bool { return s.Streak >= 30 },
			"level-5":       func(s Stats) bool { return s.Level >= 5 },
			"level-10":      func(s Stats) bool { return s.Level >= 10 },
		},
	}
}

// Badges returns the full catalog in display order.
func (r *Registry) Badges() []models.Badge {
	out := make([]models.Badge, len(r.catalog))
	copy(out, r.catalog)
	return out
}

// Get looks up a single catalog entry by id.
func (r *Registry) Get(id string) (models.Badge, bool) {
	for _, b := range r.catalog {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

// CheckNewBadges returns the ids of badges whose predicate holds for stats and
// that are not already owned, in catalog order. Badges without a predicate
// never qualify.
func (r *Registry) CheckNewBadges(owned []string, stats Stats) []string {
	ownedSet := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	newBadges := []string{}
	for _, badge := range r.catalog {
		if _, has := ownedSet[badge.ID]; has {
			continue
		}
		pred, ok := r.predicates[badge.ID]
		if ok && pred(stats) {
			newBadges = append(newBadges, badge.ID)
		}
	}
	return newBadges
}
