package models

type BadgeCategory string

const (
	BadgeMilestone BadgeCategory = "milestone"
	BadgeMastery   BadgeCategory = "mastery"
	BadgeStreak    BadgeCategory = "streak"
	BadgeSpecial   BadgeCategory = "special"
)

// Badge is a static catalog entry. The catalog is immutable configuration
// owned by the gamification registry, not session state.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Requirement string        `json:"requirement"`
	Category    BadgeCategory `json:"category"`
}
