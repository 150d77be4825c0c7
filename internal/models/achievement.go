package models

import "time"

type AchievementCategory string

const (
	CategoryMilestone AchievementCategory = "milestone"
	CategoryStreak    AchievementCategory = "streak"
	CategoryHealth    AchievementCategory = "health"
	CategorySavings   AchievementCategory = "savings"
)

// AchievementRecord marks a catalog achievement as unlocked. Records are never revoked.
type AchievementRecord struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
