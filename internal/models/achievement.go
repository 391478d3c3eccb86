package models

import "time"

type AchievementCategory string

const (
	AchievementStreak      AchievementCategory = "streak"
	AchievementCompletion  AchievementCategory = "completion"
	AchievementConsistency AchievementCategory = "consistency"
	AchievementMilestone   AchievementCategory = "milestone"
)

// Achievement is a predefined milestone with progress toward a fixed target
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	UnlockedAt  *time.Time          `json:"unlockedAt,omitempty"`
	Progress    int                 `json:"progress"`
	Target      int                 `json:"target"`
	Category    AchievementCategory `json:"category"`
}

func (a Achievement) IsUnlocked() bool {
	return a.UnlockedAt != nil
}
