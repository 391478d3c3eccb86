package achievements

import "github.com/julianstephens/streaklit/internal/models"

const (
	FirstHabit      = "first-habit"
	FirstCompletion = "first-completion"
	Streak3         = "3-day-streak"
	Streak7         = "7-day-streak"
	Streak30        = "30-day-streak"
	FiveHabits      = "5-habits"
	PerfectDay      = "all-complete"
	PerfectWeek     = "week-perfect"
)

// Catalogue is the fixed set of achievements, in display order.
var Catalogue = []models.Achievement{
	{ID: FirstHabit, Name: "Getting Started", Description: "Create your first habit", Icon: "🚀", Target: 1, Category: models.AchievementMilestone},
	{ID: FirstCompletion, Name: "First Step", Description: "Complete your first habit", Icon: "✨", Target: 1, Category: models.AchievementMilestone},
	{ID: Streak3, Name: "On Fire", Description: "Maintain a 3-day streak", Icon: "🔥", Target: 3, Category: models.AchievementStreak},
	{ID: Streak7, Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "💪", Target: 7, Category: models.AchievementStreak},
	{ID: Streak30, Name: "Unstoppable", Description: "Maintain a 30-day streak", Icon: "🏆", Target: 30, Category: models.AchievementStreak},
	{ID: FiveHabits, Name: "Diversified", Description: "Have 5 active habits", Icon: "🌈", Target: 5, Category: models.AchievementMilestone},
	{ID: PerfectDay, Name: "Perfect Day", Description: "Complete all habits in a day", Icon: "🎯", Target: 1, Category: models.AchievementCompletion},
	{ID: PerfectWeek, Name: "Week Master", Description: "Complete all habits for a whole week", Icon: "⭐", Target: 7, Category: models.AchievementConsistency},
}

// DefaultAchievements returns a fresh copy of the catalogue with no progress.
func DefaultAchievements() []models.Achievement {
	out := make([]models.Achievement, len(Catalogue))
	copy(out, Catalogue)
	return out
}

// Definition looks up a catalogue entry by id.
func Definition(id string) (models.Achievement, bool) {
	for _, a := range Catalogue {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}
