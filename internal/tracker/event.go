package tracker

import "github.com/julianstephens/streaklit/internal/models"

type EventKind int

const (
	HabitsChanged EventKind = iota
	CompletionChanged
	TimerChanged
	SchedulesChanged
	AchievementsChanged
	AchievementUnlocked
	UIStateChanged
)

func (k EventKind) String() string {
	switch k {
	case HabitsChanged:
		return "habits-changed"
	case CompletionChanged:
		return "completion-changed"
	case TimerChanged:
		return "timer-changed"
	case SchedulesChanged:
		return "schedules-changed"
	case AchievementsChanged:
		return "achievements-changed"
	case AchievementUnlocked:
		return "achievement-unlocked"
	case UIStateChanged:
		return "ui-state-changed"
	default:
		return "unknown"
	}
}

// Event describes one applied change. HabitID and Date are set for habit,
// completion and timer events; Achievement is set for AchievementUnlocked.
type Event struct {
	Kind        EventKind
	HabitID     string
	Date        string
	Achievement *models.Achievement
}
