package tracker

import (
	"time"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

// WeeklyStats is the dashboard headline. Today's counts cover only habits
// scheduled today; rates are percentages.
type WeeklyStats struct {
	TotalHabits          int     `json:"totalHabits"`
	CompletedToday       int     `json:"completedToday"`
	CompletionRate       float64 `json:"completionRate"`
	WeeklyCompletionRate float64 `json:"weeklyCompletionRate"`
	CurrentStreak        int     `json:"currentStreak"`
}

// DayProgress is one day of the current week
type DayProgress struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// dayCounts returns how many active habits are scheduled on date and how
// many of those met their target
func dayCounts(habits []models.Habit, date string, wd time.Weekday) (completed, total int) {
	for _, h := range habits {
		if h.IsArchived || !h.IsScheduledOn(wd) {
			continue
		}
		total++
		if h.IsComplete(date) {
			completed++
		}
	}
	return completed, total
}

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

// GetWeeklyStats summarizes today and the current Monday-start week
func (t *Tracker) GetWeeklyStats() WeeklyStats {
	var stats WeeklyStats
	t.read(func() {
		now := t.clock.Now()
		today := utils.FormatDate(now)

		stats.CompletedToday, stats.TotalHabits = dayCounts(t.state.Habits, today, now.Weekday())
		stats.CompletionRate = percent(stats.CompletedToday, stats.TotalHabits)

		weekCompleted, weekTotal := 0, 0
		for _, p := range t.weeklyProgressLocked(now) {
			weekCompleted += p.Completed
			weekTotal += p.Total
		}
		stats.WeeklyCompletionRate = percent(weekCompleted, weekTotal)
		stats.CurrentStreak = t.bestStreakLocked()
	})
	return stats
}

// GetWeeklyProgress returns per-day counts for the current Monday-start week
func (t *Tracker) GetWeeklyProgress() []DayProgress {
	var out []DayProgress
	t.read(func() { out = t.weeklyProgressLocked(t.clock.Now()) })
	return out
}

func (t *Tracker) weeklyProgressLocked(now time.Time) []DayProgress {
	start := utils.StartOfWeek(now)
	out := make([]DayProgress, 7)
	for i := range out {
		day := start.AddDate(0, 0, i)
		date := utils.FormatDate(day)
		completed, total := dayCounts(t.state.Habits, date, day.Weekday())
		out[i] = DayProgress{Date: date, Completed: completed, Total: total}
	}
	return out
}

// bestStreakLocked is the highest stored current streak among active habits
func (t *Tracker) bestStreakLocked() int {
	best := 0
	for _, h := range t.state.Habits {
		if !h.IsArchived && h.CurrentStreak > best {
			best = h.CurrentStreak
		}
	}
	return best
}

// perfectLocked reports whether at least one active habit is scheduled on
// date and all of them met their target
func (t *Tracker) perfectLocked(date string) bool {
	wd, err := utils.WeekdayOf(date)
	if err != nil {
		return false
	}
	completed, total := dayCounts(t.state.Habits, date, wd)
	return total > 0 && completed == total
}

// perfectWeekDaysLocked counts consecutive perfect days from Monday of the
// current week, up to and including today
func (t *Tracker) perfectWeekDaysLocked(now time.Time) int {
	today := utils.StartOfDay(now)
	count := 0
	for day := utils.StartOfWeek(now); !day.After(today); day = day.AddDate(0, 0, 1) {
		if !t.perfectLocked(utils.FormatDate(day)) {
			break
		}
		count++
	}
	return count
}
