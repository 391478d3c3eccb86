package tracker

import (
	"time"

	"github.com/julianstephens/streaklit/internal/achievements"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

// signalSet selects which achievement signals a mutation can have changed
type signalSet uint8

const (
	sigHabitCount signalSet = 1 << iota
	sigActiveCount
	sigCompletion
	sigStreak
	sigPerfect
)

func (t *Tracker) signalsLocked(set signalSet, now time.Time) achievements.Signals {
	var s achievements.Signals

	if set&sigHabitCount != 0 {
		n := len(t.state.Habits)
		s.HabitCount = &n
	}
	if set&sigActiveCount != 0 {
		n := 0
		for _, h := range t.state.Habits {
			if !h.IsArchived {
				n++
			}
		}
		s.ActiveHabitCount = &n
	}
	if set&sigCompletion != 0 {
		found := false
		for _, h := range t.state.Habits {
			for day := range h.Completions {
				if h.IsComplete(day) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		s.HasCompletion = &found
	}
	if set&sigStreak != 0 {
		best := t.bestStreakLocked()
		s.BestStreak = &best
	}
	if set&sigPerfect != 0 {
		today := t.perfectLocked(utils.FormatDate(now))
		week := t.perfectWeekDaysLocked(now)
		s.PerfectToday = &today
		s.PerfectWeekDays = &week
	}
	return s
}

// evaluateLocked recomputes the selected achievement progress and returns
// the events describing what moved
func (t *Tracker) evaluateLocked(now time.Time, set signalSet) []Event {
	updated, unlocked := achievements.Evaluate(t.state.Achievements, t.signalsLocked(set, now), now)

	changed := false
	for i := range updated {
		if updated[i].Progress != t.state.Achievements[i].Progress {
			changed = true
			break
		}
	}
	t.state.Achievements = updated

	var events []Event
	if changed || len(unlocked) > 0 {
		events = append(events, Event{Kind: AchievementsChanged})
	}
	for _, id := range unlocked {
		events = append(events, t.unlockedEventLocked(id))
	}
	return events
}

func (t *Tracker) unlockedEventLocked(id string) Event {
	for _, a := range t.state.Achievements {
		if a.ID == id {
			a := cloneAchievements([]models.Achievement{a})[0]
			return Event{Kind: AchievementUnlocked, Achievement: &a}
		}
	}
	return Event{Kind: AchievementUnlocked}
}

// UnlockAchievement marks an achievement complete regardless of progress.
// The first unlock time is kept on repeated calls.
func (t *Tracker) UnlockAchievement(id string) {
	t.update(func(now time.Time) []Event {
		for i, a := range t.state.Achievements {
			if a.ID != id {
				continue
			}
			a.Progress = a.Target
			if a.UnlockedAt != nil {
				if t.state.Achievements[i].Progress == a.Progress {
					return nil
				}
				t.state.Achievements[i] = a
				return []Event{{Kind: AchievementsChanged}}
			}
			ts := now
			a.UnlockedAt = &ts
			t.state.Achievements[i] = a
			return []Event{{Kind: AchievementsChanged}, t.unlockedEventLocked(id)}
		}
		return nil
	})
}

// UpdateAchievementProgress sets progress directly, clamped to the target
func (t *Tracker) UpdateAchievementProgress(id string, progress int) {
	t.update(func(now time.Time) []Event {
		for i, a := range t.state.Achievements {
			if a.ID != id {
				continue
			}
			updated, isNew := achievements.SetProgress(a, progress, now)
			if updated.Progress == a.Progress && !isNew {
				return nil
			}
			t.state.Achievements[i] = updated
			events := []Event{{Kind: AchievementsChanged}}
			if isNew {
				events = append(events, t.unlockedEventLocked(id))
			}
			return events
		}
		return nil
	})
}

// Achievements returns the catalogue with current progress
func (t *Tracker) Achievements() []models.Achievement {
	var out []models.Achievement
	t.read(func() { out = cloneAchievements(t.state.Achievements) })
	return out
}
