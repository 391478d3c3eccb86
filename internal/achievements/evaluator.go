// Package achievements holds the fixed achievement catalogue and the pure
// functions that map habit state to achievement progress.
package achievements

import (
	"time"

	"github.com/julianstephens/streaklit/internal/models"
)

// Signals is the habit-state summary achievement progress is derived from.
// Nil fields are not evaluated, so a caller only recomputes what a mutation
// can have changed.
type Signals struct {
	HabitCount       *int  // habits ever in the list (first-habit)
	ActiveHabitCount *int  // non-archived habits (5-habits)
	HasCompletion    *bool // any habit has a met day (first-completion)
	BestStreak       *int  // max current streak across active habits
	PerfectToday     *bool // every habit scheduled today is met
	PerfectWeekDays  *int  // consecutive perfect days from Monday this week
}

// Rule maps signals to a progress value for one achievement. ok is false
// when the rule has nothing to say for these signals.
type Rule func(s Signals, current models.Achievement) (progress int, ok bool)

// Rules binds each catalogue id to its progress rule. New achievement types
// register here without touching tracker mutation code.
var Rules = map[string]Rule{
	FirstHabit: func(s Signals, _ models.Achievement) (int, bool) {
		if s.HabitCount == nil {
			return 0, false
		}
		return *s.HabitCount, true
	},
	FiveHabits: func(s Signals, _ models.Achievement) (int, bool) {
		if s.ActiveHabitCount == nil {
			return 0, false
		}
		return *s.ActiveHabitCount, true
	},
	FirstCompletion: func(s Signals, cur models.Achievement) (int, bool) {
		if s.HasCompletion == nil {
			return 0, false
		}
		if *s.HasCompletion || cur.IsUnlocked() {
			return 1, true
		}
		return 0, true
	},
	Streak3:  streakRule,
	Streak7:  streakRule,
	Streak30: streakRule,
	PerfectDay: func(s Signals, cur models.Achievement) (int, bool) {
		// only ever raised
		if s.PerfectToday == nil || !*s.PerfectToday {
			return 0, false
		}
		return 1, true
	},
	// best week so far; an open or edited day never lowers it
	PerfectWeek: func(s Signals, cur models.Achievement) (int, bool) {
		if s.PerfectWeekDays == nil {
			return 0, false
		}
		return max(*s.PerfectWeekDays, cur.Progress), true
	},
}

func streakRule(s Signals, _ models.Achievement) (int, bool) {
	if s.BestStreak == nil {
		return 0, false
	}
	return *s.BestStreak, true
}

// Clamp bounds progress to [0, target].
func Clamp(progress, target int) int {
	if progress < 0 {
		return 0
	}
	if progress > target {
		return target
	}
	return progress
}

// SetProgress applies one progress value to a, stamping UnlockedAt the first
// time progress reaches the target. It reports whether a was newly unlocked.
func SetProgress(a models.Achievement, progress int, now time.Time) (models.Achievement, bool) {
	a.Progress = Clamp(progress, a.Target)
	if a.UnlockedAt == nil && a.Target > 0 && a.Progress >= a.Target {
		ts := now
		a.UnlockedAt = &ts
		return a, true
	}
	return a, false
}

// Evaluate applies signals to current and returns the updated list plus the
// ids of achievements unlocked by this pass. current is not modified.
func Evaluate(current []models.Achievement, s Signals, now time.Time) ([]models.Achievement, []string) {
	out := make([]models.Achievement, len(current))
	copy(out, current)

	var unlocked []string
	for i, a := range out {
		rule, ok := Rules[a.ID]
		if !ok {
			continue
		}
		progress, ok := rule(s, a)
		if !ok {
			continue
		}
		updated, isNew := SetProgress(a, progress, now)
		out[i] = updated
		if isNew {
			unlocked = append(unlocked, a.ID)
		}
	}
	return out, unlocked
}

// Merge returns current with any catalogue entries it lacks appended, and
// catalogue metadata (name, target, ...) refreshed on the ones it has.
// Progress and UnlockedAt are preserved.
func Merge(current []models.Achievement) []models.Achievement {
	byID := make(map[string]models.Achievement, len(current))
	for _, a := range current {
		byID[a.ID] = a
	}

	out := make([]models.Achievement, 0, len(Catalogue))
	for _, def := range Catalogue {
		a := def
		if existing, ok := byID[def.ID]; ok {
			a.Progress = Clamp(existing.Progress, def.Target)
			a.UnlockedAt = existing.UnlockedAt
		}
		out = append(out, a)
	}
	return out
}
