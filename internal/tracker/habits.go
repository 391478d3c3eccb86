package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/streak"
	"github.com/julianstephens/streaklit/internal/utils"
)

// AddHabit creates a habit and appends it to the list
func (t *Tracker) AddHabit(in models.HabitInput) (models.Habit, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Habit{}, ErrInvalidName
	}

	var created models.Habit
	t.update(func(now time.Time) []Event {
		color := constants.HabitColors[len(t.state.Habits)%len(constants.HabitColors)]
		h := models.NewHabit(in, uuid.NewString(), color, now)
		t.state.Habits = append(t.state.Habits, h)
		created = h.Clone()

		events := []Event{{Kind: HabitsChanged, HabitID: h.ID}}
		return append(events, t.evaluateLocked(now, sigHabitCount|sigActiveCount)...)
	})
	return created, nil
}

// UpdateHabit merges the non-nil fields of patch into the habit. An unknown
// id is ignored.
func (t *Tracker) UpdateHabit(id string, patch models.HabitPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrInvalidName
	}

	t.update(func(now time.Time) []Event {
		i := t.habitIndexLocked(id)
		if i < 0 {
			return nil
		}
		h := &t.state.Habits[i]

		if patch.Name != nil {
			h.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			h.Description = *patch.Description
		}
		if patch.Category != nil && patch.Category.IsValid() {
			h.Category = *patch.Category
		}
		if patch.Color != nil && *patch.Color != "" {
			h.Color = *patch.Color
		}
		if patch.Icon != nil {
			h.Icon = *patch.Icon
		}
		if patch.Frequency != nil && patch.Frequency.IsValid() {
			h.Frequency = *patch.Frequency
		}
		if patch.ScheduleDays != nil {
			h.ScheduleDays = models.NormalizeSchedule(patch.ScheduleDays)
		}

		var signals signalSet
		if patch.TargetMinutes != nil {
			target := *patch.TargetMinutes
			if target <= 0 {
				target = constants.DefaultTargetMinutes
			}
			if target != h.TargetMinutes {
				h.TargetMinutes = target
				t.refreshStreakLocked(h, utils.FormatDate(now))
				signals |= sigCompletion
			}
		}
		if patch.Frequency != nil || patch.ScheduleDays != nil {
			signals |= sigPerfect
		}
		h.UpdatedAt = now

		events := []Event{{Kind: HabitsChanged, HabitID: id}}
		if signals != 0 {
			events = append(events, t.evaluateLocked(now, signals)...)
		}
		return events
	})
	return nil
}

// refreshStreakLocked recomputes the current streak as of today, for when
// the target rather than a completion changed.
func (t *Tracker) refreshStreakLocked(h *models.Habit, today string) {
	h.CurrentStreak = streak.Current(h.Completions, h.TargetMinutes, today)
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
}

// DeleteHabit removes the habit together with its schedules and any timer
// or UI pointer referencing it
func (t *Tracker) DeleteHabit(id string) {
	t.update(func(now time.Time) []Event {
		i := t.habitIndexLocked(id)
		if i < 0 {
			return nil
		}
		t.state.Habits = append(t.state.Habits[:i], t.state.Habits[i+1:]...)

		schedules := t.state.Schedules[:0]
		for _, s := range t.state.Schedules {
			if s.HabitID != id {
				schedules = append(schedules, s)
			}
		}
		t.state.Schedules = schedules

		events := []Event{{Kind: HabitsChanged, HabitID: id}}
		if t.state.ActiveTimer != nil && t.state.ActiveTimer.HabitID == id {
			t.state.ActiveTimer = nil
			events = append(events, Event{Kind: TimerChanged, HabitID: id})
		}

		ui := &t.state.UIState
		if ref := ui.FloatingTimer.HabitID; ref != nil && *ref == id {
			ui.FloatingTimer = models.TimerRef{}
		}
		if ref := ui.FocusedTimer.HabitID; ref != nil && *ref == id {
			ui.FocusedTimer = models.TimerRef{}
		}
		if ui.SelectedHabitID != nil && *ui.SelectedHabitID == id {
			ui.SelectedHabitID = nil
		}

		return append(events, t.evaluateLocked(now, sigActiveCount|sigStreak|sigPerfect)...)
	})
}

// ArchiveHabit hides the habit from active views and stats. Its history is
// kept.
func (t *Tracker) ArchiveHabit(id string) {
	t.setArchived(id, true)
}

// UnarchiveHabit returns an archived habit to the active list
func (t *Tracker) UnarchiveHabit(id string) {
	t.setArchived(id, false)
}

func (t *Tracker) setArchived(id string, archived bool) {
	t.update(func(now time.Time) []Event {
		i := t.habitIndexLocked(id)
		if i < 0 || t.state.Habits[i].IsArchived == archived {
			return nil
		}
		t.state.Habits[i].IsArchived = archived
		t.state.Habits[i].UpdatedAt = now

		events := []Event{{Kind: HabitsChanged, HabitID: id}}
		return append(events, t.evaluateLocked(now, sigActiveCount|sigStreak|sigPerfect)...)
	})
}

// ToggleHabitCompletion logs minutes against habitID on date. With minutes
// nil it toggles: any logged time clears the day, otherwise the day is set
// to the full target. Unknown habits and malformed dates are ignored.
func (t *Tracker) ToggleHabitCompletion(habitID, date string, minutes *float64) {
	if !utils.ValidateDate(date) {
		logger.Warn("Ignoring completion for malformed date", "habit", habitID, "date", date)
		return
	}

	t.update(func(now time.Time) []Event {
		i := t.habitIndexLocked(habitID)
		if i < 0 {
			return nil
		}
		h := &t.state.Habits[i]

		var value float64
		switch {
		case minutes != nil:
			value = models.SanitizeMinutes(*minutes)
		case h.Completions[date] > 0:
			value = 0
		default:
			value = float64(h.TargetMinutes)
		}

		events := t.applyCompletionLocked(i, date, value, now)

		// keep a paused timer on this day in step with the manual entry
		if tm := t.state.ActiveTimer; tm != nil && !tm.IsRunning && tm.Matches(habitID, date) {
			tm.AccumulatedTime = value
			events = append(events, Event{Kind: TimerChanged, HabitID: habitID, Date: date})
		}
		return events
	})
}

// applyCompletionLocked writes minutes for date and recomputes everything
// derived from the completions map
func (t *Tracker) applyCompletionLocked(i int, date string, minutes float64, now time.Time) []Event {
	h := &t.state.Habits[i]
	if h.Completions == nil {
		h.Completions = map[string]float64{}
	}
	h.Completions[date] = models.SanitizeMinutes(minutes)

	h.CurrentStreak = streak.AfterLog(h.Completions, h.TargetMinutes, date, utils.FormatDate(now))
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
	h.TotalMinutes = models.SumMinutes(h.Completions)
	h.UpdatedAt = now

	events := []Event{{Kind: CompletionChanged, HabitID: h.ID, Date: date}}
	return append(events, t.evaluateLocked(now, sigCompletion|sigStreak|sigPerfect)...)
}

// MoveHabitUp swaps the habit with the one before it
func (t *Tracker) MoveHabitUp(id string) {
	t.move(id, -1)
}

// MoveHabitDown swaps the habit with the one after it
func (t *Tracker) MoveHabitDown(id string) {
	t.move(id, 1)
}

func (t *Tracker) move(id string, delta int) {
	t.update(func(time.Time) []Event {
		i := t.habitIndexLocked(id)
		j := i + delta
		if i < 0 || j < 0 || j >= len(t.state.Habits) {
			return nil
		}
		t.state.Habits[i], t.state.Habits[j] = t.state.Habits[j], t.state.Habits[i]
		return []Event{{Kind: HabitsChanged, HabitID: id}}
	})
}

// Habits returns every habit, archived included, in display order
func (t *Tracker) Habits() []models.Habit {
	var out []models.Habit
	t.read(func() { out = cloneHabits(t.state.Habits) })
	return out
}

// ActiveHabits returns the non-archived habits in display order
func (t *Tracker) ActiveHabits() []models.Habit {
	var out []models.Habit
	t.read(func() {
		out = []models.Habit{}
		for _, h := range t.state.Habits {
			if !h.IsArchived {
				out = append(out, h.Clone())
			}
		}
	})
	return out
}

// Habit looks up a habit by id
func (t *Tracker) Habit(id string) (models.Habit, bool) {
	var (
		h  models.Habit
		ok bool
	)
	t.read(func() {
		if i := t.habitIndexLocked(id); i >= 0 {
			h, ok = t.state.Habits[i].Clone(), true
		}
	})
	return h, ok
}

// HabitsForDate returns the active habits scheduled on date
func (t *Tracker) HabitsForDate(date string) []models.Habit {
	wd, err := utils.WeekdayOf(date)
	if err != nil {
		return nil
	}

	var out []models.Habit
	t.read(func() {
		out = []models.Habit{}
		for _, h := range t.state.Habits {
			if !h.IsArchived && h.IsScheduledOn(wd) {
				out = append(out, h.Clone())
			}
		}
	})
	return out
}

// GetHabitStreak returns the stored current streak, 0 for unknown habits
func (t *Tracker) GetHabitStreak(id string) int {
	var n int
	t.read(func() {
		if i := t.habitIndexLocked(id); i >= 0 {
			n = t.state.Habits[i].CurrentStreak
		}
	})
	return n
}

// CalculateStreakForDate returns the run of met days ending on date, or on
// yesterday when date is in the future
func (t *Tracker) CalculateStreakForDate(id, date string) int {
	var n int
	t.read(func() {
		if i := t.habitIndexLocked(id); i >= 0 {
			h := t.state.Habits[i]
			n = streak.ForDate(h.Completions, h.TargetMinutes, date, utils.FormatDate(t.clock.Now()))
		}
	})
	return n
}
