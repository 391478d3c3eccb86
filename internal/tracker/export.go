package tracker

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/streak"
	"github.com/julianstephens/streaklit/internal/utils"
)

// Export writes every habit as an indented JSON export document
func (t *Tracker) Export(w io.Writer) error {
	var doc models.ExportDocument
	t.read(func() {
		doc = models.ExportDocument{
			Habits:     cloneHabits(t.state.Habits),
			ExportedAt: t.clock.Now().UTC().Format(time.RFC3339),
		}
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Import appends the habits of an export document whose ids are not already
// present. Derived fields are recomputed rather than trusted. It returns the
// number of habits added.
func (t *Tracker) Import(r io.Reader) (int, error) {
	var doc models.ExportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to read import: %w", err)
	}

	added := 0
	t.update(func(now time.Time) []Event {
		today := utils.FormatDate(now)
		known := make(map[string]bool, len(t.state.Habits))
		for _, h := range t.state.Habits {
			known[h.ID] = true
		}

		var events []Event
		for _, h := range doc.Habits {
			if strings.TrimSpace(h.Name) == "" {
				continue
			}
			if h.ID == "" {
				h.ID = uuid.NewString()
			}
			if known[h.ID] {
				continue
			}
			known[h.ID] = true

			h = importedHabit(h, today, now)
			t.state.Habits = append(t.state.Habits, h)
			events = append(events, Event{Kind: HabitsChanged, HabitID: h.ID})
			added++
		}
		if added == 0 {
			return nil
		}
		return append(events, t.evaluateLocked(now, sigHabitCount|sigActiveCount|sigCompletion|sigStreak|sigPerfect)...)
	})
	return added, nil
}

func importedHabit(h models.Habit, today string, now time.Time) models.Habit {
	h.Name = strings.TrimSpace(h.Name)
	completions := make(map[string]float64, len(h.Completions))
	for day, m := range h.Completions {
		if utils.ValidateDate(day) {
			completions[day] = models.SanitizeMinutes(m)
		}
	}
	h.Completions = completions

	if h.TargetMinutes <= 0 {
		h.TargetMinutes = constants.DefaultTargetMinutes
	}
	if !h.Category.IsValid() {
		h.Category = models.CategoryOther
	}
	if !h.Frequency.IsValid() {
		h.Frequency = models.FrequencyDaily
	}
	h.ScheduleDays = models.NormalizeSchedule(h.ScheduleDays)
	if h.Color == "" {
		h.Color = constants.HabitColors[0]
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now

	h.TotalMinutes = models.SumMinutes(h.Completions)
	h.CurrentStreak = streak.Current(h.Completions, h.TargetMinutes, today)
	h.LongestStreak = max(h.LongestStreak, h.CurrentStreak, streak.Longest(h.Completions, h.TargetMinutes))
	return h
}
