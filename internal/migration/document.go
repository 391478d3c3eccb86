package migration

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/streaklit/internal/achievements"
	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
)

// DocumentStep upgrades the persisted state document to Version. Raw runs on
// the decoded JSON object before it is bound to models.State, for fields
// whose absence cannot be told apart from a zero value after decoding.
// Typed runs on the bound state.
type DocumentStep struct {
	Version int
	Name    string
	Raw     func(doc map[string]any, today string)
	Typed   func(s *models.State, today string)
}

// DocumentSteps are applied in order to any document older than their version.
var DocumentSteps = []DocumentStep{
	{Version: 1, Name: "backfill_ui_state", Raw: backfillUIState},
	{Version: 2, Name: "merge_achievements", Typed: mergeAchievements},
	{Version: 3, Name: "normalize_habits", Typed: normalizeHabits},
}

// NewState returns the state a first run starts from.
func NewState(today string) models.State {
	return models.State{
		Version:      constants.DocumentVersion,
		Habits:       []models.Habit{},
		Schedules:    []models.Schedule{},
		Achievements: achievements.DefaultAchievements(),
		UIState:      models.DefaultUIState(today),
	}
}

// MigrateDocument decodes a persisted document and brings it to the current
// version. An empty document yields NewState. A document written by a newer
// build is rejected rather than silently downgraded.
func MigrateDocument(raw []byte, today string) (models.State, error) {
	if len(raw) == 0 {
		return NewState(today), nil
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.State{}, fmt.Errorf("failed to decode state document: %w", err)
	}
	if doc == nil {
		return NewState(today), nil
	}

	version := 0
	if v, ok := doc["version"].(float64); ok {
		version = int(v)
	}
	if version > constants.DocumentVersion {
		return models.State{}, fmt.Errorf("state document version %d is %w version %d; upgrade streaklit", version, ErrTooNew, constants.DocumentVersion)
	}

	for _, step := range DocumentSteps {
		if step.Version > version && step.Raw != nil {
			step.Raw(doc, today)
		}
	}

	bound, err := json.Marshal(doc)
	if err != nil {
		return models.State{}, fmt.Errorf("failed to re-encode state document: %w", err)
	}
	var state models.State
	if err := json.Unmarshal(bound, &state); err != nil {
		return models.State{}, fmt.Errorf("failed to bind state document: %w", err)
	}

	for _, step := range DocumentSteps {
		if step.Version > version && step.Typed != nil {
			step.Typed(&state, today)
		}
	}

	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	if state.Schedules == nil {
		state.Schedules = []models.Schedule{}
	}
	state.Version = constants.DocumentVersion
	return state, nil
}

func backfillUIState(doc map[string]any, today string) {
	ui, ok := doc["uiState"].(map[string]any)
	if !ok {
		ui = map[string]any{}
		doc["uiState"] = ui
	}

	setDefault(ui, "selectedDate", today)
	setDefault(ui, "viewMode", constants.DefaultViewMode)
	setDefault(ui, "theme", constants.DefaultTheme)
	setDefault(ui, "focusedTimer", map[string]any{"habitId": nil, "date": nil})
	setDefault(ui, "floatingTimer", map[string]any{"habitId": nil, "date": nil})
	setDefault(ui, "floatingTimerPosition", map[string]any{
		"x": constants.DefaultFloatingTimerX,
		"y": constants.DefaultFloatingTimerY,
	})
	setDefault(ui, "hasSeenTour", false)
	setDefault(ui, "tourCurrentStep", 0)

	notifications, ok := ui["notifications"].(map[string]any)
	if !ok {
		notifications = map[string]any{}
		ui["notifications"] = notifications
	}
	setDefault(notifications, "enabled", constants.DefaultNotificationsOn)
	setDefault(notifications, "reminderTime", constants.DefaultReminderTime)
	setDefault(notifications, "streakAlertsEnabled", constants.DefaultStreakAlerts)
}

func setDefault(m map[string]any, key string, value any) {
	if v, ok := m[key]; !ok || v == nil {
		m[key] = value
	}
}

func mergeAchievements(s *models.State, _ string) {
	s.Achievements = achievements.Merge(s.Achievements)
}

func normalizeHabits(s *models.State, _ string) {
	for i := range s.Habits {
		h := &s.Habits[i]
		if h.Completions == nil {
			h.Completions = map[string]float64{}
		}
		for day, m := range h.Completions {
			h.Completions[day] = models.SanitizeMinutes(m)
		}
		if h.TargetMinutes <= 0 {
			h.TargetMinutes = constants.DefaultTargetMinutes
		}
		if !h.Category.IsValid() {
			h.Category = models.CategoryOther
		}
		if !h.Frequency.IsValid() {
			h.Frequency = models.FrequencyDaily
		}
		if h.ScheduleDays == nil {
			h.ScheduleDays = []string{}
		}
		if h.CurrentStreak < 0 {
			h.CurrentStreak = 0
		}
		if h.LongestStreak < h.CurrentStreak {
			h.LongestStreak = h.CurrentStreak
		}
		h.TotalMinutes = models.SumMinutes(h.Completions)
	}
}
