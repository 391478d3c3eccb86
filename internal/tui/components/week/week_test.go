package week

import (
	"strings"
	"testing"

	"github.com/julianstephens/streaklit/internal/models"
)

func TestCell(t *testing.T) {
	daily := models.Habit{
		Name:          "Read",
		Frequency:     models.FrequencyDaily,
		TargetMinutes: 30,
		Completions:   map[string]float64{"2026-03-09": 30, "2026-03-10": 10},
	}
	weekly := models.Habit{
		Name:          "Swim",
		Frequency:     models.FrequencyWeekly,
		ScheduleDays:  []string{"Mon"},
		TargetMinutes: 45,
	}

	tests := []struct {
		name  string
		habit models.Habit
		date  string
		want  string
	}{
		{"target met", daily, "2026-03-09", "●"},
		{"partial", daily, "2026-03-10", "◐"},
		{"nothing logged", daily, "2026-03-11", "·"},
		{"scheduled weekly", weekly, "2026-03-09", "·"},
		{"not scheduled", weekly, "2026-03-10", " "},
		{"bad date", daily, "not-a-date", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cell(tt.habit, tt.date); got != tt.want {
				t.Errorf("Cell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestViewEmpty(t *testing.T) {
	m := New()
	if !strings.Contains(m.View(), "No active habits") {
		t.Errorf("unexpected empty view: %q", m.View())
	}
}

func TestViewRowsAndTotals(t *testing.T) {
	dates := []string{"2026-03-09", "2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13", "2026-03-14", "2026-03-15"}
	habits := []models.Habit{
		{Name: "Read", Frequency: models.FrequencyDaily, TargetMinutes: 30, Completions: map[string]float64{"2026-03-09": 30}},
		{Name: "Run", Frequency: models.FrequencyDaily, TargetMinutes: 20, Completions: map[string]float64{}},
	}
	totals := make([]DayTotal, len(dates))
	totals[0] = DayTotal{Completed: 1, Total: 2}

	m := New()
	m.SetWeek(habits, dates, totals, "2026-03-09")
	view := m.View()

	for _, want := range []string{"Read", "Run", "Mon", "Sun", "1/2", "Done"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n"); lines != 4 {
		t.Errorf("expected header, 2 habit rows and totals, got %d lines", lines)
	}
}
