package scheduler

import (
	"testing"

	"github.com/julianstephens/streaklit/internal/models"
)

// 2026-03-11 is a Wednesday
const wed = "2026-03-11"

func habit(id string, target int, opts ...func(*models.Habit)) models.Habit {
	h := models.Habit{
		ID:            id,
		Name:          id,
		Frequency:     models.FrequencyDaily,
		TargetMinutes: target,
		Completions:   map[string]float64{},
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func onDays(days ...string) func(*models.Habit) {
	return func(h *models.Habit) {
		h.Frequency = models.FrequencyCustom
		h.ScheduleDays = days
	}
}

func withStreak(n int) func(*models.Habit) {
	return func(h *models.Habit) { h.CurrentStreak = n }
}

func logged(minutes float64) func(*models.Habit) {
	return func(h *models.Habit) { h.Completions[wed] = minutes }
}

func byHabit(blocks []models.Schedule) map[string]models.Schedule {
	m := map[string]models.Schedule{}
	for _, b := range blocks {
		m[b.HabitID] = b
	}
	return m
}

func TestPlan_RespectsWeekdays(t *testing.T) {
	habits := []models.Habit{
		habit("sat", 30, onDays("Sat")),
		habit("wed", 30, onDays("Mon", "Wed")),
	}

	blocks, err := New().Plan(wed, habits, nil, "08:00", "18:00")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	got := byHabit(blocks)
	if _, ok := got["sat"]; ok {
		t.Error("Saturday habit planned on a Wednesday")
	}
	if _, ok := got["wed"]; !ok {
		t.Error("Wednesday habit missing from plan")
	}
}

func TestPlan_SkipsDoneArchivedAndPlanned(t *testing.T) {
	habits := []models.Habit{
		habit("done", 30, logged(30)),
		habit("archived", 30, func(h *models.Habit) { h.IsArchived = true }),
		habit("planned", 30),
		habit("open", 30),
	}
	existing := []models.Schedule{{HabitID: "planned", Date: wed, StartTime: "12:00", Duration: 30}}

	blocks, err := New().Plan(wed, habits, existing, "08:00", "18:00")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].HabitID != "open" {
		t.Errorf("expected only the open habit, got %+v", blocks)
	}
}

func TestPlan_RemainingMinutes(t *testing.T) {
	habits := []models.Habit{habit("partial", 45, logged(20.5))}

	blocks, err := New().Plan(wed, habits, nil, "08:00", "18:00")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.StartTime != "08:00" || b.EndTime != "08:25" || b.Duration != 25 {
		t.Errorf("unexpected block: %+v", b)
	}
	if b.Date != wed || b.ID != "" {
		t.Errorf("block should carry the date and no id: %+v", b)
	}
}

func TestPlan_AvoidsExistingBlocks(t *testing.T) {
	existing := []models.Schedule{
		{HabitID: "other", Date: wed, StartTime: "08:00", EndTime: "09:00"},
		{HabitID: "other2", Date: wed, StartTime: "09:10", Duration: 60},
		{HabitID: "elsewhere", Date: "2026-03-12", StartTime: "10:10", EndTime: "12:00"},
	}
	habits := []models.Habit{habit("a", 30), habit("b", 10)}

	blocks, err := New().Plan(wed, habits, existing, "08:00", "18:00")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	got := byHabit(blocks)
	// b fits the 09:00-09:10 gap; a waits until 10:10
	if got["b"].StartTime != "09:00" {
		t.Errorf("b starts at %s, want 09:00", got["b"].StartTime)
	}
	if got["a"].StartTime != "10:10" || got["a"].EndTime != "10:40" {
		t.Errorf("a planned %s-%s, want 10:10-10:40", got["a"].StartTime, got["a"].EndTime)
	}
	if blocks[0].HabitID != "b" {
		t.Error("blocks should be sorted by start time")
	}
}

func TestPlan_LongestStreakFirst(t *testing.T) {
	habits := []models.Habit{
		habit("fresh", 60),
		habit("streaky", 60, withStreak(12)),
	}

	// only one hour is free
	blocks, err := New().Plan(wed, habits, nil, "08:00", "09:00")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].HabitID != "streaky" {
		t.Errorf("expected the streak at stake to win the only slot, got %+v", blocks)
	}
}

func TestPlan_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		start, end string
	}{
		{"bad date", "2026-13-01", "08:00", "18:00"},
		{"bad start", wed, "8am", "18:00"},
		{"bad end", wed, "08:00", "25:00"},
		{"end before start", wed, "18:00", "08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New().Plan(tt.date, nil, nil, tt.start, tt.end); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFindFreeBlocks(t *testing.T) {
	fixed := []timeBlock{{start: 60, end: 120}, {start: 90, end: 150}, {start: 200, end: 300}}
	got := findFreeBlocks(0, 240, fixed)
	want := []timeBlock{{0, 60}, {150, 200}}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %v, want %v", i, got[i], want[i])
		}
	}
}
