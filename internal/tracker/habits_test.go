package tracker

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/julianstephens/streaklit/internal/achievements"
	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
)

func TestAddHabitDefaults(t *testing.T) {
	tr, _, p := newTestTracker(t, tue)

	first := addHabit(t, tr, models.HabitInput{Name: "  Read  "})
	second := addHabit(t, tr, models.HabitInput{Name: "Run", Category: models.CategoryFitness, TargetMinutes: 45})

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("expected distinct ids, got %q and %q", first.ID, second.ID)
	}
	if first.Name != "Read" {
		t.Errorf("expected trimmed name, got %q", first.Name)
	}
	if first.TargetMinutes != constants.DefaultTargetMinutes {
		t.Errorf("expected default target, got %d", first.TargetMinutes)
	}
	if first.Category != models.CategoryOther || first.Frequency != models.FrequencyDaily {
		t.Errorf("expected other/daily defaults, got %s/%s", first.Category, first.Frequency)
	}
	if first.Color != constants.HabitColors[0] || second.Color != constants.HabitColors[1] {
		t.Errorf("expected round-robin colors, got %s and %s", first.Color, second.Color)
	}
	if second.TargetMinutes != 45 {
		t.Errorf("expected target 45, got %d", second.TargetMinutes)
	}
	if first.Completions == nil || first.ScheduleDays == nil {
		t.Error("expected non-nil completions and schedule days")
	}
	if saved := p.last.Habits[0]; saved.ScheduleDays == nil || saved.Completions == nil {
		t.Errorf("persisted habit has nil fields: %+v", saved)
	}
	if p.count() != 2 {
		t.Errorf("expected 2 writes, got %d", p.count())
	}
	if !achievement(t, tr, achievements.FirstHabit).IsUnlocked() {
		t.Error("expected first-habit unlocked")
	}
	if got := achievement(t, tr, achievements.FiveHabits).Progress; got != 2 {
		t.Errorf("expected 5-habits progress 2, got %d", got)
	}
}

func TestAddHabitRejectsBlankName(t *testing.T) {
	tr, _, p := newTestTracker(t, tue)

	for _, name := range []string{"", "   ", "\t"} {
		if _, err := tr.AddHabit(models.HabitInput{Name: name}); !errors.Is(err, ErrInvalidName) {
			t.Errorf("AddHabit(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
	if len(tr.Habits()) != 0 {
		t.Error("blank-named habit was created")
	}
	if p.count() != 0 {
		t.Error("rejected habit was persisted")
	}
}

func TestUpdateHabit(t *testing.T) {
	tr, clock, _ := newTestTracker(t, tue)
	h := addHabit(t, tr, models.HabitInput{Name: "Read", TargetMinutes: 20})

	clock.Advance(1000)
	name := "Read books"
	freq := models.FrequencyCustom
	if err := tr.UpdateHabit(h.ID, models.HabitPatch{
		Name:         &name,
		Frequency:    &freq,
		ScheduleDays: []string{"monday", "WED", "nope", "Mon"},
	}); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}

	got := mustHabit(t, tr, h.ID)
	if got.Name != name || got.Frequency != freq {
		t.Errorf("fields not merged: %+v", got)
	}
	if len(got.ScheduleDays) != 2 || got.ScheduleDays[0] != "Mon" || got.ScheduleDays[1] != "Wed" {
		t.Errorf("expected [Mon Wed], got %v", got.ScheduleDays)
	}
	if got.TargetMinutes != 20 {
		t.Errorf("untouched target changed to %d", got.TargetMinutes)
	}
	if !got.UpdatedAt.After(h.UpdatedAt) {
		t.Error("UpdatedAt not refreshed")
	}

	blank := " "
	if err := tr.UpdateHabit(h.ID, models.HabitPatch{Name: &blank}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if mustHabit(t, tr, h.ID).Name != name {
		t.Error("blank rename was applied")
	}

	zero := 0
	if err := tr.UpdateHabit(h.ID, models.HabitPatch{TargetMinutes: &zero}); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if got := mustHabit(t, tr, h.ID).TargetMinutes; got != constants.DefaultTargetMinutes {
		t.Errorf("expected target reset to default, got %d", got)
	}

	if err := tr.UpdateHabit("missing", models.HabitPatch{Name: &name}); err != nil {
		t.Errorf("unknown id should be a no-op, got %v", err)
	}
}

func TestUpdateTargetRecomputesStreak(t *testing.T) {
	tr, _, _ := newTestTracker(t, wed)
	h := addHabit(t, tr, models.HabitInput{Name: "Read", TargetMinutes: 30})
	tr.ToggleHabitCompletion(h.ID, mon, minutes(20))
	tr.ToggleHabitCompletion(h.ID, tue, minutes(20))
	if got := tr.GetHabitStreak(h.ID); got != 0 {
		t.Fatalf("expected streak 0 below target, got %d", got)
	}

	target := 15
	if err := tr.UpdateHabit(h.ID, models.HabitPatch{TargetMinutes: &target}); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	got := mustHabit(t, tr, h.ID)
	if got.CurrentStreak != 2 || got.LongestStreak != 2 {
		t.Errorf("expected streak 2/2 after lowering target, got %d/%d", got.CurrentStreak, got.LongestStreak)
	}
}

func TestStreakScenario(t *testing.T) {
	// all three days are logged after the fact, from day 4
	tr, _, _ := newTestTracker(t, "2026-03-05")
	h := addHabit(t, tr, models.HabitInput{Name: "Write", TargetMinutes: 30})

	tr.ToggleHabitCompletion(h.ID, "2026-03-02", minutes(30))
	if got := tr.GetHabitStreak(h.ID); got != 1 {
		t.Errorf("day 1: expected streak 1, got %d", got)
	}

	tr.ToggleHabitCompletion(h.ID, "2026-03-03", minutes(30))
	if got := tr.GetHabitStreak(h.ID); got != 2 {
		t.Errorf("day 2: expected streak 2, got %d", got)
	}

	tr.ToggleHabitCompletion(h.ID, "2026-03-04", minutes(10))
	got := mustHabit(t, tr, h.ID)
	if got.CurrentStreak != 0 {
		t.Errorf("day 3: expected streak 0, got %d", got.CurrentStreak)
	}
	if got.LongestStreak != 2 {
		t.Errorf("expected longest streak to stay 2, got %d", got.LongestStreak)
	}
	if n := tr.CalculateStreakForDate(h.ID, "2026-03-04"); n != 0 {
		t.Errorf("expected streak for day 3 to be 0, got %d", n)
	}
	if n := tr.CalculateStreakForDate(h.ID, "2026-03-03"); n != 2 {
		t.Errorf("expected streak for day 2 to be 2, got %d", n)
	}
}

func TestStreakAsLoggedDayByDay(t *testing.T) {
	tr, clock, _ := newTestTracker(t, "2026-03-02")
	h := addHabit(t, tr, models.HabitInput{Name: "Write", TargetMinutes: 30})

	tr.ToggleHabitCompletion(h.ID, "2026-03-02", minutes(30))
	clock.at(t, "2026-03-03")
	tr.ToggleHabitCompletion(h.ID, "2026-03-03", minutes(30))
	clock.at(t, "2026-03-04")
	tr.ToggleHabitCompletion(h.ID, "2026-03-04", minutes(10))

	// today is still open, so the run through yesterday stands
	if got := tr.GetHabitStreak(h.ID); got != 2 {
		t.Errorf("expected streak 2 while today is open, got %d", got)
	}

	clock.at(t, "2026-03-05")
	tr.ToggleHabitCompletion(h.ID, "2026-03-05", minutes(5))
	if got := tr.GetHabitStreak(h.ID); got != 0 {
		t.Errorf("expected streak 0 once the missed day closed, got %d", got)
	}
	if got := mustHabit(t, tr, h.ID).LongestStreak; got != 2 {
		t.Errorf("expected longest 2, got %d", got)
	}
}

func TestGapDayBreaksStreak(t *testing.T) {
	tr, _, _ := newTestTracker(t, "2026-03-06")
	h := addHabit(t, tr, models.HabitInput{Name: "Write", TargetMinutes: 30})

	tr.ToggleHabitCompletion(h.ID, "2026-03-02", minutes(30))
	tr.ToggleHabitCompletion(h.ID, "2026-03-03", minutes(0))
	tr.ToggleHabitCompletion(h.ID, "2026-03-04", minutes(30))
	if got := tr.GetHabitStreak(h.ID); got != 1 {
		t.Errorf("explicit zero day should break the run, got %d", got)
	}

	tr.ToggleHabitCompletion(h.ID, "2026-03-06", minutes(30))
	if got := tr.GetHabitStreak(h.ID); got != 1 {
		t.Errorf("missing day should break the run, got %d", got)
	}
}

func TestToggleTodayIsReversible(t *testing.T) {
	tr, _, _ := newTestTracker(t, wed)
	h := addHabit(t, tr, models.HabitInput{Name: "Stretch", TargetMinutes: 10})
	tr.ToggleHabitCompletion(h.ID, mon, nil)
	tr.ToggleHabitCompletion(h.ID, tue, nil)

	before := tr.GetHabitStreak(h.ID)
	if before != 2 {
		t.Fatalf("expected streak 2 before today, got %d", before)
	}

	tr.ToggleHabitCompletion(h.ID, wed, nil)
	if got := tr.GetHabitStreak(h.ID); got != 3 {
		t.Errorf("expected streak 3 after completing today, got %d", got)
	}
	if got := mustHabit(t, tr, h.ID).Minutes(wed); got != 10 {
		t.Errorf("toggle should log the full target, got %v", got)
	}

	tr.ToggleHabitCompletion(h.ID, wed, nil)
	if got := tr.GetHabitStreak(h.ID); got != before {
		t.Errorf("expected streak back to %d, got %d", before, got)
	}
	if got := mustHabit(t, tr, h.ID).Minutes(wed); got != 0 {
		t.Errorf("second toggle should clear the day, got %v", got)
	}
	if got := mustHabit(t, tr, h.ID).LongestStreak; got != 3 {
		t.Errorf("longest streak should keep 3, got %d", got)
	}
}

func TestToggleWithMinutesIsIdempotent(t *testing.T) {
	tr, _, _ := newTestTracker(t, wed)
	h := addHabit(t, tr, models.HabitInput{Name: "Piano", TargetMinutes: 20})
	tr.ToggleHabitCompletion(h.ID, mon, minutes(25))

	tr.ToggleHabitCompletion(h.ID, tue, minutes(22.5))
	once := mustHabit(t, tr, h.ID)
	tr.ToggleHabitCompletion(h.ID, tue, minutes(22.5))
	twice := mustHabit(t, tr, h.ID)

	if once.CurrentStreak != twice.CurrentStreak || once.LongestStreak != twice.LongestStreak ||
		once.TotalMinutes != twice.TotalMinutes || len(once.Completions) != len(twice.Completions) {
		t.Errorf("second identical toggle changed state: %+v vs %+v", once, twice)
	}
	for day, m := range once.Completions {
		if twice.Completions[day] != m {
			t.Errorf("completion %s changed from %v to %v", day, m, twice.Completions[day])
		}
	}
}

func TestToggleSanitizesMinutes(t *testing.T) {
	tr, _, _ := newTestTracker(t, tue)
	h := addHabit(t, tr, models.HabitInput{Name: "Read"})

	for _, m := range []float64{math.NaN(), math.Inf(1), -12} {
		tr.ToggleHabitCompletion(h.ID, tue, minutes(m))
		got := mustHabit(t, tr, h.ID)
		if got.Minutes(tue) != 0 || got.TotalMinutes != 0 {
			t.Errorf("minutes %v stored as %v (total %v)", m, got.Minutes(tue), got.TotalMinutes)
		}
	}

	tr.ToggleHabitCompletion(h.ID, "10/03/2026", minutes(30))
	if len(mustHabit(t, tr, h.ID).Completions) != 1 {
		t.Error("malformed date was recorded")
	}
	tr.ToggleHabitCompletion("missing", tue, minutes(30))
}

func TestDeleteHabitCascades(t *testing.T) {
	tr, _, _ := newTestTracker(t, tue)
	keep := addHabit(t, tr, models.HabitInput{Name: "Keep"})
	gone := addHabit(t, tr, models.HabitInput{Name: "Gone"})

	tr.AddSchedule(models.Schedule{HabitID: gone.ID, Date: tue, StartTime: "07:00"})
	tr.AddSchedule(models.Schedule{HabitID: gone.ID, Date: wed, StartTime: "07:00"})
	kept, _ := tr.AddSchedule(models.Schedule{HabitID: keep.ID, Date: tue, StartTime: "08:00"})
	tr.ToggleHabitCompletion(gone.ID, tue, nil)
	tr.StartTimer(gone.ID, tue)
	tr.SetFloatingTimer(gone.ID, tue)

	tr.DeleteHabit(gone.ID)

	for _, h := range tr.Habits() {
		if h.ID == gone.ID {
			t.Fatal("deleted habit still listed")
		}
	}
	schedules := tr.Schedules()
	if len(schedules) != 1 || schedules[0].ID != kept.ID {
		t.Errorf("expected only the kept schedule, got %+v", schedules)
	}
	if tr.CurrentTimer() != nil {
		t.Error("timer for deleted habit survived")
	}
	if tr.UIState().FloatingTimer.HabitID != nil {
		t.Error("floating timer still points at deleted habit")
	}

	stats := tr.GetWeeklyStats()
	if stats.TotalHabits != 1 || stats.CompletedToday != 0 {
		t.Errorf("stats still count deleted habit: %+v", stats)
	}

	tr.DeleteHabit("missing")
}

func TestArchiveHabit(t *testing.T) {
	tr, _, _ := newTestTracker(t, tue)
	h := addHabit(t, tr, models.HabitInput{Name: "Old"})
	addHabit(t, tr, models.HabitInput{Name: "New"})
	tr.ToggleHabitCompletion(h.ID, tue, nil)

	tr.ArchiveHabit(h.ID)

	if len(tr.ActiveHabits()) != 1 {
		t.Errorf("expected 1 active habit, got %d", len(tr.ActiveHabits()))
	}
	if len(tr.Habits()) != 2 {
		t.Errorf("archived habit should still be listed, got %d", len(tr.Habits()))
	}
	if got := mustHabit(t, tr, h.ID).Minutes(tue); got != 30 {
		t.Errorf("archived habit lost its history: %v", got)
	}
	if stats := tr.GetWeeklyStats(); stats.TotalHabits != 1 || stats.CompletedToday != 0 {
		t.Errorf("archived habit counted in stats: %+v", stats)
	}
	if len(tr.HabitsForDate(tue)) != 1 {
		t.Error("archived habit scheduled for today")
	}

	tr.UnarchiveHabit(h.ID)
	if len(tr.ActiveHabits()) != 2 {
		t.Error("unarchive did not restore habit")
	}
}

func TestMoveHabit(t *testing.T) {
	tr, _, _ := newTestTracker(t, tue)
	a := addHabit(t, tr, models.HabitInput{Name: "A"})
	b := addHabit(t, tr, models.HabitInput{Name: "B"})
	c := addHabit(t, tr, models.HabitInput{Name: "C"})

	order := func() string {
		s := ""
		for _, h := range tr.Habits() {
			s += h.Name
		}
		return s
	}

	tr.MoveHabitUp(a.ID)
	tr.MoveHabitDown(c.ID)
	if got := order(); got != "ABC" {
		t.Errorf("boundary moves should be no-ops, got %s", got)
	}

	tr.MoveHabitDown(a.ID)
	if got := order(); got != "BAC" {
		t.Errorf("expected BAC, got %s", got)
	}
	tr.MoveHabitUp(c.ID)
	if got := order(); got != "BCA" {
		t.Errorf("expected BCA, got %s", got)
	}
	tr.MoveHabitUp(b.ID)
	tr.MoveHabitUp("missing")
	if got := order(); got != "BCA" {
		t.Errorf("expected BCA, got %s", got)
	}
}

func TestHabitsForDate(t *testing.T) {
	tr, _, _ := newTestTracker(t, tue)
	addHabit(t, tr, models.HabitInput{Name: "Daily", ScheduleDays: []string{"Sun"}})
	weekly := addHabit(t, tr, models.HabitInput{
		Name:         "Gym",
		Frequency:    models.FrequencyWeekly,
		ScheduleDays: []string{"Mon", "Wed"},
	})

	names := func(hs []models.Habit) map[string]bool {
		out := map[string]bool{}
		for _, h := range hs {
			out[h.ID] = true
		}
		return out
	}

	tests := []struct {
		date      string
		weekly    bool
		wantCount int
	}{
		{mon, true, 2},
		{tue, false, 1},
		{wed, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := tr.HabitsForDate(tt.date)
			if len(got) != tt.wantCount {
				t.Errorf("expected %d habits, got %d", tt.wantCount, len(got))
			}
			if names(got)[weekly.ID] != tt.weekly {
				t.Errorf("weekly habit included = %v, want %v", !tt.weekly, tt.weekly)
			}
		})
	}

	if tr.HabitsForDate("not-a-date") != nil {
		t.Error("expected nil for malformed date")
	}
}

func TestReadsReturnCopies(t *testing.T) {
	tr, _, _ := newTestTracker(t, tue)
	h := addHabit(t, tr, models.HabitInput{Name: "Read"})
	tr.ToggleHabitCompletion(h.ID, tue, minutes(5))

	got := mustHabit(t, tr, h.ID)
	got.Completions[tue] = 999
	got.Name = "mutated"

	again := mustHabit(t, tr, h.ID)
	if again.Completions[tue] != 5 || again.Name != "Read" {
		t.Error("caller mutation leaked into tracker state")
	}
}

func TestRandomMutationsKeepInvariants(t *testing.T) {
	tr, clock, _ := newTestTracker(t, "2026-03-01")
	rng := rand.New(rand.NewSource(42))

	var ids []string
	for i := 0; i < 4; i++ {
		h := addHabit(t, tr, models.HabitInput{
			Name:          string(rune('A' + i)),
			TargetMinutes: 10 + rng.Intn(30),
			Frequency:     models.FrequencyCustom,
			ScheduleDays:  []string{"Mon", "Tue", "Thu", "Sat"}[:1+rng.Intn(4)],
		})
		ids = append(ids, h.ID)
	}

	dates := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04"}
	for step := 0; step < 300; step++ {
		id := ids[rng.Intn(len(ids))]
		date := dates[rng.Intn(len(dates))]
		switch rng.Intn(6) {
		case 0:
			tr.ToggleHabitCompletion(id, date, nil)
		case 1, 2:
			tr.ToggleHabitCompletion(id, date, minutes(rng.Float64()*50-5))
		case 3:
			tr.StartTimer(id, date)
			clock.Advance(time.Duration(rng.Intn(600)) * time.Second)
		case 4:
			tr.PauseTimer()
		case 5:
			if step%50 == 0 {
				clock.Advance(24 * time.Hour)
			}
			tr.Flush()
		}
		checkInvariants(t, tr)
		if t.Failed() {
			t.Fatalf("invariant broken at step %d", step)
		}
	}
}
