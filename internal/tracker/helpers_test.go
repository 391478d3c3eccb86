package tracker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/streaklit/internal/models"
)

const (
	mon = "2026-03-09"
	tue = "2026-03-10"
	wed = "2026-03-11"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// at moves the clock to noon on date
func (c *fakeClock) at(t *testing.T, date string) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	c.now = d.Add(12 * time.Hour)
}

type memoryPersister struct {
	mu    sync.Mutex
	saves int
	last  models.State
	err   error
}

func (p *memoryPersister) SaveState(s models.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.saves++
	p.last = s
	return nil
}

func (p *memoryPersister) LoadState(string) (models.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, nil
}

func (p *memoryPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

var errDiskFull = errors.New("disk full")

func newTestTracker(t *testing.T, date string) (*Tracker, *fakeClock, *memoryPersister) {
	t.Helper()
	clock := &fakeClock{}
	clock.at(t, date)
	p := &memoryPersister{}
	return New(models.State{}, p, WithClock(clock)), clock, p
}

func addHabit(t *testing.T, tr *Tracker, in models.HabitInput) models.Habit {
	t.Helper()
	h, err := tr.AddHabit(in)
	if err != nil {
		t.Fatalf("AddHabit(%q) failed: %v", in.Name, err)
	}
	return h
}

func minutes(m float64) *float64 { return &m }

func mustHabit(t *testing.T, tr *Tracker, id string) models.Habit {
	t.Helper()
	h, ok := tr.Habit(id)
	if !ok {
		t.Fatalf("habit %s not found", id)
	}
	return h
}

func achievement(t *testing.T, tr *Tracker, id string) models.Achievement {
	t.Helper()
	for _, a := range tr.Achievements() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not found", id)
	return models.Achievement{}
}

func checkInvariants(t *testing.T, tr *Tracker) {
	t.Helper()
	for _, h := range tr.Habits() {
		if h.LongestStreak < h.CurrentStreak {
			t.Errorf("habit %s: longest %d < current %d", h.Name, h.LongestStreak, h.CurrentStreak)
		}
		if got := models.SumMinutes(h.Completions); got != h.TotalMinutes {
			t.Errorf("habit %s: total %v != sum %v", h.Name, h.TotalMinutes, got)
		}
	}
	for _, a := range tr.Achievements() {
		if a.Progress > a.Target || a.Progress < 0 {
			t.Errorf("achievement %s: progress %d outside [0, %d]", a.ID, a.Progress, a.Target)
		}
	}
	stats := tr.GetWeeklyStats()
	if stats.CompletedToday > stats.TotalHabits {
		t.Errorf("completed today %d > total %d", stats.CompletedToday, stats.TotalHabits)
	}
}
