// Package tracker owns the habit state: every mutation goes through a
// Tracker, which keeps streaks, totals and achievement progress consistent,
// writes the whole document through to storage and notifies subscribers.
package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/streaklit/internal/achievements"
	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/streak"
	"github.com/julianstephens/streaklit/internal/utils"
)

// ErrInvalidName is returned when a habit would be created or renamed with a
// blank name
var ErrInvalidName = errors.New("habit name cannot be empty")

// Clock supplies wall-clock time. Tests inject a fixed one.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock
var SystemClock Clock = ClockFunc(time.Now)

// Persister receives the full document after every mutation
type Persister interface {
	SaveState(models.State) error
}

// StateLoader is the read side of a storage provider
type StateLoader interface {
	Persister
	LoadState(today string) (models.State, error)
}

type subscription struct {
	id int
	fn func(Event)
}

type Tracker struct {
	mu          sync.Mutex
	state       models.State
	persister   Persister
	clock       Clock
	subscribers []subscription
	nextSubID   int
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		t.clock = c
	}
}

// New wraps an already-loaded state. persister may be nil, in which case
// mutations stay in memory.
func New(state models.State, persister Persister, opts ...Option) *Tracker {
	t := &Tracker{
		persister: persister,
		clock:     SystemClock,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.state = t.normalize(state)
	return t
}

// Load reads the document from p and returns a tracker persisting back to it
func Load(p StateLoader, opts ...Option) (*Tracker, error) {
	t := New(models.State{}, p, opts...)
	state, err := p.LoadState(t.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	t.state = t.normalize(state)
	return t, nil
}

func (t *Tracker) normalize(state models.State) models.State {
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	today := t.Today()
	for i := range state.Habits {
		h := &state.Habits[i]
		if h.Completions == nil {
			h.Completions = map[string]float64{}
		}
		// a stored streak goes stale once a day passes unlogged
		h.CurrentStreak = streak.Current(h.Completions, h.TargetMinutes, today)
		if h.CurrentStreak > h.LongestStreak {
			h.LongestStreak = h.CurrentStreak
		}
	}
	if state.Schedules == nil {
		state.Schedules = []models.Schedule{}
	}
	state.Achievements = achievements.Merge(state.Achievements)
	if state.UIState.SelectedDate == "" {
		state.UIState = models.DefaultUIState(t.Today())
	}
	state.Version = constants.DocumentVersion
	return state
}

// Today is the clock's current day as YYYY-MM-DD
func (t *Tracker) Today() string {
	return utils.FormatDate(t.clock.Now())
}

// Subscribe registers fn to receive every event after the mutation that
// produced it has been applied and persisted. fn runs without the tracker
// lock held and may call back into the tracker.
func (t *Tracker) Subscribe(fn func(Event)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextSubID
	t.nextSubID++
	t.subscribers = append(t.subscribers, subscription{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, s := range t.subscribers {
			if s.id == id {
				t.subscribers = append(t.subscribers[:i], t.subscribers[i+1:]...)
				return
			}
		}
	}
}

// update runs fn under the lock. When fn reports events the document is
// written through and the events are delivered once the lock is released.
func (t *Tracker) update(fn func(now time.Time) []Event) {
	t.mu.Lock()
	events := fn(t.clock.Now())
	if len(events) > 0 {
		t.saveLocked()
	}
	subs := make([]func(Event), len(t.subscribers))
	for i, s := range t.subscribers {
		subs[i] = s.fn
	}
	t.mu.Unlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}

func (t *Tracker) saveLocked() {
	if t.persister == nil {
		return
	}
	if err := t.persister.SaveState(t.snapshotLocked()); err != nil {
		logger.Warn("Failed to persist state", "error", err)
	}
}

func (t *Tracker) read(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn()
}

func (t *Tracker) snapshotLocked() models.State {
	s := models.State{
		Version:      t.state.Version,
		Habits:       cloneHabits(t.state.Habits),
		Schedules:    append([]models.Schedule{}, t.state.Schedules...),
		Achievements: cloneAchievements(t.state.Achievements),
		UIState:      t.state.UIState,
	}
	if t.state.ActiveTimer != nil {
		timer := *t.state.ActiveTimer
		s.ActiveTimer = &timer
	}
	return s
}

// Snapshot returns a deep copy of the whole document
func (t *Tracker) Snapshot() models.State {
	var s models.State
	t.read(func() { s = t.snapshotLocked() })
	return s
}

func cloneHabits(in []models.Habit) []models.Habit {
	out := make([]models.Habit, len(in))
	for i, h := range in {
		out[i] = h.Clone()
	}
	return out
}

func cloneAchievements(in []models.Achievement) []models.Achievement {
	out := make([]models.Achievement, len(in))
	for i, a := range in {
		if a.UnlockedAt != nil {
			ts := *a.UnlockedAt
			a.UnlockedAt = &ts
		}
		out[i] = a
	}
	return out
}

func (t *Tracker) habitIndexLocked(id string) int {
	for i, h := range t.state.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
