package tracker

import (
	"time"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/timer"
)

// StartTimer starts or resumes timing habitID on date. A different timer
// that is running has its elapsed time committed first.
func (t *Tracker) StartTimer(habitID, date string) {
	t.update(func(now time.Time) []Event {
		i := t.habitIndexLocked(habitID)
		if i < 0 {
			return nil
		}
		logged := t.state.Habits[i].Completions[date]

		next, commit := timer.Start(t.state.ActiveTimer, habitID, date, logged, now)

		var events []Event
		if commit != nil {
			events = append(events, t.commitLocked(*commit, now)...)
		}
		t.state.ActiveTimer = &next
		return append(events, Event{Kind: TimerChanged, HabitID: habitID, Date: date})
	})
}

// PauseTimer banks the running interval and writes it to the habit
func (t *Tracker) PauseTimer() {
	t.update(func(now time.Time) []Event {
		current := t.state.ActiveTimer
		if current == nil || !current.IsRunning {
			return nil
		}
		paused, commit := timer.Pause(*current, now)
		t.state.ActiveTimer = &paused

		events := t.commitLocked(commit, now)
		return append(events, Event{Kind: TimerChanged, HabitID: paused.HabitID, Date: paused.Date})
	})
}

// StopTimer commits any running time and discards the timer
func (t *Tracker) StopTimer() {
	t.update(func(now time.Time) []Event {
		current := t.state.ActiveTimer
		if current == nil {
			return nil
		}

		var events []Event
		if current.IsRunning {
			_, commit := timer.Pause(*current, now)
			events = t.commitLocked(commit, now)
		}
		t.state.ActiveTimer = nil
		return append(events, Event{Kind: TimerChanged, HabitID: current.HabitID, Date: current.Date})
	})
}

// ResetTimer zeroes the timer and the completion it was logging into
func (t *Tracker) ResetTimer() {
	t.update(func(now time.Time) []Event {
		current := t.state.ActiveTimer
		if current == nil {
			return nil
		}
		reset := timer.Reset(*current)
		t.state.ActiveTimer = &reset

		events := t.commitLocked(timer.Commit{HabitID: reset.HabitID, Date: reset.Date}, now)
		return append(events, Event{Kind: TimerChanged, HabitID: reset.HabitID, Date: reset.Date})
	})
}

// SetTimerAccumulatedTime applies a manual time edit to the stopped timer
// and its habit's completion
func (t *Tracker) SetTimerAccumulatedTime(minutes float64) error {
	var err error
	t.update(func(now time.Time) []Event {
		current := t.state.ActiveTimer
		if current == nil {
			err = timer.ErrNoTimer
			return nil
		}

		var edited models.RunningTimer
		edited, err = timer.SetAccumulated(*current, minutes)
		if err != nil {
			return nil
		}
		t.state.ActiveTimer = &edited

		events := t.commitLocked(timer.Commit{
			HabitID: edited.HabitID,
			Date:    edited.Date,
			Minutes: edited.AccumulatedTime,
		}, now)
		return append(events, Event{Kind: TimerChanged, HabitID: edited.HabitID, Date: edited.Date})
	})
	return err
}

// Flush writes a running timer's live elapsed time into its habit without
// stopping it. Call it before the process is suspended or exits.
func (t *Tracker) Flush() {
	t.update(func(now time.Time) []Event {
		current := t.state.ActiveTimer
		if current == nil || !current.IsRunning {
			return nil
		}
		return t.commitLocked(timer.Commit{
			HabitID: current.HabitID,
			Date:    current.Date,
			Minutes: timer.ElapsedMinutes(current, now),
		}, now)
	})
}

// Tick samples the timer for display. It never writes state.
func (t *Tracker) Tick() (seconds int64, running bool) {
	t.read(func() {
		current := t.state.ActiveTimer
		if current == nil {
			return
		}
		seconds = timer.ElapsedSeconds(current, t.clock.Now())
		running = current.IsRunning
	})
	return seconds, running
}

// commitLocked writes committed timer minutes into the habit's completions.
// A habit deleted while its timer ran is skipped.
func (t *Tracker) commitLocked(c timer.Commit, now time.Time) []Event {
	i := t.habitIndexLocked(c.HabitID)
	if i < 0 {
		return nil
	}
	return t.applyCompletionLocked(i, c.Date, c.Minutes, now)
}

// ElapsedMinutes is the live elapsed time of the current timer
func (t *Tracker) ElapsedMinutes() float64 {
	var m float64
	t.read(func() { m = timer.ElapsedMinutes(t.state.ActiveTimer, t.clock.Now()) })
	return m
}

// ElapsedSeconds is the live elapsed time of the current timer in whole
// seconds
func (t *Tracker) ElapsedSeconds() int64 {
	var s int64
	t.read(func() { s = timer.ElapsedSeconds(t.state.ActiveTimer, t.clock.Now()) })
	return s
}

// IsTimerRunning reports whether the timer is running for habitID on date
func (t *Tracker) IsTimerRunning(habitID, date string) bool {
	var running bool
	t.read(func() {
		tm := t.state.ActiveTimer
		running = tm != nil && tm.IsRunning && tm.Matches(habitID, date)
	})
	return running
}

// CurrentTimer returns a copy of the timer, nil when idle
func (t *Tracker) CurrentTimer() *models.RunningTimer {
	var out *models.RunningTimer
	t.read(func() {
		if t.state.ActiveTimer != nil {
			tm := *t.state.ActiveTimer
			out = &tm
		}
	})
	return out
}
