// Package timer implements the running-timer state machine. Transitions are
// pure: callers pass the current wall-clock time and apply the returned
// commits to the habit's completions themselves.
package timer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/streaklit/internal/models"
)

var (
	// ErrTimerRunning is returned when a manual edit is attempted while the timer runs
	ErrTimerRunning = errors.New("timer is running")
	// ErrNoTimer is returned when an operation requires an active timer
	ErrNoTimer = errors.New("no active timer")
)

// Commit is elapsed time that must be written into a habit's completions
type Commit struct {
	HabitID string
	Date    string
	Minutes float64
}

// State names the timer's position in the Idle/Running/Paused machine.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// StateOf reports the machine state of t; a nil timer is idle.
func StateOf(t *models.RunningTimer) State {
	switch {
	case t == nil:
		return Idle
	case t.IsRunning:
		return Running
	default:
		return Paused
	}
}

// runningSeconds is the whole seconds elapsed since the current interval
// began. Clock skew that puts now before start counts as zero.
func runningSeconds(t *models.RunningTimer, now time.Time) int64 {
	d := now.Sub(t.StartTime)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// ElapsedMinutes returns the live elapsed minutes without mutating t.
func ElapsedMinutes(t *models.RunningTimer, now time.Time) float64 {
	if t == nil {
		return 0
	}
	if !t.IsRunning {
		return t.AccumulatedTime
	}
	return t.AccumulatedTime + float64(runningSeconds(t, now))/60
}

// ElapsedSeconds returns the live elapsed whole seconds without mutating t.
func ElapsedSeconds(t *models.RunningTimer, now time.Time) int64 {
	if t == nil {
		return 0
	}
	banked := int64(t.AccumulatedTime*60 + 0.5)
	if !t.IsRunning {
		return banked
	}
	return banked + runningSeconds(t, now)
}

// Start begins (or resumes) timing habitID on date. loggedMinutes is what the
// habit already has recorded for date; it seeds the baseline unless prev is
// a paused timer for the same habit and day. When prev is running its
// elapsed time is returned as a commit before being replaced.
func Start(prev *models.RunningTimer, habitID, date string, loggedMinutes float64, now time.Time) (models.RunningTimer, *Commit) {
	var commit *Commit
	if prev != nil && prev.IsRunning {
		commit = &Commit{
			HabitID: prev.HabitID,
			Date:    prev.Date,
			Minutes: ElapsedMinutes(prev, now),
		}
	}

	baseline := models.SanitizeMinutes(loggedMinutes)
	switch {
	case commit != nil && commit.HabitID == habitID && commit.Date == date:
		baseline = commit.Minutes
	case prev != nil && !prev.IsRunning && prev.Matches(habitID, date):
		baseline = prev.AccumulatedTime
	}

	return models.RunningTimer{
		HabitID:         habitID,
		Date:            date,
		StartTime:       now,
		AccumulatedTime: baseline,
		IsRunning:       true,
	}, commit
}

// Pause stops the running interval and banks its elapsed time. Pausing a
// paused timer is a no-op that still reports its accumulated time.
func Pause(t models.RunningTimer, now time.Time) (models.RunningTimer, Commit) {
	elapsed := ElapsedMinutes(&t, now)
	t.AccumulatedTime = elapsed
	t.IsRunning = false
	return t, Commit{HabitID: t.HabitID, Date: t.Date, Minutes: elapsed}
}

// Reset zeroes the banked time and stops the timer. The caller clears the
// habit's completion for the timer's date.
func Reset(t models.RunningTimer) models.RunningTimer {
	t.AccumulatedTime = 0
	t.IsRunning = false
	return t
}

// SetAccumulated applies a manual time edit. It is refused while running.
func SetAccumulated(t models.RunningTimer, minutes float64) (models.RunningTimer, error) {
	if t.IsRunning {
		return t, ErrTimerRunning
	}
	t.AccumulatedTime = models.SanitizeMinutes(minutes)
	return t, nil
}

// ParseClock parses manual entry in HH:MM:SS, MM:SS or plain minutes and
// returns minutes. Malformed or negative components are rejected.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q (expected HH:MM:SS)", s)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid duration %q (expected HH:MM:SS)", s)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("invalid duration %q: component %d out of range", s, v)
		}
		values[i] = v
	}

	switch len(values) {
	case 1:
		return float64(values[0]), nil
	case 2:
		return float64(values[0]) + float64(values[1])/60, nil
	default:
		return float64(values[0]*60+values[1]) + float64(values[2])/60, nil
	}
}

// FormatClock renders whole seconds as HH:MM:SS.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
