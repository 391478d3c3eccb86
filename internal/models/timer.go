package models

import "time"

// RunningTimer is the single application-wide timer logging time against
// one habit on one day.
type RunningTimer struct {
	HabitID         string    `json:"habitId"`
	Date            string    `json:"date"` // YYYY-MM-DD format
	StartTime       time.Time `json:"startTime"`
	AccumulatedTime float64   `json:"accumulatedTime"` // minutes banked before StartTime
	IsRunning       bool      `json:"isRunning"`
}

// Matches reports whether the timer logs against habitID on date.
func (t RunningTimer) Matches(habitID, date string) bool {
	return t.HabitID == habitID && t.Date == date
}
