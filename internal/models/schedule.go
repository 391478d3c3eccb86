package models

// Schedule is a planned time block for a habit on a given day
type Schedule struct {
	ID          string `json:"id"`
	HabitID     string `json:"habitId"`
	Date        string `json:"date"`      // YYYY-MM-DD format
	StartTime   string `json:"startTime"` // HH:MM format
	EndTime     string `json:"endTime,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
	Notes       string `json:"notes,omitempty"`
}

// SchedulePatch is a partial schedule update; nil fields are left untouched.
type SchedulePatch struct {
	Date        *string
	StartTime   *string
	EndTime     *string
	Duration    *int
	IsCompleted *bool
	Notes       *string
}
