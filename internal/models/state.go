package models

// State is the whole persisted document
type State struct {
	Version      int           `json:"version"`
	Habits       []Habit       `json:"habits"`
	Schedules    []Schedule    `json:"schedules"`
	Achievements []Achievement `json:"achievements"`
	UIState      UIState       `json:"uiState"`
	ActiveTimer  *RunningTimer `json:"activeTimer"`
}

// ExportDocument is the downloadable habit snapshot
type ExportDocument struct {
	Habits     []Habit `json:"habits"`
	ExportedAt string  `json:"exportedAt"` // RFC3339 timestamp
}
