package models

import "github.com/julianstephens/streaklit/internal/constants"

type ViewMode string

const (
	ViewWeek      ViewMode = "week"
	ViewMonth     ViewMode = "month"
	ViewAnalytics ViewMode = "analytics"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// TimerRef points a timer widget at a habit/day pair. Nil fields mean unset.
type TimerRef struct {
	HabitID *string `json:"habitId"`
	Date    *string `json:"date"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NotificationSettings are read by the reminder scheduler
type NotificationSettings struct {
	Enabled             bool   `json:"enabled"`
	ReminderTime        string `json:"reminderTime"` // HH:MM format
	StreakAlertsEnabled bool   `json:"streakAlertsEnabled"`
}

// NotificationPatch is a partial notification settings update
type NotificationPatch struct {
	Enabled             *bool
	ReminderTime        *string
	StreakAlertsEnabled *bool
}

// UIState is view/session state persisted alongside habits
type UIState struct {
	IsHabitModalOpen      bool                 `json:"isHabitModalOpen"`
	IsSettingsOpen        bool                 `json:"isSettingsOpen"`
	IsAnalyticsOpen       bool                 `json:"isAnalyticsOpen"`
	IsCalendarOpen        bool                 `json:"isCalendarOpen"`
	SelectedHabitID       *string              `json:"selectedHabitId"`
	SelectedDate          string               `json:"selectedDate"`
	ViewMode              ViewMode             `json:"viewMode"`
	SidebarCollapsed      bool                 `json:"sidebarCollapsed"`
	Theme                 Theme                `json:"theme"`
	FocusedTimer          TimerRef             `json:"focusedTimer"`
	FloatingTimer         TimerRef             `json:"floatingTimer"`
	FloatingTimerPosition Position             `json:"floatingTimerPosition"`
	Notifications         NotificationSettings `json:"notifications"`
	HasSeenTour           bool                 `json:"hasSeenTour"`
	TourCurrentStep       int                  `json:"tourCurrentStep"`
}

// DefaultNotificationSettings returns the settings used when none are stored.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:             constants.DefaultNotificationsOn,
		ReminderTime:        constants.DefaultReminderTime,
		StreakAlertsEnabled: constants.DefaultStreakAlerts,
	}
}

// DefaultUIState returns a fully populated UI state for the given day.
func DefaultUIState(today string) UIState {
	return UIState{
		SelectedDate: today,
		ViewMode:     ViewWeek,
		Theme:        ThemeLight,
		FloatingTimerPosition: Position{
			X: constants.DefaultFloatingTimerX,
			Y: constants.DefaultFloatingTimerY,
		},
		Notifications: DefaultNotificationSettings(),
	}
}
