package tracker

import (
	"time"

	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

func (t *Tracker) updateUI(fn func(ui *models.UIState) bool) {
	t.update(func(time.Time) []Event {
		if !fn(&t.state.UIState) {
			return nil
		}
		return []Event{{Kind: UIStateChanged}}
	})
}

// UIState returns the persisted view state
func (t *Tracker) UIState() models.UIState {
	var ui models.UIState
	t.read(func() { ui = t.state.UIState })
	return ui
}

func (t *Tracker) SetViewMode(mode models.ViewMode) {
	t.updateUI(func(ui *models.UIState) bool {
		switch mode {
		case models.ViewWeek, models.ViewMonth, models.ViewAnalytics:
			ui.ViewMode = mode
			return true
		}
		return false
	})
}

// ToggleHabitModal opens or closes the habit editor, selecting habitID
// ("" for a new habit)
func (t *Tracker) ToggleHabitModal(open bool, habitID string) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.IsHabitModalOpen = open
		ui.SelectedHabitID = optional(habitID)
		return true
	})
}

// ToggleSettings flips the settings panel, or sets it when open is non-nil.
// The analytics and calendar toggles behave the same way.
func (t *Tracker) ToggleSettings(open *bool) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.IsSettingsOpen = toggle(ui.IsSettingsOpen, open)
		return true
	})
}

func (t *Tracker) ToggleAnalytics(open *bool) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.IsAnalyticsOpen = toggle(ui.IsAnalyticsOpen, open)
		return true
	})
}

func (t *Tracker) ToggleCalendar(open *bool) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.IsCalendarOpen = toggle(ui.IsCalendarOpen, open)
		return true
	})
}

func (t *Tracker) SetFocusedTimer(habitID, date string) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.FocusedTimer = models.TimerRef{HabitID: optional(habitID), Date: optional(date)}
		return true
	})
}

func (t *Tracker) SetFloatingTimer(habitID, date string) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.FloatingTimer = models.TimerRef{HabitID: optional(habitID), Date: optional(date)}
		return true
	})
}

func (t *Tracker) SetFloatingTimerPosition(pos models.Position) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.FloatingTimerPosition = pos
		return true
	})
}

func (t *Tracker) SetSelectedDate(date string) {
	if !utils.ValidateDate(date) {
		logger.Warn("Ignoring malformed selected date", "date", date)
		return
	}
	t.updateUI(func(ui *models.UIState) bool {
		ui.SelectedDate = date
		return true
	})
}

func (t *Tracker) ToggleSidebar() {
	t.updateUI(func(ui *models.UIState) bool {
		ui.SidebarCollapsed = !ui.SidebarCollapsed
		return true
	})
}

func (t *Tracker) SetTheme(theme models.Theme) {
	t.updateUI(func(ui *models.UIState) bool {
		if theme != models.ThemeLight && theme != models.ThemeDark {
			return false
		}
		ui.Theme = theme
		return true
	})
}

// SetNotifications merges the non-nil fields of patch. A malformed reminder
// time is dropped.
func (t *Tracker) SetNotifications(patch models.NotificationPatch) {
	t.updateUI(func(ui *models.UIState) bool {
		n := &ui.Notifications
		if patch.Enabled != nil {
			n.Enabled = *patch.Enabled
		}
		if patch.ReminderTime != nil {
			if _, _, err := utils.ParseTimeOfDay(*patch.ReminderTime); err == nil {
				n.ReminderTime = *patch.ReminderTime
			} else {
				logger.Warn("Ignoring malformed reminder time", "time", *patch.ReminderTime)
			}
		}
		if patch.StreakAlertsEnabled != nil {
			n.StreakAlertsEnabled = *patch.StreakAlertsEnabled
		}
		return true
	})
}

func (t *Tracker) SetTourCompleted() {
	t.updateUI(func(ui *models.UIState) bool {
		ui.HasSeenTour = true
		return true
	})
}

func (t *Tracker) SetTourStep(step int) {
	t.updateUI(func(ui *models.UIState) bool {
		ui.TourCurrentStep = max(step, 0)
		return true
	})
}

// StartTour rewinds the onboarding tour
func (t *Tracker) StartTour() {
	t.updateUI(func(ui *models.UIState) bool {
		ui.HasSeenTour = false
		ui.TourCurrentStep = 0
		return true
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toggle(current bool, set *bool) bool {
	if set != nil {
		return *set
	}
	return !current
}
