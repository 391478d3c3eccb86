// Package notifier computes daily habit reminders and delivers them to the
// companion tray app.
package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

// PendingHabit is a habit scheduled today that has not met its target yet
type PendingHabit struct {
	Name   string
	Streak int
}

// NextReminder returns the first reminder instant strictly after now.
// ok is false when reminders are disabled or the time is unparseable.
func NextReminder(settings models.NotificationSettings, now time.Time) (time.Time, bool) {
	at, ok := reminderOn(settings, now)
	if !ok {
		return time.Time{}, false
	}
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at, true
}

// IsDue reports whether today's reminder time has passed.
func IsDue(settings models.NotificationSettings, now time.Time) bool {
	at, ok := reminderOn(settings, now)
	return ok && !now.Before(at)
}

func reminderOn(settings models.NotificationSettings, now time.Time) (time.Time, bool) {
	if !settings.Enabled {
		return time.Time{}, false
	}
	h, m, err := utils.ParseTimeOfDay(settings.ReminderTime)
	if err != nil {
		return time.Time{}, false
	}
	day := utils.StartOfDay(now)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, now.Location()), true
}

// ReminderText builds the notification body. Streak alerts name the longest
// streak at risk when enabled. Empty when nothing is pending.
func ReminderText(settings models.NotificationSettings, pending []PendingHabit) string {
	if len(pending) == 0 {
		return ""
	}

	names := make([]string, len(pending))
	var atRisk *PendingHabit
	for i := range pending {
		names[i] = pending[i].Name
		if pending[i].Streak > 0 && (atRisk == nil || pending[i].Streak > atRisk.Streak) {
			atRisk = &pending[i]
		}
	}

	var b strings.Builder
	if len(pending) == 1 {
		fmt.Fprintf(&b, "1 habit left today: %s", names[0])
	} else {
		fmt.Fprintf(&b, "%d habits left today: %s", len(pending), strings.Join(names, ", "))
	}
	if settings.StreakAlertsEnabled && atRisk != nil {
		fmt.Fprintf(&b, ". Keep your %d-day %s streak alive!", atRisk.Streak, atRisk.Name)
	}
	return b.String()
}
