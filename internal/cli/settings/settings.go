package settings

import (
	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

type SettingsCmd struct {
	Theme         string `help:"Color theme." enum:",light,dark" default:""`
	Notifications string `help:"Turn daily reminders on or off." enum:",on,off" default:""`
	ReminderTime  string `help:"Daily reminder time (HH:MM)."`
	StreakAlerts  string `help:"Mention the streak at risk in reminders." enum:",on,off" default:""`
	ResetTour     bool   `help:"Show the onboarding tour again."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.ReminderTime != "" {
		if _, _, err := utils.ParseTimeOfDay(c.ReminderTime); err != nil {
			return err
		}
	}

	if c.Theme != "" {
		tr.SetTheme(models.Theme(c.Theme))
	}
	patch := models.NotificationPatch{
		Enabled:             onOffFlag(c.Notifications),
		StreakAlertsEnabled: onOffFlag(c.StreakAlerts),
	}
	if c.ReminderTime != "" {
		patch.ReminderTime = &c.ReminderTime
	}
	if patch.Enabled != nil || patch.ReminderTime != nil || patch.StreakAlertsEnabled != nil {
		tr.SetNotifications(patch)
	}
	if c.ResetTour {
		tr.StartTour()
	}

	ui := tr.UIState()
	ctx.Println(cli.RenderTable(
		[]string{"Setting", "Value"},
		[][]string{
			{"Theme", string(ui.Theme)},
			{"View", string(ui.ViewMode)},
			{"Notifications", onOff(ui.Notifications.Enabled)},
			{"Reminder time", ui.Notifications.ReminderTime},
			{"Streak alerts", onOff(ui.Notifications.StreakAlertsEnabled)},
			{"Tour completed", onOff(ui.HasSeenTour)},
		},
	))
	return nil
}

func onOffFlag(s string) *bool {
	if s == "" {
		return nil
	}
	b := s == "on"
	return &b
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
