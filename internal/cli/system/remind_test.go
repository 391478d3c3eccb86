package system

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/tracker"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Notify(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func withSender(t *testing.T, s Sender) {
	t.Helper()
	orig := newSender
	newSender = func() Sender { return s }
	t.Cleanup(func() { newSender = orig })
}

func enableReminders(tr *tracker.Tracker) {
	on := true
	reminderTime := "09:00"
	tr.SetNotifications(models.NotificationPatch{Enabled: &on, ReminderTime: &reminderTime, StreakAlertsEnabled: &on})
}

func TestRemindCmd(t *testing.T) {
	tests := []struct {
		name    string
		enable  bool
		hour    int
		done    bool
		force   bool
		want    string
		wantNot string
	}{
		{name: "disabled", enable: false, hour: 12, want: "Reminders are disabled"},
		{name: "disabled but forced", enable: false, hour: 12, force: true, want: "1 habit left today: Read"},
		{name: "before reminder time", enable: true, hour: 8, want: "Next reminder at 2026-03-11 09:00"},
		{name: "due", enable: true, hour: 12, want: "1 habit left today: Read. Keep your 1-day Read streak alive!"},
		{name: "all done", enable: true, hour: 12, done: true, want: "All habits done", wantNot: "left today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out, _ := setupTestDB(t)
			ctx.Clock = at(tt.hour, 0)
			tr, err := ctx.Tracker()
			if err != nil {
				t.Fatalf("failed to load tracker: %v", err)
			}
			h, err := tr.AddHabit(models.HabitInput{Name: "Read", TargetMinutes: 30})
			if err != nil {
				t.Fatalf("failed to add habit: %v", err)
			}
			tr.ToggleHabitCompletion(h.ID, "2026-03-10", nil)
			if tt.done {
				tr.ToggleHabitCompletion(h.ID, "2026-03-11", nil)
			}
			if tt.enable {
				enableReminders(tr)
			}

			if err := (&RemindCmd{Force: tt.force}).Run(ctx); err != nil {
				t.Fatalf("remind failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
			if tt.wantNot != "" && strings.Contains(out.String(), tt.wantNot) {
				t.Errorf("output %q should not contain %q", out.String(), tt.wantNot)
			}
		})
	}
}

func TestRemindCmd_Send(t *testing.T) {
	ctx, out, _ := setupTestDB(t)
	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	if _, err := tr.AddHabit(models.HabitInput{Name: "Read"}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if _, err := tr.AddHabit(models.HabitInput{Name: "Run"}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	enableReminders(tr)

	sender := &fakeSender{}
	withSender(t, sender)

	if err := (&RemindCmd{Send: true}).Run(ctx); err != nil {
		t.Fatalf("remind --send failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "2 habits left today: Read, Run" {
		t.Errorf("sent %q", sender.sent)
	}
	if !strings.Contains(out.String(), "Reminder sent") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRemindCmd_SendError(t *testing.T) {
	ctx, _, _ := setupTestDB(t)
	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	if _, err := tr.AddHabit(models.HabitInput{Name: "Read"}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	sendErr := errors.New("tray app not running")
	withSender(t, &fakeSender{err: sendErr})

	if err := (&RemindCmd{Send: true, Force: true}).Run(ctx); !errors.Is(err, sendErr) {
		t.Errorf("got %v, want %v", err, sendErr)
	}
}
