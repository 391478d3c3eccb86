package system

import (
	"context"
	"time"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/notifier"
	"github.com/julianstephens/streaklit/internal/tracker"
)

// Sender delivers reminder text
type Sender interface {
	Notify(ctx context.Context, text string) error
}

type RemindCmd struct {
	Send  bool `help:"Deliver the reminder through the tray app instead of printing it."`
	Force bool `help:"Remind even before the configured reminder time."`
}

var newSender = func() Sender { return notifier.New() }

func (c *RemindCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	settings := tr.UIState().Notifications
	now := ctx.Clock.Now()

	if !settings.Enabled && !c.Force {
		ctx.Println("Reminders are disabled. Enable them with 'streaklit settings --notifications on'.")
		return nil
	}
	if !c.Force && !notifier.IsDue(settings, now) {
		if next, ok := notifier.NextReminder(settings, now); ok {
			ctx.Printf("Next reminder at %s\n", next.Format("2006-01-02 15:04"))
		}
		return nil
	}

	text := notifier.ReminderText(settings, pendingHabits(tr, ctx.Today()))
	if text == "" {
		ctx.Println("All habits done for today 🎉")
		return nil
	}

	if !c.Send {
		ctx.Println(text)
		return nil
	}

	sender := newSender()
	sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sender.Notify(sendCtx, text); err != nil {
		return err
	}
	ctx.Println("✓ Reminder sent")
	return nil
}

func pendingHabits(tr *tracker.Tracker, today string) []notifier.PendingHabit {
	var pending []notifier.PendingHabit
	for _, h := range tr.HabitsForDate(today) {
		if h.IsComplete(today) {
			continue
		}
		pending = append(pending, notifier.PendingHabit{
			Name:   h.Name,
			Streak: h.CurrentStreak,
		})
	}
	return pending
}
