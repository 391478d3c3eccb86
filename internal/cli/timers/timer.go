package timers

import (
	"errors"
	"fmt"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/timer"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/utils"
)

type TimerCmd struct {
	Start  TimerStartCmd  `cmd:"" help:"Start or resume the timer for a habit."`
	Pause  TimerPauseCmd  `cmd:"" help:"Pause the running timer."`
	Stop   TimerStopCmd   `cmd:"" help:"Stop the timer and record its time."`
	Reset  TimerResetCmd  `cmd:"" help:"Zero the timer and the day's logged time."`
	Set    TimerSetCmd    `cmd:"" help:"Set a paused timer's elapsed time."`
	Status TimerStatusCmd `cmd:"" help:"Show the timer." default:"1"`
}

type TimerStartCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Day to log against (default: today)."`
}

func (c *TimerStartCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(tr, c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	tr.StartTimer(h.ID, date)
	tr.SetFloatingTimer(h.ID, date)
	ctx.Printf("▶ Timing %s on %s\n", h.Name, date)
	return printStatus(ctx, tr)
}

type TimerPauseCmd struct{}

func (c *TimerPauseCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if !running(tr) {
		return errors.New("no running timer")
	}
	tr.PauseTimer()
	return printStatus(ctx, tr)
}

type TimerStopCmd struct{}

func (c *TimerStopCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	current := tr.CurrentTimer()
	if current == nil {
		return timer.ErrNoTimer
	}
	elapsed := tr.ElapsedMinutes()
	tr.StopTimer()

	name := current.HabitID
	if h, ok := tr.Habit(current.HabitID); ok {
		name = h.Name
	}
	ctx.Printf("■ Stopped %s: %s recorded on %s\n", name, utils.FormatMinutes(elapsed), current.Date)
	return nil
}

type TimerResetCmd struct{}

func (c *TimerResetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if tr.CurrentTimer() == nil {
		return timer.ErrNoTimer
	}
	tr.ResetTimer()
	return printStatus(ctx, tr)
}

type TimerSetCmd struct {
	Elapsed string `arg:"" help:"Elapsed time as minutes, MM:SS or HH:MM:SS."`
}

func (c *TimerSetCmd) Run(ctx *cli.Context) error {
	minutes, err := timer.ParseClock(c.Elapsed)
	if err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.SetTimerAccumulatedTime(minutes); err != nil {
		if errors.Is(err, timer.ErrTimerRunning) {
			return fmt.Errorf("%w: pause it first", err)
		}
		return err
	}
	return printStatus(ctx, tr)
}

type TimerStatusCmd struct{}

func (c *TimerStatusCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	return printStatus(ctx, tr)
}

func running(tr *tracker.Tracker) bool {
	current := tr.CurrentTimer()
	return current != nil && current.IsRunning
}

func printStatus(ctx *cli.Context, tr *tracker.Tracker) error {
	current := tr.CurrentTimer()
	if current == nil {
		ctx.Println("No active timer.")
		return nil
	}

	name := current.HabitID
	target := 0
	if h, ok := tr.Habit(current.HabitID); ok {
		name = h.Name
		target = h.TargetMinutes
	}
	seconds, _ := tr.Tick()
	ctx.Printf("%s %s  %s on %s (target %s)\n",
		timer.StateOf(current), timer.FormatClock(seconds), name, current.Date,
		utils.FormatMinutes(float64(target)))
	return nil
}
