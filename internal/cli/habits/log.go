package habits

import (
	"fmt"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/utils"
)

type HabitLogCmd struct {
	Habit   string  `arg:"" help:"Habit name or id."`
	Minutes float64 `arg:"" help:"Minutes to record; 0 clears the day."`
	Date    string  `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Minutes < 0 {
		return fmt.Errorf("minutes cannot be negative")
	}
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

	minutes := c.Minutes
	tr.ToggleHabitCompletion(h.ID, date, &minutes)
	return printProgress(ctx, h.ID, date)
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

// Run marks the habit done at its target, or clears the day when anything
// was already logged
func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
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

	tr.ToggleHabitCompletion(h.ID, date, nil)
	return printProgress(ctx, h.ID, date)
}

func printProgress(ctx *cli.Context, id, date string) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, ok := tr.Habit(id)
	if !ok {
		return fmt.Errorf("habit %s disappeared", id)
	}

	mark := "○"
	if h.IsComplete(date) {
		mark = cli.SuccessStyle.Render("✓")
	}
	ctx.Printf("%s %s on %s: %s / %s (streak %d)\n",
		mark, h.Name, date,
		utils.FormatMinutes(h.Minutes(date)), utils.FormatMinutes(float64(h.TargetMinutes)),
		h.CurrentStreak)
	return nil
}

type HabitStreakCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Show the streak as of this day (YYYY-MM-DD)."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(tr, c.Habit)
	if err != nil {
		return err
	}

	if c.Date != "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		ctx.Printf("%s streak on %s: %d\n", h.Name, date, tr.CalculateStreakForDate(h.ID, date))
		return nil
	}

	ctx.Printf("%s\n  current: %d\n  longest: %d\n  total:   %s\n",
		h.Name, tr.GetHabitStreak(h.ID), h.LongestStreak, utils.FormatMinutes(h.TotalMinutes))
	return nil
}
