package habits

import (
	"fmt"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/models"
)

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Target      *int    `help:"New daily target in minutes."`
	Category    *string `help:"New category."`
	Frequency   *string `help:"New frequency (daily, weekly, custom)."`
	Days        *string `help:"New comma-separated scheduled weekdays."`
	Color       *string `help:"New hex color."`
	Icon        *string `help:"New icon."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(tr, c.Habit)
	if err != nil {
		return err
	}

	patch, err := c.patch()
	if err != nil {
		return err
	}
	if err := tr.UpdateHabit(h.ID, patch); err != nil {
		return err
	}

	updated, _ := tr.Habit(h.ID)
	ctx.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

func (c *HabitEditCmd) patch() (models.HabitPatch, error) {
	patch := models.HabitPatch{
		Name:          c.Name,
		Description:   c.Description,
		Color:         c.Color,
		Icon:          c.Icon,
		TargetMinutes: c.Target,
	}
	if c.Target != nil && *c.Target <= 0 {
		return patch, fmt.Errorf("target must be a positive number of minutes")
	}
	if c.Category != nil {
		category := models.HabitCategory(*c.Category)
		if !category.IsValid() {
			return patch, fmt.Errorf("invalid category: %s", *c.Category)
		}
		patch.Category = &category
	}
	if c.Frequency != nil {
		frequency := models.HabitFrequency(*c.Frequency)
		if !frequency.IsValid() {
			return patch, fmt.Errorf("invalid frequency: %s", *c.Frequency)
		}
		patch.Frequency = &frequency
	}
	if c.Days != nil {
		days, err := cli.ParseDays(*c.Days)
		if err != nil {
			return patch, err
		}
		patch.ScheduleDays = models.NormalizeSchedule(days)
	}
	return patch, nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(tr, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("This permanently deletes %q with all of its history and schedules.", h.Name)))
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	tr.DeleteHabit(h.ID)
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Undo  bool   `help:"Unarchive instead."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(tr, c.Habit)
	if err != nil {
		return err
	}

	if c.Undo {
		tr.UnarchiveHabit(h.ID)
		ctx.Printf("Unarchived habit: %s\n", h.Name)
		return nil
	}
	tr.ArchiveHabit(h.ID)
	ctx.Printf("Archived habit: %s\n", h.Name)
	return nil
}

type HabitUpCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitUpCmd) Run(ctx *cli.Context) error {
	return move(ctx, c.Habit, -1)
}

type HabitDownCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitDownCmd) Run(ctx *cli.Context) error {
	return move(ctx, c.Habit, 1)
}

func move(ctx *cli.Context, ref string, delta int) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(tr, ref)
	if err != nil {
		return err
	}
	if delta < 0 {
		tr.MoveHabitUp(h.ID)
	} else {
		tr.MoveHabitDown(h.ID)
	}

	for i, other := range tr.Habits() {
		if other.ID == h.ID {
			ctx.Printf("%s is now #%d\n", h.Name, i+1)
		}
	}
	return nil
}
