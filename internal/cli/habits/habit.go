package habits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/tui"
	"github.com/julianstephens/streaklit/internal/utils"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and its history."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive or unarchive a habit."`
	Up      HabitUpCmd      `cmd:"" help:"Move a habit up the list."`
	Down    HabitDownCmd    `cmd:"" help:"Move a habit down the list."`
	Log     HabitLogCmd     `cmd:"" help:"Log minutes for a habit on a day."`
	Done    HabitDoneCmd    `cmd:"" help:"Toggle a habit done for a day."`
	Streak  HabitStreakCmd  `cmd:"" help:"Show a habit's streaks."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `help:"Optional description."`
	Target      int    `help:"Daily target in minutes." default:"30"`
	Category    string `help:"Category (health, fitness, learning, ...)." default:"other"`
	Frequency   string `help:"daily, weekly or custom." default:"daily"`
	Days        string `help:"Comma-separated scheduled weekdays for weekly/custom habits."`
	Color       string `help:"Hex color; defaults to the next palette color."`
	Icon        string `help:"Optional icon."`
	Interactive bool   `short:"i" help:"Fill in the habit with an interactive form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var in models.HabitInput
	if c.Interactive {
		fm := tui.NewHabitFormModel()
		fm.Name = c.Name
		if err := tui.NewHabitForm(fm).Run(); err != nil {
			return err
		}
		in = fm.Input()
	} else {
		if in, err = c.input(); err != nil {
			return err
		}
	}

	if _, err := cli.FindHabit(tr, in.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", in.Name)
	}

	h, err := tr.AddHabit(in)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s)\n", h.Name, cli.ShortID(h.ID))
	return nil
}

func (c *HabitAddCmd) input() (models.HabitInput, error) {
	category := models.HabitCategory(c.Category)
	if !category.IsValid() {
		return models.HabitInput{}, fmt.Errorf("invalid category: %s", c.Category)
	}
	frequency := models.HabitFrequency(c.Frequency)
	if !frequency.IsValid() {
		return models.HabitInput{}, fmt.Errorf("invalid frequency: %s", c.Frequency)
	}
	days, err := cli.ParseDays(c.Days)
	if err != nil {
		return models.HabitInput{}, err
	}
	if frequency != models.FrequencyDaily && len(days) == 0 {
		return models.HabitInput{}, fmt.Errorf("%s habits need --days", frequency)
	}
	return models.HabitInput{
		Name:          c.Name,
		Description:   c.Description,
		Category:      category,
		Color:         c.Color,
		Icon:          c.Icon,
		Frequency:     frequency,
		ScheduleDays:  days,
		TargetMinutes: c.Target,
	}, nil
}

type HabitListCmd struct {
	Archived bool   `help:"Include archived habits."`
	Date     string `help:"Show progress for this day (YYYY-MM-DD, default today)."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	var rows [][]string
	for i, h := range tr.Habits() {
		if h.IsArchived && !c.Archived {
			continue
		}
		status := ""
		switch {
		case h.IsArchived:
			status = "archived"
		case h.IsComplete(date):
			status = "done"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.ShortID(h.ID),
			h.Name,
			string(h.Category),
			scheduleLabel(h),
			fmt.Sprintf("%s/%s", utils.FormatMinutes(h.Minutes(date)), utils.FormatMinutes(float64(h.TargetMinutes))),
			strconv.Itoa(h.CurrentStreak),
			strconv.Itoa(h.LongestStreak),
			status,
		})
	}

	if len(rows) == 0 {
		ctx.Println("No habits found.")
		return nil
	}
	ctx.Println(cli.RenderTable(
		[]string{"#", "ID", "Name", "Category", "Schedule", date, "Streak", "Best", "Status"},
		rows,
	))
	return nil
}

func scheduleLabel(h models.Habit) string {
	if h.Frequency == models.FrequencyDaily || len(h.ScheduleDays) == 0 {
		return string(h.Frequency)
	}
	return strings.Join(h.ScheduleDays, ",")
}
