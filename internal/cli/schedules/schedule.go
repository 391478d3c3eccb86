package schedules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/scheduler"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/utils"
)

type ScheduleCmd struct {
	Plan   SchedulePlanCmd   `cmd:"" help:"Fill the day's free time with unfinished habits."`
	Add    ScheduleAddCmd    `cmd:"" help:"Plan a time block for a habit."`
	List   ScheduleListCmd   `cmd:"" help:"List planned blocks for a day." default:"1"`
	Done   ScheduleDoneCmd   `cmd:"" help:"Mark a planned block done."`
	Delete ScheduleDeleteCmd `cmd:"" help:"Remove a planned block."`
}

type SchedulePlanCmd struct {
	Date   string `help:"Day to plan (default: today)."`
	Start  string `help:"Start of the plannable day (HH:MM)." default:"08:00"`
	End    string `help:"End of the plannable day (HH:MM)." default:"22:00"`
	DryRun bool   `help:"Show the plan without saving it."`
}

func (c *SchedulePlanCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	blocks, err := scheduler.New().Plan(date, tr.Habits(), tr.Schedules(), c.Start, c.End)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		ctx.Printf("Nothing to plan for %s.\n", date)
		return nil
	}

	if !c.DryRun {
		for i, b := range blocks {
			created, ok := tr.AddSchedule(b)
			if ok {
				blocks[i] = created
			}
		}
	}
	printBlocks(ctx, tr, blocks)
	if c.DryRun {
		ctx.Println("Dry run: nothing was saved.")
	}
	return nil
}

type ScheduleAddCmd struct {
	Habit    string `arg:"" help:"Habit name or id."`
	Start    string `arg:"" help:"Start time (HH:MM)."`
	End      string `help:"End time (HH:MM)."`
	Duration int    `help:"Length in minutes; defaults to the habit's target."`
	Date     string `help:"Day of the block (default: today)."`
	Notes    string `help:"Optional notes."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
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
	if _, _, err := utils.ParseTimeOfDay(c.Start); err != nil {
		return err
	}
	if c.End != "" {
		if _, _, err := utils.ParseTimeOfDay(c.End); err != nil {
			return err
		}
		if c.End <= c.Start {
			return fmt.Errorf("end %s must be after start %s", c.End, c.Start)
		}
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}

	duration := c.Duration
	if duration == 0 && c.End == "" {
		duration = h.TargetMinutes
	}
	created, ok := tr.AddSchedule(models.Schedule{
		HabitID:   h.ID,
		Date:      date,
		StartTime: c.Start,
		EndTime:   c.End,
		Duration:  duration,
		Notes:     c.Notes,
	})
	if !ok {
		return fmt.Errorf("habit %s disappeared", h.Name)
	}
	ctx.Printf("Planned %s on %s at %s (%s)\n", h.Name, date, created.StartTime, cli.ShortID(created.ID))
	return nil
}

type ScheduleListCmd struct {
	Date string `help:"Day to list (default: today)."`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	var blocks []models.Schedule
	for _, s := range tr.Schedules() {
		if s.Date == date {
			blocks = append(blocks, s)
		}
	}
	if len(blocks) == 0 {
		ctx.Printf("Nothing planned for %s.\n", date)
		return nil
	}
	printBlocks(ctx, tr, blocks)
	return nil
}

type ScheduleDoneCmd struct {
	ID   string `arg:"" help:"Block id or unique id prefix."`
	Undo bool   `help:"Mark the block not done."`
}

func (c *ScheduleDoneCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	s, err := findSchedule(tr, c.ID)
	if err != nil {
		return err
	}
	done := !c.Undo
	tr.UpdateSchedule(s.ID, models.SchedulePatch{IsCompleted: &done})
	if done {
		ctx.Printf("Marked block %s done\n", cli.ShortID(s.ID))
	} else {
		ctx.Printf("Marked block %s not done\n", cli.ShortID(s.ID))
	}
	return nil
}

type ScheduleDeleteCmd struct {
	ID string `arg:"" help:"Block id or unique id prefix."`
}

func (c *ScheduleDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	s, err := findSchedule(tr, c.ID)
	if err != nil {
		return err
	}
	tr.DeleteSchedule(s.ID)
	ctx.Printf("Deleted block %s\n", cli.ShortID(s.ID))
	return nil
}

func findSchedule(tr *tracker.Tracker, ref string) (models.Schedule, error) {
	var match *models.Schedule
	schedules := tr.Schedules()
	for i := range schedules {
		if schedules[i].ID == ref {
			return schedules[i], nil
		}
		if ref != "" && strings.HasPrefix(schedules[i].ID, ref) {
			if match != nil {
				return models.Schedule{}, fmt.Errorf("block id prefix %q is ambiguous", ref)
			}
			match = &schedules[i]
		}
	}
	if match == nil {
		return models.Schedule{}, fmt.Errorf("block %q not found", ref)
	}
	return *match, nil
}

func printBlocks(ctx *cli.Context, tr *tracker.Tracker, blocks []models.Schedule) {
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].StartTime < blocks[j].StartTime })

	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		name := b.HabitID
		if h, ok := tr.Habit(b.HabitID); ok {
			name = h.Name
		}
		end := b.EndTime
		if end == "" {
			end = "-"
		}
		status := ""
		if b.IsCompleted {
			status = "done"
		}
		rows = append(rows, []string{
			cli.ShortID(b.ID),
			b.StartTime,
			end,
			name,
			utils.FormatMinutes(float64(b.Duration)),
			status,
			b.Notes,
		})
	}
	ctx.Println(cli.RenderTable([]string{"ID", "Start", "End", "Habit", "Length", "Status", "Notes"}, rows))
}
