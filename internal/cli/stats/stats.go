package stats

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/tui/components/week"
	"github.com/julianstephens/streaklit/internal/utils"
)

type StatsCmd struct {
	JSON bool `help:"Print the statistics as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	s := tr.GetWeeklyStats()

	if c.JSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println(cli.RenderTable(
		[]string{"Due today", "Done today", "Today", "This week", "Best streak"},
		[][]string{{
			strconv.Itoa(s.TotalHabits),
			strconv.Itoa(s.CompletedToday),
			fmt.Sprintf("%.0f%%", s.CompletionRate),
			fmt.Sprintf("%.0f%%", s.WeeklyCompletionRate),
			strconv.Itoa(s.CurrentStreak),
		}},
	))

	var rows [][]string
	for _, h := range tr.ActiveHabits() {
		rows = append(rows, []string{
			h.Name,
			strconv.Itoa(h.CurrentStreak),
			strconv.Itoa(h.LongestStreak),
			utils.FormatMinutes(h.TotalMinutes),
		})
	}
	if len(rows) > 0 {
		ctx.Println(cli.RenderTable([]string{"Habit", "Streak", "Longest", "Total"}, rows))
	}
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	progress := tr.GetWeeklyProgress()
	dates := make([]string, len(progress))
	totals := make([]week.DayTotal, len(progress))
	for i, p := range progress {
		dates[i] = p.Date
		totals[i] = week.DayTotal{Completed: p.Completed, Total: p.Total}
	}

	grid := week.New()
	grid.SetWeek(tr.ActiveHabits(), dates, totals, ctx.Today())
	if len(dates) > 0 {
		ctx.Printf("Week of %s\n\n", dates[0])
	}
	ctx.Println(grid.View())
	return nil
}

type AchievementsCmd struct {
	Unlocked bool `help:"Only show unlocked achievements."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var rows [][]string
	unlocked := 0
	all := tr.Achievements()
	for _, a := range all {
		if a.IsUnlocked() {
			unlocked++
		} else if c.Unlocked {
			continue
		}
		rows = append(rows, []string{
			a.Icon + " " + a.Name,
			a.Description,
			fmt.Sprintf("%d/%d", a.Progress, a.Target),
			cli.FormatTime(a.UnlockedAt),
		})
	}

	ctx.Printf("%d of %d achievements unlocked\n", unlocked, len(all))
	if len(rows) > 0 {
		ctx.Println(cli.RenderTable([]string{"Achievement", "Description", "Progress", "Unlocked"}, rows))
	}
	return nil
}
