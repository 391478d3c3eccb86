// Package week renders the habit-by-day completion grid for one week.
package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

const cellWidth = 5

// DayTotal is the completed/scheduled count shown under a day column
type DayTotal struct {
	Completed int
	Total     int
}

type Model struct {
	habits []models.Habit
	dates  []string
	totals []DayTotal
	today  string
	width  int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width int) {
	m.width = width
}

// SetWeek replaces the grid contents. dates must be the seven days of the
// week in display order; totals may be nil.
func (m *Model) SetWeek(habits []models.Habit, dates []string, totals []DayTotal, today string) {
	m.habits = habits
	m.dates = dates
	m.totals = totals
	m.today = today
}

// Cell returns the glyph for a habit on a date: "●" target met, "◐" some
// minutes logged, "·" scheduled but empty, blank when not scheduled.
func Cell(h models.Habit, date string) string {
	wd, err := utils.WeekdayOf(date)
	if err != nil || !h.IsScheduledOn(wd) {
		return " "
	}
	switch {
	case h.IsComplete(date):
		return "●"
	case h.Minutes(date) > 0:
		return "◐"
	default:
		return "·"
	}
}

func styleCell(glyph string) string {
	switch glyph {
	case "●":
		return doneStyle.Render(glyph)
	case "◐":
		return partialStyle.Render(glyph)
	default:
		return emptyStyle.Render(glyph)
	}
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return emptyStyle.Render("No active habits. Press 'a' to add one.")
	}

	nameWidth := constants.HabitNameMaxDisplayWidth
	pad := func(s string) string {
		return lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(nameWidth).Render(""))
	for _, d := range m.dates {
		wd, _ := utils.WeekdayOf(d)
		label := constants.WeekdayAbbrevs[wd]
		if d == m.today {
			b.WriteString(pad(todayStyle.Render(label)))
		} else {
			b.WriteString(pad(headerStyle.Render(label)))
		}
	}
	b.WriteString("\n")

	for _, h := range m.habits {
		b.WriteString(lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth).Render(h.Name))
		for _, d := range m.dates {
			b.WriteString(pad(styleCell(Cell(h, d))))
		}
		b.WriteString("\n")
	}

	if len(m.totals) == len(m.dates) {
		b.WriteString(lipgloss.NewStyle().Width(nameWidth).Render(headerStyle.Render("Done")))
		for _, t := range m.totals {
			b.WriteString(pad(headerStyle.Render(fmt.Sprintf("%d/%d", t.Completed, t.Total))))
		}
		b.WriteString("\n")
	}
	return b.String()
}
