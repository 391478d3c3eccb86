package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/timer"
	"github.com/julianstephens/streaklit/internal/tui/components/week"
	"github.com/julianstephens/streaklit/internal/utils"
)

const progressBarWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateWeek:
		content = m.viewWeek()
	case StateStats:
		content = m.viewStats()
	case StateAchievements:
		content = m.viewAchievements()
	case StateAddHabit:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.status != "" {
		status = m.styles.Status.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.styles.Doc.Render(content),
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	var b strings.Builder

	title := m.date
	if m.date == m.tracker.Today() {
		title += " (today)"
	}
	b.WriteString(m.styles.Heading.Render(title))
	b.WriteString("\n")

	habits := m.tracker.HabitsForDate(m.date)
	if len(habits) == 0 {
		b.WriteString(m.styles.Dim.Render("Nothing scheduled. Press 'a' to add a habit."))
		return b.String()
	}

	current := m.tracker.CurrentTimer()
	for i, h := range habits {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}

		check := "[ ]"
		name := h.Name
		if h.IsComplete(m.date) {
			check = m.styles.Done.Render("[x]")
			name = m.styles.Done.Render(name)
		}

		line := fmt.Sprintf("%s%s %-*s %s / %s",
			cursor, check, 24, name,
			utils.FormatMinutes(h.Minutes(m.date)), utils.FormatMinutes(float64(h.TargetMinutes)))
		if streak := m.tracker.CalculateStreakForDate(h.ID, m.date); streak > 0 {
			line += fmt.Sprintf("  🔥 %d", streak)
		}
		if current != nil && current.Matches(h.ID, m.date) {
			state := "⏸"
			if m.timerRunning {
				state = "▶"
			}
			line += "  " + m.styles.Timer.Render(state+" "+timer.FormatClock(m.elapsed))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewWeek() string {
	progress := m.tracker.GetWeeklyProgress()
	dates := make([]string, len(progress))
	totals := make([]week.DayTotal, len(progress))
	for i, p := range progress {
		dates[i] = p.Date
		totals[i] = week.DayTotal{Completed: p.Completed, Total: p.Total}
	}

	m.weekModel.SetWeek(m.tracker.ActiveHabits(), dates, totals, m.tracker.Today())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Heading.Render("This week"),
		m.weekModel.View(),
	)
}

func (m Model) viewStats() string {
	s := m.tracker.GetWeeklyStats()

	rows := []string{
		m.styles.Heading.Render("Statistics"),
		fmt.Sprintf("Habits due today:   %d", s.TotalHabits),
		fmt.Sprintf("Completed today:    %d", s.CompletedToday),
		fmt.Sprintf("Today's rate:       %.0f%%", s.CompletionRate),
		fmt.Sprintf("This week's rate:   %.0f%%", s.WeeklyCompletionRate),
		fmt.Sprintf("Best current streak: %d", s.CurrentStreak),
		"",
	}
	for _, h := range m.tracker.ActiveHabits() {
		rows = append(rows, fmt.Sprintf("%-*s streak %3d  longest %3d  total %s",
			24, h.Name, h.CurrentStreak, h.LongestStreak, utils.FormatMinutes(h.TotalMinutes)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) progressBar(a models.Achievement) string {
	filled := 0
	if a.Target > 0 {
		filled = a.Progress * progressBarWidth / a.Target
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return m.styles.Done.Render(strings.Repeat("█", filled)) + m.styles.Dim.Render(strings.Repeat("░", progressBarWidth-filled))
}

func (m Model) viewAchievements() string {
	rows := []string{m.styles.Heading.Render("Achievements")}
	for _, a := range m.tracker.Achievements() {
		name := a.Icon + " " + a.Name
		if a.IsUnlocked() {
			name = m.styles.Done.Render(name)
		} else {
			name = m.styles.Dim.Render(name)
		}
		rows = append(rows, fmt.Sprintf("%s %d/%d  %s", m.progressBar(a), a.Progress, a.Target, name))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if h, ok := m.tracker.Habit(m.habitToDeleteID); ok {
		name = h.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Danger.Render(fmt.Sprintf("Delete %q and all of its history?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
