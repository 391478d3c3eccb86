package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// display only; the tracker is written by flushes and timer actions
		m.elapsed, m.timerRunning = m.tracker.Tick()
		return m, tick()

	case flushMsg:
		m.tracker.Flush()
		return m, flushAfter(m.flushInterval)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.weekModel.SetSize(msg.Width)
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.tracker.Flush()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(keyMsg, m.keys.Tab):
		m.switchTab(1)
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.switchTab(-1)
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.visibleHabits())-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.shiftDate(-1)
	case key.Matches(keyMsg, m.keys.NextDay):
		m.shiftDate(1)
	case key.Matches(keyMsg, m.keys.Today):
		m.setDate(m.tracker.Today())
	case key.Matches(keyMsg, m.keys.Add):
		m.habitForm = NewHabitFormModel()
		m.form = NewHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()
	default:
		return m.handleHabitKey(keyMsg)
	}
	return m, nil
}

// handleHabitKey applies actions on the habit under the cursor
func (m Model) handleHabitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state != StateToday && m.state != StateWeek {
		return m, nil
	}
	h, ok := m.selectedHabit()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.tracker.ToggleHabitCompletion(h.ID, m.date, nil)
	case key.Matches(msg, m.keys.Timer):
		if m.tracker.IsTimerRunning(h.ID, m.date) {
			m.tracker.PauseTimer()
		} else {
			m.tracker.StartTimer(h.ID, m.date)
			m.tracker.SetFocusedTimer(h.ID, m.date)
		}
	case key.Matches(msg, m.keys.Stop):
		m.tracker.StopTimer()
	case key.Matches(msg, m.keys.Reset):
		m.tracker.ResetTimer()
	case key.Matches(msg, m.keys.Archive):
		m.tracker.ArchiveHabit(h.ID)
		m.status = fmt.Sprintf("Archived %s", h.Name)
		m.clampCursor()
	case key.Matches(msg, m.keys.Delete):
		m.habitToDeleteID = h.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
	case key.Matches(msg, m.keys.MoveUp):
		m.tracker.MoveHabitUp(h.ID)
		m.followHabit(h.ID)
	case key.Matches(msg, m.keys.MoveDown):
		m.tracker.MoveHabitDown(h.ID)
		m.followHabit(h.ID)
	}
	m.elapsed, m.timerRunning = m.tracker.Tick()
	return m, nil
}

// followHabit keeps the cursor on id after a reorder
func (m *Model) followHabit(id string) {
	for i, h := range m.visibleHabits() {
		if h.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) toggleTheme() {
	theme := models.ThemeDark
	if m.tracker.UIState().Theme == models.ThemeDark {
		theme = models.ThemeLight
	}
	m.tracker.SetTheme(theme)
	m.styles = NewStyles(theme)
	m.status = "Theme: " + string(theme)
}

func (m *Model) switchTab(delta int) {
	n := len(tabTitles)
	m.state = SessionState((int(m.state) + delta + n) % n)
	m.cursor = 0

	switch m.state {
	case StateWeek:
		m.tracker.SetViewMode(models.ViewWeek)
	case StateStats:
		m.tracker.SetViewMode(models.ViewAnalytics)
	}
}

func (m *Model) shiftDate(days int) {
	next, err := utils.AddDays(m.date, days)
	if err != nil {
		return
	}
	m.setDate(next)
}

func (m *Model) setDate(date string) {
	m.date = date
	m.tracker.SetSelectedDate(date)
	m.clampCursor()
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		h, err := m.tracker.AddHabit(m.habitForm.Input())
		if err != nil {
			// stay in the form so the user can correct it
			m.status = fmt.Sprintf("Failed to add habit: %v", err)
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.status = fmt.Sprintf("Added %s", h.Name)
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if h, ok := m.tracker.Habit(m.habitToDeleteID); ok {
			m.tracker.DeleteHabit(h.ID)
			m.status = fmt.Sprintf("Deleted %s", h.Name)
		}
		m.habitToDeleteID = ""
		m.state = m.previousState
		m.clampCursor()
	case "n", "N", "esc", "q":
		m.habitToDeleteID = ""
		m.state = m.previousState
	}
	return m, nil
}
