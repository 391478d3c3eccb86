// Package tui is the interactive terminal dashboard. It reads and mutates
// habits only through the tracker.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/tui/components/week"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWeek
	StateStats
	StateAchievements
	StateAddHabit
	StateConfirmDelete
)

var tabTitles = []string{"Today", "Week", "Stats", "Achievements"}

type tickMsg time.Time

type flushMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(constants.TimerTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func flushAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flushMsg{}
	})
}

type Model struct {
	tracker         *tracker.Tracker
	state           SessionState
	previousState   SessionState
	keys            KeyMap
	styles          Styles
	help            help.Model
	weekModel       week.Model
	form            *huh.Form
	habitForm       *HabitFormModel
	date            string
	cursor          int
	elapsed         int64
	timerRunning    bool
	flushInterval   time.Duration
	habitToDeleteID string
	status          string
	quitting        bool
	width           int
	height          int
}

func NewModel(tr *tracker.Tracker) Model {
	m := Model{
		tracker:       tr,
		state:         StateToday,
		keys:          DefaultKeyMap(),
		styles:        NewStyles(tr.UIState().Theme),
		help:          help.New(),
		weekModel:     week.New(),
		date:          tr.Today(),
		flushInterval: constants.DefaultFlushInterval,
	}
	m.elapsed, m.timerRunning = tr.Tick()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), flushAfter(m.flushInterval))
}

// visibleHabits is the list the cursor moves over on the current tab
func (m Model) visibleHabits() []models.Habit {
	if m.state == StateWeek {
		return m.tracker.ActiveHabits()
	}
	return m.tracker.HabitsForDate(m.date)
}

func (m Model) selectedHabit() (models.Habit, bool) {
	habits := m.visibleHabits()
	if m.cursor < 0 || m.cursor >= len(habits) {
		return models.Habit{}, false
	}
	return habits[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleHabits())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Timer, m.keys.Add)
	case StateWeek:
		keys = append(keys, m.keys.Add, m.keys.MoveUp, m.keys.MoveDown)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Theme, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.PrevDay, m.keys.NextDay, m.keys.Today}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Toggle, m.keys.Timer, m.keys.Stop, m.keys.Reset, m.keys.Add, m.keys.Archive, m.keys.Delete}
	case StateWeek:
		actions = []key.Binding{m.keys.Add, m.keys.MoveUp, m.keys.MoveDown, m.keys.Archive, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}
