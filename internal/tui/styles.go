package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streaklit/internal/models"
)

type palette struct {
	accent  lipgloss.Color
	tabBg   lipgloss.Color
	muted   lipgloss.Color
	text    lipgloss.Color
	success lipgloss.Color
	warning lipgloss.Color
	danger  lipgloss.Color
	timer   lipgloss.Color
}

var palettes = map[models.Theme]palette{
	models.ThemeLight: {
		accent:  "163",
		tabBg:   "254",
		muted:   "245",
		text:    "235",
		success: "28",
		warning: "166",
		danger:  "160",
		timer:   "25",
	},
	models.ThemeDark: {
		accent:  "205",
		tabBg:   "236",
		muted:   "240",
		text:    "252",
		success: "42",
		warning: "214",
		danger:  "196",
		timer:   "39",
	},
}

// Styles holds every lipgloss style the dashboard renders with for one theme.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Heading     lipgloss.Style
	Status      lipgloss.Style
	Cursor      lipgloss.Style
	Done        lipgloss.Style
	Dim         lipgloss.Style
	Timer       lipgloss.Style
	Danger      lipgloss.Style
	Doc         lipgloss.Style
}

// NewStyles builds the style set for theme, falling back to light.
func NewStyles(theme models.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[models.ThemeLight]
	}
	return Styles{
		ActiveTab:   lipgloss.NewStyle().Foreground(p.accent).Background(p.tabBg).Padding(0, 1).Bold(true),
		InactiveTab: lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		Heading:     lipgloss.NewStyle().Foreground(p.text).Bold(true).MarginBottom(1),
		Status:      lipgloss.NewStyle().Foreground(p.warning).Italic(true),
		Cursor:      lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Done:        lipgloss.NewStyle().Foreground(p.success),
		Dim:         lipgloss.NewStyle().Foreground(p.muted),
		Timer:       lipgloss.NewStyle().Foreground(p.timer).Bold(true),
		Danger:      lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		Doc:         lipgloss.NewStyle().Padding(1, 2),
	}
}
