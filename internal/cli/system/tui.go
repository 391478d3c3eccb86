package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(tr), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
