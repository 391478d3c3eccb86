package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	// SuccessStyle marks confirmations
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	// WarningStyle marks destructive prompts
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// RenderTable draws rows under headers with rounded borders
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
