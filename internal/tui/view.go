package tui

import (
	"fmt"
	"mcenroe/internal/fleet"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1)

	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m StatusModel) View() string {
	title := titleStyle.Render(fmt.Sprintf("mcenroe - %d hosts every %s", len(m.hosts), m.interval))

	var status string
	switch {
	case m.probing:
		status = m.spinner.View() + " probing..."
	case len(m.outcomes) > 0:
		down := len(fleet.Failed(m.outcomes))
		summary := upStyle.Render(fmt.Sprintf("%d up", len(m.outcomes)-down))
		if down > 0 {
			summary += ", " + downStyle.Render(fmt.Sprintf("%d down", down))
		}
		status = fmt.Sprintf("Last run %s: %s", m.lastRun.Format("15:04:05"), summary)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, infoStyle.Render(m.table.View()), status)
	return body + "\nPress r to refresh, q to quit."
}
