package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

func (m StatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.probing {
				m.probing = true
				return m, tea.Batch(m.spinner.Tick, m.probeCmd())
			}
			return m, nil
		}

	case TickMsg:
		// a manual refresh may already be in flight
		if m.probing {
			return m, nil
		}
		m.probing = true
		return m, tea.Batch(m.spinner.Tick, m.probeCmd())

	case ResultsMsg:
		m.probing = false
		m.outcomes = msg.Outcomes
		m.lastRun = msg.At

		rows := make([]table.Row, len(m.outcomes))
		for i, o := range m.outcomes {
			status := "up"
			if !o.Success {
				status = "down"
			}
			rows[i] = table.Row{o.Name, o.IP.String(), status, o.Message}
		}
		m.table.SetRows(rows)

		return m, tickCmd(m.interval)

	case spinner.TickMsg:
		if !m.probing {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
