package tui

import (
	"mcenroe/internal/models"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Runner probes a host list once. *fleet.Dispatcher satisfies it.
type Runner interface {
	Run(hosts []models.Host) []models.Outcome
}

// TickMsg asks for the next probe round.
type TickMsg time.Time

// ResultsMsg carries the outcomes of one probe round.
type ResultsMsg struct {
	Outcomes []models.Outcome
	At       time.Time
}

// StatusModel re-probes the fleet every interval and shows the latest
// outcome of each host.
type StatusModel struct {
	hosts    []models.Host
	runner   Runner
	interval time.Duration

	outcomes []models.Outcome
	lastRun  time.Time
	probing  bool

	table   table.Model
	spinner spinner.Model
}

func NewStatusModel(hosts []models.Host, runner Runner, interval time.Duration) StatusModel {
	columns := []table.Column{
		{Title: "Host", Width: 20},
		{Title: "Address", Width: 16},
		{Title: "Status", Width: 8},
		{Title: "Message", Width: 50},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(len(hosts)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return StatusModel{
		hosts:    hosts,
		runner:   runner,
		interval: interval,
		table:    t,
		spinner:  sp,
		probing:  true,
	}
}

func (m StatusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.probeCmd())
}

// probeCmd runs a full dispatch off the UI loop.
func (m StatusModel) probeCmd() tea.Cmd {
	hosts, runner := m.hosts, m.runner
	return func() tea.Msg {
		return ResultsMsg{Outcomes: runner.Run(hosts), At: time.Now()}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
