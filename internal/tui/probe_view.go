package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

type probeStyles struct {
	Spinner lipgloss.Style
	Message lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
}

func defaultProbeStyles() probeStyles {
	return probeStyles{
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Message: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// probeDoneMsg carries the finished report into the view.
type probeDoneMsg struct {
	report *rodooddb.Report
}

// probeModel animates a spinner while the probe runs in a tea command.
type probeModel struct {
	spinner spinner.Model
	target  string
	run     func() *rodooddb.Report
	report  *rodooddb.Report
	aborted bool
	styles  probeStyles
}

func newProbeModel(target string, run func() *rodooddb.Report) probeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return probeModel{
		spinner: s,
		target:  target,
		run:     run,
		styles:  defaultProbeStyles(),
	}
}

// Init implements tea.Model.
func (m probeModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return probeDoneMsg{report: m.run()} },
	)
}

// Update implements tea.Model.
func (m probeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case probeDoneMsg:
		m.report = msg.report
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m probeModel) View() string {
	if m.aborted {
		return m.styles.Failure.Render("✗ probe aborted") + "\n"
	}
	if m.report != nil {
		if m.report.Reachable {
			return m.styles.Success.Render(fmt.Sprintf("✓ %s reachable (%d attempt(s), %v)",
				m.report.Target, len(m.report.Attempts), m.report.Elapsed.Round(time.Millisecond))) + "\n"
		}
		return m.styles.Failure.Render(fmt.Sprintf("✗ %s unreachable: %s",
			m.report.Target, m.report.LastError())) + "\n"
	}
	return m.spinner.View() + " " + m.styles.Message.Render("probing "+m.target+"…")
}

// RunProbe animates the probe and returns its report. Returns a nil report
// when the user aborted before a verdict.
func RunProbe(ctx context.Context, target string, run func(ctx context.Context) *rodooddb.Report) (*rodooddb.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newProbeModel(target, func() *rodooddb.Report { return run(ctx) })
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("probe view: %w", err)
	}

	m, ok := final.(probeModel)
	if !ok || m.aborted {
		return nil, context.Canceled
	}
	return m.report, nil
}
