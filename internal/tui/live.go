// Package tui provides a live terminal view of a validation run: one line
// per engine detection and per computed value, with a pass/fail summary at
// the end.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/potval/internal/validate"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	engineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type eventMsg validate.Event

type doneMsg struct {
	res *validate.Result
	err error
}

// Model streams suite progress into a scrolling event log.
type Model struct {
	suite     *validate.Suite
	tolerance float64

	msgs     chan tea.Msg
	cancel   context.CancelFunc
	lines    []string
	result   *validate.Result
	cmp      *validate.Comparison
	runErr   error
	finished bool
}

func NewModel(suite *validate.Suite, tolerance float64) *Model {
	return &Model{
		suite:     suite,
		tolerance: tolerance,
		msgs:      make(chan tea.Msg),
		lines:     make([]string, 0, 16),
	}
}

func (m *Model) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go func() {
		res, err := m.suite.Run(ctx, func(ev validate.Event) {
			m.msgs <- eventMsg(ev)
		})
		m.msgs <- doneMsg{res: res, err: err}
	}()
	return m.wait()
}

func (m *Model) wait() tea.Cmd {
	return func() tea.Msg { return <-m.msgs }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		case "enter":
			if m.finished {
				return m, tea.Quit
			}
		}
		return m, nil

	case eventMsg:
		m.lines = append(m.lines, renderEvent(validate.Event(msg)))
		return m, m.wait()

	case doneMsg:
		m.finished = true
		m.result = msg.res
		m.runErr = msg.err
		if msg.res != nil {
			m.cmp = validate.Compare(msg.res, m.tolerance)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("potval validation"))
	b.WriteString("\n")

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.finished {
		b.WriteString("\n")
		switch {
		case m.runErr != nil:
			b.WriteString(failStyle.Render(fmt.Sprintf("run failed: %v", m.runErr)))
		case m.cmp != nil && m.cmp.Pass():
			b.WriteString(okStyle.Render(fmt.Sprintf(
				"all engines agree within %.0e (max dev %.2e)", m.cmp.Tolerance, m.cmp.MaxDev)))
		case m.cmp != nil:
			b.WriteString(failStyle.Render(fmt.Sprintf(
				"disagreement: max dev %.2e exceeds %.0e", m.cmp.MaxDev, m.cmp.Tolerance)))
		}
		b.WriteString(helpStyle.Render("\npress enter or q to exit"))
	} else {
		b.WriteString(helpStyle.Render("\nrunning... press q to cancel"))
	}
	return b.String()
}

func renderEvent(ev validate.Event) string {
	name := engineStyle.Render(ev.Engine)
	switch {
	case ev.Skipped:
		return fmt.Sprintf("%s %s", name, skipStyle.Render(fmt.Sprintf("skipped: %v", ev.Err)))
	case ev.Case == "":
		return fmt.Sprintf("%s %s", name, valueStyle.Render("version "+ev.Version))
	case ev.Err != nil:
		return fmt.Sprintf("%s %s", name, failStyle.Render(fmt.Sprintf("%s: %v", ev.Case, ev.Err)))
	default:
		return fmt.Sprintf("%s %s", name,
			valueStyle.Render(fmt.Sprintf("%-18s % .10f", ev.Case, ev.Value)))
	}
}

// Run drives the live view to completion and returns the suite result so
// the caller can print the full comparison afterwards.
func Run(suite *validate.Suite, tolerance float64) (*validate.Result, error) {
	m := NewModel(suite, tolerance)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model %T", final)
	}
	return fm.result, fm.runErr
}
