// Package timeline renders the health milestone timeline in a scrollable viewport.
package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/smokefree/internal/health"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(14)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	benefitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	bar      progress.Model
	Report   *health.Report
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Report == nil {
		return "No health data yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetReport(r health.Report) {
	m.Report = &r
	m.Render()
}

func (m *Model) Render() {
	if m.Report == nil {
		m.viewport.SetContent("No health data yet.")
		return
	}

	var b strings.Builder
	if m.Report.SetbackMinutes > 0 {
		fmt.Fprintf(&b, "Recovery set back %d minutes by cigarettes smoked since quitting.\n\n", m.Report.SetbackMinutes)
	}
	for _, s := range m.Report.Timeline {
		mark := "  "
		if s.Complete {
			mark = doneStyle.Render("✓ ")
		}
		fmt.Fprintf(&b, "%s%s %s %5.1f%%\n", mark, labelStyle.Render(s.Label), m.bar.ViewAs(s.Percent/100), s.Percent)
		fmt.Fprintf(&b, "   %s\n", benefitStyle.Render(s.Benefit))
		if !s.Complete && m.Report.Next != nil && m.Report.Next.Label == s.Label && s.Action != "" {
			fmt.Fprintf(&b, "   Next step: %s\n", s.Action)
		}
	}
	m.viewport.SetContent(b.String())
}
