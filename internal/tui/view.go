package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/constants"
)

// chartDays caps the craving chart to the most recent days
const chartDays = 14

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateHealth:
		content = docStyle.Render(m.timeline.View())
	case constants.StateProgress:
		content = m.viewProgress()
	case constants.StateAchievements:
		content = docStyle.Render(m.achievements.View())
	case constants.StateBreathe:
		content = m.breathe.View()
	case constants.StateOnboarding:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Welcome! Let's set up your quit attempt."),
			"",
			m.form.View(),
		))
	case constants.StateLogCraving:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Log a craving"),
			"",
			m.form.View(),
		))
	case constants.StateConfirmReset:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			dangerStyle.Render("Reset"),
			"",
			m.form.View(),
		))
	}

	sections := []string{m.viewTabs(), content}
	if m.err != nil {
		sections = append(sections, dangerStyle.Render("Error: "+m.err.Error()))
	} else if m.message != "" {
		sections = append(sections, successStyle.Render(m.message))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Dashboard", "Health", "Progress", "Achievements", "Breathe"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func (m Model) viewDashboard() string {
	p := m.metrics.Profile
	e := m.metrics.Elapsed
	proj := m.metrics.Projection
	cur := m.displayCurrency()

	greeting := "Smoke-free"
	if p.Name != "" {
		greeting = "Smoke-free, " + p.Name
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		row("Time smoke-free", cli.FormatElapsed(e)),
		row("Cigarettes avoided", cli.FormatCount(proj.CigarettesAvoided, e)),
		row("Money saved", cli.FormatMoney(cur, proj.MoneySaved)),
		row("Cigarettes smoked", fmt.Sprintf("%d", proj.CigarettesSmoked)),
		row("Login streak", fmt.Sprintf("%d days (best %d)", p.StreakCount, p.LongestStreak)),
		row("Cravings managed", fmt.Sprintf("%d of %d", p.CravingManaged, p.CravingCount)),
	)

	lines := []string{titleStyle.Render(greeting), "", cardStyle.Render(stats), ""}

	if next := m.health.Next; next != nil {
		lines = append(lines,
			fmt.Sprintf("Next milestone: %s (%s)", next.Label, next.Benefit),
			m.bar.ViewAs(next.Percent/100)+fmt.Sprintf(" %.1f%%", next.Percent),
		)
	} else {
		lines = append(lines, successStyle.Render("Every health milestone reached."))
	}

	if len(p.Motivations) > 0 {
		lines = append(lines, "", mutedStyle.Render("Remember why: "+strings.Join(p.Motivations, ", ")))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewProgress() string {
	s := m.summary

	strongest := "-"
	if s.HasStrongest {
		strongest = fmt.Sprintf("%s (%d resisted)", s.StrongestDay.Day.Format(constants.DateFormat), s.StrongestDay.Managed)
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		row("Cravings logged", fmt.Sprintf("%d", s.Total)),
		row("Resisted", fmt.Sprintf("%d", s.Managed)),
		row("Success rate", fmt.Sprintf("%.0f%%", s.SuccessRate)),
		row("Strongest day", strongest),
		row("Longest streak", fmt.Sprintf("%d days", s.LongestStreak)),
	)

	lines := []string{cardStyle.Render(stats), "", titleStyle.Render("Cravings per day")}
	lines = append(lines, m.renderChart()...)

	if len(s.Triggers) > 0 {
		lines = append(lines, "", titleStyle.Render("Top triggers"))
		for _, tc := range s.Triggers {
			lines = append(lines, fmt.Sprintf("%-20s %3d  (%d resisted)", tc.Trigger, tc.Total, tc.Managed))
		}
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderChart() []string {
	labels, totals, managed := m.series.Labels, m.series.Totals, m.series.Managed
	if len(labels) > chartDays {
		n := len(labels) - chartDays
		labels, totals, managed = labels[n:], totals[n:], managed[n:]
	}
	if len(labels) == 0 {
		return []string{mutedStyle.Render("No days tracked yet.")}
	}

	peak := 1
	for _, t := range totals {
		peak = max(peak, t)
	}

	out := make([]string, len(labels))
	for i, label := range labels {
		width := totals[i] * 30 / peak
		resisted := 0
		if totals[i] > 0 {
			resisted = managed[i] * width / totals[i]
		}
		bar := successStyle.Render(strings.Repeat("█", resisted)) + dangerStyle.Render(strings.Repeat("█", width-resisted))
		out[i] = fmt.Sprintf("%s %s %d", label, bar, totals[i])
	}
	return out
}

func (m Model) renderAchievements() string {
	var b strings.Builder
	for _, s := range m.statuses {
		mark := "🔒"
		if s.Unlocked {
			mark = "🏆"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, valueStyle.Render(s.Title))
		fmt.Fprintf(&b, "   %s\n", mutedStyle.Render(s.Description))
		if s.Unlocked {
			fmt.Fprintf(&b, "   Unlocked %s\n\n", s.UnlockedAt.In(m.tracker.Location()).Format(constants.DateFormat))
			continue
		}
		fmt.Fprintf(&b, "   %s %.0f%%\n\n", cli.Bar(s.Percent, 20), s.Percent)
	}
	return b.String()
}
