// Package breathe renders a guided 4-7-8 breathing exercise.
package breathe

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/smokefree/internal/constants"
)

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Padding(1, 0)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(20).
			Align(lipgloss.Center)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Phase int

const (
	Inhale Phase = iota
	Hold
	Exhale
)

func (p Phase) String() string {
	switch p {
	case Inhale:
		return "Breathe in"
	case Hold:
		return "Hold"
	default:
		return "Breathe out"
	}
}

// CycleSeconds is the length of one inhale-hold-exhale cycle
const CycleSeconds = constants.BreatheInhaleSec + constants.BreatheHoldSec + constants.BreatheExhaleSec

// At returns the phase, the seconds left in it and the number of completed
// cycles after running for d.
func At(d time.Duration) (Phase, int, int) {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	cycles := secs / CycleSeconds
	pos := secs % CycleSeconds

	switch {
	case pos < constants.BreatheInhaleSec:
		return Inhale, constants.BreatheInhaleSec - pos, cycles
	case pos < constants.BreatheInhaleSec+constants.BreatheHoldSec:
		return Hold, constants.BreatheInhaleSec + constants.BreatheHoldSec - pos, cycles
	default:
		return Exhale, CycleSeconds - pos, cycles
	}
}

type Model struct {
	startedAt time.Time
	now       time.Time
	running   bool
	width     int
	height    int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Toggle starts the exercise at now, or stops it if running
func (m *Model) Toggle(now time.Time) {
	m.running = !m.running
	m.startedAt = now
	m.now = now
}

// Tick advances the exercise clock
func (m *Model) Tick(now time.Time) {
	m.now = now
}

func (m Model) Running() bool {
	return m.running
}

func (m Model) View() string {
	var content string
	if !m.running {
		content = lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render("4-7-8 breathing"),
			"Inhale for 4 seconds, hold for 7, exhale for 8.",
			"",
			hintStyle.Render("Press space to begin. Ride out the craving."),
		)
	} else {
		phase, left, cycles := At(m.now.Sub(m.startedAt))
		content = lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render(phase.String()),
			countStyle.Render(fmt.Sprintf("%d", left)),
			"",
			hintStyle.Render(fmt.Sprintf("Cycles completed: %d %s", cycles, strings.Repeat("●", min(cycles, 10)))),
			hintStyle.Render("Press space to stop."),
		)
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
