package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/logger"
	"github.com/julianstephens/smokefree/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case tickMsg:
		if m.state != constants.StateOnboarding {
			m.refresh()
		}
		m.breathe.Tick(m.tracker.Now())
		return m, m.tick()
	}

	switch m.state {
	case constants.StateOnboarding, constants.StateLogCraving, constants.StateConfirmReset:
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + constants.TabCount) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Log):
			m.message = ""
			return m, m.startCraving()
		case key.Matches(msg, m.keys.Reset):
			m.message = ""
			return m, m.startReset()
		case key.Matches(msg, m.keys.Breathe) && m.state == constants.StateBreathe:
			m.breathe.Toggle(m.tracker.Now())
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHealth:
		m.timeline, cmd = m.timeline.Update(msg)
	case constants.StateAchievements:
		m.achievements, cmd = m.achievements.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc && m.state != constants.StateOnboarding {
			m.closeForm()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case constants.StateOnboarding:
			return m, m.completeOnboarding()
		case constants.StateLogCraving:
			m.completeCraving()
		case constants.StateConfirmReset:
			return m, m.completeReset()
		}
	case huh.StateAborted:
		if m.state == constants.StateOnboarding {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.cravingForm = nil
	m.confirmReset = nil
	m.state = m.previousState
}

func (m *Model) completeOnboarding() tea.Cmd {
	in, err := m.onboardForm.Input(m.tracker.Location())
	if err == nil {
		_, err = m.tracker.Onboard(in)
	}
	if err != nil {
		// Restart the form with the answers kept so the user can fix them
		m.err = err
		m.form = NewOnboardingForm(m.onboardForm)
		return m.form.Init()
	}

	_, unlocked, err := m.tracker.RecordLogin()
	if err != nil {
		m.err = err
	}
	m.form = nil
	m.onboardForm = nil
	m.state = constants.StateDashboard
	m.message = "Your smoke-free journey has started."
	m.announce(unlocked)
	m.refresh()
	return nil
}

func (m *Model) completeCraving() {
	event := m.cravingForm.Event()
	m.closeForm()

	saved, unlocked, err := m.tracker.AppendCraving(event)
	if err != nil {
		m.err = err
		return
	}
	if saved.GaveIn {
		m.message = "Craving logged. A slip is not a failure, keep going."
	} else {
		m.message = "Craving resisted. Well done!"
	}
	m.announce(unlocked)
	m.refresh()
}

func (m *Model) completeReset() tea.Cmd {
	confirmed := m.confirmReset != nil && *m.confirmReset
	m.closeForm()
	if !confirmed {
		return nil
	}

	if err := m.tracker.Reset(); err != nil {
		m.err = err
		return nil
	}
	logger.Info("Quit attempt reset from TUI")
	m.metrics = tracker.Metrics{}
	m.message = ""
	m.startOnboarding()
	return m.form.Init()
}
