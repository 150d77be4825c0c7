package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/smokefree/internal/achievements"
	"github.com/julianstephens/smokefree/internal/calculator"
	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/health"
	"github.com/julianstephens/smokefree/internal/ledger"
	"github.com/julianstephens/smokefree/internal/logger"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/tracker"
	"github.com/julianstephens/smokefree/internal/tui/components/breathe"
	"github.com/julianstephens/smokefree/internal/tui/components/timeline"
)

type tickMsg time.Time

type Model struct {
	tracker       *tracker.Tracker
	currency      models.Currency
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	form          *huh.Form
	onboardForm   *OnboardingFormModel
	cravingForm   *CravingFormModel
	confirmReset  *bool
	timeline      timeline.Model
	breathe       breathe.Model
	achievements  viewport.Model
	bar           progress.Model
	metrics       tracker.Metrics
	health        health.Report
	summary       tracker.Summary
	series        ledger.Series
	statuses      []achievements.Status
	message       string
	err           error
	quitting      bool
	width         int
	height        int
}

// NewModel records today's login and loads the dashboard. Without a
// recorded quit attempt it opens on the onboarding form.
func NewModel(t *tracker.Tracker, currencyOverride models.Currency) Model {
	m := Model{
		tracker:      t,
		currency:     currencyOverride,
		state:        constants.StateDashboard,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		timeline:     timeline.New(0, 0),
		breathe:      breathe.New(),
		achievements: viewport.New(0, 0),
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}

	_, unlocked, err := t.RecordLogin()
	if err != nil {
		if errors.Is(err, tracker.ErrNotOnboarded) {
			m.startOnboarding()
			return m
		}
		m.err = err
		return m
	}
	m.announce(unlocked)
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Log}
	switch m.state {
	case constants.StateBreathe:
		keys = append(keys, m.keys.Breathe)
	case constants.StateHealth, constants.StateAchievements:
		keys = append(keys, m.keys.Up, m.keys.Down)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.Log, m.keys.Breathe, m.keys.Reset}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return tea.Batch(m.form.Init(), m.tick())
	}
	return m.tick()
}

// tick refreshes faster during the first day, when counters move quickly
func (m Model) tick() tea.Cmd {
	return tea.Tick(calculator.RefreshInterval(m.metrics.Elapsed), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) startOnboarding() {
	m.state = constants.StateOnboarding
	m.onboardForm = NewOnboardingFormModel()
	m.form = NewOnboardingForm(m.onboardForm)
}

func (m *Model) startCraving() tea.Cmd {
	m.previousState = m.state
	m.state = constants.StateLogCraving
	m.cravingForm = &CravingFormModel{Intensity: models.IntensityModerate, Smoked: "1"}
	m.form = NewCravingForm(m.cravingForm, m.metrics.Profile.Triggers)
	return m.form.Init()
}

func (m *Model) startReset() tea.Cmd {
	m.previousState = m.state
	m.state = constants.StateConfirmReset
	m.confirmReset = new(bool)
	m.form = NewConfirmForm(
		"Reset your quit attempt?",
		"This deletes your profile, craving log and achievements.",
		m.confirmReset,
	)
	return m.form.Init()
}

// refresh reloads every view from the tracker. It only reads.
func (m *Model) refresh() {
	metrics, err := m.tracker.DerivedMetrics()
	if err != nil {
		m.err = err
		return
	}
	m.metrics = metrics

	if m.health, err = m.tracker.HealthProgress(); err != nil {
		m.err = err
		return
	}
	m.timeline.SetReport(m.health)

	if m.summary, err = m.tracker.Summary(); err != nil {
		m.err = err
		return
	}
	if m.series, err = m.tracker.ChartSeries(); err != nil {
		m.err = err
		return
	}
	if m.statuses, err = m.tracker.AchievementProgress(); err != nil {
		m.err = err
		return
	}
	m.achievements.SetContent(m.renderAchievements())
	m.err = nil
}

func (m *Model) announce(records []models.AchievementRecord) {
	for _, r := range records {
		if def, ok := achievements.Lookup(r.ID); ok {
			m.message = "🏆 Achievement unlocked: " + def.Title
			logger.Debug("Announced achievement in TUI", "id", r.ID)
		}
	}
}

func (m Model) displayCurrency() models.Currency {
	if m.currency != "" {
		return m.currency
	}
	return m.metrics.Profile.Currency
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, help and padding
	body := max(height-6, 0)
	m.timeline.SetSize(max(width-4, 0), body)
	m.breathe.SetSize(width, body)
	m.achievements.Width = max(width-4, 0)
	m.achievements.Height = body
}
