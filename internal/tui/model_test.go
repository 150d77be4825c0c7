package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/storage"
	"github.com/julianstephens/smokefree/internal/tracker"
)

var quit = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTracker(t *testing.T) (*tracker.Tracker, storage.Provider, *clock) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "smokefree.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	c := &clock{t: quit}
	tr := tracker.New(store,
		tracker.WithClock(c.now),
		tracker.WithLocation(time.UTC),
		tracker.WithDayPolicy(constants.DayPolicyCalendar),
	)
	return tr, store, c
}

func onboarded(t *testing.T) (*tracker.Tracker, storage.Provider, *clock) {
	t.Helper()
	tr, store, c := newTracker(t)
	_, err := tr.Onboard(tracker.OnboardInput{
		Name:              "Sam",
		StartDate:         quit,
		CigarettesPerDay:  20,
		CostPerPack:       100,
		CigarettesPerPack: 20,
		Currency:          models.CurrencyUSD,
		Motivations:       []string{"Family"},
	})
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}
	return tr, store, c
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelWithoutProfileOpensOnboarding(t *testing.T) {
	tr, _, _ := newTracker(t)

	m := NewModel(tr, "")
	if m.state != constants.StateOnboarding {
		t.Fatalf("state = %v, want onboarding", m.state)
	}
	if m.form == nil || m.onboardForm == nil {
		t.Fatal("expected onboarding form")
	}
	if m.err != nil {
		t.Errorf("unexpected error: %v", m.err)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	tr, store, _ := newTracker(t)
	m := NewModel(tr, "")

	m.onboardForm.Name = "Ana"
	m.onboardForm.PerDay = "10"
	m.onboardForm.PackCost = "12.5"
	m.onboardForm.Currency = models.CurrencyUSD
	m.onboardForm.Motivations = []string{"Family"}
	m.completeOnboarding()

	if m.state != constants.StateDashboard {
		t.Fatalf("state = %v, want dashboard", m.state)
	}
	p, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Name != "Ana" || p.CigarettesPerPack != constants.DefaultCigarettesPerPack || !p.StartDate.Equal(quit) {
		t.Errorf("unexpected profile: %+v", p)
	}
	if !strings.Contains(m.View(), "Smoke-free, Ana") {
		t.Errorf("dashboard missing greeting:\n%s", m.View())
	}
}

func TestCompleteOnboardingKeepsFormOnError(t *testing.T) {
	tr, _, _ := newTracker(t)
	m := NewModel(tr, "")

	m.onboardForm.PerDay = "ten"
	m.onboardForm.PackCost = "12"
	m.completeOnboarding()

	if m.state != constants.StateOnboarding {
		t.Errorf("state = %v, want onboarding", m.state)
	}
	if m.err == nil {
		t.Error("expected an error for an invalid count")
	}
	if m.onboardForm.PackCost != "12" {
		t.Error("answers were not kept")
	}
}

func TestNewModelRecordsLogin(t *testing.T) {
	tr, store, c := onboarded(t)
	c.t = quit.Add(24 * time.Hour)

	m := NewModel(tr, "")
	if m.state != constants.StateDashboard {
		t.Fatalf("state = %v, want dashboard", m.state)
	}
	p, _ := store.GetProfile()
	if p.StreakCount != 1 {
		t.Errorf("StreakCount = %d, want 1", p.StreakCount)
	}
	if !strings.Contains(m.message, "24 Hours Free") {
		t.Errorf("expected unlock message, got %q", m.message)
	}
}

func TestTabNavigation(t *testing.T) {
	tr, _, _ := onboarded(t)
	m := NewModel(tr, "")

	var got []constants.SessionState
	for range constants.TabCount {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		got = append(got, m.state)
	}
	want := []constants.SessionState{
		constants.StateHealth,
		constants.StateProgress,
		constants.StateAchievements,
		constants.StateBreathe,
		constants.StateDashboard,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tab order mismatch (-want +got):\n%s", diff)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateBreathe {
		t.Errorf("shift+tab from dashboard = %v, want breathe", m.state)
	}
}

func TestTickRefreshesMetrics(t *testing.T) {
	tr, store, c := onboarded(t)
	m := NewModel(tr, "")
	before, _ := store.GetProfile()

	c.t = quit.Add(2 * time.Hour)
	m = update(t, m, tickMsg(c.t))

	if m.metrics.Elapsed.TotalMinutes != 120 {
		t.Errorf("TotalMinutes = %d, want 120", m.metrics.Elapsed.TotalMinutes)
	}
	if m.metrics.Projection.MoneySaved <= 0 {
		t.Errorf("MoneySaved = %v, want > 0", m.metrics.Projection.MoneySaved)
	}
	after, _ := store.GetProfile()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("tick wrote to the store (-before +after):\n%s", diff)
	}
}

func TestLogCraving(t *testing.T) {
	tr, store, _ := onboarded(t)
	m := NewModel(tr, "")

	m = update(t, m, keyRunes("c"))
	if m.state != constants.StateLogCraving {
		t.Fatalf("state = %v, want log craving", m.state)
	}

	m.cravingForm.Trigger = "Stress"
	m.cravingForm.GaveIn = true
	m.cravingForm.Smoked = "2"
	m.completeCraving()

	if m.state != constants.StateDashboard {
		t.Errorf("state = %v, want dashboard", m.state)
	}
	p, _ := store.GetProfile()
	if p.CravingCount != 1 || p.CravingManaged != 0 {
		t.Errorf("counters = %d/%d, want 1/0", p.CravingCount, p.CravingManaged)
	}
	if m.metrics.Projection.CigarettesSmoked != 2 {
		t.Errorf("CigarettesSmoked = %d, want 2", m.metrics.Projection.CigarettesSmoked)
	}
}

func TestEscCancelsCravingForm(t *testing.T) {
	tr, store, _ := onboarded(t)
	m := NewModel(tr, "")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, keyRunes("c"))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateHealth {
		t.Errorf("state = %v, want health", m.state)
	}
	events, _ := store.GetCravings()
	if len(events) != 0 {
		t.Errorf("cancelled form logged %d cravings", len(events))
	}
}

func TestReset(t *testing.T) {
	tr, store, _ := onboarded(t)
	m := NewModel(tr, "")

	m = update(t, m, keyRunes("R"))
	if m.state != constants.StateConfirmReset {
		t.Fatalf("state = %v, want confirm reset", m.state)
	}
	*m.confirmReset = true
	m.completeReset()

	if m.state != constants.StateOnboarding {
		t.Errorf("state = %v, want onboarding", m.state)
	}
	if _, err := store.GetProfile(); err == nil {
		t.Error("profile survived reset")
	}
}

func TestResetDeclined(t *testing.T) {
	tr, store, _ := onboarded(t)
	m := NewModel(tr, "")

	m = update(t, m, keyRunes("R"))
	m.completeReset()

	if m.state != constants.StateDashboard {
		t.Errorf("state = %v, want dashboard", m.state)
	}
	if _, err := store.GetProfile(); err != nil {
		t.Errorf("profile lost after declined reset: %v", err)
	}
}

func TestCurrencyOverride(t *testing.T) {
	tr, _, c := onboarded(t)
	c.t = quit.Add(24 * time.Hour)

	m := NewModel(tr, models.CurrencyINR)
	m.state = constants.StateDashboard
	if !strings.Contains(m.View(), "₹100.00") {
		t.Errorf("expected rupee savings:\n%s", m.View())
	}
}

func TestBreatheToggle(t *testing.T) {
	tr, _, c := onboarded(t)
	m := NewModel(tr, "")
	m.state = constants.StateBreathe

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if !m.breathe.Running() {
		t.Fatal("expected breathing exercise to start")
	}
	c.t = c.t.Add(5 * time.Second)
	m = update(t, m, tickMsg(c.t))
	if !strings.Contains(m.View(), "Hold") {
		t.Errorf("expected hold phase:\n%s", m.View())
	}
}
