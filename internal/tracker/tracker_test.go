package tracker

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/storage"
	"github.com/julianstephens/smokefree/internal/storage/sqlite"
	"github.com/julianstephens/smokefree/internal/validation"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var quit = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTracker(t *testing.T, store storage.Provider) (*Tracker, *clock) {
	t.Helper()
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	c := &clock{t: quit}
	return New(store, WithClock(c.now), WithLocation(time.UTC), WithDayPolicy(constants.DayPolicyCalendar)), c
}

func jsonTracker(t *testing.T) (*Tracker, *clock) {
	return newTracker(t, storage.NewJSONStore(filepath.Join(t.TempDir(), "smokefree.json")))
}

func baseline() OnboardInput {
	return OnboardInput{
		Name:              "Sam",
		StartDate:         quit,
		CigarettesPerDay:  20,
		CostPerPack:       100,
		CigarettesPerPack: 20,
		Currency:          models.CurrencyUSD,
		Triggers:          []string{"Stress", " Stress ", "", "Coffee"},
	}
}

func onboard(t *testing.T, tr *Tracker) models.Profile {
	t.Helper()
	p, err := tr.Onboard(baseline())
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}
	return p
}

func TestReadsBeforeOnboarding(t *testing.T) {
	tr, _ := jsonTracker(t)

	if _, err := tr.DerivedMetrics(); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("DerivedMetrics() error = %v", err)
	}
	if _, err := tr.HealthProgress(); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("HealthProgress() error = %v", err)
	}
	if _, err := tr.ChartSeries(); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("ChartSeries() error = %v", err)
	}
	if _, err := tr.Summary(); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("Summary() error = %v", err)
	}
	if _, _, err := tr.AppendCraving(models.CravingEvent{Trigger: "Stress"}); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("AppendCraving() error = %v", err)
	}
	if _, _, err := tr.RecordLogin(); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("RecordLogin() error = %v", err)
	}
}

func TestOnboard(t *testing.T) {
	tr, _ := jsonTracker(t)
	p := onboard(t, tr)

	if !p.StartDate.Equal(quit) {
		t.Errorf("StartDate = %v, want %v", p.StartDate, quit)
	}
	if diff := cmp.Diff([]string{"Stress", "Coffee"}, p.Triggers); diff != "" {
		t.Errorf("triggers mismatch (-want +got):\n%s", diff)
	}
	if p.StreakCount != 0 || !p.LastLoginAt.Equal(quit) {
		t.Errorf("login state = %d, %v", p.StreakCount, p.LastLoginAt)
	}

	if _, err := tr.Onboard(baseline()); !errors.Is(err, ErrAlreadyOnboarded) {
		t.Errorf("second Onboard error = %v, want ErrAlreadyOnboarded", err)
	}
}

func TestOnboardDefaultsCurrency(t *testing.T) {
	tr, _ := jsonTracker(t)
	in := baseline()
	in.Currency = ""
	p, err := tr.Onboard(in)
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}
	if p.Currency != models.CurrencyINR {
		t.Errorf("Currency = %s, want INR", p.Currency)
	}
}

func TestOnboardStartDateNormalisation(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"earlier today becomes now", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), quit},
		{"past day becomes midnight", time.Date(2026, 2, 20, 15, 45, 0, 0, time.UTC), time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)},
		{"zero becomes now", time.Time{}, quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := jsonTracker(t)
			in := baseline()
			in.StartDate = tt.start
			p, err := tr.Onboard(in)
			if err != nil {
				t.Fatalf("Onboard failed: %v", err)
			}
			if !p.StartDate.Equal(tt.want) {
				t.Errorf("StartDate = %v, want %v", p.StartDate, tt.want)
			}
		})
	}
}

func TestOnboardRejectsInvalidBaseline(t *testing.T) {
	tr, _ := jsonTracker(t)
	in := baseline()
	in.CigarettesPerDay = 0
	in.CostPerPack = -5
	in.StartDate = quit.AddDate(0, 0, 2)

	_, err := tr.Onboard(in)
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("Onboard error = %v, want *validation.Error", err)
	}
	if got := len(verr.Result.Issues); got != 3 {
		t.Errorf("got %d issues, want 3: %s", got, verr.Result.FormatReport())
	}

	if _, err := tr.Profile(); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("invalid onboarding persisted a profile: %v", err)
	}
}

func TestFullDayScenario(t *testing.T) {
	tr, c := jsonTracker(t)
	onboard(t, tr)
	c.advance(24 * time.Hour)

	m, err := tr.DerivedMetrics()
	if err != nil {
		t.Fatalf("DerivedMetrics failed: %v", err)
	}
	if !approx(m.Projection.CigarettesAvoided, 20) || !approx(m.Projection.MoneySaved, 100) {
		t.Errorf("avoided %v saved %v, want 20 and 100", m.Projection.CigarettesAvoided, m.Projection.MoneySaved)
	}
	if m.Elapsed.Days != 1 {
		t.Errorf("Days = %d, want 1", m.Elapsed.Days)
	}

	if _, _, err := tr.AppendCraving(models.CravingEvent{Trigger: "Stress", Intensity: 3, GaveIn: true, CigarettesSmoked: 2}); err != nil {
		t.Fatalf("AppendCraving failed: %v", err)
	}
	m, err = tr.DerivedMetrics()
	if err != nil {
		t.Fatalf("DerivedMetrics failed: %v", err)
	}
	if !approx(m.Projection.CigarettesAvoided, 18) || !approx(m.Projection.MoneySaved, 90) {
		t.Errorf("after relapse avoided %v saved %v, want 18 and 90", m.Projection.CigarettesAvoided, m.Projection.MoneySaved)
	}

	report, err := tr.HealthProgress()
	if err != nil {
		t.Fatalf("HealthProgress failed: %v", err)
	}
	if report.SetbackMinutes != 60 {
		t.Errorf("SetbackMinutes = %d, want 60", report.SetbackMinutes)
	}
	if report.Next == nil || report.Next.Label != "24 hours" {
		t.Errorf("Next = %+v, want 24 hours", report.Next)
	}
}

func TestAppendCravingKeepsCountersInSync(t *testing.T) {
	tr, c := jsonTracker(t)
	onboard(t, tr)

	events := []models.CravingEvent{
		{Trigger: "Stress", Intensity: 2},
		{Trigger: "  ", Intensity: 9, GaveIn: true},
		{Trigger: "Coffee", Intensity: 1, CigarettesSmoked: 4},
	}
	for _, e := range events {
		c.advance(time.Hour)
		if _, _, err := tr.AppendCraving(e); err != nil {
			t.Fatalf("AppendCraving failed: %v", err)
		}
	}

	p, err := tr.Profile()
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.CravingCount != 3 || p.CravingManaged != 2 {
		t.Errorf("counters = %d/%d, want 3/2", p.CravingCount, p.CravingManaged)
	}
	if p.LastCravingAt == nil || !p.LastCravingAt.Equal(c.now()) {
		t.Errorf("LastCravingAt = %v, want %v", p.LastCravingAt, c.now())
	}

	got, err := tr.Cravings()
	if err != nil {
		t.Fatalf("Cravings failed: %v", err)
	}
	if got[1].Trigger != constants.FallbackTrigger || got[1].Intensity != 3 || got[1].CigarettesSmoked != 1 {
		t.Errorf("second craving not normalised: %+v", got[1])
	}
	if got[2].CigarettesSmoked != 0 {
		t.Errorf("resisted craving kept %d cigarettes", got[2].CigarettesSmoked)
	}

	s, err := tr.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if s.Total != 3 || s.Managed != 2 || !approx(s.SuccessRate, 200.0/3) || s.CigarettesLost != 1 {
		t.Errorf("summary = %+v", s)
	}
	if !s.HasStrongest || s.StrongestDay.Managed != 2 {
		t.Errorf("strongest day = %+v, %v", s.StrongestDay, s.HasStrongest)
	}
}

func TestStreakScenarios(t *testing.T) {
	tr, c := jsonTracker(t)
	onboard(t, tr)

	for day := 1; day <= 4; day++ {
		c.advance(24 * time.Hour)
		p, _, err := tr.RecordLogin()
		if err != nil {
			t.Fatalf("RecordLogin failed: %v", err)
		}
		if p.StreakCount != day || p.LongestStreak != day {
			t.Errorf("day %d: streak %d longest %d", day, p.StreakCount, p.LongestStreak)
		}
	}

	// Same day login changes nothing
	c.advance(time.Hour)
	p, _, err := tr.RecordLogin()
	if err != nil {
		t.Fatalf("RecordLogin failed: %v", err)
	}
	if p.StreakCount != 4 {
		t.Errorf("same-day login changed streak to %d", p.StreakCount)
	}

	// Missing days breaks the streak but keeps the record
	c.advance(72 * time.Hour)
	p, _, err = tr.RecordLogin()
	if err != nil {
		t.Fatalf("RecordLogin failed: %v", err)
	}
	if p.StreakCount != 0 || p.LongestStreak != 4 {
		t.Errorf("after gap streak %d longest %d, want 0 and 4", p.StreakCount, p.LongestStreak)
	}
}

func TestAchievementsUnlockOnce(t *testing.T) {
	tr, c := jsonTracker(t)
	onboard(t, tr)

	c.advance(7 * 24 * time.Hour)
	got, err := tr.EvaluateAchievements()
	if err != nil {
		t.Fatalf("EvaluateAchievements failed: %v", err)
	}
	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
		if !a.UnlockedAt.Equal(c.now()) {
			t.Errorf("%s unlocked at %v", a.ID, a.UnlockedAt)
		}
	}
	if diff := cmp.Diff([]string{"24hours", "week", "hundred_cigs"}, ids); diff != "" {
		t.Errorf("unlocked mismatch (-want +got):\n%s", diff)
	}

	c.advance(time.Hour)
	again, err := tr.EvaluateAchievements()
	if err != nil {
		t.Fatalf("EvaluateAchievements failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("re-evaluation unlocked %v", again)
	}

	progress, err := tr.AchievementProgress()
	if err != nil {
		t.Fatalf("AchievementProgress failed: %v", err)
	}
	unlocked := 0
	for _, s := range progress {
		if s.Unlocked {
			unlocked++
		}
	}
	if unlocked != 3 {
		t.Errorf("progress shows %d unlocked, want 3", unlocked)
	}
}

func TestResetClearsEverything(t *testing.T) {
	tr, c := newTracker(t, sqlite.NewStore(filepath.Join(t.TempDir(), "smokefree.db")))
	onboard(t, tr)
	c.advance(48 * time.Hour)
	if _, _, err := tr.AppendCraving(models.CravingEvent{Trigger: "Stress"}); err != nil {
		t.Fatalf("AppendCraving failed: %v", err)
	}

	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if _, err := tr.Profile(); !errors.Is(err, ErrNotOnboarded) {
		t.Errorf("profile survived reset: %v", err)
	}
	if _, err := tr.Onboard(baseline()); err != nil {
		t.Errorf("Onboard after reset failed: %v", err)
	}
	events, err := tr.Cravings()
	if err != nil {
		t.Fatalf("Cravings failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("ledger survived reset: %v", events)
	}
}

func TestOnboardOverUnreadableProfileStartsClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smokefree.json")
	tr, c := newTracker(t, storage.NewJSONStore(path))
	onboard(t, tr)
	c.advance(48 * time.Hour)
	for range 3 {
		if _, _, err := tr.AppendCraving(models.CravingEvent{Trigger: "Stress", GaveIn: true, CigarettesSmoked: 5}); err != nil {
			t.Fatalf("AppendCraving failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	doc["profile"] = json.RawMessage(`{"start_date":"garbage"}`)
	data, err = json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	reopened := New(store, WithClock(c.now), WithLocation(time.UTC), WithDayPolicy(constants.DayPolicyCalendar))

	p, err := reopened.Onboard(baseline())
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}
	events, err := store.GetCravings()
	if err != nil {
		t.Fatalf("GetCravings failed: %v", err)
	}
	if p.CravingCount != len(events) || len(events) != 0 {
		t.Errorf("CravingCount = %d with %d stored cravings, want 0 and 0", p.CravingCount, len(events))
	}
	records, err := store.GetAchievements()
	if err != nil {
		t.Fatalf("GetAchievements failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("achievements carried over: %v", records)
	}

	report, err := reopened.HealthProgress()
	if err != nil {
		t.Fatalf("HealthProgress failed: %v", err)
	}
	if report.SetbackMinutes != 0 {
		t.Errorf("SetbackMinutes = %d, want 0", report.SetbackMinutes)
	}
	m, err := reopened.DerivedMetrics()
	if err != nil {
		t.Fatalf("DerivedMetrics failed: %v", err)
	}
	if m.Projection.CigarettesAvoided < 0 {
		t.Errorf("CigarettesAvoided = %v, want >= 0", m.Projection.CigarettesAvoided)
	}
}

func TestChartSeries(t *testing.T) {
	tr, c := jsonTracker(t)
	onboard(t, tr)
	c.advance(2 * 24 * time.Hour)
	if _, _, err := tr.AppendCraving(models.CravingEvent{Trigger: "Stress"}); err != nil {
		t.Fatalf("AppendCraving failed: %v", err)
	}

	s, err := tr.ChartSeries()
	if err != nil {
		t.Fatalf("ChartSeries failed: %v", err)
	}
	if diff := cmp.Diff([]int{0, 0, 1}, s.Totals); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
}
