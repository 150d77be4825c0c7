package validation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/smokefree/internal/models"
)

var now = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func validProfile() models.Profile {
	return models.Profile{
		StartDate:         now.Add(-time.Hour),
		CigarettesPerDay:  20,
		CostPerPack:       100,
		CigarettesPerPack: 20,
		Currency:          models.CurrencyINR,
	}
}

func TestValidateOnboarding_Valid(t *testing.T) {
	if err := New().ValidateOnboarding(validProfile(), now); err != nil {
		t.Errorf("expected valid profile, got: %v", err)
	}
}

func TestValidateOnboarding_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Profile)
		want   []IssueType
	}{
		{"zero per day", func(p *models.Profile) { p.CigarettesPerDay = 0 }, []IssueType{IssueNonPositiveBaseline}},
		{"negative cost", func(p *models.Profile) { p.CostPerPack = -5 }, []IssueType{IssueNonPositiveBaseline}},
		{"zero per pack", func(p *models.Profile) { p.CigarettesPerPack = 0 }, []IssueType{IssueNonPositiveBaseline}},
		{"nan per day", func(p *models.Profile) { p.CigarettesPerDay = math.NaN() }, []IssueType{IssueNonPositiveBaseline}},
		{"future start", func(p *models.Profile) { p.StartDate = now.Add(48 * time.Hour) }, []IssueType{IssueFutureStartDate}},
		{"missing start", func(p *models.Profile) { p.StartDate = time.Time{} }, []IssueType{IssueMissingStartDate}},
		{"bad currency", func(p *models.Profile) { p.Currency = "EUR" }, []IssueType{IssueUnknownCurrency}},
		{
			name: "every baseline wrong",
			mutate: func(p *models.Profile) {
				p.CigarettesPerDay = 0
				p.CostPerPack = 0
				p.CigarettesPerPack = -1
			},
			want: []IssueType{IssueNonPositiveBaseline, IssueNonPositiveBaseline, IssueNonPositiveBaseline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := New().ValidateOnboarding(p, now)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if len(verr.Result.Issues) != len(tt.want) {
				t.Fatalf("got %d issues, want %d: %s", len(verr.Result.Issues), len(tt.want), verr.Result.FormatReport())
			}
			for i, issue := range verr.Result.Issues {
				if issue.Type != tt.want[i] {
					t.Errorf("issue %d type = %s, want %s", i, issue.Type, tt.want[i])
				}
			}
		})
	}
}

func TestValidateState(t *testing.T) {
	p := validProfile()
	p.CravingCount = 2
	p.CravingManaged = 1
	p.StreakCount = 2
	p.LongestStreak = 4

	events := []models.CravingEvent{
		{ID: "a", GaveIn: false},
		{ID: "b", GaveIn: true, CigarettesSmoked: 2},
	}
	known := []string{"24hours", "week"}

	result := New().ValidateState(p, events, []models.AchievementRecord{{ID: "24hours"}}, known)
	if result.HasIssues() {
		t.Errorf("expected clean state, got: %s", result.FormatReport())
	}

	p.CravingManaged = 2
	p.LongestStreak = 1
	events = append(events, models.CravingEvent{ID: "c", GaveIn: false, CigarettesSmoked: 1})
	unlocked := []models.AchievementRecord{{ID: "24hours"}, {ID: "24hours"}, {ID: "legacy"}}

	result = New().ValidateState(p, events, unlocked, known)
	counts := map[IssueType]int{}
	for _, issue := range result.Issues {
		counts[issue.Type]++
	}
	want := map[IssueType]int{
		IssueCravingInvariant:     1,
		IssueCounterMismatch:      1, // count 2 vs 3; managed 2 matches
		IssueStreakInvariant:      1,
		IssueDuplicateAchievement: 1,
		IssueUnknownAchievement:   1,
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("%s issues = %d, want %d\n%s", k, counts[k], v, result.FormatReport())
		}
	}
}

func TestFormatReport(t *testing.T) {
	var r Result
	if got := r.FormatReport(); got != "No issues detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}
