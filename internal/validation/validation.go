package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/smokefree/internal/models"
)

// IssueType represents the kind of validation problem
type IssueType string

const (
	IssueNonPositiveBaseline  IssueType = "non_positive_baseline"
	IssueFutureStartDate      IssueType = "future_start_date"
	IssueMissingStartDate     IssueType = "missing_start_date"
	IssueUnknownCurrency      IssueType = "unknown_currency"
	IssueCounterMismatch      IssueType = "counter_mismatch"
	IssueStreakInvariant      IssueType = "streak_invariant"
	IssueCravingInvariant     IssueType = "craving_invariant"
	IssueDuplicateAchievement IssueType = "duplicate_achievement"
	IssueUnknownAchievement   IssueType = "unknown_achievement"
)

// Issue is a single detected problem
type Issue struct {
	Type        IssueType
	Field       string
	Description string
}

// Result collects every issue found in one pass
type Result struct {
	Issues []Issue
}

// HasIssues returns true if there are any issues
func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable report of all issues
func (r *Result) FormatReport() string {
	if !r.HasIssues() {
		return "No issues detected."
	}

	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

func (r *Result) add(t IssueType, field, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Type: t, Field: field, Description: fmt.Sprintf(format, args...)})
}

// Error is returned when onboarding input is rejected. It lists every problem
// rather than stopping at the first.
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Result.Issues))
	for i, issue := range e.Result.Issues {
		parts[i] = issue.Description
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Validator checks profiles at the onboarding boundary and persisted state for
// the doctor command
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ValidateBaseline checks the figures every projection divides by
func (v *Validator) ValidateBaseline(p models.Profile) Result {
	var r Result
	if !positive(p.CigarettesPerDay) {
		r.add(IssueNonPositiveBaseline, "cigarettes_per_day", "cigarettes per day must be greater than 0 (got %v)", p.CigarettesPerDay)
	}
	if !positive(p.CostPerPack) {
		r.add(IssueNonPositiveBaseline, "cost_per_pack", "cost per pack must be greater than 0 (got %v)", p.CostPerPack)
	}
	if p.CigarettesPerPack <= 0 {
		r.add(IssueNonPositiveBaseline, "cigarettes_per_pack", "cigarettes per pack must be greater than 0 (got %d)", p.CigarettesPerPack)
	}
	return r
}

// ValidateOnboarding checks a profile before it is first persisted
func (v *Validator) ValidateOnboarding(p models.Profile, now time.Time) error {
	r := v.ValidateBaseline(p)

	if p.StartDate.IsZero() {
		r.add(IssueMissingStartDate, "start_date", "start date is required")
	} else if p.StartDate.After(now) {
		r.add(IssueFutureStartDate, "start_date", "start date %s is in the future", p.StartDate.Format(time.DateOnly))
	}

	switch p.Currency {
	case models.CurrencyUSD, models.CurrencyINR:
	default:
		r.add(IssueUnknownCurrency, "currency", "unsupported currency %q", p.Currency)
	}

	if r.HasIssues() {
		return &Error{Result: r}
	}
	return nil
}

// ValidateState checks the persisted records against the invariants the
// tracker maintains. knownIDs is the achievement catalog.
func (v *Validator) ValidateState(p models.Profile, events []models.CravingEvent, unlocked []models.AchievementRecord, knownIDs []string) Result {
	r := v.ValidateBaseline(p)

	managed := 0
	for _, e := range events {
		if !e.GaveIn {
			managed++
			if e.CigarettesSmoked != 0 {
				r.add(IssueCravingInvariant, "cravings", "craving %s resisted but records %d cigarettes", e.ID, e.CigarettesSmoked)
			}
		} else if e.CigarettesSmoked < 1 {
			r.add(IssueCravingInvariant, "cravings", "craving %s gave in but records no cigarettes", e.ID)
		}
	}
	if p.CravingCount != len(events) {
		r.add(IssueCounterMismatch, "craving_count", "profile craving count %d does not match ledger total %d", p.CravingCount, len(events))
	}
	if p.CravingManaged != managed {
		r.add(IssueCounterMismatch, "craving_managed", "profile managed count %d does not match ledger managed %d", p.CravingManaged, managed)
	}

	if p.StreakCount < 0 || p.LongestStreak < p.StreakCount {
		r.add(IssueStreakInvariant, "streak", "longest streak %d is below current streak %d", p.LongestStreak, p.StreakCount)
	}

	known := make(map[string]bool, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = true
	}
	seen := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		if seen[a.ID] {
			r.add(IssueDuplicateAchievement, "achievements", "achievement %s is unlocked more than once", a.ID)
		}
		seen[a.ID] = true
		if !known[a.ID] {
			r.add(IssueUnknownAchievement, "achievements", "achievement %s is not in the catalog", a.ID)
		}
	}

	return r
}
