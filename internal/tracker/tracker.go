// Package tracker ties the calculators to a storage provider. Every
// operation reads the records it needs, derives values with the pure
// packages and writes back at most once.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/smokefree/internal/achievements"
	"github.com/julianstephens/smokefree/internal/calculator"
	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/health"
	"github.com/julianstephens/smokefree/internal/ledger"
	"github.com/julianstephens/smokefree/internal/logger"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/storage"
	"github.com/julianstephens/smokefree/internal/streak"
	"github.com/julianstephens/smokefree/internal/validation"
)

var (
	// ErrNotOnboarded is returned by every read when no usable profile exists
	ErrNotOnboarded = errors.New("no quit attempt recorded; run onboarding first")
	// ErrAlreadyOnboarded is returned by Onboard when a profile exists
	ErrAlreadyOnboarded = errors.New("a quit attempt is already recorded; reset it first")
)

type Tracker struct {
	store     storage.Provider
	now       func() time.Time
	loc       *time.Location
	policy    constants.DayPolicy
	validator *validation.Validator
}

type Option func(*Tracker)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the zone used for calendar days
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithDayPolicy sets how streak days are counted
func WithDayPolicy(policy constants.DayPolicy) Option {
	return func(t *Tracker) {
		if policy != "" {
			t.policy = policy
		}
	}
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		now:       time.Now,
		loc:       time.Local,
		policy:    constants.DayPolicyCalendar,
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

func (t *Tracker) Location() *time.Location {
	return t.loc
}

// Profile returns the stored profile or ErrNotOnboarded
func (t *Tracker) Profile() (models.Profile, error) {
	p, err := t.store.GetProfile()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Profile{}, ErrNotOnboarded
		}
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if p.StartDate.IsZero() {
		logger.Warn("Stored profile has no start date, treating as not onboarded")
		return models.Profile{}, ErrNotOnboarded
	}
	return p, nil
}

func (t *Tracker) ledger() (ledger.Ledger, error) {
	events, err := t.store.GetCravings()
	if err != nil {
		return ledger.Ledger{}, fmt.Errorf("failed to read cravings: %w", err)
	}
	return ledger.New(events), nil
}

// OnboardInput is the data collected by the onboarding flow
type OnboardInput struct {
	Name              string
	StartDate         time.Time
	CigarettesPerDay  float64
	CostPerPack       float64
	CigarettesPerPack int
	Currency          models.Currency
	Triggers          []string
	Motivations       []string
	Goals             []string
}

// Onboard validates the input and stores the initial profile. A start date
// on today's local calendar day becomes the current instant; an earlier day
// becomes that day's local midnight. Validation failures are returned as a
// *validation.Error before anything is written.
func (t *Tracker) Onboard(in OnboardInput) (models.Profile, error) {
	if _, err := t.Profile(); err == nil {
		return models.Profile{}, ErrAlreadyOnboarded
	} else if !errors.Is(err, ErrNotOnboarded) {
		return models.Profile{}, err
	}

	now := t.now()
	currency := in.Currency
	if currency == "" {
		currency = models.CurrencyINR
	}

	p := models.Profile{
		Name:              strings.TrimSpace(in.Name),
		StartDate:         t.normalizeStart(in.StartDate, now),
		CigarettesPerDay:  in.CigarettesPerDay,
		CostPerPack:       in.CostPerPack,
		CigarettesPerPack: in.CigarettesPerPack,
		Currency:          currency,
		LastLoginAt:       now,
		Triggers:          dedupe(in.Triggers),
		Motivations:       dedupe(in.Motivations),
		Goals:             dedupe(in.Goals),
	}

	if err := t.validator.ValidateOnboarding(p, now); err != nil {
		return models.Profile{}, err
	}

	// An unreadable profile can leave cravings and achievements behind. A new
	// attempt starts from an empty ledger.
	if err := t.store.Reset(); err != nil {
		return models.Profile{}, fmt.Errorf("failed to clear previous attempt: %w", err)
	}
	if err := t.store.SaveProfile(p); err != nil {
		return models.Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	logger.Info("Onboarded", "start", p.StartDate, "cigarettes_per_day", p.CigarettesPerDay)
	return p, nil
}

func (t *Tracker) normalizeStart(start, now time.Time) time.Time {
	if start.IsZero() {
		return now
	}
	s := start.In(t.loc)
	n := now.In(t.loc)
	sy, sm, sd := s.Date()
	ny, nm, nd := n.Date()
	switch {
	case sy == ny && sm == nm && sd == nd:
		return now
	case s.Before(n):
		return time.Date(sy, sm, sd, 0, 0, 0, 0, t.loc)
	default:
		// future, rejected by validation
		return start
	}
}

func dedupe(values []string) []string {
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// RecordLogin applies the streak transition for a session started now, then
// evaluates achievements.
func (t *Tracker) RecordLogin() (models.Profile, []models.AchievementRecord, error) {
	p, err := t.Profile()
	if err != nil {
		return models.Profile{}, nil, err
	}

	before := streak.State{LastLoginAt: p.LastLoginAt, Count: p.StreakCount, Longest: p.LongestStreak}
	after := streak.Login(before, t.now(), t.policy, t.loc)
	if after != before {
		p.LastLoginAt = after.LastLoginAt
		p.StreakCount = after.Count
		p.LongestStreak = after.Longest
		if err := t.store.SaveProfile(p); err != nil {
			return models.Profile{}, nil, fmt.Errorf("failed to save login: %w", err)
		}
		logger.Debug("Recorded login", "streak", after.Count, "longest", after.Longest)
	}

	unlocked, err := t.EvaluateAchievements()
	if err != nil {
		return p, nil, err
	}
	return p, unlocked, nil
}

// AppendCraving normalises and stores one craving together with the
// recomputed profile counters, then evaluates achievements.
func (t *Tracker) AppendCraving(event models.CravingEvent) (models.CravingEvent, []models.AchievementRecord, error) {
	p, err := t.Profile()
	if err != nil {
		return models.CravingEvent{}, nil, err
	}
	l, err := t.ledger()
	if err != nil {
		return models.CravingEvent{}, nil, err
	}

	l, stored := l.Append(event, t.now())
	p.CravingCount = l.Total()
	p.CravingManaged = l.Managed()
	if last, ok := l.Last(); ok {
		ts := last.Timestamp
		p.LastCravingAt = &ts
	}

	if err := t.store.AppendCraving(stored, p); err != nil {
		return models.CravingEvent{}, nil, fmt.Errorf("failed to append craving: %w", err)
	}
	logger.Debug("Logged craving", "trigger", stored.Trigger, "gave_in", stored.GaveIn)

	unlocked, err := t.EvaluateAchievements()
	if err != nil {
		return stored, nil, err
	}
	return stored, unlocked, nil
}

// Metrics is the live dashboard snapshot
type Metrics struct {
	Profile    models.Profile
	Elapsed    calculator.ElapsedTime
	Projection calculator.Projection
}

// DerivedMetrics computes elapsed time, avoided cigarettes and savings
func (t *Tracker) DerivedMetrics() (Metrics, error) {
	p, err := t.Profile()
	if err != nil {
		return Metrics{}, err
	}
	l, err := t.ledger()
	if err != nil {
		return Metrics{}, err
	}

	elapsed := calculator.Elapsed(p.StartDate, t.now())
	return Metrics{
		Profile:    p,
		Elapsed:    elapsed,
		Projection: calculator.Project(p.Baseline(), elapsed, l.CigarettesSmoked()),
	}, nil
}

// HealthProgress evaluates the milestone timeline with the relapse setback
func (t *Tracker) HealthProgress() (health.Report, error) {
	p, err := t.Profile()
	if err != nil {
		return health.Report{}, err
	}
	l, err := t.ledger()
	if err != nil {
		return health.Report{}, err
	}
	return health.Progress(calculator.Elapsed(p.StartDate, t.now()), l.CigarettesSmoked()), nil
}

// ChartSeries returns per-day craving totals from the start date to today
func (t *Tracker) ChartSeries() (ledger.Series, error) {
	p, err := t.Profile()
	if err != nil {
		return ledger.Series{}, err
	}
	l, err := t.ledger()
	if err != nil {
		return ledger.Series{}, err
	}
	return l.ChartSeries(p.StartDate, t.now(), t.loc), nil
}

// Cravings returns the ledger oldest first
func (t *Tracker) Cravings() ([]models.CravingEvent, error) {
	if _, err := t.Profile(); err != nil {
		return nil, err
	}
	l, err := t.ledger()
	if err != nil {
		return nil, err
	}
	return l.Sorted(), nil
}

func (t *Tracker) stats(p models.Profile, l ledger.Ledger) achievements.Stats {
	elapsed := calculator.Elapsed(p.StartDate, t.now())
	proj := calculator.Project(p.Baseline(), elapsed, l.CigarettesSmoked())
	return achievements.Stats{
		DaysSmokeFree:     elapsed.Days,
		StreakCount:       p.StreakCount,
		LongestStreak:     p.LongestStreak,
		CravingsManaged:   l.Managed(),
		CigarettesAvoided: proj.CigarettesAvoided,
	}
}

// EvaluateAchievements persists and returns achievements newly earned at now
func (t *Tracker) EvaluateAchievements() ([]models.AchievementRecord, error) {
	p, err := t.Profile()
	if err != nil {
		return nil, err
	}
	l, err := t.ledger()
	if err != nil {
		return nil, err
	}
	unlocked, err := t.store.GetAchievements()
	if err != nil {
		return nil, fmt.Errorf("failed to read achievements: %w", err)
	}

	fresh := achievements.Evaluate(t.stats(p, l), unlocked, t.now())
	if len(fresh) == 0 {
		return nil, nil
	}
	if err := t.store.AddAchievements(fresh...); err != nil {
		return nil, fmt.Errorf("failed to save achievements: %w", err)
	}
	for _, a := range fresh {
		logger.Info("Achievement unlocked", "id", a.ID)
	}
	return fresh, nil
}

// AchievementProgress returns every catalog entry with its progress
func (t *Tracker) AchievementProgress() ([]achievements.Status, error) {
	p, err := t.Profile()
	if err != nil {
		return nil, err
	}
	l, err := t.ledger()
	if err != nil {
		return nil, err
	}
	unlocked, err := t.store.GetAchievements()
	if err != nil {
		return nil, fmt.Errorf("failed to read achievements: %w", err)
	}
	return achievements.Progress(t.stats(p, l), unlocked), nil
}

// Summary gathers the craving statistics shown on the progress view
type Summary struct {
	Total          int
	Managed        int
	SuccessRate    float64
	StrongestDay   ledger.DayBucket
	HasStrongest   bool
	StreakCount    int
	LongestStreak  int
	Triggers       []ledger.TriggerCount
	LastCravingAt  *time.Time
	CigarettesLost int
}

func (t *Tracker) Summary() (Summary, error) {
	p, err := t.Profile()
	if err != nil {
		return Summary{}, err
	}
	l, err := t.ledger()
	if err != nil {
		return Summary{}, err
	}

	strongest, ok := l.StrongestDay(t.loc)
	s := Summary{
		Total:          l.Total(),
		Managed:        l.Managed(),
		SuccessRate:    l.SuccessRate(),
		StrongestDay:   strongest,
		HasStrongest:   ok,
		StreakCount:    p.StreakCount,
		LongestStreak:  p.LongestStreak,
		Triggers:       l.TriggerBreakdown(),
		CigarettesLost: l.CigarettesSmoked(),
	}
	if last, ok := l.Last(); ok {
		ts := last.Timestamp
		s.LastCravingAt = &ts
	}
	return s, nil
}

// Reset clears the profile, the ledger and the achievements in one store
// operation.
func (t *Tracker) Reset() error {
	if err := t.store.Reset(); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	logger.Info("Reset all tracking data")
	return nil
}
