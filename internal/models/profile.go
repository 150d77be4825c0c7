package models

import "time"

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyINR:
		return "₹"
	default:
		return string(c) + " "
	}
}

// Profile is the quit attempt baseline plus the counters derived from user activity
type Profile struct {
	Name              string     `json:"name"`
	StartDate         time.Time  `json:"start_date"`           // immutable after onboarding
	CigarettesPerDay  float64    `json:"cigarettes_per_day"`   // baseline daily consumption
	CostPerPack       float64    `json:"cost_per_pack"`        // baseline pack price
	CigarettesPerPack int        `json:"cigarettes_per_pack"`  // cigarettes in one pack
	Currency          Currency   `json:"currency"`             // display currency
	CravingCount      int        `json:"craving_count"`        // mirrors ledger total
	CravingManaged    int        `json:"craving_managed"`      // mirrors ledger managed count
	LastCravingAt     *time.Time `json:"last_craving_at,omitempty"`
	LastLoginAt       time.Time  `json:"last_login_at"`
	StreakCount       int        `json:"streak_count"`
	LongestStreak     int        `json:"longest_streak"`
	Triggers          []string   `json:"triggers"`
	Motivations       []string   `json:"motivations"`
	Goals             []string   `json:"goals"`
}

// Baseline holds the onboarding figures used for projections
type Baseline struct {
	CigarettesPerDay  float64
	CostPerPack       float64
	CigarettesPerPack int
}

// Baseline returns the projection baseline of the profile
func (p Profile) Baseline() Baseline {
	return Baseline{
		CigarettesPerDay:  p.CigarettesPerDay,
		CostPerPack:       p.CostPerPack,
		CigarettesPerPack: p.CigarettesPerPack,
	}
}
