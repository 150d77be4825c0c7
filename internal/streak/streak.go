// Package streak tracks consecutive-day logins.
package streak

import (
	"time"

	"github.com/julianstephens/smokefree/internal/constants"
)

// State is the persisted login streak. Longest never drops below Count.
type State struct {
	LastLoginAt time.Time
	Count       int
	Longest     int
}

// DaysBetween returns the number of days from last to now under the given
// policy. A now before last yields 0.
//
// DayPolicyCalendar compares local calendar dates in loc, so a login at 23:50
// followed by one at 00:10 is one day apart. DayPolicyRolling counts whole 24h
// windows, so the same pair is zero days apart.
func DaysBetween(last, now time.Time, policy constants.DayPolicy, loc *time.Location) int {
	if !now.After(last) {
		return 0
	}

	if policy == constants.DayPolicyRolling {
		return int(now.Sub(last) / (24 * time.Hour))
	}

	if loc == nil {
		loc = time.Local
	}
	l := last.In(loc)
	n := now.In(loc)
	// Compare as UTC dates so DST transitions do not shorten a day
	ld := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
	nd := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(nd.Sub(ld) / (24 * time.Hour))
}

// Login applies a login at now. A first login (zero LastLoginAt) only records
// the time.
func Login(s State, now time.Time, policy constants.DayPolicy, loc *time.Location) State {
	if s.LastLoginAt.IsZero() {
		s.LastLoginAt = now
		if s.Longest < s.Count {
			s.Longest = s.Count
		}
		return s
	}

	switch gap := DaysBetween(s.LastLoginAt, now, policy, loc); {
	case gap == 1:
		s.Count++
		if s.Count > s.Longest {
			s.Longest = s.Count
		}
	case gap > 1:
		s.Count = 0
	}

	if now.After(s.LastLoginAt) {
		s.LastLoginAt = now
	}
	if s.Longest < s.Count {
		s.Longest = s.Count
	}
	return s
}
