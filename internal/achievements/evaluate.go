package achievements

import (
	"math"
	"time"

	"github.com/julianstephens/smokefree/internal/models"
)

// Evaluate returns the records for achievements that are earned but not yet in
// unlocked. It never returns an id twice and never revokes anything.
func Evaluate(stats Stats, unlocked []models.AchievementRecord, now time.Time) []models.AchievementRecord {
	have := make(map[string]bool, len(unlocked))
	for _, r := range unlocked {
		have[r.ID] = true
	}

	var fresh []models.AchievementRecord
	for _, d := range catalog {
		if have[d.ID] || !d.Earned(stats) {
			continue
		}
		have[d.ID] = true
		fresh = append(fresh, models.AchievementRecord{ID: d.ID, UnlockedAt: now})
	}
	return fresh
}

// Status is a definition with its display progress
type Status struct {
	Definition
	Value      float64
	Percent    float64
	Unlocked   bool
	UnlockedAt time.Time
}

// Progress reports every catalog entry with its progress toward the target.
// Unlocked entries stay at 100% even if the underlying value later drops.
func Progress(stats Stats, unlocked []models.AchievementRecord) []Status {
	at := make(map[string]time.Time, len(unlocked))
	for _, r := range unlocked {
		at[r.ID] = r.UnlockedAt
	}

	out := make([]Status, len(catalog))
	for i, d := range catalog {
		v := d.Value(stats)
		pct := math.Max(0, math.Min(100, v/d.Target*100))
		ts, ok := at[d.ID]
		if ok {
			pct = 100
		}
		out[i] = Status{Definition: d, Value: v, Percent: pct, Unlocked: ok, UnlockedAt: ts}
	}
	return out
}
