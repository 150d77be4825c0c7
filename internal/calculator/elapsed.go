// Package calculator converts a quit start time and the current time into
// elapsed-time and consumption projections. All functions are pure.
package calculator

import (
	"math"
	"time"

	"github.com/julianstephens/smokefree/internal/constants"
)

// ElapsedTime is the time since the quit start broken into display units.
// Days, Hours, Minutes and Seconds cascade from TotalSeconds and never overlap.
type ElapsedTime struct {
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	TotalSeconds int64
	TotalMinutes int64
	TotalHours   int64
	ExactDays    float64
	IsFirstDay   bool
	Duration     time.Duration
}

// Elapsed decomposes now-start. A start in the future yields a zero value.
func Elapsed(start, now time.Time) ElapsedTime {
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}

	totalSeconds := int64(d / time.Second)
	totalMinutes := totalSeconds / 60
	totalHours := totalMinutes / 60
	exactDays := float64(d) / float64(24*time.Hour)

	return ElapsedTime{
		Days:         totalHours / 24,
		Hours:        totalHours % 24,
		Minutes:      totalMinutes % 60,
		Seconds:      totalSeconds % 60,
		TotalSeconds: totalSeconds,
		TotalMinutes: totalMinutes,
		TotalHours:   totalHours,
		ExactDays:    exactDays,
		IsFirstDay:   math.Floor(exactDays) == 0,
		Duration:     d,
	}
}

// ElapsedHours returns the fractional hours elapsed
func (e ElapsedTime) ElapsedHours() float64 {
	return e.Duration.Hours()
}

// ElapsedMinutes returns the fractional minutes elapsed
func (e ElapsedTime) ElapsedMinutes() float64 {
	return e.Duration.Minutes()
}

// RefreshInterval returns how often live counters should be recomputed.
// Counters move visibly faster during the first day, so they refresh sub-second.
func RefreshInterval(e ElapsedTime) time.Duration {
	if e.IsFirstDay {
		return constants.FirstDayRefreshInterval
	}
	return constants.RefreshInterval
}

// Precision returns the number of decimals to show for fractional counters
func Precision(e ElapsedTime) int {
	if e.IsFirstDay {
		return 3
	}
	return 2
}
