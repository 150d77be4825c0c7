package health

import (
	"math"

	"github.com/julianstephens/smokefree/internal/calculator"
	"github.com/julianstephens/smokefree/internal/constants"
)

// Status is a milestone with its progress percentage (0-100)
type Status struct {
	Milestone
	Percent  float64
	Complete bool
}

// Report is the health progress at one instant
type Report struct {
	Completed      []Milestone
	Next           *Status
	SetbackMinutes int
	// AdjustedMinutes is the elapsed time after the setback, never negative
	AdjustedMinutes float64
	Timeline        []Status
}

// Progress evaluates every milestone against the elapsed time minus the
// setback for the cigarettes smoked since quitting.
func Progress(elapsed calculator.ElapsedTime, smoked int) Report {
	if smoked < 0 {
		smoked = 0
	}
	setback := smoked * constants.SetbackMinutesPerCigarette
	adjusted := math.Max(0, elapsed.ElapsedMinutes()-float64(setback))

	r := Report{
		SetbackMinutes:  setback,
		AdjustedMinutes: adjusted,
		Timeline:        make([]Status, len(milestones)),
	}

	for i, m := range milestones {
		pct := math.Min(100, adjusted/float64(m.ThresholdMinutes)*100)
		s := Status{Milestone: m, Percent: pct, Complete: pct >= 100}
		r.Timeline[i] = s
		if s.Complete {
			r.Completed = append(r.Completed, m)
		} else if r.Next == nil {
			next := s
			r.Next = &next
		}
	}
	return r
}
