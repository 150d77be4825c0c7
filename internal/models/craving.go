package models

import "time"

// Intensity is the self-reported strength of a craving (1 mild, 2 moderate, 3 strong)
type Intensity int

const (
	IntensityMild     Intensity = 1
	IntensityModerate Intensity = 2
	IntensityStrong   Intensity = 3
)

func (i Intensity) String() string {
	switch i {
	case IntensityMild:
		return "mild"
	case IntensityModerate:
		return "moderate"
	case IntensityStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// CravingEvent is a single entry of the append-only craving ledger
type CravingEvent struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	Trigger          string    `json:"trigger"`
	Intensity        Intensity `json:"intensity"`
	GaveIn           bool      `json:"gave_in"`
	CigarettesSmoked int       `json:"cigarettes_smoked"` // zero unless GaveIn
	CopingStrategy   string    `json:"coping_strategy,omitempty"`
}

// Managed reports whether the craving was resisted
func (e CravingEvent) Managed() bool {
	return !e.GaveIn
}
