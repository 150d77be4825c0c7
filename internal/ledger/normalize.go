// Package ledger holds the append-only craving log and the aggregates
// derived from it.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/models"
)

// Normalize enforces the craving invariants at ingestion. Nothing is rejected:
// an event that resisted never carries cigarettes, an event that gave in carries
// at least one, and out of range intensities are clamped.
func Normalize(event models.CravingEvent, now time.Time) models.CravingEvent {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	return repair(event)
}

// repair fixes the fields that can be derived without a clock
func repair(event models.CravingEvent) models.CravingEvent {
	event.Trigger = strings.TrimSpace(event.Trigger)
	if event.Trigger == "" {
		event.Trigger = constants.FallbackTrigger
	}

	if event.Intensity < constants.MinIntensity {
		event.Intensity = constants.MinIntensity
	} else if event.Intensity > constants.MaxIntensity {
		event.Intensity = constants.MaxIntensity
	}

	if event.GaveIn {
		if event.CigarettesSmoked < 1 {
			event.CigarettesSmoked = 1
		}
	} else {
		event.CigarettesSmoked = 0
	}

	event.CopingStrategy = strings.TrimSpace(event.CopingStrategy)
	if event.CopingStrategy == "" {
		if event.GaveIn {
			event.CopingStrategy = constants.CopingGaveIn
		} else {
			event.CopingStrategy = constants.CopingResisted
		}
	}

	return event
}
