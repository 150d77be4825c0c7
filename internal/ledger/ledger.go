package ledger

import (
	"slices"
	"time"

	"github.com/julianstephens/smokefree/internal/models"
)

// Ledger is an immutable view over the craving log. Insertion order is kept
// but is not assumed to be chronological.
type Ledger struct {
	events []models.CravingEvent
}

// New wraps already persisted events. Historical rows that violate the gave-in
// invariant are repaired in memory; IDs and timestamps are left as stored.
func New(events []models.CravingEvent) Ledger {
	out := make([]models.CravingEvent, len(events))
	for i, e := range events {
		out[i] = repair(e)
	}
	return Ledger{events: out}
}

// Append returns a new ledger with the normalised event at the end, along with
// the event as stored.
func (l Ledger) Append(event models.CravingEvent, now time.Time) (Ledger, models.CravingEvent) {
	e := Normalize(event, now)
	out := make([]models.CravingEvent, 0, len(l.events)+1)
	out = append(out, l.events...)
	out = append(out, e)
	return Ledger{events: out}, e
}

// Events returns a copy of the events in insertion order
func (l Ledger) Events() []models.CravingEvent {
	return slices.Clone(l.events)
}

// Sorted returns a copy of the events ordered by timestamp. Equal timestamps
// keep insertion order.
func (l Ledger) Sorted() []models.CravingEvent {
	out := slices.Clone(l.events)
	slices.SortStableFunc(out, func(a, b models.CravingEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

func (l Ledger) Total() int {
	return len(l.events)
}

// Managed counts the resisted cravings
func (l Ledger) Managed() int {
	n := 0
	for _, e := range l.events {
		if e.Managed() {
			n++
		}
	}
	return n
}

// CigarettesSmoked sums the cigarettes of every craving the user gave in to
func (l Ledger) CigarettesSmoked() int {
	n := 0
	for _, e := range l.events {
		if e.GaveIn {
			n += e.CigarettesSmoked
		}
	}
	return n
}

// Last returns the most recent event by timestamp
func (l Ledger) Last() (models.CravingEvent, bool) {
	if len(l.events) == 0 {
		return models.CravingEvent{}, false
	}
	last := l.events[0]
	for _, e := range l.events[1:] {
		if !e.Timestamp.Before(last.Timestamp) {
			last = e
		}
	}
	return last, true
}

// SuccessRate is the share of resisted cravings as a percentage. An empty
// ledger has a rate of 0.
func (l Ledger) SuccessRate() float64 {
	if len(l.events) == 0 {
		return 0
	}
	return float64(l.Managed()) / float64(len(l.events)) * 100
}
