package ledger

import (
	"cmp"
	"slices"
	"time"

	"github.com/julianstephens/smokefree/internal/constants"
)

// DayBucket counts the cravings of one local calendar day
type DayBucket struct {
	Day     time.Time // local midnight
	Total   int
	Managed int
}

// Series is the chart-ready form of the per-day aggregate
type Series struct {
	Labels  []string
	Totals  []int
	Managed []int
}

// TriggerCount is the number of cravings attributed to one trigger
type TriggerCount struct {
	Trigger string
	Total   int
	Managed int
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AggregateByDay buckets the ledger by the local date of each event. Every day
// from the start date through today appears, zero-filled. Events outside that
// range widen it rather than being dropped.
func (l Ledger) AggregateByDay(start, now time.Time, loc *time.Location) []DayBucket {
	if loc == nil {
		loc = time.Local
	}

	first := dayOf(start, loc)
	last := dayOf(now, loc)
	if last.Before(first) {
		last = first
	}

	counts := make(map[time.Time]*DayBucket)
	for _, e := range l.events {
		day := dayOf(e.Timestamp, loc)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
		b, ok := counts[day]
		if !ok {
			b = &DayBucket{Day: day}
			counts[day] = b
		}
		b.Total++
		if e.Managed() {
			b.Managed++
		}
	}

	var out []DayBucket
	// AddDate keeps the walk on local midnights across DST changes
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if b, ok := counts[day]; ok {
			out = append(out, *b)
		} else {
			out = append(out, DayBucket{Day: day})
		}
	}
	return out
}

// StrongestDay returns the day with the most resisted cravings. Ties go to the
// earliest day. It reports false when no craving was ever resisted.
func (l Ledger) StrongestDay(loc *time.Location) (DayBucket, bool) {
	if loc == nil {
		loc = time.Local
	}

	counts := make(map[time.Time]*DayBucket)
	for _, e := range l.events {
		day := dayOf(e.Timestamp, loc)
		b, ok := counts[day]
		if !ok {
			b = &DayBucket{Day: day}
			counts[day] = b
		}
		b.Total++
		if e.Managed() {
			b.Managed++
		}
	}

	var best DayBucket
	found := false
	for _, b := range counts {
		if b.Managed == 0 {
			continue
		}
		if !found || b.Managed > best.Managed || (b.Managed == best.Managed && b.Day.Before(best.Day)) {
			best = *b
			found = true
		}
	}
	return best, found
}

// ChartSeries flattens AggregateByDay into parallel label and count slices
func (l Ledger) ChartSeries(start, now time.Time, loc *time.Location) Series {
	buckets := l.AggregateByDay(start, now, loc)
	s := Series{
		Labels:  make([]string, len(buckets)),
		Totals:  make([]int, len(buckets)),
		Managed: make([]int, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = b.Day.Format(constants.DateFormat)
		s.Totals[i] = b.Total
		s.Managed[i] = b.Managed
	}
	return s
}

// TriggerBreakdown counts cravings per trigger, most frequent first
func (l Ledger) TriggerBreakdown() []TriggerCount {
	idx := make(map[string]int)
	var out []TriggerCount
	for _, e := range l.events {
		i, ok := idx[e.Trigger]
		if !ok {
			i = len(out)
			idx[e.Trigger] = i
			out = append(out, TriggerCount{Trigger: e.Trigger})
		}
		out[i].Total++
		if e.Managed() {
			out[i].Managed++
		}
	}
	slices.SortFunc(out, func(a, b TriggerCount) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Trigger, b.Trigger)
	})
	return out
}
