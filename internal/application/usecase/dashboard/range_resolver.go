// Package dashboard contains the dealer dashboard aggregation engine and its use cases.
package dashboard

import (
	"time"

	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

// Interval is a half-open [Start, End) window. A nil Start means unbounded.
type Interval struct {
	Start *time.Time
	End   *time.Time
}

// IsBounded reports whether the interval has a start.
func (i Interval) IsBounded() bool {
	return i.Start != nil
}

// Materialize fills a missing End with now when the interval is bounded.
func (i Interval) Materialize(now time.Time) Interval {
	if i.Start != nil && i.End == nil {
		end := now
		return Interval{Start: i.Start, End: &end}
	}
	return i
}

// Contains reports whether t lies in [Start, End).
func (i Interval) Contains(t time.Time) bool {
	if i.Start != nil && t.Before(*i.Start) {
		return false
	}
	if i.End != nil && !t.Before(*i.End) {
		return false
	}
	return true
}

// Length returns End - Start, or zero when either bound is missing.
func (i Interval) Length() time.Duration {
	if i.Start == nil || i.End == nil {
		return 0
	}
	if length := i.End.Sub(*i.Start); length > 0 {
		return length
	}
	return 0
}

// Resolve maps a named range to a concrete interval anchored on now.
// Day boundaries are computed in now's location.
func Resolve(r valueobject.TimeRange, now time.Time) Interval {
	var start, end time.Time

	switch r {
	case valueobject.TimeRangeToday:
		start = StartOfDay(now)
		end = start.AddDate(0, 0, 1)
	case valueobject.TimeRangeWeek:
		start = StartOfDay(now.AddDate(0, 0, -6))
		end = now
	case valueobject.TimeRangeMonth:
		start = StartOfDay(now.AddDate(0, 0, -30))
		end = now
	case valueobject.TimeRangeThreeMonths:
		start = StartOfDay(addMonths(now, -3))
		end = now
	case valueobject.TimeRangeSixMonths:
		start = StartOfDay(addMonths(now, -6))
		end = now
	default:
		return Interval{}
	}

	return Interval{Start: &start, End: &end}
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addMonths shifts t by whole calendar months, clamping the day to the
// target month's length (May 31 - 3 months is Feb 28, not Mar 3).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
