// Package valueobject contains immutable domain value types.
package valueobject

import "strings"

// TimeRange selects the window a dashboard is computed over.
type TimeRange string

const (
	TimeRangeToday       TimeRange = "today"
	TimeRangeWeek        TimeRange = "week"
	TimeRangeMonth       TimeRange = "month"
	TimeRangeThreeMonths TimeRange = "three_months"
	TimeRangeSixMonths   TimeRange = "six_months"
	TimeRangeAll         TimeRange = "all"
)

// AllTimeRanges lists every supported range in display order.
var AllTimeRanges = []TimeRange{
	TimeRangeToday,
	TimeRangeWeek,
	TimeRangeMonth,
	TimeRangeThreeMonths,
	TimeRangeSixMonths,
	TimeRangeAll,
}

// IsValid reports whether r is one of the supported ranges.
func (r TimeRange) IsValid() bool {
	for _, candidate := range AllTimeRanges {
		if r == candidate {
			return true
		}
	}
	return false
}

// IsBounded reports whether the range has a start date.
func (r TimeRange) IsBounded() bool {
	return r.IsValid() && r != TimeRangeAll
}

// ParseTimeRange parses a query value such as "week" or "3m".
// Short aliases used by the mobile apps are accepted.
func ParseTimeRange(value string) (TimeRange, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today", "1d", "day":
		return TimeRangeToday, true
	case "week", "1w", "7d":
		return TimeRangeWeek, true
	case "month", "1m", "30d":
		return TimeRangeMonth, true
	case "three_months", "threemonths", "3m":
		return TimeRangeThreeMonths, true
	case "six_months", "sixmonths", "6m":
		return TimeRangeSixMonths, true
	case "all", "":
		return TimeRangeAll, true
	default:
		return "", false
	}
}

// Label returns a human readable label for the range.
func (r TimeRange) Label() string {
	switch r {
	case TimeRangeToday:
		return "Today"
	case TimeRangeWeek:
		return "Last 7 days"
	case TimeRangeMonth:
		return "Last 30 days"
	case TimeRangeThreeMonths:
		return "Last 3 months"
	case TimeRangeSixMonths:
		return "Last 6 months"
	default:
		return "All time"
	}
}
