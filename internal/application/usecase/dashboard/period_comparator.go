package dashboard

import "github.com/shopspring/decimal"

// Comparison holds period-over-period change figures. Nil fields mean there
// was no baseline to compare against.
type Comparison struct {
	PercentChange *float64 `json:"percent_change"`
	CountDelta    *int     `json:"count_delta,omitempty"`
}

// PreviousInterval returns the window of equal length immediately before interval.
// The second result is false when interval is unbounded.
func PreviousInterval(interval Interval) (Interval, bool) {
	if interval.Start == nil || interval.End == nil {
		return Interval{}, false
	}
	start := interval.Start.Add(-interval.Length())
	end := *interval.Start
	return Interval{Start: &start, End: &end}, true
}

// PercentChange returns (curr - prev) / prev * 100, or nil when prev is not positive.
func PercentChange(curr, prev decimal.Decimal) *float64 {
	if !prev.IsPositive() {
		return nil
	}
	change, _ := curr.Sub(prev).Mul(hundred).Div(prev).Round(2).Float64()
	return &change
}

// CompareTotals compares a current total with the previous period's total.
func CompareTotals(curr, prev decimal.Decimal) *Comparison {
	return &Comparison{PercentChange: PercentChange(curr, prev)}
}

// CompareSales compares sales income and counts between two periods.
// CountDelta stays nil when neither period had a sale.
func CompareSales(curr, prev ProfitSummary) *Comparison {
	comparison := &Comparison{PercentChange: PercentChange(curr.Income, prev.Income)}
	if curr.Count > 0 || prev.Count > 0 {
		delta := curr.Count - prev.Count
		comparison.CountDelta = &delta
	}
	return comparison
}
