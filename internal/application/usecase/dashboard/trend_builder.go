package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

// Bucket counts for the fixed-size trend ranges.
const (
	hoursPerDay      = 24
	weekTrendDays    = 7
	monthTrendDays   = 30
	allTrendMonths   = 12
	daysPerTrendWeek = 7
)

// TrendPoint is one bucket of a trend series. Value is the running total up
// to and including this bucket; Delta is the bucket's own sum.
type TrendPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
	Delta decimal.Decimal `json:"delta"`
}

// TrendSample is a dated amount fed into BuildTrend.
type TrendSample struct {
	Date   time.Time
	Amount decimal.Decimal
}

// ExpenseSamples turns expenses into trend samples of their amounts.
func ExpenseSamples(expenses []*entity.Expense) []TrendSample {
	samples := make([]TrendSample, 0, len(expenses))
	for _, e := range expenses {
		samples = append(samples, TrendSample{Date: e.Date, Amount: e.Amount})
	}
	return samples
}

// ProfitSamples turns sales into trend samples of their profit.
func ProfitSamples(sales []*entity.Sale) []TrendSample {
	samples := make([]TrendSample, 0, len(sales))
	for _, s := range sales {
		samples = append(samples, TrendSample{Date: s.Date, Amount: ProfitOf(s)})
	}
	return samples
}

// BucketBoundaries returns the ascending bucket edges for r anchored on now.
// Bucket i covers [edges[i], edges[i+1]).
func BucketBoundaries(r valueobject.TimeRange, now time.Time, weekStart time.Weekday) []time.Time {
	today := StartOfDay(now)

	switch r {
	case valueobject.TimeRangeToday:
		edges := make([]time.Time, 0, hoursPerDay+1)
		for hour := 0; hour <= hoursPerDay; hour++ {
			edges = append(edges, time.Date(today.Year(), today.Month(), today.Day(), hour, 0, 0, 0, today.Location()))
		}
		return edges

	case valueobject.TimeRangeWeek:
		return dailyEdges(today.AddDate(0, 0, -(weekTrendDays - 1)), weekTrendDays)

	case valueobject.TimeRangeMonth:
		return dailyEdges(today.AddDate(0, 0, -(monthTrendDays - 1)), monthTrendDays)

	case valueobject.TimeRangeThreeMonths, valueobject.TimeRangeSixMonths:
		months := 3
		if r == valueobject.TimeRangeSixMonths {
			months = 6
		}
		first := weekStartOf(StartOfDay(addMonths(now, -months)), weekStart)
		last := weekStartOf(today, weekStart).AddDate(0, 0, daysPerTrendWeek)

		var edges []time.Time
		for i := 0; ; i++ {
			edge := first.AddDate(0, 0, i*daysPerTrendWeek)
			edges = append(edges, edge)
			if !edge.Before(last) {
				break
			}
		}
		return edges

	default:
		first := time.Date(today.Year(), today.Month()-(allTrendMonths-1), 1, 0, 0, 0, 0, today.Location())
		edges := make([]time.Time, 0, allTrendMonths+1)
		for i := 0; i <= allTrendMonths; i++ {
			edges = append(edges, first.AddDate(0, i, 0))
		}
		return edges
	}
}

// BuildTrend buckets samples for r and returns the cumulative series, cut
// after the last bucket with a non-zero delta. Samples outside the bucket
// span are ignored. The result is empty, never nil, when nothing remains.
func BuildTrend(samples []TrendSample, r valueobject.TimeRange, now time.Time, weekStart time.Weekday) []TrendPoint {
	edges := BucketBoundaries(r, now, weekStart)
	buckets := len(edges) - 1
	if buckets <= 0 {
		return []TrendPoint{}
	}

	deltas := make([]decimal.Decimal, buckets)
	for i := range deltas {
		deltas[i] = decimal.Zero
	}

	for _, sample := range samples {
		if sample.Date.Before(edges[0]) || !sample.Date.Before(edges[buckets]) {
			continue
		}
		idx := sort.Search(len(edges), func(i int) bool { return edges[i].After(sample.Date) }) - 1
		if idx < 0 || idx >= buckets {
			continue
		}
		deltas[idx] = deltas[idx].Add(sample.Amount)
	}

	lastNonZero := -1
	for i, delta := range deltas {
		if !delta.IsZero() {
			lastNonZero = i
		}
	}

	points := make([]TrendPoint, 0, lastNonZero+1)
	running := decimal.Zero
	for i := 0; i <= lastNonZero; i++ {
		running = running.Add(deltas[i])
		points = append(points, TrendPoint{
			Date:  edges[i],
			Value: running,
			Delta: deltas[i],
		})
	}

	return points
}

func dailyEdges(first time.Time, days int) []time.Time {
	edges := make([]time.Time, 0, days+1)
	for i := 0; i <= days; i++ {
		edges = append(edges, first.AddDate(0, 0, i))
	}
	return edges
}

// weekStartOf returns midnight of the weekStart day on or before date.
func weekStartOf(date time.Time, weekStart time.Weekday) time.Time {
	offset := (int(date.Weekday()) - int(weekStart) + 7) % 7
	return time.Date(date.Year(), date.Month(), date.Day()-offset, 0, 0, 0, 0, date.Location())
}
