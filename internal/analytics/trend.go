package analytics

import (
	"time"
)

// Granularity is the width of one trend bucket.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Point is one labelled bucket value in a trend series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MetricFunc computes a bucket's value for the [start, end) window.
type MetricFunc func(start, end time.Time) float64

// Series produces exactly `buckets` points, oldest first, with the most
// recent bucket covering the boundary-truncated period containing now.
// Boundaries are derived by truncating now and stepping back whole units, so
// the same now and dataset always reproduce the same series. All boundaries
// are UTC: day and week buckets start at midnight (weeks on Monday), month
// buckets on the first calendar day.
func Series(now time.Time, buckets int, granularity Granularity, fn MetricFunc) []Point {
	if buckets <= 0 {
		return []Point{}
	}
	anchor := truncateToBucket(now.UTC(), granularity)
	points := make([]Point, 0, buckets)
	for i := buckets - 1; i >= 0; i-- {
		start := stepBack(anchor, granularity, i)
		end := stepBack(anchor, granularity, i-1)
		points = append(points, Point{
			Label: bucketLabel(start, granularity),
			Value: fn(start, end),
		})
	}
	return points
}

// CountInWindow adapts a timestamp extractor into a MetricFunc counting the
// items that fall inside each bucket.
func CountInWindow[T any](items []T, at func(T) time.Time) MetricFunc {
	return func(start, end time.Time) float64 {
		return float64(Count(items, func(item T) bool {
			ts := at(item)
			return !ts.Before(start) && ts.Before(end)
		}))
	}
}

func truncateToBucket(t time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// back up to Monday
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func stepBack(anchor time.Time, granularity Granularity, units int) time.Time {
	switch granularity {
	case GranularityWeek:
		return anchor.AddDate(0, 0, -7*units)
	case GranularityMonth:
		return anchor.AddDate(0, -units, 0)
	default:
		return anchor.AddDate(0, 0, -units)
	}
}

func bucketLabel(start time.Time, granularity Granularity) string {
	if granularity == GranularityMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}
