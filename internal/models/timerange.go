package models

import "time"

// TimeRange is one of the accepted report lookback tokens.
type TimeRange string

const (
	TimeRange7d  TimeRange = "7d"
	TimeRange30d TimeRange = "30d"
	TimeRange90d TimeRange = "90d"
	TimeRange1y  TimeRange = "1y"
)

// DefaultTimeRange is used when a request carries an unrecognised token.
const DefaultTimeRange = TimeRange30d

// ParseTimeRange maps a raw query token onto a TimeRange, falling back to the
// default rather than erroring on unknown input.
func ParseTimeRange(raw string) TimeRange {
	switch TimeRange(raw) {
	case TimeRange7d, TimeRange30d, TimeRange90d, TimeRange1y:
		return TimeRange(raw)
	default:
		return DefaultTimeRange
	}
}

// Window returns the [start, end) lookback window anchored at now.
func (r TimeRange) Window(now time.Time) (time.Time, time.Time) {
	end := now.UTC()
	switch r {
	case TimeRange7d:
		return end.AddDate(0, 0, -7), end
	case TimeRange90d:
		return end.AddDate(0, 0, -90), end
	case TimeRange1y:
		return end.AddDate(-1, 0, 0), end
	default:
		return end.AddDate(0, 0, -30), end
	}
}

// TrendShape returns the bucket count and granularity used for trend series
// over this range: daily buckets for short ranges, weekly for a quarter and
// monthly for a year.
func (r TimeRange) TrendShape() (int, string) {
	switch r {
	case TimeRange7d:
		return 7, "day"
	case TimeRange90d:
		return 12, "week"
	case TimeRange1y:
		return 12, "month"
	default:
		return 30, "day"
	}
}

func (r TimeRange) String() string {
	return string(r)
}
