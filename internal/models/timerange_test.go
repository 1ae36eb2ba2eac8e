package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeRange(t *testing.T) {
	assert.Equal(t, TimeRange7d, ParseTimeRange("7d"))
	assert.Equal(t, TimeRange30d, ParseTimeRange("30d"))
	assert.Equal(t, TimeRange90d, ParseTimeRange("90d"))
	assert.Equal(t, TimeRange1y, ParseTimeRange("1y"))

	assert.Equal(t, DefaultTimeRange, ParseTimeRange(""))
	assert.Equal(t, DefaultTimeRange, ParseTimeRange("14d"))
	assert.Equal(t, DefaultTimeRange, ParseTimeRange("7D"))
}

func TestTimeRangeWindow(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	start, end := TimeRange7d.Window(now)
	assert.Equal(t, now, end)
	assert.Equal(t, now.AddDate(0, 0, -7), start)

	start, _ = TimeRange1y.Window(now)
	assert.Equal(t, now.AddDate(-1, 0, 0), start)

	start, _ = TimeRange30d.Window(now)
	assert.Equal(t, now.AddDate(0, 0, -30), start)
}

func TestTimeRangeTrendShape(t *testing.T) {
	cases := []struct {
		r           TimeRange
		buckets     int
		granularity string
	}{
		{TimeRange7d, 7, "day"},
		{TimeRange30d, 30, "day"},
		{TimeRange90d, 12, "week"},
		{TimeRange1y, 12, "month"},
	}
	for _, tc := range cases {
		buckets, granularity := tc.r.TrendShape()
		assert.Equal(t, tc.buckets, buckets, string(tc.r))
		assert.Equal(t, tc.granularity, granularity, string(tc.r))
	}
}
