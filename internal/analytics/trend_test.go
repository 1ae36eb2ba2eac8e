package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeries(t *testing.T) {
	// a Wednesday, mid-afternoon
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	zero := func(start, end time.Time) float64 { return 0 }

	t.Run("daily buckets, oldest first", func(t *testing.T) {
		points := Series(now, 7, GranularityDay, zero)
		assert.Len(t, points, 7)
		assert.Equal(t, "2026-02-26", points[0].Label)
		assert.Equal(t, "2026-03-04", points[6].Label)
	})

	t.Run("weekly buckets anchor on Monday", func(t *testing.T) {
		points := Series(now, 12, GranularityWeek, zero)
		assert.Len(t, points, 12)
		assert.Equal(t, "2026-03-02", points[11].Label)
		assert.Equal(t, "2025-12-15", points[0].Label)
		for _, p := range points {
			start, err := time.Parse("2006-01-02", p.Label)
			assert.NoError(t, err)
			assert.Equal(t, time.Monday, start.Weekday())
		}
	})

	t.Run("monthly buckets use month labels", func(t *testing.T) {
		points := Series(now, 12, GranularityMonth, zero)
		assert.Len(t, points, 12)
		assert.Equal(t, "2025-04", points[0].Label)
		assert.Equal(t, "2026-03", points[11].Label)
	})

	t.Run("same inputs reproduce the same series", func(t *testing.T) {
		items := []time.Time{
			time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC),
		}
		fn := CountInWindow(items, func(ts time.Time) time.Time { return ts })
		first := Series(now, 7, GranularityDay, fn)
		second := Series(now, 7, GranularityDay, fn)
		assert.Equal(t, first, second)
	})

	t.Run("zero buckets yields empty series", func(t *testing.T) {
		assert.Empty(t, Series(now, 0, GranularityDay, zero))
	})
}

func TestCountInWindow(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	items := []time.Time{
		time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),   // today, boundary inclusive
		time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC), // today, after now but same bucket
		time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC),  // yesterday
		time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),  // outside a 7-day series
	}
	points := Series(now, 7, GranularityDay, CountInWindow(items, func(ts time.Time) time.Time { return ts }))

	assert.Equal(t, 2.0, points[6].Value, "today's bucket covers the whole day")
	assert.Equal(t, 1.0, points[5].Value)
	var total float64
	for _, p := range points {
		total += p.Value
	}
	assert.Equal(t, 3.0, total)
}
