package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil, func(v float64) float64 { return v }))
	assert.Equal(t, 6.5, Sum([]float64{1, 2.5, 3}, func(v float64) float64 { return v }))
}

func TestCount(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}
	assert.Equal(t, 2, Count(values, func(v int) bool { return v%2 == 0 }))
	assert.Equal(t, 0, Count([]int{}, func(v int) bool { return true }))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil, func(v float64) float64 { return v }), "empty input averages to zero")
	assert.Equal(t, 2.0, Average([]float64{1, 2, 3}, func(v float64) float64 { return v }))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(10, 0), "zero denominator yields zero, not Inf")
	assert.Equal(t, 0.0, Ratio(0, 0))
	assert.Equal(t, 2.5, Ratio(5, 2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 60.0, Percent(3, 5))
	assert.Equal(t, 33.33, Percent(1, 3), "rounds to two decimals")
}

func TestShare(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}
	assert.Equal(t, 40.0, Share(values, func(v int) bool { return v%2 == 0 }))
	assert.Equal(t, 0.0, Share([]int{}, func(v int) bool { return true }))
}
