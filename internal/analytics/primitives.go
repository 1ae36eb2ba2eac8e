// Package analytics is the pure computation engine behind the reporting
// endpoints: null-safe scalar reducers, fixed-shape metric blocks,
// time-bucketed trend series and deterministic rankings. Everything here is
// side-effect free and operates on an already-fetched in-memory snapshot.
package analytics

import "math"

// Sum reduces a collection with the given accessor.
func Sum[T any](items []T, f func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += f(item)
	}
	return total
}

// Count returns the number of items matching the predicate.
func Count[T any](items []T, pred func(T) bool) int {
	var n int
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Average returns the arithmetic mean of the accessor over the collection,
// or 0 for an empty collection.
func Average[T any](items []T, f func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, f) / float64(len(items))
}

// Ratio divides numerator by denominator, returning 0 instead of NaN or Inf
// when the denominator is zero. Every percentage in the engine routes through
// here.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Percent expresses part over whole as a percentage rounded to two decimals.
func Percent(part, whole float64) float64 {
	return round2(Ratio(part, whole) * 100)
}

// Share returns the percentage of items matching the predicate, 0 on empty
// input.
func Share[T any](items []T, pred func(T) bool) float64 {
	return Percent(float64(Count(items, pred)), float64(len(items)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
