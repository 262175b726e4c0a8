// Package metrics holds the small statistics helpers shared by the
// benchmark and strategy calculations.
package metrics

import "math"

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MeanOf is Mean for callers that must tell "no data" apart from zero.
// Returns nil for empty input.
func MeanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := Mean(values)
	return &m
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// StdDevOf returns nil for empty input, otherwise the population standard deviation.
func StdDevOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sd := StdDev(values)
	return &sd
}

// Sum adds up values. Returns 0 for empty input.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
