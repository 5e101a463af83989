// Package metrics computes descriptive statistics over semester GPAs.
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

// StdDev computes the population standard deviation.
// Returns 0 for fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Range returns the smallest and largest value, or (0, 0) for empty input.
func Range(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Consistency labels how much semester GPAs move around, based on their
// standard deviation on the 4.0 scale.
func Consistency(values []float64) string {
	if len(values) < 2 {
		return "n/a"
	}
	switch sd := StdDev(values); {
	case sd < 0.15:
		return "consistent"
	case sd < 0.4:
		return "some variation"
	default:
		return "uneven"
	}
}
