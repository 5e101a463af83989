// Package aggregate implements the credit-weighted average shared by the
// semester GPA and the cumulative CGPA.
package aggregate

import "math"

// Pair is one weighted score: a grade point with its credit hours, or a
// semester GPA with the semester's total credit hours.
type Pair struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// Average is the result of a weighted average. A zero or negative total
// weight means there was nothing to average; Value is 0 in that case.
type Average struct {
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// NoData reports whether the average had no positive weight behind it.
func (a Average) NoData() bool {
	return !(a.Weight > 0)
}

// Rounded returns Value rounded to two decimals.
func (a Average) Rounded() float64 {
	return Round2(a.Value)
}

// Accumulator keeps a running weighted sum and weight sum.
// The zero value is ready to use.
type Accumulator struct {
	weighted float64
	weight   float64
}

// Add folds one pair into the running totals.
func (acc *Accumulator) Add(p Pair) {
	acc.weighted += p.Score * p.Weight
	acc.weight += p.Weight
}

// Average returns the average of everything added so far.
func (acc *Accumulator) Average() Average {
	if !(acc.weight > 0) {
		return Average{Value: 0, Weight: acc.weight}
	}
	return Average{Value: acc.weighted / acc.weight, Weight: acc.weight}
}

// WeightedAverage computes sum(score*weight) / sum(weight).
// Empty input or an all-zero weight yields an Average whose NoData is true.
func WeightedAverage(pairs []Pair) Average {
	var acc Accumulator
	for _, p := range pairs {
		acc.Add(p)
	}
	return acc.Average()
}

// CumulativeSeries returns the running weighted average after each pair:
// result[i] equals WeightedAverage(pairs[:i+1]).
func CumulativeSeries(pairs []Pair) []Average {
	if len(pairs) == 0 {
		return nil
	}
	series := make([]Average, 0, len(pairs))
	var acc Accumulator
	for _, p := range pairs {
		acc.Add(p)
		series = append(series, acc.Average())
	}
	return series
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
